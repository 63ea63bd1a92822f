package models

import (
	"time"

	"gorm.io/gorm"
)

// Report types.
const (
	ReportTypeMonthlySummary  = "MONTHLY_SUMMARY"
	ReportTypeExpenseAnalysis = "EXPENSE_ANALYSIS"
)

// Report formats.
const (
	ReportFormatCSV  = "CSV"
	ReportFormatXLSX = "XLSX"
)

// Report records an exported report file. Rows are created only as a
// side effect of a file export.
type Report struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	Type        string         `json:"type" gorm:"size:30;not null"`
	Title       string         `json:"title" gorm:"size:100"`
	Format      string         `json:"format" gorm:"size:10;not null"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	FileURL     string         `json:"file_url" gorm:"size:255"`
	FileSize    int64          `json:"file_size"`
	GeneratedAt time.Time      `json:"generated_at"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	User        User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name.
func (Report) TableName() string {
	return "reports"
}
