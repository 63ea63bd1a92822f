package models

import (
	"time"

	"gorm.io/gorm"
)

// Default expense categories. These seed the reference list and the
// savings-opportunity benchmarks; expense rows are not restricted to
// them.
const (
	CategoryHousing        = "Housing"
	CategoryFood           = "Food"
	CategoryTransportation = "Transportation"
	CategoryUtilities      = "Utilities"
	CategoryHealthcare     = "Healthcare"
	CategoryEntertainment  = "Entertainment"
	CategoryShopping       = "Shopping"
	CategoryOther          = "Other"
)

// ExpenseCategory is the seeded reference list shown in the UI.
type ExpenseCategory struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Sort      int            `json:"sort" gorm:"default:0;index"`
	Color     string         `json:"color" gorm:"size:20;default:#64748b"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName sets the table name.
func (ExpenseCategory) TableName() string {
	return "expense_categories"
}

// GetCategories returns the default expense categories in display order.
func GetCategories() []string {
	return []string{
		CategoryHousing,
		CategoryFood,
		CategoryTransportation,
		CategoryUtilities,
		CategoryHealthcare,
		CategoryEntertainment,
		CategoryShopping,
		CategoryOther,
	}
}
