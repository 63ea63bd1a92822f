package models

import (
	"time"

	"gorm.io/gorm"
)

// Expense is a single spending record. IsSuspicious and RiskScore are
// derived fields written only by the fraud detection service, never by
// the owning user.
type Expense struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	Amount        float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Category      string         `json:"category" gorm:"size:50;not null;index"`
	Description   string         `json:"description" gorm:"size:255"`
	Merchant      string         `json:"merchant" gorm:"size:100;index"`
	PaymentMethod string         `json:"payment_method" gorm:"size:50"`
	Location      string         `json:"location" gorm:"size:100"`
	Tags          []string       `json:"tags" gorm:"serializer:json"`
	ExpenseDate   time.Time      `json:"date" gorm:"not null;index"`
	IsRecurring   bool           `json:"is_recurring" gorm:"default:false"`
	IsSuspicious  bool           `json:"is_suspicious" gorm:"default:false;index"`
	RiskScore     int            `json:"risk_score" gorm:"default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
	User          User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name.
func (Expense) TableName() string {
	return "expenses"
}
