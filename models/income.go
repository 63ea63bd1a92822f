package models

import (
	"time"

	"gorm.io/gorm"
)

// Income categories.
const (
	IncomeCategorySalary     = "SALARY"
	IncomeCategoryBusiness   = "BUSINESS"
	IncomeCategoryInvestment = "INVESTMENT"
	IncomeCategoryFreelance  = "FREELANCE"
	IncomeCategoryGift       = "GIFT"
	IncomeCategoryOther      = "OTHER"
)

// Income frequencies.
const (
	FrequencyOneTime   = "ONE_TIME"
	FrequencyDaily     = "DAILY"
	FrequencyWeekly    = "WEEKLY"
	FrequencyBiweekly  = "BIWEEKLY"
	FrequencyMonthly   = "MONTHLY"
	FrequencyQuarterly = "QUARTERLY"
	FrequencyYearly    = "YEARLY"
)

// Income is a single income record.
type Income struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	Amount      float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Source      string         `json:"source" gorm:"size:100;not null"`
	Category    string         `json:"category" gorm:"size:20;not null"`
	Frequency   string         `json:"frequency" gorm:"size:20;not null"`
	Description string         `json:"description" gorm:"size:255"`
	IncomeDate  time.Time      `json:"date" gorm:"not null;index"`
	IsRecurring bool           `json:"is_recurring" gorm:"default:false"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	User        User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name.
func (Income) TableName() string {
	return "incomes"
}

// ValidIncomeCategories lists the accepted income categories.
func ValidIncomeCategories() []string {
	return []string{
		IncomeCategorySalary,
		IncomeCategoryBusiness,
		IncomeCategoryInvestment,
		IncomeCategoryFreelance,
		IncomeCategoryGift,
		IncomeCategoryOther,
	}
}

// ValidFrequencies lists the accepted income frequencies.
func ValidFrequencies() []string {
	return []string{
		FrequencyOneTime,
		FrequencyDaily,
		FrequencyWeekly,
		FrequencyBiweekly,
		FrequencyMonthly,
		FrequencyQuarterly,
		FrequencyYearly,
	}
}
