package models

import (
	"time"

	"gorm.io/gorm"
)

// Budget periods.
const (
	PeriodWeekly    = "WEEKLY"
	PeriodMonthly   = "MONTHLY"
	PeriodQuarterly = "QUARTERLY"
	PeriodYearly    = "YEARLY"
)

// Budget is a per-category spending limit for a date window. Spent is a
// running total rolled forward by the expense handlers. AI-generated
// budgets carry a confidence between 0 and 1.
type Budget struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	UserID         uint           `json:"user_id" gorm:"index;not null"`
	Category       string         `json:"category" gorm:"size:50;not null;index"`
	Limit          float64        `json:"limit" gorm:"column:limit_amount;type:decimal(10,2);not null"`
	Spent          float64        `json:"spent" gorm:"type:decimal(10,2);default:0"`
	Period         string         `json:"period" gorm:"size:20;not null;default:MONTHLY"`
	StartDate      time.Time      `json:"start_date" gorm:"not null;index"`
	EndDate        time.Time      `json:"end_date" gorm:"not null;index"`
	AlertThreshold float64        `json:"alert_threshold" gorm:"default:80"`
	IsAiGenerated  bool           `json:"is_ai_generated" gorm:"default:false"`
	AiConfidence   float64        `json:"ai_confidence" gorm:"default:0"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
	User           User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name.
func (Budget) TableName() string {
	return "budgets"
}

// Utilization returns spent as a percentage of the limit, 0 when the
// limit is 0.
func (b Budget) Utilization() float64 {
	if b.Limit <= 0 {
		return 0
	}
	return b.Spent / b.Limit * 100
}

// IsOverBudget reports whether spending has exceeded the limit.
func (b Budget) IsOverBudget() bool {
	return b.Spent > b.Limit
}

// ShouldAlert reports whether spending has crossed the alert threshold.
func (b Budget) ShouldAlert() bool {
	return b.Spent >= b.Limit*b.AlertThreshold/100
}

// ValidPeriods lists the accepted budget periods.
func ValidPeriods() []string {
	return []string{PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly}
}
