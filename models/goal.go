package models

import (
	"time"

	"gorm.io/gorm"
)

// Goal categories.
const (
	GoalCategorySavings       = "SAVINGS"
	GoalCategoryInvestment    = "INVESTMENT"
	GoalCategoryDebtPayment   = "DEBT_PAYMENT"
	GoalCategoryEmergencyFund = "EMERGENCY_FUND"
	GoalCategoryRetirement    = "RETIREMENT"
	GoalCategoryPurchase      = "PURCHASE"
	GoalCategoryEducation     = "EDUCATION"
	GoalCategoryOther         = "OTHER"
)

// Goal priorities.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Goal statuses.
const (
	GoalStatusInProgress = "IN_PROGRESS"
	GoalStatusCompleted  = "COMPLETED"
	GoalStatusAbandoned  = "ABANDONED"
)

// FinancialGoal is a savings target. CurrentAmount may exceed
// TargetAmount; progress is capped at display time, not here.
type FinancialGoal struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	Name          string         `json:"name" gorm:"size:100;not null"`
	Description   string         `json:"description" gorm:"size:255"`
	Category      string         `json:"category" gorm:"size:20;not null"`
	TargetAmount  float64        `json:"target_amount" gorm:"type:decimal(10,2);not null"`
	CurrentAmount float64        `json:"current_amount" gorm:"type:decimal(10,2);default:0"`
	Deadline      *time.Time     `json:"deadline,omitempty"`
	Priority      string         `json:"priority" gorm:"size:10;default:MEDIUM"`
	Status        string         `json:"status" gorm:"size:20;default:IN_PROGRESS;index"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
	User          User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name.
func (FinancialGoal) TableName() string {
	return "financial_goals"
}

// Progress returns completion as a percentage of the target, 0 when the
// target is 0. Not capped at 100.
func (g FinancialGoal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return g.CurrentAmount / g.TargetAmount * 100
}

// ValidGoalCategories lists the accepted goal categories.
func ValidGoalCategories() []string {
	return []string{
		GoalCategorySavings,
		GoalCategoryInvestment,
		GoalCategoryDebtPayment,
		GoalCategoryEmergencyFund,
		GoalCategoryRetirement,
		GoalCategoryPurchase,
		GoalCategoryEducation,
		GoalCategoryOther,
	}
}
