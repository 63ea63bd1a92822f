package models

import (
	"time"

	"gorm.io/gorm"
)

// Fraud alert types, one per risk factor plus a generic fallback.
const (
	AlertTypeUnusualAmount     = "UNUSUAL_AMOUNT"
	AlertTypeUnusualMerchant   = "UNUSUAL_MERCHANT"
	AlertTypeUnusualLocation   = "UNUSUAL_LOCATION"
	AlertTypeUnusualCategory   = "UNUSUAL_CATEGORY"
	AlertTypeDuplicate         = "DUPLICATE_TRANSACTION"
	AlertTypeBehavioralAnomaly = "BEHAVIORAL_ANOMALY"
)

// Alert severities.
const (
	SeverityLow      = "LOW"
	SeverityMedium   = "MEDIUM"
	SeverityHigh     = "HIGH"
	SeverityCritical = "CRITICAL"
)

// Alert statuses. CONFIRMED and FALSE_POSITIVE are terminal and set only
// by explicit user resolution.
const (
	AlertStatusPending       = "PENDING"
	AlertStatusConfirmed     = "CONFIRMED"
	AlertStatusFalsePositive = "FALSE_POSITIVE"
)

// FraudAlert is raised by the fraud detection service whenever an
// expense scores at or above the suspicion threshold.
type FraudAlert struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	UserID          uint           `json:"user_id" gorm:"index;not null"`
	ExpenseID       *uint          `json:"expense_id,omitempty" gorm:"index"`
	AlertType       string         `json:"alert_type" gorm:"size:30;not null"`
	Severity        string         `json:"severity" gorm:"size:10;not null"`
	Description     string         `json:"description" gorm:"size:255"`
	RiskScore       int            `json:"risk_score" gorm:"not null"`
	DetectionMethod string         `json:"detection_method" gorm:"size:50;default:behavioral_analysis"`
	Status          string         `json:"status" gorm:"size:20;default:PENDING;index"`
	Resolution      string         `json:"resolution" gorm:"size:255"`
	ResolvedAt      *time.Time     `json:"resolved_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
	User            User           `json:"-" gorm:"foreignKey:UserID"`
	Expense         *Expense       `json:"-" gorm:"foreignKey:ExpenseID"`
}

// TableName sets the table name.
func (FraudAlert) TableName() string {
	return "fraud_alerts"
}
