package models

import "time"

// UserBehavior is the per-user behavioral profile used as the baseline
// for fraud comparisons. It is rebuilt wholesale from the trailing
// 90 days of non-flagged expenses on every refresh, never patched
// incrementally. The stat fields stay NULL until the user has history,
// which the fraud scorer treats as "no baseline, skip the amount check".
type UserBehavior struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	UserID               uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	AvgTransactionAmount *float64  `json:"avg_transaction_amount,omitempty" gorm:"type:decimal(10,2)"`
	TransactionFrequency *float64  `json:"transaction_frequency,omitempty"`
	CommonMerchants      []string  `json:"common_merchants" gorm:"serializer:json"`
	CommonLocations      []string  `json:"common_locations" gorm:"serializer:json"`
	CommonCategories     []string  `json:"common_categories" gorm:"serializer:json"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
	User                 User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name.
func (UserBehavior) TableName() string {
	return "user_behaviors"
}

// HasMerchant reports whether the merchant is part of the profile.
func (b UserBehavior) HasMerchant(merchant string) bool {
	return contains(b.CommonMerchants, merchant)
}

// HasLocation reports whether the location is part of the profile.
func (b UserBehavior) HasLocation(location string) bool {
	return contains(b.CommonLocations, location)
}

// HasCategory reports whether the category is part of the profile.
func (b UserBehavior) HasCategory(category string) bool {
	return contains(b.CommonCategories, category)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
