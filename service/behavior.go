package service

import (
	"errors"
	"time"

	"github.com/normie1221/Sanchay/database"
	"github.com/normie1221/Sanchay/models"

	"gorm.io/gorm"
)

const (
	// behaviorWindowDays is the trailing window the profile is built from.
	behaviorWindowDays = 90

	maxCommonMerchants = 20
	maxCommonLocations = 10
)

// BuildBehaviorProfile computes the behavioral baseline from a set of
// expenses ordered oldest first. Merchants and locations keep first-seen
// order and are capped; categories keep every distinct value. The stat
// pointers stay nil when there are no expenses so the fraud scorer can
// tell "no baseline" from "baseline of zero".
func BuildBehaviorProfile(expenses []models.Expense, windowDays int) models.UserBehavior {
	profile := models.UserBehavior{
		CommonMerchants:  []string{},
		CommonLocations:  []string{},
		CommonCategories: []string{},
	}
	if len(expenses) == 0 {
		return profile
	}

	amounts := make([]float64, len(expenses))
	seenMerchants := make(map[string]bool)
	seenLocations := make(map[string]bool)
	seenCategories := make(map[string]bool)

	for i, e := range expenses {
		amounts[i] = e.Amount

		if e.Merchant != "" && !seenMerchants[e.Merchant] && len(profile.CommonMerchants) < maxCommonMerchants {
			seenMerchants[e.Merchant] = true
			profile.CommonMerchants = append(profile.CommonMerchants, e.Merchant)
		}
		if e.Location != "" && !seenLocations[e.Location] && len(profile.CommonLocations) < maxCommonLocations {
			seenLocations[e.Location] = true
			profile.CommonLocations = append(profile.CommonLocations, e.Location)
		}
		if e.Category != "" && !seenCategories[e.Category] {
			seenCategories[e.Category] = true
			profile.CommonCategories = append(profile.CommonCategories, e.Category)
		}
	}

	avg := Round2(Average(amounts))
	freq := Round2(float64(len(expenses)) / float64(windowDays))
	profile.AvgTransactionAmount = &avg
	profile.TransactionFrequency = &freq

	return profile
}

// UpdateUserBehavior rebuilds the user's behavior profile from the
// trailing 90 days of non-flagged expenses and upserts it. The rebuild
// is a full overwrite, never an incremental patch.
func UpdateUserBehavior(userID uint) (*models.UserBehavior, error) {
	since := time.Now().AddDate(0, 0, -behaviorWindowDays)

	var expenses []models.Expense
	if err := database.DB.
		Where("user_id = ? AND expense_date >= ? AND is_suspicious = ?", userID, since, false).
		Order("expense_date ASC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}

	profile := BuildBehaviorProfile(expenses, behaviorWindowDays)
	profile.UserID = userID

	var existing models.UserBehavior
	err := database.DB.Where("user_id = ?", userID).First(&existing).Error
	switch {
	case err == nil:
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		if err := database.DB.Save(&profile).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := database.DB.Create(&profile).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return &profile, nil
}

// GetUserBehavior returns the stored profile, building one on the fly
// when the user has none yet.
func GetUserBehavior(userID uint) (*models.UserBehavior, error) {
	var behavior models.UserBehavior
	err := database.DB.Where("user_id = ?", userID).First(&behavior).Error
	if err == nil {
		return &behavior, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return UpdateUserBehavior(userID)
}
