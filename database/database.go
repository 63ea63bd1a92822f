package database

import (
	"fmt"
	"log"

	"github.com/normie1221/Sanchay/config"
	"github.com/normie1221/Sanchay/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init opens the MySQL connection, runs migrations and seeds the
// default expense categories.
func Init(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Expense{},
		&models.Income{},
		&models.ExpenseCategory{},
		&models.Budget{},
		&models.FinancialGoal{},
		&models.UserBehavior{},
		&models.FraudAlert{},
		&models.Report{},
	); err != nil {
		return err
	}

	// Seed default expense categories once, on an empty table.
	var catCount int64
	DB.Model(&models.ExpenseCategory{}).Count(&catCount)
	if catCount == 0 {
		colorMap := map[string]string{
			models.CategoryHousing:        "#14b8a6",
			models.CategoryFood:           "#ef4444",
			models.CategoryTransportation: "#3b82f6",
			models.CategoryUtilities:      "#f59e0b",
			models.CategoryHealthcare:     "#10b981",
			models.CategoryEntertainment:  "#ec4899",
			models.CategoryShopping:       "#a855f7",
			models.CategoryOther:          "#64748b",
		}
		var cats []models.ExpenseCategory
		for i, name := range models.GetCategories() {
			color := colorMap[name]
			if color == "" {
				color = "#64748b"
			}
			cats = append(cats, models.ExpenseCategory{
				Name:  name,
				Sort:  (i + 1) * 10,
				Color: color,
			})
		}
		if len(cats) > 0 {
			_ = DB.Create(&cats).Error
		}
	}

	log.Println("database initialized")
	return nil
}

// GetDB returns the database handle.
func GetDB() *gorm.DB {
	return DB
}
