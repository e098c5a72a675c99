package config

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lostfound-hub/api-go/models"
)

func InitDB() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{}, &models.RefreshToken{},
		&models.Category{}, &models.Location{},
		&models.Item{}, &models.ItemImage{},
		&models.Report{}, &models.Claim{},
		&models.HandoverLog{}, &models.Notification{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := seedCategories(db); err != nil {
		return nil, fmt.Errorf("seed categories: %w", err)
	}

	return db, nil
}

func seedCategories(db *gorm.DB) error {
	for _, name := range models.DefaultCategories {
		var category models.Category
		if err := db.Where(models.Category{Name: name}).FirstOrCreate(&category).Error; err != nil {
			return err
		}
	}
	return nil
}
