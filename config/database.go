package config

import (
	"fmt"
	"log"
	"os"

	"editorial-cms/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB() *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getenv("DB_HOST", "localhost"),
		getenv("DB_PORT", "5432"),
		getenv("DB_USER", "postgres"),
		getenv("DB_PASSWORD", "postgres"),
		getenv("DB_NAME", "editorial_cms"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Article{},
		&models.ArticleVersion{},
		&models.ChangeRecord{},
		&models.ReviewAssignment{},
		&models.ReviewDecision{},
		&models.RevisionRequest{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	return db
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
