package database

import (
	"os"

	"careerhub-api/internal/domain/billing"
	"careerhub-api/internal/domain/entitlement"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal().Msg("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	DB = db

	if err := DB.AutoMigrate(
		&entitlement.Record{},
		&billing.CustomerMapping{},
		&billing.Payment{},
	); err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate error")
	}

	log.Info().Msg("Connected and migrated successfully")
}
