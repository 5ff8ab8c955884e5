package config

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// RequireEnv fails the boot fast when a required variable is missing.
func RequireEnv(keys ...string) {
	for _, key := range keys {
		if os.Getenv(key) == "" {
			panic("required environment variable " + key + " is not set")
		}
	}
}

func ConnectDB() {
	RequireEnv("DB_URL", "JWT_SECRET")
	dsn := os.Getenv("DB_URL")

	// TranslateError maps unique violations to gorm.ErrDuplicatedKey, which
	// backs the one-start-per-day and unique name/pin conflict responses.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("Failed to connect database")
	}

	DB = db
}
