package database

import (
	log "github.com/sirupsen/logrus"
	"github.com/villastay/rental-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	return db
}

// Migrate creates the schema. Shared with the test harness, which runs it
// against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Villa{},
		&models.VillaAmenity{},
		&models.AvailabilityDay{},
		&models.Booking{},
		&models.Review{},
	)
}
