package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/villastay/rental-service/internal/models"
	"github.com/villastay/rental-service/pkg/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory sqlite database with the real schema.
// MaxOpenConns(1) keeps every session on the same connection; a second
// connection to :memory: would see an empty database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com", Role: "guest"}
	require.NoError(t, db.Create(user).Error)
	return user
}

type villaOpts struct {
	status        models.VillaStatus
	minimumNights int
	maxGuests     int
	nightlyPrice  float64
	cleaningFee   *float64
}

func seedVilla(t *testing.T, db *gorm.DB, hostID uint, opts villaOpts) *models.Villa {
	t.Helper()
	if opts.status == "" {
		opts.status = models.VillaListed
	}
	if opts.minimumNights == 0 {
		opts.minimumNights = 1
	}
	if opts.maxGuests == 0 {
		opts.maxGuests = 6
	}
	if opts.nightlyPrice == 0 {
		opts.nightlyPrice = 100
	}
	villa := &models.Villa{
		HostID:        hostID,
		Title:         "Casa Test",
		City:          "Palma",
		Country:       "Spain",
		PropertyType:  "villa",
		MaxGuests:     opts.maxGuests,
		Bedrooms:      3,
		Bathrooms:     2,
		NightlyPrice:  opts.nightlyPrice,
		CleaningFee:   opts.cleaningFee,
		MinimumNights: opts.minimumNights,
		Status:        opts.status,
	}
	require.NoError(t, db.Create(villa).Error)
	return villa
}

func seedBooking(t *testing.T, db *gorm.DB, villa *models.Villa, guestID uint, status models.BookingStatus, checkIn, checkOut time.Time) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		Reference:  uuid.NewString(),
		VillaID:    villa.ID,
		GuestID:    guestID,
		HostID:     villa.HostID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestCount: 2,
		TotalPrice: 100,
		Status:     status,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}

func dayStatus(t *testing.T, db *gorm.DB, villaID uint, d time.Time) models.DayStatus {
	t.Helper()
	var day models.AvailabilityDay
	err := db.Where("villa_id = ? AND date = ?", villaID, d).First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DayAvailable
	}
	require.NoError(t, err)
	return day.Status
}
