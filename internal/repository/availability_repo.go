package repository

import (
	"context"
	"time"

	"github.com/villastay/rental-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AvailabilityRepository interface {
	GetRange(ctx context.Context, villaID uint, from, to time.Time) ([]models.AvailabilityDay, error)
	CountOccupied(ctx context.Context, tx *gorm.DB, villaID uint, from, to time.Time) (int64, error)
	UpsertDay(ctx context.Context, tx *gorm.DB, day *models.AvailabilityDay) (bool, error)
	ReleaseBooking(ctx context.Context, tx *gorm.DB, bookingID uint) error
	GetDB() *gorm.DB
}

type availabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *availabilityRepository) GetRange(ctx context.Context, villaID uint, from, to time.Time) ([]models.AvailabilityDay, error) {
	var days []models.AvailabilityDay
	err := r.db.WithContext(ctx).
		Where("villa_id = ? AND date >= ? AND date < ?", villaID, from, to).
		Order("date ASC").
		Find(&days).Error
	if err != nil {
		return nil, err
	}
	return days, nil
}

// CountOccupied counts booked or blocked days in the half-open range
// [from, to). Zero means the range is free: absent rows are available.
func (r *availabilityRepository) CountOccupied(ctx context.Context, tx *gorm.DB, villaID uint, from, to time.Time) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.AvailabilityDay{}).
		Where("villa_id = ? AND date >= ? AND date < ? AND status IN ?",
			villaID, from, to, []models.DayStatus{models.DayBooked, models.DayBlocked}).
		Count(&count).Error
	return count, err
}

// UpsertDay writes one ledger row with a status guard: an existing row that is
// currently booked is never overwritten, regardless of who asks. The guard
// lives in the upsert itself (DO UPDATE ... WHERE status <> 'booked') so no
// read-then-write window exists. Returns false when the guard swallowed the
// write.
func (r *availabilityRepository) UpsertDay(ctx context.Context, tx *gorm.DB, day *models.AvailabilityDay) (bool, error) {
	res := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "villa_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":     day.Status,
			"booking_id": day.BookingID,
			"updated_at": time.Now().UTC(),
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			gorm.Expr("availability_days.status <> ?", string(models.DayBooked)),
		}},
	}).Create(day)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ReleaseBooking reverts exactly the days a booking holds. Scoping by
// booking_id instead of the date range means a host-blocked day inside the
// stay window is left alone.
func (r *availabilityRepository) ReleaseBooking(ctx context.Context, tx *gorm.DB, bookingID uint) error {
	return tx.WithContext(ctx).
		Model(&models.AvailabilityDay{}).
		Where("booking_id = ? AND status = ?", bookingID, models.DayBooked).
		Updates(map[string]interface{}{
			"status":     models.DayAvailable,
			"booking_id": nil,
		}).Error
}
