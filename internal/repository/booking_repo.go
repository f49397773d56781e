package repository

import (
	"context"
	"time"

	"github.com/villastay/rental-service/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	FindByVillaID(ctx context.Context, villaID uint, status *models.BookingStatus) ([]models.Booking, error)
	FindByGuestID(ctx context.Context, guestID uint) ([]models.Booking, error)
	FindOverlappingPending(ctx context.Context, tx *gorm.DB, villaID uint, from, to time.Time, excludeID uint) ([]models.Booking, error)
	Update(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate re-reads the booking inside the transaction, locking the
// row on dialects that support it.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := forUpdate(tx.WithContext(ctx)).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByVillaID(ctx context.Context, villaID uint, status *models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).Where("villa_id = ?", villaID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByGuestID(ctx context.Context, guestID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("check_in DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindOverlappingPending returns pending bookings for the villa whose
// half-open range intersects [from, to), excluding one booking id. Used on
// confirmation to sweep rival requests for the same dates.
func (r *bookingRepository) FindOverlappingPending(ctx context.Context, tx *gorm.DB, villaID uint, from, to time.Time, excludeID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := tx.WithContext(ctx).
		Where("villa_id = ? AND status = ? AND id <> ? AND check_in < ? AND check_out > ?",
			villaID, models.BookingPending, excludeID, to, from).
		Order("id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) Update(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Save(booking).Error
}
