package repository

import (
	"context"

	"github.com/villastay/rental-service/internal/models"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, tx *gorm.DB, review *models.Review) error
	FindByID(ctx context.Context, id uint) (*models.Review, error)
	CountByBooking(ctx context.Context, tx *gorm.DB, bookingID uint) (int64, error)
	ExistsByBookingAndReviewer(ctx context.Context, tx *gorm.DB, bookingID, reviewerID uint) (bool, error)
	SetVisibleByBooking(ctx context.Context, tx *gorm.DB, bookingID uint) error
	FindVisibleByVilla(ctx context.Context, villaID uint, limit, offset int) ([]models.Review, error)
	FindByReviewer(ctx context.Context, reviewerID uint) ([]models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	GetDB() *gorm.DB
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *reviewRepository) Create(ctx context.Context, tx *gorm.DB, review *models.Review) error {
	return tx.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) CountByBooking(ctx context.Context, tx *gorm.DB, bookingID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Review{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error
	return count, err
}

func (r *reviewRepository) ExistsByBookingAndReviewer(ctx context.Context, tx *gorm.DB, bookingID, reviewerID uint) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Review{}).
		Where("booking_id = ? AND reviewer_id = ?", bookingID, reviewerID).
		Count(&count).Error
	return count > 0, err
}

// SetVisibleByBooking reveals both halves of a review pair in one statement.
func (r *reviewRepository) SetVisibleByBooking(ctx context.Context, tx *gorm.DB, bookingID uint) error {
	return tx.WithContext(ctx).
		Model(&models.Review{}).
		Where("booking_id = ?", bookingID).
		Update("visible", true).Error
}

func (r *reviewRepository) FindVisibleByVilla(ctx context.Context, villaID uint, limit, offset int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Joins("JOIN bookings ON bookings.id = reviews.booking_id").
		Where("bookings.villa_id = ? AND reviews.visible = ?", villaID, true).
		Order("reviews.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByReviewer(ctx context.Context, reviewerID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("reviewer_id = ?", reviewerID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}
