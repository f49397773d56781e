package repository

import (
	"context"
	"strings"
	"time"

	"github.com/villastay/rental-service/internal/models"
	"gorm.io/gorm"
)

// SearchFilter is the full predicate set of the villa search. Zero values
// mean "not filtered"; CheckIn/CheckOut must be set together.
type SearchFilter struct {
	City          string
	Country       string
	MinGuests     int
	MinPrice      float64
	MaxPrice      float64
	MinBedrooms   int
	MinBathrooms  int
	PropertyTypes []string
	Amenities     []string
	CheckIn       time.Time
	CheckOut      time.Time
	Sort          string
	Limit         int
	Offset        int
}

type VillaRepository interface {
	Create(ctx context.Context, villa *models.Villa) error
	FindByID(ctx context.Context, id uint) (*models.Villa, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Villa, error)
	FindByHostID(ctx context.Context, hostID uint) ([]models.Villa, error)
	Update(ctx context.Context, villa *models.Villa) error
	ReplaceAmenities(ctx context.Context, villaID uint, names []string) error
	Search(ctx context.Context, f SearchFilter) ([]models.Villa, int64, error)
	GetDB() *gorm.DB
}

type villaRepository struct {
	db *gorm.DB
}

func NewVillaRepository(db *gorm.DB) VillaRepository {
	return &villaRepository{db: db}
}

func (r *villaRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *villaRepository) Create(ctx context.Context, villa *models.Villa) error {
	return r.db.WithContext(ctx).Create(villa).Error
}

func (r *villaRepository) FindByID(ctx context.Context, id uint) (*models.Villa, error) {
	var villa models.Villa
	if err := r.db.WithContext(ctx).Preload("Amenities").First(&villa, id).Error; err != nil {
		return nil, err
	}
	return &villa, nil
}

// FindByIDForUpdate locks the villa row for the duration of the transaction.
// Every ledger mutation for a villa runs under this lock, which is what makes
// two concurrent confirmations for overlapping dates impossible.
func (r *villaRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Villa, error) {
	var villa models.Villa
	if err := forUpdate(tx.WithContext(ctx)).First(&villa, id).Error; err != nil {
		return nil, err
	}
	return &villa, nil
}

func (r *villaRepository) FindByHostID(ctx context.Context, hostID uint) ([]models.Villa, error) {
	var villas []models.Villa
	err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&villas).Error
	if err != nil {
		return nil, err
	}
	return villas, nil
}

func (r *villaRepository) Update(ctx context.Context, villa *models.Villa) error {
	return r.db.WithContext(ctx).Omit("Amenities").Save(villa).Error
}

func (r *villaRepository) ReplaceAmenities(ctx context.Context, villaID uint, names []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("villa_id = ?", villaID).Delete(&models.VillaAmenity{}).Error; err != nil {
			return err
		}
		for _, name := range names {
			if err := tx.Create(&models.VillaAmenity{VillaID: villaID, Name: name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Search filters listed villas and returns one page plus the unpaged total.
// The date filter excludes any villa whose ledger has a booked or blocked day
// inside [CheckIn, CheckOut); missing ledger rows count as available.
func (r *villaRepository) Search(ctx context.Context, f SearchFilter) ([]models.Villa, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Villa{}).
		Where("status = ?", models.VillaListed)

	if city := strings.TrimSpace(f.City); city != "" {
		q = q.Where("LOWER(city) = LOWER(?)", city)
	}
	if country := strings.TrimSpace(f.Country); country != "" {
		q = q.Where("LOWER(country) = LOWER(?)", country)
	}
	if f.MinGuests > 0 {
		q = q.Where("max_guests >= ?", f.MinGuests)
	}
	if f.MinPrice > 0 {
		q = q.Where("nightly_price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("nightly_price <= ?", f.MaxPrice)
	}
	if f.MinBedrooms > 0 {
		q = q.Where("bedrooms >= ?", f.MinBedrooms)
	}
	if f.MinBathrooms > 0 {
		q = q.Where("bathrooms >= ?", f.MinBathrooms)
	}
	if len(f.PropertyTypes) > 0 {
		q = q.Where("property_type IN ?", f.PropertyTypes)
	}
	for _, amenity := range f.Amenities {
		q = q.Where(
			"EXISTS (SELECT 1 FROM villa_amenities va WHERE va.villa_id = villas.id AND va.name = ?)",
			amenity,
		)
	}
	if !f.CheckIn.IsZero() && !f.CheckOut.IsZero() {
		q = q.Where(
			"NOT EXISTS (SELECT 1 FROM availability_days ad WHERE ad.villa_id = villas.id AND ad.date >= ? AND ad.date < ? AND ad.status IN ?)",
			f.CheckIn, f.CheckOut, []models.DayStatus{models.DayBooked, models.DayBlocked},
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch f.Sort {
	case "price_low":
		q = q.Order("nightly_price ASC").Order("id DESC")
	case "price_high":
		q = q.Order("nightly_price DESC").Order("id DESC")
	default:
		q = q.Order("created_at DESC").Order("id DESC")
	}

	var villas []models.Villa
	if err := q.Limit(f.Limit).Offset(f.Offset).Preload("Amenities").Find(&villas).Error; err != nil {
		return nil, 0, err
	}
	return villas, total, nil
}
