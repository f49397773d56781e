package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/villastay/rental-service/internal/models"
	"github.com/villastay/rental-service/internal/repository"
	"github.com/villastay/rental-service/pkg/rabbitmq"
	"gorm.io/gorm"
)

type CreateVillaInput struct {
	HostID        uint
	Title         string
	Description   string
	City          string
	Country       string
	PropertyType  string
	MaxGuests     int
	Bedrooms      int
	Bathrooms     int
	NightlyPrice  float64
	CleaningFee   *float64
	MinimumNights int
	Amenities     []string
}

// VillaPatch is a static partial update: a nil pointer means the field was
// absent from the request. CleaningFee is the one nullable column, so it gets
// the full tri-state: CleaningFeeSet false = absent, true with nil value =
// clear the fee, true with a value = set it.
type VillaPatch struct {
	Title          *string
	Description    *string
	City           *string
	Country        *string
	PropertyType   *string
	MaxGuests      *int
	Bedrooms       *int
	Bathrooms      *int
	NightlyPrice   *float64
	CleaningFeeSet bool
	CleaningFee    *float64
	MinimumNights  *int
	Amenities      *[]string
}

type VillaService interface {
	CreateVilla(ctx context.Context, in CreateVillaInput) (*models.Villa, error)
	GetVilla(ctx context.Context, id uint) (*models.Villa, error)
	UpdateVilla(ctx context.Context, id, actorID uint, patch VillaPatch) (*models.Villa, error)
	SetStatus(ctx context.Context, id, actorID uint, status models.VillaStatus) (*models.Villa, error)
	ListByHost(ctx context.Context, hostID uint) ([]models.Villa, error)
}

type villaService struct {
	villaRepo repository.VillaRepository
	userRepo  repository.UserRepository
	publisher *rabbitmq.Publisher
}

func NewVillaService(villaRepo repository.VillaRepository, userRepo repository.UserRepository, publisher *rabbitmq.Publisher) VillaService {
	return &villaService{villaRepo: villaRepo, userRepo: userRepo, publisher: publisher}
}

var errVillaInvalid = &Error{KindValidation, "invalid_villa", "villa fields are invalid"}

func validateVillaFields(title, city, country string, maxGuests, minNights int, nightlyPrice float64) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(city) == "" || strings.TrimSpace(country) == "" {
		return errVillaInvalid
	}
	if maxGuests < 1 || minNights < 1 || nightlyPrice <= 0 {
		return errVillaInvalid
	}
	return nil
}

func (s *villaService) CreateVilla(ctx context.Context, in CreateVillaInput) (*models.Villa, error) {
	if in.MinimumNights == 0 {
		in.MinimumNights = 1
	}
	if err := validateVillaFields(in.Title, in.City, in.Country, in.MaxGuests, in.MinimumNights, in.NightlyPrice); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, in.HostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	villa := &models.Villa{
		HostID:        in.HostID,
		Title:         in.Title,
		Description:   in.Description,
		City:          in.City,
		Country:       in.Country,
		PropertyType:  in.PropertyType,
		MaxGuests:     in.MaxGuests,
		Bedrooms:      in.Bedrooms,
		Bathrooms:     in.Bathrooms,
		NightlyPrice:  in.NightlyPrice,
		CleaningFee:   in.CleaningFee,
		MinimumNights: in.MinimumNights,
		Status:        models.VillaDraft,
	}
	if err := s.villaRepo.Create(ctx, villa); err != nil {
		return nil, err
	}
	if len(in.Amenities) > 0 {
		if err := s.villaRepo.ReplaceAmenities(ctx, villa.ID, in.Amenities); err != nil {
			return nil, err
		}
	}

	logrus.WithFields(logrus.Fields{"villa_id": villa.ID, "host_id": villa.HostID}).Info("villa created")
	return s.villaRepo.FindByID(ctx, villa.ID)
}

func (s *villaService) GetVilla(ctx context.Context, id uint) (*models.Villa, error) {
	villa, err := s.villaRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVillaNotFound
		}
		return nil, err
	}
	return villa, nil
}

// UpdateVilla applies a patch, validating the merged result once before any
// write.
func (s *villaService) UpdateVilla(ctx context.Context, id, actorID uint, patch VillaPatch) (*models.Villa, error) {
	villa, err := s.GetVilla(ctx, id)
	if err != nil {
		return nil, err
	}
	if villa.HostID != actorID {
		return nil, ErrNotHost
	}

	if patch.Title != nil {
		villa.Title = *patch.Title
	}
	if patch.Description != nil {
		villa.Description = *patch.Description
	}
	if patch.City != nil {
		villa.City = *patch.City
	}
	if patch.Country != nil {
		villa.Country = *patch.Country
	}
	if patch.PropertyType != nil {
		villa.PropertyType = *patch.PropertyType
	}
	if patch.MaxGuests != nil {
		villa.MaxGuests = *patch.MaxGuests
	}
	if patch.Bedrooms != nil {
		villa.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		villa.Bathrooms = *patch.Bathrooms
	}
	if patch.NightlyPrice != nil {
		villa.NightlyPrice = *patch.NightlyPrice
	}
	if patch.CleaningFeeSet {
		villa.CleaningFee = patch.CleaningFee
	}
	if patch.MinimumNights != nil {
		villa.MinimumNights = *patch.MinimumNights
	}

	if err := validateVillaFields(villa.Title, villa.City, villa.Country, villa.MaxGuests, villa.MinimumNights, villa.NightlyPrice); err != nil {
		return nil, err
	}

	if err := s.villaRepo.Update(ctx, villa); err != nil {
		return nil, err
	}
	if patch.Amenities != nil {
		if err := s.villaRepo.ReplaceAmenities(ctx, villa.ID, *patch.Amenities); err != nil {
			return nil, err
		}
	}
	return s.villaRepo.FindByID(ctx, villa.ID)
}

func (s *villaService) SetStatus(ctx context.Context, id, actorID uint, status models.VillaStatus) (*models.Villa, error) {
	switch status {
	case models.VillaDraft, models.VillaListed, models.VillaUnlisted:
	default:
		return nil, ErrInvalidVillaStatus
	}

	villa, err := s.GetVilla(ctx, id)
	if err != nil {
		return nil, err
	}
	if villa.HostID != actorID {
		return nil, ErrNotHost
	}

	villa.Status = status
	if err := s.villaRepo.Update(ctx, villa); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		switch status {
		case models.VillaListed:
			_ = s.publisher.Publish("villa.listed", villa)
		case models.VillaUnlisted:
			_ = s.publisher.Publish("villa.unlisted", villa)
		}
	}
	return villa, nil
}

func (s *villaService) ListByHost(ctx context.Context, hostID uint) ([]models.Villa, error) {
	return s.villaRepo.FindByHostID(ctx, hostID)
}
