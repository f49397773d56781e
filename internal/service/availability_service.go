package service

import (
	"context"
	"errors"
	"time"

	"github.com/villastay/rental-service/internal/models"
	"github.com/villastay/rental-service/internal/pricing"
	"github.com/villastay/rental-service/internal/repository"
	"gorm.io/gorm"
)

var ErrInvalidDayStatus = &Error{KindValidation, "invalid_day_status", "hosts may only mark days available or blocked"}

// CalendarUpdate reports which dates a host write actually touched. Skipped
// dates were booked: the guard refuses them and the caller decides whether
// that matters.
type CalendarUpdate struct {
	Updated []time.Time
	Skipped []time.Time
}

type AvailabilityService interface {
	GetCalendar(ctx context.Context, villaID uint, from, to time.Time) ([]models.AvailabilityDay, error)
	SetDays(ctx context.Context, villaID, actorID uint, dates []time.Time, status models.DayStatus) (*CalendarUpdate, error)
	HasConflict(ctx context.Context, villaID uint, from, to time.Time) (bool, error)
}

type availabilityService struct {
	availability repository.AvailabilityRepository
	villaRepo    repository.VillaRepository
}

func NewAvailabilityService(availability repository.AvailabilityRepository, villaRepo repository.VillaRepository) AvailabilityService {
	return &availabilityService{availability: availability, villaRepo: villaRepo}
}

// GetCalendar returns the ledger rows that exist in [from, to), ordered by
// date. Dates with no row are available; callers fill the gaps.
func (s *availabilityService) GetCalendar(ctx context.Context, villaID uint, from, to time.Time) ([]models.AvailabilityDay, error) {
	from, to = pricing.Day(from), pricing.Day(to)
	if !from.Before(to) {
		return nil, ErrInvalidDateRange
	}
	if _, err := s.villaRepo.FindByID(ctx, villaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVillaNotFound
		}
		return nil, err
	}
	return s.availability.GetRange(ctx, villaID, from, to)
}

// SetDays is the host-facing block/unblock write. Days currently booked are
// never overwritten; they come back in Skipped as a no-op rather than an
// error.
func (s *availabilityService) SetDays(ctx context.Context, villaID, actorID uint, dates []time.Time, status models.DayStatus) (*CalendarUpdate, error) {
	if status != models.DayAvailable && status != models.DayBlocked {
		return nil, ErrInvalidDayStatus
	}

	villa, err := s.villaRepo.FindByID(ctx, villaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVillaNotFound
		}
		return nil, err
	}
	if villa.HostID != actorID {
		return nil, ErrNotHost
	}

	update := &CalendarUpdate{}
	err = s.availability.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Same lock the booking machine takes before writing the ledger.
		if _, err := s.villaRepo.FindByIDForUpdate(ctx, tx, villaID); err != nil {
			return err
		}
		for _, date := range dates {
			day := pricing.Day(date)
			ok, err := s.availability.UpsertDay(ctx, tx, &models.AvailabilityDay{
				VillaID: villaID,
				Date:    day,
				Status:  status,
			})
			if err != nil {
				return err
			}
			if ok {
				update.Updated = append(update.Updated, day)
			} else {
				update.Skipped = append(update.Skipped, day)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return update, nil
}

func (s *availabilityService) HasConflict(ctx context.Context, villaID uint, from, to time.Time) (bool, error) {
	occupied, err := s.availability.CountOccupied(ctx, s.availability.GetDB(), villaID, pricing.Day(from), pricing.Day(to))
	if err != nil {
		return false, err
	}
	return occupied > 0, nil
}
