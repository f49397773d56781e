package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/villastay/rental-service/internal/models"
	"github.com/villastay/rental-service/internal/pricing"
	"github.com/villastay/rental-service/internal/repository"
	"github.com/villastay/rental-service/pkg/rabbitmq"
	"gorm.io/gorm"
)

// CancelReasonDatesTaken marks pending bookings swept aside when a rival
// request for overlapping dates was confirmed first.
const CancelReasonDatesTaken = "dates_unavailable"

type CreateBookingInput struct {
	VillaID    uint
	GuestID    uint
	CheckIn    time.Time
	CheckOut   time.Time
	GuestCount int
	Message    string
}

// TransitionInput carries the optional fields of a status transition: Reason
// is required for cancellations; Message becomes the cancellation note or, on
// confirmation, the guest's check-in instructions.
type TransitionInput struct {
	Status  models.BookingStatus
	Reason  string
	Message string
}

type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	Transition(ctx context.Context, bookingID, actorID uint, in TransitionInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id, actorID uint) (*models.Booking, error)
	ListVillaBookings(ctx context.Context, villaID, actorID uint, status *models.BookingStatus) ([]models.Booking, error)
	ListGuestBookings(ctx context.Context, guestID uint) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo  repository.BookingRepository
	villaRepo    repository.VillaRepository
	availability repository.AvailabilityRepository
	publisher    *rabbitmq.Publisher
	now          func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	villaRepo repository.VillaRepository,
	availability repository.AvailabilityRepository,
	publisher *rabbitmq.Publisher,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		villaRepo:    villaRepo,
		availability: availability,
		publisher:    publisher,
		now:          time.Now,
	}
}

// CreateBooking validates a stay request and persists it as pending. Pending
// bookings do not reserve calendar days: the ledger is only written when the
// host confirms, so rival requests for the same dates stay open until then.
func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	checkIn := pricing.Day(in.CheckIn)
	checkOut := pricing.Day(in.CheckOut)

	nights := pricing.Nights(checkIn, checkOut)
	if nights <= 0 {
		return nil, ErrInvalidDateRange
	}

	villa, err := s.villaRepo.FindByID(ctx, in.VillaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVillaNotFound
		}
		return nil, err
	}
	if villa.Status != models.VillaListed {
		return nil, ErrVillaUnavailable
	}
	if in.GuestID == villa.HostID {
		return nil, ErrSelfBooking
	}
	if nights < villa.MinimumNights {
		return nil, ErrMinimumNights
	}
	if in.GuestCount < 1 || in.GuestCount > villa.MaxGuests {
		return nil, ErrGuestCapacity
	}

	// Ledger check runs last so the cheaper rule violations never touch it.
	occupied, err := s.availability.CountOccupied(ctx, s.availability.GetDB(), villa.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if occupied > 0 {
		return nil, ErrDateConflict
	}

	booking := &models.Booking{
		Reference:  uuid.NewString(),
		VillaID:    villa.ID,
		GuestID:    in.GuestID,
		HostID:     villa.HostID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestCount: in.GuestCount,
		TotalPrice: pricing.Total(villa.NightlyPrice, villa.CleaningFee, nights),
		Status:     models.BookingPending,
		Message:    in.Message,
	}
	if err := s.bookingRepo.Create(ctx, s.bookingRepo.GetDB(), booking); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"villa_id":   booking.VillaID,
		"nights":     nights,
	}).Info("booking requested")
	s.publish("booking.requested", booking)

	return booking, nil
}

func (s *bookingService) Transition(ctx context.Context, bookingID, actorID uint, in TransitionInput) (*models.Booking, error) {
	switch in.Status {
	case models.BookingConfirmed:
		return s.confirm(ctx, bookingID, actorID, in.Message)
	case models.BookingCancelled:
		return s.cancel(ctx, bookingID, actorID, in.Reason, in.Message)
	case models.BookingCompleted:
		return s.complete(ctx, bookingID, actorID)
	default:
		return nil, ErrInvalidTransition
	}
}

// confirm moves a pending booking to confirmed and books its dates in the
// ledger. The whole transition runs in one transaction holding the villa row
// lock: the conflict re-check, the day writes and the sweep of rival pending
// bookings are atomic, so two overlapping confirmations cannot both succeed.
func (s *bookingService) confirm(ctx context.Context, bookingID, actorID uint, instructions string) (*models.Booking, error) {
	var result *models.Booking
	var swept []models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if actorID != booking.HostID {
			return ErrNotHost
		}
		if booking.Status != models.BookingPending {
			return ErrInvalidTransition
		}

		if _, err := s.villaRepo.FindByIDForUpdate(ctx, tx, booking.VillaID); err != nil {
			return err
		}

		// Pending bookings never reserved these days, so another booking may
		// have been confirmed since this one was created.
		occupied, err := s.availability.CountOccupied(ctx, tx, booking.VillaID, booking.CheckIn, booking.CheckOut)
		if err != nil {
			return err
		}
		if occupied > 0 {
			return ErrDateConflict
		}

		holder := booking.ID
		for d := booking.CheckIn; d.Before(booking.CheckOut); d = d.AddDate(0, 0, 1) {
			ok, err := s.availability.UpsertDay(ctx, tx, &models.AvailabilityDay{
				VillaID:   booking.VillaID,
				Date:      d,
				Status:    models.DayBooked,
				BookingID: &holder,
			})
			if err != nil {
				return err
			}
			if !ok {
				// Guard refused the write: someone booked the day between our
				// count and this upsert. Roll the whole transition back.
				return ErrDateConflict
			}
		}

		booking.Status = models.BookingConfirmed
		if instructions != "" {
			booking.CheckInInstructions = &instructions
		}
		if err := s.bookingRepo.Update(ctx, tx, booking); err != nil {
			return err
		}

		// First confirmation wins: rival pending requests for any of these
		// dates can no longer succeed, so tell their guests now.
		rivals, err := s.bookingRepo.FindOverlappingPending(ctx, tx, booking.VillaID, booking.CheckIn, booking.CheckOut, booking.ID)
		if err != nil {
			return err
		}
		reason := CancelReasonDatesTaken
		for i := range rivals {
			rivals[i].Status = models.BookingCancelled
			rivals[i].CancelReason = &reason
			if err := s.bookingRepo.Update(ctx, tx, &rivals[i]); err != nil {
				return err
			}
		}

		result = booking
		swept = rivals
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": result.ID,
		"villa_id":   result.VillaID,
		"swept":      len(swept),
	}).Info("booking confirmed")
	s.publish("booking.confirmed", result)
	for i := range swept {
		s.publish("booking.cancelled", &swept[i])
	}

	return result, nil
}

func (s *bookingService) cancel(ctx context.Context, bookingID, actorID uint, reason, message string) (*models.Booking, error) {
	if reason == "" {
		return nil, ErrCancelReasonRequired
	}

	var result *models.Booking
	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if !booking.IsParty(actorID) {
			return ErrNotParty
		}
		if booking.Status != models.BookingPending && booking.Status != models.BookingConfirmed {
			return ErrInvalidTransition
		}

		if booking.Status == models.BookingConfirmed {
			// Give the days back. Rows are matched by booking id, not by date
			// range, so host-blocked days inside the stay window keep their
			// status.
			if _, err := s.villaRepo.FindByIDForUpdate(ctx, tx, booking.VillaID); err != nil {
				return err
			}
			if err := s.availability.ReleaseBooking(ctx, tx, booking.ID); err != nil {
				return err
			}
		}

		booking.Status = models.BookingCancelled
		booking.CancelReason = &reason
		if message != "" {
			booking.CancelMessage = &message
		}
		if err := s.bookingRepo.Update(ctx, tx, booking); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": result.ID,
		"villa_id":   result.VillaID,
		"reason":     reason,
	}).Info("booking cancelled")
	s.publish("booking.cancelled", result)

	return result, nil
}

// complete is clock-gated rather than scheduled: either party may finalize a
// stay once the check-out date has passed. Completed stays keep their ledger
// rows; the dates are in the past and no longer contested.
func (s *bookingService) complete(ctx context.Context, bookingID, actorID uint) (*models.Booking, error) {
	var result *models.Booking
	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if !booking.IsParty(actorID) {
			return ErrNotParty
		}
		if booking.Status != models.BookingConfirmed {
			return ErrInvalidTransition
		}
		if s.now().Before(booking.CheckOut) {
			return ErrCheckoutNotReached
		}

		booking.Status = models.BookingCompleted
		if err := s.bookingRepo.Update(ctx, tx, booking); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("booking.completed", result)
	return result, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id, actorID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !booking.IsParty(actorID) {
		return nil, ErrNotParty
	}
	return booking, nil
}

func (s *bookingService) ListVillaBookings(ctx context.Context, villaID, actorID uint, status *models.BookingStatus) ([]models.Booking, error) {
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
	return s.bookingRepo.FindByVillaID(ctx, villaID, status)
}

func (s *bookingService) ListGuestBookings(ctx context.Context, guestID uint) ([]models.Booking, error) {
	return s.bookingRepo.FindByGuestID(ctx, guestID)
}

func (s *bookingService) publish(routingKey string, booking *models.Booking) {
	if s.publisher != nil {
		_ = s.publisher.Publish(routingKey, booking)
	}
}
