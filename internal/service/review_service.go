package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/villastay/rental-service/internal/models"
	"github.com/villastay/rental-service/internal/repository"
	"github.com/villastay/rental-service/pkg/rabbitmq"
	"gorm.io/gorm"
)

type SubmitReviewInput struct {
	BookingID       uint
	ReviewerID      uint
	RevieweeID      uint
	Rating          int
	Comment         string
	PrivateFeedback string
}

type UpdateReviewInput struct {
	Rating          *int
	Comment         *string
	PrivateFeedback *string
}

type ReviewService interface {
	Submit(ctx context.Context, in SubmitReviewInput) (*models.Review, error)
	UpdateReview(ctx context.Context, reviewID, actorID uint, in UpdateReviewInput) (*models.Review, error)
	ListVillaReviews(ctx context.Context, villaID uint, limit, offset int) ([]models.Review, error)
	ListByReviewer(ctx context.Context, reviewerID uint) ([]models.Review, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
	publisher   *rabbitmq.Publisher
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookingRepo repository.BookingRepository, publisher *rabbitmq.Publisher) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, bookingRepo: bookingRepo, publisher: publisher}
}

// Submit inserts one half of a blind review pair. Reviews stay hidden until
// the other party submits theirs, at which point both flip visible inside the
// same transaction. A party that never reviews leaves the other half hidden
// indefinitely.
func (s *reviewService) Submit(ctx context.Context, in SubmitReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}

	booking, err := s.bookingRepo.FindByID(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.Status != models.BookingCompleted {
		return nil, ErrBookingNotCompleted
	}

	guestReviewsHost := in.ReviewerID == booking.GuestID && in.RevieweeID == booking.HostID
	hostReviewsGuest := in.ReviewerID == booking.HostID && in.RevieweeID == booking.GuestID
	if !guestReviewsHost && !hostReviewsGuest {
		return nil, ErrInvalidParticipant
	}

	review := &models.Review{
		BookingID:       booking.ID,
		ReviewerID:      in.ReviewerID,
		RevieweeID:      in.RevieweeID,
		Rating:          in.Rating,
		Comment:         in.Comment,
		PrivateFeedback: in.PrivateFeedback,
	}
	revealed := false

	err = s.reviewRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.reviewRepo.ExistsByBookingAndReviewer(ctx, tx, booking.ID, in.ReviewerID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateReview
		}

		if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
			return err
		}

		count, err := s.reviewRepo.CountByBooking(ctx, tx, booking.ID)
		if err != nil {
			return err
		}
		if count == 2 {
			if err := s.reviewRepo.SetVisibleByBooking(ctx, tx, booking.ID); err != nil {
				return err
			}
			review.Visible = true
			revealed = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("review.submitted", review)
	if revealed {
		logrus.WithFields(logrus.Fields{
			"booking_id": booking.ID,
		}).Info("review pair revealed")
		s.publish("review.revealed", review)
	}

	return review, nil
}

// UpdateReview lets the author amend a review that is still hidden. Once the
// pair is revealed the text is frozen.
func (s *reviewService) UpdateReview(ctx context.Context, reviewID, actorID uint, in UpdateReviewInput) (*models.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.ReviewerID != actorID {
		return nil, ErrNotReviewer
	}
	if review.Visible {
		return nil, ErrReviewVisible
	}

	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, ErrInvalidRating
		}
		review.Rating = *in.Rating
	}
	if in.Comment != nil {
		review.Comment = *in.Comment
	}
	if in.PrivateFeedback != nil {
		review.PrivateFeedback = *in.PrivateFeedback
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListVillaReviews(ctx context.Context, villaID uint, limit, offset int) ([]models.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.reviewRepo.FindVisibleByVilla(ctx, villaID, limit, offset)
}

func (s *reviewService) ListByReviewer(ctx context.Context, reviewerID uint) ([]models.Review, error) {
	return s.reviewRepo.FindByReviewer(ctx, reviewerID)
}

func (s *reviewService) publish(routingKey string, review *models.Review) {
	if s.publisher != nil {
		_ = s.publisher.Publish(routingKey, review)
	}
}
