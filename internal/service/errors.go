package service

// ErrorKind buckets every rejection the core can produce. Handlers map kinds
// to HTTP status codes; callers inside the process switch on the sentinel
// values with errors.Is.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindAuthorization ErrorKind = "authorization"
	KindConflict      ErrorKind = "conflict"
	KindNotFound      ErrorKind = "not_found"
)

// Error is a rejection with a machine-readable reason code. All business
// failures are one of these; anything else escaping a service is an internal
// error.
type Error struct {
	Kind    ErrorKind
	Reason  string
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrVillaNotFound   = &Error{KindNotFound, "villa_not_found", "villa not found"}
	ErrBookingNotFound = &Error{KindNotFound, "booking_not_found", "booking not found"}
	ErrReviewNotFound  = &Error{KindNotFound, "review_not_found", "review not found"}
	ErrUserNotFound    = &Error{KindNotFound, "user_not_found", "user not found"}

	ErrInvalidDateRange     = &Error{KindValidation, "invalid_date_range", "check-out must be after check-in"}
	ErrMinimumNights        = &Error{KindValidation, "minimum_nights", "stay is shorter than the villa's minimum nights"}
	ErrGuestCapacity        = &Error{KindValidation, "guest_capacity", "guest count exceeds villa capacity"}
	ErrInvalidRating        = &Error{KindValidation, "invalid_rating", "rating must be between 1 and 5"}
	ErrCancelReasonRequired = &Error{KindValidation, "cancel_reason_required", "a cancellation reason is required"}
	ErrInvalidVillaStatus   = &Error{KindValidation, "invalid_villa_status", "unknown villa status"}

	ErrNotHost            = &Error{KindAuthorization, "not_host", "only the host may perform this action"}
	ErrNotParty           = &Error{KindAuthorization, "not_participant", "actor is not a party to this booking"}
	ErrNotReviewer        = &Error{KindAuthorization, "not_reviewer", "only the author may edit a review"}
	ErrInvalidParticipant = &Error{KindAuthorization, "invalid_participant", "reviewer and reviewee must be the booking's guest and host"}

	ErrVillaUnavailable    = &Error{KindConflict, "villa_unavailable", "villa is not open for bookings"}
	ErrSelfBooking         = &Error{KindConflict, "self_booking", "hosts cannot book their own villa"}
	ErrDateConflict        = &Error{KindConflict, "date_conflict", "requested dates are not available"}
	ErrInvalidTransition   = &Error{KindConflict, "invalid_transition", "booking status does not allow this transition"}
	ErrCheckoutNotReached  = &Error{KindConflict, "checkout_not_reached", "stay cannot be completed before the check-out date"}
	ErrBookingNotCompleted = &Error{KindConflict, "booking_not_completed", "reviews open once the stay is completed"}
	ErrDuplicateReview     = &Error{KindConflict, "duplicate_review", "this party already reviewed the booking"}
	ErrReviewVisible       = &Error{KindConflict, "review_visible", "a published review can no longer be edited"}
)
