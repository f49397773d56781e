package dto

// DateLayout is the wire format for calendar dates. The core works at
// whole-day granularity; timestamps never cross the API.
const DateLayout = "2006-01-02"

type CreateVillaRequest struct {
	HostID        uint     `json:"host_id" validate:"required"`
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description"`
	City          string   `json:"city" validate:"required"`
	Country       string   `json:"country" validate:"required"`
	PropertyType  string   `json:"property_type"`
	MaxGuests     int      `json:"max_guests" validate:"required,gt=0"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	NightlyPrice  float64  `json:"nightly_price" validate:"required,gt=0"`
	CleaningFee   *float64 `json:"cleaning_fee"`
	MinimumNights int      `json:"minimum_nights"`
	Amenities     []string `json:"amenities"`
}

type UpdateVillaRequest struct {
	ActorID       uint            `json:"actor_id" validate:"required"`
	Title         Patch[string]   `json:"title"`
	Description   Patch[string]   `json:"description"`
	City          Patch[string]   `json:"city"`
	Country       Patch[string]   `json:"country"`
	PropertyType  Patch[string]   `json:"property_type"`
	MaxGuests     Patch[int]      `json:"max_guests"`
	Bedrooms      Patch[int]      `json:"bedrooms"`
	Bathrooms     Patch[int]      `json:"bathrooms"`
	NightlyPrice  Patch[float64]  `json:"nightly_price"`
	CleaningFee   Patch[float64]  `json:"cleaning_fee"`
	MinimumNights Patch[int]      `json:"minimum_nights"`
	Amenities     Patch[[]string] `json:"amenities"`
}

type SetVillaStatusRequest struct {
	ActorID uint   `json:"actor_id" validate:"required"`
	Status  string `json:"status" validate:"required"`
}

type SetCalendarRequest struct {
	ActorID uint     `json:"actor_id" validate:"required"`
	Dates   []string `json:"dates" validate:"required,min=1"`
	Status  string   `json:"status" validate:"required"`
}

type CreateBookingRequest struct {
	GuestID    uint   `json:"guest_id" validate:"required"`
	CheckIn    string `json:"check_in" validate:"required"`
	CheckOut   string `json:"check_out" validate:"required"`
	GuestCount int    `json:"guest_count" validate:"required,gt=0"`
	Message    string `json:"message"`
}

type TransitionBookingRequest struct {
	ActorID uint   `json:"actor_id" validate:"required"`
	Status  string `json:"status" validate:"required"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type SubmitReviewRequest struct {
	ReviewerID      uint   `json:"reviewer_id" validate:"required"`
	RevieweeID      uint   `json:"reviewee_id" validate:"required"`
	Rating          int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment         string `json:"comment"`
	PrivateFeedback string `json:"private_feedback"`
}

type UpdateReviewRequest struct {
	ActorID         uint          `json:"actor_id" validate:"required"`
	Rating          Patch[int]    `json:"rating"`
	Comment         Patch[string] `json:"comment"`
	PrivateFeedback Patch[string] `json:"private_feedback"`
}
