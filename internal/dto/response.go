package dto

import (
	"time"

	"github.com/villastay/rental-service/internal/models"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

type VillaResponse struct {
	ID            uint     `json:"id"`
	HostID        uint     `json:"host_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	PropertyType  string   `json:"property_type"`
	MaxGuests     int      `json:"max_guests"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	NightlyPrice  float64  `json:"nightly_price"`
	CleaningFee   *float64 `json:"cleaning_fee,omitempty"`
	MinimumNights int      `json:"minimum_nights"`
	Status        string   `json:"status"`
	Amenities     []string `json:"amenities"`
}

type SearchResponse struct {
	Items  []VillaResponse `json:"items"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type BookingResponse struct {
	ID                  uint      `json:"id"`
	Reference           string    `json:"reference"`
	VillaID             uint      `json:"villa_id"`
	GuestID             uint      `json:"guest_id"`
	HostID              uint      `json:"host_id"`
	CheckIn             string    `json:"check_in"`
	CheckOut            string    `json:"check_out"`
	Nights              int       `json:"nights"`
	GuestCount          int       `json:"guest_count"`
	TotalPrice          float64   `json:"total_price"`
	Status              string    `json:"status"`
	Message             string    `json:"message,omitempty"`
	CancelReason        *string   `json:"cancel_reason,omitempty"`
	CancelMessage       *string   `json:"cancel_message,omitempty"`
	CheckInInstructions *string   `json:"check_in_instructions,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// CalendarResponse maps every date of the requested range to a status, with
// missing ledger rows filled in as available.
type CalendarResponse struct {
	VillaID uint              `json:"villa_id"`
	From    string            `json:"from"`
	To      string            `json:"to"`
	Days    map[string]string `json:"days"`
}

type CalendarUpdateResponse struct {
	Updated []string `json:"updated"`
	Skipped []string `json:"skipped"`
}

// ReviewResponse never carries private feedback; that text is for the
// platform, not the reviewee.
type ReviewResponse struct {
	ID         uint      `json:"id"`
	BookingID  uint      `json:"booking_id"`
	ReviewerID uint      `json:"reviewer_id"`
	RevieweeID uint      `json:"reviewee_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Visible    bool      `json:"visible"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToVillaResponse(v *models.Villa) VillaResponse {
	amenities := make([]string, 0, len(v.Amenities))
	for _, a := range v.Amenities {
		amenities = append(amenities, a.Name)
	}
	return VillaResponse{
		ID:            v.ID,
		HostID:        v.HostID,
		Title:         v.Title,
		Description:   v.Description,
		City:          v.City,
		Country:       v.Country,
		PropertyType:  v.PropertyType,
		MaxGuests:     v.MaxGuests,
		Bedrooms:      v.Bedrooms,
		Bathrooms:     v.Bathrooms,
		NightlyPrice:  v.NightlyPrice,
		CleaningFee:   v.CleaningFee,
		MinimumNights: v.MinimumNights,
		Status:        string(v.Status),
		Amenities:     amenities,
	}
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:                  b.ID,
		Reference:           b.Reference,
		VillaID:             b.VillaID,
		GuestID:             b.GuestID,
		HostID:              b.HostID,
		CheckIn:             b.CheckIn.Format(DateLayout),
		CheckOut:            b.CheckOut.Format(DateLayout),
		Nights:              b.Nights(),
		GuestCount:          b.GuestCount,
		TotalPrice:          b.TotalPrice,
		Status:              string(b.Status),
		Message:             b.Message,
		CancelReason:        b.CancelReason,
		CancelMessage:       b.CancelMessage,
		CheckInInstructions: b.CheckInInstructions,
		CreatedAt:           b.CreatedAt,
	}
}

func ToCalendarResponse(villaID uint, from, to time.Time, days []models.AvailabilityDay) CalendarResponse {
	filled := make(map[string]string)
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		filled[d.Format(DateLayout)] = string(models.DayAvailable)
	}
	for _, day := range days {
		filled[day.Date.Format(DateLayout)] = string(day.Status)
	}
	return CalendarResponse{
		VillaID: villaID,
		From:    from.Format(DateLayout),
		To:      to.Format(DateLayout),
		Days:    filled,
	}
}

func ToReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		BookingID:  r.BookingID,
		ReviewerID: r.ReviewerID,
		RevieweeID: r.RevieweeID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		Visible:    r.Visible,
		CreatedAt:  r.CreatedAt,
	}
}
