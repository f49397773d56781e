package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/villastay/rental-service/internal/models"
	"github.com/villastay/rental-service/internal/repository"
	"gorm.io/gorm"
)

type searchVilla struct {
	title        string
	city         string
	propertyType string
	maxGuests    int
	bedrooms     int
	nightlyPrice float64
	status       models.VillaStatus
	amenities    []string
}

func seedSearchVilla(t *testing.T, db *gorm.DB, hostID uint, in searchVilla) *models.Villa {
	t.Helper()
	if in.city == "" {
		in.city = "Palma"
	}
	if in.propertyType == "" {
		in.propertyType = "villa"
	}
	if in.maxGuests == 0 {
		in.maxGuests = 6
	}
	if in.bedrooms == 0 {
		in.bedrooms = 3
	}
	if in.status == "" {
		in.status = models.VillaListed
	}
	villa := &models.Villa{
		HostID:        hostID,
		Title:         in.title,
		City:          in.city,
		Country:       "Spain",
		PropertyType:  in.propertyType,
		MaxGuests:     in.maxGuests,
		Bedrooms:      in.bedrooms,
		Bathrooms:     2,
		NightlyPrice:  in.nightlyPrice,
		MinimumNights: 1,
		Status:        in.status,
	}
	require.NoError(t, db.Create(villa).Error)
	for _, name := range in.amenities {
		require.NoError(t, db.Create(&models.VillaAmenity{VillaID: villa.ID, Name: name}).Error)
	}
	return villa
}

func titles(villas []models.Villa) []string {
	out := make([]string, len(villas))
	for i, v := range villas {
		out[i] = v.Title
	}
	return out
}

func TestSearch_OnlyListedVillas(t *testing.T) {
	db := setupTestDB(t)
	host := seedUser(t, db, "host")
	seedSearchVilla(t, db, host.ID, searchVilla{title: "Listed", nightlyPrice: 100})
	seedSearchVilla(t, db, host.ID, searchVilla{title: "Draft", nightlyPrice: 100, status: models.VillaDraft})
	seedSearchVilla(t, db, host.ID, searchVilla{title: "Unlisted", nightlyPrice: 100, status: models.VillaUnlisted})

	svc := NewSearchService(repository.NewVillaRepository(db))
	result, err := svc.Search(context.Background(), repository.SearchFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, []string{"Listed"}, titles(result.Villas))
}

func TestSearch_Filters(t *testing.T) {
	db := setupTestDB(t)
	host := seedUser(t, db, "host")
	seedSearchVilla(t, db, host.ID, searchVilla{title: "Palma Pool", nightlyPrice: 200, amenities: []string{"pool", "wifi"}})
	seedSearchVilla(t, db, host.ID, searchVilla{title: "Palma Basic", nightlyPrice: 80, amenities: []string{"wifi"}})
	seedSearchVilla(t, db, host.ID, searchVilla{title: "Soller Loft", city: "Soller", propertyType: "apartment", nightlyPrice: 120, maxGuests: 2, bedrooms: 1})

	svc := NewSearchService(repository.NewVillaRepository(db))

	result, err := svc.Search(context.Background(), repository.SearchFilter{City: "palma"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Palma Pool", "Palma Basic"}, titles(result.Villas))

	result, err = svc.Search(context.Background(), repository.SearchFilter{MinPrice: 100, MaxPrice: 150})
	require.NoError(t, err)
	assert.Equal(t, []string{"Soller Loft"}, titles(result.Villas))

	result, err = svc.Search(context.Background(), repository.SearchFilter{MinGuests: 4})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Palma Pool", "Palma Basic"}, titles(result.Villas))

	result, err = svc.Search(context.Background(), repository.SearchFilter{PropertyTypes: []string{"apartment"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Soller Loft"}, titles(result.Villas))

	// Amenity filters combine with AND.
	result, err = svc.Search(context.Background(), repository.SearchFilter{Amenities: []string{"wifi", "pool"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Palma Pool"}, titles(result.Villas))
}

func TestSearch_DateRangeExcludesOccupiedVillas(t *testing.T) {
	db := setupTestDB(t)
	host := seedUser(t, db, "host")
	guest := seedUser(t, db, "guest")
	booked := seedSearchVilla(t, db, host.ID, searchVilla{title: "Booked", nightlyPrice: 100})
	blocked := seedSearchVilla(t, db, host.ID, searchVilla{title: "Blocked", nightlyPrice: 100})
	seedSearchVilla(t, db, host.ID, searchVilla{title: "Free", nightlyPrice: 100})

	booking := seedBooking(t, db, booked, guest.ID, models.BookingPending, date(2026, 8, 10), date(2026, 8, 13))
	bookingSvc, _ := newBookingService(db)
	_, err := bookingSvc.Transition(context.Background(), booking.ID, host.ID, TransitionInput{Status: models.BookingConfirmed})
	require.NoError(t, err)

	availSvc := newAvailabilityService(db)
	_, err = availSvc.SetDays(context.Background(), blocked.ID, host.ID, []time.Time{date(2026, 8, 11)}, models.DayBlocked)
	require.NoError(t, err)

	svc := NewSearchService(repository.NewVillaRepository(db))

	result, err := svc.Search(context.Background(), repository.SearchFilter{
		CheckIn:  date(2026, 8, 10),
		CheckOut: date(2026, 8, 13),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Free"}, titles(result.Villas))

	// A stay checking in on the booked stay's checkout day fits everywhere.
	result, err = svc.Search(context.Background(), repository.SearchFilter{
		CheckIn:  date(2026, 8, 13),
		CheckOut: date(2026, 8, 16),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)
}

func TestSearch_DatesMustComeTogether(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSearchService(repository.NewVillaRepository(db))

	_, err := svc.Search(context.Background(), repository.SearchFilter{CheckIn: date(2026, 8, 10)})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.Search(context.Background(), repository.SearchFilter{
		CheckIn:  date(2026, 8, 13),
		CheckOut: date(2026, 8, 10),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestSearch_SortAndPaging(t *testing.T) {
	db := setupTestDB(t)
	host := seedUser(t, db, "host")
	seedSearchVilla(t, db, host.ID, searchVilla{title: "Cheap", nightlyPrice: 50})
	seedSearchVilla(t, db, host.ID, searchVilla{title: "Mid", nightlyPrice: 100})
	seedSearchVilla(t, db, host.ID, searchVilla{title: "Pricey", nightlyPrice: 200})

	svc := NewSearchService(repository.NewVillaRepository(db))

	result, err := svc.Search(context.Background(), repository.SearchFilter{Sort: "price_low"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cheap", "Mid", "Pricey"}, titles(result.Villas))

	result, err = svc.Search(context.Background(), repository.SearchFilter{Sort: "price_high"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pricey", "Mid", "Cheap"}, titles(result.Villas))

	result, err = svc.Search(context.Background(), repository.SearchFilter{Sort: "price_low", Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)
	assert.Equal(t, []string{"Pricey"}, titles(result.Villas))
}
