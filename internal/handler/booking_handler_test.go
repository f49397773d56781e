package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/villastay/rental-service/internal/dto"
	"github.com/villastay/rental-service/internal/middleware"
	"github.com/villastay/rental-service/internal/models"
	"github.com/villastay/rental-service/internal/service"
)

type mockBookingService struct {
	createFn     func(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error)
	transitionFn func(ctx context.Context, bookingID, actorID uint, in service.TransitionInput) (*models.Booking, error)
	getFn        func(ctx context.Context, id, actorID uint) (*models.Booking, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error) {
	return m.createFn(ctx, in)
}

func (m *mockBookingService) Transition(ctx context.Context, bookingID, actorID uint, in service.TransitionInput) (*models.Booking, error) {
	return m.transitionFn(ctx, bookingID, actorID, in)
}

func (m *mockBookingService) GetBooking(ctx context.Context, id, actorID uint) (*models.Booking, error) {
	return m.getFn(ctx, id, actorID)
}

func (m *mockBookingService) ListVillaBookings(ctx context.Context, villaID, actorID uint, status *models.BookingStatus) ([]models.Booking, error) {
	return nil, nil
}

func (m *mockBookingService) ListGuestBookings(ctx context.Context, guestID uint) ([]models.Booking, error) {
	return nil, nil
}

func newBookingTestServer(svc service.BookingService) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	NewBookingHandler(svc).RegisterRoutes(e)
	return e
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleBooking() *models.Booking {
	return &models.Booking{
		ID:         7,
		Reference:  "ref-7",
		VillaID:    3,
		GuestID:    11,
		HostID:     5,
		CheckIn:    day(2026, 6, 10),
		CheckOut:   day(2026, 6, 13),
		GuestCount: 2,
		TotalPrice: 350,
		Status:     models.BookingPending,
	}
}

func TestCreateBooking(t *testing.T) {
	var got service.CreateBookingInput
	svc := &mockBookingService{
		createFn: func(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error) {
			got = in
			return sampleBooking(), nil
		},
	}
	e := newBookingTestServer(svc)

	body := `{"guest_id":11,"check_in":"2026-06-10","check_out":"2026-06-13","guest_count":2,"message":"hi"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/villas/3/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, uint(3), got.VillaID)
	assert.Equal(t, uint(11), got.GuestID)
	assert.True(t, got.CheckIn.Equal(day(2026, 6, 10)))

	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-06-10", resp.CheckIn)
	assert.Equal(t, 3, resp.Nights)
	assert.Equal(t, 350.0, resp.TotalPrice)
}

func TestCreateBooking_BadRequests(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}
	e := newBookingTestServer(svc)

	cases := []struct {
		name string
		body string
	}{
		{"missing guest", `{"check_in":"2026-06-10","check_out":"2026-06-13","guest_count":2}`},
		{"bad date", `{"guest_id":11,"check_in":"next tuesday","check_out":"2026-06-13","guest_count":2}`},
		{"not json", `not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/villas/3/bookings", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateBooking_ServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"villa missing", service.ErrVillaNotFound, http.StatusNotFound},
		{"dates taken", service.ErrDateConflict, http.StatusConflict},
		{"too short", service.ErrMinimumNights, http.StatusBadRequest},
		{"own villa", service.ErrSelfBooking, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockBookingService{
				createFn: func(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error) {
					return nil, tc.err
				},
			}
			e := newBookingTestServer(svc)

			body := `{"guest_id":11,"check_in":"2026-06-10","check_out":"2026-06-13","guest_count":2}`
			req := httptest.NewRequest(http.MethodPost, "/api/v1/villas/3/bookings", strings.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tc.code, rec.Code)

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.err.(*service.Error).Reason, resp.Reason)
		})
	}
}

func TestTransitionBooking(t *testing.T) {
	svc := &mockBookingService{
		transitionFn: func(ctx context.Context, bookingID, actorID uint, in service.TransitionInput) (*models.Booking, error) {
			assert.Equal(t, uint(7), bookingID)
			assert.Equal(t, uint(5), actorID)
			assert.Equal(t, models.BookingConfirmed, in.Status)
			b := sampleBooking()
			b.Status = models.BookingConfirmed
			return b, nil
		},
	}
	e := newBookingTestServer(svc)

	body := `{"actor_id":5,"status":"confirmed","message":"door code 4421"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/7/status", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(models.BookingConfirmed), resp.Status)
}

func TestTransitionBooking_ForbiddenForOutsiders(t *testing.T) {
	svc := &mockBookingService{
		transitionFn: func(ctx context.Context, bookingID, actorID uint, in service.TransitionInput) (*models.Booking, error) {
			return nil, service.ErrNotHost
		},
	}
	e := newBookingTestServer(svc)

	body := `{"actor_id":99,"status":"confirmed"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/7/status", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetBooking(t *testing.T) {
	svc := &mockBookingService{
		getFn: func(ctx context.Context, id, actorID uint) (*models.Booking, error) {
			assert.Equal(t, uint(7), id)
			assert.Equal(t, uint(11), actorID)
			return sampleBooking(), nil
		},
	}
	e := newBookingTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/7?actor_id=11", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// actor_id is mandatory on reads too.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/bookings/7", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
