package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/villastay/rental-service/internal/dto"
	"github.com/villastay/rental-service/internal/models"
	"github.com/villastay/rental-service/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	villas := e.Group("/api/v1/villas")
	villas.POST("/:id/bookings", h.CreateBooking)
	villas.GET("/:id/bookings", h.ListVillaBookings)

	e.GET("/api/v1/bookings/:id", h.GetBooking)
	e.POST("/api/v1/bookings/:id/status", h.TransitionBooking)
	e.GET("/api/v1/users/:id/bookings", h.ListGuestBookings)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	villaID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.GuestID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "guest_id is required")
	}
	checkIn, err := parseDate(req.CheckIn, "check_in")
	if err != nil {
		return err
	}
	checkOut, err := parseDate(req.CheckOut, "check_out")
	if err != nil {
		return err
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), service.CreateBookingInput{
		VillaID:    villaID,
		GuestID:    req.GuestID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestCount: req.GuestCount,
		Message:    req.Message,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) TransitionBooking(c echo.Context) error {
	bookingID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.TransitionBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ActorID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "actor_id is required")
	}

	booking, err := h.svc.Transition(c.Request().Context(), bookingID, req.ActorID, service.TransitionInput{
		Status:  models.BookingStatus(req.Status),
		Reason:  req.Reason,
		Message: req.Message,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	actorID := queryUint(c, "actor_id")
	if actorID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "actor_id is required")
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), id, actorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListVillaBookings(c echo.Context) error {
	villaID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	actorID := queryUint(c, "actor_id")
	if actorID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "actor_id is required")
	}

	var status *models.BookingStatus
	if s := c.QueryParam("status"); s != "" {
		bs := models.BookingStatus(s)
		status = &bs
	}

	bookings, err := h.svc.ListVillaBookings(c.Request().Context(), villaID, actorID, status)
	if err != nil {
		return err
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) ListGuestBookings(c echo.Context) error {
	guestID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	bookings, err := h.svc.ListGuestBookings(c.Request().Context(), guestID)
	if err != nil {
		return err
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}
	return c.JSON(http.StatusOK, resp)
}
