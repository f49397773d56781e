package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/villastay/rental-service/internal/dto"
	"github.com/villastay/rental-service/internal/models"
	"github.com/villastay/rental-service/internal/pricing"
	"github.com/villastay/rental-service/internal/service"
)

type AvailabilityHandler struct {
	svc service.AvailabilityService
}

func NewAvailabilityHandler(svc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

func (h *AvailabilityHandler) RegisterRoutes(e *echo.Echo) {
	villas := e.Group("/api/v1/villas")
	villas.GET("/:id/calendar", h.GetCalendar)
	villas.PUT("/:id/calendar", h.SetCalendar)
}

func (h *AvailabilityHandler) GetCalendar(c echo.Context) error {
	villaID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	from, to := pricing.Day(time.Now()), time.Time{}
	if v := c.QueryParam("from"); v != "" {
		if from, err = parseDate(v, "from"); err != nil {
			return err
		}
	}
	if v := c.QueryParam("to"); v != "" {
		if to, err = parseDate(v, "to"); err != nil {
			return err
		}
	} else {
		to = from.AddDate(0, 3, 0)
	}

	days, err := h.svc.GetCalendar(c.Request().Context(), villaID, from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToCalendarResponse(villaID, pricing.Day(from), pricing.Day(to), days))
}

func (h *AvailabilityHandler) SetCalendar(c echo.Context) error {
	villaID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.SetCalendarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ActorID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "actor_id is required")
	}
	if len(req.Dates) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "dates is required")
	}

	dates := make([]time.Time, 0, len(req.Dates))
	for _, d := range req.Dates {
		parsed, err := parseDate(d, "dates")
		if err != nil {
			return err
		}
		dates = append(dates, parsed)
	}

	update, err := h.svc.SetDays(c.Request().Context(), villaID, req.ActorID, dates, models.DayStatus(req.Status))
	if err != nil {
		return err
	}

	resp := dto.CalendarUpdateResponse{Updated: []string{}, Skipped: []string{}}
	for _, d := range update.Updated {
		resp.Updated = append(resp.Updated, d.Format(dto.DateLayout))
	}
	for _, d := range update.Skipped {
		resp.Skipped = append(resp.Skipped, d.Format(dto.DateLayout))
	}
	return c.JSON(http.StatusOK, resp)
}
