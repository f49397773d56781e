package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/villastay/rental-service/internal/dto"
	"github.com/villastay/rental-service/internal/models"
	"github.com/villastay/rental-service/internal/repository"
	"github.com/villastay/rental-service/internal/service"
)

type VillaHandler struct {
	svc    service.VillaService
	search service.SearchService
}

func NewVillaHandler(svc service.VillaService, search service.SearchService) *VillaHandler {
	return &VillaHandler{svc: svc, search: search}
}

func (h *VillaHandler) RegisterRoutes(e *echo.Echo) {
	villas := e.Group("/api/v1/villas")
	villas.POST("", h.CreateVilla)
	villas.GET("", h.SearchVillas)
	villas.GET("/:id", h.GetVilla)
	villas.PATCH("/:id", h.UpdateVilla)
	villas.PUT("/:id/status", h.SetStatus)

	e.GET("/api/v1/users/:id/villas", h.ListHostVillas)
}

func (h *VillaHandler) CreateVilla(c echo.Context) error {
	var req dto.CreateVillaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.HostID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "host_id is required")
	}

	villa, err := h.svc.CreateVilla(c.Request().Context(), service.CreateVillaInput{
		HostID:        req.HostID,
		Title:         req.Title,
		Description:   req.Description,
		City:          req.City,
		Country:       req.Country,
		PropertyType:  req.PropertyType,
		MaxGuests:     req.MaxGuests,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		NightlyPrice:  req.NightlyPrice,
		CleaningFee:   req.CleaningFee,
		MinimumNights: req.MinimumNights,
		Amenities:     req.Amenities,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.ToVillaResponse(villa))
}

func (h *VillaHandler) GetVilla(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	villa, err := h.svc.GetVilla(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToVillaResponse(villa))
}

func (h *VillaHandler) UpdateVilla(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateVillaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ActorID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "actor_id is required")
	}
	// Only cleaning_fee is nullable; an explicit null anywhere else is a
	// malformed request, not a clear-the-field instruction.
	for name, p := range map[string]bool{
		"title":          req.Title.Null,
		"description":    req.Description.Null,
		"city":           req.City.Null,
		"country":        req.Country.Null,
		"property_type":  req.PropertyType.Null,
		"max_guests":     req.MaxGuests.Null,
		"bedrooms":       req.Bedrooms.Null,
		"bathrooms":      req.Bathrooms.Null,
		"nightly_price":  req.NightlyPrice.Null,
		"minimum_nights": req.MinimumNights.Null,
		"amenities":      req.Amenities.Null,
	} {
		if p {
			return echo.NewHTTPError(http.StatusBadRequest, name+" cannot be null")
		}
	}

	patch := service.VillaPatch{
		Title:          req.Title.Ptr(),
		Description:    req.Description.Ptr(),
		City:           req.City.Ptr(),
		Country:        req.Country.Ptr(),
		PropertyType:   req.PropertyType.Ptr(),
		MaxGuests:      req.MaxGuests.Ptr(),
		Bedrooms:       req.Bedrooms.Ptr(),
		Bathrooms:      req.Bathrooms.Ptr(),
		NightlyPrice:   req.NightlyPrice.Ptr(),
		CleaningFeeSet: req.CleaningFee.Set,
		CleaningFee:    req.CleaningFee.Ptr(),
		MinimumNights:  req.MinimumNights.Ptr(),
		Amenities:      req.Amenities.Ptr(),
	}

	villa, err := h.svc.UpdateVilla(c.Request().Context(), id, req.ActorID, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToVillaResponse(villa))
}

func (h *VillaHandler) SetStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.SetVillaStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ActorID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "actor_id is required")
	}

	villa, err := h.svc.SetStatus(c.Request().Context(), id, req.ActorID, models.VillaStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToVillaResponse(villa))
}

func (h *VillaHandler) ListHostVillas(c echo.Context) error {
	hostID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	villas, err := h.svc.ListByHost(c.Request().Context(), hostID)
	if err != nil {
		return err
	}
	resp := make([]dto.VillaResponse, len(villas))
	for i := range villas {
		resp[i] = dto.ToVillaResponse(&villas[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *VillaHandler) SearchVillas(c echo.Context) error {
	f := repository.SearchFilter{
		City:         c.QueryParam("city"),
		Country:      c.QueryParam("country"),
		MinGuests:    queryInt(c, "guests"),
		MinPrice:     queryFloat(c, "min_price"),
		MaxPrice:     queryFloat(c, "max_price"),
		MinBedrooms:  queryInt(c, "min_bedrooms"),
		MinBathrooms: queryInt(c, "min_bathrooms"),
		Sort:         c.QueryParam("sort"),
		Limit:        queryInt(c, "limit"),
		Offset:       queryInt(c, "offset"),
	}
	if v := c.QueryParam("property_types"); v != "" {
		f.PropertyTypes = strings.Split(v, ",")
	}
	if v := c.QueryParam("amenities"); v != "" {
		f.Amenities = strings.Split(v, ",")
	}
	if ci := c.QueryParam("check_in"); ci != "" {
		t, err := parseDate(ci, "check_in")
		if err != nil {
			return err
		}
		f.CheckIn = t
	}
	if co := c.QueryParam("check_out"); co != "" {
		t, err := parseDate(co, "check_out")
		if err != nil {
			return err
		}
		f.CheckOut = t
	}

	result, err := h.search.Search(c.Request().Context(), f)
	if err != nil {
		return err
	}

	items := make([]dto.VillaResponse, len(result.Villas))
	for i := range result.Villas {
		items[i] = dto.ToVillaResponse(&result.Villas[i])
	}
	return c.JSON(http.StatusOK, dto.SearchResponse{
		Items:  items,
		Total:  result.Total,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
}
