package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/villastay/rental-service/internal/dto"
	"github.com/villastay/rental-service/internal/service"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/bookings/:id/reviews", h.SubmitReview)
	e.PATCH("/api/v1/reviews/:id", h.UpdateReview)
	e.GET("/api/v1/villas/:id/reviews", h.ListVillaReviews)
	e.GET("/api/v1/users/:id/reviews", h.ListUserReviews)
}

func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	bookingID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.SubmitReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ReviewerID == 0 || req.RevieweeID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "reviewer_id and reviewee_id are required")
	}

	review, err := h.svc.Submit(c.Request().Context(), service.SubmitReviewInput{
		BookingID:       bookingID,
		ReviewerID:      req.ReviewerID,
		RevieweeID:      req.RevieweeID,
		Rating:          req.Rating,
		Comment:         req.Comment,
		PrivateFeedback: req.PrivateFeedback,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.ToReviewResponse(review))
}

func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	reviewID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ActorID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "actor_id is required")
	}

	review, err := h.svc.UpdateReview(c.Request().Context(), reviewID, req.ActorID, service.UpdateReviewInput{
		Rating:          req.Rating.Ptr(),
		Comment:         req.Comment.Ptr(),
		PrivateFeedback: req.PrivateFeedback.Ptr(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToReviewResponse(review))
}

func (h *ReviewHandler) ListVillaReviews(c echo.Context) error {
	villaID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	reviews, err := h.svc.ListVillaReviews(c.Request().Context(), villaID, queryInt(c, "limit"), queryInt(c, "offset"))
	if err != nil {
		return err
	}

	resp := make([]dto.ReviewResponse, len(reviews))
	for i := range reviews {
		resp[i] = dto.ToReviewResponse(&reviews[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) ListUserReviews(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	reviews, err := h.svc.ListByReviewer(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	resp := make([]dto.ReviewResponse, len(reviews))
	for i := range reviews {
		resp[i] = dto.ToReviewResponse(&reviews[i])
	}
	return c.JSON(http.StatusOK, resp)
}
