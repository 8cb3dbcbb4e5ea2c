package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/campushub/room-booking-service/internal/dto"
	"github.com/campushub/room-booking-service/internal/middleware"
	"github.com/campushub/room-booking-service/internal/models"
	"github.com/campushub/room-booking-service/internal/repository"
	"github.com/campushub/room-booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	bookings := e.Group("/api/v1/bookings", auth)
	bookings.POST("", h.Create)
	bookings.GET("", h.List)
	bookings.GET("/my", h.ListMine)
	bookings.GET("/:id", h.Get)
	bookings.POST("/:id/approve", h.Approve)
	bookings.POST("/:id/reject", h.Reject)
	bookings.POST("/:id/cancel", h.Cancel)
}

func (h *BookingHandler) Create(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RoomID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "room_id is required")
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "start_time and end_time are required")
	}
	if len(req.Purpose) < 3 {
		return echo.NewHTTPError(http.StatusBadRequest, "purpose must be at least 3 characters")
	}
	priority := models.BookingPriority(req.Priority)
	if req.Priority != "" && !priority.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "priority must be one of LOW, NORMAL, HIGH")
	}

	booking, err := h.svc.Create(c.Request().Context(), service.CreateBookingInput{
		RoomID:    req.RoomID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Priority:  priority,
		Purpose:   req.Purpose,
	}, middleware.ActorFrom(c))
	if err != nil {
		return bookingErrorToHTTP(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) Get(c echo.Context) error {
	booking, logs, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return bookingErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingDetailResponse(booking, logs))
}

func (h *BookingHandler) List(c echo.Context) error {
	var filter repository.ListFilter

	if s := c.QueryParam("status"); s != "" {
		status := models.BookingStatus(s)
		if !status.IsValid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status filter")
		}
		filter.Status = &status
	}
	filter.RoomID = c.QueryParam("roomId")
	if from := c.QueryParam("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid from timestamp")
		}
		filter.From = &t
	}
	if to := c.QueryParam("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid to timestamp")
		}
		filter.To = &t
	}

	bookings, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) ListMine(c echo.Context) error {
	actor := middleware.ActorFrom(c)
	bookings, err := h.svc.ListByRequester(c.Request().Context(), actor.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) Approve(c echo.Context) error {
	booking, err := h.svc.Approve(c.Request().Context(), c.Param("id"), middleware.ActorFrom(c))
	if err != nil {
		return bookingErrorToHTTP(err)
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) Reject(c echo.Context) error {
	var req dto.RejectBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Reason) < 3 {
		return echo.NewHTTPError(http.StatusBadRequest, "reason must be at least 3 characters")
	}

	booking, err := h.svc.Reject(c.Request().Context(), c.Param("id"), req.Reason, middleware.ActorFrom(c))
	if err != nil {
		return bookingErrorToHTTP(err)
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) Cancel(c echo.Context) error {
	booking, err := h.svc.Cancel(c.Request().Context(), c.Param("id"), middleware.ActorFrom(c))
	if err != nil {
		return bookingErrorToHTTP(err)
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func toBookingResponses(bookings []models.Booking) []dto.BookingResponse {
	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}
	return resp
}

// bookingErrorToHTTP maps service errors onto the stable error taxonomy:
// validation → 400, not found → 404, business conflicts → 409. Storage-level
// constraint rejections arrive here already folded into ErrBookingConflict.
func bookingErrorToHTTP(err error) error {
	switch {
	case errors.Is(err, service.ErrMissingIdentity),
		errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrPurposeTooShort):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrBookingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrRoomUnderMaintenance),
		errors.Is(err, service.ErrBookingConflict),
		errors.Is(err, service.ErrOnlyPendingApproval),
		errors.Is(err, service.ErrOnlyPendingRejection),
		errors.Is(err, service.ErrNotCancellable),
		errors.Is(err, service.ErrNotOwnerOrAdmin),
		errors.Is(err, service.ErrPrivilegedRoleRequired):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
