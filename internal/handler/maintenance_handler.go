package handler

import (
	"errors"
	"net/http"

	"github.com/campushub/room-booking-service/internal/dto"
	"github.com/campushub/room-booking-service/internal/middleware"
	"github.com/campushub/room-booking-service/internal/models"
	"github.com/campushub/room-booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type MaintenanceHandler struct {
	svc service.MaintenanceService
}

func NewMaintenanceHandler(svc service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{svc: svc}
}

func (h *MaintenanceHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	maintenance := e.Group("/api/v1/maintenance", auth)
	maintenance.POST("", h.Create)
	maintenance.PATCH("/:id/resolve", h.Resolve)
	maintenance.GET("/open", h.ListOpen)
	maintenance.GET("/alerts", h.ListAlerts)
}

func (h *MaintenanceHandler) Create(c echo.Context) error {
	var req dto.CreateMaintenanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RoomID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "room_id is required")
	}
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	ticket, err := h.svc.Create(c.Request().Context(), service.CreateTicketInput{
		RoomID:      req.RoomID,
		Title:       req.Title,
		Description: req.Description,
	}, middleware.ActorFrom(c))
	if err != nil {
		return maintenanceErrorToHTTP(err)
	}
	return c.JSON(http.StatusCreated, dto.ToTicketResponse(ticket))
}

func (h *MaintenanceHandler) Resolve(c echo.Context) error {
	ticket, err := h.svc.Resolve(c.Request().Context(), c.Param("id"), middleware.ActorFrom(c))
	if err != nil {
		return maintenanceErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, dto.ToTicketResponse(ticket))
}

func (h *MaintenanceHandler) ListOpen(c echo.Context) error {
	tickets, err := h.svc.ListOpen(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toTicketResponses(tickets))
}

func (h *MaintenanceHandler) ListAlerts(c echo.Context) error {
	tickets, err := h.svc.ListAlerts(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return maintenanceErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, toTicketResponses(tickets))
}

func toTicketResponses(tickets []models.MaintenanceTicket) []dto.TicketResponse {
	resp := make([]dto.TicketResponse, len(tickets))
	for i, t := range tickets {
		resp[i] = dto.ToTicketResponse(&t)
	}
	return resp
}

func maintenanceErrorToHTTP(err error) error {
	switch {
	case errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrTicketNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTicketAlreadyResolved),
		errors.Is(err, service.ErrPrivilegedRoleRequired):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
