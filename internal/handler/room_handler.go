package handler

import (
	"net/http"

	"github.com/campushub/room-booking-service/internal/repository"
	"github.com/labstack/echo/v4"
)

type RoomHandler struct {
	roomRepo repository.RoomRepository
}

func NewRoomHandler(roomRepo repository.RoomRepository) *RoomHandler {
	return &RoomHandler{roomRepo: roomRepo}
}

func (h *RoomHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/api/v1/rooms", h.List, auth)
}

// List returns the room catalog with a computed maintenance flag. The catalog
// itself is managed elsewhere; this service only reads it.
func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.roomRepo.ListWithMaintenance(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rooms)
}
