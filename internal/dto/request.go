package dto

import "time"

type CreateBookingRequest struct {
	RoomID    string    `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Priority  string    `json:"priority"`
	Purpose   string    `json:"purpose"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason"`
}

type CreateMaintenanceRequest struct {
	RoomID      string  `json:"room_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}
