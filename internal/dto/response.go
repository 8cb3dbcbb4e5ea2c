package dto

import (
	"time"

	"github.com/campushub/room-booking-service/internal/models"
)

type BookingResponse struct {
	ID              string                 `json:"id"`
	RoomID          string                 `json:"room_id"`
	RequesterID     string                 `json:"requester_id"`
	RequesterRole   string                 `json:"requester_role"`
	Purpose         string                 `json:"purpose"`
	Priority        models.BookingPriority `json:"priority"`
	StartTime       time.Time              `json:"start_time"`
	EndTime         time.Time              `json:"end_time"`
	Status          models.BookingStatus   `json:"status"`
	RejectionReason *string                `json:"rejection_reason,omitempty"`
	ApprovedBy      *string                `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time             `json:"approved_at,omitempty"`
	CancelledBy     *string                `json:"cancelled_by,omitempty"`
	CancelledAt     *time.Time             `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

type AuditLogResponse struct {
	ID        string                `json:"id"`
	Action    string                `json:"action"`
	ActorID   string                `json:"actor_id"`
	ActorRole string                `json:"actor_role"`
	FromState *models.BookingStatus `json:"from_state,omitempty"`
	ToState   models.BookingStatus  `json:"to_state"`
	CreatedAt time.Time             `json:"created_at"`
}

type BookingDetailResponse struct {
	BookingResponse
	AuditLogs []AuditLogResponse `json:"audit_logs"`
}

type TicketResponse struct {
	ID          string                   `json:"id"`
	RoomID      string                   `json:"room_id"`
	Title       string                   `json:"title"`
	Description *string                  `json:"description,omitempty"`
	Status      models.MaintenanceStatus `json:"status"`
	ReportedBy  string                   `json:"reported_by"`
	ResolvedBy  *string                  `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time               `json:"resolved_at,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		RoomID:          b.RoomID,
		RequesterID:     b.RequesterID,
		RequesterRole:   b.RequesterRole,
		Purpose:         b.Purpose,
		Priority:        b.Priority,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Status:          b.Status,
		RejectionReason: b.RejectionReason,
		ApprovedBy:      b.ApprovedBy,
		ApprovedAt:      b.ApprovedAt,
		CancelledBy:     b.CancelledBy,
		CancelledAt:     b.CancelledAt,
		CreatedAt:       b.CreatedAt,
	}
}

func ToAuditLogResponse(a *models.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:        a.ID,
		Action:    a.Action,
		ActorID:   a.ActorID,
		ActorRole: a.ActorRole,
		FromState: a.FromState,
		ToState:   a.ToState,
		CreatedAt: a.CreatedAt,
	}
}

func ToBookingDetailResponse(b *models.Booking, logs []models.AuditLog) BookingDetailResponse {
	resp := BookingDetailResponse{
		BookingResponse: ToBookingResponse(b),
		AuditLogs:       make([]AuditLogResponse, len(logs)),
	}
	for i, l := range logs {
		resp.AuditLogs[i] = ToAuditLogResponse(&l)
	}
	return resp
}

func ToTicketResponse(t *models.MaintenanceTicket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		RoomID:      t.RoomID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		ReportedBy:  t.ReportedBy,
		ResolvedBy:  t.ResolvedBy,
		ResolvedAt:  t.ResolvedAt,
		CreatedAt:   t.CreatedAt,
	}
}
