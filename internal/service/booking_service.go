package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/campushub/room-booking-service/internal/models"
	"github.com/campushub/room-booking-service/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrMissingIdentity        = errors.New("missing requester identity")
	ErrInvalidTimeRange       = errors.New("invalid time range: start must be before end")
	ErrPurposeTooShort        = errors.New("purpose must be at least 3 characters")
	ErrRoomNotFound           = errors.New("room not found")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrRoomUnderMaintenance   = errors.New("room is under maintenance")
	ErrBookingConflict        = errors.New("booking conflict detected")
	ErrOnlyPendingApproval    = errors.New("only pending bookings can be approved")
	ErrOnlyPendingRejection   = errors.New("only pending bookings can be rejected")
	ErrNotCancellable         = errors.New("only pending or approved bookings can be cancelled")
	ErrNotOwnerOrAdmin        = errors.New("only owner or admin can cancel booking")
	ErrPrivilegedRoleRequired = errors.New("admin or staff role required")
)

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID   string
	Role models.Role
}

type CreateBookingInput struct {
	RoomID    string
	StartTime time.Time
	EndTime   time.Time
	Priority  models.BookingPriority
	Purpose   string
}

type BookingService interface {
	Create(ctx context.Context, input CreateBookingInput, actor Actor) (*models.Booking, error)
	Approve(ctx context.Context, id string, actor Actor) (*models.Booking, error)
	Reject(ctx context.Context, id string, reason string, actor Actor) (*models.Booking, error)
	Cancel(ctx context.Context, id string, actor Actor) (*models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, []models.AuditLog, error)
	List(ctx context.Context, filter repository.ListFilter) ([]models.Booking, error)
	ListByRequester(ctx context.Context, requesterID string) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo     repository.BookingRepository
	roomRepo        repository.RoomRepository
	auditRepo       repository.AuditRepository
	outboxRepo      repository.OutboxRepository
	maintenanceRepo repository.MaintenanceRepository
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	roomRepo repository.RoomRepository,
	auditRepo repository.AuditRepository,
	outboxRepo repository.OutboxRepository,
	maintenanceRepo repository.MaintenanceRepository,
) BookingService {
	return &bookingService{
		bookingRepo:     bookingRepo,
		roomRepo:        roomRepo,
		auditRepo:       auditRepo,
		outboxRepo:      outboxRepo,
		maintenanceRepo: maintenanceRepo,
	}
}

// bookingEventPayload is the snapshot written to the notification outbox.
type bookingEventPayload struct {
	BookingID   string                 `json:"booking_id"`
	Status      models.BookingStatus   `json:"status"`
	RoomID      string                 `json:"room_id"`
	StartTime   time.Time              `json:"start_time"`
	EndTime     time.Time              `json:"end_time"`
	RequesterID string                 `json:"requester_id,omitempty"`
	Priority    models.BookingPriority `json:"priority,omitempty"`
	ActorID     string                 `json:"actor_id,omitempty"`
	Reason      string                 `json:"reason,omitempty"`
}

func (s *bookingService) Create(ctx context.Context, input CreateBookingInput, actor Actor) (*models.Booking, error) {
	if actor.ID == "" || actor.Role == "" {
		return nil, ErrMissingIdentity
	}
	if !input.StartTime.Before(input.EndTime) {
		return nil, ErrInvalidTimeRange
	}
	if len(input.Purpose) < 3 {
		return nil, ErrPurposeTooShort
	}

	if _, err := s.roomRepo.FindByID(ctx, input.RoomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	// Fast-fail pre-checks. The exclusion constraint is what actually closes
	// the race between two concurrent creates; this just avoids paying for a
	// transaction when the conflict is already visible.
	db := s.bookingRepo.GetDB()
	active, err := s.maintenanceRepo.CountActiveByRoom(ctx, db, input.RoomID)
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, ErrRoomUnderMaintenance
	}
	overlaps, err := s.bookingRepo.CountOverlapping(ctx, db, input.RoomID, input.StartTime, input.EndTime, "")
	if err != nil {
		return nil, err
	}
	if overlaps > 0 {
		return nil, ErrBookingConflict
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}

	booking := &models.Booking{
		RoomID:        input.RoomID,
		RequesterID:   actor.ID,
		RequesterRole: actor.Role.String(),
		Purpose:       input.Purpose,
		Priority:      priority,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		Status:        models.StatusPending,
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}
		if err := s.recordTransition(ctx, tx, booking, models.ActionBookingSubmitted, nil, actor, ""); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		// Race lost: another live booking committed first and the
		// bookings_no_overlap constraint rejected ours. Everything written in
		// the transaction, audit and outbox rows included, rolled back.
		if isExclusionViolation(err) {
			return nil, ErrBookingConflict
		}
		return nil, err
	}

	return booking, nil
}

func (s *bookingService) Approve(ctx context.Context, id string, actor Actor) (*models.Booking, error) {
	if !actor.Role.IsPrivileged() {
		return nil, ErrPrivilegedRoleRequired
	}

	var result *models.Booking
	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if !booking.Status.CanTransitionTo(models.StatusApproved) {
			return ErrOnlyPendingApproval
		}

		active, err := s.maintenanceRepo.CountActiveByRoom(ctx, tx, booking.RoomID)
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrRoomUnderMaintenance
		}

		// A newer approved booking may have appeared since submission.
		overlaps, err := s.bookingRepo.CountOverlapping(ctx, tx, booking.RoomID, booking.StartTime, booking.EndTime, booking.ID)
		if err != nil {
			return err
		}
		if overlaps > 0 {
			return ErrBookingConflict
		}

		now := time.Now()
		booking.Status = models.StatusApproved
		booking.ApprovedBy = &actor.ID
		booking.ApprovedAt = &now
		if err := s.bookingRepo.Save(ctx, tx, booking); err != nil {
			return err
		}

		from := models.StatusPending
		if err := s.recordTransition(ctx, tx, booking, models.ActionBookingApproved, &from, actor, ""); err != nil {
			return err
		}
		result = booking
		return nil
	})
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrBookingConflict
		}
		return nil, err
	}
	return result, nil
}

func (s *bookingService) Reject(ctx context.Context, id string, reason string, actor Actor) (*models.Booking, error) {
	if !actor.Role.IsPrivileged() {
		return nil, ErrPrivilegedRoleRequired
	}

	var result *models.Booking
	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if !booking.Status.CanTransitionTo(models.StatusRejected) {
			return ErrOnlyPendingRejection
		}

		booking.Status = models.StatusRejected
		booking.RejectionReason = &reason
		if err := s.bookingRepo.Save(ctx, tx, booking); err != nil {
			return err
		}

		from := models.StatusPending
		if err := s.recordTransition(ctx, tx, booking, models.ActionBookingRejected, &from, actor, reason); err != nil {
			return err
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string, actor Actor) (*models.Booking, error) {
	var result *models.Booking
	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.RequesterID != actor.ID && !actor.Role.IsPrivileged() {
			return ErrNotOwnerOrAdmin
		}
		if !booking.Status.CanTransitionTo(models.StatusCancelled) {
			return ErrNotCancellable
		}

		previous := booking.Status
		now := time.Now()
		booking.Status = models.StatusCancelled
		booking.CancelledBy = &actor.ID
		booking.CancelledAt = &now
		if err := s.bookingRepo.Save(ctx, tx, booking); err != nil {
			return err
		}

		if err := s.recordTransition(ctx, tx, booking, models.ActionBookingCancelled, &previous, actor, ""); err != nil {
			return err
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *bookingService) Get(ctx context.Context, id string) (*models.Booking, []models.AuditLog, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrBookingNotFound
		}
		return nil, nil, err
	}
	logs, err := s.auditRepo.ListByBookingID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return booking, logs, nil
}

func (s *bookingService) List(ctx context.Context, filter repository.ListFilter) ([]models.Booking, error) {
	return s.bookingRepo.List(ctx, filter)
}

func (s *bookingService) ListByRequester(ctx context.Context, requesterID string) ([]models.Booking, error) {
	return s.bookingRepo.ListByRequester(ctx, requesterID)
}

// recordTransition appends the audit log entry and outbox record for one
// state change. It must run inside the same transaction as the booking write.
func (s *bookingService) recordTransition(ctx context.Context, tx *gorm.DB, booking *models.Booking, action string, from *models.BookingStatus, actor Actor, reason string) error {
	if err := s.auditRepo.Create(ctx, tx, &models.AuditLog{
		BookingID: booking.ID,
		Action:    action,
		ActorID:   actor.ID,
		ActorRole: actor.Role.String(),
		FromState: from,
		ToState:   booking.Status,
	}); err != nil {
		return err
	}

	payload := bookingEventPayload{
		BookingID: booking.ID,
		Status:    booking.Status,
		RoomID:    booking.RoomID,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		ActorID:   actor.ID,
		Reason:    reason,
	}
	if action == models.ActionBookingSubmitted {
		payload.RequesterID = booking.RequesterID
		payload.Priority = booking.Priority
		payload.ActorID = ""
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return s.outboxRepo.Create(ctx, tx, &models.NotificationOutbox{
		BookingID: booking.ID,
		EventType: action,
		Payload:   body,
		Status:    models.OutboxPending,
	})
}

// isExclusionViolation matches the bookings_no_overlap constraint rejecting a
// commit (SQLSTATE 23P01, exclusion_violation).
func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" || pgErr.ConstraintName == "bookings_no_overlap"
	}
	return false
}
