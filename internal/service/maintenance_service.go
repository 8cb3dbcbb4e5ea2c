package service

import (
	"context"
	"errors"
	"time"

	"github.com/campushub/room-booking-service/internal/models"
	"github.com/campushub/room-booking-service/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTicketNotFound        = errors.New("ticket not found")
	ErrTicketAlreadyResolved = errors.New("ticket already resolved")
)

type CreateTicketInput struct {
	RoomID      string
	Title       string
	Description *string
}

type MaintenanceService interface {
	Create(ctx context.Context, input CreateTicketInput, actor Actor) (*models.MaintenanceTicket, error)
	Resolve(ctx context.Context, id string, actor Actor) (*models.MaintenanceTicket, error)
	ListOpen(ctx context.Context) ([]models.MaintenanceTicket, error)
	ListAlerts(ctx context.Context, actor Actor) ([]models.MaintenanceTicket, error)
	IsUnderMaintenance(ctx context.Context, roomID string) (bool, error)
}

type maintenanceService struct {
	maintenanceRepo repository.MaintenanceRepository
	roomRepo        repository.RoomRepository
	db              *gorm.DB
}

func NewMaintenanceService(maintenanceRepo repository.MaintenanceRepository, roomRepo repository.RoomRepository, db *gorm.DB) MaintenanceService {
	return &maintenanceService{
		maintenanceRepo: maintenanceRepo,
		roomRepo:        roomRepo,
		db:              db,
	}
}

func (s *maintenanceService) Create(ctx context.Context, input CreateTicketInput, actor Actor) (*models.MaintenanceTicket, error) {
	if !actor.Role.IsPrivileged() {
		return nil, ErrPrivilegedRoleRequired
	}
	if _, err := s.roomRepo.FindByID(ctx, input.RoomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	ticket := &models.MaintenanceTicket{
		RoomID:      input.RoomID,
		Title:       input.Title,
		Description: input.Description,
		Status:      models.MaintenanceOpen,
		ReportedBy:  actor.ID,
	}
	if err := s.maintenanceRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *maintenanceService) Resolve(ctx context.Context, id string, actor Actor) (*models.MaintenanceTicket, error) {
	if !actor.Role.IsPrivileged() {
		return nil, ErrPrivilegedRoleRequired
	}
	ticket, err := s.maintenanceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	if ticket.Status == models.MaintenanceResolved {
		return nil, ErrTicketAlreadyResolved
	}

	now := time.Now()
	ticket.Status = models.MaintenanceResolved
	ticket.ResolvedBy = &actor.ID
	ticket.ResolvedAt = &now
	if err := s.maintenanceRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *maintenanceService) ListOpen(ctx context.Context) ([]models.MaintenanceTicket, error) {
	return s.maintenanceRepo.ListByStatus(ctx, models.MaintenanceOpen)
}

func (s *maintenanceService) ListAlerts(ctx context.Context, actor Actor) ([]models.MaintenanceTicket, error) {
	if !actor.Role.IsPrivileged() {
		return nil, ErrPrivilegedRoleRequired
	}
	return s.maintenanceRepo.ListByStatus(ctx, models.MaintenanceOpen, models.MaintenanceInProgress)
}

func (s *maintenanceService) IsUnderMaintenance(ctx context.Context, roomID string) (bool, error) {
	count, err := s.maintenanceRepo.CountActiveByRoom(ctx, s.db, roomID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
