package repository

import (
	"context"

	"github.com/campushub/room-booking-service/internal/models"
	"gorm.io/gorm"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, ticket *models.MaintenanceTicket) error
	Save(ctx context.Context, ticket *models.MaintenanceTicket) error
	FindByID(ctx context.Context, id string) (*models.MaintenanceTicket, error)
	ListByStatus(ctx context.Context, statuses ...models.MaintenanceStatus) ([]models.MaintenanceTicket, error)
	CountActiveByRoom(ctx context.Context, tx *gorm.DB, roomID string) (int64, error)
}

type maintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) Create(ctx context.Context, ticket *models.MaintenanceTicket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *maintenanceRepository) Save(ctx context.Context, ticket *models.MaintenanceTicket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

func (r *maintenanceRepository) FindByID(ctx context.Context, id string) (*models.MaintenanceTicket, error) {
	var ticket models.MaintenanceTicket
	if err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *maintenanceRepository) ListByStatus(ctx context.Context, statuses ...models.MaintenanceStatus) ([]models.MaintenanceTicket, error) {
	var tickets []models.MaintenanceTicket
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// CountActiveByRoom is the maintenance gate: any OPEN or IN_PROGRESS ticket
// on the room blocks new and approved bookings.
func (r *maintenanceRepository) CountActiveByRoom(ctx context.Context, tx *gorm.DB, roomID string) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.MaintenanceTicket{}).
		Where("room_id = ? AND status IN ?", roomID,
			[]models.MaintenanceStatus{models.MaintenanceOpen, models.MaintenanceInProgress}).
		Count(&count).Error
	return count, err
}
