package repository

import (
	"context"

	"github.com/campushub/room-booking-service/internal/models"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *models.AuditLog) error
	ListByBookingID(ctx context.Context, bookingID string) ([]models.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, tx *gorm.DB, entry *models.AuditLog) error {
	return tx.WithContext(ctx).Create(entry).Error
}

// ListByBookingID returns the booking's trail in chronological order.
func (r *auditRepository) ListByBookingID(ctx context.Context, bookingID string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
