package repository

import (
	"context"

	"github.com/campushub/room-booking-service/internal/models"
	"gorm.io/gorm"
)

type OutboxRepository interface {
	Create(ctx context.Context, tx *gorm.DB, record *models.NotificationOutbox) error
	ClaimPending(ctx context.Context, tx *gorm.DB, limit int) ([]models.NotificationOutbox, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status models.OutboxStatus) error
	GetDB() *gorm.DB
}

type outboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *outboxRepository) Create(ctx context.Context, tx *gorm.DB, record *models.NotificationOutbox) error {
	return tx.WithContext(ctx).Create(record).Error
}

// ClaimPending locks up to limit PENDING rows oldest-first. SKIP LOCKED keeps
// concurrent relay instances from publishing the same row twice.
func (r *outboxRepository) ClaimPending(ctx context.Context, tx *gorm.DB, limit int) ([]models.NotificationOutbox, error) {
	var records []models.NotificationOutbox
	err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE SKIP LOCKED").
		Where("status = ?", models.OutboxPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *outboxRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status models.OutboxStatus) error {
	return tx.WithContext(ctx).
		Model(&models.NotificationOutbox{}).
		Where("id = ?", id).
		Update("status", status).Error
}
