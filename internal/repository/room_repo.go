package repository

import (
	"context"

	"github.com/campushub/room-booking-service/internal/models"
	"gorm.io/gorm"
)

// RoomWithMaintenance is a Room plus a computed flag from active tickets.
type RoomWithMaintenance struct {
	models.Room
	IsUnderMaintenance bool `gorm:"column:is_under_maintenance" json:"is_under_maintenance"`
}

type RoomRepository interface {
	FindByID(ctx context.Context, id string) (*models.Room, error)
	ListWithMaintenance(ctx context.Context) ([]RoomWithMaintenance, error)
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) ListWithMaintenance(ctx context.Context) ([]RoomWithMaintenance, error) {
	var rooms []RoomWithMaintenance
	err := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Select("rooms.*, COUNT(mt.id) > 0 AS is_under_maintenance").
		Joins("LEFT JOIN maintenance_tickets mt ON mt.room_id = rooms.id AND mt.status IN ?",
			[]models.MaintenanceStatus{models.MaintenanceOpen, models.MaintenanceInProgress}).
		Group("rooms.id").
		Order("rooms.code ASC").
		Scan(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}
