package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaintenanceStatus string

const (
	MaintenanceOpen       MaintenanceStatus = "OPEN"
	MaintenanceInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceResolved   MaintenanceStatus = "RESOLVED"
)

// IsActive reports whether the ticket blocks bookings on its room.
func (s MaintenanceStatus) IsActive() bool {
	return s == MaintenanceOpen || s == MaintenanceInProgress
}

type MaintenanceTicket struct {
	ID          string            `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID      string            `gorm:"type:uuid;not null;index:idx_maintenance_room_status" json:"room_id"`
	Title       string            `gorm:"not null" json:"title"`
	Description *string           `gorm:"type:text" json:"description,omitempty"`
	Status      MaintenanceStatus `gorm:"type:varchar(20);not null;default:'OPEN';index:idx_maintenance_room_status" json:"status"`
	ReportedBy  string            `gorm:"not null" json:"reported_by"`
	ResolvedBy  *string           `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time        `gorm:"type:timestamptz" json:"resolved_at,omitempty"`
	CreatedAt   time.Time         `gorm:"type:timestamptz" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"type:timestamptz" json:"updated_at"`

	Room *Room `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"room,omitempty"`
}

func (m *MaintenanceTicket) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
