package repository

import (
	"context"
	"time"

	"github.com/campushub/room-booking-service/internal/models"
	"gorm.io/gorm"
)

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Status *models.BookingStatus
	RoomID string
	From   *time.Time
	To     *time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	Save(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error)
	CountOverlapping(ctx context.Context, tx *gorm.DB, roomID string, start, end time.Time, excludeID string) (int64, error)
	List(ctx context.Context, filter ListFilter) ([]models.Booking, error)
	ListByRequester(ctx context.Context, requesterID string) ([]models.Booking, error)
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) Save(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Save(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate acquires a row-level lock on the booking within the given
// transaction, serializing concurrent transitions on the same booking.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// CountOverlapping counts live bookings on the room whose half-open interval
// [start_time, end_time) intersects [start, end), optionally excluding one
// booking id. It is a pure read and may run inside or outside a transaction;
// the bookings_no_overlap exclusion constraint remains the authoritative
// enforcement at commit time.
func (r *bookingRepository) CountOverlapping(ctx context.Context, tx *gorm.DB, roomID string, start, end time.Time, excludeID string) (int64, error) {
	var count int64
	q := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", []models.BookingStatus{models.StatusPending, models.StatusApproved}).
		Where("start_time < ? AND ? < end_time", end, start)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *bookingRepository) List(ctx context.Context, filter ListFilter) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).Model(&models.Booking{})
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.RoomID != "" {
		q = q.Where("room_id = ?", filter.RoomID)
	}
	if filter.From != nil {
		q = q.Where("start_time >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("end_time <= ?", *filter.To)
	}
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) ListByRequester(ctx context.Context, requesterID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
