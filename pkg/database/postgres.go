package database

import (
	"log"

	"github.com/campushub/room-booking-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Room{},
		&models.Booking{},
		&models.MaintenanceTicket{},
		&models.AuditLog{},
		&models.NotificationOutbox{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	ApplyConstraints(db)

	return db
}

// ApplyConstraints installs the storage-level guarantees AutoMigrate cannot
// express. The bookings_no_overlap exclusion constraint is the authoritative
// enforcement of the "no two live overlapping bookings per room" invariant:
// the application pre-check can race, the constraint cannot.
func ApplyConstraints(db *gorm.DB) {
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)

	db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap'
			) THEN
				ALTER TABLE bookings
				ADD CONSTRAINT bookings_no_overlap
				EXCLUDE USING GIST (
					room_id WITH =,
					tstzrange(start_time, end_time) WITH &&
				) WHERE (status IN ('PENDING','APPROVED'));
			END IF;
		END
		$$;
	`)

	// Partial index for the relay's PENDING scan
	db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_outbox_pending
		ON notification_outbox (created_at)
		WHERE status = 'PENDING'
	`)
}
