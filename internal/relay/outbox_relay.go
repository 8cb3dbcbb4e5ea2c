package relay

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/campushub/room-booking-service/internal/models"
	"github.com/campushub/room-booking-service/internal/repository"
	"gorm.io/gorm"
)

// Publisher is the broker-facing half of the relay; satisfied by
// pkg/rabbitmq.Publisher.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, record *models.NotificationOutbox) error
}

// OutboxRelay drains PENDING notification_outbox rows and hands them to the
// broker. It runs outside any request transaction: the rows it reads were
// committed together with their booking state change, so nothing published
// here can refer to a state that never existed.
type OutboxRelay struct {
	outboxRepo repository.OutboxRepository
	publisher  Publisher
	interval   time.Duration
	batchSize  int
	stop       chan struct{}
	done       chan struct{}
}

func NewOutboxRelay(outboxRepo repository.OutboxRepository, publisher Publisher, interval time.Duration, batchSize int) *OutboxRelay {
	return &OutboxRelay{
		outboxRepo: outboxRepo,
		publisher:  publisher,
		interval:   interval,
		batchSize:  batchSize,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (r *OutboxRelay) Start() {
	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				if err := r.drain(context.Background()); err != nil {
					log.Printf("[OutboxRelay] drain failed: %v", err)
				}
			}
		}
	}()
}

func (r *OutboxRelay) Stop() {
	close(r.stop)
	<-r.done
}

func (r *OutboxRelay) drain(ctx context.Context) error {
	return r.outboxRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		records, err := r.outboxRepo.ClaimPending(ctx, tx, r.batchSize)
		if err != nil {
			return err
		}
		for _, record := range records {
			status := models.OutboxSent
			if err := r.publisher.Publish(ctx, RoutingKey(record.EventType), &record); err != nil {
				log.Printf("[OutboxRelay] publish %s failed: %v", record.ID, err)
				status = models.OutboxFailed
			}
			if err := r.outboxRepo.UpdateStatus(ctx, tx, record.ID, status); err != nil {
				return err
			}
		}
		return nil
	})
}

// RoutingKey maps an outbox event type to its broker routing key,
// e.g. BOOKING_APPROVED → booking.approved.
func RoutingKey(eventType string) string {
	suffix := strings.ToLower(strings.TrimPrefix(eventType, "BOOKING_"))
	return "booking." + suffix
}
