package events

import (
	"context"
	"fmt"
	"time"

	"campaign-server/internal/authz"
	"campaign-server/internal/clients/kafka"
	"campaign-server/internal/observability"
	"campaign-server/internal/workers"

	"github.com/google/uuid"
)

// Event types
const (
	TypeCampaignStatusChanged = "campaign.status_changed"
)

// StatusChange is the payload of a campaign.status_changed event.
type StatusChange struct {
	CampaignID   uuid.UUID
	CampaignName string
	OwnerID      uuid.UUID
	From         string
	To           string
	Notes        string
}

// Publisher hands domain events to a worker pool that forwards them to
// Kafka. A Publisher without a pool drops events.
type Publisher struct {
	pool   workers.WorkerPool
	logger *observability.Logger
	now    func() time.Time
}

// NewPublisher creates a new event publisher. pool may be nil when Kafka is
// not configured.
func NewPublisher(pool workers.WorkerPool, logger *observability.Logger) *Publisher {
	return &Publisher{
		pool:   pool,
		logger: logger,
		now:    time.Now,
	}
}

// Enabled reports whether events are delivered anywhere.
func (p *Publisher) Enabled() bool {
	return p != nil && p.pool != nil
}

// PublishCampaignStatusChanged publishes a campaign.status_changed event on
// behalf of actor.
func (p *Publisher) PublishCampaignStatusChanged(ctx context.Context, actor authz.Actor, change StatusChange) error {
	if !p.Enabled() {
		return nil
	}

	event := kafka.EventMessage{
		ID:         uuid.New().String(),
		Type:       TypeCampaignStatusChanged,
		ActorID:    actor.ID.String(),
		ActorEmail: actor.Email,
		CampaignID: change.CampaignID.String(),
		Data: map[string]interface{}{
			"campaign_name": change.CampaignName,
			"owner_id":      change.OwnerID.String(),
			"from_status":   change.From,
			"to_status":     change.To,
			"notes":         change.Notes,
		},
		Timestamp: p.now().UTC().Format(time.RFC3339),
	}

	if err := p.pool.Submit(ctx, event); err != nil {
		return fmt.Errorf("failed to queue %s event: %w", event.Type, err)
	}
	return nil
}

// EventWriter is the subset of the Kafka producer used by the forwarder.
type EventWriter interface {
	PublishEvent(ctx context.Context, event kafka.EventMessage) error
}

type kafkaForwarder struct {
	writer EventWriter
}

// NewKafkaForwarder returns the pool processor that writes events to Kafka.
func NewKafkaForwarder(writer EventWriter) workers.EventProcessor {
	return &kafkaForwarder{writer: writer}
}

func (f *kafkaForwarder) Name() string { return "kafka_publisher" }

func (f *kafkaForwarder) Process(ctx context.Context, event workers.EventMessage) error {
	return f.writer.PublishEvent(ctx, event)
}
