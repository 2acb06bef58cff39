package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/imrishuroy/go-attendance-punch/internal/aws"
)

// Metric names counted by the Service.
const (
	MetricPunchesRecorded = "PunchesRecorded"
	MetricPunchesListed   = "PunchesListed"
)

// EventPublisher sends a message body with string attributes to a queue.
type EventPublisher interface {
	Publish(ctx context.Context, body string, attributes map[string]string) error
}

// MetricsRecorder counts named metrics.
type MetricsRecorder interface {
	Count(ctx context.Context, name string, value float64) error
}

// Service records and lists punches. Event publishing and metrics are
// best-effort: their failures are logged and never fail the operation.
type Service struct {
	store   *Store
	events  EventPublisher
	metrics MetricsRecorder
	source  string
	nowFunc func() time.Time
	newID   func() string
}

// Option configures a Service.
type Option func(*Service)

// WithEvents publishes a PunchEvent after every recorded punch.
func WithEvents(p EventPublisher) Option {
	return func(s *Service) { s.events = p }
}

// WithMetrics counts recorded and listed punches.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Service) { s.metrics = m }
}

// WithSource sets the source stamped on published events (api, worker).
func WithSource(source string) Option {
	return func(s *Service) { s.source = source }
}

// NewService returns a Service backed by store.
func NewService(store *Store, opts ...Option) *Service {
	s := &Service{
		store:   store,
		source:  "api",
		nowFunc: time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record upserts the punch and then emits its event and metric.
func (s *Service) Record(ctx context.Context, p Punch) error {
	if err := s.store.Put(ctx, p); err != nil {
		return err
	}

	if s.events != nil {
		if err := s.publish(ctx, p); err != nil {
			log.Printf("[%s] publish punch event user=%s ts=%s: %v", s.source, p.UserID, p.Timestamp, err)
		}
	}
	s.count(ctx, MetricPunchesRecorded, 1)
	return nil
}

// List returns the punches recorded for userID.
func (s *Service) List(ctx context.Context, userID string) ([]Punch, error) {
	punches, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.count(ctx, MetricPunchesListed, float64(len(punches)))
	return punches, nil
}

func (s *Service) publish(ctx context.Context, p Punch) error {
	ev := PunchEvent{
		EventID:       s.newID(),
		EventType:     EventTypePunchRecorded,
		Source:        s.source,
		CorrelationID: CorrelationID(ctx),
		RecordedAt:    s.nowFunc().UTC(),
		Punch:         p,
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal punch event: %w", err)
	}
	return s.events.Publish(ctx, string(body), map[string]string{
		"event_type":     ev.EventType,
		"user_id":        p.UserID,
		"correlation_id": ev.CorrelationID,
	})
}

func (s *Service) count(ctx context.Context, name string, value float64) {
	if s.metrics == nil {
		return
	}
	if err := s.metrics.Count(ctx, name, value); err != nil {
		log.Printf("[%s] metric %s: %v (code=%s)", s.source, name, err, aws.ErrorCode(err))
	}
}
