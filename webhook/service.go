package webhook

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/troquecommerce-bridge/webhook/payload"
)

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 */

// UseCase defines the operations over received webhook events
type UseCase interface {
	Record(ctx context.Context, code string, p payload.Payload) (Event, error)
	List(ctx context.Context) ([]Event, error)
}

type Service struct {
	Repo Repository
	now  func() time.Time
}

// NewService creates a new webhook service with dependency injection
func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
		now:  time.Now,
	}
}

// Record decorates an accepted payload with an id, the catalog label and the receipt time,
// and stores it at the head of the event log
func (s *Service) Record(ctx context.Context, code string, p payload.Payload) (Event, error) {
	if code == "" {
		return Event{}, fmt.Errorf("event code is required")
	}
	now := s.now().UTC()
	event := Event{
		ID:         NewEventID(now),
		Code:       code,
		Label:      LabelFor(code),
		Timestamp:  now,
		ReceivedAt: now,
		Payload:    p.Raw,
	}

	if err := s.Repo.Append(ctx, event); err != nil {
		return Event{}, fmt.Errorf("appending event: %w", err)
	}
	return event, nil
}

// List returns the event log, newest first
func (s *Service) List(ctx context.Context) ([]Event, error) {
	events, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

// NewEventID returns "evt_<unix millis>_<9 random chars>"
func NewEventID(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("evt_%d_%s", t.UnixMilli(), suffix)
}
