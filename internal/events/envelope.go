package events

import (
	"encoding/json"
	"fmt"
	"time"

	"superapp-be/internal/order"

	"github.com/google/uuid"
)

const (
	EventVersion = 1
	ProducerName = "superapp-be"
)

// Envelope wraps every ledger event published to the broker.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	UserID        string          `json:"user_id"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Sequence      uint64          `json:"sequence"`
	Payload       json.RawMessage `json:"payload"`
}

// OrderPayload is the body of every ORDER_* event.
type OrderPayload struct {
	Order          *order.Order `json:"order,omitempty"`
	PreviousStatus order.Status `json:"previous_status,omitempty"`
}

func NewEnvelope(userID string, e order.Event) (Envelope, error) {
	p := OrderPayload{PreviousStatus: e.PreviousStatus}
	if e.Order.ID != "" {
		o := e.Order.Clone()
		p.Order = &o
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode payload: %w", err)
	}

	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     string(e.Type),
		EventVersion:  EventVersion,
		OccurredAt:    e.OccurredAt,
		Producer:      ProducerName,
		UserID:        userID,
		CorrelationID: e.Order.ID,
		Sequence:      e.Seq,
		Payload:       raw,
	}, nil
}

// UnwrapPayload decodes an envelope payload into T.
func UnwrapPayload[T any](payload json.RawMessage) (T, error) {
	var t T
	if err := json.Unmarshal(payload, &t); err != nil {
		return t, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
