package order

import "time"

type EventType string

const (
	EventOrderPlaced        EventType = "ORDER_PLACED"
	EventOrderStatusChanged EventType = "ORDER_STATUS_CHANGED"
	EventOrderRated         EventType = "ORDER_RATED"
	EventOrdersCleared      EventType = "ORDERS_CLEARED"
)

// Event is published after a ledger mutation has been applied.
// Order is the zero value for EventOrdersCleared. Seq is assigned in
// mutation order and starts at 1 for each ledger instance.
type Event struct {
	Seq            uint64    `json:"seq"`
	Type           EventType `json:"type"`
	Order          Order     `json:"order"`
	PreviousStatus Status    `json:"previous_status,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
