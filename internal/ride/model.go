package ride

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusSearching      Status = "SEARCHING"
	StatusDriverAssigned Status = "DRIVER_ASSIGNED"
	StatusArriving       Status = "ARRIVING"
	StatusInProgress     Status = "IN_PROGRESS"
	StatusCompleted      Status = "COMPLETED"
	StatusCancelled      Status = "CANCELLED"
)

var validNext = map[Status]map[Status]bool{
	StatusSearching:      {StatusDriverAssigned: true, StatusCancelled: true},
	StatusDriverAssigned: {StatusArriving: true, StatusCancelled: true},
	StatusArriving:       {StatusInProgress: true, StatusCancelled: true},
	StatusInProgress:     {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted:      {},
	StatusCancelled:      {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

func (s Status) IsValid() bool {
	_, ok := validNext[s]
	return ok
}

func (s Status) IsTerminal() bool {
	return s.IsValid() && len(validNext[s]) == 0
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

type Ride struct {
	ID       string          `json:"id"`
	Pickup   string          `json:"pickup"`
	Drop     string          `json:"drop"`
	Status   Status          `json:"status"`
	Fare     decimal.Decimal `json:"fare"`
	BookedAt time.Time       `json:"booked_at"`
	EndedAt  *time.Time      `json:"ended_at,omitempty"`
}

func (r Ride) Clone() Ride {
	c := r
	if r.EndedAt != nil {
		t := *r.EndedAt
		c.EndedAt = &t
	}
	return c
}
