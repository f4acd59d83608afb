package order

import "strings"

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// PENDING -> CONFIRMED -> IN_PROGRESS -> DELIVERED, and CANCELLED from any
// non-terminal status.
var validNext = map[Status]map[Status]bool{
	StatusPending:    {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed:  {StatusInProgress: true, StatusCancelled: true},
	StatusInProgress: {StatusDelivered: true, StatusCancelled: true},
	StatusDelivered:  {},
	StatusCancelled:  {},
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

// ParseStatus accepts "in-progress", "in_progress" and "IN_PROGRESS" alike.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}
