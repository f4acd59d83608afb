package liked

import "superapp-be/internal/kind"

// Item is one entry of the liked set, keyed by (ID, Kind).
type Item struct {
	ID       string    `json:"id"`
	Kind     kind.Kind `json:"kind"`
	Name     string    `json:"name"`
	ImageRef string    `json:"image_ref,omitempty"`
}

func (i Item) matches(id string, k kind.Kind) bool {
	return i.ID == id && i.Kind == k
}

func (i Item) Validate() error {
	if i.ID == "" {
		return ErrMissingItemID
	}
	if !i.Kind.IsValid() {
		return ErrInvalidKind
	}
	return nil
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
