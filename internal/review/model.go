package review

import "time"

type Review struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	ImageRef  string    `json:"image_ref,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Input is what a caller submits; id and timestamp are assigned on add.
type Input struct {
	Author   string `json:"author"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	ImageRef string `json:"image_ref,omitempty"`
}

// Filter narrows a read. Zero value matches everything.
type Filter struct {
	Rating    int
	WithImage bool
}

func (f Filter) match(r Review) bool {
	if f.Rating != 0 && r.Rating != f.Rating {
		return false
	}
	if f.WithImage && r.ImageRef == "" {
		return false
	}
	return true
}

// Summary aggregates the ratings of a review list.
type Summary struct {
	Count        int         `json:"count"`
	Average      float64     `json:"average"`
	Distribution map[int]int `json:"distribution"`
}
