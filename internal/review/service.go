package review

import (
	"context"
	"sync"
	"time"

	"superapp-be/internal/idgen"
	"superapp-be/internal/logger"

	"go.uber.org/zap"
)

type IDGenerator interface {
	NewID() string
}

// Service is an append-only review list, newest first.
type Service interface {
	Add(ctx context.Context, in Input) (*Review, error)
	List(f Filter) []Review
	Average() float64
	Distribution() map[int]int
	Summary() Summary
}

type Option func(*service)

func WithIDGenerator(ids IDGenerator) Option {
	return func(s *service) { s.ids = ids }
}

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	mu      sync.Mutex
	reviews []Review
	repo    Repository
	ids     IDGenerator
	now     func() time.Time
}

func NewService(ctx context.Context, repo Repository, opts ...Option) Service {
	s := &service{repo: repo, ids: idgen.New(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if repo != nil {
		if reviews, err := repo.LoadReviews(ctx); err == nil {
			s.reviews = append([]Review(nil), reviews...)
		}
	}
	return s
}

func (s *service) Add(ctx context.Context, in Input) (*Review, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	r := Review{
		ID:        s.ids.NewID(),
		Author:    in.Author,
		Rating:    in.Rating,
		Comment:   in.Comment,
		ImageRef:  in.ImageRef,
		CreatedAt: s.now().UTC(),
	}
	s.reviews = append([]Review{r}, s.reviews...)
	if s.repo != nil {
		_ = s.repo.SaveReviews(ctx, append([]Review(nil), s.reviews...))
	}
	s.mu.Unlock()

	logger.FromCtx(ctx).Info("review added",
		zap.String("review_id", r.ID),
		zap.Int("rating", r.Rating),
		zap.Bool("has_image", r.ImageRef != ""),
	)
	return &r, nil
}

func (s *service) List(f Filter) []Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		if f.match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Average is 0 for an empty list.
func (s *service) Average() float64 {
	return s.Summary().Average
}

func (s *service) Distribution() map[int]int {
	return s.Summary().Distribution
}

func (s *service) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	total := 0
	for _, r := range s.reviews {
		sum.Distribution[r.Rating]++
		total += r.Rating
	}
	sum.Count = len(s.reviews)
	if sum.Count > 0 {
		sum.Average = float64(total) / float64(sum.Count)
	}
	return sum
}
