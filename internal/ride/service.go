package ride

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"superapp-be/internal/apperr"
	"superapp-be/internal/idgen"
	"superapp-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	minFare = 100
	maxFare = 300
)

type IDGenerator interface {
	NewID() string
}

// Service books rides and tracks their lifecycle. History is newest first.
type Service interface {
	// Book fails with ErrRideActive while another ride is not yet terminal.
	Book(ctx context.Context, pickup, drop string) (*Ride, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Ride, error)
	// Current is the most recent ride that has not ended, if any.
	Current() (*Ride, bool)
	History() []Ride
	Get(id string) (*Ride, error)
}

type Option func(*service)

func WithIDGenerator(ids IDGenerator) Option {
	return func(s *service) { s.ids = ids }
}

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithFare replaces the placeholder fare quote.
func WithFare(fare func() decimal.Decimal) Option {
	return func(s *service) { s.fare = fare }
}

type service struct {
	mu    sync.Mutex
	rides []Ride
	repo  Repository
	ids   IDGenerator
	now   func() time.Time
	fare  func() decimal.Decimal
}

func NewService(ctx context.Context, repo Repository, opts ...Option) Service {
	s := &service{
		repo: repo,
		ids:  idgen.New(),
		now:  time.Now,
		fare: placeholderFare,
	}
	for _, opt := range opts {
		opt(s)
	}
	if repo != nil {
		if rides, err := repo.LoadRides(ctx); err == nil {
			s.rides = cloneRides(rides)
		}
	}
	return s
}

// placeholderFare quotes a whole amount in [minFare, maxFare).
func placeholderFare() decimal.Decimal {
	return decimal.NewFromInt(int64(minFare + rand.IntN(maxFare-minFare)))
}

func (s *service) Book(ctx context.Context, pickup, drop string) (*Ride, error) {
	pickup, drop = strings.TrimSpace(pickup), strings.TrimSpace(drop)
	if pickup == "" {
		return nil, ErrMissingPickup
	}
	if drop == "" {
		return nil, ErrMissingDrop
	}

	s.mu.Lock()
	if _, active := s.currentLocked(); active {
		s.mu.Unlock()
		return nil, ErrRideActive
	}
	r := Ride{
		ID:       s.ids.NewID(),
		Pickup:   pickup,
		Drop:     drop,
		Status:   StatusSearching,
		Fare:     s.fare(),
		BookedAt: s.now().UTC(),
	}
	s.rides = append([]Ride{r}, s.rides...)
	s.persistLocked(ctx)
	s.mu.Unlock()

	logger.FromCtx(ctx).Info("ride booked",
		zap.String("ride_id", r.ID),
		zap.String("fare", r.Fare.String()),
	)
	return &r, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Ride, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, ErrRideNotFound
	}
	prev := s.rides[idx].Status
	if !CanTransition(prev, status) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, prev, status)
	}

	s.rides[idx].Status = status
	if status.IsTerminal() {
		t := s.now().UTC()
		s.rides[idx].EndedAt = &t
	}
	s.persistLocked(ctx)
	updated := s.rides[idx].Clone()
	s.mu.Unlock()

	logger.FromCtx(ctx).Info("ride status changed",
		zap.String("ride_id", id),
		zap.String("from", string(prev)),
		zap.String("to", string(status)),
	)
	return &updated, nil
}

func (s *service) Current() (*Ride, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked()
}

func (s *service) History() []Ride {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRides(s.rides)
}

func (s *service) Get(id string) (*Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, ErrRideNotFound
	}
	r := s.rides[idx].Clone()
	return &r, nil
}

func (s *service) currentLocked() (*Ride, bool) {
	// newest first, so only the head can still be active
	if len(s.rides) == 0 || s.rides[0].Status.IsTerminal() {
		return nil, false
	}
	r := s.rides[0].Clone()
	return &r, true
}

func (s *service) indexLocked(id string) int {
	for i := range s.rides {
		if s.rides[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *service) persistLocked(ctx context.Context) {
	if s.repo != nil {
		_ = s.repo.SaveRides(ctx, cloneRides(s.rides))
	}
}

func cloneRides(rides []Ride) []Ride {
	out := make([]Ride, 0, len(rides))
	for _, r := range rides {
		out = append(out, r.Clone())
	}
	return out
}
