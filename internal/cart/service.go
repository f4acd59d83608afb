package cart

import (
	"context"
	"math"
	"sync"

	"superapp-be/internal/kind"
	"superapp-be/internal/logger"
	"superapp-be/internal/observer"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service is the cart aggregator of one session.
type Service interface {
	// AddLine merges into an existing (ID, Kind) line by summing quantities;
	// the existing line's name, price and variant are kept.
	AddLine(ctx context.Context, line Line) error
	// RemoveLine is a no-op when the line is absent.
	RemoveLine(ctx context.Context, id string, k kind.Kind)
	SetQuantity(ctx context.Context, id string, k kind.Kind, quantity int) error
	Clear(ctx context.Context)
	// RemoveKind drops every line of kind k and returns them.
	RemoveKind(ctx context.Context, k kind.Kind) []Line

	// Snapshot returns a deep copy of the lines in insertion order.
	Snapshot() []Line
	LinesByKind(k kind.Kind) []Line
	Total() decimal.Decimal
	CountByKind(k kind.Kind) int

	// Subscribe is called with a fresh snapshot after every change.
	Subscribe(fn func([]Line)) (unsubscribe func())
}

type service struct {
	mu    sync.Mutex
	lines []Line
	repo  Repository
	hub   observer.Hub[[]Line]
}

// NewService creates a cart. A nil repo keeps the cart in memory only;
// otherwise previously saved lines are restored.
func NewService(ctx context.Context, repo Repository) Service {
	s := &service{repo: repo}

	if repo != nil {
		lines, err := repo.LoadLines(ctx)
		if err == nil {
			s.lines = CloneLines(lines)
		}
	}
	return s
}

func (s *service) AddLine(ctx context.Context, line Line) error {
	if err := line.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	merged := false
	for i := range s.lines {
		if s.lines[i].matches(line.ID, line.Kind) {
			if line.Quantity > math.MaxInt-s.lines[i].Quantity {
				s.mu.Unlock()
				return ErrInvalidQuantity
			}
			s.lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, line.Clone())
	}
	snapshot := s.commitLocked(ctx)
	s.mu.Unlock()

	logger.FromCtx(ctx).Debug("cart line added",
		zap.String("line_id", line.ID),
		zap.String("kind", line.Kind.String()),
		zap.Int("quantity", line.Quantity),
		zap.Bool("merged", merged),
	)

	s.hub.Publish(snapshot)
	return nil
}

func (s *service) RemoveLine(ctx context.Context, id string, k kind.Kind) {
	s.mu.Lock()
	idx := s.indexLocked(id, k)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	snapshot := s.commitLocked(ctx)
	s.mu.Unlock()

	s.hub.Publish(snapshot)
}

func (s *service) SetQuantity(ctx context.Context, id string, k kind.Kind, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	idx := s.indexLocked(id, k)
	if idx < 0 {
		s.mu.Unlock()
		return ErrLineNotFound
	}
	s.lines[idx].Quantity = quantity
	snapshot := s.commitLocked(ctx)
	s.mu.Unlock()

	s.hub.Publish(snapshot)
	return nil
}

func (s *service) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = nil
	snapshot := s.commitLocked(ctx)
	s.mu.Unlock()

	s.hub.Publish(snapshot)
}

func (s *service) RemoveKind(ctx context.Context, k kind.Kind) []Line {
	s.mu.Lock()
	var removed, kept []Line
	for _, l := range s.lines {
		if l.Kind == k {
			removed = append(removed, l)
		} else {
			kept = append(kept, l)
		}
	}
	if len(removed) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.lines = kept
	snapshot := s.commitLocked(ctx)
	s.mu.Unlock()

	s.hub.Publish(snapshot)
	return removed
}

func (s *service) Snapshot() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CloneLines(s.lines)
}

func (s *service) LinesByKind(k kind.Kind) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, 0)
	for _, l := range s.lines {
		if l.Kind == k {
			out = append(out, l.Clone())
		}
	}
	return out
}

func (s *service) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Total(s.lines)
}

func (s *service) CountByKind(k kind.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, l := range s.lines {
		if l.Kind == k {
			count += l.Quantity
		}
	}
	return count
}

func (s *service) Subscribe(fn func([]Line)) func() {
	return s.hub.Subscribe(fn)
}

func (s *service) indexLocked(id string, k kind.Kind) int {
	for i, l := range s.lines {
		if l.matches(id, k) {
			return i
		}
	}
	return -1
}

// commitLocked saves the current lines and returns a snapshot for subscribers.
// Save errors are logged by the repository and retried on the next change.
func (s *service) commitLocked(ctx context.Context) []Line {
	snapshot := CloneLines(s.lines)
	if s.repo != nil {
		_ = s.repo.SaveLines(ctx, snapshot)
	}
	return snapshot
}
