package liked

import (
	"context"
	"sync"

	"superapp-be/internal/kind"
	"superapp-be/internal/logger"

	"go.uber.org/zap"
)

// Service is a toggle set of liked items.
type Service interface {
	// Toggle removes the (ID, Kind) entry if present, otherwise appends item.
	// It reports whether the item is liked afterwards.
	Toggle(ctx context.Context, item Item) (bool, error)
	// IsLiked matches by id alone, across kinds.
	IsLiked(id string) bool
	IsLikedKind(id string, k kind.Kind) bool
	List() []Item
	ListByKind(k kind.Kind) []Item
}

type service struct {
	mu    sync.Mutex
	items []Item
	repo  Repository
}

// NewService restores saved items when repo is non-nil.
func NewService(ctx context.Context, repo Repository) Service {
	s := &service{repo: repo}
	if repo != nil {
		if items, err := repo.LoadItems(ctx); err == nil {
			s.items = cloneItems(items)
		}
	}
	return s
}

func (s *service) Toggle(ctx context.Context, item Item) (bool, error) {
	if err := item.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	liked := true
	for i := range s.items {
		if s.items[i].matches(item.ID, item.Kind) {
			s.items = append(s.items[:i], s.items[i+1:]...)
			liked = false
			break
		}
	}
	if liked {
		s.items = append(s.items, item)
	}

	if s.repo != nil {
		_ = s.repo.SaveItems(ctx, cloneItems(s.items))
	}

	logger.FromCtx(ctx).Debug("liked item toggled",
		zap.String("item_id", item.ID),
		zap.String("kind", item.Kind.String()),
		zap.Bool("liked", liked),
	)
	return liked, nil
}

func (s *service) IsLiked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func (s *service) IsLikedKind(id string, k kind.Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.matches(id, k) {
			return true
		}
	}
	return false
}

func (s *service) List() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

func (s *service) ListByKind(k kind.Kind) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, 0)
	for _, it := range s.items {
		if it.Kind == k {
			out = append(out, it)
		}
	}
	return out
}
