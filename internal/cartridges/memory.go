package cartridges

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rangecard/backend/internal/models"
)

// MemoryStore keeps the catalog in process. Used by the CLI and when no database is configured.
type MemoryStore struct {
	items map[string]models.Cartridge
	mu    sync.RWMutex
}

func NewMemoryStore(initial []models.Cartridge) *MemoryStore {
	s := &MemoryStore{items: make(map[string]models.Cartridge, len(initial))}
	for _, c := range initial {
		s.items[c.ID] = c
	}
	return s
}

// List returns cartridges ordered by muzzle velocity, then id.
func (s *MemoryStore) List(ctx context.Context) ([]models.Cartridge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Cartridge, 0, len(s.items))
	for _, c := range s.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MuzzleVelocity != out[j].MuzzleVelocity {
			return out[i].MuzzleVelocity < out[j].MuzzleVelocity
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Cartridge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryStore) Upsert(ctx context.Context, c models.Cartridge) error {
	if err := Validate(c); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if existing, ok := s.items[c.ID]; ok {
		c.CreatedAt = existing.CreatedAt
	} else {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	s.items[c.ID] = c
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}
