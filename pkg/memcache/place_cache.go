package memcache

import (
	"context"
	"sync"
	"time"

	"playgroundr/internal/models/place_models"
)

// PlaceCache stores place detail payloads keyed by place id.
type PlaceCache interface {
	Get(ctx context.Context, placeID string) (*place_models.PlaceRecord, bool)
	Set(ctx context.Context, placeID string, rec *place_models.PlaceRecord, ttl time.Duration) error
}

type entry struct {
	record    place_models.PlaceRecord
	expiresAt time.Time
}

// MemoryPlaceCache is an in-process PlaceCache. Expired entries are removed
// lazily on read.
type MemoryPlaceCache struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewMemoryPlaceCache() *MemoryPlaceCache {
	return &MemoryPlaceCache{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *MemoryPlaceCache) Set(_ context.Context, placeID string, rec *place_models.PlaceRecord, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[placeID] = entry{
		record:    *rec,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryPlaceCache) Get(_ context.Context, placeID string) (*place_models.PlaceRecord, bool) {
	s.mu.RLock()
	e, ok := s.data[placeID]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		// re-check, a concurrent Set may have refreshed it
		if cur, ok := s.data[placeID]; ok && s.now().After(cur.expiresAt) {
			delete(s.data, placeID)
		}
		s.mu.Unlock()
		return nil, false
	}
	rec := e.record
	return &rec, true
}

func (s *MemoryPlaceCache) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// NoopPlaceCache never stores anything.
type NoopPlaceCache struct{}

func (NoopPlaceCache) Get(context.Context, string) (*place_models.PlaceRecord, bool) {
	return nil, false
}

func (NoopPlaceCache) Set(context.Context, string, *place_models.PlaceRecord, time.Duration) error {
	return nil
}
