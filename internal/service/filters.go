package service

import (
	"sync"

	"github.com/gopaska/lookbot/internal/domain"
)

// FilterSessions owns every conversation's filter state, keyed by chat id.
// State is in-memory only; a restart starts everyone from empty filters.
type FilterSessions struct {
	mu       sync.RWMutex
	sessions map[int64]*domain.FilterState
}

func NewFilterSessions() *FilterSessions {
	return &FilterSessions{sessions: make(map[int64]*domain.FilterState)}
}

// get returns the chat's state, creating an all-empty one on first use.
// Caller must hold mu.
func (f *FilterSessions) get(chatID int64) *domain.FilterState {
	s, ok := f.sessions[chatID]
	if !ok {
		s = domain.NewFilterState()
		f.sessions[chatID] = s
	}
	return s
}

// Toggle flips one value in one dimension and reports whether it is selected
// afterwards. Toggling the same value twice is a net no-op.
func (f *FilterSessions) Toggle(chatID int64, dim domain.Dimension, key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(chatID).Toggle(dim, key)
}

// Reset clears all four selection sets for the chat.
func (f *FilterSessions) Reset(chatID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.get(chatID).Reset()
}

// Snapshot returns an independent copy of the chat's current state, safe to
// use for rendering and query building without holding the registry lock.
func (f *FilterSessions) Snapshot(chatID int64) *domain.FilterState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(chatID).Clone()
}
