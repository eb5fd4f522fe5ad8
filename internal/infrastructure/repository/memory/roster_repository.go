package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/mlb-fantasy/internal/domain/roster"
)

// RosterRepository keeps a single roster in memory. It backs --dry-run
// sessions and tests.
type RosterRepository struct {
	mu     sync.RWMutex
	name   string
	item   roster.Roster
	exists bool
	saves  int
}

func NewRosterRepository(name string) *RosterRepository {
	return &RosterRepository{name: name}
}

// NewSeededRosterRepository starts with an existing roster.
func NewSeededRosterRepository(name string, seed roster.Roster) *RosterRepository {
	return &RosterRepository{name: name, item: seed.Clone(), exists: true}
}

func (r *RosterRepository) Name() string {
	return r.name
}

func (r *RosterRepository) Load(_ context.Context) (roster.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.exists {
		return nil, fmt.Errorf("load roster %s: %w", r.name, roster.ErrNotFound)
	}
	return r.item.Clone(), nil
}

func (r *RosterRepository) Save(_ context.Context, item roster.Roster) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.item = item.Clone()
	r.exists = true
	r.saves++
	return nil
}

func (r *RosterRepository) Delete(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.item = nil
	r.exists = false
	return nil
}

// Saves reports how many times Save was called.
func (r *RosterRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
