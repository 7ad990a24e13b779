// internal/store/memory.go
//
// In-memory registry of game tables, one per player.
//
// Characteristics:
//   - Tables are keyed by player ID in a map.
//   - Concurrency-safe via RWMutex (concurrent lookups allowed, writes exclusive).
//   - Every access stamps the entry; Prune closes and evicts tables idle
//     for longer than a given TTL.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/pairs/internal/clock"
	"github.com/robalobadob/pairs/internal/game"
)

// ErrNotFound is returned when a player has no table.
var ErrNotFound = errors.New("table not found")

// Store maps players to their game tables.
type Store interface {
	// Get returns the player's table, or ErrNotFound.
	Get(ctx context.Context, playerID string) (*game.Table, error)

	// Open returns the player's table, creating it on first use.
	Open(ctx context.Context, playerID string) *game.Table

	// Delete closes and forgets the player's table.
	Delete(ctx context.Context, playerID string) error

	// Prune closes every table untouched for longer than idle and returns
	// how many were evicted.
	Prune(ctx context.Context, idle time.Duration) int

	// Len reports the number of live tables.
	Len() int
}

// Factory builds a fresh table for a player.
type Factory func(playerID string) *game.Table

type entry struct {
	table    *game.Table
	lastSeen time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex
	tables  map[string]*entry // keyed by player ID
	clk     clock.Clock
	newFunc Factory
}

// NewMemoryStore constructs a Store that builds tables with f and stamps
// access times from clk.
func NewMemoryStore(clk clock.Clock, f Factory) Store {
	return &memory{tables: make(map[string]*entry), clk: clk, newFunc: f}
}

func (m *memory) Get(ctx context.Context, playerID string) (*game.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.tables[playerID]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = m.clk.Now()
	return e.table, nil
}

func (m *memory) Open(ctx context.Context, playerID string) *game.Table {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.clk.Now()
	if e, ok := m.tables[playerID]; ok {
		e.lastSeen = now
		return e.table
	}
	e := &entry{table: m.newFunc(playerID), lastSeen: now}
	m.tables[playerID] = e
	return e.table
}

func (m *memory) Delete(ctx context.Context, playerID string) error {
	m.mu.Lock()
	e, ok := m.tables[playerID]
	delete(m.tables, playerID)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	e.table.Close()
	return nil
}

func (m *memory) Prune(ctx context.Context, idle time.Duration) int {
	cutoff := m.clk.Now().Add(-idle)

	m.mu.Lock()
	var stale []*game.Table
	for id, e := range m.tables {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.table)
			delete(m.tables, id)
		}
	}
	m.mu.Unlock()

	// Close outside the map lock; a table may be mid-event.
	for _, t := range stale {
		t.Close()
	}
	return len(stale)
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables)
}
