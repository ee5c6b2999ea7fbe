// Package tasbih keeps a persistent dhikr counter.
package tasbih

import (
	"errors"
	"fmt"

	"github.com/smokyabdulrahman/hijri-cal/internal/store"
)

// Key is the store key holding the counter.
const Key = "tasbih_count"

// DefaultLimit is the usual count of one round.
const DefaultLimit = 33

// State is the persisted counter.
type State struct {
	Count int `json:"count"`
	Round int `json:"round"`
	Limit int `json:"limit"`
}

// Increment counts one dhikr. Counting past Limit starts the next round at 1.
func (s *State) Increment() {
	s.Count++
	if s.Count > s.Limit {
		s.Count = 1
		s.Round++
	}
}

// Reset zeroes Count and Round and keeps Limit.
func (s *State) Reset() {
	s.Count = 0
	s.Round = 0
}

// SetLimit changes the round length and restarts counting.
func (s *State) SetLimit(n int) error {
	if n <= 0 {
		return fmt.Errorf("limit must be positive, got %d", n)
	}
	s.Limit = n
	s.Reset()
	return nil
}

// Counter loads and saves State through a store.
type Counter struct {
	st           *store.Store
	defaultLimit int
}

// New returns a Counter. defaultLimit applies when nothing is stored yet;
// a non-positive value means DefaultLimit.
func New(st *store.Store, defaultLimit int) *Counter {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	return &Counter{st: st, defaultLimit: defaultLimit}
}

// Load returns the stored state, or a fresh one.
func (c *Counter) Load() (State, error) {
	var s State
	err := c.st.Get(Key, &s)
	if errors.Is(err, store.ErrNotFound) {
		return State{Limit: c.defaultLimit}, nil
	}
	if err != nil {
		return State{}, err
	}
	if s.Limit <= 0 {
		s.Limit = c.defaultLimit
	}
	return s, nil
}

// Update loads the state, applies fn and saves the result.
func (c *Counter) Update(fn func(*State) error) (State, error) {
	s, err := c.Load()
	if err != nil {
		return State{}, err
	}
	if err := fn(&s); err != nil {
		return State{}, err
	}
	if err := c.st.Put(Key, s); err != nil {
		return State{}, err
	}
	return s, nil
}
