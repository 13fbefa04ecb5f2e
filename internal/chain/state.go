package chain

import (
	"sync"
)

// State is the variable scope of one chain invocation. It is seeded empty
// per invocation and discarded when the invocation ends; it is never
// written back into the session.
type State struct {
	mu   sync.RWMutex
	vars map[string]any
}

// NewState creates an empty chain state.
func NewState() *State {
	return &State{
		vars: make(map[string]any),
	}
}

// Set stores a variable in the state, overwriting any previous value.
func (s *State) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars[key] = value
}

// Get retrieves a variable from the state.
func (s *State) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.vars[key]
	return val, ok
}

// GetAll returns a copy of all variables in the state, suitable for
// template resolution.
func (s *State) GetAll() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := make(map[string]any, len(s.vars))
	for k, v := range s.vars {
		copied[k] = v
	}
	return copied
}

// MergeMap adds all key-value pairs from the given map to the state,
// potentially overwriting existing keys.
func (s *State) MergeMap(newVars map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, value := range newVars {
		s.vars[key] = value
	}
}
