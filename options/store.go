package options

import "sync"

// Store is the process-wide options collaborator. Face restoration reads the
// offload policy from it and temporarily forces the overlay flag on, so both
// setters must be safe for the save/restore pair to call on every exit path.
type Store interface {
	// ApplyOverlay reports whether the generation backend composites an
	// inpainted region back onto the base image instead of replacing it.
	ApplyOverlay() bool
	SetApplyOverlay(bool)

	// RestorationUnload reports whether the detector should be moved to a
	// low-power device after each predict call.
	RestorationUnload() bool
	SetRestorationUnload(bool)
}

type memoryStore struct {
	mu                sync.RWMutex
	applyOverlay      bool
	restorationUnload bool
}

func NewStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) ApplyOverlay() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applyOverlay
}

func (s *memoryStore) SetApplyOverlay(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyOverlay = v
}

func (s *memoryStore) RestorationUnload() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restorationUnload
}

func (s *memoryStore) SetRestorationUnload(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restorationUnload = v
}
