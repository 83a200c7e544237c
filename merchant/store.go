package main

import "sync"

// StatusStore records the last notified status per transaction id. It is
// a narrow key-value abstraction over an in-process map, so a future
// swap to a real datastore does not touch the protocol handlers.
//
// Last write wins: the orchestrator sends at most one terminal
// notification per transaction in normal operation, but duplicates are
// accepted, not rejected.
type StatusStore interface {
	Put(transactionID, status string)
	Get(transactionID string) (string, bool)
}

type memoryStatusStore struct {
	mu       sync.RWMutex
	statuses map[string]string
}

// NewStatusStore returns an empty in-memory store.
func NewStatusStore() StatusStore {
	return &memoryStatusStore{statuses: make(map[string]string)}
}

func (s *memoryStatusStore) Put(transactionID, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[transactionID] = status
}

func (s *memoryStatusStore) Get(transactionID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status, ok := s.statuses[transactionID]
	return status, ok
}
