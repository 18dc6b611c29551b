package view

import (
	"sync"

	"github.com/umalmyha/contacts/internal/model"
)

// ListSnapshot is a point-in-time copy of the list view state
type ListSnapshot struct {
	Contacts []model.Contact
	Loading  bool
	Err      error
}

// ListState owns the locally cached contact sequence. The cache is not a
// source of truth - it reflects the last successful list fetch. Mutation goes
// through exactly three entry points: ReplaceAll, PatchStatus and Remove
type ListState struct {
	mu       sync.RWMutex
	contacts []model.Contact
	loading  bool
	err      error
}

func NewListState() *ListState {
	return &ListState{contacts: make([]model.Contact, 0)}
}

// ReplaceAll rebuilds the cached sequence wholesale from a successful fetch
func (s *ListState) ReplaceAll(contacts []model.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contacts = make([]model.Contact, len(contacts))
	copy(s.contacts, contacts)
	s.loading = false
	s.err = nil
}

// PatchStatus replaces status of contact with provided id in place
func (s *ListState) PatchStatus(id string, status model.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.contacts {
		if s.contacts[i].ID == id {
			s.contacts[i].Status = status
			return
		}
	}
}

// Remove drops contact with provided id from the cached sequence
func (s *ListState) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.contacts {
		if s.contacts[i].ID == id {
			s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
			return
		}
	}
}

// Snapshot returns a copy of the current state for rendering
func (s *ListState) Snapshot() ListSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contacts := make([]model.Contact, len(s.contacts))
	copy(contacts, s.contacts)

	return ListSnapshot{Contacts: contacts, Loading: s.loading, Err: s.err}
}

func (s *ListState) setLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
}

// fail surfaces fetch error and clears the cache - partial or stale data is
// never rendered
func (s *ListState) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contacts = make([]model.Contact, 0)
	s.loading = false
	s.err = err
}
