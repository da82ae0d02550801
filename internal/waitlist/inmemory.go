package waitlist

import (
	"context"
	"sync"
	"time"

	"creatorum.org/internal/ids"
)

// InMemory implements Service with in-process concurrency safety. Used in
// tests and when no database DSN is configured.
type InMemory struct {
	mu      sync.RWMutex
	entries []Entry
	byEmail map[string]struct{}
}

// NewInMemory creates an empty waitlist.
func NewInMemory() *InMemory {
	return &InMemory{byEmail: make(map[string]struct{})}
}

func (s *InMemory) Create(ctx context.Context, in CreateInput) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[in.Email]; ok {
		return Entry{}, ErrDuplicateEmail
	}
	entry := Entry{
		ID:        ids.New(),
		CreatedAt: time.Now().UTC(),
		FullName:  in.FullName,
		Email:     in.Email,
		Role:      in.Role,
		Goals:     append([]string(nil), in.Goals...),
	}
	s.entries = append(s.entries, entry)
	s.byEmail[in.Email] = struct{}{}
	return entry, nil
}

// List returns entries newest first.
func (s *InMemory) List(ctx context.Context, limit, offset int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.entries)
	if offset >= n {
		return []Entry{}, nil
	}
	out := make([]Entry, 0, limit)
	for i := n - 1 - offset; i >= 0 && len(out) < limit; i-- {
		entry := s.entries[i]
		entry.Goals = append([]string(nil), s.entries[i].Goals...)
		out = append(out, entry)
	}
	return out, nil
}

func (s *InMemory) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.entries)), nil
}
