package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"movement-reconciliation/internal/domain"
)

// MemoryStore is an in-memory implementation of the LedgerRepository
// interface. It is safe for concurrent use; data is lost on restart.
type MemoryStore struct {
	mu        sync.RWMutex
	nextID    int64
	movements map[string][]domain.PersistedMovement
}

// NewMemoryStore creates an empty in-memory ledger.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{movements: make(map[string][]domain.PersistedMovement)}
}

// Seed stores movements as they are, including rows without position.
// It assigns ids in order and returns the stored copies.
func (s *MemoryStore) Seed(accountID string, fields ...domain.MovementFields) []domain.PersistedMovement {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.PersistedMovement, 0, len(fields))
	for _, f := range fields {
		out = append(out, s.appendLocked(accountID, f))
	}
	return out
}

// GetMovements returns the account movements in [from, to] in ledger order.
func (s *MemoryStore) GetMovements(ctx context.Context, accountID string, from, to time.Time) ([]domain.PersistedMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.PersistedMovement
	for _, m := range s.sortedLocked(accountID) {
		if m.OperationalDate.Before(from) || m.OperationalDate.After(to) {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}

// GetLastMovement returns the most recent movement of the account, or nil.
func (s *MemoryStore) GetLastMovement(ctx context.Context, accountID string) (*domain.PersistedMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := s.sortedLocked(accountID)
	if len(sorted) == 0 {
		return nil, nil
	}
	last := sorted[len(sorted)-1]
	return &last, nil
}

// DeleteMovementsAfter removes every movement of the account with an id
// greater than id.
func (s *MemoryStore) DeleteMovementsAfter(ctx context.Context, accountID string, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.movements[accountID][:0]
	var deleted int64
	for _, m := range s.movements[accountID] {
		if m.ID > id {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	s.movements[accountID] = kept
	return deleted, nil
}

// InsertMovements appends movements to the account ledger.
func (s *MemoryStore) InsertMovements(ctx context.Context, accountID string, movements []domain.ScrapedMovement) error {
	for i, m := range movements {
		if !m.HasPosition() {
			return fmt.Errorf("movement %d of %s: %w", i, accountID, ErrMissingPosition)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range movements {
		s.appendLocked(accountID, m.MovementFields)
	}
	return nil
}

func (s *MemoryStore) appendLocked(accountID string, f domain.MovementFields) domain.PersistedMovement {
	s.nextID++
	m := domain.PersistedMovement{ID: s.nextID, AccountID: accountID, MovementFields: f}
	s.movements[accountID] = append(s.movements[accountID], m)
	return m
}

// sortedLocked returns a copy of the account movements in ledger order.
func (s *MemoryStore) sortedLocked(accountID string) []domain.PersistedMovement {
	out := make([]domain.PersistedMovement, len(s.movements[accountID]))
	copy(out, s.movements[accountID])
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OperationalDate.Equal(out[j].OperationalDate) && out[i].OperationalDatePosition == out[j].OperationalDatePosition {
			return out[i].ID < out[j].ID
		}
		return out[i].Before(out[j].MovementFields)
	})
	return out
}
