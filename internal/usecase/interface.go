package usecase

import (
	"context"
	"time"

	"movement-reconciliation/internal/domain"
)

// LedgerRepository defines the persisted ledger the usecase reads and repairs.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_interface.go -source=interface.go
type LedgerRepository interface {
	// GetMovements returns the account movements with an operational date in
	// [from, to], ascending by (operational date, position).
	GetMovements(ctx context.Context, accountID string, from, to time.Time) ([]domain.PersistedMovement, error)
	// GetLastMovement returns the most recent movement ever saved, or nil.
	GetLastMovement(ctx context.Context, accountID string) (*domain.PersistedMovement, error)
	// DeleteMovementsAfter removes every movement of the account with an id
	// greater than id and returns how many rows were removed.
	DeleteMovementsAfter(ctx context.Context, accountID string, id int64) (int64, error)
	InsertMovements(ctx context.Context, accountID string, movements []domain.ScrapedMovement) error
}

// Truncator is the only write capability the auto-fixer is given.
type Truncator interface {
	DeleteMovementsAfter(ctx context.Context, accountID string, id int64) (int64, error)
}

// ScrapedMovementSource provides the movements scraped for the current window.
type ScrapedMovementSource interface {
	GetScrapedMovements(ctx context.Context, path string) ([]domain.ScrapedMovement, error)
}

// Notifier delivers operator notifications (email, log, alerting).
type Notifier interface {
	Notify(severity domain.Severity, text string)
}
