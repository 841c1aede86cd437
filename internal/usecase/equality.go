package usecase

import (
	"github.com/rs/zerolog"

	"movement-reconciliation/internal/domain"
)

// EqualityOracle decides whether a persisted and a scraped movement are the
// same transaction.
type EqualityOracle struct {
	log zerolog.Logger
}

// NewEqualityOracle creates an oracle that logs through log.
func NewEqualityOracle(log zerolog.Logger) *EqualityOracle {
	return &EqualityOracle{log: log}
}

// IsEqual compares by key value once the persisted row has one. Legacy rows
// without a key are compared on value date, position, amount and balance;
// their operational date is ignored because it was restated once in history.
func (o *EqualityOracle) IsEqual(saved domain.PersistedMovement, scraped domain.ScrapedMovement) bool {
	if saved.HasKeyValue() {
		return saved.KeyValue == scraped.KeyValue
	}

	equal := saved.ValueDate.Equal(scraped.ValueDate) &&
		saved.OperationalDatePosition == scraped.OperationalDatePosition &&
		saved.Amount.Equal(scraped.Amount) &&
		saved.TempBalance.Equal(scraped.TempBalance)

	if equal && !saved.OperationalDate.Equal(scraped.OperationalDate) {
		o.log.Debug().
			Int64("movement_id", saved.ID).
			Str("account_id", saved.AccountID).
			Str("saved_operational_date", saved.OperationalDate.Format(domain.DateLayout)).
			Str("scraped_operational_date", scraped.OperationalDate.Format(domain.DateLayout)).
			Msg("legacy movement matched despite operational date difference")
	}
	return equal
}
