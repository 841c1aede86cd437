package usecase

import (
	"time"

	"github.com/rs/zerolog"

	"movement-reconciliation/internal/domain"
)

// CheckInput gathers everything the balance checker looks at for one account.
type CheckInput struct {
	Account domain.AccountSnapshot
	// Scraped and Saved are ascending by (operational date, position) and
	// cover the same date window.
	Scraped            []domain.ScrapedMovement
	Saved              []domain.PersistedMovement
	DateFrom           time.Time
	MinAllowedDateFrom time.Time
	// LastMovementSaved is the most recent movement ever persisted for the
	// account, nil for an empty ledger.
	LastMovementSaved *domain.PersistedMovement
}

// BalanceChecker decides whether scraped and persisted movements describe
// the same financial history.
type BalanceChecker struct {
	oracle          *EqualityOracle
	offsetLimitDays int
	now             func() time.Time
	log             zerolog.Logger
}

// NewBalanceChecker creates a checker. offsetLimitDays is how far back the
// bank site returns history.
func NewBalanceChecker(oracle *EqualityOracle, offsetLimitDays int, now func() time.Time, log zerolog.Logger) *BalanceChecker {
	if now == nil {
		now = time.Now
	}
	return &BalanceChecker{
		oracle:          oracle,
		offsetLimitDays: offsetLimitDays,
		now:             now,
		log:             log,
	}
}

// Check classifies the situation of one account into a result code.
func (c *BalanceChecker) Check(in CheckInput) (bool, domain.ResultCode) {
	log := c.log.With().Str("account_id", in.Account.AccountID).Logger()

	if len(in.Saved) == 0 {
		return c.checkWithoutSaved(in, log)
	}

	for _, saved := range in.Saved {
		if !saved.HasPosition() {
			log.Error().Int64("movement_id", saved.ID).Msg("persisted movement without operational date position")
			return false, domain.ErrBalanceBadDBData
		}
	}

	historical := !in.DateFrom.After(in.MinAllowedDateFrom)

	if len(in.Scraped) == 0 {
		lastSaved := in.Saved[len(in.Saved)-1]
		if in.Account.Balance.Equal(lastSaved.TempBalance) {
			if historical {
				return true, domain.WarnFewMovementsHistoricalDateLimit
			}
			return true, domain.WarnFewMovements
		}
		log.Warn().
			Str("account_balance", in.Account.Balance.StringFixed(2)).
			Str("last_saved_balance", lastSaved.TempBalance.StringFixed(2)).
			Msg("no scraped movements and balance differs from last saved movement")
		if historical {
			return false, domain.ErrBalanceFewMovementsHistoricalDateLimit
		}
		return false, domain.ErrBalanceFewMovements
	}

	pivot := pivotIndex(in.Saved, in.Scraped[0])
	compared := 0
	for i := pivot; i < len(in.Saved); i++ {
		j := i - pivot
		if j >= len(in.Scraped) {
			log.Warn().Int("saved", len(in.Saved)-pivot).Int("scraped", len(in.Scraped)).
				Msg("scraped movements ran out before persisted movements")
			return false, domain.ErrBalanceFewMovements
		}
		if !c.oracle.IsEqual(in.Saved[i], in.Scraped[j]) {
			log.Warn().Int64("movement_id", in.Saved[i].ID).Int("index", j).
				Msg("persisted movement differs from scraped movement")
			return false, domain.ErrBalanceSavedUnfixed
		}
		compared++
	}

	if compared == 0 {
		log.Warn().Msg("no persisted movement aligns with the first scraped movement")
		return false, domain.ErrBalanceNoPivotMovement
	}
	return true, domain.Success
}

func (c *BalanceChecker) checkWithoutSaved(in CheckInput, log zerolog.Logger) (bool, domain.ResultCode) {
	last := in.LastMovementSaved
	if len(in.Scraped) == 0 || last == nil {
		return true, domain.Success
	}

	for _, scraped := range in.Scraped {
		if c.oracle.IsEqual(*last, scraped) {
			return true, domain.Success
		}
	}

	first := in.Scraped[0]
	limit := domain.TruncateDay(c.now()).AddDate(0, 0, -c.offsetLimitDays)
	beyondLimit := in.DateFrom.Before(limit) && last.OperationalDate.Before(limit)
	if beyondLimit && domain.RoundCents(last.TempBalance.Add(first.Amount)).Equal(first.TempBalance) {
		log.Info().
			Str("last_saved_date", last.OperationalDate.Format(domain.DateLayout)).
			Msg("last saved movement is beyond the offset limit but balances tie out across the gap")
		return true, domain.Success
	}

	log.Warn().Int64("movement_id", last.ID).Msg("last saved movement not found in scraped movements")
	return false, domain.ErrLastMovementSavedNotInScrapedMovements
}

// PendingInserts returns the scraped movements not yet persisted, for a
// window the checker found consistent.
func (c *BalanceChecker) PendingInserts(scraped []domain.ScrapedMovement, saved []domain.PersistedMovement, lastSaved *domain.PersistedMovement) []domain.ScrapedMovement {
	if len(scraped) == 0 {
		return nil
	}
	if len(saved) == 0 {
		if lastSaved == nil {
			return scraped
		}
		for i := len(scraped) - 1; i >= 0; i-- {
			if c.oracle.IsEqual(*lastSaved, scraped[i]) {
				return scraped[i+1:]
			}
		}
		return scraped
	}

	aligned := len(saved) - pivotIndex(saved, scraped[0])
	if aligned >= len(scraped) {
		return nil
	}
	return scraped[aligned:]
}

// pivotIndex skips persisted movements sorting strictly before the first
// scraped movement; they belong to an earlier, already reconciled window.
func pivotIndex(saved []domain.PersistedMovement, first domain.ScrapedMovement) int {
	i := 0
	for i < len(saved) && saved[i].Before(first.MovementFields) {
		i++
	}
	return i
}
