package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"movement-reconciliation/internal/domain"
)

// FixInput gathers what the auto-fixer needs for one account.
type FixInput struct {
	Account            domain.AccountSnapshot
	Scraped            []domain.ScrapedMovement
	Saved              []domain.PersistedMovement
	DateFrom           time.Time
	DateTo             time.Time
	MinAllowedDateFrom time.Time
}

// AutoFixer repairs the persisted ledger by truncating the tail after the
// last movement confirmed by the scraped window.
type AutoFixer struct {
	oracle      *EqualityOracle
	truncator   Truncator
	notifier    Notifier
	applyWrites bool
	log         zerolog.Logger
}

// NewAutoFixer creates an auto-fixer. Without applyWrites it only logs the
// truncation it would have issued.
func NewAutoFixer(oracle *EqualityOracle, truncator Truncator, notifier Notifier, applyWrites bool, log zerolog.Logger) *AutoFixer {
	return &AutoFixer{
		oracle:      oracle,
		truncator:   truncator,
		notifier:    notifier,
		applyWrites: applyWrites,
		log:         log,
	}
}

// TryFix reports whether the ledger was repaired and the resulting code.
func (f *AutoFixer) TryFix(ctx context.Context, in FixInput) (bool, domain.ResultCode, error) {
	res, err := f.Fix(ctx, in)
	return res.Fixed, res.Code, err
}

// Fix runs the repair and returns the full outcome. A failing truncate
// command is the only error and leaves the ledger unfixed.
func (f *AutoFixer) Fix(ctx context.Context, in FixInput) (domain.FixResult, error) {
	log := f.log.With().Str("account_id", in.Account.AccountID).Logger()
	res := domain.FixResult{BrokenIndex: -1, DryRun: !f.applyWrites}

	if len(in.Scraped) == 0 && len(in.Saved) == 0 {
		res.Fixed, res.Code = true, domain.Success
		return res, nil
	}

	for _, saved := range in.Saved {
		if !saved.HasPosition() {
			res.Code = domain.ErrBalanceBadDBData
			res.Severity = domain.SeverityCritical
			res.Message = fmt.Sprintf("account %s: persisted movement %d has no operational date position, refusing to auto-fix",
				in.Account.AccountID, saved.ID)
			f.notifier.Notify(res.Severity, res.Message)
			return res, nil
		}
	}

	historical := !in.DateFrom.After(in.MinAllowedDateFrom)

	if len(in.Scraped) == 0 && in.Saved[0].OperationalDate.Before(in.DateFrom) {
		res.Code = domain.ErrBalanceFewMovements
		if historical {
			res.Code = domain.ErrBalanceFewMovementsHistoricalDateLimit
		}
		res.ProbablyInactive = in.Account.Balance.IsZero()
		res.Severity = domain.SeverityWarning
		res.Message = fmt.Sprintf("account %s: no movements scraped between %s and %s, some movements were probably missed",
			in.Account.AccountID, in.DateFrom.Format(domain.DateLayout), in.DateTo.Format(domain.DateLayout))
		if res.ProbablyInactive {
			res.Message += " (balance is 0, account is probably inactive)"
		}
		f.notifier.Notify(res.Severity, res.Message)
		return res, nil
	}

	var lastCorrect *domain.PersistedMovement
	for i := range in.Saved {
		if i >= len(in.Scraped) {
			res.Code = domain.ErrBalanceFewMovements
			res.Severity = domain.SeverityError
			res.Message = fmt.Sprintf("account %s: scraped %d movements but %d are persisted, cannot auto-fix",
				in.Account.AccountID, len(in.Scraped), len(in.Saved))
			f.notifier.Notify(res.Severity, res.Message)
			return res, nil
		}
		if !f.oracle.IsEqual(in.Saved[i], in.Scraped[i]) {
			res.BrokenIndex = i
			break
		}
		lastCorrect = &in.Saved[i]
	}

	if lastCorrect == nil {
		res.Code = domain.ErrBalanceNoPivotMovement
		res.Severity = domain.SeverityError
		res.Message = fmt.Sprintf("account %s: no persisted movement matches the scraped window, cannot auto-fix",
			in.Account.AccountID)
		f.notifier.Notify(res.Severity, res.Message)
		return res, nil
	}

	if res.BrokenIndex < 0 {
		log.Info().Int64("last_correct_id", lastCorrect.ID).Msg("every persisted movement matches, nothing to truncate")
		res.Fixed, res.Code = true, domain.Success
		res.Severity = domain.SeverityWarning
		res.Message = fmt.Sprintf("account %s: every persisted movement matches the scraped movements in order, nothing truncated",
			in.Account.AccountID)
		f.notifier.Notify(res.Severity, res.Message)
		return res, nil
	}

	res.TruncatedAfterID = lastCorrect.ID
	if f.applyWrites {
		deleted, err := f.truncator.DeleteMovementsAfter(ctx, in.Account.AccountID, lastCorrect.ID)
		if err != nil {
			res.Code = domain.ErrBalanceSavedUnfixed
			return res, fmt.Errorf("truncate movements after %d: %w", lastCorrect.ID, err)
		}
		res.DeletedRows = deleted
	} else {
		log.Info().Int64("last_correct_id", lastCorrect.ID).Msg("dry run, skipping truncate")
	}

	brokenSaved := in.Saved[res.BrokenIndex]
	brokenScraped := in.Scraped[res.BrokenIndex]
	mostRecent := in.Saved[len(in.Saved)-1].OperationalDate
	res.BrokenInPreviousDates = !brokenSaved.OperationalDate.Equal(mostRecent)

	res.Fixed, res.Code = true, domain.Success
	if res.BrokenInPreviousDates {
		res.Severity = domain.SeverityError
		res.Message = fmt.Sprintf("account %s: fixed automatically, was broken in previous dates", in.Account.AccountID)
	} else {
		res.Severity = domain.SeverityWarning
		res.Message = fmt.Sprintf("account %s: fixed automatically", in.Account.AccountID)
	}
	res.Message += fmt.Sprintf(". First broken persisted movement %d (%s %s balance %s) vs scraped (%s %s balance %s), truncated after %d",
		brokenSaved.ID, brokenSaved.OperationalDate.Format(domain.DateLayout), brokenSaved.Amount.StringFixed(2), brokenSaved.TempBalance.StringFixed(2),
		brokenScraped.OperationalDate.Format(domain.DateLayout), brokenScraped.Amount.StringFixed(2), brokenScraped.TempBalance.StringFixed(2),
		lastCorrect.ID)
	f.notifier.Notify(res.Severity, res.Message)
	return res, nil
}
