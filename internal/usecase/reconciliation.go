package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"movement-reconciliation/internal/domain"
)

// ErrInconsistentScrapedBatch is returned when the scraped movements do not
// tie out internally; nothing is persisted for the account.
var ErrInconsistentScrapedBatch = errors.New("scraped movements are not internally consistent")

// Options configures a ReconciliationUseCase.
type Options struct {
	OffsetLimitDays    int
	MinAllowedDateFrom time.Time
	AutoFix            bool
	ApplyWrites        bool
	Now                func() time.Time
	Logger             zerolog.Logger
}

// ReconcileRequest describes one reconciliation pass for one account.
type ReconcileRequest struct {
	Account     domain.AccountSnapshot
	ScrapedPath string
	DateFrom    time.Time
	DateTo      time.Time
}

// ReconciliationUseCase orchestrates the reconciliation process.
type ReconciliationUseCase struct {
	ledger   LedgerRepository
	source   ScrapedMovementSource
	notifier Notifier
	opts     Options

	scrapedValidator *ScrapedConsistencyValidator
	balanceValidator *LastMovementBalanceValidator
	checker          *BalanceChecker
	fixer            *AutoFixer

	// locks holds one mutex per account seen and is never pruned; the set
	// of accounts a process reconciles is small and fixed.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewReconciliationUseCase creates a new instance of the usecase.
func NewReconciliationUseCase(ledger LedgerRepository, source ScrapedMovementSource, notifier Notifier, opts Options) *ReconciliationUseCase {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	oracle := NewEqualityOracle(opts.Logger)
	return &ReconciliationUseCase{
		ledger:           ledger,
		source:           source,
		notifier:         notifier,
		opts:             opts,
		scrapedValidator: NewScrapedConsistencyValidator(notifier),
		balanceValidator: NewLastMovementBalanceValidator(),
		checker:          NewBalanceChecker(oracle, opts.OffsetLimitDays, opts.Now, opts.Logger),
		fixer:            NewAutoFixer(oracle, ledger, notifier, opts.ApplyWrites, opts.Logger),
		locks:            make(map[string]*sync.Mutex),
	}
}

// Reconcile runs one pass: validate the scraped batch, check it against the
// ledger, repair when allowed and persist the new movements.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, req ReconcileRequest) (*domain.ReconciliationReport, error) {
	accountID := req.Account.AccountID
	unlock := uc.lockAccount(accountID)
	defer unlock()

	log := uc.opts.Logger.With().Str("account_id", accountID).Logger()
	dateFrom, dateTo := domain.TruncateDay(req.DateFrom), domain.TruncateDay(req.DateTo)

	// Step 1: Data Ingestion
	scraped, err := uc.source.GetScrapedMovements(ctx, req.ScrapedPath)
	if err != nil {
		return nil, fmt.Errorf("could not get scraped movements: %w", err)
	}
	saved, lastSaved, err := uc.loadLedger(ctx, accountID, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	report := &domain.ReconciliationReport{
		Summary: domain.Summary{
			RunID:              uuid.NewString(),
			AccountID:          accountID,
			Currency:           req.Account.Currency,
			TimeframeStart:     dateFrom.Format(time.DateOnly),
			TimeframeEnd:       dateTo.Format(time.DateOnly),
			ScrapedMovements:   len(scraped),
			PersistedMovements: len(saved),
		},
	}
	log = log.With().Str("run_id", report.Summary.RunID).Logger()

	// Step 2: Scraped Batch Validation
	report.Validation.ScrapedConsistent = uc.scrapedValidator.Check(scraped)
	if !report.Validation.ScrapedConsistent {
		return nil, fmt.Errorf("account %s: %w", accountID, ErrInconsistentScrapedBatch)
	}
	report.Validation.LastBalanceMatches = uc.balanceValidator.Check(req.Account.Balance, scraped)
	if !report.Validation.LastBalanceMatches {
		uc.notifier.Notify(domain.SeverityWarning, fmt.Sprintf(
			"account %s: balance %s does not match last scraped movement balance %s",
			accountID, req.Account.Balance.StringFixed(2), scraped[len(scraped)-1].TempBalance.StringFixed(2)))
	}

	// Step 3: Balance Integrity Check
	check := uc.check(req.Account, scraped, saved, dateFrom, lastSaved)
	report.Check = check
	report.FinalCode = check.Code
	log.Info().Stringer("code", check.Code).Bool("consistent", check.Consistent).Msg("balance check done")

	// Step 4: Auto Fix
	if !check.Consistent && check.Code.AutoFixEligible() && uc.opts.AutoFix {
		fix, err := uc.fixer.Fix(ctx, FixInput{
			Account:            req.Account,
			Scraped:            scraped,
			Saved:              saved,
			DateFrom:           dateFrom,
			DateTo:             dateTo,
			MinAllowedDateFrom: uc.opts.MinAllowedDateFrom,
		})
		if err != nil {
			return nil, fmt.Errorf("account %s: auto fix: %w", accountID, err)
		}
		report.Fix = &fix
		// a dry run changes nothing, so the ledger keeps the check code
		if !fix.DryRun {
			report.FinalCode = fix.Code
		}

		if fix.Fixed && !fix.DryRun {
			saved, lastSaved, err = uc.loadLedger(ctx, accountID, dateFrom, dateTo)
			if err != nil {
				return nil, err
			}
			recheck := uc.check(req.Account, scraped, saved, dateFrom, lastSaved)
			report.Recheck = &recheck
			report.FinalCode = recheck.Code
		}
	}

	if !report.FinalCode.IsConsistent() {
		text := fmt.Sprintf("account %s: balance check failed with %s", accountID, report.FinalCode)
		switch {
		case report.Fix != nil && report.Fix.DryRun:
			text += ", dry run left the ledger unchanged"
		case report.Recheck != nil:
			text += " after auto fix"
		}
		uc.notifier.Notify(domain.SeverityError, text)
		return report, nil
	}
	if report.FinalCode.Class() == domain.ClassAdvisory {
		uc.notifier.Notify(domain.SeverityWarning, fmt.Sprintf("account %s: %s", accountID, report.FinalCode))
	}

	// Step 5: Persist New Movements
	pending := uc.checker.PendingInserts(scraped, saved, lastSaved)
	if len(pending) == 0 {
		return report, nil
	}
	if !uc.opts.ApplyWrites {
		log.Info().Int("pending", len(pending)).Msg("dry run, skipping insert")
		return report, nil
	}
	if err := uc.ledger.InsertMovements(ctx, accountID, pending); err != nil {
		return nil, fmt.Errorf("account %s: insert movements: %w", accountID, err)
	}
	report.Inserted = pending
	report.Summary.InsertedMovements = len(pending)
	return report, nil
}

func (uc *ReconciliationUseCase) check(account domain.AccountSnapshot, scraped []domain.ScrapedMovement, saved []domain.PersistedMovement, dateFrom time.Time, lastSaved *domain.PersistedMovement) domain.CheckResult {
	consistent, code := uc.checker.Check(CheckInput{
		Account:            account,
		Scraped:            scraped,
		Saved:              saved,
		DateFrom:           dateFrom,
		MinAllowedDateFrom: uc.opts.MinAllowedDateFrom,
		LastMovementSaved:  lastSaved,
	})
	return domain.CheckResult{Consistent: consistent, Code: code}
}

func (uc *ReconciliationUseCase) loadLedger(ctx context.Context, accountID string, from, to time.Time) ([]domain.PersistedMovement, *domain.PersistedMovement, error) {
	saved, err := uc.ledger.GetMovements(ctx, accountID, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("could not get persisted movements: %w", err)
	}
	lastSaved, err := uc.ledger.GetLastMovement(ctx, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("could not get last persisted movement: %w", err)
	}
	return saved, lastSaved, nil
}

// lockAccount serializes passes for the same account so a truncate and the
// following insert are not interleaved with another writer in this process.
func (uc *ReconciliationUseCase) lockAccount(accountID string) func() {
	uc.mu.Lock()
	l, ok := uc.locks[accountID]
	if !ok {
		l = &sync.Mutex{}
		uc.locks[accountID] = l
	}
	uc.mu.Unlock()

	l.Lock()
	return l.Unlock
}
