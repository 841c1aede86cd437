package domain

import "fmt"

// ResultCode is the outcome of a balance integrity check or repair.
type ResultCode int

const (
	Success ResultCode = iota
	WarnFewMovements
	WarnFewMovementsHistoricalDateLimit
	ErrBalanceFewMovements
	ErrBalanceFewMovementsHistoricalDateLimit
	ErrBalanceSavedUnfixed
	ErrBalanceNoPivotMovement
	ErrBalanceBadDBData
	ErrLastMovementSavedNotInScrapedMovements
)

// ResultClass groups result codes by how the caller must react.
type ResultClass string

const (
	// ClassSuccess means scraped data can be persisted.
	ClassSuccess ResultClass = "success"
	// ClassAdvisory means scraped data can be persisted but an operator is told.
	ClassAdvisory ResultClass = "advisory"
	// ClassFixable means persistence is aborted unless the auto-fixer repairs the ledger.
	ClassFixable ResultClass = "fixable"
	// ClassFatal needs manual intervention.
	ClassFatal ResultClass = "fatal"
)

// AllResultCodes lists every result code.
func AllResultCodes() []ResultCode {
	return []ResultCode{
		Success,
		WarnFewMovements,
		WarnFewMovementsHistoricalDateLimit,
		ErrBalanceFewMovements,
		ErrBalanceFewMovementsHistoricalDateLimit,
		ErrBalanceSavedUnfixed,
		ErrBalanceNoPivotMovement,
		ErrBalanceBadDBData,
		ErrLastMovementSavedNotInScrapedMovements,
	}
}

func (c ResultCode) String() string {
	switch c {
	case Success:
		return "SUCCESS"
	case WarnFewMovements:
		return "WRN_FEW_MOVEMENTS"
	case WarnFewMovementsHistoricalDateLimit:
		return "WRN_FEW_MOVEMENTS_HISTORICAL_DATE_LIMIT"
	case ErrBalanceFewMovements:
		return "ERR_BALANCE_FEW_MOVEMENTS"
	case ErrBalanceFewMovementsHistoricalDateLimit:
		return "ERR_BALANCE_FEW_MOVEMENTS_HISTORICAL_DATE_LIMIT"
	case ErrBalanceSavedUnfixed:
		return "ERR_BALANCE_SAVED_UNFIXED"
	case ErrBalanceNoPivotMovement:
		return "ERR_BALANCE_NO_PIVOT_MOVEMENT"
	case ErrBalanceBadDBData:
		return "ERR_BALANCE_BAD_DB_DATA"
	case ErrLastMovementSavedNotInScrapedMovements:
		return "ERR_LAST_MOVEMENT_SAVED_NOT_IN_SCRAPED_MOVEMENTS"
	}
	return fmt.Sprintf("ResultCode(%d)", int(c))
}

// Class returns how the caller must treat c. It panics on a value outside
// the declared set so a new code cannot slip through unclassified.
func (c ResultCode) Class() ResultClass {
	switch c {
	case Success:
		return ClassSuccess
	case WarnFewMovements, WarnFewMovementsHistoricalDateLimit:
		return ClassAdvisory
	case ErrBalanceFewMovements,
		ErrBalanceFewMovementsHistoricalDateLimit,
		ErrBalanceSavedUnfixed,
		ErrBalanceNoPivotMovement,
		ErrLastMovementSavedNotInScrapedMovements:
		return ClassFixable
	case ErrBalanceBadDBData:
		return ClassFatal
	}
	panic(fmt.Sprintf("domain: unclassified result code %d", int(c)))
}

// IsConsistent reports whether scraped movements may be persisted.
func (c ResultCode) IsConsistent() bool {
	class := c.Class()
	return class == ClassSuccess || class == ClassAdvisory
}

// AutoFixEligible reports whether the auto-fixer may be attempted for c.
func (c ResultCode) AutoFixEligible() bool {
	return c.Class() == ClassFixable
}

// MarshalText encodes the code by name.
func (c ResultCode) MarshalText() ([]byte, error) {
	for _, known := range AllResultCodes() {
		if known == c {
			return []byte(c.String()), nil
		}
	}
	return nil, fmt.Errorf("unknown result code %d", int(c))
}

// UnmarshalText decodes a code from its name.
func (c *ResultCode) UnmarshalText(text []byte) error {
	for _, known := range AllResultCodes() {
		if known.String() == string(text) {
			*c = known
			return nil
		}
	}
	return fmt.Errorf("unknown result code %q", string(text))
}

// Severity tags a notification for the operator.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)
