package domain

// CheckResult is the outcome of the balance integrity check.
type CheckResult struct {
	Consistent bool       `json:"consistent"`
	Code       ResultCode `json:"code"`
}

// FixResult describes what the auto-fixer decided and did.
type FixResult struct {
	Fixed bool       `json:"fixed"`
	Code  ResultCode `json:"code"`

	// TruncatedAfterID is the id of the last movement confirmed correct.
	// Every persisted movement of the account with a greater id is removed.
	TruncatedAfterID int64 `json:"truncated_after_id,omitempty"`
	DeletedRows      int64 `json:"deleted_rows"`
	DryRun           bool  `json:"dry_run"`

	// BrokenIndex is the index of the first mismatching pair, -1 when none.
	BrokenIndex int `json:"broken_index"`

	// BrokenInPreviousDates is set when the first mismatch is older than
	// the most recent persisted date.
	BrokenInPreviousDates bool `json:"broken_in_previous_dates"`

	// ProbablyInactive is an advisory guess, never a confirmed closure.
	ProbablyInactive bool `json:"probably_inactive"`

	Severity Severity `json:"severity,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// ValidationSummary records the outcome of the scraped batch validators.
type ValidationSummary struct {
	ScrapedConsistent  bool `json:"scraped_consistent"`
	LastBalanceMatches bool `json:"last_balance_matches"`
}

// Summary provides high-level statistics of one reconciliation pass.
type Summary struct {
	RunID              string `json:"run_id"`
	AccountID          string `json:"account_id"`
	Currency           string `json:"currency"`
	TimeframeStart     string `json:"timeframe_start"`
	TimeframeEnd       string `json:"timeframe_end"`
	ScrapedMovements   int    `json:"scraped_movements"`
	PersistedMovements int    `json:"persisted_movements"`
	InsertedMovements  int    `json:"inserted_movements"`
}

// ReconciliationReport is the top-level structure for the final JSON output.
type ReconciliationReport struct {
	Summary    Summary           `json:"reconciliation_summary"`
	Validation ValidationSummary `json:"validation"`
	Check      CheckResult       `json:"check"`
	Fix        *FixResult        `json:"fix,omitempty"`
	Recheck    *CheckResult      `json:"recheck,omitempty"`
	FinalCode  ResultCode        `json:"final_code"`
	Inserted   []ScrapedMovement `json:"inserted,omitempty"`
}
