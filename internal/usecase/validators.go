package usecase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"movement-reconciliation/internal/domain"
)

// ScrapedConsistencyValidator verifies that a scraped batch ties out
// internally: each balance equals the previous balance plus the amount.
type ScrapedConsistencyValidator struct {
	notifier Notifier
}

// NewScrapedConsistencyValidator creates a validator reporting to notifier.
func NewScrapedConsistencyValidator(notifier Notifier) *ScrapedConsistencyValidator {
	return &ScrapedConsistencyValidator{notifier: notifier}
}

// Check walks the ascending batch once and stops at the first violation.
func (v *ScrapedConsistencyValidator) Check(movements []domain.ScrapedMovement) bool {
	if len(movements) == 0 {
		return true
	}

	running := movements[0].TempBalance
	for i := 1; i < len(movements); i++ {
		m := movements[i]
		expected := domain.RoundCents(running.Add(m.Amount))
		if !expected.Equal(domain.RoundCents(m.TempBalance)) {
			v.notifier.Notify(domain.SeverityError, describeInconsistentBatch(i, expected, movements))
			return false
		}
		running = m.TempBalance
	}
	return true
}

func describeInconsistentBatch(index int, expected decimal.Decimal, movements []domain.ScrapedMovement) string {
	var b strings.Builder
	m := movements[index]
	fmt.Fprintf(&b, "scraped movements are not consistent at index %d: expected balance %s, got %s (%s %s %q)\n",
		index, expected.StringFixed(2), m.TempBalance.StringFixed(2),
		m.OperationalDate.Format(domain.DateLayout), m.Amount.StringFixed(2), m.Description)
	fmt.Fprintf(&b, "batch of %d movements:\n", len(movements))
	for i, mv := range movements {
		fmt.Fprintf(&b, "%3d %s pos=%d amount=%s balance=%s %q\n",
			i, mv.OperationalDate.Format(domain.DateLayout), mv.OperationalDatePosition,
			mv.Amount.StringFixed(2), mv.TempBalance.StringFixed(2), mv.Description)
	}
	return b.String()
}

// LastMovementBalanceValidator verifies that the live account balance
// matches the balance after the last scraped movement.
type LastMovementBalanceValidator struct{}

// NewLastMovementBalanceValidator creates the validator.
func NewLastMovementBalanceValidator() *LastMovementBalanceValidator {
	return &LastMovementBalanceValidator{}
}

// Check is trivially true for an empty batch; that case has its own path.
func (v *LastMovementBalanceValidator) Check(accountBalance decimal.Decimal, movements []domain.ScrapedMovement) bool {
	if len(movements) == 0 {
		return true
	}
	return accountBalance.Equal(movements[len(movements)-1].TempBalance)
}
