package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used by every gateway.
const DateLayout = "2006-01-02"

// keyValuePlaceholder is what legacy rows carry instead of a real key.
const keyValuePlaceholder = "null"

// MovementFields holds the fields shared by scraped and persisted movements.
type MovementFields struct {
	OperationalDate time.Time       `json:"operational_date"`
	ValueDate       time.Time       `json:"value_date"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	TempBalance     decimal.Decimal `json:"temp_balance"` // balance right after this movement

	// OperationalDatePosition is the 1-based rank among movements sharing
	// the same operational date. Zero means the position is absent.
	OperationalDatePosition int    `json:"operational_date_position"`
	KeyValue                string `json:"key_value,omitempty"`
}

// Fields returns the shared movement fields.
func (f MovementFields) Fields() MovementFields {
	return f
}

// HasKeyValue reports whether the movement carries a stable identity.
func (f MovementFields) HasKeyValue() bool {
	return f.KeyValue != "" && f.KeyValue != keyValuePlaceholder
}

// HasPosition reports whether the operational date position is set.
func (f MovementFields) HasPosition() bool {
	return f.OperationalDatePosition > 0
}

// Before reports whether f sorts strictly before other by
// (operational date, operational date position).
func (f MovementFields) Before(other MovementFields) bool {
	if !f.OperationalDate.Equal(other.OperationalDate) {
		return f.OperationalDate.Before(other.OperationalDate)
	}
	return f.OperationalDatePosition < other.OperationalDatePosition
}

// Movement is implemented by both movement variants.
type Movement interface {
	Fields() MovementFields
}

// ScrapedMovement is a movement freshly read from the bank during this pass.
type ScrapedMovement struct {
	MovementFields
}

// PersistedMovement is a movement stored in the ledger.
type PersistedMovement struct {
	ID        int64  `json:"id"`
	AccountID string `json:"account_id"`
	MovementFields
}

// AccountSnapshot is the account state read from the bank just now.
type AccountSnapshot struct {
	AccountID string          `json:"account_id"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
}

// Date builds a calendar date at UTC midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TruncateDay drops the time of day, keeping the calendar date of t.
func TruncateDay(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// RoundCents rounds d to 2 fractional digits.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
