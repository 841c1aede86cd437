// Package ledger provides persistence for account movements.
//
// SQLiteStore is the durable ledger. DeleteMovementsAfter and InsertMovements
// each run in a single SQL transaction; the caller serializes passes for one
// account so a truncate and the following insert are not interleaved.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"movement-reconciliation/internal/domain"
)

// ErrMissingPosition is returned when a movement without operational date
// position is about to be written.
var ErrMissingPosition = errors.New("movement has no operational date position")

const schema = `
CREATE TABLE IF NOT EXISTS movements (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	account_id TEXT NOT NULL,
	operational_date TEXT NOT NULL,
	value_date TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	amount TEXT NOT NULL,
	temp_balance TEXT NOT NULL,
	operational_date_position INTEGER,
	key_value TEXT
);

CREATE INDEX IF NOT EXISTS idx_movements_account_date
	ON movements(account_id, operational_date, operational_date_position);
`

const selectColumns = `id, account_id, operational_date, value_date, description,
	amount, temp_balance, operational_date_position, key_value`

// SQLiteStore implements the LedgerRepository interface on SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens the SQLite database at path and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetMovements returns the account movements in [from, to] in ledger order.
func (s *SQLiteStore) GetMovements(ctx context.Context, accountID string, from, to time.Time) ([]domain.PersistedMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM movements
		WHERE account_id = ? AND operational_date >= ? AND operational_date <= ?
		ORDER BY operational_date, operational_date_position, id`,
		accountID, from.Format(domain.DateLayout), to.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("query movements of %s: %w", accountID, err)
	}
	defer rows.Close()

	var movements []domain.PersistedMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement of %s: %w", accountID, err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movements of %s: %w", accountID, err)
	}
	return movements, nil
}

// GetLastMovement returns the most recent movement of the account, or nil.
func (s *SQLiteStore) GetLastMovement(ctx context.Context, accountID string) (*domain.PersistedMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM movements
		WHERE account_id = ?
		ORDER BY operational_date DESC, operational_date_position DESC, id DESC
		LIMIT 1`, accountID)
	m, err := scanMovement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last movement of %s: %w", accountID, err)
	}
	return &m, nil
}

// DeleteMovementsAfter removes every movement of the account with an id
// greater than id.
func (s *SQLiteStore) DeleteMovementsAfter(ctx context.Context, accountID string, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin truncate: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM movements WHERE account_id = ? AND id > ?`, accountID, id)
	if err != nil {
		return 0, fmt.Errorf("delete movements of %s after %d: %w", accountID, id, err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit truncate: %w", err)
	}
	return deleted, nil
}

// InsertMovements appends movements to the account ledger atomically.
func (s *SQLiteStore) InsertMovements(ctx context.Context, accountID string, movements []domain.ScrapedMovement) error {
	for i, m := range movements {
		if !m.HasPosition() {
			return fmt.Errorf("movement %d of %s: %w", i, accountID, ErrMissingPosition)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO movements
		(account_id, operational_date, value_date, description, amount, temp_balance, operational_date_position, key_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range movements {
		_, err := stmt.ExecContext(ctx,
			accountID,
			m.OperationalDate.Format(domain.DateLayout),
			m.ValueDate.Format(domain.DateLayout),
			m.Description,
			m.Amount.String(),
			m.TempBalance.String(),
			m.OperationalDatePosition,
			nullString(m.KeyValue),
		)
		if err != nil {
			return fmt.Errorf("insert movement of %s: %w", accountID, err)
		}
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMovement(row scanner) (domain.PersistedMovement, error) {
	var (
		m                   domain.PersistedMovement
		opDate, valueDate   string
		amount, tempBalance string
		position            sql.NullInt64
		keyValue            sql.NullString
	)
	if err := row.Scan(&m.ID, &m.AccountID, &opDate, &valueDate, &m.Description,
		&amount, &tempBalance, &position, &keyValue); err != nil {
		return m, err
	}

	var err error
	if m.OperationalDate, err = time.Parse(domain.DateLayout, opDate); err != nil {
		return m, fmt.Errorf("movement %d operational_date: %w", m.ID, err)
	}
	if m.ValueDate, err = time.Parse(domain.DateLayout, valueDate); err != nil {
		return m, fmt.Errorf("movement %d value_date: %w", m.ID, err)
	}
	if m.Amount, err = decimal.NewFromString(amount); err != nil {
		return m, fmt.Errorf("movement %d amount: %w", m.ID, err)
	}
	if m.TempBalance, err = decimal.NewFromString(tempBalance); err != nil {
		return m, fmt.Errorf("movement %d temp_balance: %w", m.ID, err)
	}
	if position.Valid {
		m.OperationalDatePosition = int(position.Int64)
	}
	m.KeyValue = keyValue.String
	return m, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
