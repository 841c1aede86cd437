package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movement-reconciliation/internal/domain"
	"movement-reconciliation/internal/usecase"
)

var (
	_ usecase.LedgerRepository = (*SQLiteStore)(nil)
	_ usecase.LedgerRepository = (*MemoryStore)(nil)
)

func movement(date time.Time, pos int, amount, balance, key string) domain.ScrapedMovement {
	return domain.ScrapedMovement{MovementFields: domain.MovementFields{
		OperationalDate:         date,
		ValueDate:               date,
		Description:             "movement " + key,
		Amount:                  decimal.RequireFromString(amount),
		TempBalance:             decimal.RequireFromString(balance),
		OperationalDatePosition: pos,
		KeyValue:                key,
	}}
}

func newSQLiteStore(t *testing.T) usecase.LedgerRepository {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newMemoryStore(t *testing.T) usecase.LedgerRepository {
	return NewMemoryStore()
}

func TestStores(t *testing.T) {
	stores := []struct {
		name string
		new  func(t *testing.T) usecase.LedgerRepository
	}{
		{"sqlite", newSQLiteStore},
		{"memory", newMemoryStore},
	}

	d1 := domain.Date(2025, time.March, 1)
	d2 := domain.Date(2025, time.March, 2)
	d3 := domain.Date(2025, time.March, 3)

	for _, st := range stores {
		t.Run(st.name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("empty ledger", func(t *testing.T) {
				store := st.new(t)
				last, err := store.GetLastMovement(ctx, "ACC-1")
				require.NoError(t, err)
				assert.Nil(t, last)

				got, err := store.GetMovements(ctx, "ACC-1", d1, d3)
				require.NoError(t, err)
				assert.Empty(t, got)
			})

			t.Run("insert and read back in ledger order", func(t *testing.T) {
				store := st.new(t)
				require.NoError(t, store.InsertMovements(ctx, "ACC-1", []domain.ScrapedMovement{
					movement(d1, 1, "100.00", "100.00", "a"),
					movement(d1, 2, "-20.50", "79.50", "b"),
					movement(d2, 1, "-9.50", "70.00", ""),
					movement(d3, 1, "5.00", "75.00", "d"),
				}))
				require.NoError(t, store.InsertMovements(ctx, "ACC-2", []domain.ScrapedMovement{
					movement(d2, 1, "1.00", "1.00", "other"),
				}))

				got, err := store.GetMovements(ctx, "ACC-1", d1, d2)
				require.NoError(t, err)
				require.Len(t, got, 3)
				assert.Equal(t, "a", got[0].KeyValue)
				assert.Equal(t, "b", got[1].KeyValue)
				assert.Equal(t, "", got[2].KeyValue)
				assert.Equal(t, "ACC-1", got[1].AccountID)
				assert.True(t, got[1].Amount.Equal(decimal.RequireFromString("-20.50")))
				assert.True(t, got[1].TempBalance.Equal(decimal.RequireFromString("79.50")))
				assert.True(t, got[1].OperationalDate.Equal(d1))
				assert.Equal(t, 2, got[1].OperationalDatePosition)
				assert.Less(t, got[0].ID, got[1].ID)

				last, err := store.GetLastMovement(ctx, "ACC-1")
				require.NoError(t, err)
				require.NotNil(t, last)
				assert.Equal(t, "d", last.KeyValue)
			})

			t.Run("truncate after id", func(t *testing.T) {
				store := st.new(t)
				require.NoError(t, store.InsertMovements(ctx, "ACC-1", []domain.ScrapedMovement{
					movement(d1, 1, "100.00", "100.00", "a"),
					movement(d1, 2, "-20.00", "80.00", "b"),
					movement(d2, 1, "-5.00", "75.00", "c"),
				}))
				require.NoError(t, store.InsertMovements(ctx, "ACC-2", []domain.ScrapedMovement{
					movement(d3, 1, "1.00", "1.00", "other"),
				}))

				saved, err := store.GetMovements(ctx, "ACC-1", d1, d3)
				require.NoError(t, err)
				require.Len(t, saved, 3)

				deleted, err := store.DeleteMovementsAfter(ctx, "ACC-1", saved[0].ID)
				require.NoError(t, err)
				assert.Equal(t, int64(2), deleted)

				remaining, err := store.GetMovements(ctx, "ACC-1", d1, d3)
				require.NoError(t, err)
				require.Len(t, remaining, 1)
				assert.Equal(t, "a", remaining[0].KeyValue)

				other, err := store.GetMovements(ctx, "ACC-2", d1, d3)
				require.NoError(t, err)
				assert.Len(t, other, 1, "other accounts are untouched")
			})

			t.Run("insert rejects movements without position", func(t *testing.T) {
				store := st.new(t)
				err := store.InsertMovements(ctx, "ACC-1", []domain.ScrapedMovement{
					movement(d1, 1, "100.00", "100.00", "a"),
					movement(d1, 0, "-20.00", "80.00", "b"),
				})
				assert.ErrorIs(t, err, ErrMissingPosition)

				got, err := store.GetMovements(ctx, "ACC-1", d1, d3)
				require.NoError(t, err)
				assert.Empty(t, got)
			})
		})
	}
}

func TestSQLiteStore_NullPositionLoadsAsMissing(t *testing.T) {
	store, err := New(":memory:")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.db.Exec(`INSERT INTO movements
		(account_id, operational_date, value_date, description, amount, temp_balance, operational_date_position, key_value)
		VALUES ('ACC-1', '2025-03-01', '2025-03-01', 'legacy', '10.00', '10.00', NULL, NULL)`)
	require.NoError(t, err)

	got, err := store.GetMovements(context.Background(), "ACC-1", domain.Date(2025, time.March, 1), domain.Date(2025, time.March, 1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].HasPosition())
	assert.False(t, got[0].HasKeyValue())
}

func TestMemoryStore_Seed(t *testing.T) {
	store := NewMemoryStore()
	seeded := store.Seed("ACC-1",
		domain.MovementFields{OperationalDate: domain.Date(2025, time.March, 2), OperationalDatePosition: 1},
		domain.MovementFields{OperationalDate: domain.Date(2025, time.March, 1)},
	)
	require.Len(t, seeded, 2)
	assert.Equal(t, int64(1), seeded[0].ID)
	assert.Equal(t, int64(2), seeded[1].ID)

	last, err := store.GetLastMovement(context.Background(), "ACC-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), last.ID)
}

func TestSQLiteStore_FileDatabaseSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	store, err := New(path)
	require.NoError(t, err)
	require.NoError(t, store.InsertMovements(ctx, "ACC-1", []domain.ScrapedMovement{
		movement(domain.Date(2025, time.March, 1), 1, "10.00", "10.00", "a"),
	}))
	require.NoError(t, store.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	var mode string
	require.NoError(t, reopened.db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)

	last, err := reopened.GetLastMovement(ctx, "ACC-1")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "a", last.KeyValue)
}
