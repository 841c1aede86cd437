package usecase_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"movement-reconciliation/internal/domain"
	"movement-reconciliation/internal/usecase"
)

func TestEqualityOracle_IsEqual(t *testing.T) {
	oracle := usecase.NewEqualityOracle(zerolog.Nop())

	legacy := savedMovement(1, day(0), 1, "-10.00", "90.00", "")
	legacy.ValueDate = day(1)

	t.Run("stable key decides alone", func(t *testing.T) {
		saved := savedMovement(1, day(0), 1, "-10.00", "90.00", "k1")
		same := scrapedMovement(day(3), 7, "-99.00", "1.00", "k1")
		other := scrapedMovement(day(0), 1, "-10.00", "90.00", "k2")

		assert.True(t, oracle.IsEqual(saved, same))
		assert.False(t, oracle.IsEqual(saved, other))
	})

	t.Run("placeholder key uses legacy comparison", func(t *testing.T) {
		saved := savedMovement(1, day(0), 1, "-10.00", "90.00", "null")
		scraped := scrapedMovement(day(0), 1, "-10.00", "90.00", "fresh-key")

		assert.True(t, oracle.IsEqual(saved, scraped))
	})

	legacyCases := []struct {
		name   string
		change func(f *domain.MovementFields)
		want   bool
	}{
		{name: "all fields match", change: func(f *domain.MovementFields) {}, want: true},
		{name: "operational date differs", change: func(f *domain.MovementFields) { f.OperationalDate = day(-2) }, want: true},
		{name: "value date differs", change: func(f *domain.MovementFields) { f.ValueDate = day(5) }, want: false},
		{name: "position differs", change: func(f *domain.MovementFields) { f.OperationalDatePosition = 2 }, want: false},
		{name: "amount differs", change: func(f *domain.MovementFields) { f.Amount = dec("-10.01") }, want: false},
		{name: "balance differs", change: func(f *domain.MovementFields) { f.TempBalance = dec("89.99") }, want: false},
	}

	for _, tt := range legacyCases {
		t.Run("legacy "+tt.name, func(t *testing.T) {
			scraped := scrapedMovement(day(0), 1, "-10.00", "90.00", "")
			scraped.ValueDate = day(1)
			tt.change(&scraped.MovementFields)

			assert.Equal(t, tt.want, oracle.IsEqual(legacy, scraped))
		})
	}
}
