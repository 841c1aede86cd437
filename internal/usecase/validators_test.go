package usecase_test

import (
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"movement-reconciliation/internal/domain"
	"movement-reconciliation/internal/usecase"
	mock_usecase "movement-reconciliation/internal/usecase/mocks"
)

func TestScrapedConsistencyValidator_Check(t *testing.T) {
	tests := []struct {
		name       string
		movements  []domain.ScrapedMovement
		want       bool
		wantNotify bool
	}{
		{
			name: "empty batch",
			want: true,
		},
		{
			name:      "single movement",
			movements: []domain.ScrapedMovement{scrapedMovement(day(0), 1, "10.00", "110.00", "a")},
			want:      true,
		},
		{
			name: "cumulative sums tie out",
			movements: []domain.ScrapedMovement{
				scrapedMovement(day(0), 1, "10.00", "110.00", "a"),
				scrapedMovement(day(0), 2, "-20.50", "89.50", "b"),
				scrapedMovement(day(1), 1, "0.25", "89.75", "c"),
			},
			want: true,
		},
		{
			name: "off by one euro",
			movements: []domain.ScrapedMovement{
				scrapedMovement(day(0), 1, "10.00", "110.00", "a"),
				scrapedMovement(day(0), 2, "5.00", "116.00", "b"),
			},
			want:       false,
			wantNotify: true,
		},
		{
			name: "sub cent residue rounds away",
			movements: []domain.ScrapedMovement{
				scrapedMovement(day(0), 1, "10.00", "110.001", "a"),
				scrapedMovement(day(0), 2, "5.00", "115.00", "b"),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			notifier := mock_usecase.NewMockNotifier(ctrl)
			if tt.wantNotify {
				notifier.EXPECT().
					Notify(domain.SeverityError, gomock.Any()).
					Do(func(_ domain.Severity, text string) {
						assert.True(t, strings.Contains(text, "index 1"), text)
						assert.True(t, strings.Contains(text, "batch of 2 movements"), text)
					})
			}

			v := usecase.NewScrapedConsistencyValidator(notifier)
			assert.Equal(t, tt.want, v.Check(tt.movements))
		})
	}
}

func TestLastMovementBalanceValidator_Check(t *testing.T) {
	v := usecase.NewLastMovementBalanceValidator()
	movements := []domain.ScrapedMovement{
		scrapedMovement(day(0), 1, "10.00", "110.00", "a"),
		scrapedMovement(day(0), 2, "-30.00", "80.00", "b"),
	}

	assert.True(t, v.Check(dec("999.99"), nil), "empty batch is handled elsewhere")
	assert.True(t, v.Check(dec("80.00"), movements))
	assert.True(t, v.Check(dec("80"), movements))
	assert.False(t, v.Check(dec("110.00"), movements))
	assert.False(t, v.Check(dec("80.01"), movements))
}
