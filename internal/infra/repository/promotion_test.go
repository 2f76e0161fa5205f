//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"toy-rental-storefront/internal/infra"
	"toy-rental-storefront/internal/pkg/clock"
	"toy-rental-storefront/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPromotionLookup(t *testing.T) {
	now := time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		row       stubRow
		wantFound bool
		wantCode  string
		wantRate  string
		wantKind  infra.RepositoryErrorKind
	}{
		{
			name:      "active code",
			row:       stubRow{values: []any{"SPRING15", pgconv.DecimalToNumeric(decimal.RequireFromString("0.15"))}},
			wantFound: true,
			wantCode:  "SPRING15",
			wantRate:  "0.15",
		},
		{
			name:      "no row is a miss",
			row:       stubRow{err: pgx.ErrNoRows},
			wantFound: false,
		},
		{
			name:     "stored rate out of range",
			row:      stubRow{values: []any{"BROKEN", pgconv.DecimalToNumeric(decimal.RequireFromString("1.5"))}},
			wantKind: infra.KindDBFailure,
		},
		{
			name:     "database error",
			row:      stubRow{err: assert.AnError},
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("QueryRow", mock.Anything, lookupActivePromotion,
				[]any{"SPRING15", pgconv.TimeToPgtype(now)}).Return(tt.row)

			repo := NewPromotionRepository(db, clock.NewMockClock(now))
			p, found, err := repo.Lookup(context.Background(), "SPRING15")

			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind))
				assert.False(t, found)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantFound, found)
				if tt.wantFound {
					assert.Equal(t, tt.wantCode, p.Code)
					assert.True(t, decimal.RequireFromString(tt.wantRate).Equal(p.Rate))
				}
			}
			db.AssertExpectations(t)
		})
	}
}
