//go:build unit

package rental_test

import (
	"testing"
	"time"

	"toy-rental-storefront/internal/domain/rental"
	"toy-rental-storefront/internal/pkg/clock"
	"toy-rental-storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOptions(t *testing.T) rental.Options {
	t.Helper()
	opts, err := rental.NewOptions(
		rental.RentalOption{DurationDays: 7, Price: decimal.RequireFromString("600")},
		rental.RentalOption{DurationDays: 3, Price: decimal.RequireFromString("300")},
		rental.RentalOption{DurationDays: 15, Price: decimal.RequireFromString("1000")},
	)
	require.NoError(t, err)
	return opts
}

func TestEndDateFor(t *testing.T) {
	testCases := []struct {
		name     string
		start    rental.Date
		duration int
		expected rental.Date
	}{
		{name: "one day rental ends on start date", start: rental.NewDate(2024, 3, 10), duration: 1, expected: rental.NewDate(2024, 3, 10)},
		{name: "leap year february rollover", start: rental.NewDate(2024, 2, 20), duration: 15, expected: rental.NewDate(2024, 3, 5)},
		{name: "non leap year february rollover", start: rental.NewDate(2023, 2, 20), duration: 15, expected: rental.NewDate(2023, 3, 6)},
		{name: "month end rollover", start: rental.NewDate(2024, 1, 30), duration: 3, expected: rental.NewDate(2024, 2, 1)},
		{name: "year end rollover", start: rental.NewDate(2024, 12, 30), duration: 7, expected: rental.NewDate(2025, 1, 5)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := rental.EndDateFor(tc.start, tc.duration)
			assert.Equal(t, tc.expected.String(), actual.String())

			sel := rental.RentalSelection{StartDate: tc.start, EndDate: actual}
			assert.Equal(t, tc.duration, sel.CoveredDays())
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		d, err := rental.ParseDate("2024-02-29")
		require.NoError(t, err)
		assert.Equal(t, "2024-02-29", d.String())
	})

	t.Run("rejects non-existent day", func(t *testing.T) {
		_, err := rental.ParseDate("2023-02-29")
		assert.Error(t, err)
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		_, err := rental.ParseDate("03/01/2024")
		assert.Error(t, err)
	})
}

func TestSelectionBuilder(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 2024-02-19 23:30 UTC is already 2024-02-20 in Tokyo
	clk := clock.NewMockClock(time.Date(2024, 2, 19, 23, 30, 0, 0, time.UTC))
	b := rental.NewSelectionBuilder(clk, tokyo)
	opts := mustOptions(t)

	t.Run("today follows the storefront zone", func(t *testing.T) {
		assert.Equal(t, "2024-02-20", b.Today().String())
	})

	t.Run("success: snapshots price and catalog index", func(t *testing.T) {
		sel, err := b.Build("p1", opts, 15, "2024-02-20")
		require.NoError(t, err)

		assert.Equal(t, "p1", sel.ProductID)
		assert.Equal(t, 15, sel.DurationDays)
		assert.Equal(t, 2, sel.OptionIndex)
		assert.Equal(t, "2024-02-20", sel.StartDate.String())
		assert.Equal(t, "2024-03-05", sel.EndDate.String())
		assert.True(t, decimal.RequireFromString("1000").Equal(sel.UnitPrice))
	})

	t.Run("validation errors", func(t *testing.T) {
		testCases := []struct {
			name      string
			duration  int
			startDate string
			field     string
		}{
			{name: "duration not offered", duration: 5, startDate: "2024-02-21", field: rental.FieldDurationDays},
			{name: "missing start date", duration: 7, startDate: "", field: rental.FieldStartDate},
			{name: "malformed start date", duration: 7, startDate: "2024-13-01", field: rental.FieldStartDate},
			{name: "start date in the past", duration: 7, startDate: "2024-02-19", field: rental.FieldStartDate},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := b.Build("p1", opts, tc.duration, tc.startDate)
				require.Error(t, err)

				var verr *errs.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tc.field, verr.Field)
			})
		}
	})
}

func TestOptions(t *testing.T) {
	t.Run("rejects duplicate durations", func(t *testing.T) {
		_, err := rental.NewOptions(
			rental.RentalOption{DurationDays: 3, Price: decimal.NewFromInt(100)},
			rental.RentalOption{DurationDays: 3, Price: decimal.NewFromInt(200)},
		)
		assert.ErrorIs(t, err, rental.ErrDuplicateDuration)
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		_, err := rental.NewRentalOption(0, decimal.NewFromInt(100))
		assert.ErrorIs(t, err, rental.ErrInvalidDuration)
	})

	t.Run("sorted copy leaves catalog order intact", func(t *testing.T) {
		opts := mustOptions(t)
		sorted := opts.SortedByDuration()

		assert.Equal(t, []int{3, 7, 15}, sorted.Durations())
		assert.Equal(t, []int{7, 3, 15}, opts.Durations())
	})
}
