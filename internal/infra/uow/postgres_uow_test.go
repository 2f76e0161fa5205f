//go:build unit

package uow

import (
	"testing"
	"time"

	"toy-rental-storefront/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond

	for attempt := 0; attempt < 3; attempt++ {
		floor := time.Duration(1<<attempt) * base
		for range 20 {
			got := calculateBackoff(attempt, base)
			assert.GreaterOrEqual(t, got, floor)
			assert.Less(t, got, floor+floor/5)
		}
	}
}

func TestShouldRetry(t *testing.T) {
	serialization := errs.Wrap(&pgconn.PgError{Code: pgErrCodeSerializationFailure}, "commit")
	deadlock := &pgconn.PgError{Code: pgErrCodeDeadlockDetected}
	uniqueViolation := &pgconn.PgError{Code: "23505"}

	tests := []struct {
		name    string
		err     error
		attempt int
		want    bool
	}{
		{name: "serialization failure", err: serialization, attempt: 0, want: true},
		{name: "deadlock", err: deadlock, attempt: 2, want: true},
		{name: "attempts exhausted", err: deadlock, attempt: 3, want: false},
		{name: "constraint violation", err: uniqueViolation, attempt: 0, want: false},
		{name: "non-postgres error", err: assert.AnError, attempt: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldRetry(tt.err, tt.attempt, 3))
		})
	}
}
