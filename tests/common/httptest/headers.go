//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

// AssertHeaderPresent checks that the response carries a non-empty header.
func AssertHeaderPresent(t *testing.T, w *httptest.ResponseRecorder, key string) string {
	t.Helper()
	v := w.Header().Get(key)
	assert.NotEmpty(t, v, "header %s missing", key)
	return v
}
