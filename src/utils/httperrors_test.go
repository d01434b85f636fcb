package utils_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"painel/src/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"http error", utils.NotFound("unknown indicator"), http.StatusNotFound, "unknown indicator"},
		{"wrapped http error", fmt.Errorf("fetch: %w", utils.BadGateway("upstream down")), http.StatusBadGateway, "upstream down"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "boom"},
		{"timeout", fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "Request timed out"},
		{"nil error", nil, http.StatusInternalServerError, "Unhandled error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			utils.WriteError(rec, tt.err)

			assert.Equal(t, tt.code, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body["error"])
		})
	}
}
