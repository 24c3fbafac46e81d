package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not found", dErrors.New(dErrors.CodeNotFound, "Timeline event not found"), http.StatusNotFound, "Timeline event not found"},
		{"validation", dErrors.New(dErrors.CodeValidation, "title is required"), http.StatusBadRequest, "title is required"},
		{"conflict", dErrors.New(dErrors.CodeConflict, "Email already exists"), http.StatusConflict, "Email already exists"},
		{"throttled", dErrors.New(dErrors.CodeTooManyRequests, "Too many failed login attempts"), http.StatusTooManyRequests, "Too many failed login attempts"},
		{"internal message is hidden", dErrors.New(dErrors.CodeInternal, "pq: relation missing"), http.StatusInternalServerError, "Internal server error"},
		{"plain error is internal", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
		{"wrapped domain error", fmt.Errorf("handler: %w", dErrors.New(dErrors.CodeForbidden, "nope")), http.StatusForbidden, "nope"},
		{"empty message uses status text", dErrors.New(dErrors.CodeUnauthorized, ""), http.StatusUnauthorized, "Unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestEnvelopeWriters(t *testing.T) {
	t.Run("list carries total even when zero", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteList(w, []string{}, 0)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(0), body["total"])
		assert.NotContains(t, body, "message")
	})

	t.Run("data with message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteData(w, http.StatusCreated, map[string]string{"id": "x"}, "Created")

		assert.Equal(t, http.StatusCreated, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Created", body["message"])
		assert.NotContains(t, body, "total")
	})
}
