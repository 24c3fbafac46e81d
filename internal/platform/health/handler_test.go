package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.Register(r)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestLivenessAndStatus(t *testing.T) {
	h := New("test", nil)

	assert.Equal(t, http.StatusOK, serve(h, "/health/live").Code)

	w := serve(h, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	var body StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "test", body.Environment)
}

func TestReadiness(t *testing.T) {
	t.Run("all checks up", func(t *testing.T) {
		h := New("test", nil)
		h.RegisterCheck("database", func(context.Context) error { return nil })

		w := serve(h, "/health/ready")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("one check down hides error detail", func(t *testing.T) {
		h := New("test", nil)
		h.RegisterCheck("database", func(context.Context) error { return nil })
		h.RegisterCheck("redis", func(context.Context) error { return errors.New("dial tcp 10.0.0.3:6379") })

		w := serve(h, "/health/ready")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var body ReadinessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "not_ready", body.Status)
		assert.Equal(t, "down", body.Checks["redis"])
		assert.Equal(t, "up", body.Checks["database"])
	})
}
