package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, Options{
		RateLimit: config.RateLimit{Max: 1, Window: time.Minute},
		TTL:       time.Hour,
	})
}

func TestRoutes(t *testing.T) {
	t.Setenv("APP_BASE_PATH", "")
	h := newTestApp(t).Handler()

	tests := []struct {
		method, target string
		status         int
	}{
		{http.MethodPost, "/game?preset=easy", http.StatusCreated},
		{http.MethodPost, "/game?preset=easy", http.StatusCreated},
		{http.MethodGet, "/game/unknown", http.StatusNotFound},
		{http.MethodGet, "/highscores", http.StatusServiceUnavailable},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodDelete, "/game/unknown", http.StatusMethodNotAllowed},
	}
	for _, test := range tests {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(test.method, test.target, nil))
		assert.Equal(t, test.status, w.Code, "%s %s", test.method, test.target)
	}
}

func TestBasePath(t *testing.T) {
	t.Setenv("APP_BASE_PATH", "/api")
	h := newTestApp(t).Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/game?preset=easy", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/game?preset=easy", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBoardSizeCap(t *testing.T) {
	t.Setenv("APP_BASE_PATH", "")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(logger, Options{TTL: time.Hour, MaxCells: 100}).Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/game?height=10&width=10&mine_count=5", nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/game?height=11&width=10&mine_count=5", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
