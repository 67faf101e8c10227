package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/taskkeeper/taskkeeper/internal/application/task"
	"github.com/taskkeeper/taskkeeper/internal/infrastructure/http/handler"
	"github.com/taskkeeper/taskkeeper/internal/storage/memory"
)

func newTestServer(cfg ServerConfig) *APIServer {
	svc := task.NewService(memory.NewStore())
	return NewAPIServer(handler.NewRouter(svc), cfg)
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(ServerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMaxBodyBytes_EnforcesLimit(t *testing.T) {
	server := newTestServer(ServerConfig{MaxBodyBytes: 256})

	t.Run("accepts request within limit", func(t *testing.T) {
		body := bytes.NewReader([]byte(`{"title":"Small","description":"fits","state":0}`))
		req := httptest.NewRequest(http.MethodPost, "/v1/tasks", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("rejects request exceeding limit", func(t *testing.T) {
		payload := `{"title":"` + strings.Repeat("A", 1024) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/tasks", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestApplyDefaults(t *testing.T) {
	cfg := ServerConfig{}
	cfg.applyDefaults()

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.MaxBodyBytes)

	// Explicit values survive.
	cfg = ServerConfig{Port: "9999", ReadTimeout: time.Second}
	cfg.applyDefaults()
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, time.Second, cfg.ReadTimeout)
}
