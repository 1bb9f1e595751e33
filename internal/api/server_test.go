package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/martijn/userservice/internal/api/middleware"
	"github.com/martijn/userservice/internal/core/service"
	"github.com/martijn/userservice/internal/infrastructure/memory"
	"github.com/martijn/userservice/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		APIHost: "127.0.0.1",
		APIPort: 0,
		DevMode: true,
	}
	userService := service.NewUserService(memory.NewUserRepository(), zap.NewNop())
	return NewServer(cfg, userService, zap.NewNop())
}

func TestServer_Health(t *testing.T) {
	server := newTestServer(t)
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestServer_UserRoutes(t *testing.T) {
	server := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(`{"name":"name","age":100}`))
	req.Header.Set("Content-Type", "application/json")
	server.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"name","age":100`)

	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/not-a-number", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_UnknownRoute(t *testing.T) {
	server := newTestServer(t)
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v2/users", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_StartAndShutdown(t *testing.T) {
	server := newTestServer(t)

	errs := make(chan error, 1)
	go func() {
		errs <- server.Start()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))

	select {
	case err := <-errs:
		assert.True(t, errors.Is(err, http.ErrServerClosed), "Actual err: %v", err)
	case <-ctx.Done():
		t.Fatal("server did not stop")
	}
}
