package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/martijn/userservice/internal/api/dto"
	"github.com/martijn/userservice/internal/api/middleware"
	"github.com/martijn/userservice/internal/core/repository"
	"github.com/martijn/userservice/internal/core/service"
	"github.com/martijn/userservice/internal/infrastructure/rdb"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEnv holds all test dependencies
type testEnv struct {
	db          *rdb.DB
	userRepo    repository.UserRepository
	router      *gin.Engine
	userHandler *UserHandler
}

// setupTestEnv creates a test environment with in-memory SQLite database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := rdb.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() {
		db.Close()
	})

	env := newTestEnvWithRepository(t, rdb.NewUserRepository(db))
	env.db = db
	return env
}

// newTestEnvWithRepository wires the handlers on top of any repository
func newTestEnvWithRepository(t *testing.T, userRepo repository.UserRepository) *testEnv {
	t.Helper()

	userService := service.NewUserService(userRepo, zap.NewNop())
	userHandler := NewUserHandler(userService)

	// Setup gin router in test mode
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandlerMiddleware(zap.NewNop()))

	router.GET("/api/v1/users", userHandler.ListUsers)
	router.GET("/api/v1/users/:id", userHandler.GetUser)
	router.POST("/api/v1/users", userHandler.CreateUser)

	return &testEnv{
		userRepo:    userRepo,
		router:      router,
		userHandler: userHandler,
	}
}

// makeRequest performs a request and returns the response
func (env *testEnv) makeRequest(t *testing.T, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err, "failed to create request")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) postJSON(t *testing.T, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	require.NoError(t, json.NewEncoder(&body).Encode(payload))
	return env.makeRequest(t, http.MethodPost, path, &body)
}

// parseErrorResponse parses the response body into ErrorResponse
func parseErrorResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Body: %s", w.Body.String())
	return resp
}

// parseUserResponse parses the response body into UserResponse
func parseUserResponse(t *testing.T, w *httptest.ResponseRecorder) dto.UserResponse {
	t.Helper()

	var resp dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Body: %s", w.Body.String())
	return resp
}
