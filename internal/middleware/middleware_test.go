package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func echoCaller() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(secret))
	r.GET("/whoami", func(c *gin.Context) {
		caller := CallerFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": caller.ID, "role": caller.Role})
	})
	return r
}

func TestAuthMiddleware_ResolvesCaller(t *testing.T) {
	caller := domain.Caller{ID: uuid.New(), Role: domain.RoleDentist}
	token, err := SignToken(secret, caller, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	echoCaller().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		ID   uuid.UUID `json:"id"`
		Role string    `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, caller.ID, body.ID)
	assert.Equal(t, "dentist", body.Role)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	caller := domain.Caller{ID: uuid.New(), Role: domain.RoleAdmin}
	wrongKey, err := SignToken("other-secret", caller, time.Hour)
	require.NoError(t, err)
	expired, err := SignToken(secret, caller, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing header", "", "missing_authorization_header"},
		{"not bearer", "Basic abc", "invalid_authorization_header"},
		{"garbage", "Bearer not-a-token", "invalid_token"},
		{"wrong key", "Bearer " + wrongKey, "invalid_token"},
		{"expired", "Bearer " + expired, "invalid_token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			echoCaller().ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestParseToken_RequiresUUIDSubject(t *testing.T) {
	_, err := ParseToken("", secret)
	assert.Error(t, err)

	token, err := SignToken(secret, domain.Caller{Role: domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	caller, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, caller.ID)

	token, err = SignToken(secret, domain.Caller{ID: uuid.New()}, time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(token, secret)
	assert.Error(t, err)
}

func TestCallerFrom_Unauthenticated(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	caller := CallerFrom(c)
	assert.Equal(t, domain.Caller{}, caller)
	assert.True(t, domain.VisibleScope(caller).Empty())
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://clinic.example"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://clinic.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://clinic.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogger_WritesRequestLine(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(Logger(zerolog.New(&buf)))
	r.GET("/missing/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing/42", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "/missing/:id", line["path"])
	assert.EqualValues(t, 404, line["status"])
}
