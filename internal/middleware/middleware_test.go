package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"retail-sense/internal/auth"
	"retail-sense/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok?page=2", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/ok?page=2", entries[0].ContextMap()["path"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.EqualValues(t, 500, entries[1].ContextMap()["status"])
}

func TestAuthAndRole(t *testing.T) {
	auth.Configure(config.JWTConfig{Secret: "mw-secret", TTL: time.Hour})
	r := gin.New()
	r.GET("/admin", AuthMiddleware(), RequireRole("admin"), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	call := func(header string) int {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	admin, _, err := auth.GenerateToken(1, "a@example.com", "admin")
	require.NoError(t, err)
	customer, _, err := auth.GenerateToken(2, "c@example.com", "customer")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, call(""))
	assert.Equal(t, http.StatusUnauthorized, call(admin))
	assert.Equal(t, http.StatusUnauthorized, call("Bearer junk"))
	assert.Equal(t, http.StatusForbidden, call("Bearer "+customer))
	assert.Equal(t, http.StatusNoContent, call("Bearer "+admin))
}
