package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func traceRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var seen string
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		seen = c.GetString("trace_id")
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestTraceIDGenerated(t *testing.T) {
	r, seen := traceRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	header := w.Header().Get("X-Trace-ID")
	require.NotEmpty(t, header)
	assert.Equal(t, header, *seen)

	_, err := uuid.Parse(header)
	assert.NoError(t, err)
}

func TestTraceIDFromCallerKept(t *testing.T) {
	r, seen := traceRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Trace-ID", "frontend-trace-42")
	r.ServeHTTP(w, req)

	assert.Equal(t, "frontend-trace-42", w.Header().Get("X-Trace-ID"))
	assert.Equal(t, "frontend-trace-42", *seen)
}
