package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/reqid"
)

func TestRecovery_LogsRequestIDAndAccessLine(t *testing.T) {
	var buf bytes.Buffer
	orig := logger.L
	logger.L = slog.New(slog.NewTextHandler(&buf, nil))
	t.Cleanup(func() { logger.L = orig })

	// Same ordering as the route registration: reqid, then Logger, then
	// Recovery innermost.
	h := reqid.Middleware()(middleware.Logger(middleware.Recovery(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}),
	)))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(reqid.Header, "rid-123")
	rec := httptest.NewRecorder()

	require.NotPanics(t, func() { h.ServeHTTP(rec, req) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	out := buf.String()
	assert.Contains(t, out, "panic recovered")
	assert.Contains(t, out, "status=500")
	// both the panic record and the access-log line carry the ID
	assert.Equal(t, 2, strings.Count(out, "request_id=rid-123"))
}
