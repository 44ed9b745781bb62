package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestCorrelationIDGeneratesWhenAbsent(t *testing.T) {
	var inContext string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inContext = GetRequestID(r.Context())
	})
	handler := CorrelationID(zerolog.Nop())(next)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.NotEmpty(t, inContext)
	_, err := uuid.Parse(inContext)
	require.NoError(t, err)
	require.Equal(t, inContext, rec.Header().Get("X-Request-ID"))
}

func TestCorrelationIDReusesProxyHeader(t *testing.T) {
	var inContext string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inContext = GetRequestID(r.Context())
	})
	handler := CorrelationID(zerolog.Nop())(next)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set("X-Request-ID", "upstream-id-42")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, "upstream-id-42", inContext)
	require.Equal(t, "upstream-id-42", rec.Header().Get("X-Request-ID"))
}

func TestSecurityHeadersSet(t *testing.T) {
	handler := SecurityHeaders(false)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
	require.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}
