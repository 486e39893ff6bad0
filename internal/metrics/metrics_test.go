package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "error", Outcome(errors.New("boom")))
}

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(KeywordSelections.WithLabelValues("fallback"))
	KeywordSelections.WithLabelValues("fallback").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(KeywordSelections.WithLabelValues("fallback")))
}

func TestServerHandler(t *testing.T) {
	Emails.WithLabelValues("ok").Inc()
	s := &Server{}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "travelblog_emails_total")

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
