package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncSuggestion(t *testing.T) {
	before := testutil.ToFloat64(Suggestions.WithLabelValues("validation"))
	IncSuggestion("validation")
	assert.Equal(t, before+1, testutil.ToFloat64(Suggestions.WithLabelValues("validation")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveHTTPRequest("/health", http.MethodGet, "200", 10*time.Millisecond)
	IncError("journal", "record")

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mealmate_http_requests_total")
	assert.Contains(t, w.Body.String(), `mealmate_errors_total{component="journal",type="record"}`)
}
