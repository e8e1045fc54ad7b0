package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealth(t *testing.T) {
	s := New(":0", false)

	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("код ответа: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"service":"otchet"`) {
		t.Errorf("тело ответа: %q", rec.Body.String())
	}
}

func TestMetricsToggle(t *testing.T) {
	withMetrics := New(":0", true)
	rec := httptest.NewRecorder()
	withMetrics.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("метрики включены, код: %d", rec.Code)
	}

	withoutMetrics := New(":0", false)
	rec = httptest.NewRecorder()
	withoutMetrics.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("метрики выключены, код: %d", rec.Code)
	}
}
