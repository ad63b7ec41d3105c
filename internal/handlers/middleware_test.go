package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoggingSetsRequestID(t *testing.T) {
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/7/stats", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("Expected an X-Request-ID header")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected the wrapped handler to run, got %d", rec.Code)
	}
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		url  string
		def  int
		want int
	}{
		{"/reviews", 20, 20},
		{"/reviews?limit=5", 20, 5},
		{"/reviews?limit=abc", 20, 20},
		{"/reviews?limit=", 20, 20},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, tt.url, nil)
		if got := queryInt(r, "limit", tt.def); got != tt.want {
			t.Errorf("queryInt(%q) = %d, want %d", tt.url, got, tt.want)
		}
	}
}
