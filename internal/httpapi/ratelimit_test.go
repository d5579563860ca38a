package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientLimiter(t *testing.T) {
	now := time.Unix(1000, 0)
	l := NewClientLimiter(1, 2)
	l.now = func() time.Time { return now }

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("burst should allow two")
	}
	if l.Allow("a") {
		t.Fatal("third call in the same instant should be limited")
	}
	if !l.Allow("b") {
		t.Fatal("clients are limited independently")
	}

	now = now.Add(time.Second)
	if !l.Allow("a") {
		t.Fatal("token should refill after a second")
	}

	now = now.Add(time.Hour)
	l.Allow("c")
	if n := l.Sweep(time.Minute); n != 2 || l.Len() != 1 {
		t.Fatalf("swept %d, left %d", n, l.Len())
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	l := NewClientLimiter(0.001, 1)
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), RequestID, RateLimit(l))

	req := httptest.NewRequest("GET", "/api/jobs", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("first: %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second: %d", rec.Code)
	}
}

func TestCorsOnlyEchoesAllowedOrigins(t *testing.T) {
	h := Cors([]string{"http://app.test"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("OPTIONS", "/api/jobs", nil)
	req.Header.Set("Origin", "http://app.test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent || rec.Header().Get("Access-Control-Allow-Origin") != "http://app.test" {
		t.Fatalf("allowed origin: %d %v", rec.Code, rec.Header())
	}

	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("foreign origin echoed")
	}
}
