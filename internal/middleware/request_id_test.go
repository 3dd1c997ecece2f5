package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-api/pkg/logger"
)

func TestRequestIDGeneratedAndPropagated(t *testing.T) {
	log, err := logger.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	var seenID string
	handler := RequestID(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if seenID == "" {
		t.Fatal("no request id in handler context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seenID {
		t.Errorf("response header id = %q, want the context id %q", got, seenID)
	}
}

func TestRequestIDHonorsIncomingHeader(t *testing.T) {
	log, err := logger.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	var seenID string
	handler := RequestID(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-ID", "upstream-42")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seenID != "upstream-42" {
		t.Errorf("context id = %q, want the incoming %q", seenID, "upstream-42")
	}
	if got := rec.Header().Get("X-Request-ID"); got != "upstream-42" {
		t.Errorf("response header id = %q, want %q", got, "upstream-42")
	}
}

func TestRequestIDFromContextMissing(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	if got := RequestIDFromContext(req.Context()); got != "" {
		t.Errorf("id from bare context = %q, want empty", got)
	}
}
