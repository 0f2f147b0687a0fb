package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})
}

func TestChain_FirstMiddlewareRunsOutermost(t *testing.T) {
	t.Parallel()
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(okHandler("ok"), tag("request-id"), tag("logger"), tag("recovery"))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	want := []string{"request-id", "logger", "recovery"}
	if len(order) != len(want) {
		t.Fatalf("expected %d middleware invocations, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], order[i])
		}
	}
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	t.Parallel()
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/snapshot", nil))

	if seen == "" {
		t.Error("expected a generated request id in context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("response header %q should match context id %q", got, seen)
	}
}

func TestRequestID_HonorsClientSuppliedID(t *testing.T) {
	t.Parallel()
	handler := RequestID(okHandler("ok"))

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", nil)
	req.Header.Set("X-Request-ID", "client-trace-42")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "client-trace-42" {
		t.Errorf("expected client id echoed back, got %q", got)
	}
}

func TestGetRequestID_EmptyWithoutMiddleware(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	if got := GetRequestID(req.Context()); got != "" {
		t.Errorf("expected empty id on bare context, got %q", got)
	}
}

func TestRecovery_PanicBecomesInternalError(t *testing.T) {
	t.Parallel()
	handler := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("snapshot assembly blew up")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/snapshot", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON error body, got Content-Type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"status":500`) {
		t.Errorf("expected ProblemDetails body, got %q", rec.Body.String())
	}
}

func TestRecovery_PassesThroughWithoutPanic(t *testing.T) {
	t.Parallel()
	handler := Recovery(okHandler("fine"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "fine" {
		t.Errorf("expected untouched response, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestCORS_AllowedOriginReflected(t *testing.T) {
	t.Parallel()
	handler := CORS([]string{"https://studio.example.com"})(okHandler("ok"))

	req := httptest.NewRequest(http.MethodGet, "/v1/events", nil)
	req.Header.Set("Origin", "https://studio.example.com")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://studio.example.com" {
		t.Errorf("expected origin reflected, got %q", got)
	}
}

func TestCORS_UnknownOriginNotReflected(t *testing.T) {
	t.Parallel()
	handler := CORS([]string{"https://studio.example.com"})(okHandler("ok"))

	req := httptest.NewRequest(http.MethodGet, "/v1/events", nil)
	req.Header.Set("Origin", "https://evil.example.com")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unknown origin must not be reflected, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("request itself still proceeds, got %d", rec.Code)
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	t.Parallel()
	reached := false
	handler := CORS([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/v1/bookings", nil)
	req.Header.Set("Origin", "https://studio.example.com")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 preflight, got %d", rec.Code)
	}
	if reached {
		t.Error("preflight must not reach the inner handler")
	}
	if h := rec.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(h, "Idempotency-Key") {
		t.Errorf("expected Idempotency-Key among allowed headers, got %q", h)
	}
}

func TestCompress_GzipsWhenAccepted(t *testing.T) {
	t.Parallel()
	payload := strings.Repeat(`{"resource_name":"Studio A"},`, 50)
	handler := Compress(okHandler(payload))

	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("expected gzip encoding, got %q", got)
	}

	zr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("body is not valid gzip: %v", err)
	}
	decoded, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("failed to decompress: %v", err)
	}
	if string(decoded) != payload {
		t.Error("decompressed body does not round-trip")
	}
}

func TestCompress_SkippedWithoutAcceptEncoding(t *testing.T) {
	t.Parallel()
	handler := Compress(okHandler("plain"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/bookings", nil))

	if rec.Header().Get("Content-Encoding") != "" {
		t.Error("expected uncompressed response")
	}
	if rec.Body.String() != "plain" {
		t.Errorf("expected body untouched, got %q", rec.Body.String())
	}
}

func TestCompress_SkippedForEventStream(t *testing.T) {
	t.Parallel()
	handler := Compress(okHandler("event: connected\n\n"))

	req := httptest.NewRequest(http.MethodGet, "/v1/events/stream", nil)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Accept-Encoding", "gzip")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "" {
		t.Error("SSE responses must not be gzipped")
	}
}
