package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func containsHeader(headerValue, target string) bool {
	for part := range strings.SplitSeq(headerValue, ",") {
		if strings.EqualFold(strings.TrimSpace(part), target) {
			return true
		}
	}
	return false
}

func preflight(t *testing.T, method, headers string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	called := false
	h := CORS()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodOptions, "http://localhost/", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", method)
	if headers != "" {
		req.Header.Set("Access-Control-Request-Headers", headers)
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp, called
}

func TestCORSAllowsGETOrigin(t *testing.T) {
	called := false
	h := CORS()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "http://localhost/health", nil)
	req.Header.Set("Origin", "http://example.com")
	resp := httptest.NewRecorder()

	h.ServeHTTP(resp, req)

	if !called {
		t.Fatalf("expected downstream handler to be called for GET request")
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected Access-Control-Allow-Origin '*', got %q", got)
	}
	exposeHeaders := resp.Header().Get("Access-Control-Expose-Headers")
	for _, h := range []string{"Link", "X-Request-Id"} {
		if !containsHeader(exposeHeaders, h) {
			t.Fatalf("expected Access-Control-Expose-Headers to contain %q, got %q", h, exposeHeaders)
		}
	}
}

func TestCORSHandlesPreflightWithoutCallingNext(t *testing.T) {
	resp, called := preflight(t, http.MethodGet, "Content-Type")

	if called {
		t.Fatalf("expected preflight to be answered by the CORS middleware")
	}
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for preflight, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Methods"); got != http.MethodGet {
		t.Fatalf("expected Access-Control-Allow-Methods GET, got %q", got)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected Access-Control-Allow-Origin '*', got %q", got)
	}
}

func TestCORSRejectsWriteMethods(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		resp, _ := preflight(t, method, "")
		if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Fatalf("%s: expected no Access-Control-Allow-Origin, got %q", method, got)
		}
	}
}

func TestCORSAllowsCorrelationHeaders(t *testing.T) {
	for _, header := range []string{"X-Request-ID", "traceparent"} {
		resp, _ := preflight(t, http.MethodGet, header)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", header, resp.Code)
		}
		allowHeaders := resp.Header().Get("Access-Control-Allow-Headers")
		if !containsHeader(allowHeaders, header) {
			t.Fatalf("expected Access-Control-Allow-Headers to contain %s, got %q", header, allowHeaders)
		}
	}
}
