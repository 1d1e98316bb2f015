package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// NewJSONRequest builds a request with a JSON body. An empty body sends
// no Content-Type.
func NewJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func ExecuteRequest(req *http.Request, handler http.Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func CheckResponseCode(t testing.TB, expected, actual int) {
	t.Helper()
	if expected != actual {
		t.Fatalf("expected status %d, got %d", expected, actual)
	}
}

func DecodeJSONBody(t testing.TB, body io.Reader, dst any) {
	t.Helper()
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}
}

// CheckErrorBody asserts the standard {"error": msg} response shape.
func CheckErrorBody(t testing.TB, body io.Reader, want string) {
	t.Helper()

	var payload map[string]string
	DecodeJSONBody(t, body, &payload)

	if got := payload["error"]; got != want {
		t.Fatalf("expected error %q, got %q", want, got)
	}
	if len(payload) != 1 {
		t.Fatalf("expected only an error field, got %v", payload)
	}
}
