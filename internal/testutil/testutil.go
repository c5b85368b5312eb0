// Package testutil provides shared test helpers for minehint packages.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/banshee-data/minehint/internal/minefield"
)

// LoopbackAddr is the RemoteAddr given to requests built by NewLocalRequest.
// The debug handlers only answer loopback clients.
const LoopbackAddr = "127.0.0.1:12345"

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t testing.TB, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// NewLocalRequest builds a request that appears to come from loopback.
// An empty body sends no body.
func NewLocalRequest(method, target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.RemoteAddr = LoopbackAddr
	return req
}

// DecodeJSON decodes the recorder body into v.
func DecodeJSON(t testing.TB, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

// NewField builds a finalized row-ordered field from patterns.
func NewField(t testing.TB, id string, rows ...string) *minefield.Field {
	t.Helper()
	if len(rows) == 0 {
		t.Fatal("NewField needs at least one row")
	}
	f, err := minefield.NewField(id, len(rows), len(rows[0]), minefield.Rows)
	AssertNoError(t, err)
	for _, r := range rows {
		AssertNoError(t, f.AcceptRow(r))
	}
	f.Finalize()
	return f
}
