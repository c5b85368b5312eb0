package testutil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// recordingT captures failures instead of failing the enclosing test.
type recordingT struct {
	testing.TB
	failed bool
}

func (r *recordingT) Helper()                                   {}
func (r *recordingT) Errorf(format string, args ...interface{}) { r.failed = true }
func (r *recordingT) Fatalf(format string, args ...interface{}) { r.failed = true }
func (r *recordingT) Fatal(args ...interface{})                 { r.failed = true }

func TestAssertStatusCode(t *testing.T) {
	AssertStatusCode(t, http.StatusOK, http.StatusOK)

	rt := &recordingT{TB: t}
	AssertStatusCode(rt, http.StatusOK, http.StatusBadRequest)
	if !rt.failed {
		t.Error("expected mismatch to be reported")
	}
}

func TestAssertErrorHelpers(t *testing.T) {
	AssertNoError(t, nil)
	AssertError(t, errors.New("boom"))

	rt := &recordingT{TB: t}
	AssertNoError(rt, errors.New("boom"))
	if !rt.failed {
		t.Error("AssertNoError should report a non-nil error")
	}

	rt = &recordingT{TB: t}
	AssertError(rt, nil)
	if !rt.failed {
		t.Error("AssertError should report a nil error")
	}
}

func TestNewLocalRequest(t *testing.T) {
	req := NewLocalRequest(http.MethodPost, "/api/sweep?orientation=columns", "1 1\n*\n")
	if req.RemoteAddr != LoopbackAddr {
		t.Errorf("RemoteAddr = %q, want %q", req.RemoteAddr, LoopbackAddr)
	}
	if req.URL.Query().Get("orientation") != "columns" {
		t.Errorf("query = %q", req.URL.RawQuery)
	}
	if req.ContentLength != int64(len("1 1\n*\n")) {
		t.Errorf("ContentLength = %d", req.ContentLength)
	}
}

func TestDecodeJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Header().Set("Content-Type", "application/json")
	rec.WriteString(`{"missing": 4}`)

	var got struct {
		Missing int `json:"missing"`
	}
	DecodeJSON(t, rec, &got)
	if got.Missing != 4 {
		t.Errorf("Missing = %d, want 4", got.Missing)
	}
}

func TestNewField(t *testing.T) {
	f := NewField(t, "9", "*.", "..")
	if !f.Closed() {
		t.Error("NewField should finalize the field")
	}
	if got := f.Render(); got != "Mine Field #9:\n*1\n11\n\n" {
		t.Errorf("Render() = %q", got)
	}
}
