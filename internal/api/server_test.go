package api

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/minehint/internal/db"
	"github.com/banshee-data/minehint/internal/monitoring"
	"github.com/banshee-data/minehint/internal/testutil"
)

func newTestServer(t *testing.T, withStore bool) (http.Handler, *db.DB) {
	t.Helper()
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.SetLogger(log.Printf) })

	var store *db.DB
	if withStore {
		var err error
		store, err = db.NewDB(filepath.Join(t.TempDir(), "api.db"))
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
	}
	h, err := NewServer(store, 10_000).Handler()
	require.NoError(t, err)
	return h, store
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSweep(t *testing.T) {
	h, store := newTestServer(t, true)

	rec := serve(h, testutil.NewLocalRequest(http.MethodPost, "/api/sweep", "4 4\n*...\n....\n.*..\n....\n3 5\n**...\n.....\n.*...\n0 0\n"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var resp sweepResponse
	testutil.DecodeJSON(t, rec, &resp)

	assert.Equal(t, "Mine Field #1:\n*100\n2210\n1*10\n1110\n\n"+
		"Mine Field #2:\n**100\n33200\n1*100\n\n", resp.Text)
	require.Len(t, resp.Fields, 2)
	assert.Equal(t, []string{"**100", "33200", "1*100"}, resp.Fields[1].Lines)
	assert.Equal(t, 3, resp.Fields[1].Summary.Mines)
	assert.True(t, resp.Stats.SentinelSeen)

	require.NotEmpty(t, resp.SessionID)
	s, err := store.Session(resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, s.FieldCount)
	assert.Equal(t, "rows", s.Orientation)
}

func TestSweep_Columns(t *testing.T) {
	h, _ := newTestServer(t, false)

	rec := serve(h, testutil.NewLocalRequest(http.MethodPost, "/api/sweep?orientation=columns", "3 5\n**...\n.....\n.*...\n0 0\n"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var resp sweepResponse
	testutil.DecodeJSON(t, rec, &resp)
	assert.Empty(t, resp.SessionID)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, 5, resp.Fields[0].Rows)
	assert.Equal(t, 3, resp.Fields[0].Cols)
	assert.Equal(t, []string{"*31", "*3*", "121", "000", "000"}, resp.Fields[0].Lines)
}

func TestSweep_InputErrors(t *testing.T) {
	h, store := newTestServer(t, true)

	tests := []struct {
		name    string
		target  string
		body    string
		wantMsg string
	}{
		{"invalid characters", "/api/sweep", "2 2\n..\n.x\n", "invalid input on line 3: invalid characters; only * and . permitted"},
		{"length mismatch", "/api/sweep", "2 2\n...\n", "column count mismatch"},
		{"pattern before header", "/api/sweep", "*.\n", "pattern line without a preceding dimension line"},
		{"bad orientation", "/api/sweep?orientation=diagonal", "1 1\n.\n", "unknown orientation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, testutil.NewLocalRequest(http.MethodPost, tt.target, tt.body))
			testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
			var body map[string]interface{}
			testutil.DecodeJSON(t, rec, &body)
			assert.Contains(t, body["error"], tt.wantMsg)
		})
	}

	rec := serve(h, testutil.NewLocalRequest(http.MethodPost, "/api/sweep", "1 1\n.\n2 2\nx\n"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
	var resp sweepResponse
	testutil.DecodeJSON(t, rec, &resp)
	assert.Equal(t, "invalid input on line 4: invalid characters; only * and . permitted", resp.Error)
	assert.Equal(t, "Mine Field #1:\n0\n\n", resp.Text)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, []string{"0"}, resp.Fields[0].Lines)
	assert.Equal(t, 1, resp.Stats.Fields)
	require.NotEmpty(t, resp.SessionID)

	recorded, err := store.Fields(resp.SessionID)
	require.NoError(t, err)
	assert.Len(t, recorded, 1)

	sessions, err := store.Sessions(0)
	require.NoError(t, err)
	require.Len(t, sessions, 4, "failed sessions are still recorded")
	for _, s := range sessions {
		assert.NotEmpty(t, s.Error)
	}
}

func TestSweep_MethodNotAllowed(t *testing.T) {
	h, _ := newTestServer(t, false)
	rec := serve(h, testutil.NewLocalRequest(http.MethodGet, "/api/sweep", ""))
	testutil.AssertStatusCode(t, rec.Code, http.StatusMethodNotAllowed)
}

func TestSessionsAndFields(t *testing.T) {
	h, _ := newTestServer(t, true)

	rec := serve(h, testutil.NewLocalRequest(http.MethodPost, "/api/sweep", "1 2\n*.\n0 0\n"))
	var swept sweepResponse
	testutil.DecodeJSON(t, rec, &swept)

	rec = serve(h, testutil.NewLocalRequest(http.MethodGet, "/api/sessions", ""))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	var sessions []db.Session
	testutil.DecodeJSON(t, rec, &sessions)
	require.Len(t, sessions, 1)
	assert.Equal(t, swept.SessionID, sessions[0].SessionID)
	assert.Equal(t, "api", sessions[0].Source)

	rec = serve(h, testutil.NewLocalRequest(http.MethodGet, "/api/sessions/"+swept.SessionID+"/fields", ""))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	var fields []db.FieldRecord
	testutil.DecodeJSON(t, rec, &fields)
	require.Len(t, fields, 1)
	assert.Equal(t, "Mine Field #1:\n*1\n\n", fields[0].Rendering)

	rec = serve(h, testutil.NewLocalRequest(http.MethodGet, "/api/sessions/nope/fields", ""))
	testutil.AssertStatusCode(t, rec.Code, http.StatusNotFound)

	rec = serve(h, testutil.NewLocalRequest(http.MethodGet, "/api/sessions?limit=x", ""))
	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
}

func TestSessions_NoStore(t *testing.T) {
	h, _ := newTestServer(t, false)
	for _, target := range []string{"/api/sessions", "/api/sessions/x/fields", "/api/report?session=x"} {
		rec := serve(h, testutil.NewLocalRequest(http.MethodGet, target, ""))
		testutil.AssertStatusCode(t, rec.Code, http.StatusServiceUnavailable)
	}
}

func TestMissing(t *testing.T) {
	h, _ := newTestServer(t, false)

	tests := []struct {
		target string
		want   int
	}{
		{"/api/missing?n=2,5,1,7,8,6,3", 4},
		{"/api/missing?n=1&n=3", 2},
		{"/api/missing", -1},
		{"/api/missing?n=1,2,3", -1},
	}
	for _, tt := range tests {
		rec := serve(h, testutil.NewLocalRequest(http.MethodGet, tt.target, ""))
		testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
		var resp missingResponse
		testutil.DecodeJSON(t, rec, &resp)
		assert.Equal(t, tt.want, resp.Missing, tt.target)
	}

	rec := serve(h, testutil.NewLocalRequest(http.MethodGet, "/api/missing?n=1,x", ""))
	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
}

func TestReport(t *testing.T) {
	h, _ := newTestServer(t, true)

	rec := serve(h, testutil.NewLocalRequest(http.MethodPost, "/api/sweep", "3 3\n...\n.*.\n...\n0 0\n"))
	var swept sweepResponse
	testutil.DecodeJSON(t, rec, &swept)

	rec = serve(h, testutil.NewLocalRequest(http.MethodGet, "/api/report?session="+swept.SessionID, ""))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, rec.Body.String(), "Mine Field #1:")

	rec = serve(h, testutil.NewLocalRequest(http.MethodGet, "/api/report", ""))
	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)

	rec = serve(h, testutil.NewLocalRequest(http.MethodGet, "/api/report?session=missing", ""))
	testutil.AssertStatusCode(t, rec.Code, http.StatusNotFound)
}

func TestDebugRoutes(t *testing.T) {
	h, _ := newTestServer(t, true)

	rec := serve(h, testutil.NewLocalRequest(http.MethodGet, "/debug/", ""))
	assert.NotEqual(t, http.StatusNotFound, rec.Code)

	rec = serve(h, testutil.NewLocalRequest(http.MethodGet, "/debug/tailsql/", ""))
	assert.NotEqual(t, http.StatusNotFound, rec.Code)
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	monitoring.SetLogger(log.New(&buf, "", 0).Printf)
	defer monitoring.SetLogger(log.Printf)

	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/missing?n=1", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	line := buf.String()
	assert.Contains(t, line, statusCodeColor(http.StatusTeapot))
	assert.Contains(t, line, "GET")
	assert.Contains(t, line, "/api/missing?n=1")
}

func TestStatusCodeColor(t *testing.T) {
	assert.Equal(t, colorBoldGreen+"200"+colorReset, statusCodeColor(200))
	assert.Equal(t, colorYellow+"304"+colorReset, statusCodeColor(304))
	assert.Equal(t, colorBoldRed+"404"+colorReset, statusCodeColor(404))
	assert.Equal(t, colorBoldRed+"500"+colorReset, statusCodeColor(500))
	assert.Equal(t, "100", statusCodeColor(100))
}
