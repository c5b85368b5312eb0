// Package api serves minefield hint computation over HTTP.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/banshee-data/minehint/internal/db"
	"github.com/banshee-data/minehint/internal/minefield"
	"github.com/banshee-data/minehint/internal/missing"
	"github.com/banshee-data/minehint/internal/parse"
	"github.com/banshee-data/minehint/internal/report"
)

// maxBodyBytes caps a sweep request body.
const maxBodyBytes = 8 << 20

// apiSource is the session source recorded for HTTP submissions.
const apiSource = "api"

type Server struct {
	db       *db.DB
	maxCells int
}

// NewServer returns a server. store may be nil, in which case sessions are
// not recorded and the session endpoints answer 503.
func NewServer(store *db.DB, maxCells int) *Server {
	return &Server{db: store, maxCells: maxCells}
}

// ServeMux returns the API routes, with the debug routes attached when a
// store is configured.
func (s *Server) ServeMux() (*http.ServeMux, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sweep", s.handleSweep)
	mux.HandleFunc("GET /api/sessions", s.listSessions)
	mux.HandleFunc("GET /api/sessions/{id}/fields", s.listFields)
	mux.HandleFunc("GET /api/missing", s.handleMissing)
	mux.HandleFunc("GET /api/report", s.showReport)
	if s.db != nil {
		if err := s.db.AttachAdminRoutes(mux); err != nil {
			return nil, err
		}
	}
	return mux, nil
}

// Handler returns the routes wrapped in LoggingMiddleware.
func (s *Server) Handler() (http.Handler, error) {
	mux, err := s.ServeMux()
	if err != nil {
		return nil, err
	}
	return LoggingMiddleware(mux), nil
}

type sweepField struct {
	ID      string         `json:"id"`
	Rows    int            `json:"rows"`
	Cols    int            `json:"cols"`
	Lines   []string       `json:"lines"`
	Summary report.Summary `json:"summary"`
}

type sweepResponse struct {
	SessionID string        `json:"session_id,omitempty"`
	Fields    []sweepField  `json:"fields"`
	Text      string        `json:"text"`
	Stats     parse.Summary `json:"stats"`
	Error     string        `json:"error,omitempty"`
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	o, err := minefield.ParseOrientation(r.URL.Query().Get("orientation"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var (
		text      bytes.Buffer
		collected report.Collector
		sinks     = parse.MultiSink{parse.NewTextSink(&text), &collected}
		sessionID string
	)
	if s.db != nil {
		sessionID, err = s.db.BeginSession(apiSource, o)
		if err != nil {
			internalServerError(w, err.Error())
			return
		}
		sinks = append(sinks, &db.FieldSink{DB: s.db, SessionID: sessionID})
	}

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	p := parse.NewParser(sinks, parse.Options{Orientation: o, MaxCells: s.maxCells})
	stats, runErr := p.Run(r.Context(), body)

	if s.db != nil {
		if err := s.db.FinishSession(sessionID, stats.Fields, runErr); err != nil {
			internalServerError(w, err.Error())
			return
		}
	}

	resp := sweepResponse{SessionID: sessionID, Text: text.String(), Stats: stats, Fields: []sweepField{}}
	for _, f := range collected.Fields() {
		resp.Fields = append(resp.Fields, sweepField{
			ID:      f.ID(),
			Rows:    f.Rows(),
			Cols:    f.Cols(),
			Lines:   f.Lines(),
			Summary: report.Summarize(f),
		})
	}

	var maxErr *http.MaxBytesError
	switch {
	case runErr == nil:
		writeJSON(w, http.StatusOK, resp)
	case minefield.IsInputError(runErr):
		// Fields emitted before the bad line stay in the response.
		resp.Error = runErr.Error()
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.As(runErr, &maxErr):
		writeJSONError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
	case errors.Is(runErr, context.Canceled):
	default:
		internalServerError(w, runErr.Error())
	}
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.db == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "session store not configured")
		return false
	}
	return true
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			badRequest(w, fmt.Sprintf("invalid limit %q", v))
			return
		}
		limit = n
	}
	sessions, err := s.db.Sessions(limit)
	if err != nil {
		internalServerError(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) listFields(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	id := r.PathValue("id")
	if _, err := s.db.Session(id); err != nil {
		if errors.Is(err, db.ErrSessionNotFound) {
			notFound(w, err.Error())
			return
		}
		internalServerError(w, err.Error())
		return
	}
	fields, err := s.db.Fields(id)
	if err != nil {
		internalServerError(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, fields)
}

type missingResponse struct {
	Numbers []int `json:"numbers"`
	Missing int   `json:"missing"`
}

func (s *Server) handleMissing(w http.ResponseWriter, r *http.Request) {
	numbers, err := missing.ParseNumbers(r.URL.Query()["n"]...)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if numbers == nil {
		numbers = []int{}
	}
	writeJSON(w, http.StatusOK, missingResponse{Numbers: numbers, Missing: missing.FindMissing(numbers)})
}

func (s *Server) showReport(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("session"))
	if id == "" {
		badRequest(w, "missing session parameter")
		return
	}
	if _, err := s.db.Session(id); err != nil {
		if errors.Is(err, db.ErrSessionNotFound) {
			notFound(w, err.Error())
			return
		}
		internalServerError(w, err.Error())
		return
	}

	records, err := s.db.Fields(id)
	if err != nil {
		internalServerError(w, err.Error())
		return
	}
	fields := make([]*minefield.Field, 0, len(records))
	for _, rec := range records {
		f, err := rec.Field()
		if err != nil {
			internalServerError(w, err.Error())
			return
		}
		fields = append(fields, f)
	}

	var buf bytes.Buffer
	if err := report.WriteHTML(&buf, "minehint session "+id, fields); err != nil {
		internalServerError(w, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
