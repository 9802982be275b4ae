package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/theirongolddev/finportal/internal/form"
	"github.com/theirongolddev/finportal/internal/model"
	"github.com/theirongolddev/finportal/internal/pipeline"
	"github.com/theirongolddev/finportal/internal/warehouse"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler returns the HTTP routes.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/submissions", s.handleListSubmissions)
		r.Post("/submissions", s.handleCreateSubmission)
		r.Get("/summary", s.handleSummary)
		r.Post("/refresh", s.handleRefresh)
		r.Get("/events", s.handleEvents)
		r.Get("/stream", s.handleStream)
	})
	return r
}

// Summary is served at /v1/summary.
type Summary struct {
	Stats    model.SummaryStats `json:"stats"`
	Units    []model.UnitStats  `json:"units"`
	LoadedAt time.Time          `json:"loaded_at"`
	Cached   bool               `json:"cached"`
}

type errorBody struct {
	Error      string          `json:"error"`
	Violations form.Violations `json:"violations,omitempty"`
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	snap, err := s.loader.Load(r.Context())
	if err != nil && len(snap.Rows) == 0 {
		s.writeFailure(w, err)
		return
	}

	rows := snap.Rows
	if unit := q.Get("unit"); unit != "" {
		rows = pipeline.FilterByUnit(rows, unit)
	}
	if v := q.Get("since"); v != "" {
		since, perr := form.ParseDate(v)
		if perr != nil {
			writeError(w, http.StatusBadRequest, "since: "+perr.Error())
			return
		}
		rows = pipeline.FilterByTime(rows, since, time.Time{})
	}
	if v := q.Get("limit"); v != "" {
		n, perr := strconv.Atoi(v)
		if perr != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		rows = pipeline.Recent(rows, n)
	}
	if rows == nil {
		rows = []model.Submission{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"submissions": rows,
		"total":       len(rows),
		"loaded_at":   snap.LoadedAt,
		"cached":      snap.Cached,
	})
}

func (s *Service) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	var in form.Input
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := s.submitter.Submit(r.Context(), in)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	// The submitter invalidated the cache; this load sees the new row.
	s.mu.RLock()
	next := s.snapshot
	s.mu.RUnlock()
	if snap, lerr := s.loader.Load(r.Context()); lerr != nil {
		s.log.Warn().Err(lerr).Msg("reload after submit")
		next.At = time.Now()
	} else {
		next = snapshotFromRows(snap.Rows, time.Now())
	}
	s.observe(next, &sub)

	writeJSON(w, http.StatusCreated, sub)
}

func (s *Service) handleSummary(w http.ResponseWriter, r *http.Request) {
	snap, err := s.loader.Load(r.Context())
	if err != nil && len(snap.Rows) == 0 {
		s.writeFailure(w, err)
		return
	}
	rows := snap.Rows
	if unit := r.URL.Query().Get("unit"); unit != "" {
		rows = pipeline.FilterByUnit(rows, unit)
	}
	units := pipeline.AggregateUnits(rows)
	if units == nil {
		units = []model.UnitStats{}
	}
	writeJSON(w, http.StatusOK, Summary{
		Stats:    pipeline.Aggregate(rows),
		Units:    units,
		LoadedAt: snap.LoadedAt,
		Cached:   snap.Cached,
	})
}

func (s *Service) handleRefresh(w http.ResponseWriter, r *http.Request) {
	snap, err := s.loader.Refresh(r.Context())
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.observe(snapshotFromRows(snap.Rows, time.Now()), nil)
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.events.recent())
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	id, ch := s.events.subscribe(16)
	defer s.events.unsubscribe(id)

	writeSSE(w, Event{
		Type:      EventSnapshot,
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

// writeFailure maps the error taxonomy onto HTTP statuses.
func (s *Service) writeFailure(w http.ResponseWriter, err error) {
	var ve *form.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error(), Violations: ve.Violations})
	case errors.Is(err, warehouse.ErrConnect):
		s.log.Warn().Err(err).Msg("warehouse unreachable")
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		s.log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeSSE(w io.Writer, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
