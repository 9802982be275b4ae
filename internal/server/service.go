// Package server exposes submissions and dashboard aggregates over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/finportal/internal/form"
	"github.com/theirongolddev/finportal/internal/model"
	"github.com/theirongolddev/finportal/internal/pipeline"

	"github.com/rs/zerolog"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr         string
	Interval     time.Duration // how often the dashboard query is re-checked
	EventsBuffer int
	Target       string // connector description for /v1/status
}

// Snapshot is a compact dashboard state for status and event payloads.
type Snapshot struct {
	At            time.Time `json:"at"`
	Submissions   int       `json:"submissions"`
	BusinessUnits int       `json:"business_units"`
	TotalRevenue  float64   `json:"total_revenue"`
	TotalExpenses float64   `json:"total_expenses"`
	OverallMargin float64   `json:"overall_margin"`
	AvgMargin     float64   `json:"avg_margin"`
}

// Delta captures snapshot changes between polls.
type Delta struct {
	Submissions   int     `json:"submissions"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalExpenses float64 `json:"total_expenses"`
}

func (d Delta) isZero() bool {
	return d.Submissions == 0 && d.TotalRevenue == 0 && d.TotalExpenses == 0
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	Target          string    `json:"target"`
	CacheState      string    `json:"cache_state"`
	CacheTTLSec     int       `json:"cache_ttl_sec"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the HTTP API and the background poll loop.
type Service struct {
	cfg       Config
	loader    *pipeline.Loader
	submitter *form.Submitter
	log       zerolog.Logger

	events *hub

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
}

// New returns a service reading through loader and writing through submitter.
func New(cfg Config, loader *pipeline.Loader, submitter *form.Submitter, log zerolog.Logger) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = loader.TTL()
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}

	return &Service{
		cfg:       cfg,
		loader:    loader,
		submitter: submitter,
		log:       log.With().Str("component", "server").Logger(),
		events:    newHub(cfg.EventsBuffer),
		startedAt: time.Now(),
	}
}

// Run serves HTTP and polls the dashboard query until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info().Str("addr", s.cfg.Addr).Str("target", s.cfg.Target).Msg("listening")

	// Seed the snapshot so /v1/status is useful immediately.
	s.pollOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("http server: %w", err)
		}
	}
}

func (s *Service) pollOnce(ctx context.Context) {
	snap, err := s.loader.Load(ctx)
	now := time.Now()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		s.log.Warn().Err(err).Msg("poll failed")
		return
	}
	s.observe(snapshotFromRows(snap.Rows, now), nil)
}

// observe records a new snapshot and publishes what changed. A non-nil sub
// is announced as a submission event carrying the delta it caused.
func (s *Service) observe(snap Snapshot, sub *model.Submission) {
	s.mu.Lock()
	prev, seen := s.snapshot, s.hasSnapshot
	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = snap.At
	s.pollCount++
	s.lastError = ""
	s.mu.Unlock()

	ev := Event{Timestamp: snap.At, Snapshot: snap}
	switch delta := diffSnapshots(prev, snap); {
	case sub != nil:
		ev.Type, ev.Delta, ev.Submission = EventSubmission, delta, sub
	case !seen:
		ev.Type = EventSnapshot
	case !delta.isZero():
		ev.Type, ev.Delta = EventDelta, delta
	default:
		return
	}
	s.events.publish(ev)
}

func snapshotFromRows(rows []model.Submission, at time.Time) Snapshot {
	stats := pipeline.Aggregate(rows)
	return Snapshot{
		At:            at,
		Submissions:   stats.Submissions,
		BusinessUnits: stats.BusinessUnits,
		TotalRevenue:  stats.TotalRevenue,
		TotalExpenses: stats.TotalExpenses,
		OverallMargin: stats.OverallMargin,
		AvgMargin:     stats.AvgMargin,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Submissions:   curr.Submissions - prev.Submissions,
		TotalRevenue:  curr.TotalRevenue - prev.TotalRevenue,
		TotalExpenses: curr.TotalExpenses - prev.TotalExpenses,
	}
}

func (s *Service) snapshotStatus() Status {
	events, subscribers := s.events.counts()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		Target:          s.cfg.Target,
		CacheState:      s.loader.State().String(),
		CacheTTLSec:     int(s.loader.TTL().Seconds()),
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      events,
		SubscriberCount: subscribers,
	}
}
