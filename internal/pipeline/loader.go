package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/theirongolddev/finportal/internal/cache"
	"github.com/theirongolddev/finportal/internal/model"

	"github.com/rs/zerolog"
)

// Source runs the dashboard's read query.
type Source interface {
	LoadSubmissions(ctx context.Context, limit int) ([]model.Submission, error)
}

// State is the dashboard lifecycle: empty, loading, loaded, stale.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateLoaded
	StateStale
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateStale:
		return "stale"
	default:
		return "empty"
	}
}

// Snapshot is one result of Load.
type Snapshot struct {
	Rows     []model.Submission
	LoadedAt time.Time
	Cached   bool
}

// Loader serves the read query through a TTL cache and remembers the last
// rows it loaded successfully.
type Loader struct {
	src   Source
	limit int
	cache *cache.TTL[[]model.Submission]
	log   zerolog.Logger

	mu       sync.Mutex
	loading  bool
	lastGood Snapshot
	hasGood  bool
	lastErr  error
}

// NewLoader returns a loader over src. A nil clock uses time.Now.
func NewLoader(src Source, limit int, ttl time.Duration, clock cache.Clock, log zerolog.Logger) *Loader {
	if limit <= 0 {
		limit = 100
	}
	return &Loader{
		src:   src,
		limit: limit,
		cache: cache.New[[]model.Submission](ttl, clock),
		log:   log.With().Str("component", "loader").Logger(),
	}
}

// Load returns the cached rows while they are fresh and re-queries otherwise.
// On failure the last-known-good rows come back together with the error.
func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	if rows, ok := l.cache.Get(); ok {
		return Snapshot{Rows: rows, LoadedAt: l.cache.StoredAt(), Cached: true}, nil
	}
	return l.Refresh(ctx)
}

// Refresh always re-queries and restarts the cache window.
func (l *Loader) Refresh(ctx context.Context) (Snapshot, error) {
	l.mu.Lock()
	l.loading = true
	l.mu.Unlock()

	rows, err := l.src.LoadSubmissions(ctx, l.limit)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false

	if err != nil {
		l.lastErr = err
		l.log.Warn().Err(err).Bool("have_last_good", l.hasGood).Msg("dashboard query failed")
		snap := l.lastGood
		snap.Cached = l.hasGood
		return snap, err
	}

	l.cache.Set(rows)
	snap := Snapshot{Rows: rows, LoadedAt: l.cache.StoredAt()}
	l.lastGood = snap
	l.hasGood = true
	l.lastErr = nil
	l.log.Debug().Int("rows", len(rows)).Msg("dashboard data refreshed")
	return snap, nil
}

// Invalidate expires the cache so the next Load re-queries.
func (l *Loader) Invalidate() {
	l.cache.Invalidate()
}

// State reports where the dashboard data is in its lifecycle.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case l.loading:
		return StateLoading
	case l.cache.Fresh():
		return StateLoaded
	case l.hasGood:
		return StateStale
	default:
		return StateEmpty
	}
}

// Age returns how old the cached rows are, or 0 when nothing is cached.
func (l *Loader) Age() time.Duration {
	return l.cache.Age()
}

// TTL returns the cache window.
func (l *Loader) TTL() time.Duration {
	return l.cache.Window()
}

// LastError returns the error of the most recent query, if it failed.
func (l *Loader) LastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}
