// Package warehouse is the connector to the SQL warehouse that stores
// financial submissions. Every call opens a connection, runs one
// parameterized statement and closes the connection again.
package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/finportal/internal/model"

	dbsql "github.com/databricks/databricks-sql-go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Supported drivers.
const (
	DriverSQLite     = "sqlite"
	DriverDatabricks = "databricks"
)

// Error classes surfaced to the UI. Driver errors are wrapped under one of
// them so callers can tell a transient connection failure from a bad query.
var (
	ErrConnect = errors.New("warehouse connection failed")
	ErrQuery   = errors.New("warehouse query failed")
)

// Config describes how to reach the warehouse.
type Config struct {
	Driver   string
	Host     string
	HTTPPath string
	Token    string
	Path     string // sqlite database file
	Table    string
	Timeout  time.Duration
}

// Opener returns a fresh *sql.DB for a single call.
type Opener func(ctx context.Context) (*sql.DB, error)

// Row is one result row keyed by column name.
type Row map[string]any

// Connector executes statements against the warehouse.
type Connector struct {
	cfg  Config
	open Opener
	log  zerolog.Logger
	now  func() time.Time
}

// New validates cfg and returns a connector for its driver.
func New(cfg Config, log zerolog.Logger) (*Connector, error) {
	if cfg.Table == "" {
		cfg.Table = "financial_submissions"
	}
	if err := validTable(cfg.Table); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	var open Opener
	switch cfg.Driver {
	case DriverSQLite:
		if cfg.Path == "" {
			return nil, errors.New("sqlite driver needs a database path")
		}
		open = sqliteOpener(cfg)
	case DriverDatabricks:
		if cfg.Host == "" || cfg.HTTPPath == "" || cfg.Token == "" {
			return nil, errors.New("databricks driver needs host, http path and token (run `finportal setup`)")
		}
		open = databricksOpener(cfg)
	default:
		return nil, fmt.Errorf("unknown warehouse driver %q", cfg.Driver)
	}

	return NewWithOpener(cfg, open, log), nil
}

// NewWithOpener builds a connector around a custom opener.
func NewWithOpener(cfg Config, open Opener, log zerolog.Logger) *Connector {
	if cfg.Table == "" {
		cfg.Table = "financial_submissions"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Connector{
		cfg:  cfg,
		open: open,
		log:  log.With().Str("component", "warehouse").Str("driver", cfg.Driver).Logger(),
		now:  time.Now,
	}
}

// Describe returns a display string for the target, without secrets.
func (c *Connector) Describe() string {
	switch c.cfg.Driver {
	case DriverDatabricks:
		return fmt.Sprintf("databricks %s%s/%s", c.cfg.Host, c.cfg.HTTPPath, c.cfg.Table)
	case DriverSQLite:
		return fmt.Sprintf("sqlite %s/%s", c.cfg.Path, c.cfg.Table)
	default:
		return c.cfg.Driver
	}
}

// Driver returns the configured driver name.
func (c *Connector) Driver() string {
	return c.cfg.Driver
}

func (c *Connector) withDB(ctx context.Context, fn func(ctx context.Context, db *sql.DB) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	db, err := c.open(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnect, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrConnect, err)
	}
	return fn(ctx, db)
}

// Ping opens and closes a connection.
func (c *Connector) Ping(ctx context.Context) error {
	return c.withDB(ctx, func(context.Context, *sql.DB) error { return nil })
}

// EnsureTable creates the submissions table if it does not exist.
func (c *Connector) EnsureTable(ctx context.Context) error {
	ddl, err := DDL(c.cfg.Driver, c.cfg.Table)
	if err != nil {
		return err
	}
	return c.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("%w: creating table: %w", ErrQuery, err)
		}
		return nil
	})
}

// Insert writes one submission. CreatedAt is assigned here.
func (c *Connector) Insert(ctx context.Context, s *model.Submission) error {
	s.CreatedAt = c.now().UTC().Truncate(time.Microsecond)
	start := time.Now()

	err := c.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, fmt.Sprintf(insertSQL, c.cfg.Table),
			s.SubmissionID,
			s.BusinessUnit,
			s.SubmissionDate.UTC(),
			s.Revenue.StringFixed(2),
			s.Expenses.StringFixed(2),
			s.ProfitMargin.StringFixed(2),
			s.SubmittedBy,
			s.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("%w: insert: %w", ErrQuery, err)
		}
		return nil
	})
	if err != nil {
		c.log.Error().Err(err).Str("submission_id", s.SubmissionID).Msg("insert failed")
		return err
	}

	c.log.Info().
		Str("submission_id", s.SubmissionID).
		Str("business_unit", s.BusinessUnit).
		Dur("took", time.Since(start)).
		Msg("submission inserted")
	return nil
}

// Query runs a read statement and materializes every row.
func (c *Connector) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	var out []Row
	err := c.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrQuery, err)
		}
		defer func() { _ = rows.Close() }()

		cols, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrQuery, err)
		}
		for rows.Next() {
			vals := make([]any, len(cols))
			ptrs := make([]any, len(cols))
			for i := range vals {
				ptrs[i] = &vals[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return fmt.Errorf("%w: %w", ErrQuery, err)
			}
			row := make(Row, len(cols))
			for i, col := range cols {
				if b, ok := vals[i].([]byte); ok {
					row[col] = string(b)
				} else {
					row[col] = vals[i]
				}
			}
			out = append(out, row)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrQuery, err)
		}
		return nil
	})
	return out, err
}

// LoadSubmissions returns the newest submissions first, at most limit rows.
func (c *Connector) LoadSubmissions(ctx context.Context, limit int) ([]model.Submission, error) {
	if limit <= 0 {
		limit = 100
	}
	start := time.Now()

	var subs []model.Submission
	err := c.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		rows, err := db.QueryContext(ctx, fmt.Sprintf(selectSQL, c.cfg.Table, limit))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrQuery, err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var s model.Submission
			var subDate, created scanTime
			var revenue, expenses, margin decimal.NullDecimal
			var unit, by sql.NullString

			if err := rows.Scan(&s.SubmissionID, &unit, &subDate, &revenue, &expenses, &margin, &by, &created); err != nil {
				return fmt.Errorf("%w: scanning submission: %w", ErrQuery, err)
			}
			s.BusinessUnit = unit.String
			s.SubmittedBy = by.String
			s.SubmissionDate = subDate.t
			s.CreatedAt = created.t
			s.Revenue = revenue.Decimal
			s.Expenses = expenses.Decimal
			s.ProfitMargin = margin.Decimal
			subs = append(subs, s)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrQuery, err)
		}
		return nil
	})
	if err != nil {
		c.log.Error().Err(err).Msg("load submissions failed")
		return nil, err
	}

	c.log.Debug().Int("rows", len(subs)).Dur("took", time.Since(start)).Msg("submissions loaded")
	return subs, nil
}

func sqliteOpener(cfg Config) Opener {
	return func(ctx context.Context) (*sql.DB, error) {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
		db, err := sql.Open("sqlite", cfg.Path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_time_format=sqlite")
		if err != nil {
			return nil, fmt.Errorf("opening sqlite db: %w", err)
		}
		ddl, err := DDL(DriverSQLite, cfg.Table)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
		return db, nil
	}
}

func databricksOpener(cfg Config) Opener {
	host := strings.TrimPrefix(strings.TrimPrefix(cfg.Host, "https://"), "http://")
	host = strings.TrimSuffix(host, "/")
	return func(context.Context) (*sql.DB, error) {
		connector, err := dbsql.NewConnector(
			dbsql.WithServerHostname(host),
			dbsql.WithPort(443),
			dbsql.WithHTTPPath(cfg.HTTPPath),
			dbsql.WithAccessToken(cfg.Token),
			dbsql.WithTimeout(cfg.Timeout),
		)
		if err != nil {
			return nil, fmt.Errorf("configuring databricks connector: %w", err)
		}
		return sql.OpenDB(connector), nil
	}
}
