package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/finportal/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func newTestConnector(t *testing.T) *Connector {
	t.Helper()
	c, err := New(Config{
		Driver:  DriverSQLite,
		Path:    filepath.Join(t.TempDir(), "nested", "finportal.db"),
		Table:   "financial_submissions",
		Timeout: 5 * time.Second,
	}, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func sub(id, unit string, day int, revenue, expenses int64) model.Submission {
	r := decimal.NewFromInt(revenue)
	e := decimal.NewFromInt(expenses)
	return model.Submission{
		SubmissionID:   id,
		BusinessUnit:   unit,
		SubmissionDate: time.Date(2025, 3, day, 9, 30, 0, 0, time.UTC),
		Revenue:        r,
		Expenses:       e,
		ProfitMargin:   model.ProfitMargin(r, e),
		SubmittedBy:    "Demo User",
	}
}

func TestInsertAndLoadRoundTrip(t *testing.T) {
	c := newTestConnector(t)
	ctx := context.Background()

	s := sub("sub_0a1b2c3d", "Sales", 1, 100000, 60000)
	if err := c.Insert(ctx, &s); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if s.CreatedAt.IsZero() {
		t.Error("CreatedAt not assigned on insert")
	}

	got, err := c.LoadSubmissions(ctx, 100)
	if err != nil {
		t.Fatalf("LoadSubmissions: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	r := got[0]
	if r.SubmissionID != "sub_0a1b2c3d" || r.BusinessUnit != "Sales" || r.SubmittedBy != "Demo User" {
		t.Errorf("unexpected row %+v", r)
	}
	if !r.Revenue.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("revenue = %s, want 100000", r.Revenue)
	}
	if !r.Expenses.Equal(decimal.NewFromInt(60000)) {
		t.Errorf("expenses = %s, want 60000", r.Expenses)
	}
	if !r.ProfitMargin.Equal(decimal.NewFromInt(40)) {
		t.Errorf("margin = %s, want 40", r.ProfitMargin)
	}
	if !r.SubmissionDate.Equal(s.SubmissionDate) {
		t.Errorf("submission_date = %v, want %v", r.SubmissionDate, s.SubmissionDate)
	}
}

func TestLoadSubmissionsNewestFirstAndLimited(t *testing.T) {
	c := newTestConnector(t)
	ctx := context.Background()

	for i, s := range []model.Submission{
		sub("sub_00000001", "Sales", 1, 1000, 500),
		sub("sub_00000003", "HR", 3, 3000, 1000),
		sub("sub_00000002", "Finance", 2, 2000, 2500),
	} {
		s := s
		if err := c.Insert(ctx, &s); err != nil {
			t.Fatalf("Insert #%d: %v", i, err)
		}
	}

	got, err := c.LoadSubmissions(ctx, 2)
	if err != nil {
		t.Fatalf("LoadSubmissions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].SubmissionID != "sub_00000003" || got[1].SubmissionID != "sub_00000002" {
		t.Errorf("order = %s, %s; want sub_00000003, sub_00000002", got[0].SubmissionID, got[1].SubmissionID)
	}
	if !got[1].ProfitMargin.Equal(decimal.NewFromInt(-25)) {
		t.Errorf("negative margin = %s, want -25", got[1].ProfitMargin)
	}
}

func TestQueryReturnsNamedColumns(t *testing.T) {
	c := newTestConnector(t)
	ctx := context.Background()

	s := sub("sub_aaaaaaaa", "Sales", 5, 10, 5)
	if err := c.Insert(ctx, &s); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	rows, err := c.Query(ctx, "SELECT COUNT(*) AS n, MAX(business_unit) AS unit FROM financial_submissions WHERE business_unit = ?", "Sales")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if n, ok := rows[0]["n"].(int64); !ok || n != 1 {
		t.Errorf("n = %#v, want int64(1)", rows[0]["n"])
	}
	if rows[0]["unit"] != "Sales" {
		t.Errorf("unit = %#v, want Sales", rows[0]["unit"])
	}
}

func TestQueryErrorIsClassified(t *testing.T) {
	c := newTestConnector(t)

	_, err := c.Query(context.Background(), "SELECT nope FROM missing_table")
	if !errors.Is(err, ErrQuery) {
		t.Fatalf("err = %v, want ErrQuery", err)
	}
	if errors.Is(err, ErrConnect) {
		t.Error("query error should not also be a connection error")
	}
}

func TestConnectErrorIsClassified(t *testing.T) {
	c := NewWithOpener(Config{Driver: DriverSQLite}, func(context.Context) (*sql.DB, error) {
		return nil, errors.New("dial tcp: connection refused")
	}, zerolog.New(io.Discard))

	s := sub("sub_bbbbbbbb", "Sales", 1, 1, 1)
	err := c.Insert(context.Background(), &s)
	if !errors.Is(err, ErrConnect) {
		t.Fatalf("err = %v, want ErrConnect", err)
	}
	if _, err := c.LoadSubmissions(context.Background(), 10); !errors.Is(err, ErrConnect) {
		t.Fatalf("load err = %v, want ErrConnect", err)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	log := zerolog.New(io.Discard)
	cases := map[string]Config{
		"unknown driver":     {Driver: "oracle", Table: "t"},
		"bad table":          {Driver: DriverSQLite, Path: "x.db", Table: "t; DROP TABLE t"},
		"sqlite without db":  {Driver: DriverSQLite, Table: "t"},
		"databricks no auth": {Driver: DriverDatabricks, Host: "adb.example.net", Table: "t"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := New(cfg, log); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDDL(t *testing.T) {
	ddl, err := DDL(DriverDatabricks, "main.finance.financial_submissions")
	if err != nil {
		t.Fatalf("DDL: %v", err)
	}
	for _, want := range []string{"main.finance.financial_submissions", "submission_id    STRING", "DECIMAL(15,2)", "DECIMAL(5,2)", "TIMESTAMP"} {
		if !strings.Contains(ddl, want) {
			t.Errorf("DDL missing %q", want)
		}
	}
	if _, err := DDL(DriverSQLite, "bad name"); err == nil {
		t.Error("expected error for invalid table name")
	}
}

func TestScanTime(t *testing.T) {
	want := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	inputs := []any{
		want,
		"2025-03-01 09:30:00+00:00",
		"2025-03-01T09:30:00Z",
		[]byte("2025-03-01 09:30:00"),
		"2025-03-01 09:30:00 +0000 UTC",
	}
	for _, in := range inputs {
		var s scanTime
		if err := s.Scan(in); err != nil {
			t.Errorf("Scan(%v): %v", in, err)
			continue
		}
		if !s.t.Equal(want) {
			t.Errorf("Scan(%v) = %v, want %v", in, s.t, want)
		}
	}

	var s scanTime
	if err := s.Scan("yesterday"); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}
