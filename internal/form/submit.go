package form

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/finportal/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Inserter persists one submission.
type Inserter interface {
	Insert(ctx context.Context, s *model.Submission) error
}

// Invalidator is notified after a successful insert so cached reads expire.
type Invalidator interface {
	Invalidate()
}

// NewID returns "sub_" followed by the first 8 hex digits of a random UUID.
func NewID() string {
	return "sub_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Submitter runs the validate, compute and insert sequence.
type Submitter struct {
	Spec        Spec
	Inserter    Inserter
	Invalidator Invalidator // optional
	Log         zerolog.Logger

	Now   func() time.Time
	NewID func() string
}

// Submit validates in and inserts it. A *ValidationError means nothing was
// sent to the warehouse.
func (s *Submitter) Submit(ctx context.Context, in Input) (model.Submission, error) {
	d, err := Validate(s.Spec, in)
	if err != nil {
		s.Log.Debug().Err(err).Msg("submission rejected")
		return model.Submission{}, err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	newID := NewID
	if s.NewID != nil {
		newID = s.NewID
	}

	date := d.SubmissionDate
	if date.IsZero() {
		date = now().UTC()
	}

	sub := model.Submission{
		SubmissionID:   newID(),
		BusinessUnit:   d.BusinessUnit,
		SubmissionDate: date.Truncate(time.Microsecond),
		Revenue:        d.Revenue,
		Expenses:       d.Expenses,
		ProfitMargin:   model.ProfitMargin(d.Revenue, d.Expenses),
		SubmittedBy:    d.SubmittedBy,
	}

	if err := s.Inserter.Insert(ctx, &sub); err != nil {
		return model.Submission{}, fmt.Errorf("submitting %s: %w", sub.SubmissionID, err)
	}
	if s.Invalidator != nil {
		s.Invalidator.Invalidate()
	}

	s.Log.Info().
		Str("submission_id", sub.SubmissionID).
		Str("business_unit", sub.BusinessUnit).
		Str("profit_margin", sub.ProfitMargin.StringFixed(2)).
		Msg("submission accepted")
	return sub, nil
}
