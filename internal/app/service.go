// Package service provides the run-level operations behind the CLI:
// loading records, validating them and aggregating them into totals.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/tally/internal/adapters/source"
	"github.com/okian/tally/internal/domain/model"
	"github.com/okian/tally/internal/domain/scoring"
	"github.com/okian/tally/pkg/logger"
	"github.com/okian/tally/pkg/metrics"
)

// Service validates record lists and aggregates them.
type Service struct {
	// Configuration
	subjects []model.Subject

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSubjects sets the accepted subject set. An empty set accepts any
// non-empty subject.
func WithSubjects(subjects []model.Subject) Option {
	return func(s *Service) {
		s.subjects = append([]model.Subject(nil), subjects...)
	}
}

// New constructs a Service accepting the known subjects.
func New(opts ...Option) *Service {
	s := &Service{
		subjects: model.KnownSubjects(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) log() logger.Logger {
	// Resolved lazily so the global logger may be initialized after New.
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	return s.logger
}

// Load reads the record list from src.
func (s *Service) Load(ctx context.Context, src source.Source) ([]model.ScoreRecord, error) {
	records, err := src.Records(ctx)
	if err != nil {
		kind := "read"
		if errors.Is(err, source.ErrDecode) {
			kind = "decode"
			var recErr *model.RecordError
			if errors.As(err, &recErr) {
				metrics.RecordRecordRejected(recErr.Reason())
			}
		}
		metrics.RecordErrorByComponent("source", kind)
		s.log().Error(ctx, "failed to load records",
			logger.String("source", src.Name()),
			logger.Error(err),
		)
		return nil, fmt.Errorf("load records from %s: %w", src.Name(), err)
	}

	metrics.RecordRecordsLoaded(src.Name(), len(records))
	s.log().Debug(ctx, "records loaded",
		logger.String("source", src.Name()),
		logger.Int("records", len(records)),
	)
	return records, nil
}

// Total validates records and returns the sum of name's scores.
func (s *Service) Total(ctx context.Context, name string, records []model.ScoreRecord) (int, error) {
	if err := s.validate(ctx, records); err != nil {
		return 0, err
	}

	start := time.Now()
	total := scoring.ComputeTotal(name, records)
	s.observe(len(records), start)

	s.log().Debug(ctx, "total computed",
		logger.String("name", name),
		logger.Int("total", total),
	)
	return total, nil
}

// Totals validates records and returns per-student totals in order of
// first appearance.
func (s *Service) Totals(ctx context.Context, records []model.ScoreRecord) ([]model.StudentTotal, error) {
	if err := s.validate(ctx, records); err != nil {
		return nil, err
	}

	start := time.Now()
	totals := scoring.Totals(records)
	s.observe(len(records), start)

	s.log().Info(ctx, "totals computed",
		logger.Int("records", len(records)),
		logger.Int("students", len(totals)),
	)
	return totals, nil
}

// Rank validates records and returns students ranked by total.
func (s *Service) Rank(ctx context.Context, records []model.ScoreRecord) ([]model.RankedTotal, error) {
	if err := s.validate(ctx, records); err != nil {
		return nil, err
	}

	start := time.Now()
	ranked := scoring.RankStudents(records)
	s.observe(len(records), start)
	metrics.UpdateStudentsRanked(len(ranked))

	s.log().Info(ctx, "students ranked",
		logger.Int("records", len(records)),
		logger.Int("students", len(ranked)),
	)
	return ranked, nil
}

func (s *Service) validate(ctx context.Context, records []model.ScoreRecord) error {
	err := model.Validate(records, s.subjects)
	if err == nil {
		return nil
	}

	reason := "other"
	var recErr *model.RecordError
	if errors.As(err, &recErr) {
		reason = recErr.Reason()
	}
	metrics.RecordRecordRejected(reason)
	metrics.RecordErrorByComponent("validate", reason)
	s.log().Warn(ctx, "record rejected",
		logger.String("reason", reason),
		logger.Error(err),
	)
	return err
}

func (s *Service) observe(n int, start time.Time) {
	metrics.RecordRecordsAggregated(n)
	metrics.RecordAggregationLatency(float64(time.Since(start).Microseconds()) / 1000)
}
