// Package overview computes the dashboard metrics for the rolling window.
package overview

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"jobmetrics/internal/aggregate"
	"jobmetrics/internal/metrics"
	"jobmetrics/internal/models"
)

// DefaultWindow is the length of the rolling window.
const DefaultWindow = 90 * 24 * time.Hour

// Source reads the posting feeds and the occupation area lookup.
type Source interface {
	ListPostingsSince(ctx context.Context, since time.Time) ([]models.Posting, error)
	ListRawPostingsSince(ctx context.Context, since time.Time) ([]models.RawPosting, error)
	ListOccupationAreas(ctx context.Context) (map[string]string, error)
}

// Service computes metrics bundles from a Source.
type Service struct {
	src    Source
	window time.Duration
	limits aggregate.Limits
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithWindow overrides the rolling window length.
func WithWindow(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.window = d
		}
	}
}

// WithLimits overrides the ranked series sizes.
func WithLimits(l aggregate.Limits) Option {
	return func(s *Service) { s.limits = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service reading from src.
func NewService(src Source, opts ...Option) *Service {
	s := &Service{
		src:    src,
		window: DefaultWindow,
		limits: aggregate.DefaultLimits(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Since returns the lower bound of the window as of now.
func (s *Service) Since() time.Time {
	return s.now().UTC().Add(-s.window)
}

// Compute fetches the window and aggregates it. The three reads run
// concurrently; the first failure cancels the others and fails the call.
func (s *Service) Compute(ctx context.Context) (*models.Metrics, error) {
	start := time.Now()
	since := s.Since()

	var (
		postings []models.Posting
		raw      []models.RawPosting
		areas    map[string]string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		postings, err = s.src.ListPostingsSince(gctx, since)
		if err != nil {
			return fmt.Errorf("load postings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		raw, err = s.src.ListRawPostingsSince(gctx, since)
		if err != nil {
			return fmt.Errorf("load raw postings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		areas, err = s.src.ListOccupationAreas(gctx)
		if err != nil {
			return fmt.Errorf("load occupation areas: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		metrics.ObserveCompute(time.Since(start), err, 0, 0, 0)
		return nil, err
	}

	m := aggregate.Build(postings, raw, areas, s.limits)
	metrics.ObserveCompute(time.Since(start), nil, m.Totals.Jobs90d, m.Totals.Employers, m.Totals.Regions)

	slog.Debug("metrics computed",
		"since", since.Format(time.RFC3339),
		"postings", len(postings),
		"raw_postings", len(raw),
		"areas", len(areas),
		"duration", time.Since(start))

	return m, nil
}
