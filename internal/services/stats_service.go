package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"mototrack/internal/core"
)

// MonthlyReport bundles everything the stats screen shows for one month:
// current and previous month accumulations, the linear projection, and the
// month-over-month differences.
type MonthlyReport struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	Current    core.Stats      `json:"current"`
	Previous   core.Stats      `json:"previous"`
	Projection core.Projection `json:"projection"`
	Diff       core.MonthDiff  `json:"diff"`
}

// StatsService composes the repository with the pure stats engine. The
// clock is injectable so projection tests are deterministic.
type StatsService struct {
	repo Repository
	now  func() time.Time
}

func NewStatsService(repo Repository) *StatsService {
	return &StatsService{
		repo: repo,
		now:  time.Now,
	}
}

// MonthlyReport loads the target month and the immediately preceding one,
// rolling the year boundary, and derives stats, projection, and diffs.
// The two month queries are independent reads and run concurrently.
func (s *StatsService) MonthlyReport(ctx context.Context, year, month int) (MonthlyReport, error) {
	if month < 1 || month > 12 {
		return MonthlyReport{}, core.ErrInvalidDate
	}

	prevYear, prevMonth := core.PreviousMonth(year, month)

	var current, previous []core.Transaction
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.repo.ListByMonth(gctx, year, month)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.repo.ListByMonth(gctx, prevYear, prevMonth)
		return err
	})
	if err := g.Wait(); err != nil {
		return MonthlyReport{}, fmt.Errorf("monthly report %04d-%02d: %w", year, month, err)
	}

	currentStats := core.ComputeStats(current)
	previousStats := core.ComputeStats(previous)

	return MonthlyReport{
		Year:       year,
		Month:      month,
		Current:    currentStats,
		Previous:   previousStats,
		Projection: core.ComputeProjection(currentStats, year, month, s.now()),
		Diff:       core.CompareMonths(currentStats, previousStats),
	}, nil
}
