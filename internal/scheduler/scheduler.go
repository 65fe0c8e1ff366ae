package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Mangum87/Charis/internal/config"
	"github.com/Mangum87/Charis/internal/service/distribution"
)

// Scheduler runs the recurring distribution summary job.
type Scheduler struct {
	cron   *cron.Cron
	dists  *distribution.Service
	cfg    config.Config
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, dists *distribution.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:   cron.New(),
		dists:  dists,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the monthly summary job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.logMonthlySummary); err != nil {
		s.logger.Error("failed to schedule monthly summary", zap.Error(err))
		return
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// logMonthlySummary totals the previous month's distributions and writes
// the figures to the log for the monthly report.
func (s *Scheduler) logMonthlySummary() {
	prev := time.Now().AddDate(0, -1, 0)

	dists := s.dists.GetDistributionsByMonth(prev.Month(), prev.Year())

	var total float64
	for _, d := range dists {
		total += d.Amount
	}

	s.logger.Info("monthly distribution summary",
		zap.String("month", prev.Format("2006-01")),
		zap.Int("distributions", len(dists)),
		zap.Float64("total_amount", total))
}
