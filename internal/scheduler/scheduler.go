package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aruizdev/tablero/internal/config"
	"github.com/aruizdev/tablero/internal/domain/models"
	occupancysvc "github.com/aruizdev/tablero/internal/service/occupancy"
	"github.com/aruizdev/tablero/internal/service/treasury"
)

// digestSchedule runs the morning occupancy digest over the trailing week.
const digestSchedule = "0 9 * * *"

// digestWindowDays is the trailing window the daily digest evaluates.
const digestWindowDays = 7

// Scheduler manages the recurring background jobs.
type Scheduler struct {
	cron         *cron.Cron
	occupancySvc *occupancysvc.Service
	treasurySvc  *treasury.Service
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. The treasury service may be
// nil when the banking aggregator is not configured.
func NewScheduler(cfg config.Config, occupancySvc *occupancysvc.Service, treasurySvc *treasury.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to local", zap.String("timezone", cfg.Scheduler.Timezone), zap.Error(err))
		loc = time.Local
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		occupancySvc: occupancySvc,
		treasurySvc:  treasurySvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	if s.treasurySvc != nil {
		if _, err := s.cron.AddFunc(s.cfg.Scheduler.BankSyncSchedule, s.syncTreasury); err != nil {
			s.logger.Error("failed to schedule bank sync", zap.Error(err))
		}
	}

	if _, err := s.cron.AddFunc(digestSchedule, s.runOccupancyDigest); err != nil {
		s.logger.Error("failed to schedule occupancy digest", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) syncTreasury() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := s.treasurySvc.Sync(ctx); err != nil {
		s.logger.Error("scheduled bank sync failed", zap.Error(err))
	}
}

// runOccupancyDigest evaluates the trailing week so the notification center
// picks up any alert condition even when nobody has the dashboard open.
func (s *Scheduler) runOccupancyDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -(digestWindowDays - 1))

	filter, err := models.NewFilter(
		start.Format(models.DateLayout),
		end.Format(models.DateLayout),
		models.ShiftAll,
		s.cfg.Occupancy.CapacityMax,
	)
	if err != nil {
		s.logger.Error("failed building digest filter", zap.Error(err))
		return
	}

	snapshot := s.occupancySvc.Evaluate(ctx, filter)
	s.logger.Info("occupancy digest evaluated",
		zap.Float64("occupancy_pct", snapshot.Metrics.OccupancyRatePct),
		zap.String("headline", string(snapshot.Headline.Kind)))
}
