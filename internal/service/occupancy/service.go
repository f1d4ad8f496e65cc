package occupancy

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aruizdev/tablero/internal/domain/models"
	repo "github.com/aruizdev/tablero/internal/repository/supabase"
)

// Notifier receives dashboard notifications derived from alert conditions.
type Notifier interface {
	Publish(notification models.Notification)
}

// Snapshot is the complete evaluation of one filter: metrics, per-KPI
// statuses, the full alert list and the single headline status. FetchError
// carries the degraded current-period failure, if any; the metrics stay
// defined either way so the dashboard never renders blank.
type Snapshot struct {
	Filter     models.Filter                          `json:"-"`
	Metrics    models.AggregatedMetrics               `json:"metrics"`
	KPIs       map[models.MetricKind]models.KPIStatus `json:"kpis"`
	Alerts     []models.Alert                         `json:"alerts"`
	Headline   models.Alert                           `json:"headline"`
	FetchError string                                 `json:"fetch_error,omitempty"`
	FetchedAt  time.Time                              `json:"fetched_at"`
}

// Service evaluates occupancy snapshots against the hosted datastore.
type Service struct {
	repo      repo.Repository
	targetPct float64
	notifier  Notifier
	logger    *zap.Logger
	now       func() time.Time

	mu     sync.Mutex
	gen    uint64
	latest *Snapshot
}

// NewService wires a new occupancy service instance.
func NewService(repository repo.Repository, targetPct float64, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      repository,
		targetPct: targetPct,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// TargetPct exposes the configured occupancy target.
func (s *Service) TargetPct() float64 {
	return s.targetPct
}

// Latest returns the most recently stored snapshot, if any.
func (s *Service) Latest() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return Snapshot{}, false
	}
	return *s.latest, true
}

// Evaluate fetches the current and previous periods concurrently, aggregates
// them, and derives KPIs and alerts. An identical filter returns the cached
// snapshot without refetching. A slower evaluation started earlier never
// overwrites the snapshot of a later one (request-generation counter).
func (s *Service) Evaluate(ctx context.Context, filter models.Filter) Snapshot {
	s.mu.Lock()
	if s.latest != nil && s.latest.Filter.Equal(filter) && s.latest.FetchError == "" {
		snapshot := *s.latest
		s.mu.Unlock()
		return snapshot
	}
	s.gen++
	myGen := s.gen
	s.mu.Unlock()

	current, previous := s.fetchBothPeriods(ctx, filter)

	metrics := Aggregate(current.records, filter)

	// A failed previous-period fetch silently degrades the trend to nil;
	// trend is a secondary metric and must not fail the evaluation.
	if previous.err == nil {
		previousMetrics := Aggregate(previous.records, filter)
		metrics.TrendPct = Trend(metrics.TotalGuests, previousMetrics.TotalGuests)
	} else {
		s.logger.Warn("previous period fetch failed, trend degraded", zap.Error(previous.err))
	}

	snapshot := Snapshot{
		Filter:    filter,
		Metrics:   metrics,
		KPIs:      s.classifyAll(metrics),
		Alerts:    DeriveAlerts(metrics, s.targetPct),
		Headline:  HeadlineAlert(metrics, s.targetPct),
		FetchedAt: s.now().UTC(),
	}

	// Current-period failure fails soft: empty metrics plus a display-level
	// error string, never an error propagated into the render path.
	if current.err != nil {
		snapshot.FetchError = current.err.Error()
		s.logger.Error("current period fetch failed", zap.Error(current.err))
	}

	s.store(myGen, snapshot)
	return snapshot
}

type periodResult struct {
	records []models.RawOccupancyRecord
	err     error
}

// fetchBothPeriods runs the two window queries in parallel and waits for
// both outcomes; neither failure short-circuits the other.
func (s *Service) fetchBothPeriods(ctx context.Context, filter models.Filter) (current, previous periodResult) {
	prevStart, prevEnd := filter.PreviousPeriod()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		current.records, current.err = s.repo.FetchOccupancyRecords(ctx, filter.DateStart, filter.DateEnd, filter.Shift)
	}()

	go func() {
		defer wg.Done()
		previous.records, previous.err = s.repo.FetchOccupancyRecords(ctx, prevStart, prevEnd, filter.Shift)
	}()

	wg.Wait()
	return current, previous
}

func (s *Service) classifyAll(metrics models.AggregatedMetrics) map[models.MetricKind]models.KPIStatus {
	attainment := 0.0
	if s.targetPct > 0 {
		attainment = round2(metrics.OccupancyRatePct / s.targetPct * 100)
	}

	kpis := map[models.MetricKind]models.KPIStatus{
		models.MetricOccupancy:            Classify(metrics.OccupancyRatePct, models.MetricOccupancy),
		models.MetricTargetAttainment:     Classify(attainment, models.MetricTargetAttainment),
		models.MetricGuestsPerReservation: Classify(metrics.GuestsPerReservation(), models.MetricGuestsPerReservation),
	}

	if metrics.TrendPct != nil {
		kpis[models.MetricTrend] = Classify(*metrics.TrendPct, models.MetricTrend)
	}

	return kpis
}

// store keeps only the most recently issued evaluation; a stale generation
// is dropped so a slow response cannot overwrite fresher data.
func (s *Service) store(gen uint64, snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.logger.Debug("dropping stale snapshot", zap.Uint64("gen", gen), zap.Uint64("latest_gen", s.gen))
		return
	}
	s.latest = &snapshot

	if s.notifier != nil && snapshot.Headline.Kind != models.AlertNormal {
		s.notifier.Publish(models.Notification{
			Kind:      string(snapshot.Headline.Kind),
			Severity:  snapshot.Headline.Severity,
			Title:     snapshot.Headline.Title,
			Message:   snapshot.Headline.Message,
			CreatedAt: snapshot.FetchedAt,
		})
	}
}
