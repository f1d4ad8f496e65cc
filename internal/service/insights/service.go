package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aruizdev/tablero/internal/domain/models"
	occupancysvc "github.com/aruizdev/tablero/internal/service/occupancy"
	"github.com/aruizdev/tablero/pkg/clients/anthropic"
)

// ErrDisabled indicates no LLM client is configured.
var ErrDisabled = errors.New("insight generation disabled: no api key configured")

const systemPrompt = `Eres un analista de operaciones de restaurante. ` +
	`A partir de las métricas de ocupación que recibes, escribe un único párrafo ` +
	`en español, directo y accionable, dirigido al gerente. Sin listas ni saludos.`

// Service turns an occupancy snapshot into a short management insight.
type Service struct {
	ai     anthropic.Client
	logger *zap.Logger
}

// NewService wires the insight generator. A nil client disables the feature.
func NewService(ai anthropic.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{ai: ai, logger: logger}
}

// Enabled reports whether insight generation is available.
func (s *Service) Enabled() bool {
	return s.ai != nil
}

// GenerateOccupancyInsight renders the snapshot into a prompt and asks the
// language model for a one-paragraph reading of the period.
func (s *Service) GenerateOccupancyInsight(ctx context.Context, snapshot occupancysvc.Snapshot) (string, error) {
	if s.ai == nil {
		return "", ErrDisabled
	}

	prompt := MetricsDigest(snapshot.Metrics, snapshot.Filter)

	insight, err := s.ai.Complete(ctx, systemPrompt, []anthropic.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", fmt.Errorf("generate occupancy insight: %w", err)
	}

	s.logger.Debug("insight generated", zap.Int("chars", len(insight)))
	return insight, nil
}

// MetricsDigest renders the aggregated metrics as a compact plain-text block
// suitable for prompts and assistant replies.
func MetricsDigest(metrics models.AggregatedMetrics, filter models.Filter) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Periodo: %s a %s (turno %s)\n",
		filter.DateStart.Format(models.DateLayout),
		filter.DateEnd.Format(models.DateLayout),
		filter.Shift)
	fmt.Fprintf(&b, "Comensales: %d | Reservas: %d | Días activos: %d\n",
		metrics.TotalGuests, metrics.TotalReservations, metrics.ActiveDays)
	fmt.Fprintf(&b, "Ocupación: %.2f%% | Capacidad perdida: %d\n",
		metrics.OccupancyRatePct, metrics.LostCapacity)

	if metrics.TrendPct != nil {
		fmt.Fprintf(&b, "Tendencia vs periodo anterior: %+.2f%%\n", *metrics.TrendPct)
	} else {
		b.WriteString("Tendencia vs periodo anterior: sin línea base\n")
	}

	for _, shift := range []models.Shift{models.ShiftLunch, models.ShiftDinner} {
		totals := metrics.PerShift[shift]
		fmt.Fprintf(&b, "Turno %s: %d comensales, %d reservas\n", shift, totals.Guests, totals.Reservations)
	}

	return b.String()
}
