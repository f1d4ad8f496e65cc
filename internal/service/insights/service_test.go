package insights

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aruizdev/tablero/internal/domain/models"
	occupancysvc "github.com/aruizdev/tablero/internal/service/occupancy"
	"github.com/aruizdev/tablero/pkg/clients/anthropic"
)

type fakeAI struct {
	lastPrompt string
	reply      string
}

func (f *fakeAI) Complete(_ context.Context, _ string, messages []anthropic.Message) (string, error) {
	if len(messages) > 0 {
		f.lastPrompt = messages[0].Content
	}
	return f.reply, nil
}

func sampleSnapshot(t *testing.T) occupancysvc.Snapshot {
	t.Helper()
	filter, err := models.NewFilter("2025-03-01", "2025-03-07", models.ShiftDinner, 65)
	require.NoError(t, err)

	trend := 12.5
	return occupancysvc.Snapshot{
		Filter: filter,
		Metrics: models.AggregatedMetrics{
			TotalGuests:       300,
			TotalReservations: 100,
			ActiveDays:        7,
			OccupancyRatePct:  65.93,
			LostCapacity:      155,
			TrendPct:          &trend,
			PerShift: map[models.Shift]models.ShiftTotals{
				models.ShiftDinner: {Guests: 300, Reservations: 100},
			},
		},
	}
}

func TestGenerateOccupancyInsight_Disabled(t *testing.T) {
	svc := NewService(nil, nil)

	assert.False(t, svc.Enabled())

	_, err := svc.GenerateOccupancyInsight(context.Background(), occupancysvc.Snapshot{})
	require.ErrorIs(t, err, ErrDisabled)
}

func TestGenerateOccupancyInsight_PromptCarriesMetrics(t *testing.T) {
	ai := &fakeAI{reply: "Buena semana en cenas."}
	svc := NewService(ai, nil)

	insight, err := svc.GenerateOccupancyInsight(context.Background(), sampleSnapshot(t))
	require.NoError(t, err)
	assert.Equal(t, "Buena semana en cenas.", insight)

	assert.Contains(t, ai.lastPrompt, "65.93")
	assert.Contains(t, ai.lastPrompt, "2025-03-01")
	assert.Contains(t, ai.lastPrompt, "+12.50")
}

func TestMetricsDigest_NoBaseline(t *testing.T) {
	snapshot := sampleSnapshot(t)
	snapshot.Metrics.TrendPct = nil

	digest := MetricsDigest(snapshot.Metrics, snapshot.Filter)
	assert.Contains(t, digest, "sin línea base")
	assert.Contains(t, digest, "Comensales: 300")
}
