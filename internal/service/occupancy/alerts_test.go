package occupancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aruizdev/tablero/internal/domain/models"
)

func ptr(v float64) *float64 { return &v }

func TestDeriveAlerts_BelowTargetGap(t *testing.T) {
	metrics := models.AggregatedMetrics{OccupancyRatePct: 65.93, ActiveDays: 7}

	alerts := DeriveAlerts(metrics, 75)

	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertBelowTarget, alerts[0].Kind)
	assert.Equal(t, models.SeverityWarning, alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "9.07")
}

func TestDeriveAlerts_RecordHigh(t *testing.T) {
	metrics := models.AggregatedMetrics{OccupancyRatePct: 96.2}

	alerts := DeriveAlerts(metrics, 75)

	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertRecordHigh, alerts[0].Kind)
	assert.Equal(t, models.SeveritySuccess, alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "96.2")
}

func TestDeriveAlerts_NegativeTrend(t *testing.T) {
	metrics := models.AggregatedMetrics{OccupancyRatePct: 80, TrendPct: ptr(-20)}

	alerts := DeriveAlerts(metrics, 75)

	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertNegativeTrend, alerts[0].Kind)
	assert.Equal(t, models.SeverityDanger, alerts[0].Severity)
}

func TestDeriveAlerts_TrendAtThresholdNotEmitted(t *testing.T) {
	metrics := models.AggregatedMetrics{OccupancyRatePct: 80, TrendPct: ptr(-15)}
	assert.Empty(t, DeriveAlerts(metrics, 75))
}

func TestDeriveAlerts_NilTrendNeverAlerts(t *testing.T) {
	metrics := models.AggregatedMetrics{OccupancyRatePct: 80}
	assert.Empty(t, DeriveAlerts(metrics, 75))
}

func TestDeriveAlerts_InactiveDaysDoesNotSuppressBelowTarget(t *testing.T) {
	// Two of seven days with no guests, occupancy under target: both alerts
	// must surface in the full-list variant.
	metrics := models.AggregatedMetrics{
		OccupancyRatePct: 50,
		PerDay: []models.DayEntry{
			{Guests: 40}, {Guests: 0}, {Guests: 35}, {Guests: 0},
			{Guests: 30}, {Guests: 25}, {Guests: 20},
		},
	}

	alerts := DeriveAlerts(metrics, 75)

	require.Len(t, alerts, 2)
	assert.Equal(t, models.AlertBelowTarget, alerts[0].Kind)
	assert.Equal(t, models.AlertInactiveDays, alerts[1].Kind)
	assert.Contains(t, alerts[1].Message, "2")
	assert.Equal(t, models.SeverityInfo, alerts[1].Severity)
}

func TestDeriveAlerts_MultipleSimultaneous(t *testing.T) {
	metrics := models.AggregatedMetrics{
		OccupancyRatePct: 50,
		TrendPct:         ptr(-30),
		PerDay:           []models.DayEntry{{Guests: 0}, {Guests: 10}},
	}

	alerts := DeriveAlerts(metrics, 75)

	require.Len(t, alerts, 3)
	assert.Equal(t, models.AlertBelowTarget, alerts[0].Kind)
	assert.Equal(t, models.AlertNegativeTrend, alerts[1].Kind)
	assert.Equal(t, models.AlertInactiveDays, alerts[2].Kind)
}

func TestHeadlineAlert_RecordBeatsBelowTarget(t *testing.T) {
	// A record-high reading with a target above it: record wins the headline
	// even though below-target is simultaneously true.
	metrics := models.AggregatedMetrics{OccupancyRatePct: 96.2}

	headline := HeadlineAlert(metrics, 98)

	assert.Equal(t, models.AlertRecordHigh, headline.Kind)
	assert.Contains(t, headline.Message, "96.2")
}

func TestHeadlineAlert_BelowTargetBeatsNegativeTrend(t *testing.T) {
	metrics := models.AggregatedMetrics{OccupancyRatePct: 50, TrendPct: ptr(-30)}

	headline := HeadlineAlert(metrics, 75)

	assert.Equal(t, models.AlertBelowTarget, headline.Kind)
}

func TestHeadlineAlert_InactiveDaysOnlyBeatsNormal(t *testing.T) {
	metrics := models.AggregatedMetrics{
		OccupancyRatePct: 80,
		PerDay:           []models.DayEntry{{Guests: 0}, {Guests: 50}},
	}

	headline := HeadlineAlert(metrics, 75)
	assert.Equal(t, models.AlertInactiveDays, headline.Kind)

	// With below-target also true, inactive days loses.
	metrics.OccupancyRatePct = 50
	headline = HeadlineAlert(metrics, 75)
	assert.Equal(t, models.AlertBelowTarget, headline.Kind)
}

func TestHeadlineAlert_Normal(t *testing.T) {
	metrics := models.AggregatedMetrics{
		OccupancyRatePct: 80,
		TrendPct:         ptr(2),
		PerDay:           []models.DayEntry{{Guests: 40}},
	}

	headline := HeadlineAlert(metrics, 75)

	assert.Equal(t, models.AlertNormal, headline.Kind)
}
