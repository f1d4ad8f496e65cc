package occupancy

import (
	"fmt"

	"github.com/aruizdev/tablero/internal/domain/models"
)

const (
	recordHighPct    = 95.0
	negativeTrendPct = -15.0
)

// DeriveAlerts scans the aggregated metrics for threshold breaches and
// returns every matching alert in fixed order: below target, record high,
// negative trend, inactive days. Several alerts can hold at once.
func DeriveAlerts(metrics models.AggregatedMetrics, targetPct float64) []models.Alert {
	var alerts []models.Alert

	if metrics.OccupancyRatePct < targetPct {
		alerts = append(alerts, belowTargetAlert(metrics, targetPct))
	}

	if metrics.OccupancyRatePct >= recordHighPct {
		alerts = append(alerts, recordHighAlert(metrics))
	}

	if metrics.TrendPct != nil && *metrics.TrendPct < negativeTrendPct {
		alerts = append(alerts, negativeTrendAlert(*metrics.TrendPct))
	}

	if inactive := metrics.InactiveDays(); inactive > 0 {
		alerts = append(alerts, inactiveDaysAlert(inactive))
	}

	return alerts
}

// HeadlineAlert picks the single highest-priority status among the alert
// conditions: record high wins over below target, then negative trend.
// Inactive days only ever displaces the normal status.
//
// Note this priority order deliberately differs from the emission order of
// DeriveAlerts; the two consumers of the original dashboard disagreed and
// both behaviors are kept as separate, independently tested strategies.
func HeadlineAlert(metrics models.AggregatedMetrics, targetPct float64) models.Alert {
	switch {
	case metrics.OccupancyRatePct >= recordHighPct:
		return recordHighAlert(metrics)
	case metrics.OccupancyRatePct < targetPct:
		return belowTargetAlert(metrics, targetPct)
	case metrics.TrendPct != nil && *metrics.TrendPct < negativeTrendPct:
		return negativeTrendAlert(*metrics.TrendPct)
	case metrics.InactiveDays() > 0:
		return inactiveDaysAlert(metrics.InactiveDays())
	default:
		return models.Alert{
			Kind:     models.AlertNormal,
			Severity: models.SeverityInfo,
			Title:    "Ocupación normal",
			Message:  "Ocupación dentro de los parámetros.",
		}
	}
}

func belowTargetAlert(metrics models.AggregatedMetrics, targetPct float64) models.Alert {
	gap := round2(targetPct - metrics.OccupancyRatePct)
	return models.Alert{
		Kind:     models.AlertBelowTarget,
		Severity: models.SeverityWarning,
		Title:    "Ocupación por debajo del objetivo",
		Message:  fmt.Sprintf("La ocupación %.2f%% está %.2f puntos por debajo del objetivo %.2f%%.", metrics.OccupancyRatePct, gap, targetPct),
	}
}

func recordHighAlert(metrics models.AggregatedMetrics) models.Alert {
	return models.Alert{
		Kind:     models.AlertRecordHigh,
		Severity: models.SeveritySuccess,
		Title:    "Ocupación récord",
		Message:  fmt.Sprintf("Ocupación récord del %.2f%% en el periodo.", metrics.OccupancyRatePct),
	}
}

func negativeTrendAlert(trendPct float64) models.Alert {
	return models.Alert{
		Kind:     models.AlertNegativeTrend,
		Severity: models.SeverityDanger,
		Title:    "Tendencia negativa",
		Message:  fmt.Sprintf("Los comensales han caído un %.2f%% respecto al periodo anterior.", -trendPct),
	}
}

func inactiveDaysAlert(count int) models.Alert {
	return models.Alert{
		Kind:     models.AlertInactiveDays,
		Severity: models.SeverityInfo,
		Title:    "Días sin actividad",
		Message:  fmt.Sprintf("%d días del periodo no registraron comensales.", count),
	}
}
