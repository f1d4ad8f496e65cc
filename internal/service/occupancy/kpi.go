package occupancy

import "github.com/aruizdev/tablero/internal/domain/models"

// thresholds holds the lower bounds of the positive and neutral bands for
// one metric kind. Values below neutralMin classify as negative.
type thresholds struct {
	positiveMin float64
	neutralMin  float64
	// strictPositive requires value > positiveMin instead of >=, used by
	// the trend metric whose neutral band is inclusive on both ends.
	strictPositive bool
}

// kpiThresholds are fixed domain constants, not user configurable.
var kpiThresholds = map[models.MetricKind]thresholds{
	models.MetricOccupancy:            {positiveMin: 85, neutralMin: 60},
	models.MetricTargetAttainment:     {positiveMin: 90, neutralMin: 70},
	models.MetricTrend:                {positiveMin: 5, neutralMin: -5, strictPositive: true},
	models.MetricGuestsPerReservation: {positiveMin: 3.5, neutralMin: 2.5},
}

// Classify maps a metric value to its traffic-light status. It is total over
// the reals and never fails; unknown kinds read as neutral.
func Classify(value float64, kind models.MetricKind) models.KPIStatus {
	bounds, ok := kpiThresholds[kind]
	if !ok {
		return models.StatusNeutral
	}

	switch {
	case bounds.strictPositive && value > bounds.positiveMin:
		return models.StatusPositive
	case !bounds.strictPositive && value >= bounds.positiveMin:
		return models.StatusPositive
	case value >= bounds.neutralMin:
		return models.StatusNeutral
	default:
		return models.StatusNegative
	}
}
