package models

// MetricKind enumerates the KPI families the classifier understands.
type MetricKind string

const (
	MetricOccupancy            MetricKind = "occupancy"
	MetricTargetAttainment     MetricKind = "target_attainment"
	MetricTrend                MetricKind = "trend"
	MetricGuestsPerReservation MetricKind = "guests_per_reservation"
)

// KPIStatus is the three-level traffic light attached to a metric value.
type KPIStatus string

const (
	StatusPositive KPIStatus = "positive"
	StatusNeutral  KPIStatus = "neutral"
	StatusNegative KPIStatus = "negative"
)
