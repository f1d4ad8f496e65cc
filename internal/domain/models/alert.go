package models

// AlertKind enumerates the occupancy conditions the dashboard warns about.
type AlertKind string

const (
	AlertBelowTarget   AlertKind = "below_target"
	AlertRecordHigh    AlertKind = "record_high"
	AlertNegativeTrend AlertKind = "negative_trend"
	AlertInactiveDays  AlertKind = "inactive_days"
	AlertNormal        AlertKind = "normal"
)

// Severity mirrors the banner styling the presentation layer applies.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
	SeverityInfo    Severity = "info"
)

// Alert is an ephemeral, derived banner. It is regenerated per evaluation
// and never persisted.
type Alert struct {
	Kind     AlertKind `json:"kind"`
	Severity Severity  `json:"severity"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
}
