package ports

// GuardMetrics records validation outcomes for the ops surface.
type GuardMetrics interface {
	RecordAccepted()
	RecordRejected(reason string)
	RecordAnomaly(reason string)
}

// AnomalyReporter receives advisory anomaly flags. Reporting is decoupled
// from blocking: the pipeline may reject, log, or both, per policy.
type AnomalyReporter interface {
	Anomaly(owner, slug, reason string)
}
