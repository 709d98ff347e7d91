package anomalylog

import "log"

// Reporter writes anomaly flags to the process log. It is the default sink
// when no external alerting is wired up.
type Reporter struct {
	Logger *log.Logger
}

func (r Reporter) Anomaly(owner, slug, reason string) {
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("anomaly flagged: owner=%s city=%s reason=%s", owner, slug, reason)
}
