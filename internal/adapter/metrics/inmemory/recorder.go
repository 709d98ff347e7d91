package inmemory

import "sync"

type Snapshot struct {
	UpdateTotal    uint64            `json:"update_total"`
	UpdateAccepted uint64            `json:"update_accepted"`
	UpdateRejected uint64            `json:"update_rejected"`
	AnomalyTotal   uint64            `json:"anomaly_total"`
	ByRejectReason map[string]uint64 `json:"by_reject_reason"`
	ByAnomaly      map[string]uint64 `json:"by_anomaly"`
}

type Recorder struct {
	mu        sync.Mutex
	accepted  uint64
	rejected  uint64
	anomalies uint64
	byReason  map[string]uint64
	byAnomaly map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byReason:  map[string]uint64{},
		byAnomaly: map[string]uint64{},
	}
}

func (r *Recorder) RecordAccepted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted++
}

func (r *Recorder) RecordRejected(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.byReason[reason]++
}

func (r *Recorder) RecordAnomaly(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.anomalies++
	r.byAnomaly[reason]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		UpdateAccepted: r.accepted,
		UpdateRejected: r.rejected,
		UpdateTotal:    r.accepted + r.rejected,
		AnomalyTotal:   r.anomalies,
		ByRejectReason: make(map[string]uint64, len(r.byReason)),
		ByAnomaly:      make(map[string]uint64, len(r.byAnomaly)),
	}
	for k, v := range r.byReason {
		out.ByRejectReason[k] = v
	}
	for k, v := range r.byAnomaly {
		out.ByAnomaly[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
