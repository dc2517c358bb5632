package inmemory

import (
	"sync"

	"geoforge/internal/domain/game"
)

type Snapshot struct {
	InteractionTotal    uint64            `json:"interaction_total"`
	InteractionMutating uint64            `json:"interaction_mutating"`
	InteractionRejected uint64            `json:"interaction_rejected"`
	PersistenceSkips    uint64            `json:"persistence_skips"`
	BySignal            map[string]uint64 `json:"by_signal"`
}

type Recorder struct {
	mu       sync.Mutex
	mutating uint64
	rejected uint64
	skips    uint64
	bySignal map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		bySignal: map[string]uint64{},
	}
}

func (r *Recorder) RecordInteraction(signal game.Signal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if signal.Mutating() {
		r.mutating++
	} else {
		r.rejected++
	}
	r.bySignal[string(signal)]++
}

func (r *Recorder) RecordPersistenceSkip() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skips++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		InteractionMutating: r.mutating,
		InteractionRejected: r.rejected,
		InteractionTotal:    r.mutating + r.rejected,
		PersistenceSkips:    r.skips,
		BySignal:            make(map[string]uint64, len(r.bySignal)),
	}
	for k, v := range r.bySignal {
		out.BySignal[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
