package cache

import "context"

// JanitorJob evicts expired entries from an in-memory store on a
// schedule. Expired entries already read as misses; the sweep just
// reclaims their memory.
type JanitorJob struct {
	store    *MemoryStore
	schedule string
}

// NewJanitorJob creates a janitor for the given store
func NewJanitorJob(store *MemoryStore, schedule string) *JanitorJob {
	return &JanitorJob{store: store, schedule: schedule}
}

func (j *JanitorJob) Name() string { return "cache-janitor" }

func (j *JanitorJob) Schedule() string { return j.schedule }

func (j *JanitorJob) Run(_ context.Context) error {
	j.store.Sweep()
	return nil
}
