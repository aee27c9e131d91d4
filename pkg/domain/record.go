package domain

import "time"

// RunStatus defines the lifecycle of a single trainer run.
type RunStatus string

const (
	RunPending   RunStatus = "pending"
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
	// RunSkipped marks a run that was not launched because a previous sweep
	// already completed it (resume) or because the sweep aborted early.
	RunSkipped RunStatus = "skipped"
)

// RunRecord is the durable outcome of one invocation.
type RunRecord struct {
	Name       string            `json:"name"`
	Index      int               `json:"index"`
	Values     map[string]string `json:"values,omitempty"`
	Status     RunStatus         `json:"status"`
	Attempts   int               `json:"attempts"`
	Device     int               `json:"device"`
	ExitCode   int               `json:"exit_code"`
	Error      string            `json:"error,omitempty"`
	StartedAt  time.Time         `json:"started_at,omitzero"`
	FinishedAt time.Time         `json:"finished_at,omitzero"`
}

// SweepState is the ledger of an entire sweep, keyed by experiment name.
// It is what the RunStore persists between process lifetimes.
type SweepState struct {
	ID        string                `json:"id"`
	GridSize  int                   `json:"grid_size"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
	Runs      map[string]*RunRecord `json:"runs"`
}

// NewSweepState creates an empty ledger for a sweep of the given size.
func NewSweepState(id string, gridSize int) *SweepState {
	now := time.Now().UTC()
	return &SweepState{
		ID:        id,
		GridSize:  gridSize,
		CreatedAt: now,
		UpdatedAt: now,
		Runs:      make(map[string]*RunRecord),
	}
}

// Record stores (or replaces) the record for a run and bumps UpdatedAt.
func (st *SweepState) Record(rec *RunRecord) {
	if st.Runs == nil {
		st.Runs = make(map[string]*RunRecord)
	}
	st.Runs[rec.Name] = rec
	st.UpdatedAt = time.Now().UTC()
}

// Succeeded reports whether the named run already completed successfully.
// Used by resume to skip work the trainer has already done.
func (st *SweepState) Succeeded(name string) bool {
	rec, ok := st.Runs[name]
	return ok && rec.Status == RunSucceeded
}

// Counts tallies the ledger by outcome.
func (st *SweepState) Counts() (succeeded, failed, skipped int) {
	for _, rec := range st.Runs {
		switch rec.Status {
		case RunSucceeded:
			succeeded++
		case RunFailed:
			failed++
		case RunSkipped:
			skipped++
		}
	}
	return succeeded, failed, skipped
}
