package sweep

const (
	WorkflowName         = "profile_sweep"
	ActivityListLearners = "profile_sweep_list_learners"
	ActivityRefreshBatch = "profile_sweep_refresh_batch"
	ScheduleID           = "profile-sweep-nightly"
	DefaultBatchSize     = 50
	DefaultLookbackDays  = 30
	DefaultActivityPar   = 4
	DefaultScheduleCron  = "0 3 * * *"
)

// SweepParams configures one sweep run. Zero values fall back to defaults.
type SweepParams struct {
	LookbackDays int `json:"lookback_days"`
	BatchSize    int `json:"batch_size"`
}

// BatchResult reports how a batch of learners fared. Individual failures do
// not fail the batch; they are counted and logged by the activity.
type BatchResult struct {
	Refreshed int `json:"refreshed"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// SweepResult aggregates batch results for the whole run.
type SweepResult struct {
	Learners  int `json:"learners"`
	Refreshed int `json:"refreshed"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}
