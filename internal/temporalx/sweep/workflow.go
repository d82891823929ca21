package sweep

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// Workflow refreshes cognitive profiles for every learner with recent
// activity. Learners are processed in batches so a single bad record cannot
// stall the whole sweep.
func Workflow(ctx workflow.Context, params SweepParams) (SweepResult, error) {
	logger := workflow.GetLogger(ctx)

	if params.LookbackDays <= 0 {
		params.LookbackDays = DefaultLookbackDays
	}
	if params.BatchSize <= 0 {
		params.BatchSize = DefaultBatchSize
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Minute,
		HeartbeatTimeout:    time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: 5 * time.Second,
			MaximumInterval: time.Minute,
			MaximumAttempts: 3,
		},
	})

	var userIDs []string
	if err := workflow.ExecuteActivity(ctx, ActivityListLearners, params.LookbackDays).Get(ctx, &userIDs); err != nil {
		return SweepResult{}, err
	}

	out := SweepResult{Learners: len(userIDs)}
	if len(userIDs) == 0 {
		logger.Info("profile sweep found no active learners", "lookback_days", params.LookbackDays)
		return out, nil
	}

	for start := 0; start < len(userIDs); start += params.BatchSize {
		end := start + params.BatchSize
		if end > len(userIDs) {
			end = len(userIDs)
		}
		var batch BatchResult
		if err := workflow.ExecuteActivity(ctx, ActivityRefreshBatch, userIDs[start:end], params.LookbackDays).Get(ctx, &batch); err != nil {
			return out, err
		}
		out.Refreshed += batch.Refreshed
		out.Unchanged += batch.Unchanged
		out.Skipped += batch.Skipped
		out.Failed += batch.Failed
	}

	logger.Info("profile sweep finished",
		"learners", out.Learners,
		"refreshed", out.Refreshed,
		"unchanged", out.Unchanged,
		"skipped", out.Skipped,
		"failed", out.Failed)
	return out, nil
}
