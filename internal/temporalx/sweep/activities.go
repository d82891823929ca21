package sweep

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"go.temporal.io/sdk/activity"

	"github.com/yungbote/cognify-backend/internal/data/repos/telemetry"
	"github.com/yungbote/cognify-backend/internal/pkg/logger"
	"github.com/yungbote/cognify-backend/internal/profile"
	"github.com/yungbote/cognify-backend/internal/services"
)

type Activities struct {
	Log         *logger.Logger
	Sessions    telemetry.SessionRepo
	Profiles    services.ProfileService
	Concurrency int
}

// ListActiveLearners returns the user IDs of every learner with at least one
// session inside the lookback window.
func (a *Activities) ListActiveLearners(ctx context.Context, lookbackDays int) ([]string, error) {
	if a == nil || a.Sessions == nil {
		return nil, fmt.Errorf("sweep: activity not configured")
	}
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	since := time.Now().UTC().AddDate(0, 0, -lookbackDays)
	ids, err := a.Sessions.DistinctUserIDsSince(ctx, nil, since)
	if err != nil {
		return nil, fmt.Errorf("sweep: list active learners: %w", err)
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out, nil
}

// RefreshLearnerBatch re-runs profile inference for each learner in the batch.
// Per-learner failures are tolerated: the batch records them and moves on.
func (a *Activities) RefreshLearnerBatch(ctx context.Context, userIDs []string, lookbackDays int) (BatchResult, error) {
	var res BatchResult
	if a == nil || a.Profiles == nil {
		return res, fmt.Errorf("sweep: activity not configured")
	}
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	par := a.Concurrency
	if par < 1 {
		par = DefaultActivityPar
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(par)

	for _, raw := range userIDs {
		raw := raw
		g.Go(func() error {
			userID, err := uuid.Parse(raw)
			if err != nil {
				mu.Lock()
				res.Skipped++
				mu.Unlock()
				return nil
			}

			update, err := a.Profiles.UpdateProfile(gctx, userID, lookbackDays)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil && update != nil && update.Changed:
				res.Refreshed++
			case err == nil:
				res.Unchanged++
			case errors.Is(err, profile.ErrPersistenceConflict):
				// A concurrent interactive update already refreshed this
				// learner; the sweep does not need to win.
				res.Skipped++
			default:
				res.Failed++
				if a.Log != nil {
					a.Log.Warn("profile sweep learner failed", "user_id", raw, "error", err)
				}
			}
			return nil
		})

		activity.RecordHeartbeat(ctx)
	}

	if err := g.Wait(); err != nil {
		return res, err
	}
	return res, nil
}
