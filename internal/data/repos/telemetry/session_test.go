package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/cognify-backend/internal/data/repos/testutil"
)

func TestSessionRepo_ListByUserInWindowFiltersBounds(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewSessionRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "session-window@test.local")
	start := time.Now().UTC().AddDate(0, 0, -30)
	end := time.Now().UTC()

	inside := testutil.SeedSession(t, ctx, tx, u.ID, start.AddDate(0, 0, 5))
	testutil.SeedSession(t, ctx, tx, u.ID, start.AddDate(0, 0, -5))
	testutil.SeedSession(t, ctx, tx, u.ID, end.AddDate(0, 0, 1))

	got, err := repo.ListByUserInWindow(ctx, tx, u.ID, start, end)
	if err != nil {
		t.Fatalf("list in window: %v", err)
	}
	if len(got) != 1 || got[0].ID != inside.ID {
		t.Fatalf("expected only the in-window session, got %d rows", len(got))
	}
}

func TestSessionRepo_DistinctUserIDsSince(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewSessionRepo(db, testutil.Logger(t))

	active := testutil.SeedUser(t, ctx, tx, "sweep-active@test.local")
	idle := testutil.SeedUser(t, ctx, tx, "sweep-idle@test.local")
	cutoff := time.Now().UTC().AddDate(0, 0, -7)

	testutil.SeedSession(t, ctx, tx, active.ID, cutoff.AddDate(0, 0, 1))
	testutil.SeedSession(t, ctx, tx, active.ID, cutoff.AddDate(0, 0, 2))
	testutil.SeedSession(t, ctx, tx, idle.ID, cutoff.AddDate(0, 0, -10))

	ids, err := repo.DistinctUserIDsSince(ctx, tx, cutoff)
	if err != nil {
		t.Fatalf("distinct user ids: %v", err)
	}
	foundActive, foundIdle := false, false
	for _, id := range ids {
		if id == active.ID {
			foundActive = true
		}
		if id == idle.ID {
			foundIdle = true
		}
	}
	if !foundActive {
		t.Fatalf("expected active learner in sweep set")
	}
	if foundIdle {
		t.Fatalf("idle learner must not be swept")
	}
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id.String()] {
			t.Fatalf("duplicate user id %s in sweep set", id)
		}
		seen[id.String()] = true
	}
}
