package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/cognify-backend/internal/data/repos/testutil"
	types "github.com/yungbote/cognify-backend/internal/domain"
)

func TestMasteryRepo_ListActiveInWindowSkipsUnpracticed(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewMasteryRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "mastery-window@test.local")
	start := time.Now().UTC().AddDate(0, 0, -30)
	end := time.Now().UTC()

	inWindow := testutil.SeedMastery(t, ctx, tx, u.ID, "loops", testutil.PtrTime(start.AddDate(0, 0, 3)))
	testutil.SeedMastery(t, ctx, tx, u.ID, "maps", testutil.PtrTime(start.AddDate(0, 0, -3)))
	testutil.SeedMastery(t, ctx, tx, u.ID, "slices", nil)

	got, err := repo.ListActiveInWindow(ctx, tx, u.ID, start, end)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(got) != 1 || got[0].ID != inWindow.ID {
		t.Fatalf("expected only the recently practiced concept, got %d rows", len(got))
	}
}

func TestMasteryRepo_UpsertUpdatesExistingRow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewMasteryRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "mastery-upsert@test.local")
	m := testutil.SeedMastery(t, ctx, tx, u.ID, "loops", nil)

	m.CurrentLevel = types.MasteryPracticing
	m.QuizAttempts = 3
	if _, err := repo.Upsert(ctx, tx, m); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.GetByUserAndConcept(ctx, tx, u.ID, "loops")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CurrentLevel != types.MasteryPracticing || got.QuizAttempts != 3 {
		t.Fatalf("unexpected row after upsert: %q attempts=%d", got.CurrentLevel, got.QuizAttempts)
	}
}
