package cognitive

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/cognify-backend/internal/data/repos/testutil"
	types "github.com/yungbote/cognify-backend/internal/domain"
)

func TestProfileRepo_CreateAndGetByUserID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewProfileRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "profile-create@test.local")
	seeded := testutil.SeedProfile(t, ctx, tx, u.ID)

	got, err := repo.GetByUserID(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("get by user id: %v", err)
	}
	if got.ID != seeded.ID {
		t.Fatalf("expected profile %s, got %s", seeded.ID, got.ID)
	}
	if got.ProfileVersion != 1 {
		t.Fatalf("expected fresh profile at version 1, got %d", got.ProfileVersion)
	}
}

func TestProfileRepo_UpdateVersionedPersistsAtExpectedVersion(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewProfileRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "profile-versioned@test.local")
	p := testutil.SeedProfile(t, ctx, tx, u.ID)

	p.SetDimension(types.DimInputPreference, types.InputVisual, 0.56)
	p.ProfileVersion = 2
	p.TotalAdaptations = 1

	if err := repo.UpdateVersioned(ctx, tx, p, 1); err != nil {
		t.Fatalf("update versioned: %v", err)
	}

	got, err := repo.GetByUserID(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("get by user id: %v", err)
	}
	if got.InputPreference != types.InputVisual || got.ProfileVersion != 2 || got.TotalAdaptations != 1 {
		t.Fatalf("unexpected persisted profile: %q v%d a%d", got.InputPreference, got.ProfileVersion, got.TotalAdaptations)
	}
}

func TestProfileRepo_UpdateVersionedDetectsStaleVersion(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewProfileRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "profile-stale@test.local")
	p := testutil.SeedProfile(t, ctx, tx, u.ID)

	p.ProfileVersion = 2
	if err := repo.UpdateVersioned(ctx, tx, p, 1); err != nil {
		t.Fatalf("first update: %v", err)
	}

	// A second writer still holding version 1 must lose.
	p.ProfileVersion = 2
	err := repo.UpdateVersioned(ctx, tx, p, 1)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}
