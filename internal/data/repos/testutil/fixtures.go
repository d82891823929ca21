package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/cognify-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID) *types.CognitiveProfile {
	tb.Helper()
	p := types.NewDefaultProfile(userID, time.Now().UTC())
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed profile: %v", err)
	}
	return p
}

func SeedSession(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, startedAt time.Time) *types.LearningSession {
	tb.Helper()
	s := &types.LearningSession{
		ID:              uuid.New(),
		UserID:          userID,
		StartedAt:       startedAt,
		DurationSeconds: 1800,
		SessionType:     "lesson",
		ConceptsCovered: datatypes.JSON([]byte(`[]`)),
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed session: %v", err)
	}
	return s
}

func SeedInteraction(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, resourceType string, startedAt time.Time) *types.ResourceInteraction {
	tb.Helper()
	it := &types.ResourceInteraction{
		ID:           uuid.New(),
		UserID:       userID,
		ResourceID:   uuid.NewString(),
		ResourceType: resourceType,
		ConceptName:  "loops",
		StartedAt:    startedAt,
	}
	if err := tx.WithContext(ctx).Create(it).Error; err != nil {
		tb.Fatalf("seed interaction: %v", err)
	}
	return it
}

func SeedMastery(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, concept string, lastPracticedAt *time.Time) *types.ConceptMastery {
	tb.Helper()
	m := &types.ConceptMastery{
		ID:              uuid.New(),
		UserID:          userID,
		ConceptName:     concept,
		CurrentLevel:    types.MasteryLearning,
		LastPracticedAt: lastPracticedAt,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed mastery: %v", err)
	}
	return m
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrTime(v time.Time) *time.Time { return &v }

func PtrFloat(v float64) *float64 { return &v }
