package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/yungbote/cognify-backend/internal/data/graph"
	"github.com/yungbote/cognify-backend/internal/data/repos/testutil"
	"github.com/yungbote/cognify-backend/internal/domain"
	"github.com/yungbote/cognify-backend/internal/profile"
)

type upsertCall struct {
	concept string
	res     graph.LearningResource
}

type stubResourceGraph struct {
	upserts    []upsertCall
	failUpsert bool
}

func (s *stubResourceGraph) UpsertResource(ctx context.Context, conceptName string, res graph.LearningResource) error {
	if s.failUpsert {
		return fmt.Errorf("neo4j unreachable")
	}
	s.upserts = append(s.upserts, upsertCall{concept: conceptName, res: res})
	return nil
}

func (s *stubResourceGraph) ListResourcesForConcept(ctx context.Context, conceptName string) ([]graph.LearningResource, error) {
	return nil, nil
}

func (s *stubResourceGraph) NextConcepts(ctx context.Context, conceptName string) ([]string, error) {
	return nil, nil
}

func (s *stubResourceGraph) UpdateEngagement(ctx context.Context, resourceID string, completionRate, engagementScore float64) error {
	return nil
}

func TestRecommendationService_AddResourceSeedsGraph(t *testing.T) {
	g := &stubResourceGraph{}
	svc := NewRecommendationService(nil, testutil.Logger(t), g, nil)

	err := svc.AddResource(context.Background(), "loops", graph.LearningResource{
		ID:              "res-1",
		Title:           "Loops explained",
		URL:             "https://example.test/loops",
		ResourceType:    domain.ResourceVideo,
		EngagementScore: 4.2,
	})
	if err != nil {
		t.Fatalf("add resource: %v", err)
	}
	if len(g.upserts) != 1 {
		t.Fatalf("expected one graph upsert, got %d", len(g.upserts))
	}
	got := g.upserts[0]
	if got.concept != "loops" || got.res.ID != "res-1" {
		t.Fatalf("unexpected upsert: %+v", got)
	}
	if got.res.LearningStyle != domain.Mixed {
		t.Fatalf("expected learning style default %q, got %q", domain.Mixed, got.res.LearningStyle)
	}
	if got.res.DifficultyLevel != profile.DifficultyIntermediate {
		t.Fatalf("expected difficulty default %q, got %q", profile.DifficultyIntermediate, got.res.DifficultyLevel)
	}
}

func TestRecommendationService_AddResourceValidates(t *testing.T) {
	tests := []struct {
		name    string
		concept string
		res     graph.LearningResource
	}{
		{"missing concept", "", graph.LearningResource{ID: "r", Title: "t", ResourceType: domain.ResourceVideo}},
		{"missing id", "loops", graph.LearningResource{Title: "t", ResourceType: domain.ResourceVideo}},
		{"missing title", "loops", graph.LearningResource{ID: "r", ResourceType: domain.ResourceVideo}},
		{"missing resource type", "loops", graph.LearningResource{ID: "r", Title: "t"}},
		{"engagement out of range", "loops", graph.LearningResource{ID: "r", Title: "t", ResourceType: domain.ResourceVideo, EngagementScore: 7}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := &stubResourceGraph{}
			svc := NewRecommendationService(nil, testutil.Logger(t), g, nil)
			if err := svc.AddResource(context.Background(), tc.concept, tc.res); err == nil {
				t.Fatalf("expected validation error")
			}
			if len(g.upserts) != 0 {
				t.Fatalf("invalid resource must not reach the graph")
			}
		})
	}
}

func TestRecommendationService_AddResourceReportsGraphOutage(t *testing.T) {
	g := &stubResourceGraph{failUpsert: true}
	svc := NewRecommendationService(nil, testutil.Logger(t), g, nil)

	err := svc.AddResource(context.Background(), "loops", graph.LearningResource{
		ID:           "res-1",
		Title:        "Loops explained",
		ResourceType: domain.ResourceVideo,
	})
	if !errors.Is(err, profile.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}
