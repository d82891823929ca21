package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/cognify-backend/internal/data/graph"
	"github.com/yungbote/cognify-backend/internal/domain"
	"github.com/yungbote/cognify-backend/internal/pkg/logger"
	"github.com/yungbote/cognify-backend/internal/profile"
)

// ScoredResource pairs a graph resource with its fit against one learner.
type ScoredResource struct {
	Resource        graph.LearningResource `json:"resource"`
	StyleMatch      float64                `json:"style_match"`
	DifficultyMatch float64                `json:"difficulty_match"`
	MatchScore      float64                `json:"match_score"`
}

type LearningPath struct {
	ConceptName          string           `json:"concept_name"`
	RecommendedResources []ScoredResource `json:"recommended_resources"`
	NextConcepts         []string         `json:"next_concepts"`
	PreferredDifficulty  string           `json:"preferred_difficulty"`
}

type RecommendationService interface {
	// AddResource registers a learning resource under a concept in the
	// knowledge graph so it can surface in personalized paths.
	AddResource(ctx context.Context, conceptName string, res graph.LearningResource) error
	// PersonalizedPath ranks a concept's resources by profile fit.
	PersonalizedPath(ctx context.Context, userID uuid.UUID, conceptName string, limit int) (*LearningPath, error)
	// RecordFeedback folds explicit resource feedback into the graph's
	// rolling engagement metrics.
	RecordFeedback(ctx context.Context, resourceID string, completionRate, engagementScore float64) error
}

type recommendationService struct {
	db             *gorm.DB
	log            *logger.Logger
	resourceGraph  graph.ResourceGraph
	profileService ProfileService
}

func NewRecommendationService(
	db *gorm.DB,
	log *logger.Logger,
	resourceGraph graph.ResourceGraph,
	profileService ProfileService,
) RecommendationService {
	serviceLog := log.With("service", "RecommendationService")
	return &recommendationService{
		db:             db,
		log:            serviceLog,
		resourceGraph:  resourceGraph,
		profileService: profileService,
	}
}

func (s *recommendationService) AddResource(ctx context.Context, conceptName string, res graph.LearningResource) error {
	if conceptName == "" {
		return fmt.Errorf("concept name required")
	}
	if res.ID == "" || res.Title == "" || res.ResourceType == "" {
		return fmt.Errorf("resource id, title and resource_type required")
	}
	if res.EngagementScore < 0 || res.EngagementScore > 5 {
		return fmt.Errorf("engagement_score must be within [0,5]")
	}
	if res.LearningStyle == "" {
		res.LearningStyle = domain.Mixed
	}
	if res.DifficultyLevel == "" {
		res.DifficultyLevel = profile.DifficultyIntermediate
	}
	if err := s.resourceGraph.UpsertResource(ctx, conceptName, res); err != nil {
		return fmt.Errorf("%w: write resource graph: %v", profile.ErrDataUnavailable, err)
	}
	return nil
}

func (s *recommendationService) PersonalizedPath(ctx context.Context, userID uuid.UUID, conceptName string, limit int) (*LearningPath, error) {
	if conceptName == "" {
		return nil, fmt.Errorf("concept name required")
	}
	if limit <= 0 {
		limit = 10
	}

	p, err := s.profileService.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	resources, err := s.resourceGraph.ListResourcesForConcept(ctx, conceptName)
	if err != nil {
		return nil, fmt.Errorf("%w: read resource graph: %v", profile.ErrDataUnavailable, err)
	}
	nextConcepts, err := s.resourceGraph.NextConcepts(ctx, conceptName)
	if err != nil {
		s.log.Warn("Failed to load next concepts", "concept", conceptName, "error", err)
	}

	style, _ := p.Dimension(domain.DimInputPreference)
	tolerance, _ := p.Dimension(domain.DimComplexityTolerance)
	preferred := profile.PreferredDifficulty(tolerance)

	scored := make([]ScoredResource, 0, len(resources))
	for _, r := range resources {
		scored = append(scored, ScoredResource{
			Resource:        r,
			StyleMatch:      profile.StyleMatch(style, r.LearningStyle),
			DifficultyMatch: profile.DifficultyMatch(preferred, r.DifficultyLevel),
			MatchScore: profile.MatchScore(p, profile.ResourceDescriptor{
				LearningStyle:   r.LearningStyle,
				DifficultyLevel: r.DifficultyLevel,
				EngagementScore: r.EngagementScore,
			}),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	return &LearningPath{
		ConceptName:          conceptName,
		RecommendedResources: scored,
		NextConcepts:         nextConcepts,
		PreferredDifficulty:  preferred,
	}, nil
}

func (s *recommendationService) RecordFeedback(ctx context.Context, resourceID string, completionRate, engagementScore float64) error {
	if resourceID == "" {
		return fmt.Errorf("resource id required")
	}
	if engagementScore < 0 || engagementScore > 5 {
		return fmt.Errorf("engagement_score must be within [0,5]")
	}
	if completionRate < 0 || completionRate > 1 {
		return fmt.Errorf("completion_rate must be within [0,1]")
	}
	return s.resourceGraph.UpdateEngagement(ctx, resourceID, completionRate, engagementScore)
}
