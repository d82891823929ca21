package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/cognify-backend/internal/pkg/logger"
	"github.com/yungbote/cognify-backend/internal/platform/neo4jdb"
)

// LearningResource is a resource node as stored in the knowledge graph.
// EngagementScore and CompletionRate are rolling aggregates over everyone
// who consumed the resource, not per-learner values.
type LearningResource struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	URL              string  `json:"url"`
	ResourceType     string  `json:"resource_type"`
	LearningStyle    string  `json:"learning_style"`
	DifficultyLevel  string  `json:"difficulty_level"`
	EngagementScore  float64 `json:"engagement_score"`
	CompletionRate   float64 `json:"completion_rate"`
	EstimatedMinutes int     `json:"estimated_minutes"`
}

type ResourceGraph interface {
	UpsertResource(ctx context.Context, conceptName string, res LearningResource) error
	ListResourcesForConcept(ctx context.Context, conceptName string) ([]LearningResource, error)
	NextConcepts(ctx context.Context, conceptName string) ([]string, error)
	// UpdateEngagement folds one interaction into the resource's rolling
	// aggregates with a 0.9/0.1 exponential moving average.
	UpdateEngagement(ctx context.Context, resourceID string, completionRate, engagementScore float64) error
}

type resourceGraph struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewResourceGraph(client *neo4jdb.Client, baseLog *logger.Logger) ResourceGraph {
	return &resourceGraph{client: client, log: baseLog.With("repo", "ResourceGraph")}
}

func (g *resourceGraph) available() bool {
	return g.client != nil && g.client.Driver != nil
}

func (g *resourceGraph) UpsertResource(ctx context.Context, conceptName string, res LearningResource) error {
	if !g.available() {
		return nil
	}
	session := g.client.Session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `
MERGE (c:Concept {name: $concept_name})
MERGE (r:LearningResource {id: $id})
SET r.title = $title,
    r.url = $url,
    r.resource_type = $resource_type,
    r.learning_style = $learning_style,
    r.difficulty_level = $difficulty_level,
    r.engagement_score = coalesce(r.engagement_score, $engagement_score),
    r.completion_rate = coalesce(r.completion_rate, $completion_rate),
    r.estimated_minutes = $estimated_minutes
MERGE (c)-[:HAS_RESOURCE]->(r)
`, map[string]any{
			"concept_name":      conceptName,
			"id":                res.ID,
			"title":             res.Title,
			"url":               res.URL,
			"resource_type":     res.ResourceType,
			"learning_style":    res.LearningStyle,
			"difficulty_level":  res.DifficultyLevel,
			"engagement_score":  res.EngagementScore,
			"completion_rate":   res.CompletionRate,
			"estimated_minutes": res.EstimatedMinutes,
		})
		if err != nil {
			return nil, err
		}
		_, err = result.Consume(ctx)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("upsert resource %s: %w", res.ID, err)
	}
	return nil
}

func (g *resourceGraph) ListResourcesForConcept(ctx context.Context, conceptName string) ([]LearningResource, error) {
	if !g.available() {
		return nil, nil
	}
	session := g.client.Session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	rows, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `
MATCH (c:Concept {name: $concept_name})-[:HAS_RESOURCE]->(r:LearningResource)
RETURN r
ORDER BY r.engagement_score DESC
`, map[string]any{"concept_name": conceptName})
		if err != nil {
			return nil, err
		}

		var resources []LearningResource
		for result.Next(ctx) {
			node, ok := result.Record().Get("r")
			if !ok {
				continue
			}
			n, ok := node.(neo4j.Node)
			if !ok {
				continue
			}
			resources = append(resources, resourceFromProps(n.Props))
		}
		return resources, result.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list resources for %q: %w", conceptName, err)
	}
	return rows.([]LearningResource), nil
}

func (g *resourceGraph) NextConcepts(ctx context.Context, conceptName string) ([]string, error) {
	if !g.available() {
		return nil, nil
	}
	session := g.client.Session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	rows, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `
MATCH (c:Concept {name: $concept_name})-[:PREREQUISITE_FOR]->(next:Concept)
RETURN next.name AS name
ORDER BY name
`, map[string]any{"concept_name": conceptName})
		if err != nil {
			return nil, err
		}

		var names []string
		for result.Next(ctx) {
			if v, ok := result.Record().Get("name"); ok {
				if name, ok := v.(string); ok {
					names = append(names, name)
				}
			}
		}
		return names, result.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("next concepts for %q: %w", conceptName, err)
	}
	return rows.([]string), nil
}

func (g *resourceGraph) UpdateEngagement(ctx context.Context, resourceID string, completionRate, engagementScore float64) error {
	if !g.available() {
		return nil
	}
	session := g.client.Session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `
MATCH (r:LearningResource {id: $resource_id})
SET r.completion_rate = coalesce(r.completion_rate, $completion_rate) * 0.9 + $completion_rate * 0.1,
    r.engagement_score = coalesce(r.engagement_score, $engagement_score) * 0.9 + $engagement_score * 0.1,
    r.last_updated = datetime()
RETURN r.id AS id
`, map[string]any{
			"resource_id":      resourceID,
			"completion_rate":  completionRate,
			"engagement_score": engagementScore,
		})
		if err != nil {
			return nil, err
		}
		_, err = result.Consume(ctx)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("update engagement for %s: %w", resourceID, err)
	}
	return nil
}

func resourceFromProps(props map[string]any) LearningResource {
	res := LearningResource{
		ID:              str(props["id"]),
		Title:           str(props["title"]),
		URL:             str(props["url"]),
		ResourceType:    str(props["resource_type"]),
		LearningStyle:   str(props["learning_style"]),
		DifficultyLevel: str(props["difficulty_level"]),
		EngagementScore: num(props["engagement_score"]),
		CompletionRate:  num(props["completion_rate"]),
	}
	res.EstimatedMinutes = int(num(props["estimated_minutes"]))
	return res
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}
