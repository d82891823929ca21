package app

import (
	"context"

	redisclient "github.com/yungbote/cognify-backend/internal/clients/redis"
	"github.com/yungbote/cognify-backend/internal/data/graph"
	"github.com/yungbote/cognify-backend/internal/pkg/logger"
	"github.com/yungbote/cognify-backend/internal/platform/neo4jdb"
)

// Clients holds optional infrastructure. Each member is nil when its env
// config is absent; consumers degrade instead of failing.
type Clients struct {
	Neo4j         *neo4jdb.Client
	ResourceGraph graph.ResourceGraph
	WindowCache   redisclient.WindowCache
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	neo, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		return Clients{}, err
	}

	cache, err := redisclient.NewWindowCache(log)
	if err != nil {
		return Clients{}, err
	}

	return Clients{
		Neo4j:         neo,
		ResourceGraph: graph.NewResourceGraph(neo, log),
		WindowCache:   cache,
	}, nil
}

func (c Clients) Close(ctx context.Context) {
	if c.Neo4j != nil {
		_ = c.Neo4j.Close(ctx)
	}
	if c.WindowCache != nil {
		_ = c.WindowCache.Close()
	}
}
