package graph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Syncer mirrors the relationship graph into a Neo4j database so it can be
// explored with Cypher alongside other tooling.
type Syncer struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *slog.Logger
}

// NewSyncer connects to Neo4j and verifies the connection.
func NewSyncer(ctx context.Context, uri, username, password, database string, logger *slog.Logger) (*Syncer, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("creating neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("connecting to neo4j at %s: %w", uri, err)
	}
	return &Syncer{driver: driver, database: database, logger: logger}, nil
}

// Close releases the driver.
func (s *Syncer) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// Sync upserts the graph's nodes and relationships. Records keep their
// catalog ids, so repeated syncs converge instead of duplicating.
func (s *Syncer) Sync(ctx context.Context, g *Graph) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, n := range g.Nodes {
			query := fmt.Sprintf("MERGE (r:%s {id: $id}) SET r.label = $label", n.Kind)
			if _, err := tx.Run(ctx, query, map[string]any{"id": n.ID, "label": n.Label}); err != nil {
				return nil, fmt.Errorf("merging %s/%d: %w", n.Kind, n.ID, err)
			}
		}
		for _, e := range g.Edges {
			if e.Dangling {
				continue
			}
			query := fmt.Sprintf(
				"MATCH (a:%s {id: $from}), (b:%s {id: $to}) MERGE (a)-[:%s]->(b)",
				e.FromKind, e.ToKind, relationType(e.Relation),
			)
			params := map[string]any{"from": e.FromID, "to": e.ToID}
			if _, err := tx.Run(ctx, query, params); err != nil {
				return nil, fmt.Errorf("merging %s/%d-[%s]->%s/%d: %w",
					e.FromKind, e.FromID, e.Relation, e.ToKind, e.ToID, err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("syncing graph: %w", err)
	}

	s.logger.Info("graph synced", "nodes", len(g.Nodes), "edges", len(g.Edges))
	return nil
}

// relationType maps a camelCase relation name onto the upper-snake Cypher
// relationship convention.
func relationType(relation string) string {
	switch relation {
	case "officialAddress":
		return "OFFICIAL_ADDRESS"
	case "postalAddress":
		return "POSTAL_ADDRESS"
	case "town":
		return "TOWN"
	case "location":
		return "LOCATION"
	case "manufacturer":
		return "MANUFACTURER"
	case "owner":
		return "OWNER"
	default:
		return "RELATED_TO"
	}
}
