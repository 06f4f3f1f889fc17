package graphstore

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

// Neo4jGraphRepo détient le edge set canonique du follow graph. Les deux
// vues (followers, following) sont deux lectures de la même flèche FOLLOWS,
// jamais deux copies stockées.
type Neo4jGraphRepo struct {
	driver neo4j.DriverWithContext
}

func NewNeo4jGraphRepo(driver neo4j.DriverWithContext) *Neo4jGraphRepo {
	return &Neo4jGraphRepo{driver: driver}
}

var _ ports.GraphRepository = (*Neo4jGraphRepo)(nil)

// EnsureSchema crée la contrainte d'unicité sur User.id (crée aussi l'index).
func (r *Neo4jGraphRepo) EnsureSchema(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`
		_, err := tx.Run(ctx, query, nil)
		return nil, err
	})
	return err
}

func (r *Neo4jGraphRepo) CreateEdge(ctx context.Context, follower, followee string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		// Le check d'existence et le MERGE vivent dans la même transaction :
		// la garde AlreadyFollowing tient sous follows concurrents.
		check := `
			MATCH (a:User {id: $follower})-[r:FOLLOWS]->(b:User {id: $followee})
			RETURN r LIMIT 1
		`
		res, err := tx.Run(ctx, check, map[string]any{"follower": follower, "followee": followee})
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			return nil, domain.ErrAlreadyFollowing
		}

		create := `
			MERGE (a:User {id: $follower})
			MERGE (b:User {id: $followee})
			MERGE (a)-[r:FOLLOWS]->(b)
			ON CREATE SET r.created_at = datetime()
		`
		_, err = tx.Run(ctx, create, map[string]any{"follower": follower, "followee": followee})
		return nil, err
	})
	return err
}

func (r *Neo4jGraphRepo) DeleteEdge(ctx context.Context, follower, followee string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (a:User {id: $follower})-[r:FOLLOWS]->(b:User {id: $followee})
			DELETE r
			RETURN count(r) AS removed
		`
		res, err := tx.Run(ctx, query, map[string]any{"follower": follower, "followee": followee})
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			removed, _ := res.Record().Get("removed")
			if removed.(int64) == 0 {
				return nil, domain.ErrNotFollowing
			}
			return nil, nil
		}
		return nil, domain.ErrNotFollowing
	})
	return err
}

func (r *Neo4jGraphRepo) HasEdge(ctx context.Context, follower, followee string) (bool, error) {
	status, err := r.Status(ctx, follower, followee)
	if err != nil {
		return false, err
	}
	return status.IsFollowing, nil
}

func (r *Neo4jGraphRepo) Status(ctx context.Context, actor, target string) (*domain.RelationStatus, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		// Une seule requête pour checker les deux sens.
		query := `
			OPTIONAL MATCH (a:User {id: $actor}), (b:User {id: $target})
			RETURN EXISTS((a)-[:FOLLOWS]->(b)) AS following,
			       EXISTS((b)-[:FOLLOWS]->(a)) AS followedBy
		`
		res, err := tx.Run(ctx, query, map[string]any{"actor": actor, "target": target})
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			rec := res.Record()
			following, _ := rec.Get("following")
			followedBy, _ := rec.Get("followedBy")
			status := &domain.RelationStatus{}
			if v, ok := following.(bool); ok {
				status.IsFollowing = v
			}
			if v, ok := followedBy.(bool); ok {
				status.IsFollowedBy = v
			}
			return status, nil
		}
		// Aucun noeud trouvé : false/false
		return &domain.RelationStatus{}, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.RelationStatus), nil
}

func (r *Neo4jGraphRepo) Followers(ctx context.Context, userKey string) ([]string, error) {
	return r.collectIDs(ctx,
		`MATCH (u:User {id: $id})<-[:FOLLOWS]-(f:User) RETURN f.id AS other`, userKey)
}

func (r *Neo4jGraphRepo) Following(ctx context.Context, userKey string) ([]string, error) {
	return r.collectIDs(ctx,
		`MATCH (u:User {id: $id})-[:FOLLOWS]->(f:User) RETURN f.id AS other`, userKey)
}

func (r *Neo4jGraphRepo) collectIDs(ctx context.Context, query, userKey string) ([]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	res, err := session.Run(ctx, query, map[string]any{"id": userKey})
	if err != nil {
		return nil, err
	}

	out := []string{}
	for res.Next(ctx) {
		id, _ := res.Record().Get("other")
		out = append(out, id.(string))
	}
	return out, res.Err()
}
