package repository

import (
	"context"
	"fmt"

	"github.com/jupiterclapton/plaza/internal/core/domain"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// DefaultUserRating : valeur renvoyée quand (u)-[RATED]->(s) n'existe pas.
// Sert à pré-remplir le widget de notation, ce n'est PAS une note implicite.
const DefaultUserRating = 5

// Neo4jRepo porte le driver et la façade d'agrégats ; les repositories par
// entité (StoreRepo, RatingRepo, ...) l'embarquent pour partager les sessions.
type Neo4jRepo struct {
	driver neo4j.DriverWithContext
}

func NewNeo4jRepo(driver neo4j.DriverWithContext) *Neo4jRepo {
	return &Neo4jRepo{driver: driver}
}

type StoreRepo struct{ *Neo4jRepo }

func NewStoreRepo(r *Neo4jRepo) *StoreRepo { return &StoreRepo{r} }

type ProductRepo struct{ *Neo4jRepo }

func NewProductRepo(r *Neo4jRepo) *ProductRepo { return &ProductRepo{r} }

type RatingRepo struct{ *Neo4jRepo }

func NewRatingRepo(r *Neo4jRepo) *RatingRepo { return &RatingRepo{r} }

type SocialRepo struct{ *Neo4jRepo }

func NewSocialRepo(r *Neo4jRepo) *SocialRepo { return &SocialRepo{r} }

// EnsureSchema crée les index pour que les lookups par id soient O(1)
func (r *Neo4jRepo) EnsureSchema(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	constraints := []string{
		`CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`,
		`CREATE CONSTRAINT category_name_unique IF NOT EXISTS FOR (c:Category) REQUIRE c.name IS UNIQUE`,
		`CREATE INDEX store_name IF NOT EXISTS FOR (s:Store) ON (s.name)`,
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, q := range constraints {
			if _, err := tx.Run(ctx, q, nil); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

// StorePopularityInputs : UNE passe d'agrégation sur tous les stores.
// Le recompute doit voir toute la population pour produire un rang global
// correct, donc pas de LIMIT ici.
func (r *Neo4jRepo) StorePopularityInputs(ctx context.Context) ([]domain.StoreStats, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (s:Store)
			OPTIONAL MATCH (fu:User)-[f:FOLLOWS]->(s)
			OPTIONAL MATCH (:User)-[r:RATED]->(s)
			WITH s, count(DISTINCT fu) AS followers,
			     count(DISTINCT r) AS ratingCount,
			     coalesce(avg(r.score), 0.0) AS avgRating
			RETURN ID(s) AS id, s.name AS name, followers, ratingCount, avgRating
		`
		res, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}

		var stats []domain.StoreStats
		for res.Next(ctx) {
			rec := res.Record()
			stats = append(stats, domain.StoreStats{
				StoreID:     recInt(rec, "id"),
				Name:        recString(rec, "name"),
				Followers:   recInt(rec, "followers"),
				RatingCount: recInt(rec, "ratingCount"),
				AvgRating:   recFloat(rec, "avgRating"),
			})
		}
		return stats, res.Err()
	})
	if err != nil {
		// surtout ne pas renvoyer un slice vide ici : "échec" ≠ "graphe vide"
		return nil, fmt.Errorf("popularity inputs: %w", err)
	}
	return result.([]domain.StoreStats), nil
}

func (r *Neo4jRepo) UserRating(ctx context.Context, userID, storeID int64) (int, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (u:User)-[r:RATED]->(s:Store)
			WHERE ID(u) = $uId AND ID(s) = $sId
			RETURN r.score AS score
		`
		res, err := tx.Run(ctx, query, map[string]any{"uId": userID, "sId": storeID})
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			return int(recInt(res.Record(), "score")), res.Err()
		}
		return DefaultUserRating, res.Err()
	})
	if err != nil {
		return 0, fmt.Errorf("user rating: %w", err)
	}
	return result.(int), nil
}

// --- helpers de conversion ---
// Les valeurs Neo4j arrivent en int64/float64/nil selon l'agrégat : on
// normalise UNE fois à la frontière, le core ne voit que des types nus.

func recInt(rec *neo4j.Record, key string) int64 {
	v, _ := rec.Get(key)
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func recFloat(rec *neo4j.Record, key string) float64 {
	v, _ := rec.Get(key)
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func recString(rec *neo4j.Record, key string) string {
	v, _ := rec.Get(key)
	s, _ := v.(string)
	return s
}
