package repository

import (
	"context"
	"fmt"

	"github.com/jupiterclapton/plaza/internal/core/domain"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Upsert : MERGE garantit au plus UNE arête RATED par paire (user, store).
// Re-noter écrase le score en place, jamais de doublon.
func (r *RatingRepo) Upsert(ctx context.Context, userID, storeID int64, score int) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (u:User), (s:Store)
			WHERE ID(u) = $uId AND ID(s) = $sId
			MERGE (u)-[r:RATED]->(s)
			SET r.score = $score, r.timestamp = timestamp()
		`
		_, err := tx.Run(ctx, query, map[string]any{"uId": userID, "sId": storeID, "score": score})
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

func (r *RatingRepo) Delete(ctx context.Context, userID, storeID int64) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (u:User)-[r:RATED]->(s:Store)
			WHERE ID(u) = $uId AND ID(s) = $sId
			DELETE r
		`
		_, err := tx.Run(ctx, query, map[string]any{"uId": userID, "sId": storeID})
		return nil, err
	})
	return err
}

func (r *RatingRepo) Summary(ctx context.Context, storeID int64) (*domain.RatingSummary, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (s:Store) WHERE ID(s) = $sId
			OPTIONAL MATCH (:User)-[r:RATED]->(s)
			RETURN coalesce(avg(r.score), 0.0) AS average, count(r) AS cnt
		`
		res, err := tx.Run(ctx, query, map[string]any{"sId": storeID})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, domain.ErrNotFound
		}
		rec := res.Record()
		return &domain.RatingSummary{
			StoreID:       storeID,
			AverageRating: recFloat(rec, "average"),
			Count:         recInt(rec, "cnt"),
			Source:        "db",
		}, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("rating summary: %w", err)
	}
	return result.(*domain.RatingSummary), nil
}

func (r *RatingRepo) ForStore(ctx context.Context, storeID int64) ([]domain.StoreRating, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (u:User)-[r:RATED]->(s:Store)
			WHERE ID(s) = $sId
			RETURN u.username AS user, r.score AS score
		`
		res, err := tx.Run(ctx, query, map[string]any{"sId": storeID})
		if err != nil {
			return nil, err
		}

		var ratings []domain.StoreRating
		for res.Next(ctx) {
			rec := res.Record()
			ratings = append(ratings, domain.StoreRating{
				User:  recString(rec, "user"),
				Score: int(recInt(rec, "score")),
			})
		}
		return ratings, res.Err()
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.StoreRating), nil
}
