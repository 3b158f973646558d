package repository

import (
	"context"
	"fmt"

	"github.com/jupiterclapton/plaza/internal/core/domain"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ToggleFollow bascule (u)-[FOLLOWS]->(s) dans UNE transaction d'écriture :
// le check et l'action partagent la même frontière transactionnelle, un
// double-clic concurrent ne peut pas créer deux arêtes ni en supprimer une
// inexistante.
func (r *SocialRepo) ToggleFollow(ctx context.Context, userID, storeID int64) (*domain.FollowResult, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	params := map[string]any{"uId": userID, "sId": storeID}

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		check, err := tx.Run(ctx,
			`MATCH (u:User)-[f:FOLLOWS]->(s:Store)
			 WHERE ID(u) = $uId AND ID(s) = $sId RETURN f`, params)
		if err != nil {
			return nil, err
		}

		if check.Next(ctx) {
			// --- UNFOLLOW ---
			if _, err := tx.Run(ctx,
				`MATCH (u:User)-[f:FOLLOWS]->(s:Store)
				 WHERE ID(u) = $uId AND ID(s) = $sId DELETE f`, params); err != nil {
				return nil, err
			}
			return &domain.FollowResult{Following: false}, nil
		}

		// --- FOLLOW --- MERGE + résolution du vendeur pour la notification
		res, err := tx.Run(ctx, `
			MATCH (u:User) WHERE ID(u) = $uId
			MATCH (s:Store) WHERE ID(s) = $sId
			MERGE (u)-[:FOLLOWS]->(s)
			WITH u, s
			OPTIONAL MATCH (v:User)-[:OWNS_STORE]->(s)
			RETURN u.username AS followerName, ID(v) AS vendorId, s.name AS storeName
		`, params)
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, domain.ErrNotFound // user ou store inexistant
		}
		rec := res.Record()
		out := &domain.FollowResult{
			Following:    true,
			FollowerName: recString(rec, "followerName"),
			StoreName:    recString(rec, "storeName"),
		}
		if v, ok := rec.Get("vendorId"); ok && v != nil {
			out.OwnerID = recInt(rec, "vendorId")
		}
		return out, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("toggle follow: %w", err)
	}
	return result.(*domain.FollowResult), nil
}

func (r *SocialRepo) FollowerIDs(ctx context.Context, storeID int64) ([]int64, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`MATCH (u:User)-[:FOLLOWS]->(s:Store) WHERE ID(s) = $sId RETURN ID(u) AS uId`,
			map[string]any{"sId": storeID})
		if err != nil {
			return nil, err
		}

		var ids []int64
		for res.Next(ctx) {
			ids = append(ids, recInt(res.Record(), "uId"))
		}
		return ids, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("follower ids: %w", err)
	}
	return result.([]int64), nil
}

// AddWish pose INTERESTED_IN (MERGE, idempotent) et résout le vendeur qui
// recevra l'alerte wishlist.
func (r *SocialRepo) AddWish(ctx context.Context, userID, productID int64) (*domain.WishResult, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (u:User) WHERE ID(u) = $uId
			MATCH (p:Product) WHERE ID(p) = $pId
			MERGE (u)-[:INTERESTED_IN]->(p)
			WITH u, p
			OPTIONAL MATCH (v:User)-[:OWNS_STORE]->(:Store)-[:HAS_PRODUCT]->(p)
			RETURN u.username AS fan, p.name AS pName, ID(v) AS vendorId
		`
		res, err := tx.Run(ctx, query, map[string]any{"uId": userID, "pId": productID})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, domain.ErrNotFound
		}
		rec := res.Record()
		out := &domain.WishResult{
			Username:    recString(rec, "fan"),
			ProductName: recString(rec, "pName"),
		}
		if v, ok := rec.Get("vendorId"); ok && v != nil {
			out.OwnerID = recInt(rec, "vendorId")
		}
		return out, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("add wish: %w", err)
	}
	return result.(*domain.WishResult), nil
}

func (r *SocialRepo) RemoveWish(ctx context.Context, userID, productID int64) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			`MATCH (u:User)-[w:INTERESTED_IN]->(p:Product)
			 WHERE ID(u) = $uId AND ID(p) = $pId DELETE w`,
			map[string]any{"uId": userID, "pId": productID})
		return nil, err
	})
	return err
}

func (r *SocialRepo) Wishlist(ctx context.Context, userID int64) ([]domain.Product, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`MATCH (u:User)-[:INTERESTED_IN]->(p:Product)
			 WHERE ID(u) = $uId RETURN p, ID(p) AS id`,
			map[string]any{"uId": userID})
		if err != nil {
			return nil, err
		}

		var products []domain.Product
		for res.Next(ctx) {
			rec := res.Record()
			p := productFromNode(rec, "p")
			p.ID = recInt(rec, "id")
			products = append(products, *p)
		}
		return products, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("wishlist: %w", err)
	}
	return result.([]domain.Product), nil
}
