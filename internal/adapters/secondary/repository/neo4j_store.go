package repository

import (
	"context"
	"fmt"

	"github.com/jupiterclapton/plaza/internal/core/domain"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

func (r *StoreRepo) Create(ctx context.Context, vendorID int64, in domain.StoreInput) (int64, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (u:User) WHERE ID(u) = $vId
			CREATE (s:Store {name: $name, address: $address, city: $city, logo: $logo, vendorId: $vId})
			CREATE (u)-[:OWNS_STORE]->(s)
			RETURN ID(s) AS id
		`
		res, err := tx.Run(ctx, query, map[string]any{
			"vId": vendorID, "name": in.Name, "address": in.Address, "city": in.City, "logo": in.Logo,
		})
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			return recInt(res.Record(), "id"), res.Err()
		}
		return nil, domain.ErrNotFound // le vendeur n'existe pas
	})
	if err != nil {
		return 0, fmt.Errorf("create store: %w", err)
	}
	return result.(int64), nil
}

func (r *StoreRepo) Update(ctx context.Context, id int64, in domain.StoreInput) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (s:Store) WHERE ID(s) = $id
			SET s.name = $name, s.city = $city, s.address = $address
		`
		params := map[string]any{"id": id, "name": in.Name, "city": in.City, "address": in.Address}
		if in.Logo != "" {
			query += `, s.logo = $logo`
			params["logo"] = in.Logo
		}
		query += ` RETURN s`

		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, domain.ErrNotFound
		}
		return nil, res.Err()
	})
	return err
}

// Delete supprime le store ET ses produits (DETACH), comme le ferait une
// cascade : un produit orphelin ne doit pas traîner dans le graphe.
func (r *StoreRepo) Delete(ctx context.Context, id int64) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (s:Store) WHERE ID(s) = $id
			OPTIONAL MATCH (s)-[:HAS_PRODUCT]->(p:Product)
			DETACH DELETE p, s
		`
		_, err := tx.Run(ctx, query, map[string]any{"id": id})
		return nil, err
	})
	return err
}

func (r *StoreRepo) ByID(ctx context.Context, id, viewerID int64) (*domain.Store, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (s:Store) WHERE ID(s) = $id
			OPTIONAL MATCH (:User)-[r:RATED]->(s)
			OPTIONAL MATCH (fAll:User)-[:FOLLOWS]->(s)
			OPTIONAL MATCH (u:User)-[f:FOLLOWS]->(s) WHERE ID(u) = $uId
			RETURN s, ID(s) AS id,
			       coalesce(avg(r.score), 0.0) AS averageRating,
			       count(DISTINCT r) AS ratingCount,
			       count(DISTINCT fAll) AS followers,
			       count(f) > 0 AS isFollowing
		`
		res, err := tx.Run(ctx, query, map[string]any{"id": id, "uId": viewerID})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, domain.ErrNotFound
		}
		rec := res.Record()
		store := storeFromNode(rec, "s")
		store.ID = recInt(rec, "id")
		store.AverageRating = recFloat(rec, "averageRating")
		store.RatingCount = recInt(rec, "ratingCount")
		store.Followers = recInt(rec, "followers")
		if v, ok := rec.Get("isFollowing"); ok {
			store.IsFollowing, _ = v.(bool)
		}
		return store, res.Err()
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Store), nil
}

func (r *StoreRepo) All(ctx context.Context) ([]domain.Store, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (u:User)-[:OWNS_STORE]->(s:Store)
			OPTIONAL MATCH (s)-[:HAS_PRODUCT]->(p:Product)
			OPTIONAL MATCH (:User)-[r:RATED]->(s)
			RETURN s, ID(s) AS id, ID(u) AS ownerId,
			       count(DISTINCT p) AS productCount,
			       coalesce(avg(r.score), 0.0) AS averageRating,
			       count(DISTINCT r) AS ratingCount
		`
		res, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}

		var stores []domain.Store
		for res.Next(ctx) {
			rec := res.Record()
			store := storeFromNode(rec, "s")
			store.ID = recInt(rec, "id")
			store.VendorID = recInt(rec, "ownerId")
			store.ProductCount = recInt(rec, "productCount")
			store.AverageRating = recFloat(rec, "averageRating")
			store.RatingCount = recInt(rec, "ratingCount")
			stores = append(stores, *store)
		}
		return stores, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return result.([]domain.Store), nil
}

// Suggested : filtrage collaboratif naïf — les gens qui veulent les mêmes
// produits que toi suivent des stores que tu ne suis pas encore.
func (r *StoreRepo) Suggested(ctx context.Context, userID int64, limit int) ([]domain.Store, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (u:User)-[:INTERESTED_IN]->(p:Product)<-[:INTERESTED_IN]-(other:User)
			WHERE ID(u) = $uId AND u <> other
			MATCH (other)-[:FOLLOWS]->(sug:Store)
			WHERE NOT (u)-[:FOLLOWS]->(sug)
			RETURN DISTINCT sug AS s, ID(sug) AS id LIMIT $limit
		`
		res, err := tx.Run(ctx, query, map[string]any{"uId": userID, "limit": limit})
		if err != nil {
			return nil, err
		}

		var stores []domain.Store
		for res.Next(ctx) {
			rec := res.Record()
			store := storeFromNode(rec, "s")
			store.ID = recInt(rec, "id")
			stores = append(stores, *store)
		}
		return stores, res.Err()
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Store), nil
}

func (r *StoreRepo) Products(ctx context.Context, storeID int64) ([]domain.Product, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (s:Store)-[:HAS_PRODUCT]->(p:Product)
			WHERE ID(s) = $id
			OPTIONAL MATCH (p)-[:BELONGS_TO]->(c:Category)
			RETURN p, ID(p) AS id, c.name AS categoryName
		`
		res, err := tx.Run(ctx, query, map[string]any{"id": storeID})
		if err != nil {
			return nil, err
		}

		var products []domain.Product
		for res.Next(ctx) {
			rec := res.Record()
			p := productFromNode(rec, "p")
			p.ID = recInt(rec, "id")
			if p.Category = recString(rec, "categoryName"); p.Category == "" {
				p.Category = "Other"
			}
			products = append(products, *p)
		}
		return products, res.Err()
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Product), nil
}

func (r *StoreRepo) Categories(ctx context.Context, storeID int64) ([]domain.Category, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (s:Store)-[:OFFERS_CATEGORY]->(c:Category)
			WHERE ID(s) = $id
			RETURN c.name AS name, ID(c) AS id
		`
		res, err := tx.Run(ctx, query, map[string]any{"id": storeID})
		if err != nil {
			return nil, err
		}

		var cats []domain.Category
		for res.Next(ctx) {
			rec := res.Record()
			cats = append(cats, domain.Category{ID: recInt(rec, "id"), Name: recString(rec, "name")})
		}
		return cats, res.Err()
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Category), nil
}

// --- extraction de noeuds ---

func nodeProps(rec *neo4j.Record, key string) map[string]any {
	v, ok := rec.Get(key)
	if !ok {
		return nil
	}
	node, ok := v.(neo4j.Node)
	if !ok {
		return nil
	}
	return node.Props
}

func storeFromNode(rec *neo4j.Record, key string) *domain.Store {
	props := nodeProps(rec, key)
	s := &domain.Store{}
	if v, ok := props["name"].(string); ok {
		s.Name = v
	}
	if v, ok := props["address"].(string); ok {
		s.Address = v
	}
	if v, ok := props["city"].(string); ok {
		s.City = v
	}
	if v, ok := props["logo"].(string); ok {
		s.Logo = v
	}
	if v, ok := props["vendorId"].(int64); ok {
		s.VendorID = v
	}
	return s
}

func productFromNode(rec *neo4j.Record, key string) *domain.Product {
	props := nodeProps(rec, key)
	p := &domain.Product{}
	if v, ok := props["name"].(string); ok {
		p.Name = v
	}
	if v, ok := props["brand"].(string); ok {
		p.Brand = v
	}
	if v, ok := props["type"].(string); ok {
		p.Type = v
	}
	if v, ok := props["image"].(string); ok {
		p.Image = v
	}
	switch price := props["price"].(type) {
	case float64:
		p.Price = price
	case int64:
		p.Price = float64(price)
	}
	return p
}
