package repository

import (
	"context"
	"fmt"

	"github.com/jupiterclapton/plaza/internal/core/domain"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Create rattache le produit au store, à sa catégorie (MERGE, créée au besoin)
// et à sa marque, en une seule transaction.
func (r *ProductRepo) Create(ctx context.Context, storeID int64, in domain.ProductInput) (*domain.Product, string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	type created struct {
		product   *domain.Product
		storeName string
	}

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (s:Store) WHERE ID(s) = $sId
			MERGE (c:Category {name: $category})
			MERGE (s)-[:OFFERS_CATEGORY]->(c)
			MERGE (b:Brand {name: $brand})
			CREATE (p:Product {name: $name, price: $price, brand: $brand, type: $type, image: $image})
			CREATE (s)-[:HAS_PRODUCT]->(p)
			CREATE (p)-[:BELONGS_TO]->(c)
			CREATE (b)-[:HAS_PRODUCT]->(p)
			RETURN p, ID(p) AS id, c.name AS catName, s.name AS storeName
		`
		res, err := tx.Run(ctx, query, map[string]any{
			"sId": storeID, "name": in.Name, "price": in.Price, "brand": in.Brand,
			"type": in.Type, "image": in.Image, "category": in.Category,
		})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, domain.ErrNotFound // le store n'existe pas
		}
		rec := res.Record()
		p := productFromNode(rec, "p")
		p.ID = recInt(rec, "id")
		p.Category = recString(rec, "catName")
		return created{product: p, storeName: recString(rec, "storeName")}, res.Err()
	})
	if err != nil {
		return nil, "", fmt.Errorf("create product: %w", err)
	}
	c := result.(created)
	return c.product, c.storeName, nil
}

func (r *ProductRepo) Update(ctx context.Context, id int64, in domain.ProductInput) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (p:Product) WHERE ID(p) = $id
			SET p.name = $name, p.price = $price, p.brand = $brand
		`
		params := map[string]any{"id": id, "name": in.Name, "price": in.Price, "brand": in.Brand}
		if in.Image != "" {
			query += `, p.image = $image`
			params["image"] = in.Image
		}
		query += ` RETURN p`

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

// Delete retourne le nom du produit supprimé (les handlers le mettent dans la
// réponse, comme l'UI l'attend).
func (r *ProductRepo) Delete(ctx context.Context, id int64) (string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`MATCH (p:Product) WHERE ID(p) = $id RETURN p.name AS name`,
			map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, domain.ErrNotFound
		}
		name := recString(res.Record(), "name")

		if _, err := tx.Run(ctx,
			`MATCH (p:Product) WHERE ID(p) = $id DETACH DELETE p`,
			map[string]any{"id": id}); err != nil {
			return nil, err
		}
		return name, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (r *ProductRepo) LinkToStore(ctx context.Context, productID, storeID int64, price float64) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (p:Product), (s:Store)
			WHERE ID(p) = $pId AND ID(s) = $sId
			MERGE (s)-[r:HAS_PRODUCT]->(p)
			SET r.price = $price
			RETURN r
		`
		res, err := tx.Run(ctx, query, map[string]any{"pId": productID, "sId": storeID, "price": price})
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

func (r *ProductRepo) All(ctx context.Context) ([]domain.Product, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (p:Product)-[:BELONGS_TO]->(c:Category)
			RETURN p, ID(p) AS id, c.name AS catName
		`
		res, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}

		var products []domain.Product
		for res.Next(ctx) {
			rec := res.Record()
			p := productFromNode(rec, "p")
			p.ID = recInt(rec, "id")
			p.Category = recString(rec, "catName")
			products = append(products, *p)
		}
		return products, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return result.([]domain.Product), nil
}

func (r *ProductRepo) UpdateCategory(ctx context.Context, id int64, name string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`MATCH (c:Category) WHERE ID(c) = $id SET c.name = $name RETURN c`,
			map[string]any{"id": id, "name": name})
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

func (r *ProductRepo) DeleteCategory(ctx context.Context, id int64) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`MATCH (c:Category) WHERE ID(c) = $id RETURN c`,
			map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, domain.ErrNotFound
		}

		// DETACH : les produits perdent leur BELONGS_TO mais restent vendables
		if _, err := tx.Run(ctx,
			`MATCH (c:Category) WHERE ID(c) = $id DETACH DELETE c`,
			map[string]any{"id": id}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// ApplyDiscount vérifie le catalogue, MERGE la remise, et remonte les
// utilisateurs intéressés — tout en un aller-retour, le fan-out n'a plus
// besoin de requête.
func (r *ProductRepo) ApplyDiscount(ctx context.Context, storeID, productID int64, price float64) (*domain.DiscountFanout, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		check, err := tx.Run(ctx,
			`MATCH (s:Store)-[r:HAS_PRODUCT]->(p:Product)
			 WHERE ID(s) = $sId AND ID(p) = $pId RETURN r`,
			map[string]any{"sId": storeID, "pId": productID})
		if err != nil {
			return nil, err
		}
		if !check.Next(ctx) {
			return nil, domain.ErrNotInCatalog
		}

		query := `
			MATCH (s:Store), (p:Product)
			WHERE ID(s) = $sId AND ID(p) = $pId
			MERGE (s)-[d:HAS_DISCOUNT]->(p)
			SET d.price = $price, d.active = true
			WITH s, p
			OPTIONAL MATCH (u:User)-[:INTERESTED_IN]->(p)
			RETURN u.username AS username, ID(u) AS userId, p.name AS productName, s.name AS storeName
		`
		res, err := tx.Run(ctx, query, map[string]any{"sId": storeID, "pId": productID, "price": price})
		if err != nil {
			return nil, err
		}

		fanout := &domain.DiscountFanout{Price: price}
		for res.Next(ctx) {
			rec := res.Record()
			fanout.ProductName = recString(rec, "productName")
			fanout.StoreName = recString(rec, "storeName")
			if username := recString(rec, "username"); username != "" {
				fanout.Wishers = append(fanout.Wishers, domain.Wisher{
					UserID:   recInt(rec, "userId"),
					Username: username,
				})
			}
		}
		return fanout, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("apply discount: %w", err)
	}
	return result.(*domain.DiscountFanout), nil
}
