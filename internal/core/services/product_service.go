package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jupiterclapton/plaza/internal/core/domain"
	"github.com/jupiterclapton/plaza/internal/core/ports"
)

type ProductService struct {
	repo   ports.ProductRepository
	cache  ports.Cache
	events ports.EventPublisher
}

func NewProductService(repo ports.ProductRepository, cache ports.Cache, events ports.EventPublisher) *ProductService {
	return &ProductService{repo: repo, cache: cache, events: events}
}

func (s *ProductService) Create(ctx context.Context, storeID int64, in domain.ProductInput) (*domain.Product, error) {
	if storeID <= 0 {
		return nil, domain.ErrInvalidID
	}
	if in.Type == "" {
		in.Type = "General"
	}

	product, storeName, err := s.repo.Create(ctx, storeID, in)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.Event{
		Kind:        domain.EventProductCreated,
		StoreID:     storeID,
		ProductID:   product.ID,
		StoreName:   storeName,
		ProductName: product.Name,
	})
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, in domain.ProductInput) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	if err := s.repo.Update(ctx, id, in); err != nil {
		return err
	}

	s.publish(ctx, domain.Event{Kind: domain.EventProductUpdated, ProductID: id})
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	name, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.publish(ctx, domain.Event{Kind: domain.EventProductDeleted, ProductID: id, ProductName: name})
	return nil
}

func (s *ProductService) LinkToStore(ctx context.Context, productID, storeID int64, price float64) error {
	if productID <= 0 || storeID <= 0 {
		return domain.ErrInvalidID
	}
	return s.repo.LinkToStore(ctx, productID, storeID, price)
}

// List : cache-aside sur l'index produits
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	var cached []domain.Product
	if hit, err := s.cache.Get(ctx, domain.KeyProdIndex, &cached); err == nil && hit {
		return cached, nil
	}

	products, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	if len(products) > 0 {
		if err := s.cache.Set(ctx, domain.KeyProdIndex, products, listingTTL); err != nil {
			slog.Warn("Product index cache write failed", "error", err)
		}
	}
	return products, nil
}

// ApplyDiscount active la remise puis émet l'event avec les wishers déjà
// résolus par la mutation. Renvoie le nombre de destinataires du fan-out.
func (s *ProductService) ApplyDiscount(ctx context.Context, storeID, productID int64, price float64) (int, error) {
	if storeID <= 0 || productID <= 0 {
		return 0, domain.ErrInvalidID
	}

	fanout, err := s.repo.ApplyDiscount(ctx, storeID, productID, price)
	if err != nil {
		return 0, err
	}

	s.publish(ctx, domain.Event{
		Kind:        domain.EventDiscountCreated,
		StoreID:     storeID,
		ProductID:   productID,
		StoreName:   fanout.StoreName,
		ProductName: fanout.ProductName,
		Price:       price,
		Wishers:     fanout.Wishers,
	})
	return len(fanout.Wishers), nil
}

func (s *ProductService) UpdateCategory(ctx context.Context, id int64, name string) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	if name == "" {
		return fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
	}
	if err := s.repo.UpdateCategory(ctx, id, name); err != nil {
		return err
	}

	s.publish(ctx, domain.Event{Kind: domain.EventCategoryChanged})
	return nil
}

func (s *ProductService) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, domain.Event{Kind: domain.EventCategoryChanged})
	return nil
}

func (s *ProductService) publish(ctx context.Context, ev domain.Event) {
	if err := s.events.Publish(ctx, ev); err != nil {
		slog.Error("❌ Event publish failed", "kind", ev.Kind, "error", err)
	}
}
