package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/jupiterclapton/plaza/internal/core/domain"
	"github.com/jupiterclapton/plaza/internal/core/ports"
)

// TTL des caches ponctuels. Le leaderboard n'expire jamais : toujours
// reconstruit explicitement par le recompute.
const (
	ratingSummaryTTL = 600 * time.Second
	listingTTL       = 300 * time.Second
)

const suggestedLimit = 3

type StoreService struct {
	repo   ports.StoreRepository
	cache  ports.Cache
	events ports.EventPublisher
}

func NewStoreService(repo ports.StoreRepository, cache ports.Cache, events ports.EventPublisher) *StoreService {
	return &StoreService{repo: repo, cache: cache, events: events}
}

func (s *StoreService) Create(ctx context.Context, vendorID int64, in domain.StoreInput) (int64, error) {
	if vendorID <= 0 {
		return 0, domain.ErrInvalidID
	}
	id, err := s.repo.Create(ctx, vendorID, in)
	if err != nil {
		return 0, err
	}
	// le dashboard doit voir le nouveau store : on invalide via l'event
	s.publish(ctx, domain.Event{Kind: domain.EventStoreUpdated, StoreID: id})
	return id, nil
}

func (s *StoreService) Update(ctx context.Context, id int64, in domain.StoreInput) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	if err := s.repo.Update(ctx, id, in); err != nil {
		return err
	}
	s.publish(ctx, domain.Event{Kind: domain.EventStoreUpdated, StoreID: id})
	return nil
}

func (s *StoreService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, domain.Event{Kind: domain.EventStoreDeleted, StoreID: id})
	return nil
}

func (s *StoreService) Get(ctx context.Context, id, viewerID int64) (*domain.Store, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ByID(ctx, id, viewerID)
}

// List : cache-aside sur l'index des stores
func (s *StoreService) List(ctx context.Context) ([]domain.Store, error) {
	var cached []domain.Store
	if hit, err := s.cache.Get(ctx, domain.KeyStoreIndex, &cached); err == nil && hit {
		return cached, nil
	}

	stores, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	if len(stores) > 0 {
		if err := s.cache.Set(ctx, domain.KeyStoreIndex, stores, listingTTL); err != nil {
			slog.Warn("Store index cache write failed", "error", err)
		}
	}
	return stores, nil
}

func (s *StoreService) Suggested(ctx context.Context, userID int64) ([]domain.Store, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.repo.Suggested(ctx, userID, suggestedLimit)
}

func (s *StoreService) Products(ctx context.Context, storeID int64) ([]domain.Product, error) {
	return s.repo.Products(ctx, storeID)
}

func (s *StoreService) Categories(ctx context.Context, storeID int64) ([]domain.Category, error) {
	return s.repo.Categories(ctx, storeID)
}

func (s *StoreService) publish(ctx context.Context, ev domain.Event) {
	if err := s.events.Publish(ctx, ev); err != nil {
		slog.Error("❌ Event publish failed", "kind", ev.Kind, "error", err)
	}
}
