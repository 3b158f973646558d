package services

import (
	"context"
	"log/slog"

	"github.com/jupiterclapton/plaza/internal/core/domain"
	"github.com/jupiterclapton/plaza/internal/core/ports"
)

type SocialService struct {
	repo   ports.SocialRepository
	cache  ports.Cache
	events ports.EventPublisher
}

func NewSocialService(repo ports.SocialRepository, cache ports.Cache, events ports.EventPublisher) *SocialService {
	return &SocialService{repo: repo, cache: cache, events: events}
}

// ToggleFollow bascule le suivi et émet l'event correspondant : le follow
// porte de quoi notifier le vendeur, l'unfollow ne porte que le trigger de
// re-rank. Renvoie l'état APRÈS bascule.
func (s *SocialService) ToggleFollow(ctx context.Context, userID, storeID int64) (bool, error) {
	if userID <= 0 || storeID <= 0 {
		return false, domain.ErrInvalidID
	}

	res, err := s.repo.ToggleFollow(ctx, userID, storeID)
	if err != nil {
		return false, err
	}

	if res.Following {
		s.publish(ctx, domain.Event{
			Kind:      domain.EventStoreFollowed,
			UserID:    userID,
			StoreID:   storeID,
			OwnerID:   res.OwnerID,
			Username:  res.FollowerName,
			StoreName: res.StoreName,
		})
	} else {
		s.publish(ctx, domain.Event{Kind: domain.EventStoreUnfollowed, UserID: userID, StoreID: storeID})
	}
	return res.Following, nil
}

func (s *SocialService) AddToWishlist(ctx context.Context, userID, productID int64) error {
	if userID <= 0 || productID <= 0 {
		return domain.ErrInvalidID
	}

	res, err := s.repo.AddWish(ctx, userID, productID)
	if err != nil {
		return err
	}

	s.publish(ctx, domain.Event{
		Kind:        domain.EventWishlistAdded,
		UserID:      userID,
		ProductID:   productID,
		OwnerID:     res.OwnerID,
		Username:    res.Username,
		ProductName: res.ProductName,
	})
	return nil
}

func (s *SocialService) RemoveFromWishlist(ctx context.Context, userID, productID int64) error {
	if userID <= 0 || productID <= 0 {
		return domain.ErrInvalidID
	}
	if err := s.repo.RemoveWish(ctx, userID, productID); err != nil {
		return err
	}

	s.publish(ctx, domain.Event{Kind: domain.EventWishlistRemoved, UserID: userID, ProductID: productID})
	return nil
}

// Wishlist : cache-aside sur wishlist:{userId}
func (s *SocialService) Wishlist(ctx context.Context, userID int64) ([]domain.Product, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidID
	}
	key := domain.KeyWishlist(userID)

	var cached []domain.Product
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	products, err := s.repo.Wishlist(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(products) > 0 {
		if err := s.cache.Set(ctx, key, products, listingTTL); err != nil {
			slog.Warn("Wishlist cache write failed", "user_id", userID, "error", err)
		}
	}
	return products, nil
}

func (s *SocialService) publish(ctx context.Context, ev domain.Event) {
	if err := s.events.Publish(ctx, ev); err != nil {
		slog.Error("❌ Event publish failed", "kind", ev.Kind, "error", err)
	}
}
