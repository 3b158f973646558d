package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jupiterclapton/plaza/internal/core/domain"
	"github.com/jupiterclapton/plaza/internal/core/services"
)

func TestToggleFollow_FollowCarriesNotificationContext(t *testing.T) {
	social := &mockSocialRepo{toggleFn: func(ctx context.Context, userID, storeID int64) (*domain.FollowResult, error) {
		return &domain.FollowResult{Following: true, FollowerName: "alice", StoreName: "Corner Shop", OwnerID: 33}, nil
	}}
	pub := &mockPublisher{}
	svc := services.NewSocialService(social, &mockCache{}, pub)

	following, err := svc.ToggleFollow(context.Background(), 1, 9)
	if err != nil {
		t.Fatal(err)
	}
	if !following {
		t.Error("expected following=true after first toggle")
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.published))
	}
	ev := pub.published[0]
	if ev.Kind != domain.EventStoreFollowed || ev.OwnerID != 33 || ev.Username != "alice" {
		t.Errorf("follow event missing notification context: %+v", ev)
	}
}

func TestToggleFollow_UnfollowEmitsBareTrigger(t *testing.T) {
	social := &mockSocialRepo{toggleFn: func(ctx context.Context, userID, storeID int64) (*domain.FollowResult, error) {
		return &domain.FollowResult{Following: false}, nil
	}}
	pub := &mockPublisher{}
	svc := services.NewSocialService(social, &mockCache{}, pub)

	following, err := svc.ToggleFollow(context.Background(), 1, 9)
	if err != nil {
		t.Fatal(err)
	}
	if following {
		t.Error("expected following=false after unfollow")
	}
	if len(pub.published) != 1 || pub.published[0].Kind != domain.EventStoreUnfollowed {
		t.Errorf("expected store.unfollowed, got %+v", pub.published)
	}
}

func TestToggleFollow_RepoErrorPublishesNothing(t *testing.T) {
	social := &mockSocialRepo{toggleFn: func(ctx context.Context, userID, storeID int64) (*domain.FollowResult, error) {
		return nil, errors.New("bolt timeout")
	}}
	pub := &mockPublisher{}
	svc := services.NewSocialService(social, &mockCache{}, pub)

	if _, err := svc.ToggleFollow(context.Background(), 1, 9); err == nil {
		t.Fatal("expected error")
	}
	if len(pub.published) != 0 {
		t.Error("no event must be published when the mutation failed")
	}
}

func TestAddToWishlist_PublishesOwnerAlertContext(t *testing.T) {
	social := &mockSocialRepo{addWishFn: func(ctx context.Context, userID, productID int64) (*domain.WishResult, error) {
		return &domain.WishResult{OwnerID: 33, Username: "alice", ProductName: "Mug"}, nil
	}}
	pub := &mockPublisher{}
	svc := services.NewSocialService(social, &mockCache{}, pub)

	if err := svc.AddToWishlist(context.Background(), 2, 4); err != nil {
		t.Fatal(err)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.published))
	}
	ev := pub.published[0]
	if ev.Kind != domain.EventWishlistAdded || ev.OwnerID != 33 || ev.ProductName != "Mug" {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestWishlist_RejectsInvalidID(t *testing.T) {
	svc := services.NewSocialService(&mockSocialRepo{}, &mockCache{}, &mockPublisher{})
	if _, err := svc.Wishlist(context.Background(), 0); !errors.Is(err, domain.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}
