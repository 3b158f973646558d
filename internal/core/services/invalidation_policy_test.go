package services_test

import (
	"context"
	"slices"
	"testing"

	"github.com/jupiterclapton/plaza/internal/core/domain"
	"github.com/jupiterclapton/plaza/internal/core/services"
)

func newPolicy() (*services.Policy, *mockCache, *mockPopularity, *mockNotifier, *mockSocialRepo) {
	cache := &mockCache{}
	popularity := &mockPopularity{}
	notifier := &mockNotifier{}
	social := &mockSocialRepo{}
	return services.NewPolicy(cache, popularity, notifier, social), cache, popularity, notifier, social
}

func TestApply_RatingChanged_InvalidatesSummaryAndRecomputes(t *testing.T) {
	policy, cache, popularity, _, _ := newPolicy()

	ev := domain.Event{Kind: domain.EventRatingChanged, UserID: 1, StoreID: 9}
	if err := policy.Apply(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !slices.Contains(cache.deleted, domain.KeyRatingData(9)) {
		t.Errorf("expected %q invalidated, got %v", domain.KeyRatingData(9), cache.deleted)
	}
	if popularity.recomputes != 1 {
		t.Errorf("expected 1 recompute, got %d", popularity.recomputes)
	}
}

func TestApply_StoreFollowed_NotifiesOwnerAndRecomputes(t *testing.T) {
	policy, _, popularity, notifier, _ := newPolicy()

	ev := domain.Event{
		Kind: domain.EventStoreFollowed, UserID: 1, StoreID: 9,
		OwnerID: 33, Username: "alice", StoreName: "Corner Shop",
	}
	if err := policy.Apply(context.Background(), ev); err != nil {
		t.Fatal(err)
	}

	if popularity.recomputes != 1 {
		t.Errorf("expected 1 recompute, got %d", popularity.recomputes)
	}
	if len(notifier.notified) != 1 {
		t.Fatalf("expected owner notification, got %d", len(notifier.notified))
	}
	n := notifier.notified[0]
	if n.userID != 33 || n.typ != domain.NotifNewFollower {
		t.Errorf("unexpected notification: %+v", n)
	}
}

func TestApply_StoreFollowed_UnknownOwnerStillRecomputes(t *testing.T) {
	policy, _, popularity, notifier, _ := newPolicy()

	ev := domain.Event{Kind: domain.EventStoreFollowed, UserID: 1, StoreID: 9, OwnerID: 0}
	if err := policy.Apply(context.Background(), ev); err != nil {
		t.Fatal(err)
	}
	if len(notifier.notified) != 0 {
		t.Error("no notification expected when the owner is unresolved")
	}
	if popularity.recomputes != 1 {
		t.Errorf("expected 1 recompute, got %d", popularity.recomputes)
	}
}

func TestApply_Unfollow_OnlyRecomputes(t *testing.T) {
	policy, cache, popularity, notifier, _ := newPolicy()

	if err := policy.Apply(context.Background(), domain.Event{Kind: domain.EventStoreUnfollowed, StoreID: 9}); err != nil {
		t.Fatal(err)
	}
	if popularity.recomputes != 1 || len(notifier.notified) != 0 || len(cache.deleted) != 0 {
		t.Errorf("unfollow must only recompute: recomputes=%d notified=%d deleted=%v",
			popularity.recomputes, len(notifier.notified), cache.deleted)
	}
}

func TestApply_DiscountCreated_FansOutToWishers(t *testing.T) {
	policy, cache, _, notifier, _ := newPolicy()

	ev := domain.Event{
		Kind: domain.EventDiscountCreated, StoreID: 9, ProductID: 4,
		ProductName: "Keyboard", StoreName: "Corner Shop", Price: 19.99,
		Wishers: []domain.Wisher{
			{UserID: 10, Username: "a"},
			{UserID: 11, Username: "b"},
			{UserID: 12, Username: "c"},
		},
	}
	if err := policy.Apply(context.Background(), ev); err != nil {
		t.Fatal(err)
	}

	if !slices.Contains(cache.deleted, domain.KeyProductPrice(4)) ||
		!slices.Contains(cache.deleted, domain.KeyStoreDiscounts(9)) {
		t.Errorf("expected price + discount keys invalidated, got %v", cache.deleted)
	}
	if len(notifier.notified) != 3 {
		t.Fatalf("expected 3 wishers notified, got %d", len(notifier.notified))
	}
	got := make([]int64, 0, 3)
	for _, n := range notifier.notified {
		if n.typ != domain.NotifDiscount {
			t.Errorf("expected discount type, got %q", n.typ)
		}
		got = append(got, n.userID)
	}
	slices.Sort(got)
	if !slices.Equal(got, []int64{10, 11, 12}) {
		t.Errorf("unexpected recipients: %v", got)
	}
}

func TestApply_DiscountCreated_NoWishersIsNoop(t *testing.T) {
	policy, _, _, notifier, _ := newPolicy()

	ev := domain.Event{Kind: domain.EventDiscountCreated, StoreID: 9, ProductID: 4}
	if err := policy.Apply(context.Background(), ev); err != nil {
		t.Fatal(err)
	}
	if len(notifier.notified) != 0 {
		t.Errorf("no fan-out expected without wishers, got %d", len(notifier.notified))
	}
}

func TestApply_ProductCreated_NotifiesFollowers(t *testing.T) {
	policy, cache, _, notifier, social := newPolicy()
	social.followersFn = func(ctx context.Context, storeID int64) ([]int64, error) {
		return []int64{5, 6}, nil
	}

	ev := domain.Event{
		Kind: domain.EventProductCreated, StoreID: 9,
		ProductName: "Mug", StoreName: "Corner Shop",
	}
	if err := policy.Apply(context.Background(), ev); err != nil {
		t.Fatal(err)
	}

	if !slices.Contains(cache.deleted, domain.KeyStoreIndex) ||
		!slices.Contains(cache.deleted, domain.KeyProdIndex) {
		t.Errorf("expected listing indexes invalidated, got %v", cache.deleted)
	}
	if len(notifier.notified) != 2 {
		t.Fatalf("expected 2 followers notified, got %d", len(notifier.notified))
	}
	for _, n := range notifier.notified {
		if n.typ != domain.NotifNewProduct {
			t.Errorf("expected new_product type, got %q", n.typ)
		}
	}
}

func TestApply_ProductUpdated_OnlyInvalidates(t *testing.T) {
	policy, cache, popularity, notifier, _ := newPolicy()

	if err := policy.Apply(context.Background(), domain.Event{Kind: domain.EventProductUpdated, ProductID: 4}); err != nil {
		t.Fatal(err)
	}
	if popularity.recomputes != 0 || len(notifier.notified) != 0 {
		t.Error("product update must not recompute nor notify")
	}
	if !slices.Contains(cache.deleted, domain.KeyProdIndex) {
		t.Errorf("expected product index invalidated, got %v", cache.deleted)
	}
}

func TestApply_WishlistAdded_InvalidatesAndAlertsOwner(t *testing.T) {
	policy, cache, _, notifier, _ := newPolicy()

	ev := domain.Event{
		Kind: domain.EventWishlistAdded, UserID: 2, ProductID: 4,
		OwnerID: 33, Username: "alice", ProductName: "Mug",
	}
	if err := policy.Apply(context.Background(), ev); err != nil {
		t.Fatal(err)
	}

	if !slices.Contains(cache.deleted, domain.KeyWishlist(2)) {
		t.Errorf("expected wishlist key invalidated, got %v", cache.deleted)
	}
	if len(notifier.notified) != 1 || notifier.notified[0].typ != domain.NotifWishlistAlert {
		t.Errorf("expected wishlist alert to owner, got %+v", notifier.notified)
	}
}

func TestApply_CategoryChanged_DropsTheCategoryIndex(t *testing.T) {
	policy, cache, popularity, notifier, _ := newPolicy()

	if err := policy.Apply(context.Background(), domain.Event{Kind: domain.EventCategoryChanged}); err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(cache.deleted, domain.KeyCatIndex) {
		t.Errorf("expected category index invalidated, got %v", cache.deleted)
	}
	if popularity.recomputes != 0 || len(notifier.notified) != 0 {
		t.Error("category change must neither recompute nor notify")
	}
}

func TestApply_UnknownKindIsIgnored(t *testing.T) {
	policy, cache, popularity, notifier, _ := newPolicy()

	if err := policy.Apply(context.Background(), domain.Event{Kind: "totally.unknown"}); err != nil {
		t.Fatalf("unknown kinds must not error: %v", err)
	}
	if popularity.recomputes != 0 || len(notifier.notified) != 0 || len(cache.deleted) != 0 {
		t.Error("unknown kind must be a no-op")
	}
}
