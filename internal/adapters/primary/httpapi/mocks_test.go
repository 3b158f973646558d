package httpapi_test

import (
	"context"
	"time"

	"github.com/jupiterclapton/plaza/internal/core/domain"
)

// Fakes minces : chaque méthode délègue à un champ fn, nil = zéro valeurs.

type fakeStores struct {
	getFn  func(ctx context.Context, id, viewerID int64) (*domain.Store, error)
	listFn func(ctx context.Context) ([]domain.Store, error)
}

func (f *fakeStores) Create(ctx context.Context, vendorID int64, in domain.StoreInput) (int64, error) {
	return 0, nil
}
func (f *fakeStores) Update(ctx context.Context, id int64, in domain.StoreInput) error { return nil }
func (f *fakeStores) Delete(ctx context.Context, id int64) error                       { return nil }

func (f *fakeStores) Get(ctx context.Context, id, viewerID int64) (*domain.Store, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id, viewerID)
	}
	return &domain.Store{ID: id}, nil
}

func (f *fakeStores) List(ctx context.Context) ([]domain.Store, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeStores) Suggested(ctx context.Context, userID int64) ([]domain.Store, error) {
	return nil, nil
}

func (f *fakeStores) Products(ctx context.Context, storeID int64) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeStores) Categories(ctx context.Context, storeID int64) ([]domain.Category, error) {
	return nil, nil
}

type fakeProducts struct{}

func (f *fakeProducts) Create(ctx context.Context, storeID int64, in domain.ProductInput) (*domain.Product, error) {
	return &domain.Product{}, nil
}
func (f *fakeProducts) Update(ctx context.Context, id int64, in domain.ProductInput) error {
	return nil
}
func (f *fakeProducts) Delete(ctx context.Context, id int64) error { return nil }
func (f *fakeProducts) LinkToStore(ctx context.Context, productID, storeID int64, price float64) error {
	return nil
}
func (f *fakeProducts) List(ctx context.Context) ([]domain.Product, error) { return nil, nil }
func (f *fakeProducts) ApplyDiscount(ctx context.Context, storeID, productID int64, price float64) (int, error) {
	return 0, nil
}
func (f *fakeProducts) UpdateCategory(ctx context.Context, id int64, name string) error { return nil }
func (f *fakeProducts) DeleteCategory(ctx context.Context, id int64) error              { return nil }

type fakeRatings struct {
	rateFn func(ctx context.Context, userID, storeID int64, score int) error
}

func (f *fakeRatings) Rate(ctx context.Context, userID, storeID int64, score int) error {
	if f.rateFn != nil {
		return f.rateFn(ctx, userID, storeID, score)
	}
	return nil
}
func (f *fakeRatings) Remove(ctx context.Context, userID, storeID int64) error { return nil }
func (f *fakeRatings) Summary(ctx context.Context, storeID int64) (*domain.RatingSummary, error) {
	return &domain.RatingSummary{StoreID: storeID}, nil
}
func (f *fakeRatings) UserScore(ctx context.Context, userID, storeID int64) (int, error) {
	return 5, nil
}
func (f *fakeRatings) ForStore(ctx context.Context, storeID int64) ([]domain.StoreRating, error) {
	return nil, nil
}

type fakeSocial struct {
	wishlistCalls int
}

func (f *fakeSocial) ToggleFollow(ctx context.Context, userID, storeID int64) (bool, error) {
	return true, nil
}
func (f *fakeSocial) AddToWishlist(ctx context.Context, userID, productID int64) error { return nil }
func (f *fakeSocial) RemoveFromWishlist(ctx context.Context, userID, productID int64) error {
	return nil
}

func (f *fakeSocial) Wishlist(ctx context.Context, userID int64) ([]domain.Product, error) {
	f.wishlistCalls++
	return nil, nil
}

type fakePopularity struct {
	topFn func(ctx context.Context, n int) ([]domain.LeaderboardEntry, error)
}

func (f *fakePopularity) Recompute(ctx context.Context) error { return nil }

func (f *fakePopularity) Top(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	if f.topFn != nil {
		return f.topFn(ctx, n)
	}
	return nil, nil
}

func (f *fakePopularity) Featured(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	return nil, nil
}

// No-ops pour monter un vrai service du core derrière le routeur.

type nopRatingRepo struct{}

func (nopRatingRepo) Upsert(ctx context.Context, userID, storeID int64, score int) error { return nil }
func (nopRatingRepo) Delete(ctx context.Context, userID, storeID int64) error            { return nil }
func (nopRatingRepo) Summary(ctx context.Context, storeID int64) (*domain.RatingSummary, error) {
	return &domain.RatingSummary{StoreID: storeID}, nil
}

func (nopRatingRepo) ForStore(ctx context.Context, storeID int64) ([]domain.StoreRating, error) {
	return nil, nil
}

type nopCache struct{}

func (nopCache) Get(ctx context.Context, key string, dest any) (bool, error) { return false, nil }
func (nopCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}
func (nopCache) Del(ctx context.Context, keys ...string) error { return nil }

type nopPublisher struct{}

func (nopPublisher) Publish(ctx context.Context, ev domain.Event) error { return nil }

type fakeNotifications struct{}

func (f *fakeNotifications) Notify(ctx context.Context, recipientID int64, message, typ string) error {
	return nil
}
func (f *fakeNotifications) Broadcast(event string, payload any) {}
func (f *fakeNotifications) Recent(ctx context.Context, recipientID int64) ([]domain.Notification, error) {
	return nil, nil
}
func (f *fakeNotifications) MarkAllRead(ctx context.Context, recipientID int64) error { return nil }
func (f *fakeNotifications) Clear(ctx context.Context, recipientID int64) error       { return nil }
