package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/jupiterclapton/plaza/internal/core/domain"
)

// mockGraph implements ports.GraphStore for testing.
type mockGraph struct {
	statsFn      func(ctx context.Context) ([]domain.StoreStats, error)
	userRatingFn func(ctx context.Context, userID, storeID int64) (int, error)
	statsCalls   int
}

func (m *mockGraph) StorePopularityInputs(ctx context.Context) ([]domain.StoreStats, error) {
	m.statsCalls++
	return m.statsFn(ctx)
}

func (m *mockGraph) UserRating(ctx context.Context, userID, storeID int64) (int, error) {
	return m.userRatingFn(ctx, userID, storeID)
}

// mockBoard implements ports.Leaderboard for testing.
type mockBoard struct {
	replaceFn func(ctx context.Context, entries []domain.LeaderboardEntry) error
	topNFn    func(ctx context.Context, n int) ([]domain.LeaderboardEntry, error)

	replaced [][]domain.LeaderboardEntry // chaque génération écrite, dans l'ordre
}

func (m *mockBoard) ReplaceAll(ctx context.Context, entries []domain.LeaderboardEntry) error {
	m.replaced = append(m.replaced, entries)
	if m.replaceFn != nil {
		return m.replaceFn(ctx, entries)
	}
	return nil
}

func (m *mockBoard) TopN(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	if m.topNFn != nil {
		return m.topNFn(ctx, n)
	}
	return nil, nil
}

// mockCache implements ports.Cache for testing.
type mockCache struct {
	getFn func(ctx context.Context, key string, dest any) (bool, error)
	setFn func(ctx context.Context, key string, value any, ttl time.Duration) error

	mu      sync.Mutex
	deleted []string
	setKeys []string
}

func (m *mockCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key, dest)
	}
	return false, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	m.setKeys = append(m.setKeys, key)
	m.mu.Unlock()
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockCache) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	m.deleted = append(m.deleted, keys...)
	m.mu.Unlock()
	return nil
}

// mockNotifStore implements ports.NotificationStore for testing.
type mockNotifStore struct {
	pushFn   func(ctx context.Context, userID int64, n domain.Notification) error
	recentFn func(ctx context.Context, userID int64, limit int64) ([]domain.Notification, error)

	mu     sync.Mutex
	pushed []domain.Notification
}

func (m *mockNotifStore) Push(ctx context.Context, userID int64, n domain.Notification) error {
	m.mu.Lock()
	m.pushed = append(m.pushed, n)
	m.mu.Unlock()
	if m.pushFn != nil {
		return m.pushFn(ctx, userID, n)
	}
	return nil
}

func (m *mockNotifStore) Recent(ctx context.Context, userID int64, limit int64) ([]domain.Notification, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockNotifStore) MarkAllRead(ctx context.Context, userID int64) error { return nil }
func (m *mockNotifStore) Clear(ctx context.Context, userID int64) error       { return nil }

// mockPush implements ports.PushChannel for testing.
type mockPush struct {
	mu     sync.Mutex
	emits  []pushEmit
	bcasts []pushEmit
}

type pushEmit struct {
	userID  int64
	event   string
	payload any
}

func (m *mockPush) EmitToUser(userID int64, event string, payload any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emits = append(m.emits, pushEmit{userID: userID, event: event, payload: payload})
}

func (m *mockPush) BroadcastAll(event string, payload any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bcasts = append(m.bcasts, pushEmit{event: event, payload: payload})
}

// mockPublisher implements ports.EventPublisher for testing.
type mockPublisher struct {
	publishFn func(ctx context.Context, ev domain.Event) error
	published []domain.Event
}

func (m *mockPublisher) Publish(ctx context.Context, ev domain.Event) error {
	m.published = append(m.published, ev)
	if m.publishFn != nil {
		return m.publishFn(ctx, ev)
	}
	return nil
}

// mockRatingRepo implements ports.RatingRepository for testing.
type mockRatingRepo struct {
	upsertFn  func(ctx context.Context, userID, storeID int64, score int) error
	summaryFn func(ctx context.Context, storeID int64) (*domain.RatingSummary, error)

	upserts int
	deletes int
}

func (m *mockRatingRepo) Upsert(ctx context.Context, userID, storeID int64, score int) error {
	m.upserts++
	if m.upsertFn != nil {
		return m.upsertFn(ctx, userID, storeID, score)
	}
	return nil
}

func (m *mockRatingRepo) Delete(ctx context.Context, userID, storeID int64) error {
	m.deletes++
	return nil
}

func (m *mockRatingRepo) Summary(ctx context.Context, storeID int64) (*domain.RatingSummary, error) {
	return m.summaryFn(ctx, storeID)
}

func (m *mockRatingRepo) ForStore(ctx context.Context, storeID int64) ([]domain.StoreRating, error) {
	return nil, nil
}

// mockProductRepo implements ports.ProductRepository for testing.
type mockProductRepo struct {
	createFn     func(ctx context.Context, storeID int64, in domain.ProductInput) (*domain.Product, string, error)
	discountFn   func(ctx context.Context, storeID, productID int64, price float64) (*domain.DiscountFanout, error)
	updateCatFn  func(ctx context.Context, id int64, name string) error
	catMutations int
}

func (m *mockProductRepo) Create(ctx context.Context, storeID int64, in domain.ProductInput) (*domain.Product, string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, storeID, in)
	}
	return &domain.Product{ID: 1, Name: in.Name, Type: in.Type}, "Corner Shop", nil
}

func (m *mockProductRepo) Update(ctx context.Context, id int64, in domain.ProductInput) error {
	return nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id int64) (string, error) { return "", nil }

func (m *mockProductRepo) LinkToStore(ctx context.Context, productID, storeID int64, price float64) error {
	return nil
}

func (m *mockProductRepo) All(ctx context.Context) ([]domain.Product, error) { return nil, nil }

func (m *mockProductRepo) ApplyDiscount(ctx context.Context, storeID, productID int64, price float64) (*domain.DiscountFanout, error) {
	if m.discountFn != nil {
		return m.discountFn(ctx, storeID, productID, price)
	}
	return &domain.DiscountFanout{Price: price}, nil
}

func (m *mockProductRepo) UpdateCategory(ctx context.Context, id int64, name string) error {
	m.catMutations++
	if m.updateCatFn != nil {
		return m.updateCatFn(ctx, id, name)
	}
	return nil
}

func (m *mockProductRepo) DeleteCategory(ctx context.Context, id int64) error {
	m.catMutations++
	return nil
}

// mockSocialRepo implements ports.SocialRepository for testing.
type mockSocialRepo struct {
	toggleFn    func(ctx context.Context, userID, storeID int64) (*domain.FollowResult, error)
	followersFn func(ctx context.Context, storeID int64) ([]int64, error)
	addWishFn   func(ctx context.Context, userID, productID int64) (*domain.WishResult, error)
}

func (m *mockSocialRepo) ToggleFollow(ctx context.Context, userID, storeID int64) (*domain.FollowResult, error) {
	return m.toggleFn(ctx, userID, storeID)
}

func (m *mockSocialRepo) FollowerIDs(ctx context.Context, storeID int64) ([]int64, error) {
	return m.followersFn(ctx, storeID)
}

func (m *mockSocialRepo) AddWish(ctx context.Context, userID, productID int64) (*domain.WishResult, error) {
	return m.addWishFn(ctx, userID, productID)
}

func (m *mockSocialRepo) RemoveWish(ctx context.Context, userID, productID int64) error {
	return nil
}

func (m *mockSocialRepo) Wishlist(ctx context.Context, userID int64) ([]domain.Product, error) {
	return nil, nil
}

// mockPopularity implements ports.PopularityService for testing the policy.
type mockPopularity struct {
	recomputeFn func(ctx context.Context) error
	recomputes  int
}

func (m *mockPopularity) Recompute(ctx context.Context) error {
	m.recomputes++
	if m.recomputeFn != nil {
		return m.recomputeFn(ctx)
	}
	return nil
}

func (m *mockPopularity) Top(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	return nil, nil
}

func (m *mockPopularity) Featured(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	return nil, nil
}

// mockNotifier implements ports.NotificationService for testing the policy.
type mockNotifier struct {
	notifyFn func(ctx context.Context, recipientID int64, message, typ string) error

	mu       sync.Mutex
	notified []notifiedCall
	bcasts   []pushEmit
}

type notifiedCall struct {
	userID  int64
	message string
	typ     string
}

func (m *mockNotifier) Notify(ctx context.Context, recipientID int64, message, typ string) error {
	m.mu.Lock()
	m.notified = append(m.notified, notifiedCall{userID: recipientID, message: message, typ: typ})
	m.mu.Unlock()
	if m.notifyFn != nil {
		return m.notifyFn(ctx, recipientID, message, typ)
	}
	return nil
}

func (m *mockNotifier) Broadcast(event string, payload any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bcasts = append(m.bcasts, pushEmit{event: event, payload: payload})
}

func (m *mockNotifier) Recent(ctx context.Context, recipientID int64) ([]domain.Notification, error) {
	return nil, nil
}

func (m *mockNotifier) MarkAllRead(ctx context.Context, recipientID int64) error { return nil }
func (m *mockNotifier) Clear(ctx context.Context, recipientID int64) error       { return nil }
