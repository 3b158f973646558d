package ports

import (
	"context"

	"github.com/jupiterclapton/plaza/internal/core/domain"
)

// --- DRIVING (ce que le core expose) ---

type PopularityService interface {
	// Recompute : re-rank TOTAL depuis le graphe, réécriture du leaderboard,
	// broadcast du top 3. Appelé à chaque mutation note/follow.
	Recompute(ctx context.Context) error

	// Top lit le leaderboard ; sur cache vide, retombe sur le graphe
	// (cache-aside) et repeuple au passage.
	Top(ctx context.Context, n int) ([]domain.LeaderboardEntry, error)

	// Featured : le classement alternatif (formule quadratique), calculé à la
	// volée, jamais écrit dans le zset principal.
	Featured(ctx context.Context, n int) ([]domain.LeaderboardEntry, error)
}

type NotificationService interface {
	// Notify écrit l'historique PUIS pousse sur la room privée ; l'échec du
	// push n'est pas une erreur, l'écriture historique doit survivre.
	Notify(ctx context.Context, recipientID int64, message, typ string) error

	// Broadcast : signal UI transitoire pour tout le monde, sans historique.
	Broadcast(event string, payload any)

	Recent(ctx context.Context, recipientID int64) ([]domain.Notification, error)
	MarkAllRead(ctx context.Context, recipientID int64) error
	Clear(ctx context.Context, recipientID int64) error
}

// InvalidationPolicy : la table mutation → clés à invalider + actions aval
type InvalidationPolicy interface {
	Apply(ctx context.Context, ev domain.Event) error
}

type StoreService interface {
	Create(ctx context.Context, vendorID int64, in domain.StoreInput) (int64, error)
	Update(ctx context.Context, id int64, in domain.StoreInput) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id, viewerID int64) (*domain.Store, error)
	List(ctx context.Context) ([]domain.Store, error)
	Suggested(ctx context.Context, userID int64) ([]domain.Store, error)
	Products(ctx context.Context, storeID int64) ([]domain.Product, error)
	Categories(ctx context.Context, storeID int64) ([]domain.Category, error)
}

type RatingService interface {
	Rate(ctx context.Context, userID, storeID int64, score int) error
	Remove(ctx context.Context, userID, storeID int64) error
	Summary(ctx context.Context, storeID int64) (*domain.RatingSummary, error)
	UserScore(ctx context.Context, userID, storeID int64) (int, error)
	ForStore(ctx context.Context, storeID int64) ([]domain.StoreRating, error)
}

type SocialService interface {
	ToggleFollow(ctx context.Context, userID, storeID int64) (bool, error)
	AddToWishlist(ctx context.Context, userID, productID int64) error
	RemoveFromWishlist(ctx context.Context, userID, productID int64) error
	Wishlist(ctx context.Context, userID int64) ([]domain.Product, error)
}

type ProductService interface {
	Create(ctx context.Context, storeID int64, in domain.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, in domain.ProductInput) error
	Delete(ctx context.Context, id int64) error
	LinkToStore(ctx context.Context, productID, storeID int64, price float64) error
	List(ctx context.Context) ([]domain.Product, error)
	ApplyDiscount(ctx context.Context, storeID, productID int64, price float64) (int, error) // nb de notifiés
	UpdateCategory(ctx context.Context, id int64, name string) error
	DeleteCategory(ctx context.Context, id int64) error
}
