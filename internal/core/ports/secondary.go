package ports

import (
	"context"
	"time"

	"github.com/jupiterclapton/plaza/internal/core/domain"
)

// --- DRIVEN (ce dont le core a besoin) ---

// GraphStore est la façade de lecture des agrégats. C'est ICI que les ids
// Neo4j (int64 internes) sont normalisés : le core ne voit que des int64 nus.
type GraphStore interface {
	// StorePopularityInputs lit TOUS les stores en une passe : followers
	// distincts, notes distinctes, moyenne (0 si aucune note).
	// Une erreur signifie "requête échouée", jamais "graphe vide" :
	// confondre les deux corromprait le leaderboard avec de faux zéros.
	StorePopularityInputs(ctx context.Context) ([]domain.StoreStats, error)

	// UserRating retourne la note (u)-[RATED]->(s), ou 5 par défaut si
	// l'arête n'existe pas (pré-remplissage UI, pas une note implicite).
	UserRating(ctx context.Context, userID, storeID int64) (int, error)
}

type StoreRepository interface {
	Create(ctx context.Context, vendorID int64, in domain.StoreInput) (int64, error)
	Update(ctx context.Context, id int64, in domain.StoreInput) error
	// Delete détache et supprime aussi les produits du store
	Delete(ctx context.Context, id int64) error
	ByID(ctx context.Context, id, viewerID int64) (*domain.Store, error)
	All(ctx context.Context) ([]domain.Store, error)
	// Suggested : stores suivis par des utilisateurs partageant la wishlist
	Suggested(ctx context.Context, userID int64, limit int) ([]domain.Store, error)
	Products(ctx context.Context, storeID int64) ([]domain.Product, error)
	Categories(ctx context.Context, storeID int64) ([]domain.Category, error)
}

type ProductRepository interface {
	Create(ctx context.Context, storeID int64, in domain.ProductInput) (*domain.Product, string, error) // produit, nom du store
	Update(ctx context.Context, id int64, in domain.ProductInput) error
	Delete(ctx context.Context, id int64) (string, error) // nom du produit supprimé
	LinkToStore(ctx context.Context, productID, storeID int64, price float64) error
	All(ctx context.Context) ([]domain.Product, error)
	// ApplyDiscount échoue si le store ne vend pas le produit ; sinon MERGE
	// de HAS_DISCOUNT et retour des wishers pour le fan-out
	ApplyDiscount(ctx context.Context, storeID, productID int64, price float64) (*domain.DiscountFanout, error)
	// Renommer une catégorie ré-étiquette tous les produits rattachés d'un coup
	UpdateCategory(ctx context.Context, id int64, name string) error
	// DeleteCategory détache les produits, ils survivent sans catégorie
	DeleteCategory(ctx context.Context, id int64) error
}

type RatingRepository interface {
	// Upsert : un seul MERGE, jamais deux arêtes RATED pour la même paire
	Upsert(ctx context.Context, userID, storeID int64, score int) error
	Delete(ctx context.Context, userID, storeID int64) error
	Summary(ctx context.Context, storeID int64) (*domain.RatingSummary, error)
	ForStore(ctx context.Context, storeID int64) ([]domain.StoreRating, error)
}

type SocialRepository interface {
	// ToggleFollow fait l'upsert/delete conditionnel CÔTÉ GRAPHE, en une
	// requête, pour fermer la course check-then-act du double-clic
	ToggleFollow(ctx context.Context, userID, storeID int64) (*domain.FollowResult, error)
	FollowerIDs(ctx context.Context, storeID int64) ([]int64, error)
	AddWish(ctx context.Context, userID, productID int64) (*domain.WishResult, error)
	RemoveWish(ctx context.Context, userID, productID int64) error
	Wishlist(ctx context.Context, userID int64) ([]domain.Product, error)
}

// Leaderboard : le zset top_stores. Pas de TTL, toujours reconstruit explicitement.
type Leaderboard interface {
	// ReplaceAll vide l'ancien classement et écrit le nouveau dans une même
	// frontière transactionnelle : aucun lecteur ne doit voir deux
	// générations mélangées
	ReplaceAll(ctx context.Context, entries []domain.LeaderboardEntry) error
	// TopN : les n meilleurs, égalités départagées par followers décroissants
	TopN(ctx context.Context, n int) ([]domain.LeaderboardEntry, error)
}

// Cache : les caches ponctuels (résumés de notes, wishlists, listings)
type Cache interface {
	// Get renvoie (false, nil) sur miss : un miss n'est pas une erreur
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// NotificationStore : l'historique borné par destinataire
type NotificationStore interface {
	// Push insère en tête et tronque au cap
	Push(ctx context.Context, userID int64, n domain.Notification) error
	Recent(ctx context.Context, userID int64, limit int64) ([]domain.Notification, error)
	// MarkAllRead réécrit chaque entrée avec isRead=true, ordre préservé
	MarkAllRead(ctx context.Context, userID int64) error
	Clear(ctx context.Context, userID int64) error
}

// EventPublisher émet les events de domaine APRÈS la mutation graphe
type EventPublisher interface {
	Publish(ctx context.Context, ev domain.Event) error
}

// PushChannel : une room par utilisateur + une room broadcast globale.
// L'émission est fire-and-forget : destinataire hors-ligne ≠ erreur.
type PushChannel interface {
	EmitToUser(userID int64, event string, payload any)
	BroadcastAll(event string, payload any)
}
