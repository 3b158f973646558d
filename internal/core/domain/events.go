package domain

import "time"

// EventKind sert aussi de suffixe de sujet NATS (market.<kind>)
type EventKind string

const (
	EventRatingChanged   EventKind = "rating.changed" // add, update et delete : même effet aval
	EventStoreFollowed   EventKind = "store.followed"
	EventStoreUnfollowed EventKind = "store.unfollowed"
	EventDiscountCreated EventKind = "discount.created"
	EventProductCreated  EventKind = "product.created"
	EventProductUpdated  EventKind = "product.updated"
	EventProductDeleted  EventKind = "product.deleted"
	EventWishlistAdded   EventKind = "wishlist.added"
	EventWishlistRemoved EventKind = "wishlist.removed"
	EventStoreUpdated    EventKind = "store.updated"
	EventStoreDeleted    EventKind = "store.deleted"
	EventCategoryChanged EventKind = "category.changed"
)

// Event est le contrat entre les mutations et le pipeline dérivé (politique
// d'invalidation + recompute + notifications). La mutation graphe a DÉJÀ
// réussi quand l'event part : le pipeline ne peut jamais la faire échouer.
//
// Les champs dénormalisés (noms, prix) évitent au consommateur de re-résoudre
// ce que la mutation connaissait déjà.
type Event struct {
	Kind      EventKind `json:"kind"`
	UserID    int64     `json:"user_id,omitempty"`
	StoreID   int64     `json:"store_id,omitempty"`
	ProductID int64     `json:"product_id,omitempty"`
	OwnerID   int64     `json:"owner_id,omitempty"`

	Username    string  `json:"username,omitempty"`
	StoreName   string  `json:"store_name,omitempty"`
	ProductName string  `json:"product_name,omitempty"`
	Price       float64 `json:"price,omitempty"`

	// Destinataires déjà résolus par la mutation (fan-out remise)
	Wishers []Wisher `json:"wishers,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}
