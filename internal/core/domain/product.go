package domain

// Product appartient à un store via HAS_PRODUCT et à une catégorie via BELONGS_TO
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Brand         string  `json:"brand"`
	Type          string  `json:"type"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	Category      string  `json:"category,omitempty"`
	DiscountPrice float64 `json:"discountPrice,omitempty"`
}

type ProductInput struct {
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Type     string  `json:"type"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Wisher : un utilisateur ayant le produit en wishlist (cible du fan-out remise)
type Wisher struct {
	UserID   int64
	Username string
}

// DiscountFanout est le retour de l'application d'une remise : tout ce qu'il
// faut pour construire les notifications sans requête supplémentaire
type DiscountFanout struct {
	ProductName string
	StoreName   string
	Price       float64
	Wishers     []Wisher
}

// WishResult sort d'un ajout en wishlist
type WishResult struct {
	Username    string
	ProductName string
	OwnerID     int64 // vendeur du store qui vend le produit, 0 si inconnu
}

// StoreRating : une note individuelle, pour l'affichage des avis
type StoreRating struct {
	User  string `json:"user"`
	Score int    `json:"score"`
}

// RatingSummary est la réponse cache-aside de `store:{id}:rating_data`
type RatingSummary struct {
	StoreID       int64   `json:"storeId"`
	AverageRating float64 `json:"averageRating"`
	Count         int64   `json:"count"`
	Source        string  `json:"source"` // "db" ou "cache", utile au debug front
}
