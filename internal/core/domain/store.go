package domain

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidInput : payload refusé par la validation métier (faute du
	// client, jamais un 500)
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotInCatalog : remise refusée parce que le store ne vend pas le produit
	ErrNotInCatalog = errors.New("store does not carry this product")
)

// Store est le noeud central du graphe (un vendeur possède N stores)
type Store struct {
	ID       int64  `json:"id"`
	VendorID int64  `json:"vendorId"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Logo     string `json:"logo"`

	// Attributs dérivés (jamais stockés sur le noeud, calculés par le graphe)
	AverageRating float64 `json:"averageRating"`
	RatingCount   int64   `json:"ratingCount"`
	Followers     int64   `json:"followers"`
	ProductCount  int64   `json:"productCount"`
	IsFollowing   bool    `json:"isFollowing"`
}

// StoreInput : les champs que le vendeur contrôle
type StoreInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Logo    string `json:"logo"`
}

// StoreStats est le tuple d'entrée du re-ranking : un par store, lu en UNE
// seule requête d'agrégation (jamais en N+1)
type StoreStats struct {
	StoreID     int64   `json:"id"`
	Name        string  `json:"name"`
	Followers   int64   `json:"followers"`
	RatingCount int64   `json:"ratingCount"`
	AvgRating   float64 `json:"avgRating"` // 0 quand aucune note, jamais "null"
}

// FollowResult sort du toggle follow/unfollow (upsert conditionnel côté graphe)
type FollowResult struct {
	Following    bool   // état APRÈS le toggle
	FollowerName string // pour la notification au vendeur
	StoreName    string
	OwnerID      int64 // 0 si le vendeur est introuvable
}
