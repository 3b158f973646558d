package domain

import "fmt"

// Clés du cache : construites ici pour que la politique d'invalidation et les
// lecteurs cache-aside parlent exactement la même langue.

const (
	KeyTopStores  = "top_stores" // zset du leaderboard, pas de TTL
	KeyStoreIndex = "stores:index"
	KeyProdIndex  = "products:index"
	KeyCatIndex   = "categories:index"
)

func KeyRatingData(storeID int64) string {
	return fmt.Sprintf("store:%d:rating_data", storeID)
}

func KeyStoreDiscounts(storeID int64) string {
	return fmt.Sprintf("store:%d:discounts", storeID)
}

func KeyProductPrice(productID int64) string {
	return fmt.Sprintf("product:%d:price", productID)
}

func KeyWishlist(userID int64) string {
	return fmt.Sprintf("wishlist:%d", userID)
}

func KeyNotifications(userID int64) string {
	return fmt.Sprintf("notifications:%d", userID)
}
