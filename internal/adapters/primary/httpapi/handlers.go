package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jupiterclapton/plaza/internal/core/domain"
)

// paramID parse un id de path : un id non numérique est rejeté AVANT tout
// accès graphe ou cache.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidID), errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNotInCatalog):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// --- Classements ---

func (s *Server) handleTopStores(c *gin.Context) {
	n, _ := strconv.Atoi(c.DefaultQuery("n", "3"))
	entries, err := s.popularity.Top(c.Request.Context(), n)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) handleFeaturedStores(c *gin.Context) {
	n, _ := strconv.Atoi(c.DefaultQuery("n", "3"))
	entries, err := s.popularity.Featured(c.Request.Context(), n)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// --- Stores ---

func (s *Server) handleCreateStore(c *gin.Context) {
	var req struct {
		VendorID int64 `json:"vendorId"`
		domain.StoreInput
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := s.stores.Create(c.Request.Context(), req.VendorID, req.StoreInput)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "store created"})
}

func (s *Server) handleListStores(c *gin.Context) {
	stores, err := s.stores.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

func (s *Server) handleGetStore(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	viewerID, _ := strconv.ParseInt(c.Query("userId"), 10, 64)

	store, err := s.stores.Get(c.Request.Context(), id, viewerID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

func (s *Server) handleUpdateStore(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in domain.StoreInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.stores.Update(c.Request.Context(), id, in); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "store updated"})
}

func (s *Server) handleDeleteStore(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := s.stores.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "store and its products deleted"})
}

func (s *Server) handleStoreProducts(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	products, err := s.stores.Products(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) handleStoreCategories(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cats, err := s.stores.Categories(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (s *Server) handleSuggestedStores(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	stores, err := s.stores.Suggested(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

// --- Ratings ---

func (s *Server) handleRate(c *gin.Context) {
	var req struct {
		UserID  int64 `json:"userId"`
		StoreID int64 `json:"storeId"`
		Score   int   `json:"score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.ratings.Rate(c.Request.Context(), req.UserID, req.StoreID, req.Score); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "rating saved"})
}

func (s *Server) handleDeleteRating(c *gin.Context) {
	userID, _ := strconv.ParseInt(c.Query("userId"), 10, 64)
	storeID, _ := strconv.ParseInt(c.Query("storeId"), 10, 64)

	if err := s.ratings.Remove(c.Request.Context(), userID, storeID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rating deleted"})
}

func (s *Server) handleUserScore(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	storeID, ok := paramID(c, "storeId")
	if !ok {
		return
	}
	score, err := s.ratings.UserScore(c.Request.Context(), userID, storeID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": score})
}

func (s *Server) handleRatingSummary(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	summary, err := s.ratings.Summary(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleStoreRatings(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ratings, err := s.ratings.ForStore(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}

// --- Social ---

func (s *Server) handleToggleFollow(c *gin.Context) {
	var req struct {
		UserID  int64 `json:"userId"`
		StoreID int64 `json:"storeId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	following, err := s.social.ToggleFollow(c.Request.Context(), req.UserID, req.StoreID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isFollowing": following})
}

func (s *Server) handleAddWish(c *gin.Context) {
	var req struct {
		UserID    int64 `json:"userId"`
		ProductID int64 `json:"productId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.social.AddToWishlist(c.Request.Context(), req.UserID, req.ProductID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "added to wishlist"})
}

func (s *Server) handleRemoveWish(c *gin.Context) {
	var req struct {
		UserID    int64 `json:"userId"`
		ProductID int64 `json:"productId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.social.RemoveFromWishlist(c.Request.Context(), req.UserID, req.ProductID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "removed from wishlist"})
}

func (s *Server) handleWishlist(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	products, err := s.social.Wishlist(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// --- Products ---

func (s *Server) handleCreateProduct(c *gin.Context) {
	var req struct {
		StoreID int64 `json:"storeId"`
		domain.ProductInput
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := s.products.Create(c.Request.Context(), req.StoreID, req.ProductInput)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "product created", "product": product})
}

func (s *Server) handleListProducts(c *gin.Context) {
	products, err := s.products.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) handleUpdateProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.products.Update(c.Request.Context(), id, in); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product updated"})
}

func (s *Server) handleDeleteProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := s.products.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (s *Server) handleLinkProduct(c *gin.Context) {
	var req struct {
		ProductID int64   `json:"productId"`
		StoreID   int64   `json:"storeId"`
		Price     float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.products.LinkToStore(c.Request.Context(), req.ProductID, req.StoreID, req.Price); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "linked"})
}

func (s *Server) handleApplyDiscount(c *gin.Context) {
	var req struct {
		StoreID       int64   `json:"storeId"`
		ProductID     int64   `json:"productId"`
		DiscountPrice float64 `json:"discountPrice"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	notified, err := s.products.ApplyDiscount(c.Request.Context(), req.StoreID, req.ProductID, req.DiscountPrice)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "discount active", "notificationsSent": notified})
}

// --- Catégories ---

func (s *Server) handleUpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.products.UpdateCategory(c.Request.Context(), id, req.Name); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category updated"})
}

func (s *Server) handleDeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := s.products.DeleteCategory(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

// --- Notifications ---

func (s *Server) handleNotifications(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	notifs, err := s.notifications.Recent(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, notifs)
}

func (s *Server) handleMarkAllRead(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	if err := s.notifications.MarkAllRead(c.Request.Context(), userID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all read"})
}

func (s *Server) handleClearNotifications(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	if err := s.notifications.Clear(c.Request.Context(), userID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cleared"})
}
