package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jupiterclapton/plaza/internal/adapters/secondary/push"
	"github.com/jupiterclapton/plaza/internal/core/ports"
)

// Server regroupe les services du core exposés en HTTP. Les handlers restent
// minces : parsing + délégation, toute la logique vit dans internal/core.
type Server struct {
	stores        ports.StoreService
	products      ports.ProductService
	ratings       ports.RatingService
	social        ports.SocialService
	popularity    ports.PopularityService
	notifications ports.NotificationService
	hub           *push.Hub
}

func NewServer(
	stores ports.StoreService,
	products ports.ProductService,
	ratings ports.RatingService,
	social ports.SocialService,
	popularity ports.PopularityService,
	notifications ports.NotificationService,
	hub *push.Hub,
) *Server {
	return &Server{
		stores:        stores,
		products:      products,
		ratings:       ratings,
		social:        social,
		popularity:    popularity,
		notifications: notifications,
		hub:           hub,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true, // en prod : l'URL du front
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/ws", s.handleWebsocket)

	// Classements
	r.GET("/top-stores", s.handleTopStores)
	r.GET("/featured-stores", s.handleFeaturedStores)

	// Stores
	r.POST("/stores", s.handleCreateStore)
	r.GET("/stores", s.handleListStores)
	r.GET("/stores/:id", s.handleGetStore)
	r.PUT("/stores/:id", s.handleUpdateStore)
	r.DELETE("/stores/:id", s.handleDeleteStore)
	r.GET("/stores/:id/products", s.handleStoreProducts)
	r.GET("/stores/:id/categories", s.handleStoreCategories)
	r.GET("/stores/:id/ratings", s.handleStoreRatings)
	r.GET("/stores/:id/rating", s.handleRatingSummary)

	// Ratings
	r.POST("/ratings", s.handleRate)
	r.DELETE("/ratings", s.handleDeleteRating)
	r.GET("/ratings/:userId/:storeId", s.handleUserScore)

	// Social
	r.POST("/follow", s.handleToggleFollow)
	r.POST("/wishlist", s.handleAddWish)
	r.DELETE("/wishlist", s.handleRemoveWish)
	r.GET("/wishlist/:userId", s.handleWishlist)
	r.GET("/users/:userId/suggested-stores", s.handleSuggestedStores)

	// Products
	r.POST("/products", s.handleCreateProduct)
	r.GET("/products", s.handleListProducts)
	r.PUT("/products/:id", s.handleUpdateProduct)
	r.DELETE("/products/:id", s.handleDeleteProduct)
	r.POST("/products/link", s.handleLinkProduct)
	r.POST("/discounts", s.handleApplyDiscount)

	// Catégories
	r.PUT("/categories/:id", s.handleUpdateCategory)
	r.DELETE("/categories/:id", s.handleDeleteCategory)

	// Notifications
	r.GET("/notifications/:userId", s.handleNotifications)
	r.POST("/notifications/:userId/read", s.handleMarkAllRead)
	r.DELETE("/notifications/:userId", s.handleClearNotifications)

	return r
}
