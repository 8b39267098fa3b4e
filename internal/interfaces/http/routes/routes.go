// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-client/internal/domain/session"
	"github.com/your-org/storefront-client/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-client/internal/interfaces/http/middleware"
)

// Handlers bundles every facade handler
type Handlers struct {
	Auth     *handlers.AuthHandler
	Profile  *handlers.UserProfileHandler
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
	Products *handlers.ProductHandler
	Reviews  *handlers.ReviewHandler
	Orders   *handlers.OrderHandler
	Shop     *handlers.ShopHandler
	Seller   *handlers.SellerProductHandler
	Private  *handlers.SellerProductHandler
	Admin    *handlers.UserAdminHandler
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, h Handlers, tokens *session.TokenStore) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/session", h.Auth.GetSession)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(tokens))
		{
			protected.GET("/me", h.Profile.GetProfile)
			protected.PUT("/me", h.Profile.UpdateProfile)
		}
	}
}

// SetupProductRoutes sets up catalog routes
func SetupProductRoutes(rg *gin.RouterGroup, h Handlers, tokens *session.TokenStore) {
	products := rg.Group("/products")
	{
		products.GET("", h.Products.GetProducts)
		products.GET("/trendy", h.Products.GetTrendy)
		products.GET("/flash-sale", h.Products.GetFlashSale)
		products.GET("/recommend", h.Products.GetRecommended)
		products.GET("/:id", h.Products.GetProduct)
		products.GET("/:id/feedback", h.Reviews.GetProductReviews)
		products.POST("/:id/feedback", middleware.AuthMiddleware(tokens), h.Reviews.CreateReview)
		products.GET("/:id/feedback/:feedbackId/replies", h.Reviews.GetReplies)
		products.POST("/:id/feedback/:feedbackId/replies", middleware.AuthMiddleware(tokens), h.Reviews.CreateReply)
	}
}

// SetupCartRoutes sets up cart routes; guests have a cart too
func SetupCartRoutes(rg *gin.RouterGroup, h Handlers) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Cart.GetCart)
		cart.GET("/count", h.Cart.GetCartCount)
		cart.POST("/items", h.Cart.AddToCart)
		cart.PUT("/items/:id", h.Cart.UpdateCartItem)
		cart.DELETE("/items/:id", h.Cart.RemoveFromCart)
		cart.DELETE("", h.Cart.ClearCart)
		cart.POST("/reconcile", h.Cart.ReconcileCart)
	}
}

// SetupOrderRoutes sets up checkout and order history routes
func SetupOrderRoutes(rg *gin.RouterGroup, h Handlers, tokens *session.TokenStore) {
	rg.POST("/checkout", h.Checkout.Checkout)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(tokens))
	{
		orders.GET("", h.Orders.GetUserOrders)
		orders.GET("/shop", h.Orders.GetShopOrders)
	}
}

// SetupSellerRoutes sets up shop and product management routes
func SetupSellerRoutes(rg *gin.RouterGroup, h Handlers, tokens *session.TokenStore) {
	seller := rg.Group("/seller")
	seller.Use(middleware.AuthMiddleware(tokens))
	{
		seller.GET("/shop", h.Shop.GetShop)
		seller.POST("/shop", h.Shop.CreateShop)
		seller.PUT("/shop", h.Shop.UpdateShop)

		for prefix, products := range map[string]*handlers.SellerProductHandler{
			"/products":         h.Seller,
			"/private-products": h.Private,
		} {
			seller.GET(prefix, products.GetProducts)
			seller.POST(prefix, products.CreateProduct)
			seller.GET(prefix+"/:id", products.GetProduct)
			seller.PUT(prefix+"/:id", products.UpdateProduct)
			seller.DELETE(prefix+"/:id", products.DeleteProduct)
		}
	}
}

// SetupAdminRoutes sets up moderation routes. The backend checks the role.
func SetupAdminRoutes(rg *gin.RouterGroup, h Handlers, tokens *session.TokenStore) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokens))
	{
		admin.GET("/users", h.Admin.GetUsers)
		admin.GET("/pending-users", h.Admin.GetPendingUsers)
		admin.GET("/users/:id", h.Admin.GetUser)
		admin.PUT("/users/:id", h.Admin.UpdateUser)
		admin.DELETE("/users/:id", h.Admin.DeleteUser)

		admin.GET("/pending-products", h.Admin.GetPendingProducts)
		admin.GET("/products/:id", h.Admin.GetPendingProduct)
		admin.PUT("/products/:id/approve", h.Admin.ApproveProduct)
		admin.GET("/products/:id/banned-feedback", h.Admin.GetBannedFeedback)
		admin.PUT("/feedback/:id/approve", h.Admin.ApproveFeedback)
	}
}

// SetupRoutes registers every facade route under rg
func SetupRoutes(rg *gin.RouterGroup, h Handlers, tokens *session.TokenStore) {
	SetupAuthRoutes(rg, h, tokens)
	SetupProductRoutes(rg, h, tokens)
	SetupCartRoutes(rg, h)
	SetupOrderRoutes(rg, h, tokens)
	SetupSellerRoutes(rg, h, tokens)
	SetupAdminRoutes(rg, h, tokens)
}
