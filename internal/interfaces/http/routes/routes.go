// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pharmacy-storefront/internal/config"
	"github.com/your-org/pharmacy-storefront/internal/domain/cart"
	"github.com/your-org/pharmacy-storefront/internal/domain/checkout"
	"github.com/your-org/pharmacy-storefront/internal/gateway"
	"github.com/your-org/pharmacy-storefront/internal/infrastructure/storage"
	"github.com/your-org/pharmacy-storefront/internal/interfaces/http/handlers"
)

// Deps bundles everything the route tree needs.
type Deps struct {
	Config     *config.Config
	Logger     *logrus.Logger
	CartStore  storage.Store
	Carts      *cart.Manager
	Reconciler *cart.Reconciler
	Checkout   *checkout.Service
	Products   *gateway.ProductGateway
	Orders     *gateway.OrderGateway
	Auth       *gateway.AuthGateway
	Messages   *gateway.MessageGateway
}

// SetupRoutes wires the full route tree onto the engine.
func SetupRoutes(router *gin.Engine, deps Deps) {
	healthHandler := handlers.NewHealthHandler(deps.Config, deps.CartStore)
	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")

	setupAuthRoutes(v1, deps)
	setupProductRoutes(v1, deps)
	setupCartRoutes(v1, deps)
	setupCheckoutRoutes(v1, deps)
	setupOrderRoutes(v1, deps)
	setupMessageRoutes(v1, deps)
}

func setupAuthRoutes(rg *gin.RouterGroup, deps Deps) {
	authHandler := handlers.NewAuthHandler(deps.Auth, deps.Logger)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", authHandler.Me)
	}
}

func setupProductRoutes(rg *gin.RouterGroup, deps Deps) {
	productHandler := handlers.NewProductHandler(deps.Products, deps.Logger)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.Search)
		products.GET("/:id", productHandler.Get)
	}

	rg.GET("/categories", productHandler.Categories)
}

func setupCartRoutes(rg *gin.RouterGroup, deps Deps) {
	cartHandler := handlers.NewCartHandler(deps.Carts, deps.Reconciler, deps.Products, deps.Logger)

	carts := rg.Group("/cart")
	{
		carts.GET("", cartHandler.GetCart)
		carts.GET("/count", cartHandler.GetCount)
		carts.POST("/refresh", cartHandler.RefreshCart)
		carts.POST("/items", cartHandler.AddItem)
		carts.PUT("/items/:id", cartHandler.UpdateItem)
		carts.DELETE("/items/:id", cartHandler.RemoveItem)
		carts.DELETE("", cartHandler.ClearCart)
	}
}

func setupCheckoutRoutes(rg *gin.RouterGroup, deps Deps) {
	checkoutHandler := handlers.NewCheckoutHandler(deps.Checkout, deps.Carts, deps.Logger)

	co := rg.Group("/checkout")
	{
		co.GET("/summary", checkoutHandler.GetSummary)
		co.POST("", checkoutHandler.Submit)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, deps Deps) {
	orderHandler := handlers.NewOrderHandler(deps.Orders, deps.Logger)

	orders := rg.Group("/orders")
	{
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.Get)
	}
}

func setupMessageRoutes(rg *gin.RouterGroup, deps Deps) {
	messageHandler := handlers.NewMessageHandler(deps.Messages, deps.Logger)

	rg.POST("/messages", messageHandler.Send)
}
