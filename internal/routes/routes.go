package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"loja-backend/internal/handlers"
	"loja-backend/internal/middleware"
	"loja-backend/internal/models"
)

type Handlers struct {
	Users    *handlers.UserHandler
	Products *handlers.ProductHandler
	Carts    *handlers.CartHandler
	Orders   *handlers.OrderHandler
	Payments *handlers.PaymentHandler
	Health   *handlers.HealthHandler
}

type Options struct {
	JWTSecret   []byte
	CORSOrigins []string
}

func SetupRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	// public
	r.GET("/health", h.Health.Check)
	r.POST("/usuarios", h.Users.Register)
	r.POST("/login", h.Users.Login)

	authed := r.Group("/", middleware.Authenticate(opts.JWTSecret))
	{
		authed.GET("/produtos", h.Products.List)
		authed.GET("/produtos/:id", h.Products.Get)

		authed.POST("/carrinho", h.Carts.AddItem)
		authed.GET("/carrinho", h.Carts.Get)
		authed.GET("/carrinho/filtrar", h.Carts.Filter)
		authed.PUT("/carrinho/:id", h.Carts.UpdateQuantity)
		authed.DELETE("/carrinho/:id", h.Carts.RemoveCart)
		authed.DELETE("/carrinho/:id/item/:itemId", h.Carts.RemoveItem)
		authed.POST("/carrinho/:carrinhoId/finalizar", h.Carts.Checkout)

		authed.GET("/pedidos", h.Orders.List)
		authed.GET("/pedidos/:id", h.Orders.Get)

		authed.POST("/criar-pagamento-cartao", h.Payments.CreateCardPayment)
	}

	admin := r.Group("/", middleware.Authenticate(opts.JWTSecret), middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/produtos", h.Products.Create)
		admin.PUT("/produtos/:id", h.Products.Update)
		admin.DELETE("/produtos/:id", h.Products.Delete)

		admin.GET("/admin/carrinhos", h.Carts.ListAll)
		admin.PUT("/admin/carrinho/:id", h.Carts.UpdateQuantity)
		admin.DELETE("/admin/carrinho/:id", h.Carts.RemoveCart)
		admin.DELETE("/admin/carrinho/:id/item/:itemId", h.Carts.RemoveItem)

		admin.GET("/admin/usuarios", h.Users.List)
		admin.DELETE("/admin/usuarios/:id", h.Users.Delete)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
