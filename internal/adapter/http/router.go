package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shoporbit/shop-api/internal/adapter/http/middleware"
	"github.com/shoporbit/shop-api/internal/adapter/ws"
	domain "github.com/shoporbit/shop-api/internal/entity"
	"github.com/shoporbit/shop-api/internal/logging"
)

type Handlers struct {
	Auth     *AuthHandler
	Orders   *OrderHandler
	Products *ProductHandler
	Brands   *BrandHandler
	Users    *UserHandler
	Hub      *ws.Hub
}

func NewRouter(h Handlers, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())
	r.Use(middleware.Logging(logging.New("http")))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Realtime shipping updates; the client announces its customer id after
	// connecting.
	r.GET("/ws", ws.Handler(h.Hub))

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/verify-otp", h.Auth.VerifyOtp)
		auth.POST("/resend-otp", h.Auth.ResendOtp)
	}

	authed := r.Group("/", authz.Authenticate())

	users := authed.Group("/users")
	{
		users.GET("/me", h.Users.Me)
		users.GET("/order-history", h.Orders.List)
	}

	admin := authed.Group("/admin", authz.Require(domain.RoleAdmin))
	{
		admin.POST("/users", h.Users.CreateByAdmin)
	}

	orders := authed.Group("/orders")
	{
		orders.POST("", h.Orders.Create)
		orders.GET("", authz.Require(domain.RoleAdmin), h.Orders.List)
		orders.GET("/my-orders/:orderId", h.Orders.GetMyOrderByCode)
		orders.GET("/:id", h.Orders.GetByID)
		orders.GET("/:id/status", h.Orders.GetStatus)
		orders.PATCH("/status/:id", authz.Require(domain.RoleAdmin), h.Orders.UpdateStatus)
	}

	products := authed.Group("/products")
	{
		products.GET("", h.Products.List)
		products.GET("/:id", h.Products.GetByID)
		products.POST("", h.Products.Create)
		products.PATCH("/:id", h.Products.Update)
		products.DELETE("/:id", h.Products.Delete)
	}

	brands := authed.Group("/brands")
	{
		brands.GET("", h.Brands.List)
		brands.GET("/:id", h.Brands.GetByID)
		brands.POST("", authz.Require(domain.RoleAdmin), h.Brands.Create)
		brands.PATCH("/:id", authz.Require(domain.RoleAdmin), h.Brands.Update)
		brands.DELETE("/:id", authz.Require(domain.RoleAdmin), h.Brands.Delete)
	}

	return r
}
