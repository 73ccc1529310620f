package handler

import (
	"net/http"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/auth"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/events"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Products  *ProductHandler
	Auth      *AuthHandler
	Issuer    *auth.TokenIssuer
	Publisher events.Publisher
	Logger    *zap.Logger
}

func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(d.Logger))

	admin := middleware.RequireAdmin(d.Issuer, d.Logger)

	router.GET("/products", d.Products.ListProducts)
	router.GET("/products/:id", d.Products.GetProduct)
	router.POST("/products", admin, d.Products.CreateProduct)
	router.PUT("/products/:id", admin, d.Products.UpdateProduct)
	router.DELETE("/products/:id", admin, d.Products.DeleteProduct)
	router.POST("/auth/login", d.Auth.Login)

	router.GET("/health", func(c *gin.Context) {
		status := gin.H{
			"status":  "healthy",
			"service": "storefront-api",
		}
		if err := d.Publisher.HealthCheck(c.Request.Context()); err != nil {
			status["kafka"] = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["kafka"] = "healthy"
		c.JSON(http.StatusOK, status)
	})

	return router
}
