package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"product-order-service/internal/db"
)

// NewRouter wires every route onto a gin engine with the default logger and
// recovery middleware.
func NewRouter(products *db.ProductRepository, orders *db.OrderRepository) *gin.Engine {
	registerTagNames()

	productHandler := NewProductHandler(products)
	orderHandler := NewOrderHandler(orders, products)

	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Product Order API is running"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "product-order-service"})
	})

	router.GET("/products", productHandler.ListProducts)
	router.GET("/products/:id", productHandler.GetProduct)
	router.POST("/products", productHandler.CreateProduct)
	router.PUT("/products/:id", productHandler.UpdateProduct)
	router.DELETE("/products/:id", productHandler.DeleteProduct)

	router.GET("/orders", orderHandler.ListOrders)
	router.GET("/orders/:id", orderHandler.GetOrder)
	router.POST("/orders", orderHandler.CreateOrder)
	router.PUT("/orders/:id", orderHandler.UpdateOrder)
	router.DELETE("/orders/:id", orderHandler.DeleteOrder)

	return router
}
