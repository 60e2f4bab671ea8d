package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"product-order-service/internal/db"
	"product-order-service/internal/models"
)

type ProductHandler struct {
	repo *db.ProductRepository
}

func NewProductHandler(repo *db.ProductRepository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// ListProducts returns a sorted page of products.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var q models.ListProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationError(c, err)
		return
	}

	products, err := h.repo.List(q)
	if err != nil {
		serverError(c, err)
		return
	}

	responses := make([]models.ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, p.ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}

// GetProduct returns a single product
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			notFound(c, "product", id)
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, product.ToResponse())
}

// CreateProduct persists a new product with its price quantized to 2 decimals.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	product := models.Product{
		Name:     req.Name,
		Category: req.Category,
		Price:    decimal.NewFromFloat(req.Price).RoundBank(2),
		Stock:    *req.Stock,
	}
	if err := h.repo.Create(&product); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product.ToResponse())
}

// UpdateProduct applies only the fields present in the payload.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	product, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			notFound(c, "product", id)
			return
		}
		serverError(c, err)
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		product.Price = decimal.NewFromFloat(*req.Price).RoundBank(2)
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := h.repo.Update(product); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, product.ToResponse())
}

// DeleteProduct removes a product unless an order item still references it.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.repo.GetByID(id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			notFound(c, "product", id)
			return
		}
		serverError(c, err)
		return
	}

	referenced, err := h.repo.IsReferenced(id)
	if err != nil {
		serverError(c, err)
		return
	}
	if referenced {
		c.JSON(http.StatusConflict, gin.H{"error": "product is referenced by existing orders"})
		return
	}

	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			notFound(c, "product", id)
			return
		}
		serverError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
