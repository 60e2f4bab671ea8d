package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"product-order-service/internal/db"
	"product-order-service/internal/models"
)

type OrderHandler struct {
	orders   *db.OrderRepository
	products *db.ProductRepository
}

func NewOrderHandler(orders *db.OrderRepository, products *db.ProductRepository) *OrderHandler {
	return &OrderHandler{orders: orders, products: products}
}

// ListOrders returns a sorted, optionally filtered page of orders.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var q models.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationError(c, err)
		return
	}

	orders, err := h.orders.List(q)
	if err != nil {
		serverError(c, err)
		return
	}

	responses := make([]models.OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, o.ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}

// GetOrder returns a single order with its items
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := h.orders.GetByID(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			notFound(c, "order", id)
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, order.ToResponse())
}

// CreateOrder resolves every line item, computes the total and persists the
// order with its items atomically.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	if req.Status == "" {
		req.Status = models.OrderStatusPending
	}

	items, total, missingID, err := h.resolveItems(req.Items)
	if err != nil {
		serverError(c, err)
		return
	}
	if missingID != 0 {
		notFound(c, "product", missingID)
		return
	}

	order := models.Order{
		CustomerName: req.CustomerName,
		Status:       req.Status,
		TotalAmount:  total,
		Items:        items,
	}
	if err := h.orders.Create(&order); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order.ToResponse())
}

// UpdateOrder applies supplied fields; a supplied item list replaces the old
// one wholesale and the total is recomputed against the new set.
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	order, err := h.orders.GetByID(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			notFound(c, "order", id)
			return
		}
		serverError(c, err)
		return
	}

	if req.CustomerName != nil {
		order.CustomerName = *req.CustomerName
	}
	if req.Status != nil {
		order.Status = *req.Status
	}

	replaceItems := req.Items != nil
	if replaceItems {
		items, total, missingID, err := h.resolveItems(req.Items)
		if err != nil {
			serverError(c, err)
			return
		}
		if missingID != 0 {
			notFound(c, "product", missingID)
			return
		}
		order.Items = items
		order.TotalAmount = total
	}

	if err := h.orders.Update(order, replaceItems); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, order.ToResponse())
}

// DeleteOrder removes the order and all of its items.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.orders.Delete(id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			notFound(c, "order", id)
			return
		}
		serverError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// resolveItems looks every product up before anything is written and sums the
// quantized total. A non-zero missingID names the first product, in item
// order, that does not exist.
func (h *OrderHandler) resolveItems(reqItems []models.OrderItemRequest) ([]models.OrderItem, decimal.Decimal, uint, error) {
	ids := make([]uint, 0, len(reqItems))
	for _, item := range reqItems {
		ids = append(ids, item.ProductID)
	}
	found, err := h.products.FindByIDs(ids)
	if err != nil {
		return nil, decimal.Zero, 0, err
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(reqItems))
	for _, item := range reqItems {
		product, ok := found[item.ProductID]
		if !ok {
			return nil, decimal.Zero, item.ProductID, nil
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		items = append(items, models.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return items, total.RoundBank(2), 0, nil
}
