package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"product-order-service/internal/models"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// List returns one page of orders with items preloaded. The optional
// customer name filter is a case-insensitive substring match; both filters
// are ANDed when present.
func (r *OrderRepository) List(q models.ListOrdersQuery) ([]models.Order, error) {
	tx := r.db.Preload("Items")
	if q.CustomerName != "" {
		tx = tx.Where("LOWER(customer_name) LIKE ?", "%"+strings.ToLower(q.CustomerName)+"%")
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	orders := make([]models.Order, 0, q.PageSize)
	err := tx.
		Order(orderClause(q.SortBy, q.SortOrder)).
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// Create persists the order and its items in a single transaction.
func (r *OrderRepository) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update writes the order's scalar columns and, when replaceItems is set,
// discards the stored item rows and inserts order.Items in their place.
// Everything happens in one transaction so a failed item insert leaves the
// previous state untouched.
func (r *OrderRepository) Update(order *models.Order, replaceItems bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"customer_name": order.CustomerName,
			"status":        order.Status,
			"total_amount":  order.TotalAmount,
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}

		if replaceItems {
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return fmt.Errorf("failed to clear order items: %w", err)
			}
			for i := range order.Items {
				order.Items[i].ID = 0
				order.Items[i].OrderID = order.ID
			}
			if err := tx.Create(&order.Items).Error; err != nil {
				return fmt.Errorf("failed to insert order items: %w", err)
			}
		}
		return nil
	})
}

// Delete removes the order and its items. The item delete is explicit so the
// cascade does not depend on backend foreign key enforcement.
func (r *OrderRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		result := tx.Delete(&models.Order{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
