// Package seed populates an empty database from static JSON fixtures.
package seed

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"product-order-service/internal/models"
)

type productFixture struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}

type orderItemFixture struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type orderFixture struct {
	ID           uint               `json:"id"`
	CustomerName string             `json:"customer_name"`
	Status       string             `json:"status"`
	TotalAmount  float64            `json:"total_amount"`
	Items        []orderItemFixture `json:"items"`
}

// Run loads products then orders from the fixture files, but only when the
// product table is empty. Existing data is never overwritten. Explicit
// fixture ids are preserved.
func Run(db *gorm.DB, productsPath, ordersPath string) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	var productFixtures []productFixture
	if err := readFixtures(productsPath, &productFixtures); err != nil {
		return err
	}
	// Rows are created one at a time so fixtures without an explicit id
	// still get an auto-assigned key.
	for _, f := range productFixtures {
		product := models.Product{
			ID:       f.ID,
			Name:     f.Name,
			Category: f.Category,
			Price:    decimal.NewFromFloat(f.Price).RoundBank(2),
			Stock:    f.Stock,
		}
		if err := db.Create(&product).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
	}

	var orderFixtures []orderFixture
	if err := readFixtures(ordersPath, &orderFixtures); err != nil {
		return err
	}
	for _, f := range orderFixtures {
		status := f.Status
		if status == "" {
			status = models.OrderStatusPending
		}
		order := models.Order{
			ID:           f.ID,
			CustomerName: f.CustomerName,
			Status:       status,
			TotalAmount:  decimal.NewFromFloat(f.TotalAmount).RoundBank(2),
		}
		for _, item := range f.Items {
			order.Items = append(order.Items, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
		if err := db.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to seed orders: %w", err)
		}
	}

	log.Printf("Seeded %d products and %d orders", len(productFixtures), len(orderFixtures))
	return nil
}

// readFixtures decodes the JSON collection at path. A missing file means an
// empty collection, not an error.
func readFixtures(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read fixtures %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}
	return nil
}
