package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"product-order-service/internal/models"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns one page of products. The sort column is whitelisted at
// request validation, so it is safe to splice into the ORDER BY clause.
func (r *ProductRepository) List(q models.ListProductsQuery) ([]models.Product, error) {
	products := make([]models.Product, 0, q.PageSize)
	err := r.db.
		Order(orderClause(q.SortBy, q.SortOrder)).
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// FindByIDs returns the products for the given ids keyed by id. Missing ids
// are simply absent from the map.
func (r *ProductRepository) FindByIDs(ids []uint) (map[uint]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	found := make(map[uint]models.Product, len(products))
	for _, p := range products {
		found[p.ID] = p
	}
	return found, nil
}

func (r *ProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(product *models.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsReferenced reports whether any order item still points at the product.
// Checked at the application layer so delete answers 409 before the engine's
// foreign key would reject it.
func (r *ProductRepository) IsReferenced(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count references: %w", err)
	}
	return count > 0, nil
}

// orderClause builds the ORDER BY expression with a stable id tie-break.
func orderClause(sortBy, sortOrder string) string {
	clause := sortBy + " " + sortOrder
	if sortBy != "id" {
		clause += ", id asc"
	}
	return clause
}
