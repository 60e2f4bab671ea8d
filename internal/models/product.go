package models

import "github.com/shopspring/decimal"

type Product struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	Name     string          `gorm:"size:120;not null" json:"name"`
	Category string          `gorm:"size:80;not null" json:"category"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock    int             `gorm:"not null" json:"stock"`
}

func (Product) TableName() string {
	return "products"
}

type CreateProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Stock    *int    `json:"stock" binding:"required,gte=0"`
}

// UpdateProductRequest carries a partial update: a nil field was not supplied
// and leaves the stored value unchanged.
type UpdateProductRequest struct {
	Name     *string  `json:"name" binding:"omitempty,min=1"`
	Category *string  `json:"category" binding:"omitempty,min=1"`
	Price    *float64 `json:"price" binding:"omitempty,gt=0"`
	Stock    *int     `json:"stock" binding:"omitempty,gte=0"`
}

type ListProductsQuery struct {
	Page      int    `form:"page,default=1" binding:"min=1"`
	PageSize  int    `form:"page_size,default=20" binding:"min=1,max=100"`
	SortBy    string `form:"sort_by,default=id" binding:"oneof=id name category price stock"`
	SortOrder string `form:"sort_order,default=asc" binding:"oneof=asc desc"`
}

type ProductResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}

func (p Product) ToResponse() ProductResponse {
	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    MoneyFloat(p.Price),
		Stock:    p.Stock,
	}
}

// MoneyFloat renders a decimal amount as a float rounded to two places.
// RoundBank keeps the same half-even rule used when totals are quantized.
func MoneyFloat(d decimal.Decimal) float64 {
	return d.RoundBank(2).InexactFloat64()
}
