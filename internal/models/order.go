package models

import "github.com/shopspring/decimal"

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusCancelled  = "cancelled"
)

type Order struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CustomerName string          `gorm:"size:120;not null" json:"customer_name"`
	Status       string          `gorm:"size:20;not null;default:pending" json:"status"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem rows are owned by their order and are never addressed directly
// by clients.
type OrderItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	OrderID   uint `gorm:"index;not null" json:"order_id"`
	ProductID uint `gorm:"index;not null" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name" binding:"required"`
	Status       string             `json:"status" binding:"omitempty,oneof=pending processing shipped cancelled"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderRequest is a partial update. Items, when supplied, replaces the
// stored item set wholesale.
type UpdateOrderRequest struct {
	CustomerName *string            `json:"customer_name" binding:"omitempty,min=1"`
	Status       *string            `json:"status" binding:"omitempty,oneof=pending processing shipped cancelled"`
	Items        []OrderItemRequest `json:"items" binding:"omitempty,min=1,dive"`
}

type ListOrdersQuery struct {
	CustomerName string `form:"customer_name"`
	Status       string `form:"status"`
	Page         int    `form:"page,default=1" binding:"min=1"`
	PageSize     int    `form:"page_size,default=20" binding:"min=1,max=100"`
	SortBy       string `form:"sort_by,default=id" binding:"oneof=id customer_name status total_amount"`
	SortOrder    string `form:"sort_order,default=asc" binding:"oneof=asc desc"`
}

type OrderItemResponse struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type OrderResponse struct {
	ID           uint                `json:"id"`
	CustomerName string              `json:"customer_name"`
	Status       string              `json:"status"`
	Items        []OrderItemResponse `json:"items"`
	TotalAmount  float64             `json:"total_amount"`
}

func (o Order) ToResponse() OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return OrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Status:       o.Status,
		Items:        items,
		TotalAmount:  MoneyFloat(o.TotalAmount),
	}
}
