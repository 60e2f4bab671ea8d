package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"product-order-service/internal/models"
)

func seedCatalog(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	seedProducts(t, gdb,
		models.Product{Name: "A", Category: "x", Price: money("10.00"), Stock: 10},
		models.Product{Name: "B", Category: "x", Price: money("5.00"), Stock: 10},
	)
}

func TestOrderRepository_CreateWithItems(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOrderRepository(gdb)
	seedCatalog(t, gdb)

	order := &models.Order{
		CustomerName: "Alice Johnson",
		Status:       models.OrderStatusPending,
		TotalAmount:  money("25.00"),
		Items: []models.OrderItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	}
	require.NoError(t, repo.Create(order))
	require.NotZero(t, order.ID)

	found, err := repo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", found.CustomerName)
	assert.True(t, found.TotalAmount.Equal(money("25.00")), "got total %s", found.TotalAmount)
	require.Len(t, found.Items, 2)
	assert.Equal(t, order.ID, found.Items[0].OrderID)
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOrderRepository(gdb)

	_, err := repo.GetByID(7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderRepository_List_Filters(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOrderRepository(gdb)
	seedCatalog(t, gdb)

	orders := []models.Order{
		{CustomerName: "Alice Johnson", Status: "pending", TotalAmount: money("10.00")},
		{CustomerName: "Alice Cooper", Status: "shipped", TotalAmount: money("20.00")},
		{CustomerName: "Bob Smith", Status: "pending", TotalAmount: money("30.00")},
	}
	require.NoError(t, gdb.Create(&orders).Error)

	base := models.ListOrdersQuery{Page: 1, PageSize: 20, SortBy: "id", SortOrder: "asc"}

	byName := base
	byName.CustomerName = "aLiCe"
	listed, err := repo.List(byName)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	byStatus := base
	byStatus.Status = "pending"
	listed, err = repo.List(byStatus)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	both := base
	both.CustomerName = "alice"
	both.Status = "pending"
	listed, err = repo.List(both)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Alice Johnson", listed[0].CustomerName)

	noMatch := base
	noMatch.Status = "cancelled"
	listed, err = repo.List(noMatch)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestOrderRepository_List_SortByTotal(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOrderRepository(gdb)

	orders := []models.Order{
		{CustomerName: "A", Status: "pending", TotalAmount: money("50.00")},
		{CustomerName: "B", Status: "pending", TotalAmount: money("150.00")},
		{CustomerName: "C", Status: "pending", TotalAmount: money("99.99")},
	}
	require.NoError(t, gdb.Create(&orders).Error)

	listed, err := repo.List(models.ListOrdersQuery{Page: 1, PageSize: 20, SortBy: "total_amount", SortOrder: "desc"})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "B", listed[0].CustomerName)
	assert.Equal(t, "C", listed[1].CustomerName)
	assert.Equal(t, "A", listed[2].CustomerName)
}

func TestOrderRepository_Update_ReplacesItems(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOrderRepository(gdb)
	seedCatalog(t, gdb)

	order := &models.Order{
		CustomerName: "Alice",
		Status:       models.OrderStatusPending,
		TotalAmount:  money("20.00"),
		Items: []models.OrderItem{
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 2},
		},
	}
	require.NoError(t, repo.Create(order))

	order.Status = models.OrderStatusProcessing
	order.TotalAmount = money("30.00")
	order.Items = []models.OrderItem{{ProductID: 1, Quantity: 3}}
	require.NoError(t, repo.Update(order, true))

	found, err := repo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, found.Status)
	assert.True(t, found.TotalAmount.Equal(money("30.00")))
	// full replacement, never the union of old and new
	require.Len(t, found.Items, 1)
	assert.Equal(t, uint(1), found.Items[0].ProductID)
	assert.Equal(t, 3, found.Items[0].Quantity)

	var itemCount int64
	require.NoError(t, gdb.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.EqualValues(t, 1, itemCount)
}

func TestOrderRepository_Update_ScalarsOnlyKeepsItems(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOrderRepository(gdb)
	seedCatalog(t, gdb)

	order := &models.Order{
		CustomerName: "Alice",
		Status:       models.OrderStatusPending,
		TotalAmount:  money("10.00"),
		Items:        []models.OrderItem{{ProductID: 1, Quantity: 1}},
	}
	require.NoError(t, repo.Create(order))

	order.CustomerName = "Alice J."
	require.NoError(t, repo.Update(order, false))

	found, err := repo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice J.", found.CustomerName)
	assert.Len(t, found.Items, 1)
}

func TestOrderRepository_Delete_Cascades(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOrderRepository(gdb)
	seedCatalog(t, gdb)

	order := &models.Order{
		CustomerName: "Alice",
		Status:       models.OrderStatusPending,
		TotalAmount:  money("20.00"),
		Items: []models.OrderItem{
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 2},
		},
	}
	require.NoError(t, repo.Create(order))

	require.NoError(t, repo.Delete(order.ID))

	_, err := repo.GetByID(order.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// child rows are gone, not just the parent
	var itemCount int64
	require.NoError(t, gdb.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestOrderRepository_Delete_NotFound(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOrderRepository(gdb)

	assert.ErrorIs(t, repo.Delete(123), ErrNotFound)
}
