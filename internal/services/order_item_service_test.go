package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/cache"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

func setupOrderItemService(t *testing.T) (*services.OrderItemService, *repositories.MockTxManager) {
	t.Helper()

	tx := repositories.NewMockTxManager()
	require.NoError(t, tx.Products.Create(&models.Product{Name: "Laptop", Price: 1200, Quantity: 10}))
	require.NoError(t, tx.Products.Create(&models.Product{Name: "Mouse", Price: 25, Quantity: 50}))

	return services.NewOrderItemService(tx, tx.OrderItems, cache.NewMemoryCache()), tx
}

func TestOrderItemService_CreateOrderItem(t *testing.T) {
	service, _ := setupOrderItemService(t)

	item, err := service.CreateOrderItem(1, 3)
	require.NoError(t, err)

	assert.NotZero(t, item.ID)
	assert.Equal(t, uint(1), item.ProductID)
	assert.Equal(t, 3, item.Quantity)
	// A freshly created item is standalone until an order is built over it.
	assert.Nil(t, item.OrderID)
}

func TestOrderItemService_CreateOrderItem_UnknownProduct(t *testing.T) {
	service, tx := setupOrderItemService(t)

	_, err := service.CreateOrderItem(99, 1)
	require.Error(t, err)
	assert.True(t, repositories.IsNotFound(err))

	items, err := tx.OrderItems.GetAll()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOrderItemService_UpdateOrderItem(t *testing.T) {
	service, _ := setupOrderItemService(t)

	item, err := service.CreateOrderItem(1, 3)
	require.NoError(t, err)

	updated, err := service.UpdateOrderItem(item.ID, 2, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(2), updated.ProductID)
	assert.Equal(t, 7, updated.Quantity)
}

func TestOrderItemService_UpdateOrderItem_UnknownProductRollsBack(t *testing.T) {
	service, tx := setupOrderItemService(t)

	item, err := service.CreateOrderItem(1, 3)
	require.NoError(t, err)

	_, err = service.UpdateOrderItem(item.ID, 99, 7)
	require.Error(t, err)
	assert.True(t, repositories.IsNotFound(err))

	unchanged, err := tx.OrderItems.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), unchanged.ProductID)
	assert.Equal(t, 3, unchanged.Quantity)
}

func TestOrderItemService_DeleteOrderItem(t *testing.T) {
	service, tx := setupOrderItemService(t)

	item, err := service.CreateOrderItem(2, 1)
	require.NoError(t, err)

	require.NoError(t, service.DeleteOrderItem(item.ID))

	_, err = tx.OrderItems.GetByID(item.ID)
	assert.True(t, repositories.IsNotFound(err))
}

func TestOrderItemService_DeleteOrderItem_NotFound(t *testing.T) {
	service, _ := setupOrderItemService(t)

	err := service.DeleteOrderItem(404)
	assert.True(t, repositories.IsNotFound(err))
}
