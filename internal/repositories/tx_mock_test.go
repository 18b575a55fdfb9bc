package repositories_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

func TestMockTxManager_CommitsOnSuccess(t *testing.T) {
	tx := repositories.NewMockTxManager()

	err := tx.InTx(func(r repositories.Repositories) error {
		return r.Customers.Create(&models.Customer{Name: "Alice", Email: "alice@example.com"})
	})
	require.NoError(t, err)

	customers, err := tx.Customers.GetAll()
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestMockTxManager_RollsBackAllStoresOnError(t *testing.T) {
	tx := repositories.NewMockTxManager()
	require.NoError(t, tx.Products.Create(&models.Product{Name: "Laptop", Price: 1200}))

	boom := errors.New("boom")
	err := tx.InTx(func(r repositories.Repositories) error {
		if err := r.Customers.Create(&models.Customer{Name: "Bob", Email: "bob@example.com"}); err != nil {
			return err
		}
		item := &models.OrderItem{ProductID: 1, Quantity: 2}
		if err := r.OrderItems.Create(item); err != nil {
			return err
		}
		if err := r.Orders.Create(&models.Order{CustomerID: 1}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	customers, err := tx.Customers.GetAll()
	require.NoError(t, err)
	assert.Empty(t, customers)

	items, err := tx.OrderItems.GetAll()
	require.NoError(t, err)
	assert.Empty(t, items)

	orders, err := tx.Orders.GetAll()
	require.NoError(t, err)
	assert.Empty(t, orders)

	// Pre-existing rows survive the rollback.
	products, err := tx.Products.GetAll()
	require.NoError(t, err)
	assert.Len(t, products, 1)
}
