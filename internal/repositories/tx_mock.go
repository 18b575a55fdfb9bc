package repositories

// MockTxManager implements TxManager over the in-memory mock repositories.
// It emulates rollback by snapshotting each store before running fn and
// restoring the snapshots when fn fails.
type MockTxManager struct {
	Customers  *MockCustomerRepository
	Products   *MockProductRepository
	Orders     *MockOrderRepository
	OrderItems *MockOrderItemRepository
}

// NewMockTxManager creates a MockTxManager over a fresh set of mock stores.
func NewMockTxManager() *MockTxManager {
	items := NewMockOrderItemRepository()
	products := NewMockProductRepository()
	customers := NewMockCustomerRepository()
	return &MockTxManager{
		Customers:  customers,
		Products:   products,
		Orders:     NewMockOrderRepository(items, products, customers),
		OrderItems: items,
	}
}

// InTx runs fn against the mock repositories, undoing all writes on error.
func (m *MockTxManager) InTx(fn func(r Repositories) error) error {
	customers := m.Customers.snapshot()
	products := m.Products.snapshot()
	orders := m.Orders.snapshot()
	items := m.OrderItems.snapshot()

	err := fn(Repositories{
		Customers:  m.Customers,
		Products:   m.Products,
		Orders:     m.Orders,
		OrderItems: m.OrderItems,
	})
	if err != nil {
		m.Customers.restore(customers)
		m.Products.restore(products)
		m.Orders.restore(orders)
		m.OrderItems.restore(items)
		return err
	}
	return nil
}
