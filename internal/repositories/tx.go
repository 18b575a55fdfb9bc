package repositories

import (
	"gorm.io/gorm"
)

// Repositories bundles the stores that participate in a single unit of work.
type Repositories struct {
	Customers  CustomerRepository
	Products   ProductRepository
	Orders     OrderRepository
	OrderItems OrderItemRepository
}

// TxManager runs a function against a repository set bound to one
// transaction. If fn returns an error, every write made through that set is
// rolled back. This is the unit-of-work boundary for order placement:
// within it the caller is the sole writer of the order and its items.
type TxManager interface {
	InTx(fn func(r Repositories) error) error
}

// GORMTxManager implements TxManager on top of gorm's transaction support.
type GORMTxManager struct {
	db *gorm.DB
}

// NewGORMTxManager creates a new instance of GORMTxManager.
func NewGORMTxManager(db *gorm.DB) *GORMTxManager {
	return &GORMTxManager{db: db}
}

// InTx opens a database transaction and hands fn repositories bound to it.
func (m *GORMTxManager) InTx(fn func(r Repositories) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(Repositories{
			Customers:  NewGORMCustomerRepository(tx),
			Products:   NewGORMProductRepository(tx),
			Orders:     NewGORMOrderRepository(tx),
			OrderItems: NewGORMOrderItemRepository(tx),
		})
	})
}
