package repositories

import "storefront/internal/models"

// OrderRepository defines the interface for order data access. Reads return
// orders with their item list (and item products) populated.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	Create(order *models.Order) error
	Save(order *models.Order) error
	// Delete removes the order row only; callers cascade the item
	// deletion explicitly before calling it.
	Delete(id uint) error
	FindByCustomerID(customerID uint) ([]models.Order, error)
	TotalSpendPerCustomer() ([]models.CustomerSpend, error)
	TotalSalesPerProduct() ([]models.ProductSales, error)
	// FrequentBuyers lists customers with at least minOrders orders.
	FrequentBuyers(minOrders int) ([]models.FrequentBuyer, error)
}

// OrderItemRepository defines the interface for order item data access.
type OrderItemRepository interface {
	GetAll() ([]models.OrderItem, error)
	GetByID(id uint) (*models.OrderItem, error)
	Create(item *models.OrderItem) error
	Update(item *models.OrderItem) error
	Delete(id uint) error
	FindByOrderID(orderID uint) ([]models.OrderItem, error)
	DeleteByOrderID(orderID uint) error
}
