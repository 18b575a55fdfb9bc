package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// GetAll retrieves all orders with their items and customers populated.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Customer").Preload("Items").Preload("Items.Product").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID with items populated.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Customer").Preload("Items").Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: EntityOrder, ID: id}
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// Create creates a new order row. Item attachment is written separately via
// the order item repository, so associations are not auto-saved here.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if err := r.db.Omit("Items", "Customer").Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Save updates an existing order row.
func (r *GORMOrderRepository) Save(order *models.Order) error {
	res := r.db.Omit("Items", "Customer").Save(order)
	if res.Error != nil {
		return fmt.Errorf("failed to save order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: EntityOrder, ID: order.ID}
	}
	return nil
}

// Delete deletes the order row by its ID.
func (r *GORMOrderRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: EntityOrder, ID: id}
	}
	return nil
}

// FindByCustomerID retrieves every order placed by the given customer.
func (r *GORMOrderRepository) FindByCustomerID(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Customer").Preload("Items").Preload("Items.Product").
		Where("customer_id = ?", customerID).Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders for customer %d: %w", customerID, err)
	}
	return orders, nil
}

// TotalSpendPerCustomer sums quantity * current product price per customer.
func (r *GORMOrderRepository) TotalSpendPerCustomer() ([]models.CustomerSpend, error) {
	var spends []models.CustomerSpend
	err := r.db.Raw(`
		SELECT c.id AS customer_id,
		       c.name AS customer_name,
		       COALESCE(SUM(oi.quantity * p.price), 0) AS total_spend
		FROM customers c
		JOIN orders o ON o.customer_id = c.id
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		GROUP BY c.id, c.name
		ORDER BY total_spend DESC`).Scan(&spends).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute spend per customer: %w", err)
	}
	return spends, nil
}

// TotalSalesPerProduct sums units and revenue per product across all orders.
func (r *GORMOrderRepository) TotalSalesPerProduct() ([]models.ProductSales, error) {
	var sales []models.ProductSales
	err := r.db.Raw(`
		SELECT p.id AS product_id,
		       p.name AS product_name,
		       COALESCE(SUM(oi.quantity), 0) AS units_sold,
		       COALESCE(SUM(oi.quantity * p.price), 0) AS total_revenue
		FROM products p
		JOIN order_items oi ON oi.product_id = p.id
		JOIN orders o ON o.id = oi.order_id
		GROUP BY p.id, p.name
		ORDER BY total_revenue DESC`).Scan(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute sales per product: %w", err)
	}
	return sales, nil
}

// FrequentBuyers lists customers with at least minOrders orders.
func (r *GORMOrderRepository) FrequentBuyers(minOrders int) ([]models.FrequentBuyer, error) {
	var buyers []models.FrequentBuyer
	err := r.db.Raw(`
		SELECT c.id AS customer_id,
		       c.name AS customer_name,
		       c.email AS customer_email,
		       COUNT(o.id) AS order_count
		FROM customers c
		JOIN orders o ON o.customer_id = c.id
		GROUP BY c.id, c.name, c.email
		HAVING COUNT(o.id) >= ?
		ORDER BY order_count DESC`, minOrders).Scan(&buyers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute frequent buyers: %w", err)
	}
	return buyers, nil
}

// GORMOrderItemRepository is a GORM implementation of OrderItemRepository.
type GORMOrderItemRepository struct {
	db *gorm.DB
}

// NewGORMOrderItemRepository creates a new instance of GORMOrderItemRepository.
func NewGORMOrderItemRepository(db *gorm.DB) *GORMOrderItemRepository {
	return &GORMOrderItemRepository{db: db}
}

// GetAll retrieves all order items with products populated.
func (r *GORMOrderItemRepository) GetAll() ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.db.Preload("Product").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get all order items: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single order item by its ID.
func (r *GORMOrderItemRepository) GetByID(id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.db.Preload("Product").First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: EntityOrderItem, ID: id}
		}
		return nil, fmt.Errorf("failed to get order item by ID %d: %w", id, err)
	}
	return &item, nil
}

// Create creates a new order item in the database.
func (r *GORMOrderItemRepository) Create(item *models.OrderItem) error {
	if err := r.db.Omit("Product").Create(item).Error; err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}
	return nil
}

// Update updates an existing order item in the database.
func (r *GORMOrderItemRepository) Update(item *models.OrderItem) error {
	res := r.db.Omit("Product").Save(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update order item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: EntityOrderItem, ID: item.ID}
	}
	return nil
}

// Delete deletes an order item by its ID from the database.
func (r *GORMOrderItemRepository) Delete(id uint) error {
	res := r.db.Delete(&models.OrderItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: EntityOrderItem, ID: id}
	}
	return nil
}

// FindByOrderID retrieves all items attached to the given order.
func (r *GORMOrderItemRepository) FindByOrderID(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.db.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to find items for order %d: %w", orderID, err)
	}
	return items, nil
}

// DeleteByOrderID deletes every item attached to the given order.
func (r *GORMOrderItemRepository) DeleteByOrderID(orderID uint) error {
	if err := r.db.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete items for order %d: %w", orderID, err)
	}
	return nil
}
