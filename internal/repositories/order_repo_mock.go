package repositories

import (
	"sort"
	"sync"
	"time"

	"storefront/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// Reads join the item list from a sibling MockOrderItemRepository so the
// populated shape matches what the GORM repository preloads; the report
// queries join the product and customer stores the same way the SQL does.
type MockOrderRepository struct {
	orders    map[uint]models.Order
	nextID    uint
	items     *MockOrderItemRepository
	products  *MockProductRepository
	customers *MockCustomerRepository
	mu        sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository(items *MockOrderItemRepository, products *MockProductRepository, customers *MockCustomerRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders:    make(map[uint]models.Order),
		nextID:    1,
		items:     items,
		products:  products,
		customers: customers,
	}
}

// GetAll returns all orders with their item lists populated.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		o.Items, _ = r.items.FindByOrderID(o.ID)
		list = append(list, o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// GetByID returns an order by its ID with its item list populated.
func (r *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, &NotFoundError{Entity: EntityOrder, ID: id}
	}
	o.Items, _ = r.items.FindByOrderID(o.ID)
	return &o, nil
}

// Create adds a new order, minting a sequential ID when unset.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == 0 {
		order.ID = r.nextID
		r.nextID++
	} else if order.ID >= r.nextID {
		r.nextID = order.ID + 1
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// Save updates an existing order.
func (r *MockOrderRepository) Save(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return &NotFoundError{Entity: EntityOrder, ID: order.ID}
	}
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// Delete removes an order by its ID.
func (r *MockOrderRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return &NotFoundError{Entity: EntityOrder, ID: id}
	}
	delete(r.orders, id)
	return nil
}

// FindByCustomerID returns every order placed by the given customer with item
// lists populated.
func (r *MockOrderRepository) FindByCustomerID(customerID uint) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.Order
	for _, o := range r.orders {
		if o.CustomerID != customerID {
			continue
		}
		o.Items, _ = r.items.FindByOrderID(o.ID)
		list = append(list, o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// TotalSpendPerCustomer sums quantity * current product price per customer.
func (r *MockOrderRepository) TotalSpendPerCustomer() ([]models.CustomerSpend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	totals := make(map[uint]float64)
	for _, o := range r.orders {
		items, _ := r.items.FindByOrderID(o.ID)
		for _, it := range items {
			if p, err := r.products.GetByID(it.ProductID); err == nil {
				totals[o.CustomerID] += float64(it.Quantity) * p.Price
			}
		}
	}

	spends := make([]models.CustomerSpend, 0, len(totals))
	for customerID, total := range totals {
		spend := models.CustomerSpend{CustomerID: customerID, TotalSpend: total}
		if c, err := r.customers.GetByID(customerID); err == nil {
			spend.CustomerName = c.Name
		}
		spends = append(spends, spend)
	}
	sort.Slice(spends, func(i, j int) bool { return spends[i].TotalSpend > spends[j].TotalSpend })
	return spends, nil
}

// TotalSalesPerProduct sums units and revenue per product across all orders.
func (r *MockOrderRepository) TotalSalesPerProduct() ([]models.ProductSales, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	units := make(map[uint]int64)
	for _, o := range r.orders {
		items, _ := r.items.FindByOrderID(o.ID)
		for _, it := range items {
			units[it.ProductID] += int64(it.Quantity)
		}
	}

	sales := make([]models.ProductSales, 0, len(units))
	for productID, sold := range units {
		sale := models.ProductSales{ProductID: productID, UnitsSold: sold}
		if p, err := r.products.GetByID(productID); err == nil {
			sale.ProductName = p.Name
			sale.TotalRevenue = float64(sold) * p.Price
		}
		sales = append(sales, sale)
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].TotalRevenue > sales[j].TotalRevenue })
	return sales, nil
}

// FrequentBuyers lists customers with at least minOrders orders.
func (r *MockOrderRepository) FrequentBuyers(minOrders int) ([]models.FrequentBuyer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[uint]int64)
	for _, o := range r.orders {
		counts[o.CustomerID]++
	}

	var buyers []models.FrequentBuyer
	for customerID, count := range counts {
		if count < int64(minOrders) {
			continue
		}
		buyer := models.FrequentBuyer{CustomerID: customerID, OrderCount: count}
		if c, err := r.customers.GetByID(customerID); err == nil {
			buyer.CustomerName = c.Name
			buyer.CustomerEmail = c.Email
		}
		buyers = append(buyers, buyer)
	}
	sort.Slice(buyers, func(i, j int) bool { return buyers[i].OrderCount > buyers[j].OrderCount })
	return buyers, nil
}

func (r *MockOrderRepository) snapshot() map[uint]models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := make(map[uint]models.Order, len(r.orders))
	for id, o := range r.orders {
		snap[id] = o
	}
	return snap
}

func (r *MockOrderRepository) restore(snap map[uint]models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = snap
}

// MockOrderItemRepository is an in-memory implementation of OrderItemRepository.
type MockOrderItemRepository struct {
	items  map[uint]models.OrderItem
	nextID uint
	mu     sync.RWMutex
}

// NewMockOrderItemRepository creates a new instance of MockOrderItemRepository.
func NewMockOrderItemRepository() *MockOrderItemRepository {
	return &MockOrderItemRepository{
		items:  make(map[uint]models.OrderItem),
		nextID: 1,
	}
}

// GetAll returns all order items.
func (r *MockOrderItemRepository) GetAll() ([]models.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.OrderItem, 0, len(r.items))
	for _, it := range r.items {
		list = append(list, it)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// GetByID returns an order item by its ID.
func (r *MockOrderItemRepository) GetByID(id uint) (*models.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[id]
	if !ok {
		return nil, &NotFoundError{Entity: EntityOrderItem, ID: id}
	}
	return &it, nil
}

// Create adds a new order item, minting a sequential ID when unset.
func (r *MockOrderItemRepository) Create(item *models.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == 0 {
		item.ID = r.nextID
		r.nextID++
	} else if item.ID >= r.nextID {
		r.nextID = item.ID + 1
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	r.items[item.ID] = *item
	return nil
}

// Update modifies an existing order item.
func (r *MockOrderItemRepository) Update(item *models.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return &NotFoundError{Entity: EntityOrderItem, ID: item.ID}
	}
	item.UpdatedAt = time.Now()
	r.items[item.ID] = *item
	return nil
}

// Delete removes an order item by its ID.
func (r *MockOrderItemRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return &NotFoundError{Entity: EntityOrderItem, ID: id}
	}
	delete(r.items, id)
	return nil
}

// FindByOrderID returns all items attached to the given order, ordered by ID.
func (r *MockOrderItemRepository) FindByOrderID(orderID uint) ([]models.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.OrderItem
	for _, it := range r.items {
		if it.OrderID != nil && *it.OrderID == orderID {
			list = append(list, it)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// DeleteByOrderID removes every item attached to the given order.
func (r *MockOrderItemRepository) DeleteByOrderID(orderID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, it := range r.items {
		if it.OrderID != nil && *it.OrderID == orderID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *MockOrderItemRepository) snapshot() map[uint]models.OrderItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := make(map[uint]models.OrderItem, len(r.items))
	for id, it := range r.items {
		snap[id] = it
	}
	return snap
}

func (r *MockOrderItemRepository) restore(snap map[uint]models.OrderItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = snap
}
