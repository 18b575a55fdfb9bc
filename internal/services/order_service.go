package services

import (
	"fmt"
	"log"
	"time"

	"storefront/internal/cache"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

const (
	allOrdersKey         = "OrderCache::allOrders"
	orderKeyFmt          = "OrderCache::order:%d"
	customerOrdersKeyFmt = "OrderCache::customer:%d"
	frequentBuyersKeyFmt = "OrderCache::frequentBuyers:%d"
)

// EventPublisher publishes order lifecycle events to the message broker.
type EventPublisher interface {
	PublishOrderEvent(event string, payload map[string]interface{}) error
}

// OrderLine is one requested product/quantity pair in a placement request.
type OrderLine struct {
	ProductID uint
	Quantity  int
}

// OrderService handles order aggregates: building an order from existing
// items, the one-shot placement workflow, updates, explicit cascade deletes,
// and the reporting queries.
//
// Every multi-step write runs through the TxManager so that a missing
// customer, product, or item rolls the whole unit of work back.
type OrderService struct {
	tx        repositories.TxManager
	orders    repositories.OrderRepository
	cache     cache.Cache
	events    EventPublisher
	queryKeys keySet
}

// NewOrderService creates a new OrderService. events may be nil, in which
// case no lifecycle events are published.
func NewOrderService(tx repositories.TxManager, orders repositories.OrderRepository, c cache.Cache, events EventPublisher) *OrderService {
	return &OrderService{
		tx:     tx,
		orders: orders,
		cache:  c,
		events: events,
	}
}

// GetAllOrders retrieves all orders with their items populated.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	var cached []models.Order
	if cacheLookup(s.cache, allOrdersKey, &cached) {
		return cached, nil
	}
	orders, err := s.orders.GetAll()
	if err != nil {
		return nil, err
	}
	cacheStore(s.cache, allOrdersKey, orders)
	return orders, nil
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id uint) (*models.Order, error) {
	key := fmt.Sprintf(orderKeyFmt, id)
	var cached models.Order
	if cacheLookup(s.cache, key, &cached) {
		return &cached, nil
	}
	order, err := s.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	cacheStore(s.cache, key, order)
	return order, nil
}

// GetOrdersByCustomer retrieves every order a customer has placed.
func (s *OrderService) GetOrdersByCustomer(customerID uint) ([]models.Order, error) {
	key := fmt.Sprintf(customerOrdersKeyFmt, customerID)
	var cached []models.Order
	if cacheLookup(s.cache, key, &cached) {
		return cached, nil
	}
	orders, err := s.orders.FindByCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	cacheStore(s.cache, key, orders)
	s.queryKeys.add(key)
	return orders, nil
}

// FrequentBuyers reports customers with at least minOrders orders. minOrders
// below 1 is clamped to 1.
func (s *OrderService) FrequentBuyers(minOrders int) ([]models.FrequentBuyer, error) {
	if minOrders < 1 {
		minOrders = 1
	}

	key := fmt.Sprintf(frequentBuyersKeyFmt, minOrders)
	var cached []models.FrequentBuyer
	if cacheLookup(s.cache, key, &cached) {
		return cached, nil
	}
	buyers, err := s.orders.FrequentBuyers(minOrders)
	if err != nil {
		return nil, err
	}
	cacheStore(s.cache, key, buyers)
	s.queryKeys.add(key)
	return buyers, nil
}

// BuildOrder assembles an order from a customer, a date, and a sequence of
// existing order item IDs. The customer and every item are resolved before
// anything is persisted; any miss aborts the transaction.
func (s *OrderService) BuildOrder(customerID uint, orderDate time.Time, itemIDs []uint) (*models.Order, error) {
	var orderID uint
	err := s.tx.InTx(func(r repositories.Repositories) error {
		order, err := buildOrder(r, customerID, orderDate, itemIDs)
		if err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.evictOrderCaches(orderID)
	return s.orders.GetByID(orderID)
}

// PlaceOrder is the composite placement workflow: resolve the customer,
// create one order item per line, then build the order over those items, all
// in a single transaction. A missing customer or product leaves no new rows
// behind.
func (s *OrderService) PlaceOrder(customerID uint, orderDate time.Time, lines []OrderLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrNoLineItems
	}

	var orderID uint
	err := s.tx.InTx(func(r repositories.Repositories) error {
		// Customer gate first: no items are created for an unknown customer.
		if _, err := r.Customers.GetByID(customerID); err != nil {
			return err
		}

		itemIDs := make([]uint, 0, len(lines))
		for _, line := range lines {
			item, err := createOrderItem(r, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			itemIDs = append(itemIDs, item.ID)
		}

		order, err := buildOrder(r, customerID, orderDate, itemIDs)
		if err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.evictOrderCaches(orderID)
	placed, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	s.publish("order.placed", map[string]interface{}{
		"order_id":    placed.ID,
		"customer_id": placed.CustomerID,
		"items":       len(placed.Items),
	})
	return placed, nil
}

// UpdateOrder re-points an order at a customer/date and replaces its item
// list wholesale: previously attached items that are not in the new set are
// deleted, the new set is attached. The result is exactly the new set, never
// a union.
func (s *OrderService) UpdateOrder(id uint, customerID uint, orderDate time.Time, itemIDs []uint) (*models.Order, error) {
	err := s.tx.InTx(func(r repositories.Repositories) error {
		order, err := r.Orders.GetByID(id)
		if err != nil {
			return err
		}
		if _, err := r.Customers.GetByID(customerID); err != nil {
			return err
		}

		// Resolve the full new set before touching anything.
		newItems := make([]models.OrderItem, 0, len(itemIDs))
		keep := make(map[uint]bool, len(itemIDs))
		for _, itemID := range itemIDs {
			item, err := r.OrderItems.GetByID(itemID)
			if err != nil {
				return err
			}
			newItems = append(newItems, *item)
			keep[item.ID] = true
		}

		// Orphan removal: previously attached items not re-attached are gone.
		previous, err := r.OrderItems.FindByOrderID(order.ID)
		if err != nil {
			return err
		}
		for _, prev := range previous {
			if !keep[prev.ID] {
				if err := r.OrderItems.Delete(prev.ID); err != nil {
					return err
				}
			}
		}

		order.CustomerID = customerID
		order.OrderDate = orderDate
		order.Items = nil
		if err := r.Orders.Save(order); err != nil {
			return err
		}

		for i := range newItems {
			newItems[i].OrderID = &order.ID
			if err := r.OrderItems.Update(&newItems[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.evictOrderCaches(id)
	return s.orders.GetByID(id)
}

// DeleteOrder removes an order and cascades to its items: the owned items are
// deleted explicitly in the same transaction as the order row.
func (s *OrderService) DeleteOrder(id uint) error {
	err := s.tx.InTx(func(r repositories.Repositories) error {
		if _, err := r.Orders.GetByID(id); err != nil {
			return err
		}
		if err := r.OrderItems.DeleteByOrderID(id); err != nil {
			return err
		}
		return r.Orders.Delete(id)
	})
	if err != nil {
		return err
	}

	s.evictOrderCaches(id)
	s.publish("order.deleted", map[string]interface{}{"order_id": id})
	return nil
}

// OrdersWithDetails returns every order joined with customer and product
// details. Subtotals read the product's current price at query time; no
// price snapshot is kept on the item.
func (s *OrderService) OrdersWithDetails() ([]models.OrderDetail, error) {
	orders, err := s.orders.GetAll()
	if err != nil {
		return nil, err
	}

	details := make([]models.OrderDetail, 0, len(orders))
	for _, order := range orders {
		detail := models.OrderDetail{
			OrderID:   order.ID,
			OrderDate: order.OrderDate,
			Items:     make([]models.OrderItemDetail, 0, len(order.Items)),
		}
		if order.Customer != nil {
			detail.CustomerID = order.Customer.ID
			detail.CustomerName = order.Customer.Name
			detail.CustomerEmail = order.Customer.Email
		}
		for _, item := range order.Items {
			line := models.OrderItemDetail{
				OrderItemID: item.ID,
				ProductID:   item.ProductID,
				Quantity:    item.Quantity,
			}
			if item.Product != nil {
				line.ProductName = item.Product.Name
				line.ProductPrice = item.Product.Price
				line.Subtotal = float64(item.Quantity) * item.Product.Price
			}
			detail.Items = append(detail.Items, line)
		}
		details = append(details, detail)
	}
	return details, nil
}

// TotalSpendPerCustomer reports what each customer has spent in total.
func (s *OrderService) TotalSpendPerCustomer() ([]models.CustomerSpend, error) {
	return s.orders.TotalSpendPerCustomer()
}

// TotalSalesPerProduct reports units and revenue sold per product.
func (s *OrderService) TotalSalesPerProduct() ([]models.ProductSales, error) {
	return s.orders.TotalSalesPerProduct()
}

func (s *OrderService) evictOrderCaches(id uint) {
	keys := append(s.queryKeys.drain(), allOrdersKey, fmt.Sprintf(orderKeyFmt, id), allOrderItemsKey)
	cacheEvict(s.cache, keys...)
}

func (s *OrderService) publish(event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}

// createOrderItem is the order item factory: it resolves the product and
// persists a standalone item with no owning order.
func createOrderItem(r repositories.Repositories, productID uint, quantity int) (*models.OrderItem, error) {
	if _, err := r.Products.GetByID(productID); err != nil {
		return nil, err
	}
	item := &models.OrderItem{
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := r.OrderItems.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// buildOrder resolves the customer and every item ID, in input order, before
// persisting the order and attaching the items to it.
//
// Attaching re-parents without a guard: an item that already belonged to
// another order silently moves to the new one.
func buildOrder(r repositories.Repositories, customerID uint, orderDate time.Time, itemIDs []uint) (*models.Order, error) {
	if _, err := r.Customers.GetByID(customerID); err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		item, err := r.OrderItems.GetByID(itemID)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	order := &models.Order{
		CustomerID: customerID,
		OrderDate:  orderDate,
	}
	if err := r.Orders.Create(order); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = &order.ID
		if err := r.OrderItems.Update(&items[i]); err != nil {
			return nil, err
		}
	}
	order.Items = items
	return order, nil
}
