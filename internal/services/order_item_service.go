package services

import (
	"fmt"

	"storefront/internal/cache"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

const (
	allOrderItemsKey = "OrderItemCache::allOrderItems"
	orderItemKeyFmt  = "OrderItemCache::OrderItem:%d"
)

// OrderItemService handles standalone order items: the factory that turns a
// product/quantity pair into a persisted, not-yet-attached item, plus plain
// CRUD over existing items.
type OrderItemService struct {
	tx    repositories.TxManager
	items repositories.OrderItemRepository
	cache cache.Cache
}

// NewOrderItemService creates a new OrderItemService.
func NewOrderItemService(tx repositories.TxManager, items repositories.OrderItemRepository, c cache.Cache) *OrderItemService {
	return &OrderItemService{
		tx:    tx,
		items: items,
		cache: c,
	}
}

// GetAllOrderItems retrieves all order items.
func (s *OrderItemService) GetAllOrderItems() ([]models.OrderItem, error) {
	var cached []models.OrderItem
	if cacheLookup(s.cache, allOrderItemsKey, &cached) {
		return cached, nil
	}
	items, err := s.items.GetAll()
	if err != nil {
		return nil, err
	}
	cacheStore(s.cache, allOrderItemsKey, items)
	return items, nil
}

// GetOrderItemByID retrieves a single order item by its ID.
func (s *OrderItemService) GetOrderItemByID(id uint) (*models.OrderItem, error) {
	key := fmt.Sprintf(orderItemKeyFmt, id)
	var cached models.OrderItem
	if cacheLookup(s.cache, key, &cached) {
		return &cached, nil
	}
	item, err := s.items.GetByID(id)
	if err != nil {
		return nil, err
	}
	cacheStore(s.cache, key, item)
	return item, nil
}

// CreateOrderItem resolves the product and persists a new standalone item
// bound to it. The item's owning order is left unset; attaching happens when
// an order is built over it. The factory does not deduplicate retries.
func (s *OrderItemService) CreateOrderItem(productID uint, quantity int) (*models.OrderItem, error) {
	var created *models.OrderItem
	err := s.tx.InTx(func(r repositories.Repositories) error {
		item, err := createOrderItem(r, productID, quantity)
		if err != nil {
			return err
		}
		created = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	cacheEvict(s.cache, allOrderItemsKey)
	cacheStore(s.cache, fmt.Sprintf(orderItemKeyFmt, created.ID), created)
	return created, nil
}

// UpdateOrderItem re-points an item at a product and sets its quantity.
func (s *OrderItemService) UpdateOrderItem(id uint, productID uint, quantity int) (*models.OrderItem, error) {
	var updated *models.OrderItem
	err := s.tx.InTx(func(r repositories.Repositories) error {
		item, err := r.OrderItems.GetByID(id)
		if err != nil {
			return err
		}
		if _, err := r.Products.GetByID(productID); err != nil {
			return err
		}
		item.ProductID = productID
		item.Product = nil
		item.Quantity = quantity
		if err := r.OrderItems.Update(item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf(orderItemKeyFmt, id)
	cacheEvict(s.cache, allOrderItemsKey, key)
	cacheStore(s.cache, key, updated)
	return updated, nil
}

// DeleteOrderItem removes a standalone item by its ID.
func (s *OrderItemService) DeleteOrderItem(id uint) error {
	err := s.tx.InTx(func(r repositories.Repositories) error {
		if _, err := r.OrderItems.GetByID(id); err != nil {
			return err
		}
		return r.OrderItems.Delete(id)
	})
	if err != nil {
		return err
	}

	cacheEvict(s.cache, allOrderItemsKey, fmt.Sprintf(orderItemKeyFmt, id))
	return nil
}
