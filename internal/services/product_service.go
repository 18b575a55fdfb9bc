package services

import (
	"fmt"

	"storefront/internal/cache"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

const (
	allProductsKey    = "ProductCache::allProducts"
	productKeyFmt     = "ProductCache::product:%d"
	productListKeyFmt = "ProductCache::list:%d:%d"
)

// ProductPage is one page of the product listing.
type ProductPage struct {
	Products []models.Product `json:"products"`
	Page     int              `json:"page"`
	Size     int              `json:"size"`
	Total    int64            `json:"total"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	cache    cache.Cache
	listKeys keySet
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, c cache.Cache) *ProductService {
	return &ProductService{repo: repo, cache: c}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	var cached []models.Product
	if cacheLookup(s.cache, allProductsKey, &cached) {
		return cached, nil
	}
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	cacheStore(s.cache, allProductsKey, products)
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	key := fmt.Sprintf(productKeyFmt, id)
	var cached models.Product
	if cacheLookup(s.cache, key, &cached) {
		return &cached, nil
	}
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	cacheStore(s.cache, key, product)
	return product, nil
}

// ListProducts retrieves one page of products. Pages are 1-based; size is
// clamped to a sane range.
func (s *ProductService) ListProducts(page, size int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	key := fmt.Sprintf(productListKeyFmt, page, size)
	var cached ProductPage
	if cacheLookup(s.cache, key, &cached) {
		return &cached, nil
	}

	products, total, err := s.repo.List((page-1)*size, size)
	if err != nil {
		return nil, err
	}
	result := &ProductPage{
		Products: products,
		Page:     page,
		Size:     size,
		Total:    total,
	}
	cacheStore(s.cache, key, result)
	s.listKeys.add(key)
	return result, nil
}

// evictListPages drops every cached listing page so writes never serve a
// stale page for the TTL window.
func (s *ProductService) evictListPages() {
	if keys := s.listKeys.drain(); len(keys) > 0 {
		cacheEvict(s.cache, keys...)
	}
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.repo.Create(product); err != nil {
		return err
	}
	cacheEvict(s.cache, allProductsKey)
	s.evictListPages()
	cacheStore(s.cache, fmt.Sprintf(productKeyFmt, product.ID), product)
	return nil
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if err := s.repo.Update(product); err != nil {
		return err
	}
	key := fmt.Sprintf(productKeyFmt, product.ID)
	cacheEvict(s.cache, allProductsKey, key)
	s.evictListPages()
	cacheStore(s.cache, key, product)
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	cacheEvict(s.cache, allProductsKey, fmt.Sprintf(productKeyFmt, id))
	s.evictListPages()
	return nil
}
