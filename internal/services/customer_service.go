package services

import (
	"fmt"

	"storefront/internal/cache"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

const (
	allCustomersKey = "CustomerCache::allCustomers"
	customerKeyFmt  = "CustomerCache::customer:%d"
)

// CustomerService handles business logic related to customers.
type CustomerService struct {
	repo  repositories.CustomerRepository
	cache cache.Cache
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo repositories.CustomerRepository, c cache.Cache) *CustomerService {
	return &CustomerService{repo: repo, cache: c}
}

// GetAllCustomers retrieves all customers.
func (s *CustomerService) GetAllCustomers() ([]models.Customer, error) {
	var cached []models.Customer
	if cacheLookup(s.cache, allCustomersKey, &cached) {
		return cached, nil
	}
	customers, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	cacheStore(s.cache, allCustomersKey, customers)
	return customers, nil
}

// GetCustomerByID retrieves a single customer by its ID.
func (s *CustomerService) GetCustomerByID(id uint) (*models.Customer, error) {
	key := fmt.Sprintf(customerKeyFmt, id)
	var cached models.Customer
	if cacheLookup(s.cache, key, &cached) {
		return &cached, nil
	}
	customer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	cacheStore(s.cache, key, customer)
	return customer, nil
}

// CreateCustomer creates a new customer.
func (s *CustomerService) CreateCustomer(customer *models.Customer) error {
	if err := s.repo.Create(customer); err != nil {
		return err
	}
	cacheEvict(s.cache, allCustomersKey)
	cacheStore(s.cache, fmt.Sprintf(customerKeyFmt, customer.ID), customer)
	return nil
}

// UpdateCustomer updates an existing customer.
func (s *CustomerService) UpdateCustomer(customer *models.Customer) error {
	if err := s.repo.Update(customer); err != nil {
		return err
	}
	key := fmt.Sprintf(customerKeyFmt, customer.ID)
	cacheEvict(s.cache, allCustomersKey, key)
	cacheStore(s.cache, key, customer)
	return nil
}

// DeleteCustomer deletes a customer by its ID.
func (s *CustomerService) DeleteCustomer(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	cacheEvict(s.cache, allCustomersKey, fmt.Sprintf(customerKeyFmt, id))
	return nil
}
