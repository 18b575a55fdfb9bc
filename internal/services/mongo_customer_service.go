package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// MongoCustomerService handles the document-store customer variant.
type MongoCustomerService struct {
	repo repositories.MongoCustomerRepository
}

// NewMongoCustomerService creates a new MongoCustomerService.
func NewMongoCustomerService(repo repositories.MongoCustomerRepository) *MongoCustomerService {
	return &MongoCustomerService{repo: repo}
}

// GetAllCustomers retrieves all document-store customers.
func (s *MongoCustomerService) GetAllCustomers(ctx context.Context) ([]models.MongoCustomer, error) {
	return s.repo.GetAll(ctx)
}

// GetCustomerByID retrieves a single customer by its document ID.
func (s *MongoCustomerService) GetCustomerByID(ctx context.Context, id string) (*models.MongoCustomer, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateCustomer stores a new customer document.
func (s *MongoCustomerService) CreateCustomer(ctx context.Context, customer *models.MongoCustomer) error {
	return s.repo.Create(ctx, customer)
}

// UpdateCustomer updates an existing customer document.
func (s *MongoCustomerService) UpdateCustomer(ctx context.Context, customer *models.MongoCustomer) error {
	return s.repo.Update(ctx, customer)
}

// DeleteCustomer deletes a customer document by its ID.
func (s *MongoCustomerService) DeleteCustomer(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
