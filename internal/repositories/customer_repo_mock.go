package repositories

import (
	"sync"
	"time"

	"storefront/internal/models"
)

// MockCustomerRepository is an in-memory implementation of CustomerRepository.
type MockCustomerRepository struct {
	customers map[uint]models.Customer
	nextID    uint
	mu        sync.RWMutex
}

// NewMockCustomerRepository creates a new instance of MockCustomerRepository.
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[uint]models.Customer),
		nextID:    1,
	}
}

// GetAll returns all customers.
func (r *MockCustomerRepository) GetAll() ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		list = append(list, c)
	}
	return list, nil
}

// GetByID returns a customer by its ID.
func (r *MockCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[id]
	if !ok {
		return nil, &NotFoundError{Entity: EntityCustomer, ID: id}
	}
	return &c, nil
}

// Create adds a new customer, minting a sequential ID when unset.
func (r *MockCustomerRepository) Create(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if customer.ID == 0 {
		customer.ID = r.nextID
		r.nextID++
	} else if customer.ID >= r.nextID {
		r.nextID = customer.ID + 1
	}
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()
	r.customers[customer.ID] = *customer
	return nil
}

// Update modifies an existing customer.
func (r *MockCustomerRepository) Update(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[customer.ID]; !ok {
		return &NotFoundError{Entity: EntityCustomer, ID: customer.ID}
	}
	customer.UpdatedAt = time.Now()
	r.customers[customer.ID] = *customer
	return nil
}

// Delete removes a customer by its ID.
func (r *MockCustomerRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[id]; !ok {
		return &NotFoundError{Entity: EntityCustomer, ID: id}
	}
	delete(r.customers, id)
	return nil
}

func (r *MockCustomerRepository) snapshot() map[uint]models.Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := make(map[uint]models.Customer, len(r.customers))
	for id, c := range r.customers {
		snap[id] = c
	}
	return snap
}

func (r *MockCustomerRepository) restore(snap map[uint]models.Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers = snap
}
