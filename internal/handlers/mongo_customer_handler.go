package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/services"
)

// MongoCustomerHandler handles HTTP requests for document-store customers.
type MongoCustomerHandler struct {
	service  *services.MongoCustomerService
	validate *validator.Validate
}

// NewMongoCustomerHandler creates a new MongoCustomerHandler.
func NewMongoCustomerHandler(service *services.MongoCustomerService) *MongoCustomerHandler {
	return &MongoCustomerHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the mongo customer routes with the Fiber app.
func (h *MongoCustomerHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/mongo/customers")
	routes.Get("/", h.HandleGetCustomers)
	routes.Get("/:id", h.HandleGetCustomerByID)
	routes.Post("/", h.HandleCreateCustomer)
	routes.Put("/:id", h.HandleUpdateCustomer)
	routes.Delete("/:id", h.HandleDeleteCustomer)
}

// HandleGetCustomers retrieves all document-store customers.
func (h *MongoCustomerHandler) HandleGetCustomers(c *fiber.Ctx) error {
	customers, err := h.service.GetAllCustomers(c.UserContext())
	if err != nil {
		log.Printf("Error getting mongo customers: %v", err)
		return failWith(c, err, "Could not retrieve customers")
	}
	return c.JSON(customers)
}

// HandleGetCustomerByID retrieves a single customer by its document ID.
func (h *MongoCustomerHandler) HandleGetCustomerByID(c *fiber.Ctx) error {
	customer, err := h.service.GetCustomerByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return failWith(c, err, "Could not retrieve customer")
	}
	return c.JSON(customer)
}

// HandleCreateCustomer stores a new customer document.
func (h *MongoCustomerHandler) HandleCreateCustomer(c *fiber.Ctx) error {
	var customer models.MongoCustomer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(customer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.service.CreateCustomer(c.UserContext(), &customer); err != nil {
		log.Printf("Error creating mongo customer: %v", err)
		return failWith(c, err, "Could not create customer")
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// HandleUpdateCustomer updates an existing customer document.
func (h *MongoCustomerHandler) HandleUpdateCustomer(c *fiber.Ctx) error {
	var customer models.MongoCustomer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	customer.ID = c.Params("id")
	if err := h.validate.Struct(customer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.service.UpdateCustomer(c.UserContext(), &customer); err != nil {
		log.Printf("Error updating mongo customer %s: %v", customer.ID, err)
		return failWith(c, err, "Could not update customer")
	}
	return c.JSON(customer)
}

// HandleDeleteCustomer deletes a customer document by its ID.
func (h *MongoCustomerHandler) HandleDeleteCustomer(c *fiber.Ctx) error {
	if err := h.service.DeleteCustomer(c.UserContext(), c.Params("id")); err != nil {
		return failWith(c, err, "Could not delete customer")
	}
	return c.JSON(fiber.Map{"message": "Customer deleted successfully"})
}
