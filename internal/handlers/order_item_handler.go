package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
)

// OrderItemHandler handles HTTP requests for standalone order items.
type OrderItemHandler struct {
	service  *services.OrderItemService
	validate *validator.Validate
}

// NewOrderItemHandler creates a new OrderItemHandler.
func NewOrderItemHandler(service *services.OrderItemService) *OrderItemHandler {
	return &OrderItemHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order item routes with the Fiber app.
func (h *OrderItemHandler) RegisterRoutes(router fiber.Router) {
	itemRoutes := router.Group("/order-items")
	itemRoutes.Get("/", h.HandleGetOrderItems)
	itemRoutes.Get("/:id", h.HandleGetOrderItemByID)
	itemRoutes.Post("/", h.HandleCreateOrderItem)
	itemRoutes.Put("/:id", h.HandleUpdateOrderItem)
	itemRoutes.Delete("/:id", h.HandleDeleteOrderItem)
}

// OrderItemRequest is the create/update body for an order item.
type OrderItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// HandleGetOrderItems retrieves all order items.
func (h *OrderItemHandler) HandleGetOrderItems(c *fiber.Ctx) error {
	items, err := h.service.GetAllOrderItems()
	if err != nil {
		log.Printf("Error getting all order items: %v", err)
		return failWith(c, err, "Could not retrieve order items")
	}
	return c.JSON(items)
}

// HandleGetOrderItemByID retrieves a single order item by its ID.
func (h *OrderItemHandler) HandleGetOrderItemByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	item, err := h.service.GetOrderItemByID(id)
	if err != nil {
		return failWith(c, err, "Could not retrieve order item")
	}
	return c.JSON(item)
}

// HandleCreateOrderItem creates a standalone order item for a product.
func (h *OrderItemHandler) HandleCreateOrderItem(c *fiber.Ctx) error {
	var req OrderItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	item, err := h.service.CreateOrderItem(req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error creating order item: %v", err)
		return failWith(c, err, "Could not create order item")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateOrderItem updates an order item's product and quantity.
func (h *OrderItemHandler) HandleUpdateOrderItem(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req OrderItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	item, err := h.service.UpdateOrderItem(id, req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error updating order item %d: %v", id, err)
		return failWith(c, err, "Could not update order item")
	}
	return c.JSON(item)
}

// HandleDeleteOrderItem deletes an order item by its ID.
func (h *OrderItemHandler) HandleDeleteOrderItem(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.DeleteOrderItem(id); err != nil {
		return failWith(c, err, "Could not delete order item")
	}
	return c.JSON(fiber.Map{"message": "Order item deleted successfully"})
}
