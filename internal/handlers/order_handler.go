package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/details", h.HandleGetOrderDetails)
	orderRoutes.Get("/reports/spend", h.HandleGetCustomerSpend)
	orderRoutes.Get("/reports/sales", h.HandleGetProductSales)
	orderRoutes.Get("/reports/frequent-buyers", h.HandleGetFrequentBuyers)
	orderRoutes.Get("/customer/:customerId", h.HandleGetOrdersByCustomer)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Post("/place", h.HandlePlaceOrder)
	orderRoutes.Put("/:id", h.HandleUpdateOrder)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
}

// CreateOrderRequest builds an order over already-created order items.
type CreateOrderRequest struct {
	CustomerID   uint   `json:"customer_id" validate:"required"`
	OrderDate    string `json:"order_date" validate:"required"`
	OrderItemIDs []uint `json:"order_item_ids" validate:"required,min=1"`
}

// PlaceOrderLine is one product/quantity line of a placement request.
type PlaceOrderLine struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// PlaceOrderRequest creates the items and the order in one shot.
type PlaceOrderRequest struct {
	CustomerID uint             `json:"customer_id" validate:"required"`
	OrderDate  string           `json:"order_date" validate:"required"`
	Items      []PlaceOrderLine `json:"items" validate:"required,min=1,dive"`
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return failWith(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	order, err := h.service.GetOrderByID(id)
	if err != nil {
		return failWith(c, err, "Could not retrieve order")
	}
	return c.JSON(order)
}

// HandleCreateOrder builds an order from existing order item IDs.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
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
	orderDate, err := parseOrderDate(req.OrderDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	order, err := h.service.BuildOrder(req.CustomerID, orderDate, req.OrderItemIDs)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return failWith(c, err, "Could not create order")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandlePlaceOrder runs the full placement workflow: create one order item
// per line and the order over them, atomically.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
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
	orderDate, err := parseOrderDate(req.OrderDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	lines := make([]services.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, services.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.service.PlaceOrder(req.CustomerID, orderDate, lines)
	if err != nil {
		if errors.Is(err, services.ErrNoLineItems) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		log.Printf("Error placing order: %v", err)
		return failWith(c, err, "Could not place order")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleUpdateOrder replaces an order's customer, date, and item set.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req CreateOrderRequest
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
	orderDate, err := parseOrderDate(req.OrderDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	order, err := h.service.UpdateOrder(id, req.CustomerID, orderDate, req.OrderItemIDs)
	if err != nil {
		log.Printf("Error updating order %d: %v", id, err)
		return failWith(c, err, "Could not update order")
	}
	return c.JSON(order)
}

// HandleDeleteOrder deletes an order and its items.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.DeleteOrder(id); err != nil {
		return failWith(c, err, "Could not delete order")
	}
	return c.JSON(fiber.Map{"message": "Order deleted successfully"})
}

// HandleGetOrderDetails retrieves all orders with customer and product
// details, including live-price subtotals.
func (h *OrderHandler) HandleGetOrderDetails(c *fiber.Ctx) error {
	details, err := h.service.OrdersWithDetails()
	if err != nil {
		log.Printf("Error getting order details: %v", err)
		return failWith(c, err, "Could not retrieve order details")
	}
	return c.JSON(details)
}

// HandleGetCustomerSpend reports total spend per customer.
func (h *OrderHandler) HandleGetCustomerSpend(c *fiber.Ctx) error {
	spends, err := h.service.TotalSpendPerCustomer()
	if err != nil {
		log.Printf("Error getting customer spend: %v", err)
		return failWith(c, err, "Could not retrieve customer spend")
	}
	return c.JSON(spends)
}

// HandleGetOrdersByCustomer retrieves every order a customer has placed.
func (h *OrderHandler) HandleGetOrdersByCustomer(c *fiber.Ctx) error {
	customerID, err := parseIDParam(c, "customerId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	orders, err := h.service.GetOrdersByCustomer(customerID)
	if err != nil {
		log.Printf("Error getting orders for customer %d: %v", customerID, err)
		return failWith(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetFrequentBuyers reports customers with at least ?min= orders
// (default 3).
func (h *OrderHandler) HandleGetFrequentBuyers(c *fiber.Ctx) error {
	minOrders := c.QueryInt("min", 3)
	buyers, err := h.service.FrequentBuyers(minOrders)
	if err != nil {
		log.Printf("Error getting frequent buyers: %v", err)
		return failWith(c, err, "Could not retrieve frequent buyers")
	}
	return c.JSON(buyers)
}

// HandleGetProductSales reports total sales per product.
func (h *OrderHandler) HandleGetProductSales(c *fiber.Ctx) error {
	sales, err := h.service.TotalSalesPerProduct()
	if err != nil {
		log.Printf("Error getting product sales: %v", err)
		return failWith(c, err, "Could not retrieve product sales")
	}
	return c.JSON(sales)
}
