package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/cache"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

// setupTestApp wires the full HTTP stack over a private in-memory database,
// with an in-process cache and no message broker.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Customer{}, &models.Product{}, &models.Order{}, &models.OrderItem{}, &models.User{},
	))

	appCache := cache.NewMemoryCache()
	txManager := repositories.NewGORMTxManager(db)

	customerService := services.NewCustomerService(repositories.NewGORMCustomerRepository(db), appCache)
	productService := services.NewProductService(repositories.NewGORMProductRepository(db), appCache)
	orderItemService := services.NewOrderItemService(txManager, repositories.NewGORMOrderItemRepository(db), appCache)
	orderService := services.NewOrderService(txManager, repositories.NewGORMOrderRepository(db), appCache, nil)
	authService := services.NewAuthService(repositories.NewGORMUserRepository(db), "test-secret")

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	handlers.NewCustomerHandler(customerService).RegisterRoutes(protected)
	handlers.NewProductHandler(productService).RegisterRoutes(protected)
	handlers.NewOrderHandler(orderService).RegisterRoutes(protected)
	handlers.NewOrderItemHandler(orderItemService).RegisterRoutes(protected)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerAndLogin creates a user and returns a valid bearer token.
func registerAndLogin(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"username": "tester",
		"email":    "tester@example.com",
		"password": "s3cret99",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"username": "tester",
		"password": "s3cret99",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &login)
	require.NotEmpty(t, login.Token)
	return login.Token
}

func createCustomer(t *testing.T, app *fiber.App, token string) models.Customer {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/customers/", token, fiber.Map{
		"name":  "Alice",
		"email": "alice@example.com",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var customer models.Customer
	decodeBody(t, resp, &customer)
	return customer
}

func createProduct(t *testing.T, app *fiber.App, token, name string, price float64) models.Product {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/products/", token, fiber.Map{
		"name":     name,
		"price":    price,
		"quantity": 100,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var product models.Product
	decodeBody(t, resp, &product)
	return product
}

func TestAuthFlow(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"username": "tester",
		"email":    "tester@example.com",
		"password": "s3cret99",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Same username again is a conflict.
	resp = doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"username": "tester",
		"email":    "other@example.com",
		"password": "s3cret99",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"username": "tester",
		"password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/products/", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/orders/", "not-a-real-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestPlaceOrderFlow(t *testing.T) {
	app := setupTestApp(t)
	token := registerAndLogin(t, app)

	customer := createCustomer(t, app, token)
	laptop := createProduct(t, app, token, "Laptop", 1200)
	mouse := createProduct(t, app, token, "Mouse", 25)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/orders/place", token, fiber.Map{
		"customer_id": customer.ID,
		"order_date":  "15-09-2025",
		"items": []fiber.Map{
			{"product_id": laptop.ID, "quantity": 1},
			{"product_id": mouse.ID, "quantity": 2},
		},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var order models.Order
	decodeBody(t, resp, &order)
	assert.Equal(t, customer.ID, order.CustomerID)
	require.Len(t, order.Items, 2)
	for _, item := range order.Items {
		require.NotNil(t, item.OrderID)
		assert.Equal(t, order.ID, *item.OrderID)
	}

	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/v1/orders/%d", order.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var fetched models.Order
	decodeBody(t, resp, &fetched)
	assert.Equal(t, order.ID, fetched.ID)
	assert.Len(t, fetched.Items, 2)
}

func TestPlaceOrderUnknownProductLeavesNothingBehind(t *testing.T) {
	app := setupTestApp(t)
	token := registerAndLogin(t, app)

	customer := createCustomer(t, app, token)
	laptop := createProduct(t, app, token, "Laptop", 1200)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/orders/place", token, fiber.Map{
		"customer_id": customer.ID,
		"order_date":  "15-09-2025",
		"items": []fiber.Map{
			{"product_id": laptop.ID, "quantity": 1},
			{"product_id": 9999, "quantity": 1},
		},
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/orders/", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var orders []models.Order
	decodeBody(t, resp, &orders)
	assert.Empty(t, orders)

	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/order-items/", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var items []models.OrderItem
	decodeBody(t, resp, &items)
	assert.Empty(t, items)
}

func TestPlaceOrderValidation(t *testing.T) {
	app := setupTestApp(t)
	token := registerAndLogin(t, app)
	customer := createCustomer(t, app, token)

	// Empty item list is rejected before anything runs.
	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/orders/place", token, fiber.Map{
		"customer_id": customer.ID,
		"order_date":  "15-09-2025",
		"items":       []fiber.Map{},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Malformed order date.
	resp = doJSON(t, app, fiber.MethodPost, "/api/v1/orders/place", token, fiber.Map{
		"customer_id": customer.ID,
		"order_date":  "2025-09-15",
		"items":       []fiber.Map{{"product_id": 1, "quantity": 1}},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateAndDeleteOrderFlow(t *testing.T) {
	app := setupTestApp(t)
	token := registerAndLogin(t, app)

	customer := createCustomer(t, app, token)
	laptop := createProduct(t, app, token, "Laptop", 1200)
	mouse := createProduct(t, app, token, "Mouse", 25)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/orders/place", token, fiber.Map{
		"customer_id": customer.ID,
		"order_date":  "15-09-2025",
		"items":       []fiber.Map{{"product_id": laptop.ID, "quantity": 1}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)

	// Create a replacement item, then swap the order's item set to it.
	resp = doJSON(t, app, fiber.MethodPost, "/api/v1/order-items/", token, fiber.Map{
		"product_id": mouse.ID,
		"quantity":   3,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var replacement models.OrderItem
	decodeBody(t, resp, &replacement)

	resp = doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/api/v1/orders/%d", order.ID), token, fiber.Map{
		"customer_id":    customer.ID,
		"order_date":     "16-09-2025",
		"order_item_ids": []uint{replacement.ID},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var updated models.Order
	decodeBody(t, resp, &updated)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, replacement.ID, updated.Items[0].ID)

	// The original item was orphaned and removed.
	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/v1/order-items/%d", order.Items[0].ID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/v1/orders/%d", order.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/v1/orders/%d", order.ID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/order-items/", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var items []models.OrderItem
	decodeBody(t, resp, &items)
	assert.Empty(t, items)
}

func TestOrderDetailsAndReports(t *testing.T) {
	app := setupTestApp(t)
	token := registerAndLogin(t, app)

	customer := createCustomer(t, app, token)
	laptop := createProduct(t, app, token, "Laptop", 1200)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/orders/place", token, fiber.Map{
		"customer_id": customer.ID,
		"order_date":  "15-09-2025",
		"items":       []fiber.Map{{"product_id": laptop.ID, "quantity": 2}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/orders/details", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var details []models.OrderDetail
	decodeBody(t, resp, &details)
	require.Len(t, details, 1)
	require.Len(t, details[0].Items, 1)
	assert.Equal(t, "Alice", details[0].CustomerName)
	assert.Equal(t, 2400.0, details[0].Items[0].Subtotal)

	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/orders/reports/spend", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var spends []models.CustomerSpend
	decodeBody(t, resp, &spends)
	require.Len(t, spends, 1)
	assert.Equal(t, 2400.0, spends[0].TotalSpend)

	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/orders/reports/sales", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var sales []models.ProductSales
	decodeBody(t, resp, &sales)
	require.Len(t, sales, 1)
	assert.EqualValues(t, 2, sales[0].UnitsSold)

	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/orders/reports/frequent-buyers?min=1", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var buyers []models.FrequentBuyer
	decodeBody(t, resp, &buyers)
	require.Len(t, buyers, 1)
	assert.Equal(t, "Alice", buyers[0].CustomerName)
	assert.EqualValues(t, 1, buyers[0].OrderCount)

	// The default floor of 3 filters the single-order customer out.
	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/orders/reports/frequent-buyers", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var frequent []models.FrequentBuyer
	decodeBody(t, resp, &frequent)
	assert.Empty(t, frequent)

	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/v1/orders/customer/%d", customer.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var customerOrders []models.Order
	decodeBody(t, resp, &customerOrders)
	require.Len(t, customerOrders, 1)
	assert.Equal(t, customer.ID, customerOrders[0].CustomerID)
}

func TestProductPagination(t *testing.T) {
	app := setupTestApp(t)
	token := registerAndLogin(t, app)

	for i := 0; i < 7; i++ {
		createProduct(t, app, token, fmt.Sprintf("Product %d", i), float64(10+i))
	}

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/products/list?page=2&size=5", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var page struct {
		Products []models.Product `json:"products"`
		Page     int              `json:"page"`
		Size     int              `json:"size"`
		Total    int64            `json:"total"`
	}
	decodeBody(t, resp, &page)
	assert.Equal(t, 2, page.Page)
	assert.EqualValues(t, 7, page.Total)
	assert.Len(t, page.Products, 2)
}

func TestCustomerNotFoundMapsTo404(t *testing.T) {
	app := setupTestApp(t)
	token := registerAndLogin(t, app)

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/customers/999", token, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &body)
	assert.Contains(t, body.Message, "not found")
}
