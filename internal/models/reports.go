package models

import "time"

// OrderItemDetail is one line of an order report. Subtotal is computed from
// the product's current price at query time.
type OrderItemDetail struct {
	OrderItemID  uint    `json:"order_item_id"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int     `json:"quantity"`
	Subtotal     float64 `json:"subtotal"`
}

// OrderDetail is an order joined with its customer and product details.
type OrderDetail struct {
	OrderID       uint              `json:"order_id"`
	OrderDate     time.Time         `json:"order_date"`
	CustomerID    uint              `json:"customer_id"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	Items         []OrderItemDetail `json:"items"`
}

// CustomerSpend is the total amount a customer has spent across all orders.
type CustomerSpend struct {
	CustomerID   uint    `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	TotalSpend   float64 `json:"total_spend"`
}

// ProductSales is the total quantity and revenue sold for a product.
type ProductSales struct {
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	UnitsSold    int64   `json:"units_sold"`
	TotalRevenue float64 `json:"total_revenue"`
}

// FrequentBuyer is a customer together with how many orders they have placed.
type FrequentBuyer struct {
	CustomerID    uint   `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	OrderCount    int64  `json:"order_count"`
}

// CustomerRating is the average feedback rating for one customer.
type CustomerRating struct {
	Customer  string  `json:"customer" bson:"_id"`
	AvgRating float64 `json:"avg_rating" bson:"avg_rating"`
	Count     int64   `json:"count" bson:"count"`
}

// CityFeedbackCount is the number of feedback entries per customer city.
type CityFeedbackCount struct {
	City  string `json:"city" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}
