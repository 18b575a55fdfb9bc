package models

import "time"

// OrderItem is a single product-and-quantity line. It is created standalone
// (OrderID nil) and later attached to exactly one order. Attached items live
// and die with their order: the order delete/update paths remove them
// explicitly instead of leaning on database-level cascades.
type OrderItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   *uint     `json:"order_id" gorm:"index"`
	ProductID uint      `json:"product_id" gorm:"index;not null"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Order is a customer order together with its exclusively owned item list.
type Order struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	CustomerID uint        `json:"customer_id" gorm:"index;not null"`
	Customer   *Customer   `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	OrderDate  time.Time   `json:"order_date"`
	Items      []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
