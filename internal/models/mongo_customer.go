package models

import "time"

// MongoCustomer is the document-store variant of a customer, kept in the
// "customers" collection alongside the feedback documents.
type MongoCustomer struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	City      string    `json:"city" bson:"city" validate:"required"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
