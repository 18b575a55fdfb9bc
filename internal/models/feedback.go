package models

import "time"

// Feedback is a customer review document in the "feedbacks" collection.
type Feedback struct {
	ID       string    `json:"id" bson:"_id,omitempty"`
	Customer string    `json:"customer" bson:"customer" validate:"required"`
	Rating   int       `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Comment  string    `json:"comment" bson:"comment" validate:"omitempty,max=1000"`
	Date     time.Time `json:"date" bson:"date"`
}
