package repositories

import (
	"errors"
	"fmt"
)

// Entity kinds reported by NotFoundError.
const (
	EntityCustomer  = "customer"
	EntityProduct   = "product"
	EntityOrder     = "order"
	EntityOrderItem = "order item"
	EntityUser      = "user"
	EntityFeedback  = "feedback"
)

// NotFoundError reports that a referenced entity did not exist at the time of
// resolution. It always aborts the surrounding unit of work.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %v not found", e.Entity, e.ID)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
