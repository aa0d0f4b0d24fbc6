package engine

import (
	"errors"
	"fmt"

	"dinein-api/models"
)

// Sentinel errors shared across engine operations
var (
	ErrNotFound    = errors.New("not found")
	ErrAlreadyPaid = errors.New("bill has already been paid")
)

// ValidationError reports malformed or semantically invalid input. It is
// always raised before any entity is mutated.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidTransitionError reports an illegal order lifecycle move. The stored
// status is unchanged when this is returned.
type InvalidTransitionError struct {
	OrderID uint
	From    models.OrderStatus
	To      models.OrderStatus
	Reason  string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order %d: %s", e.OrderID, e.Reason)
}

// TableConflictError reports that a table is already held by a different
// active order. CurrentOrderID lets the operator resolve the collision.
type TableConflictError struct {
	TableNumber    int
	CurrentOrderID uint
}

func (e *TableConflictError) Error() string {
	return fmt.Sprintf("table %d is occupied by active order %d", e.TableNumber, e.CurrentOrderID)
}

// ReservationConflictError reports overlapping bookings. Conflicts carries
// the existing reservations whose windows collide with the request so the
// caller can show the operator exactly what is in the way.
type ReservationConflictError struct {
	TableNumber int
	Date        string
	Conflicts   []models.Reservation
}

func (e *ReservationConflictError) Error() string {
	return fmt.Sprintf("table %d already booked on %s (%d overlapping reservation(s))",
		e.TableNumber, e.Date, len(e.Conflicts))
}
