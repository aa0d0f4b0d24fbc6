package handlers

import (
	"errors"
	"net/http"

	"dinein-api/engine"

	"github.com/gin-gonic/gin"
)

// Eng is the shared consistency engine, set once from main.
var Eng *engine.Engine

// respondEngineError maps the engine's error taxonomy to HTTP status codes.
// Conflicts carry enough detail for the operator to resolve the collision.
func respondEngineError(c *gin.Context, err error) {
	var (
		validationErr  *engine.ValidationError
		transitionErr  *engine.InvalidTransitionError
		tableErr       *engine.TableConflictError
		reservationErr *engine.ReservationConflictError
	)
	switch {
	case errors.Is(err, engine.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, engine.ErrAlreadyPaid):
		c.JSON(http.StatusConflict, gin.H{"error": "Bill has already been paid"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Msg})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Invalid state transition",
			"order_id":       transitionErr.OrderID,
			"current_status": transitionErr.From,
			"requested":      transitionErr.To,
			"reason":         transitionErr.Reason,
		})
	case errors.As(err, &tableErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":            "Table conflict",
			"table_number":     tableErr.TableNumber,
			"current_order_id": tableErr.CurrentOrderID,
		})
	case errors.As(err, &reservationErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":        "Reservation conflict",
			"table_number": reservationErr.TableNumber,
			"date":         reservationErr.Date,
			"conflicts":    reservationErr.Conflicts,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
