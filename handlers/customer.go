package handlers

import (
	"net/http"
	"strconv"

	"dinein-api/engine"
	"dinein-api/middleware"

	"github.com/gin-gonic/gin"
)

type CreateReservationRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	TableNumber   int    `json:"table_number" binding:"required,min=1"`
	Date          string `json:"date" binding:"required"`
	StartTime     string `json:"start_time" binding:"required"`
	EndTime       string `json:"end_time" binding:"required"`
	Guests        int    `json:"guests" binding:"required,min=1"`
}

// CreateReservation books a table for a time window. A conflicting window on
// the same table and date is rejected with 409 and the colliding bookings.
func CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := Eng.CreateReservation(engine.ReservationRequest{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: middleware.GetUserEmail(c),
		TableNumber:   req.TableNumber,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Guests:        req.Guests,
	})
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Reservation created, pending confirmation",
		"reservation": reservation,
	})
}

// GetMyReservations returns the caller's reservations
func GetMyReservations(c *gin.Context) {
	email := middleware.GetUserEmail(c)
	reservations, err := Eng.ListReservations(0, "")
	if err != nil {
		respondEngineError(c, err)
		return
	}
	mine := reservations[:0]
	for _, r := range reservations {
		if r.CustomerEmail == email {
			mine = append(mine, r)
		}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(mine), "reservations": mine})
}

// CancelMyReservation cancels the caller's own reservation
func CancelMyReservation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation id"})
		return
	}

	existing, err := Eng.GetReservation(uint(id))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	if existing.CustomerEmail != middleware.GetUserEmail(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This reservation does not belong to you"})
		return
	}

	reservation, err := Eng.CancelReservation(uint(id))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled", "reservation": reservation})
}
