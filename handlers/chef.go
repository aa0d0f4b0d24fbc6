package handlers

import (
	"net/http"
	"strconv"

	"dinein-api/engine"
	"dinein-api/middleware"
	"dinein-api/models"
	"dinein-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetPendingOrders shows the kitchen queue, oldest first
func GetPendingOrders(c *gin.Context) {
	orders, err := Eng.ListOrders(models.StatusPending, 0)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

type AcceptOrderRequest struct {
	EstimatedPrepMinutes int `json:"estimated_prep_minutes" binding:"required,min=1"`
}

// AcceptOrder lets a chef take a pending order: pending → preparing. Of two
// chefs racing for the same order, only the first succeeds.
func AcceptOrder(c *gin.Context) {
	chefID := middleware.GetUserID(c)
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req AcceptOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := Eng.AdvanceOrder(uint(orderID), models.StatusPreparing, engine.AdvancePayload{
		ActorID:              chefID,
		Actor:                statemachine.ActorChef,
		EstimatedPrepMinutes: req.EstimatedPrepMinutes,
		Note:                 "Accepted by chef",
	})
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order accepted", "order": order})
}

// MarkReady marks the food done: preparing → ready. Only the accepting chef
// may do this.
func MarkReady(c *gin.Context) {
	chefID := middleware.GetUserID(c)
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := Eng.AdvanceOrder(uint(orderID), models.StatusReady, engine.AdvancePayload{
		ActorID: chefID,
		Actor:   statemachine.ActorChef,
		Note:    "Ready for serving",
	})
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order ready", "order": order})
}

// GetMyPreparing lists orders the chef is currently working on
func GetMyPreparing(c *gin.Context) {
	chefID := middleware.GetUserID(c)
	orders, err := Eng.ListOrders(models.StatusPreparing, 0)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	mine := orders[:0]
	for _, o := range orders {
		if o.ChefID != nil && *o.ChefID == chefID {
			mine = append(mine, o)
		}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(mine), "orders": mine})
}
