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

type CreateOrderRequest struct {
	TableNumber  int    `json:"table_number" binding:"required,min=1"`
	CustomerName string `json:"customer_name"`
	Items        []struct {
		MenuItemID uint   `json:"menu_item_id" binding:"required"`
		Quantity   int    `json:"quantity" binding:"required,min=1"`
		Note       string `json:"note"`
	} `json:"items" binding:"required,min=1"`
}

// CreateOrder opens a tab against a table (waiter only). The table is
// occupied in the same unit of work; a table already holding an active order
// rejects the request with the conflicting order id.
func CreateOrder(c *gin.Context) {
	waiterID := middleware.GetUserID(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines := make([]engine.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, engine.OrderLine{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Note:       item.Note,
		})
	}

	order, err := Eng.CreateOrder(engine.CreateOrderRequest{
		TableNumber:  req.TableNumber,
		WaiterID:     waiterID,
		CustomerName: req.CustomerName,
		Items:        lines,
	})
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order created", "order": order})
}

// GetMyOrders returns orders opened by the logged-in waiter
func GetMyOrders(c *gin.Context) {
	waiterID := middleware.GetUserID(c)
	orders, err := Eng.ListOrders(models.OrderStatus(c.Query("status")), waiterID)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// ServeOrder confirms the food reached the table: ready → served
func ServeOrder(c *gin.Context) {
	waiterID := middleware.GetUserID(c)
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := Eng.AdvanceOrder(uint(orderID), models.StatusServed, engine.AdvancePayload{
		ActorID: waiterID,
		Actor:   statemachine.ActorWaiter,
		Note:    "Served to the table",
	})
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order served", "order": order})
}

// MarkNeedsAssistance flags the waiter's table for help
func MarkNeedsAssistance(c *gin.Context) {
	waiterID := middleware.GetUserID(c)
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table id"})
		return
	}

	table, err := Eng.MarkNeedsAssistance(uint(tableID), waiterID)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assistance requested", "table": table})
}

// ResolveAssistance returns the table to occupied once handled
func ResolveAssistance(c *gin.Context) {
	waiterID := middleware.GetUserID(c)
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table id"})
		return
	}

	table, err := Eng.ResolveAssistance(uint(tableID), waiterID)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assistance resolved", "table": table})
}

// GenerateBill produces the immutable bill for a served order
func GenerateBill(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	bill, err := Eng.GenerateBill(uint(orderID))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Bill generated", "bill": bill})
}

type PayBillRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// PayBill finalizes payment: bill paid, order paid, table released — atomically
func PayBill(c *gin.Context) {
	billID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill id"})
		return
	}

	var req PayBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill, err := Eng.PayBill(uint(billID), req.PaymentMethod)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment completed, table released", "bill": bill})
}

// GetBill returns one bill with its snapshot items
func GetBill(c *gin.Context) {
	billID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill id"})
		return
	}

	bill, err := Eng.GetBill(uint(billID))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bill": bill})
}
