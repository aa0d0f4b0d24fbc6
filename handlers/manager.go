package handlers

import (
	"net/http"
	"strconv"

	"dinein-api/config"
	"dinein-api/models"

	"github.com/gin-gonic/gin"
)

// ── Table Management ────────────────────────────────────────────────────────

type CreateTableRequest struct {
	Number   int    `json:"number" binding:"required,min=1"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
	Location string `json:"location"`
}

// CreateTable adds a table to the floor plan
func CreateTable(c *gin.Context) {
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	table, err := Eng.CreateTable(req.Number, req.Capacity, req.Location)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Table created", "table": table})
}

// GetAllTables returns the full floor plan with live statuses
func GetAllTables(c *gin.Context) {
	tables, err := Eng.ListTables()
	if err != nil {
		respondEngineError(c, err)
		return
	}

	// Dashboard summary by status
	summary := map[string]int{}
	for _, t := range tables {
		summary[string(t.Status)]++
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary, "count": len(tables), "tables": tables})
}

// ForceReleaseTable frees a table by manager action. Refused while an active
// order still holds it.
func ForceReleaseTable(c *gin.Context) {
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table id"})
		return
	}
	table, err := Eng.ReleaseTable(uint(tableID))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table released", "table": table})
}

// SetTableReserved holds an available table for an incoming party
func SetTableReserved(c *gin.Context) {
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table id"})
		return
	}
	table, err := Eng.SetReserved(uint(tableID))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table reserved", "table": table})
}

// SetTableMaintenance takes a table out of service
func SetTableMaintenance(c *gin.Context) {
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table id"})
		return
	}
	table, err := Eng.SetMaintenance(uint(tableID))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table set to maintenance", "table": table})
}

// ── Reservation Management ─────────────────────────────────────────────────

// GetAllReservations lists reservations, filterable by table number and date
func GetAllReservations(c *gin.Context) {
	tableNumber := 0
	if v := c.Query("table"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table number"})
			return
		}
		tableNumber = n
	}
	reservations, err := Eng.ListReservations(tableNumber, c.Query("date"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reservations), "reservations": reservations})
}

// ConfirmReservation moves a pending reservation to confirmed
func ConfirmReservation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation id"})
		return
	}
	reservation, err := Eng.ConfirmReservation(uint(id))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation confirmed", "reservation": reservation})
}

// CancelReservation cancels a reservation by manager action
func CancelReservation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation id"})
		return
	}
	reservation, err := Eng.CancelReservation(uint(id))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled", "reservation": reservation})
}

// ── Menu Management ─────────────────────────────────────────────────────────

type CreateMenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category"`
	IsVeg       bool    `json:"is_veg"`
}

// AddMenuItem adds a new item to the menu
func AddMenuItem(c *gin.Context) {
	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		IsVeg:       req.IsVeg,
		IsAvailable: true,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}

// UpdateMenuItem updates a menu item
func UpdateMenuItem(c *gin.Context) {
	itemID := c.Param("itemId")

	var item models.MenuItem
	if err := config.DB.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Only allow safe fields
	allowed := map[string]bool{"name": true, "description": true, "price": true, "category": true, "is_veg": true, "is_available": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if price, ok := update["price"].(float64); ok && price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
		return
	}
	config.DB.Model(&item).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// DeleteMenuItem removes a menu item
func DeleteMenuItem(c *gin.Context) {
	itemID := c.Param("itemId")

	var item models.MenuItem
	if err := config.DB.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	config.DB.Delete(&item)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// ── Dashboards ──────────────────────────────────────────────────────────────

// GetAllOrders returns all orders with a status summary
func GetAllOrders(c *gin.Context) {
	orders, err := Eng.ListOrders(models.OrderStatus(c.Query("status")), 0)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}
	c.JSON(http.StatusOK, gin.H{"order_summary": summary, "count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order with items and status history
func GetOrderDetail(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	order, err := Eng.GetOrder(uint(orderID))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetAllBills lists bills with total revenue across paid ones
func GetAllBills(c *gin.Context) {
	bills, err := Eng.ListBills(models.PaymentStatus(c.Query("status")))
	if err != nil {
		respondEngineError(c, err)
		return
	}

	var revenue float64
	for _, b := range bills {
		if b.PaymentStatus == models.BillPaid {
			revenue += b.Total
		}
	}
	c.JSON(http.StatusOK, gin.H{"total_revenue": revenue, "count": len(bills), "bills": bills})
}
