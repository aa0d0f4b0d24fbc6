package handlers

import (
	"net/http"

	"dinein-api/config"
	"dinein-api/models"
	"dinein-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetMenu lists available menu items (public)
func GetMenu(c *gin.Context) {
	var items []models.MenuItem
	query := config.DB.Where("is_available = ?", true)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("veg") == "true" {
		query = query.Where("is_veg = ?", true)
	}
	query.Order("category, name").Find(&items)

	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

// ListAvailableTables shows tables ready to be seated (public)
func ListAvailableTables(c *gin.Context) {
	tables, err := Eng.ListAvailableTables()
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(tables), "tables": tables})
}

// GetStateMachineInfo exposes the order lifecycle for documentation
func GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()
	out := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		out = append(out, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"states":      []models.OrderStatus{models.StatusPending, models.StatusPreparing, models.StatusReady, models.StatusServed, models.StatusPaid},
		"transitions": out,
	})
}
