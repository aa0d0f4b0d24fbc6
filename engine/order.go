package engine

import (
	"errors"

	"dinein-api/models"
	"dinein-api/statemachine"

	"gorm.io/gorm"
)

type OrderLine struct {
	MenuItemID uint
	Quantity   int
	Note       string
}

type CreateOrderRequest struct {
	TableNumber  int
	WaiterID     uint
	CustomerName string
	Items        []OrderLine
}

// AdvancePayload carries the side data a lifecycle transition needs.
type AdvancePayload struct {
	ActorID              uint   // user performing the transition
	Actor                string // statemachine actor: chef, waiter or system
	EstimatedPrepMinutes int    // required for pending → preparing
	Note                 string
}

// CreateOrder opens a tab against a table: snapshots menu prices into line
// items, creates the order and occupies the table, all in one transaction.
// Either the order exists and the table is occupied, or neither happened.
func (e *Engine) CreateOrder(req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, validationf("order must contain at least one item")
	}
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return nil, validationf("item quantity must be positive")
		}
	}

	var order models.Order
	err := e.inTx(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.Where("number = ?", req.TableNumber).First(&table).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var items []models.OrderItem
		for _, line := range req.Items {
			var menuItem models.MenuItem
			if err := tx.First(&menuItem, line.MenuItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return validationf("menu item %d not found", line.MenuItemID)
				}
				return err
			}
			if !menuItem.IsAvailable {
				return validationf("menu item '%s' is not available", menuItem.Name)
			}
			items = append(items, models.OrderItem{
				MenuItemID: menuItem.ID,
				Quantity:   line.Quantity,
				UnitPrice:  menuItem.Price,
				Name:       menuItem.Name,
				Note:       line.Note,
			})
		}

		order = models.Order{
			TableNumber:  req.TableNumber,
			CustomerName: req.CustomerName,
			Status:       models.StatusPending,
			WaiterID:     &req.WaiterID,
			Items:        items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := occupyForOrder(tx, &table, order.ID, req.WaiterID); err != nil {
			return err
		}

		history := models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.StatusPending,
			ChangedBy: req.WaiterID,
			Note:      "Order opened by waiter",
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// AdvanceOrder moves an order one step forward in its lifecycle. The order
// row is read and re-validated inside the transaction, so of two chefs
// accepting the same pending order the second sees status preparing and gets
// an InvalidTransitionError.
func (e *Engine) AdvanceOrder(orderID uint, target models.OrderStatus, p AdvancePayload) (*models.Order, error) {
	var order models.Order
	err := e.inTx(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return e.advanceOrderTx(tx, &order, target, p)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// advanceOrderTx applies one transition on the caller's transaction. PayBill
// uses it with the system actor; everything else fails the state machine
// check for served → paid.
func (e *Engine) advanceOrderTx(tx *gorm.DB, order *models.Order, target models.OrderStatus, p AdvancePayload) error {
	if err := statemachine.CanTransition(order.Status, target, p.Actor); err != nil {
		return &InvalidTransitionError{
			OrderID: order.ID,
			From:    order.Status,
			To:      target,
			Reason:  err.Error(),
		}
	}

	updates := map[string]interface{}{"status": target}
	switch target {
	case models.StatusPreparing:
		if p.ActorID == 0 {
			return validationf("a chef must be identified to start preparation")
		}
		if p.EstimatedPrepMinutes < 1 {
			return validationf("estimated prep minutes must be positive")
		}
		now := e.now()
		updates["chef_id"] = p.ActorID
		updates["estimated_prep_minutes"] = p.EstimatedPrepMinutes
		updates["prep_started_at"] = now
		order.ChefID = &p.ActorID
		order.EstimatedPrepMinutes = p.EstimatedPrepMinutes
		order.PrepStartedAt = &now
	case models.StatusReady:
		if order.ChefID == nil || *order.ChefID != p.ActorID {
			return &InvalidTransitionError{
				OrderID: order.ID,
				From:    order.Status,
				To:      target,
				Reason:  "only the chef who accepted the order may mark it ready",
			}
		}
	}

	fromStatus := order.Status
	order.Status = target
	if err := tx.Model(order).Updates(updates).Error; err != nil {
		return err
	}

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: fromStatus,
		ToStatus:   target,
		ChangedBy:  p.ActorID,
		Note:       p.Note,
	}
	return tx.Create(&history).Error
}
