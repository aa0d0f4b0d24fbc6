package engine

import (
	"errors"

	"dinein-api/models"

	"gorm.io/gorm"
)

// Table status, assigned waiter and current order are written only through
// the functions in this file, always on the transaction handle of the
// operation that triggered the change.

func (e *Engine) CreateTable(number, capacity int, location string) (*models.Table, error) {
	if number < 1 {
		return nil, validationf("table number must be positive")
	}
	if capacity < 1 {
		return nil, validationf("table capacity must be positive")
	}
	table := models.Table{
		Number:   number,
		Capacity: capacity,
		Status:   models.TableAvailable,
		Location: location,
	}
	if err := e.db.Create(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (e *Engine) ListTables() ([]models.Table, error) {
	var tables []models.Table
	if err := e.db.Preload("AssignedWaiter").Order("number asc").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (e *Engine) ListAvailableTables() ([]models.Table, error) {
	var tables []models.Table
	err := e.db.Where("status = ?", models.TableAvailable).Order("number asc").Find(&tables).Error
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// occupyForOrder claims a table for a newly created order. The table must be
// available or reserved; a table already holding an active order yields a
// TableConflictError carrying that order's ID.
func occupyForOrder(tx *gorm.DB, table *models.Table, orderID, waiterID uint) error {
	if table.Status == models.TableMaintenance {
		return validationf("table %d is under maintenance", table.Number)
	}
	if table.CurrentOrderID != nil {
		return &TableConflictError{TableNumber: table.Number, CurrentOrderID: *table.CurrentOrderID}
	}
	sameWaiter := table.AssignedWaiterID != nil && *table.AssignedWaiterID == waiterID
	if table.Status != models.TableAvailable && table.Status != models.TableReserved && !sameWaiter {
		return validationf("table %d is %s and cannot take a new order", table.Number, table.Status)
	}
	table.Status = models.TableOccupied
	table.AssignedWaiterID = &waiterID
	table.CurrentOrderID = &orderID
	return tx.Model(table).Updates(map[string]interface{}{
		"status":             models.TableOccupied,
		"assigned_waiter_id": waiterID,
		"current_order_id":   orderID,
	}).Error
}

// releaseTable frees a table, clearing the waiter and order references in the
// same write. It refuses while the referenced order is still active, which is
// what keeps "available but occupied by a live order" impossible.
func releaseTable(tx *gorm.DB, table *models.Table) error {
	if table.CurrentOrderID != nil {
		var order models.Order
		if err := tx.First(&order, *table.CurrentOrderID).Error; err == nil && order.Status.Active() {
			return &TableConflictError{TableNumber: table.Number, CurrentOrderID: order.ID}
		}
	}
	table.Status = models.TableAvailable
	table.AssignedWaiterID = nil
	table.CurrentOrderID = nil
	return tx.Model(table).Updates(map[string]interface{}{
		"status":             models.TableAvailable,
		"assigned_waiter_id": nil,
		"current_order_id":   nil,
	}).Error
}

// MarkNeedsAssistance flags an occupied table for help. Only the waiter
// assigned to the table may raise it.
func (e *Engine) MarkNeedsAssistance(tableID, waiterID uint) (*models.Table, error) {
	var table models.Table
	err := e.inTx(func(tx *gorm.DB) error {
		if err := tx.First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if table.AssignedWaiterID == nil || *table.AssignedWaiterID != waiterID {
			return validationf("table %d is not assigned to you", table.Number)
		}
		if table.Status != models.TableOccupied {
			return validationf("table %d is %s, assistance applies to occupied tables", table.Number, table.Status)
		}
		table.Status = models.TableNeedAssistance
		return tx.Model(&table).Update("status", models.TableNeedAssistance).Error
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// ResolveAssistance returns a need_assistance table to occupied.
func (e *Engine) ResolveAssistance(tableID, waiterID uint) (*models.Table, error) {
	var table models.Table
	err := e.inTx(func(tx *gorm.DB) error {
		if err := tx.First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if table.AssignedWaiterID == nil || *table.AssignedWaiterID != waiterID {
			return validationf("table %d is not assigned to you", table.Number)
		}
		if table.Status != models.TableNeedAssistance {
			return validationf("table %d does not need assistance", table.Number)
		}
		table.Status = models.TableOccupied
		return tx.Model(&table).Update("status", models.TableOccupied).Error
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// ReleaseTable is the explicit manager action. Payment finalization releases
// tables through the same internal path.
func (e *Engine) ReleaseTable(tableID uint) (*models.Table, error) {
	var table models.Table
	err := e.inTx(func(tx *gorm.DB) error {
		if err := tx.First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return releaseTable(tx, &table)
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// SetReserved holds an available table for an incoming party (manual
// floor-plan action). occupyForOrder accepts reserved, so seating the party
// clears the hold naturally.
func (e *Engine) SetReserved(tableID uint) (*models.Table, error) {
	var table models.Table
	err := e.inTx(func(tx *gorm.DB) error {
		if err := tx.First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if table.CurrentOrderID != nil {
			return &TableConflictError{TableNumber: table.Number, CurrentOrderID: *table.CurrentOrderID}
		}
		if table.Status != models.TableAvailable {
			return validationf("table %d is %s, only an available table can be reserved", table.Number, table.Status)
		}
		table.Status = models.TableReserved
		return tx.Model(&table).Update("status", models.TableReserved).Error
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// SetMaintenance takes a table out of service. Not allowed while an active
// order holds it.
func (e *Engine) SetMaintenance(tableID uint) (*models.Table, error) {
	var table models.Table
	err := e.inTx(func(tx *gorm.DB) error {
		if err := tx.First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if table.CurrentOrderID != nil {
			return &TableConflictError{TableNumber: table.Number, CurrentOrderID: *table.CurrentOrderID}
		}
		table.Status = models.TableMaintenance
		return tx.Model(&table).Update("status", models.TableMaintenance).Error
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}
