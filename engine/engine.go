// Package engine implements the order–table–reservation consistency engine:
// reservation conflict resolution, the order lifecycle, table status
// synchronization and billing finalization. Every operation that mutates
// state runs inside a single gorm transaction, so a staff action either
// applies completely or not at all. Table status fields are written only by
// the functions in table.go.
package engine

import (
	"errors"
	"strings"
	"time"

	"dinein-api/models"

	"gorm.io/gorm"
)

type Engine struct {
	db      *gorm.DB
	taxRate float64
	now     func() time.Time
}

func New(db *gorm.DB, taxRate float64) *Engine {
	return &Engine{db: db, taxRate: taxRate, now: time.Now}
}

// inTx runs fn in one transaction. sqlite allows a single writer at a time;
// when two staff actions collide the loser surfaces "database is locked", so
// re-run fn once from scratch before giving up. Precondition failures carry
// their own error types and are never retried.
func (e *Engine) inTx(fn func(tx *gorm.DB) error) error {
	err := e.db.Transaction(fn)
	if err != nil && strings.Contains(err.Error(), "database is locked") {
		err = e.db.Transaction(fn)
	}
	return err
}

// ── Read-side queries (no locking needed, dashboards poll these) ────────────

func (e *Engine) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	err := e.db.Preload("Items.MenuItem").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Waiter").Preload("Chef").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (e *Engine) ListOrders(status models.OrderStatus, waiterID uint) ([]models.Order, error) {
	query := e.db.Preload("Items").Order("created_at asc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if waiterID != 0 {
		query = query.Where("waiter_id = ?", waiterID)
	}
	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (e *Engine) GetReservation(id uint) (*models.Reservation, error) {
	var res models.Reservation
	err := e.db.First(&res, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (e *Engine) ListReservations(tableNumber int, date string) ([]models.Reservation, error) {
	query := e.db.Order("date asc, start_time asc")
	if tableNumber != 0 {
		query = query.Where("table_number = ?", tableNumber)
	}
	if date != "" {
		query = query.Where("date = ?", date)
	}
	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (e *Engine) GetBill(id uint) (*models.Bill, error) {
	var bill models.Bill
	err := e.db.Preload("Items").First(&bill, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (e *Engine) ListBills(status models.PaymentStatus) ([]models.Bill, error) {
	query := e.db.Preload("Items").Order("created_at desc")
	if status != "" {
		query = query.Where("payment_status = ?", status)
	}
	var bills []models.Bill
	if err := query.Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}
