package engine

import (
	"errors"
	"fmt"
	"strings"

	"dinein-api/models"
	"dinein-api/statemachine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerateBill creates an immutable bill for a served order. Billing requires
// the served status: food that never reached the table cannot be charged.
// The live order is not mutated. Calling again while a pending bill exists
// returns that bill; a paid bill yields ErrAlreadyPaid.
func (e *Engine) GenerateBill(orderID uint) (*models.Bill, error) {
	var bill models.Bill
	err := e.inTx(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if len(order.Items) == 0 {
			return validationf("order %d has no items to bill", orderID)
		}
		if order.Status != models.StatusServed {
			return &InvalidTransitionError{
				OrderID: order.ID,
				From:    order.Status,
				To:      models.StatusServed,
				Reason:  fmt.Sprintf("order %d is %s, billing requires served", orderID, order.Status),
			}
		}

		var existing models.Bill
		err := tx.Preload("Items").Where("order_id = ?", orderID).First(&existing).Error
		if err == nil {
			if existing.PaymentStatus == models.BillPaid {
				return ErrAlreadyPaid
			}
			bill = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var subtotalC int64
		var items []models.BillItem
		for _, item := range order.Items {
			lineC := cents(item.UnitPrice) * int64(item.Quantity)
			subtotalC += lineC
			items = append(items, models.BillItem{
				Name:      item.Name,
				UnitPrice: item.UnitPrice,
				Quantity:  item.Quantity,
				LineTotal: fromCents(lineC),
			})
		}
		taxC := taxCents(subtotalC, e.taxRate)

		bill = models.Bill{
			Number:        billNumber(),
			OrderID:       order.ID,
			TableNumber:   order.TableNumber,
			Items:         items,
			Subtotal:      fromCents(subtotalC),
			Tax:           fromCents(taxC),
			Total:         fromCents(subtotalC + taxC),
			PaymentStatus: models.BillPending,
		}
		return tx.Create(&bill).Error
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// PayBill finalizes payment: the bill is marked paid, the order advances to
// paid and the table is released — one transaction, so a bill can never read
// paid while its table is still occupied. Repeating the call returns
// ErrAlreadyPaid and touches nothing.
func (e *Engine) PayBill(billID uint, method string) (*models.Bill, error) {
	if method == "" {
		return nil, validationf("payment method is required")
	}

	var bill models.Bill
	err := e.inTx(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&bill, billID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if bill.PaymentStatus == models.BillPaid {
			return ErrAlreadyPaid
		}

		var order models.Order
		if err := tx.First(&order, bill.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := e.advanceOrderTx(tx, &order, models.StatusPaid, AdvancePayload{
			Actor: statemachine.ActorSystem,
			Note:  "Payment received via " + method,
		}); err != nil {
			return err
		}

		paidAt := e.now()
		bill.PaymentMethod = method
		bill.PaymentStatus = models.BillPaid
		bill.PaidAt = &paidAt
		if err := tx.Model(&bill).Updates(map[string]interface{}{
			"payment_method": method,
			"payment_status": models.BillPaid,
			"paid_at":        paidAt,
		}).Error; err != nil {
			return err
		}

		var table models.Table
		if err := tx.Where("number = ?", bill.TableNumber).First(&table).Error; err != nil {
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
	return &bill, nil
}

func billNumber() string {
	return "BILL-" + strings.ToUpper(uuid.NewString()[:8])
}
