package engine

import (
	"math/rand"
	"testing"
	"time"

	"dinein-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func servedOrder(t *testing.T, e *Engine, tableNumber int) *models.Order {
	t.Helper()
	order := openOrder(t, e, tableNumber, 2)
	advanceTo(t, e, order.ID, models.StatusServed, 7, 2)
	return order
}

func TestGenerateBillRounding(t *testing.T) {
	e := newTestEngine(t)
	seedTable(t, e, 5, 4)
	pasta := seedMenuItem(t, e, "Pasta", 12.99)
	steak := seedMenuItem(t, e, "Steak", 24.99)

	order, err := e.CreateOrder(CreateOrderRequest{
		TableNumber: 5, WaiterID: 2,
		Items: []OrderLine{
			{MenuItemID: pasta.ID, Quantity: 2},
			{MenuItemID: steak.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	advanceTo(t, e, order.ID, models.StatusServed, 7, 2)

	bill, err := e.GenerateBill(order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.97, bill.Subtotal, 1e-9)
	assert.InDelta(t, 5.10, bill.Tax, 1e-9)
	assert.InDelta(t, 56.07, bill.Total, 1e-9)
	assert.Equal(t, models.BillPending, bill.PaymentStatus)
	assert.Equal(t, 5, bill.TableNumber)
	require.Len(t, bill.Items, 2)
	assert.NotEmpty(t, bill.Number)

	// Generating a bill does not touch the order.
	got, err := e.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusServed, got.Status)
}

func TestGenerateBillTaxTieRoundsUp(t *testing.T) {
	e := newTestEngine(t)
	seedTable(t, e, 5, 4)
	// 26.75 * 0.10 = 2.675, a half-cent tie. In float64 the product is
	// 2.6749999..., so rounding it directly would give 2.67 instead of 2.68.
	platter := seedMenuItem(t, e, "Platter", 26.75)

	order, err := e.CreateOrder(CreateOrderRequest{
		TableNumber: 5, WaiterID: 2,
		Items: []OrderLine{{MenuItemID: platter.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	advanceTo(t, e, order.ID, models.StatusServed, 7, 2)

	bill, err := e.GenerateBill(order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 26.75, bill.Subtotal, 1e-9)
	assert.InDelta(t, 2.68, bill.Tax, 1e-9, "half-cent tie rounds up")
	assert.InDelta(t, 29.43, bill.Total, 1e-9)
}

func TestSubtotalPlusTaxEqualsTotal(t *testing.T) {
	e := newTestEngine(t)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		tableNumber := i + 1
		seedTable(t, e, tableNumber, 8)

		lines := make([]OrderLine, 0, 4)
		for j := 0; j < 1+rng.Intn(4); j++ {
			price := float64(rng.Intn(4999)+1) / 100
			item := seedMenuItem(t, e, "dish", price)
			lines = append(lines, OrderLine{MenuItemID: item.ID, Quantity: 1 + rng.Intn(5)})
		}

		order, err := e.CreateOrder(CreateOrderRequest{TableNumber: tableNumber, WaiterID: 2, Items: lines})
		require.NoError(t, err)
		advanceTo(t, e, order.ID, models.StatusServed, 7, 2)

		bill, err := e.GenerateBill(order.ID)
		require.NoError(t, err)
		assert.InDelta(t, bill.Total, bill.Subtotal+bill.Tax, 0.005,
			"subtotal %v + tax %v must equal total %v to the cent", bill.Subtotal, bill.Tax, bill.Total)
		assert.InDelta(t, bill.Subtotal, fromCents(cents(bill.Subtotal)), 1e-9, "subtotal rounded to cents")
		assert.InDelta(t, bill.Tax, fromCents(cents(bill.Tax)), 1e-9, "tax rounded to cents")
	}
}

func TestGenerateBillRequiresServed(t *testing.T) {
	e := newTestEngine(t)
	order := openOrder(t, e, 5, 2)

	var transitionErr *InvalidTransitionError
	_, err := e.GenerateBill(order.ID)
	require.ErrorAs(t, err, &transitionErr, "pending order cannot be billed")

	advanceTo(t, e, order.ID, models.StatusReady, 7, 2)
	_, err = e.GenerateBill(order.ID)
	require.ErrorAs(t, err, &transitionErr, "ready order cannot be billed, serving comes first")

	_, err = e.AdvanceOrder(order.ID, models.StatusServed, AdvancePayload{ActorID: 2, Actor: "waiter"})
	require.NoError(t, err)
	_, err = e.GenerateBill(order.ID)
	require.NoError(t, err)

	_, err = e.GenerateBill(9999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGenerateBillIsStable(t *testing.T) {
	e := newTestEngine(t)
	order := servedOrder(t, e, 5)

	first, err := e.GenerateBill(order.ID)
	require.NoError(t, err)
	second, err := e.GenerateBill(order.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "re-billing returns the pending bill, no duplicates")
}

func TestPayBillFreesTable(t *testing.T) {
	e := newTestEngine(t)
	at := time.Date(2025, 12, 15, 21, 0, 0, 0, time.UTC)
	order := servedOrder(t, e, 5)
	fixedClock(e, at)

	bill, err := e.GenerateBill(order.ID)
	require.NoError(t, err)

	paid, err := e.PayBill(bill.ID, "cash")
	require.NoError(t, err)
	assert.Equal(t, models.BillPaid, paid.PaymentStatus)
	assert.Equal(t, "cash", paid.PaymentMethod)
	require.NotNil(t, paid.PaidAt)
	assert.True(t, paid.PaidAt.Equal(at))

	gotOrder, err := e.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, gotOrder.Status)

	var table models.Table
	require.NoError(t, e.db.Where("number = ?", 5).First(&table).Error)
	assert.Equal(t, models.TableAvailable, table.Status)
	assert.Nil(t, table.CurrentOrderID)
	assert.Nil(t, table.AssignedWaiterID)
}

func TestPayBillIsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	order := servedOrder(t, e, 5)

	bill, err := e.GenerateBill(order.ID)
	require.NoError(t, err)
	_, err = e.PayBill(bill.ID, "cash")
	require.NoError(t, err)

	// A new order takes the freed table; the repeated pay request must not
	// re-release it.
	item := seedMenuItem(t, e, "Espresso", 2.50)
	next, err := e.CreateOrder(CreateOrderRequest{
		TableNumber: 5, WaiterID: 3,
		Items: []OrderLine{{MenuItemID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = e.PayBill(bill.ID, "card")
	require.ErrorIs(t, err, ErrAlreadyPaid)

	got, err := e.GetBill(bill.ID)
	require.NoError(t, err)
	assert.Equal(t, "cash", got.PaymentMethod, "paid bill is frozen")

	var table models.Table
	require.NoError(t, e.db.Where("number = ?", 5).First(&table).Error)
	assert.Equal(t, models.TableOccupied, table.Status)
	require.NotNil(t, table.CurrentOrderID)
	assert.Equal(t, next.ID, *table.CurrentOrderID)

	// Billing the paid order again is also refused.
	_, err = e.GenerateBill(order.ID)
	require.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestPayBillValidation(t *testing.T) {
	e := newTestEngine(t)
	order := servedOrder(t, e, 5)
	bill, err := e.GenerateBill(order.ID)
	require.NoError(t, err)

	var vErr *ValidationError
	_, err = e.PayBill(bill.ID, "")
	require.ErrorAs(t, err, &vErr)

	_, err = e.PayBill(9999, "cash")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGenerateBillEmptyOrder(t *testing.T) {
	e := newTestEngine(t)
	seedTable(t, e, 5, 4)

	// An order with no items cannot come through CreateOrder, so write one
	// directly to exercise the guard.
	order := models.Order{TableNumber: 5, Status: models.StatusServed}
	require.NoError(t, e.db.Create(&order).Error)

	var vErr *ValidationError
	_, err := e.GenerateBill(order.ID)
	require.ErrorAs(t, err, &vErr)
}
