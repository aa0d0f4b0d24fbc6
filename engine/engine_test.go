package engine

import (
	"errors"
	"testing"
	"time"

	"dinein-api/models"
	"dinein-api/statemachine"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Table{},
		&models.Reservation{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.Bill{},
		&models.BillItem{},
	))
	return New(db, 0.10)
}

func seedTable(t *testing.T, e *Engine, number, capacity int) *models.Table {
	t.Helper()
	table, err := e.CreateTable(number, capacity, "")
	require.NoError(t, err)
	return table
}

func seedMenuItem(t *testing.T, e *Engine, name string, price float64) *models.MenuItem {
	t.Helper()
	item := models.MenuItem{Name: name, Price: price, IsAvailable: true}
	require.NoError(t, e.db.Create(&item).Error)
	return &item
}

// openOrder seeds a table and a menu item, then opens an order on the table.
func openOrder(t *testing.T, e *Engine, tableNumber int, waiterID uint) *models.Order {
	t.Helper()
	seedTable(t, e, tableNumber, 4)
	item := seedMenuItem(t, e, "Margherita", 9.50)
	order, err := e.CreateOrder(CreateOrderRequest{
		TableNumber:  tableNumber,
		WaiterID:     waiterID,
		CustomerName: "Walk-in",
		Items:        []OrderLine{{MenuItemID: item.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	return order
}

// advanceTo walks an order forward through the lifecycle until it reaches
// target, using chefID for the kitchen steps and waiterID for serving.
func advanceTo(t *testing.T, e *Engine, orderID uint, target models.OrderStatus, chefID, waiterID uint) {
	t.Helper()
	steps := []struct {
		to      models.OrderStatus
		payload AdvancePayload
	}{
		{models.StatusPreparing, AdvancePayload{ActorID: chefID, Actor: statemachine.ActorChef, EstimatedPrepMinutes: 15}},
		{models.StatusReady, AdvancePayload{ActorID: chefID, Actor: statemachine.ActorChef}},
		{models.StatusServed, AdvancePayload{ActorID: waiterID, Actor: statemachine.ActorWaiter}},
	}
	for _, step := range steps {
		_, err := e.AdvanceOrder(orderID, step.to, step.payload)
		require.NoError(t, err)
		if step.to == target {
			return
		}
	}
	require.Equal(t, models.StatusServed, target, "advanceTo only walks up to served")
}

func fixedClock(e *Engine, at time.Time) {
	e.now = func() time.Time { return at }
}

func TestInTxRetriesWhenDatabaseLocked(t *testing.T) {
	e := newTestEngine(t)

	calls := 0
	err := e.inTx(func(tx *gorm.DB) error {
		calls++
		if calls == 1 {
			return errors.New("database is locked (5) (SQLITE_BUSY)")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestInTxDoesNotRetryOtherErrors(t *testing.T) {
	e := newTestEngine(t)

	calls := 0
	err := e.inTx(func(tx *gorm.DB) error {
		calls++
		return ErrNotFound
	})
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 1, calls)
}
