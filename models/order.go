package models

import "time"

// OrderStatus represents all possible states of a dine-in order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusServed    OrderStatus = "served"
	StatusPaid      OrderStatus = "paid"
)

// Active reports whether the order still holds its table.
func (s OrderStatus) Active() bool {
	return s != StatusPaid
}

type Order struct {
	ID                   uint                 `json:"id" gorm:"primaryKey"`
	TableNumber          int                  `json:"table_number" gorm:"index;not null"`
	CustomerName         string               `json:"customer_name"`
	Status               OrderStatus          `json:"status" gorm:"not null;default:'pending'"`
	WaiterID             *uint                `json:"waiter_id"`
	Waiter               *User                `json:"waiter,omitempty" gorm:"foreignKey:WaiterID"`
	ChefID               *uint                `json:"chef_id"`
	Chef                 *User                `json:"chef,omitempty" gorm:"foreignKey:ChefID"`
	EstimatedPrepMinutes int                  `json:"estimated_prep_minutes"`
	PrepStartedAt        *time.Time           `json:"prep_started_at,omitempty"`
	Items                []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory        []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

type OrderItem struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	OrderID    uint     `json:"order_id" gorm:"not null"`
	MenuItemID uint     `json:"menu_item_id" gorm:"not null"`
	MenuItem   MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int      `json:"quantity" gorm:"not null"`
	UnitPrice  float64  `json:"unit_price" gorm:"not null"` // snapshot price at time of order
	Name       string   `json:"name"`                       // snapshot name
	Note       string   `json:"note"`
}

// OrderStatusHistory tracks every status change — audit trail
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"` // user ID who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
