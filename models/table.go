package models

import "time"

// TableStatus represents the current state of a dining table
type TableStatus string

const (
	TableAvailable      TableStatus = "available"
	TableOccupied       TableStatus = "occupied"
	TableReserved       TableStatus = "reserved"
	TableNeedAssistance TableStatus = "need_assistance"
	TableMaintenance    TableStatus = "maintenance"
)

// Table is a physical seat unit. Status, AssignedWaiterID and CurrentOrderID
// are owned by the engine's table synchronizer — nothing else writes them.
// CurrentOrderID is set exactly while an active (non-paid) order holds the
// table.
type Table struct {
	ID               uint        `json:"id" gorm:"primaryKey"`
	Number           int         `json:"number" gorm:"uniqueIndex;not null"`
	Capacity         int         `json:"capacity" gorm:"not null"`
	Status           TableStatus `json:"status" gorm:"not null;default:'available'"`
	AssignedWaiterID *uint       `json:"assigned_waiter_id"`
	AssignedWaiter   *User       `json:"assigned_waiter,omitempty" gorm:"foreignKey:AssignedWaiterID"`
	CurrentOrderID   *uint       `json:"current_order_id"`
	Location         string      `json:"location"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
