package models

import "time"

// PaymentStatus of a bill
type PaymentStatus string

const (
	BillPending PaymentStatus = "pending"
	BillPaid    PaymentStatus = "paid"
)

// Bill is an immutable financial snapshot of one order at generation time.
// Line items are copied out of the order so a later edit to the live order
// can never change a bill that was already handed to the customer. Once
// PaymentStatus is paid the record is frozen.
type Bill struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	Number        string        `json:"number" gorm:"uniqueIndex;not null"`
	OrderID       uint          `json:"order_id" gorm:"uniqueIndex;not null"`
	TableNumber   int           `json:"table_number" gorm:"not null"`
	Items         []BillItem    `json:"items,omitempty" gorm:"foreignKey:BillID"`
	Subtotal      float64       `json:"subtotal" gorm:"not null"`
	Tax           float64       `json:"tax" gorm:"not null"`
	Total         float64       `json:"total" gorm:"not null"`
	PaymentMethod string        `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"not null;default:'pending'"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type BillItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	BillID    uint    `json:"bill_id" gorm:"not null"`
	Name      string  `json:"name" gorm:"not null"`
	UnitPrice float64 `json:"unit_price" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	LineTotal float64 `json:"line_total" gorm:"not null"`
}
