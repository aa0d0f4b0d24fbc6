package models

import "time"

// ReservationStatus represents the booking state of a reservation
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation books a table for a time window on one date. Date is stored as
// "2006-01-02", StartTime/EndTime as zero-padded "15:04" so the half-open
// interval comparison works lexicographically. Tables are referenced by their
// human-facing number, the natural business key. A cancelled reservation is
// inert: it never blocks a new booking and cannot be edited again.
type Reservation struct {
	ID            uint              `json:"id" gorm:"primaryKey"`
	CustomerName  string            `json:"customer_name" gorm:"not null"`
	CustomerPhone string            `json:"customer_phone"`
	CustomerEmail string            `json:"customer_email"`
	TableNumber   int               `json:"table_number" gorm:"index;not null"`
	Date          string            `json:"date" gorm:"index;not null"`
	StartTime     string            `json:"start_time" gorm:"not null"`
	EndTime       string            `json:"end_time" gorm:"not null"`
	Guests        int               `json:"guests" gorm:"not null"`
	Status        ReservationStatus `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
