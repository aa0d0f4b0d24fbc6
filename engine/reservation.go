package engine

import (
	"errors"
	"time"

	"dinein-api/models"

	"gorm.io/gorm"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type ReservationRequest struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	TableNumber   int
	Date          string // "2006-01-02"
	StartTime     string // "15:04"
	EndTime       string // "15:04", must be after StartTime
	Guests        int
}

func (r ReservationRequest) validate() error {
	if r.CustomerName == "" {
		return validationf("customer name is required")
	}
	if _, err := time.Parse(dateLayout, r.Date); err != nil {
		return validationf("invalid date %q, expected YYYY-MM-DD", r.Date)
	}
	if _, err := time.Parse(timeLayout, r.StartTime); err != nil {
		return validationf("invalid start time %q, expected HH:MM", r.StartTime)
	}
	if _, err := time.Parse(timeLayout, r.EndTime); err != nil {
		return validationf("invalid end time %q, expected HH:MM", r.EndTime)
	}
	// Zero-padded HH:MM compares correctly as a string.
	if r.EndTime <= r.StartTime {
		return validationf("end time %s must be after start time %s", r.EndTime, r.StartTime)
	}
	if r.Guests < 1 {
		return validationf("guests must be at least 1")
	}
	return nil
}

// FindConflicts returns every non-cancelled reservation on the same table and
// date whose [start,end) window overlaps the given one. Two windows overlap
// iff s1 < e2 && s2 < e1. excludeID skips the reservation being edited in
// place; pass 0 for a new booking. Pure query, no side effects.
func FindConflicts(tx *gorm.DB, tableNumber int, date, start, end string, excludeID uint) ([]models.Reservation, error) {
	var table models.Table
	if err := tx.Where("number = ?", tableNumber).First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	query := tx.Where("table_number = ? AND date = ? AND status <> ?",
		tableNumber, date, models.ReservationCancelled).
		Where("start_time < ? AND ? < end_time", end, start)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var conflicts []models.Reservation
	if err := query.Find(&conflicts).Error; err != nil {
		return nil, err
	}
	return conflicts, nil
}

// CreateReservation validates the request and runs the conflict check and the
// insert in one transaction, so two simultaneous bookings for the same window
// cannot both pass the check.
func (e *Engine) CreateReservation(req ReservationRequest) (*models.Reservation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	// validate() already proved both parses succeed.
	startAt, _ := time.Parse(dateLayout+" "+timeLayout, req.Date+" "+req.StartTime)
	if startAt.Before(e.now()) {
		return nil, validationf("reservation start %s %s is in the past", req.Date, req.StartTime)
	}

	reservation := models.Reservation{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		TableNumber:   req.TableNumber,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Guests:        req.Guests,
		Status:        models.ReservationPending,
	}

	err := e.inTx(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.Where("number = ?", req.TableNumber).First(&table).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if req.Guests > table.Capacity {
			return validationf("table %d seats %d, cannot host %d guests",
				table.Number, table.Capacity, req.Guests)
		}

		conflicts, err := FindConflicts(tx, req.TableNumber, req.Date, req.StartTime, req.EndTime, 0)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &ReservationConflictError{
				TableNumber: req.TableNumber,
				Date:        req.Date,
				Conflicts:   conflicts,
			}
		}

		return tx.Create(&reservation).Error
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ConfirmReservation moves a pending reservation to confirmed (manager action).
func (e *Engine) ConfirmReservation(id uint) (*models.Reservation, error) {
	return e.updateReservationStatus(id, models.ReservationConfirmed)
}

// CancelReservation cancels a pending or confirmed reservation. Cancelled is
// terminal: the record becomes inert and its window is free for rebooking.
func (e *Engine) CancelReservation(id uint) (*models.Reservation, error) {
	return e.updateReservationStatus(id, models.ReservationCancelled)
}

func (e *Engine) updateReservationStatus(id uint, target models.ReservationStatus) (*models.Reservation, error) {
	var reservation models.Reservation
	err := e.inTx(func(tx *gorm.DB) error {
		if err := tx.First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if reservation.Status == models.ReservationCancelled {
			return validationf("reservation %d is cancelled and cannot be modified", id)
		}
		if target == models.ReservationConfirmed && reservation.Status != models.ReservationPending {
			return validationf("reservation %d is already %s", id, reservation.Status)
		}
		reservation.Status = target
		return tx.Model(&reservation).Update("status", target).Error
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}
