package domain

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Order is a purchase event owned by one user. It is created together with
// its tickets and never updated afterwards.
type Order struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Tickets   []Ticket  `json:"tickets" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// Ticket is the atomic sellable unit. (flight, cabin, seat) is unique at the storage level.
type Ticket struct {
	ID       int64   `json:"id" gorm:"primaryKey"`
	FlightID int64   `json:"flight" gorm:"not null;uniqueIndex:idx_tickets_flight_cabin_seat,priority:1"`
	Flight   *Flight `json:"-" gorm:"foreignKey:FlightID;constraint:OnDelete:CASCADE"`
	CabinID  int64   `json:"cabin" gorm:"not null;uniqueIndex:idx_tickets_flight_cabin_seat,priority:2"`
	Cabin    *Cabin  `json:"-" gorm:"foreignKey:CabinID;constraint:OnDelete:CASCADE"`
	Seat     int     `json:"seat" gorm:"not null;uniqueIndex:idx_tickets_flight_cabin_seat,priority:3"`
	OrderID  int64   `json:"order" gorm:"not null;index"`
}

// BeforeSave re-validates the seat against the flight's airplane inside the
// current transaction, so writes that bypass the order API are held to the same rule.
func (t *Ticket) BeforeSave(tx *gorm.DB) error {
	db := tx.Session(&gorm.Session{NewDB: true})

	// shared lock: the airplane cannot be swapped until this ticket commits
	var flight Flight
	err := db.Clauses(clause.Locking{Strength: "SHARE"}).
		Preload("Airplane.Cabins").
		First(&flight, t.FlightID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFlightNotFound
		}
		return fmt.Errorf("load flight %d: %w", t.FlightID, err)
	}
	if flight.Airplane == nil {
		return fmt.Errorf("flight %d has no airplane", t.FlightID)
	}

	var cabin Cabin
	if err := db.First(&cabin, t.CabinID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCabinNotFound
		}
		return fmt.Errorf("load cabin %d: %w", t.CabinID, err)
	}

	return ValidateTicket(cabin, t.Seat, *flight.Airplane)
}
