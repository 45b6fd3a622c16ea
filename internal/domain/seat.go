package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFlightNotFound = errors.New("flight not found")
	ErrCabinNotFound  = errors.New("cabin not found")
)

// InvalidCabinError is returned when a ticket names a cabin that is not
// assigned to the flight's airplane.
type InvalidCabinError struct {
	Cabin string
}

func (e *InvalidCabinError) Error() string {
	return fmt.Sprintf("Airplane has no cabin '%s'", e.Cabin)
}

// SeatOutOfRangeError is returned when the seat number is outside [1, Max].
type SeatOutOfRangeError struct {
	Seat int
	Max  int
}

func (e *SeatOutOfRangeError) Error() string {
	return fmt.Sprintf("Seat number must be in range (1, %d)", e.Max)
}

// DuplicateSeatError is returned when the (flight, cabin, seat) triple is already sold.
type DuplicateSeatError struct {
	FlightID int64
	CabinID  int64
	Seat     int
}

func (e *DuplicateSeatError) Error() string {
	if e.FlightID == 0 {
		return "Seat is already taken"
	}
	return fmt.Sprintf("Seat %d in cabin %d is already taken on flight %d", e.Seat, e.CabinID, e.FlightID)
}

// TicketWriteError ties a failed ticket write to the ticket's position in its order.
type TicketWriteError struct {
	Index int
	Err   error
}

func (e *TicketWriteError) Error() string {
	return fmt.Sprintf("ticket %d: %v", e.Index, e.Err)
}

func (e *TicketWriteError) Unwrap() error { return e.Err }

// ValidateTicket checks a requested seat against the airplane's cabin layout.
// Both the order API and the Ticket save hook go through this function.
func ValidateTicket(cabin Cabin, seat int, airplane Airplane) error {
	assigned, ok := airplane.HasCabin(cabin.ID)
	if !ok {
		return &InvalidCabinError{Cabin: cabin.Name}
	}
	if seat < 1 || seat > assigned.Seats {
		return &SeatOutOfRangeError{Seat: seat, Max: assigned.Seats}
	}
	return nil
}

// TicketsAvailable is the airplane capacity minus tickets already sold for a flight.
func TicketsAvailable(airplane Airplane, sold int64) int {
	return airplane.Capacity() - int(sold)
}

// IsSeatError reports whether err is one of the client-side seat errors.
func IsSeatError(err error) bool {
	var invalidCabin *InvalidCabinError
	var outOfRange *SeatOutOfRangeError
	var duplicate *DuplicateSeatError
	return errors.As(err, &invalidCabin) || errors.As(err, &outOfRange) || errors.As(err, &duplicate)
}
