package order

import (
	"errors"
	"fmt"
)

var (
	ErrNoTickets     = errors.New("order must contain at least one ticket")
	ErrUnknownFlight = errors.New("flight does not exist")
	ErrUnknownCabin  = errors.New("cabin does not exist")
	ErrNotFound      = errors.New("order not found")
)

// TicketError ties a rejection to the position of the ticket in the request.
type TicketError struct {
	Index int
	Err   error
}

func (e *TicketError) Error() string {
	return fmt.Sprintf("tickets[%d]: %v", e.Index, e.Err)
}

func (e *TicketError) Unwrap() error { return e.Err }
