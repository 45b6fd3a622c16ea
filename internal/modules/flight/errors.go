package flight

import "errors"

var (
	ErrNotFound         = errors.New("flight not found")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidSchedule  = errors.New("arrival_time must be after departure_time")
	ErrUnknownReference = errors.New("route or airplane does not exist")
	ErrUnknownCrew      = errors.New("one or more crew members do not exist")
	ErrHasTickets       = errors.New("flight has sold tickets")
)
