package network

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnknownCountry  = errors.New("country does not exist")
	ErrUnknownAirport  = errors.New("airport does not exist")
	ErrSameAirport     = errors.New("departure and destination must differ")
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file too large")
	ErrInvalidMimeType = errors.New("only jpeg, png and webp images are allowed")
)
