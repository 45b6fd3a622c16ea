package fleet

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrUnknownSeatClass = errors.New("seat class does not exist")
	ErrUnknownType      = errors.New("airplane type does not exist")
	ErrUnknownCabin     = errors.New("one or more cabins do not exist")
)
