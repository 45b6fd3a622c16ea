package order

import (
	"context"

	"airport/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, int64, error)
	GetByID(ctx context.Context, userID, id int64) (*domain.Order, error)
}

type FlightReader interface {
	GetWithAirplane(ctx context.Context, id int64) (*domain.Flight, error)
	CountTickets(ctx context.Context, flightIDs []int64) (map[int64]int64, error)
}

type CabinReader interface {
	GetCabin(ctx context.Context, id int64) (*domain.Cabin, error)
}

// SeatNotifier is told which flights changed once an order has committed.
type SeatNotifier interface {
	SeatsChanged(ctx context.Context, flightIDs ...int64)
}
