package flight

import (
	"context"

	"airport/internal/domain"
	"airport/internal/repository"
)

type Repository interface {
	GetAll(ctx context.Context, f repository.FlightFilters) ([]domain.Flight, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	CountTickets(ctx context.Context, flightIDs []int64) (map[int64]int64, error)
	TakenSeats(ctx context.Context, flightID int64) (map[int64][]int, error)
}

type CrewLookup interface {
	GetCrewByIDs(ctx context.Context, ids []int64) ([]domain.Crew, error)
}
