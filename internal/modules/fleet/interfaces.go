package fleet

import (
	"context"

	"airport/internal/domain"
)

type Repository interface {
	ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error)
	CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error
	ListSeatClasses(ctx context.Context) ([]domain.SeatClass, error)
	CreateSeatClass(ctx context.Context, sc *domain.SeatClass) error
	ListCabins(ctx context.Context) ([]domain.Cabin, error)
	GetCabin(ctx context.Context, id int64) (*domain.Cabin, error)
	GetCabinsByIDs(ctx context.Context, ids []int64) ([]domain.Cabin, error)
	CreateCabin(ctx context.Context, c *domain.Cabin) error
	ListAirplanes(ctx context.Context) ([]domain.Airplane, error)
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)
	CreateAirplane(ctx context.Context, a *domain.Airplane) error
	ListCrew(ctx context.Context) ([]domain.Crew, error)
	CreateCrew(ctx context.Context, c *domain.Crew) error
}
