package network

import (
	"context"

	"airport/internal/domain"
)

type Repository interface {
	ListCountries(ctx context.Context) ([]domain.Country, error)
	GetCountry(ctx context.Context, id int64) (*domain.Country, error)
	CreateCountry(ctx context.Context, c *domain.Country) error
	UpdateCountryImage(ctx context.Context, id int64, image string) error
	ListAirports(ctx context.Context) ([]domain.Airport, error)
	CreateAirport(ctx context.Context, a *domain.Airport) error
	ListRoutes(ctx context.Context) ([]domain.Route, error)
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
	CreateRoute(ctx context.Context, r *domain.Route) error
}
