package repository

import (
	"context"

	"gorm.io/gorm"

	"airport/internal/domain"
)

// NetworkRepository stores countries, airports and routes.
type NetworkRepository struct {
	db *gorm.DB
}

func NewNetworkRepository(db *gorm.DB) *NetworkRepository {
	return &NetworkRepository{db: db}
}

func (r *NetworkRepository) ListCountries(ctx context.Context) ([]domain.Country, error) {
	var countries []domain.Country
	err := r.db.WithContext(ctx).Order("id").Find(&countries).Error
	return countries, err
}

func (r *NetworkRepository) GetCountry(ctx context.Context, id int64) (*domain.Country, error) {
	var country domain.Country
	if err := r.db.WithContext(ctx).First(&country, id).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *NetworkRepository) CreateCountry(ctx context.Context, c *domain.Country) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *NetworkRepository) UpdateCountryImage(ctx context.Context, id int64, image string) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Country{}).
		Where("id = ?", id).
		Update("image", image)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NetworkRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	var airports []domain.Airport
	err := r.db.WithContext(ctx).Preload("Country").Order("id").Find(&airports).Error
	return airports, err
}

func (r *NetworkRepository) CreateAirport(ctx context.Context, a *domain.Airport) error {
	return r.db.WithContext(ctx).Omit("Country").Create(a).Error
}

func (r *NetworkRepository) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	var routes []domain.Route
	err := r.db.WithContext(ctx).
		Preload("Departure.Country").
		Preload("Destination.Country").
		Order("id").
		Find(&routes).Error
	return routes, err
}

func (r *NetworkRepository) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	var route domain.Route
	err := r.db.WithContext(ctx).
		Preload("Departure.Country").
		Preload("Destination.Country").
		First(&route, id).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *NetworkRepository) CreateRoute(ctx context.Context, route *domain.Route) error {
	return r.db.WithContext(ctx).Omit("Departure", "Destination").Create(route).Error
}
