package repository

import (
	"context"

	"gorm.io/gorm"

	"airport/internal/domain"
)

// FleetRepository stores airplane types, seat classes, cabins, airplanes and crew.
type FleetRepository struct {
	db *gorm.DB
}

func NewFleetRepository(db *gorm.DB) *FleetRepository {
	return &FleetRepository{db: db}
}

func (r *FleetRepository) ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	var types []domain.AirplaneType
	err := r.db.WithContext(ctx).Order("id").Find(&types).Error
	return types, err
}

func (r *FleetRepository) CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *FleetRepository) ListSeatClasses(ctx context.Context) ([]domain.SeatClass, error) {
	var classes []domain.SeatClass
	err := r.db.WithContext(ctx).Order("id").Find(&classes).Error
	return classes, err
}

func (r *FleetRepository) CreateSeatClass(ctx context.Context, sc *domain.SeatClass) error {
	return r.db.WithContext(ctx).Create(sc).Error
}

func (r *FleetRepository) ListCabins(ctx context.Context) ([]domain.Cabin, error) {
	var cabins []domain.Cabin
	err := r.db.WithContext(ctx).
		Preload("SeatClass").
		Order("id").
		Find(&cabins).Error
	return cabins, err
}

func (r *FleetRepository) GetCabin(ctx context.Context, id int64) (*domain.Cabin, error) {
	var cabin domain.Cabin
	if err := r.db.WithContext(ctx).Preload("SeatClass").First(&cabin, id).Error; err != nil {
		return nil, err
	}
	return &cabin, nil
}

// GetCabinsByIDs returns the cabins that exist among ids, in id order.
func (r *FleetRepository) GetCabinsByIDs(ctx context.Context, ids []int64) ([]domain.Cabin, error) {
	var cabins []domain.Cabin
	if len(ids) == 0 {
		return cabins, nil
	}
	err := r.db.WithContext(ctx).
		Preload("SeatClass").
		Where("id IN ?", ids).
		Order("id").
		Find(&cabins).Error
	return cabins, err
}

func (r *FleetRepository) CreateCabin(ctx context.Context, c *domain.Cabin) error {
	return r.db.WithContext(ctx).Omit("SeatClass").Create(c).Error
}

func (r *FleetRepository) ListAirplanes(ctx context.Context) ([]domain.Airplane, error) {
	var airplanes []domain.Airplane
	err := r.db.WithContext(ctx).
		Preload("AirplaneType").
		Preload("Cabins", func(db *gorm.DB) *gorm.DB { return db.Order("cabins.id") }).
		Preload("Cabins.SeatClass").
		Order("id").
		Find(&airplanes).Error
	return airplanes, err
}

func (r *FleetRepository) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	var airplane domain.Airplane
	err := r.db.WithContext(ctx).
		Preload("AirplaneType").
		Preload("Cabins", func(db *gorm.DB) *gorm.DB { return db.Order("cabins.id") }).
		Preload("Cabins.SeatClass").
		First(&airplane, id).Error
	if err != nil {
		return nil, err
	}
	return &airplane, nil
}

// CreateAirplane inserts the airplane and its cabin links; the cabins themselves must exist.
func (r *FleetRepository) CreateAirplane(ctx context.Context, a *domain.Airplane) error {
	return r.db.WithContext(ctx).
		Omit("AirplaneType", "Cabins.*").
		Create(a).Error
}

func (r *FleetRepository) ListCrew(ctx context.Context) ([]domain.Crew, error) {
	var crew []domain.Crew
	err := r.db.WithContext(ctx).Order("id").Find(&crew).Error
	return crew, err
}

func (r *FleetRepository) GetCrewByIDs(ctx context.Context, ids []int64) ([]domain.Crew, error) {
	var crew []domain.Crew
	if len(ids) == 0 {
		return crew, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&crew).Error
	return crew, err
}

func (r *FleetRepository) CreateCrew(ctx context.Context, c *domain.Crew) error {
	return r.db.WithContext(ctx).Create(c).Error
}
