package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"airport/internal/domain"
)

type FlightFilters struct {
	From   string
	To     string
	Date   *time.Time
	Limit  int
	Offset int
}

type FlightRepository struct {
	db *gorm.DB
}

func NewFlightRepository(db *gorm.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// airportMatch selects airports whose name, near city or country name contains term.
func airportMatch(db *gorm.DB, term string) *gorm.DB {
	like := "%" + strings.ToLower(term) + "%"
	return db.Table("airports").
		Select("airports.id").
		Joins("JOIN countries ON countries.id = airports.country_id").
		Where("LOWER(airports.name) LIKE ? OR LOWER(airports.near_city) LIKE ? OR LOWER(countries.name) LIKE ?", like, like, like)
}

func preloadFlightDetail(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Route.Departure.Country").
		Preload("Route.Destination.Country").
		Preload("Airplane.AirplaneType").
		Preload("Airplane.Cabins", func(db *gorm.DB) *gorm.DB { return db.Order("cabins.id") }).
		Preload("Airplane.Cabins.SeatClass").
		Preload("Crew", func(db *gorm.DB) *gorm.DB { return db.Order("crew.id") })
}

// GetAll returns flights matching the filters, latest departure first, with the total match count.
func (r *FlightRepository) GetAll(
	ctx context.Context,
	f FlightFilters,
) ([]domain.Flight, int64, error) {
	var flights []domain.Flight
	var total int64

	db := r.db.WithContext(ctx)
	q := db.Model(&domain.Flight{})

	if f.From != "" {
		q = q.Where("route_id IN (?)",
			db.Table("routes").Select("routes.id").Where("departure_id IN (?)", airportMatch(db, f.From)))
	}

	if f.To != "" {
		q = q.Where("route_id IN (?)",
			db.Table("routes").Select("routes.id").Where("destination_id IN (?)", airportMatch(db, f.To)))
	}

	if f.Date != nil {
		day := time.Date(f.Date.Year(), f.Date.Month(), f.Date.Day(), 0, 0, 0, 0, time.UTC)
		q = q.Where("departure_time >= ? AND departure_time < ?", day, day.Add(24*time.Hour))
	}

	q = q.Session(&gorm.Session{})

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	list := preloadFlightDetail(q).Order("departure_time DESC").Order("id DESC")
	if f.Limit > 0 {
		list = list.Limit(f.Limit).Offset(f.Offset)
	}
	err := list.Find(&flights).Error

	return flights, total, err
}

func (r *FlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	var flight domain.Flight

	err := preloadFlightDetail(r.db.WithContext(ctx)).First(&flight, id).Error
	if err != nil {
		return nil, err
	}

	return &flight, nil
}

// GetWithAirplane loads only what seat validation needs: the airplane and its cabins.
func (r *FlightRepository) GetWithAirplane(ctx context.Context, id int64) (*domain.Flight, error) {
	var flight domain.Flight
	err := r.db.WithContext(ctx).
		Preload("Airplane.Cabins").
		First(&flight, id).Error
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

// Create inserts the flight with its crew roster; crew members must exist.
func (r *FlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.WithContext(ctx).
		Omit("Route", "Airplane", "Crew.*").
		Create(flight).Error
}

// lockFlight loads the flight row FOR UPDATE so a concurrent order cannot
// sell a seat between the ticket check and the write.
func lockFlight(tx *gorm.DB, id int64) (*domain.Flight, error) {
	var flight domain.Flight
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "airplane_id").
		First(&flight, id).Error
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func hasTickets(tx *gorm.DB, flightID int64) (bool, error) {
	var n int64
	err := tx.Model(&domain.Ticket{}).Where("flight_id = ?", flightID).Count(&n).Error
	return n > 0, err
}

// Update saves the flight's scalar fields and replaces its crew roster.
// The airplane cannot be swapped once tickets are sold: they refer to its cabins.
func (r *FlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockFlight(tx, flight.ID)
		if err != nil {
			return err
		}
		if current.AirplaneID != flight.AirplaneID {
			sold, err := hasTickets(tx, flight.ID)
			if err != nil {
				return err
			}
			if sold {
				return domain.ErrFlightHasTickets
			}
		}

		res := tx.Model(&domain.Flight{}).
			Where("id = ?", flight.ID).
			Updates(map[string]any{
				"route_id":       flight.RouteID,
				"airplane_id":    flight.AirplaneID,
				"departure_time": flight.DepartureTime,
				"arrival_time":   flight.ArrivalTime,
				"updated_at":     time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		crew := flight.Crew
		if crew == nil {
			crew = []domain.Crew{}
		}
		return tx.Model(&domain.Flight{ID: flight.ID}).
			Association("Crew").
			Replace(crew)
	})
}

// Delete removes the flight and its crew links. A flight with sold tickets is
// kept and domain.ErrFlightHasTickets returned.
func (r *FlightRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockFlight(tx, id); err != nil {
			return err
		}
		sold, err := hasTickets(tx, id)
		if err != nil {
			return err
		}
		if sold {
			return domain.ErrFlightHasTickets
		}

		if err := tx.Model(&domain.Flight{ID: id}).Association("Crew").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&domain.Flight{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

type soldRow struct {
	FlightID int64
	Sold     int64
}

// CountTickets returns the number of sold tickets per flight id.
// Flights without tickets are absent from the map.
func (r *FlightRepository) CountTickets(ctx context.Context, flightIDs []int64) (map[int64]int64, error) {
	sold := make(map[int64]int64, len(flightIDs))
	if len(flightIDs) == 0 {
		return sold, nil
	}

	var rows []soldRow
	err := r.db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Select("flight_id, COUNT(*) AS sold").
		Where("flight_id IN ?", flightIDs).
		Group("flight_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		sold[row.FlightID] = row.Sold
	}
	return sold, nil
}

// TakenSeats lists the sold seats of a flight grouped by cabin id.
func (r *FlightRepository) TakenSeats(ctx context.Context, flightID int64) (map[int64][]int, error) {
	var tickets []domain.Ticket
	err := r.db.WithContext(ctx).
		Select("cabin_id", "seat").
		Where("flight_id = ?", flightID).
		Order("cabin_id").Order("seat").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}

	taken := make(map[int64][]int)
	for _, t := range tickets {
		taken[t.CabinID] = append(taken[t.CabinID], t.Seat)
	}
	return taken, nil
}
