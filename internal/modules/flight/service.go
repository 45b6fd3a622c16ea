package flight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"airport/internal/database"
	"airport/internal/domain"
	"airport/internal/pkg/pagination"
	"airport/internal/repository"
)

type Service struct {
	flights Repository
	crew    CrewLookup
}

func NewService(flights Repository, crew CrewLookup) *Service {
	return &Service{flights: flights, crew: crew}
}

func parseFilters(q ListQuery, p pagination.Pagination) (repository.FlightFilters, error) {
	f := repository.FlightFilters{
		From:   strings.TrimSpace(q.From),
		To:     strings.TrimSpace(q.To),
		Limit:  p.Limit,
		Offset: p.Skip,
	}
	if d := strings.TrimSpace(q.Date); d != "" {
		day, err := time.Parse(dateLayout, d)
		if err != nil {
			return f, ErrInvalidDate
		}
		f.Date = &day
	}
	return f, nil
}

// List returns one page of flights with tickets_available computed from current sales.
func (s *Service) List(ctx context.Context, q ListQuery, p pagination.Pagination) ([]ListItem, int64, error) {
	filters, err := parseFilters(q, p)
	if err != nil {
		return nil, 0, err
	}

	flights, total, err := s.flights.GetAll(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("list flights: %w", err)
	}

	ids := make([]int64, 0, len(flights))
	for _, f := range flights {
		ids = append(ids, f.ID)
	}
	sold, err := s.flights.CountTickets(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("count tickets: %w", err)
	}

	items := make([]ListItem, 0, len(flights))
	for _, f := range flights {
		items = append(items, ToListItem(f, sold[f.ID]))
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Detail, error) {
	f, err := s.flights.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Detail{}, ErrNotFound
		}
		return Detail{}, err
	}

	sold, err := s.flights.CountTickets(ctx, []int64{id})
	if err != nil {
		return Detail{}, fmt.Errorf("count tickets: %w", err)
	}
	taken, err := s.flights.TakenSeats(ctx, id)
	if err != nil {
		return Detail{}, fmt.Errorf("taken seats: %w", err)
	}

	return ToDetail(*f, sold[id], taken), nil
}

// TicketsAvailable is the live availability of one flight.
func (s *Service) TicketsAvailable(ctx context.Context, id int64) (int, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return d.TicketsAvailable, nil
}

func (s *Service) buildFlight(ctx context.Context, req FlightRequest) (*domain.Flight, error) {
	if !req.ArrivalTime.After(req.DepartureTime) {
		return nil, ErrInvalidSchedule
	}

	ids := uniqueIDs(req.Crew)
	crew, err := s.crew.GetCrewByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(crew) != len(ids) {
		return nil, ErrUnknownCrew
	}

	return &domain.Flight{
		RouteID:       req.Route,
		AirplaneID:    req.Airplane,
		Crew:          crew,
		DepartureTime: req.DepartureTime.UTC(),
		ArrivalTime:   req.ArrivalTime.UTC(),
	}, nil
}

func (s *Service) Create(ctx context.Context, req FlightRequest) (Detail, error) {
	f, err := s.buildFlight(ctx, req)
	if err != nil {
		return Detail{}, err
	}
	if err := s.flights.Create(ctx, f); err != nil {
		if database.IsForeignKeyViolation(err) {
			return Detail{}, ErrUnknownReference
		}
		return Detail{}, fmt.Errorf("create flight: %w", err)
	}
	return s.Get(ctx, f.ID)
}

func (s *Service) Update(ctx context.Context, id int64, req FlightRequest) (Detail, error) {
	f, err := s.buildFlight(ctx, req)
	if err != nil {
		return Detail{}, err
	}
	f.ID = id
	if err := s.flights.Update(ctx, f); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return Detail{}, ErrNotFound
		case errors.Is(err, domain.ErrFlightHasTickets):
			return Detail{}, ErrHasTickets
		case database.IsForeignKeyViolation(err):
			return Detail{}, ErrUnknownReference
		}
		return Detail{}, fmt.Errorf("update flight: %w", err)
	}
	return s.Get(ctx, id)
}

// Patch applies the given fields over the stored flight and saves it like Update.
func (s *Service) Patch(ctx context.Context, id int64, p FlightPatch) (Detail, error) {
	f, err := s.flights.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Detail{}, ErrNotFound
		}
		return Detail{}, err
	}

	req := FlightRequest{
		Route:         f.RouteID,
		Airplane:      f.AirplaneID,
		Crew:          make([]int64, 0, len(f.Crew)),
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
	}
	for _, c := range f.Crew {
		req.Crew = append(req.Crew, c.ID)
	}
	if p.Route != nil {
		req.Route = *p.Route
	}
	if p.Airplane != nil {
		req.Airplane = *p.Airplane
	}
	if p.Crew != nil {
		req.Crew = *p.Crew
	}
	if p.DepartureTime != nil {
		req.DepartureTime = *p.DepartureTime
	}
	if p.ArrivalTime != nil {
		req.ArrivalTime = *p.ArrivalTime
	}
	return s.Update(ctx, id, req)
}

// Delete refuses to drop a flight once tickets are sold for it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.flights.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrNotFound
		case errors.Is(err, domain.ErrFlightHasTickets):
			return ErrHasTickets
		}
		return fmt.Errorf("delete flight: %w", err)
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
