package fleet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"airport/internal/database"
	"airport/internal/domain"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListAirplaneTypes(ctx context.Context) ([]NamedResponse, error) {
	types, err := s.repo.ListAirplaneTypes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]NamedResponse, 0, len(types))
	for _, t := range types {
		out = append(out, NamedResponse{ID: t.ID, Name: t.Name})
	}
	return out, nil
}

func (s *Service) CreateAirplaneType(ctx context.Context, req NameRequest) (NamedResponse, error) {
	t := domain.AirplaneType{Name: strings.TrimSpace(req.Name)}
	if err := s.repo.CreateAirplaneType(ctx, &t); err != nil {
		return NamedResponse{}, fmt.Errorf("create airplane type: %w", err)
	}
	return NamedResponse{ID: t.ID, Name: t.Name}, nil
}

func (s *Service) ListSeatClasses(ctx context.Context) ([]NamedResponse, error) {
	classes, err := s.repo.ListSeatClasses(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]NamedResponse, 0, len(classes))
	for _, sc := range classes {
		out = append(out, NamedResponse{ID: sc.ID, Name: sc.Name})
	}
	return out, nil
}

func (s *Service) CreateSeatClass(ctx context.Context, req NameRequest) (NamedResponse, error) {
	sc := domain.SeatClass{Name: strings.TrimSpace(req.Name)}
	if err := s.repo.CreateSeatClass(ctx, &sc); err != nil {
		return NamedResponse{}, fmt.Errorf("create seat class: %w", err)
	}
	return NamedResponse{ID: sc.ID, Name: sc.Name}, nil
}

func (s *Service) ListCabins(ctx context.Context) ([]CabinResponse, error) {
	cabins, err := s.repo.ListCabins(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CabinResponse, 0, len(cabins))
	for _, c := range cabins {
		out = append(out, ToCabinResponse(c))
	}
	return out, nil
}

func (s *Service) CreateCabin(ctx context.Context, req CreateCabinRequest) (CabinResponse, error) {
	cabin := domain.Cabin{
		Name:        strings.TrimSpace(req.Name),
		SeatClassID: req.SeatClass,
		Seats:       req.Seats,
	}
	if err := s.repo.CreateCabin(ctx, &cabin); err != nil {
		if database.IsForeignKeyViolation(err) {
			return CabinResponse{}, ErrUnknownSeatClass
		}
		return CabinResponse{}, fmt.Errorf("create cabin: %w", err)
	}

	created, err := s.repo.GetCabin(ctx, cabin.ID)
	if err != nil {
		return CabinResponse{}, err
	}
	return ToCabinResponse(*created), nil
}

func (s *Service) ListAirplanes(ctx context.Context) ([]AirplaneResponse, error) {
	airplanes, err := s.repo.ListAirplanes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AirplaneResponse, 0, len(airplanes))
	for _, a := range airplanes {
		out = append(out, ToAirplaneResponse(a))
	}
	return out, nil
}

func (s *Service) GetAirplane(ctx context.Context, id int64) (AirplaneResponse, error) {
	a, err := s.repo.GetAirplane(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AirplaneResponse{}, ErrNotFound
		}
		return AirplaneResponse{}, err
	}
	return ToAirplaneResponse(*a), nil
}

// CreateAirplane assigns existing cabins to a new airplane. Duplicate cabin ids collapse.
func (s *Service) CreateAirplane(ctx context.Context, req CreateAirplaneRequest) (AirplaneResponse, error) {
	ids := uniqueIDs(req.Cabins)
	cabins, err := s.repo.GetCabinsByIDs(ctx, ids)
	if err != nil {
		return AirplaneResponse{}, err
	}
	if len(cabins) != len(ids) {
		return AirplaneResponse{}, ErrUnknownCabin
	}

	airplane := domain.Airplane{
		Name:           strings.TrimSpace(req.Name),
		AirplaneTypeID: req.AirplaneType,
		Cabins:         cabins,
	}
	if err := s.repo.CreateAirplane(ctx, &airplane); err != nil {
		if database.IsForeignKeyViolation(err) {
			return AirplaneResponse{}, ErrUnknownType
		}
		return AirplaneResponse{}, fmt.Errorf("create airplane: %w", err)
	}

	return s.GetAirplane(ctx, airplane.ID)
}

func (s *Service) ListCrew(ctx context.Context) ([]CrewResponse, error) {
	crew, err := s.repo.ListCrew(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CrewResponse, 0, len(crew))
	for _, c := range crew {
		out = append(out, ToCrewResponse(c))
	}
	return out, nil
}

func (s *Service) CreateCrew(ctx context.Context, req CreateCrewRequest) (CrewResponse, error) {
	c := domain.Crew{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	if err := s.repo.CreateCrew(ctx, &c); err != nil {
		return CrewResponse{}, fmt.Errorf("create crew: %w", err)
	}
	return ToCrewResponse(c), nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
