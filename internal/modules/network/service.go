package network

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"

	"airport/internal/database"
	"airport/internal/domain"
)

type Service struct {
	repo   Repository
	images *ImageStore
}

func NewService(repo Repository, images *ImageStore) *Service {
	return &Service{repo: repo, images: images}
}

func (s *Service) ListCountries(ctx context.Context) ([]CountryResponse, error) {
	countries, err := s.repo.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CountryResponse, 0, len(countries))
	for _, c := range countries {
		out = append(out, ToCountryResponse(c))
	}
	return out, nil
}

func (s *Service) CreateCountry(ctx context.Context, req CreateCountryRequest) (CountryResponse, error) {
	c := domain.Country{Name: strings.TrimSpace(req.Name)}
	if err := s.repo.CreateCountry(ctx, &c); err != nil {
		return CountryResponse{}, fmt.Errorf("create country: %w", err)
	}
	return ToCountryResponse(c), nil
}

// UploadCountryImage replaces the country's image. The previous file is removed
// only after the new path is stored.
func (s *Service) UploadCountryImage(ctx context.Context, countryID int64, fh *multipart.FileHeader) (CountryResponse, error) {
	country, err := s.repo.GetCountry(ctx, countryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CountryResponse{}, ErrNotFound
		}
		return CountryResponse{}, err
	}

	url, path, err := s.images.Save(fh)
	if err != nil {
		return CountryResponse{}, err
	}

	if err := s.repo.UpdateCountryImage(ctx, countryID, url); err != nil {
		s.images.Remove(url)
		return CountryResponse{}, fmt.Errorf("store image %s: %w", path, err)
	}

	if country.Image != "" && country.Image != url {
		s.images.Remove(country.Image)
	}
	country.Image = url
	return ToCountryResponse(*country), nil
}

func (s *Service) ListAirports(ctx context.Context) ([]AirportResponse, error) {
	airports, err := s.repo.ListAirports(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AirportResponse, 0, len(airports))
	for i := range airports {
		out = append(out, ToAirportResponse(&airports[i]))
	}
	return out, nil
}

func (s *Service) CreateAirport(ctx context.Context, req CreateAirportRequest) (AirportResponse, error) {
	a := domain.Airport{
		Name:      strings.TrimSpace(req.Name),
		NearCity:  strings.TrimSpace(req.NearCity),
		CountryID: req.Country,
	}
	if err := s.repo.CreateAirport(ctx, &a); err != nil {
		if database.IsForeignKeyViolation(err) {
			return AirportResponse{}, ErrUnknownCountry
		}
		return AirportResponse{}, fmt.Errorf("create airport: %w", err)
	}
	country, err := s.repo.GetCountry(ctx, a.CountryID)
	if err != nil {
		return AirportResponse{}, err
	}
	a.Country = country
	return ToAirportResponse(&a), nil
}

func (s *Service) ListRoutes(ctx context.Context) ([]RouteListItem, error) {
	routes, err := s.repo.ListRoutes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RouteListItem, 0, len(routes))
	for _, r := range routes {
		out = append(out, ToRouteListItem(r))
	}
	return out, nil
}

func (s *Service) GetRoute(ctx context.Context, id int64) (RouteDetail, error) {
	r, err := s.repo.GetRoute(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RouteDetail{}, ErrNotFound
		}
		return RouteDetail{}, err
	}
	return ToRouteDetail(*r), nil
}

func (s *Service) CreateRoute(ctx context.Context, req CreateRouteRequest) (RouteDetail, error) {
	if req.Departure == req.Destination {
		return RouteDetail{}, ErrSameAirport
	}
	r := domain.Route{
		DepartureID:   req.Departure,
		DestinationID: req.Destination,
		Distance:      req.Distance,
	}
	if err := s.repo.CreateRoute(ctx, &r); err != nil {
		if database.IsForeignKeyViolation(err) {
			return RouteDetail{}, ErrUnknownAirport
		}
		return RouteDetail{}, fmt.Errorf("create route: %w", err)
	}
	return s.GetRoute(ctx, r.ID)
}
