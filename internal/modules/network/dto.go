package network

import "airport/internal/domain"

type CreateCountryRequest struct {
	Name string `json:"name" validate:"required,max=63"`
}

type CreateAirportRequest struct {
	Name     string `json:"name" validate:"required,max=63"`
	NearCity string `json:"near_city" validate:"required,max=63"`
	Country  int64  `json:"country" validate:"required,gt=0"`
}

type CreateRouteRequest struct {
	Departure   int64 `json:"departure" validate:"required,gt=0"`
	Destination int64 `json:"destination" validate:"required,gt=0"`
	Distance    int   `json:"distance" validate:"required,gt=0"`
}

type CountryResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type AirportResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	NearCity string `json:"near_city"`
	Country  string `json:"country"`
}

// RouteListItem renders airports and distance as display strings.
type RouteListItem struct {
	ID          int64  `json:"id"`
	Departure   string `json:"departure"`
	Destination string `json:"destination"`
	Distance    string `json:"distance"`
}

type RouteDetail struct {
	ID          int64           `json:"id"`
	Departure   AirportResponse `json:"departure"`
	Destination AirportResponse `json:"destination"`
	Distance    int             `json:"distance"`
}

func ToCountryResponse(c domain.Country) CountryResponse {
	return CountryResponse{ID: c.ID, Name: c.Name, Image: c.Image}
}

func ToAirportResponse(a *domain.Airport) AirportResponse {
	if a == nil {
		return AirportResponse{}
	}
	resp := AirportResponse{ID: a.ID, Name: a.Name, NearCity: a.NearCity}
	if a.Country != nil {
		resp.Country = a.Country.Name
	}
	return resp
}

func airportName(a *domain.Airport) string {
	if a == nil {
		return ""
	}
	return a.Name
}

func ToRouteListItem(r domain.Route) RouteListItem {
	return RouteListItem{
		ID:          r.ID,
		Departure:   airportName(r.Departure),
		Destination: airportName(r.Destination),
		Distance:    r.DistanceKm(),
	}
}

func ToRouteDetail(r domain.Route) RouteDetail {
	return RouteDetail{
		ID:          r.ID,
		Departure:   ToAirportResponse(r.Departure),
		Destination: ToAirportResponse(r.Destination),
		Distance:    r.Distance,
	}
}
