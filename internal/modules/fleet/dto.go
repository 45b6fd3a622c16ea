package fleet

import "airport/internal/domain"

type NameRequest struct {
	Name string `json:"name" validate:"required,max=63"`
}

type CreateCabinRequest struct {
	Name      string `json:"name" validate:"required,max=63"`
	SeatClass int64  `json:"seat_class" validate:"required,gt=0"`
	Seats     int    `json:"seats" validate:"gte=0,lte=1000"`
}

type CreateAirplaneRequest struct {
	Name         string  `json:"name" validate:"required,max=63"`
	AirplaneType int64   `json:"airplane_type" validate:"required,gt=0"`
	Cabins       []int64 `json:"cabins" validate:"dive,gt=0"`
}

type CreateCrewRequest struct {
	FirstName string `json:"first_name" validate:"required,max=63"`
	LastName  string `json:"last_name" validate:"required,max=63"`
}

type NamedResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CabinResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SeatClass string `json:"seat_class"`
	Seats     int    `json:"seats"`
}

// CabinSummary is how cabins appear nested under an airplane.
type CabinSummary struct {
	ID        int64  `json:"id"`
	SeatClass string `json:"seat_class"`
	Seats     int    `json:"seats"`
}

type AirplaneResponse struct {
	ID               int64          `json:"id"`
	Name             string         `json:"name"`
	AirplaneType     string         `json:"airplane_type"`
	Cabins           []CabinSummary `json:"cabins"`
	AirplaneCapacity int            `json:"airplane_capacity"`
}

type CrewResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func seatClassName(sc *domain.SeatClass) string {
	if sc == nil {
		return ""
	}
	return sc.Name
}

func ToCabinResponse(c domain.Cabin) CabinResponse {
	return CabinResponse{
		ID:        c.ID,
		Name:      c.Name,
		SeatClass: seatClassName(c.SeatClass),
		Seats:     c.Seats,
	}
}

func ToAirplaneResponse(a domain.Airplane) AirplaneResponse {
	resp := AirplaneResponse{
		ID:               a.ID,
		Name:             a.Name,
		Cabins:           make([]CabinSummary, 0, len(a.Cabins)),
		AirplaneCapacity: a.Capacity(),
	}
	if a.AirplaneType != nil {
		resp.AirplaneType = a.AirplaneType.Name
	}
	for _, c := range a.Cabins {
		resp.Cabins = append(resp.Cabins, CabinSummary{
			ID:        c.ID,
			SeatClass: seatClassName(c.SeatClass),
			Seats:     c.Seats,
		})
	}
	return resp
}

func ToCrewResponse(c domain.Crew) CrewResponse {
	return CrewResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
	}
}
