package flight

import (
	"time"

	"airport/internal/domain"
	"airport/internal/modules/fleet"
	"airport/internal/modules/network"
)

const dateLayout = "2006-01-02"

// ListQuery holds the raw ?from, ?to and ?date filters.
type ListQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
	Date string `form:"date"`
}

type FlightRequest struct {
	Route         int64     `json:"route" validate:"required,gt=0"`
	Airplane      int64     `json:"airplane" validate:"required,gt=0"`
	Crew          []int64   `json:"crew" validate:"dive,gt=0"`
	DepartureTime time.Time `json:"departure_time" validate:"required"`
	ArrivalTime   time.Time `json:"arrival_time" validate:"required"`
}

// FlightPatch is a partial update; absent fields keep their stored value.
type FlightPatch struct {
	Route         *int64     `json:"route" validate:"omitempty,gt=0"`
	Airplane      *int64     `json:"airplane" validate:"omitempty,gt=0"`
	Crew          *[]int64   `json:"crew"`
	DepartureTime *time.Time `json:"departure_time"`
	ArrivalTime   *time.Time `json:"arrival_time"`
}

type ListItem struct {
	ID               int64     `json:"id"`
	Route            string    `json:"route"`
	Airplane         string    `json:"airplane"`
	TicketsAvailable int       `json:"tickets_available"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
}

type TakenSeats struct {
	Cabin int64 `json:"cabin"`
	Seats []int `json:"seats"`
}

type Detail struct {
	ID               int64                  `json:"id"`
	Route            network.RouteDetail    `json:"route"`
	Crew             []string               `json:"crew"`
	Airplane         fleet.AirplaneResponse `json:"airplane"`
	TicketsAvailable int                    `json:"tickets_available"`
	TakenSeats       []TakenSeats           `json:"taken_seats"`
	DepartureTime    time.Time              `json:"departure_time"`
	ArrivalTime      time.Time              `json:"arrival_time"`
	Image            string                 `json:"image,omitempty"`
}

func availability(f domain.Flight, sold int64) int {
	if f.Airplane == nil {
		return 0
	}
	return domain.TicketsAvailable(*f.Airplane, sold)
}

// ToListItem renders a flight with its route and airplane as display strings.
func ToListItem(f domain.Flight, sold int64) ListItem {
	item := ListItem{
		ID:               f.ID,
		TicketsAvailable: availability(f, sold),
		DepartureTime:    f.DepartureTime,
		ArrivalTime:      f.ArrivalTime,
	}
	if f.Route != nil {
		item.Route = f.Route.String()
	}
	if f.Airplane != nil {
		item.Airplane = f.Airplane.Name
	}
	return item
}

func ToDetail(f domain.Flight, sold int64, taken map[int64][]int) Detail {
	d := Detail{
		ID:               f.ID,
		Crew:             make([]string, 0, len(f.Crew)),
		TicketsAvailable: availability(f, sold),
		TakenSeats:       []TakenSeats{},
		DepartureTime:    f.DepartureTime,
		ArrivalTime:      f.ArrivalTime,
	}
	if f.Route != nil {
		d.Route = network.ToRouteDetail(*f.Route)
		if dst := f.Route.Destination; dst != nil && dst.Country != nil {
			d.Image = dst.Country.Image
		}
	}
	if f.Airplane != nil {
		d.Airplane = fleet.ToAirplaneResponse(*f.Airplane)
		for _, c := range f.Airplane.Cabins {
			if seats, ok := taken[c.ID]; ok {
				d.TakenSeats = append(d.TakenSeats, TakenSeats{Cabin: c.ID, Seats: seats})
			}
		}
	}
	for _, c := range f.Crew {
		d.Crew = append(d.Crew, c.FullName())
	}
	return d
}
