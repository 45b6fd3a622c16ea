package order

import (
	"time"

	"airport/internal/domain"
	"airport/internal/modules/flight"
)

type TicketRequest struct {
	Flight int64 `json:"flight" validate:"required,gt=0"`
	Cabin  int64 `json:"cabin" validate:"required,gt=0"`
	Seat   int   `json:"seat"`
}

type CreateOrderRequest struct {
	Tickets []TicketRequest `json:"tickets" validate:"required,min=1,dive"`
}

type TicketResponse struct {
	ID     int64 `json:"id"`
	Flight int64 `json:"flight"`
	Cabin  int64 `json:"cabin"`
	Seat   int   `json:"seat"`
}

type OrderResponse struct {
	ID        int64            `json:"id"`
	Tickets   []TicketResponse `json:"tickets"`
	CreatedAt time.Time        `json:"created_at"`
}

// TicketListItem shows the cabin by seat class name and the flight as a list item.
type TicketListItem struct {
	ID     int64           `json:"id"`
	Cabin  string          `json:"cabin"`
	Seat   int             `json:"seat"`
	Flight flight.ListItem `json:"flight"`
}

type OrderListItem struct {
	ID        int64            `json:"id"`
	Tickets   []TicketListItem `json:"tickets"`
	CreatedAt time.Time        `json:"created_at"`
}

func toOrderResponse(o domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:        o.ID,
		Tickets:   make([]TicketResponse, 0, len(o.Tickets)),
		CreatedAt: o.CreatedAt,
	}
	for _, t := range o.Tickets {
		resp.Tickets = append(resp.Tickets, TicketResponse{
			ID:     t.ID,
			Flight: t.FlightID,
			Cabin:  t.CabinID,
			Seat:   t.Seat,
		})
	}
	return resp
}

func toOrderListItem(o domain.Order, sold map[int64]int64) OrderListItem {
	item := OrderListItem{
		ID:        o.ID,
		Tickets:   make([]TicketListItem, 0, len(o.Tickets)),
		CreatedAt: o.CreatedAt,
	}
	for _, t := range o.Tickets {
		ti := TicketListItem{ID: t.ID, Seat: t.Seat}
		if t.Cabin != nil && t.Cabin.SeatClass != nil {
			ti.Cabin = t.Cabin.SeatClass.Name
		}
		if t.Flight != nil {
			ti.Flight = flight.ToListItem(*t.Flight, sold[t.FlightID])
		}
		item.Tickets = append(item.Tickets, ti)
	}
	return item
}
