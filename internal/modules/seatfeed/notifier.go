package seatfeed

import (
	"context"
	"log"
)

// AvailabilitySource reports the live tickets_available of a flight.
type AvailabilitySource interface {
	TicketsAvailable(ctx context.Context, flightID int64) (int, error)
}

// Notifier recomputes availability and pushes it to subscribers.
type Notifier struct {
	hub    *Hub
	source AvailabilitySource
}

func NewNotifier(hub *Hub, source AvailabilitySource) *Notifier {
	return &Notifier{hub: hub, source: source}
}

// SeatsChanged is called after an order commits. Flights nobody watches are skipped.
func (n *Notifier) SeatsChanged(ctx context.Context, flightIDs ...int64) {
	for _, id := range flightIDs {
		if n.hub.Subscribers(id) == 0 {
			continue
		}
		available, err := n.source.TicketsAvailable(ctx, id)
		if err != nil {
			log.Printf("seatfeed_refresh_failed flight_id=%d error=%q", id, err.Error())
			continue
		}
		n.hub.Broadcast(Event{Type: EventSeatsUpdated, FlightID: id, TicketsAvailable: available})
	}
}
