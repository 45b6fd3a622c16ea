package order

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"airport/internal/domain"
	"airport/internal/pkg/pagination"
)

type Service struct {
	orders   Repository
	flights  FlightReader
	cabins   CabinReader
	notifier SeatNotifier
}

func NewService(orders Repository, flights FlightReader, cabins CabinReader, notifier SeatNotifier) *Service {
	return &Service{
		orders:   orders,
		flights:  flights,
		cabins:   cabins,
		notifier: notifier,
	}
}

// CreateOrder validates every requested seat, then stores the order and its
// tickets atomically. A seat sold concurrently surfaces as *domain.DuplicateSeatError.
func (s *Service) CreateOrder(ctx context.Context, userID int64, req CreateOrderRequest) (OrderResponse, error) {
	if len(req.Tickets) == 0 {
		return OrderResponse{}, ErrNoTickets
	}

	flights := make(map[int64]*domain.Flight)
	cabins := make(map[int64]*domain.Cabin)
	order := &domain.Order{
		UserID:  userID,
		Tickets: make([]domain.Ticket, 0, len(req.Tickets)),
	}

	for i, t := range req.Tickets {
		f, err := s.loadFlight(ctx, flights, t.Flight)
		if err != nil {
			return OrderResponse{}, &TicketError{Index: i, Err: err}
		}
		cabin, err := s.loadCabin(ctx, cabins, t.Cabin)
		if err != nil {
			return OrderResponse{}, &TicketError{Index: i, Err: err}
		}
		if err := domain.ValidateTicket(*cabin, t.Seat, *f.Airplane); err != nil {
			return OrderResponse{}, &TicketError{Index: i, Err: err}
		}

		order.Tickets = append(order.Tickets, domain.Ticket{
			FlightID: t.Flight,
			CabinID:  t.Cabin,
			Seat:     t.Seat,
		})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return OrderResponse{}, createError(err)
	}

	if s.notifier != nil {
		ids := make([]int64, 0, len(flights))
		for id := range flights {
			ids = append(ids, id)
		}
		s.notifier.SeatsChanged(ctx, ids...)
	}

	return toOrderResponse(*order), nil
}

// createError maps storage errors to module errors, keeping the ticket index.
func createError(err error) error {
	var failed *domain.TicketWriteError
	if errors.As(err, &failed) {
		return &TicketError{Index: failed.Index, Err: createError(failed.Err)}
	}
	switch {
	case errors.Is(err, domain.ErrFlightNotFound):
		return ErrUnknownFlight
	case errors.Is(err, domain.ErrCabinNotFound):
		return ErrUnknownCabin
	case domain.IsSeatError(err):
		return err
	}
	return fmt.Errorf("create order: %w", err)
}

func (s *Service) loadFlight(ctx context.Context, cache map[int64]*domain.Flight, id int64) (*domain.Flight, error) {
	if f, ok := cache[id]; ok {
		return f, nil
	}
	f, err := s.flights.GetWithAirplane(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownFlight
		}
		return nil, err
	}
	if f.Airplane == nil {
		return nil, fmt.Errorf("flight %d has no airplane loaded", id)
	}
	cache[id] = f
	return f, nil
}

func (s *Service) loadCabin(ctx context.Context, cache map[int64]*domain.Cabin, id int64) (*domain.Cabin, error) {
	if c, ok := cache[id]; ok {
		return c, nil
	}
	c, err := s.cabins.GetCabin(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownCabin
		}
		return nil, err
	}
	cache[id] = c
	return c, nil
}

// ListOrders returns the user's own orders, newest first.
func (s *Service) ListOrders(ctx context.Context, userID int64, p pagination.Pagination) ([]OrderListItem, int64, error) {
	orders, total, err := s.orders.GetByUser(ctx, userID, p.Limit, p.Skip)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	sold, err := s.soldFor(ctx, orders...)
	if err != nil {
		return nil, 0, err
	}

	items := make([]OrderListItem, 0, len(orders))
	for _, o := range orders {
		items = append(items, toOrderListItem(o, sold))
	}
	return items, total, nil
}

func (s *Service) GetOrder(ctx context.Context, userID, id int64) (OrderListItem, error) {
	o, err := s.orders.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderListItem{}, ErrNotFound
		}
		return OrderListItem{}, err
	}
	sold, err := s.soldFor(ctx, *o)
	if err != nil {
		return OrderListItem{}, err
	}
	return toOrderListItem(*o, sold), nil
}

func (s *Service) soldFor(ctx context.Context, orders ...domain.Order) (map[int64]int64, error) {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, o := range orders {
		for _, t := range o.Tickets {
			if _, ok := seen[t.FlightID]; !ok {
				seen[t.FlightID] = struct{}{}
				ids = append(ids, t.FlightID)
			}
		}
	}
	sold, err := s.flights.CountTickets(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count tickets: %w", err)
	}
	return sold, nil
}
