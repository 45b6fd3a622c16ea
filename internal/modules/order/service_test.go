package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"airport/internal/domain"
	"airport/internal/pkg/pagination"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockRepo) GetByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) GetByID(ctx context.Context, userID, id int64) (*domain.Order, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

type mockFlights struct {
	mock.Mock
}

func (m *mockFlights) GetWithAirplane(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *mockFlights) CountTickets(ctx context.Context, ids []int64) (map[int64]int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]int64), args.Error(1)
}

type mockCabins struct {
	mock.Mock
}

func (m *mockCabins) GetCabin(ctx context.Context, id int64) (*domain.Cabin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cabin), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SeatsChanged(ctx context.Context, flightIDs ...int64) {
	m.Called(ctx, flightIDs)
}

var (
	economyA  = domain.Cabin{ID: 1, Name: "Economy A", SeatClassID: 1, Seats: 30}
	businessA = domain.Cabin{ID: 2, Name: "Business A", SeatClassID: 2, Seats: 8}
	plane     = domain.Airplane{ID: 1, Name: "UR-PSA", Cabins: []domain.Cabin{economyA}}
	flight7   = &domain.Flight{ID: 7, AirplaneID: 1, Airplane: &plane}
)

type serviceDeps struct {
	repo     *mockRepo
	flights  *mockFlights
	cabins   *mockCabins
	notifier *mockNotifier
	svc      *Service
}

func newServiceDeps() *serviceDeps {
	d := &serviceDeps{
		repo:     new(mockRepo),
		flights:  new(mockFlights),
		cabins:   new(mockCabins),
		notifier: new(mockNotifier),
	}
	d.svc = NewService(d.repo, d.flights, d.cabins, d.notifier)
	return d
}

func TestCreateOrder_Success(t *testing.T) {
	d := newServiceDeps()
	ctx := context.Background()

	d.flights.On("GetWithAirplane", ctx, int64(7)).Return(flight7, nil).Once()
	d.cabins.On("GetCabin", ctx, int64(1)).Return(&economyA, nil).Once()
	d.repo.On("Create", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return o.UserID == 3 && len(o.Tickets) == 2 && o.Tickets[0].Seat == 1 && o.Tickets[1].Seat == 2
	})).Run(func(args mock.Arguments) {
		o := args.Get(1).(*domain.Order)
		o.ID = 11
		for i := range o.Tickets {
			o.Tickets[i].ID = int64(100 + i)
			o.Tickets[i].OrderID = 11
		}
	}).Return(nil)
	d.notifier.On("SeatsChanged", ctx, []int64{7}).Return()

	resp, err := d.svc.CreateOrder(ctx, 3, CreateOrderRequest{Tickets: []TicketRequest{
		{Flight: 7, Cabin: 1, Seat: 1},
		{Flight: 7, Cabin: 1, Seat: 2},
	}})

	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)
	require.Len(t, resp.Tickets, 2)
	assert.Equal(t, TicketResponse{ID: 101, Flight: 7, Cabin: 1, Seat: 2}, resp.Tickets[1])
	d.flights.AssertExpectations(t)
	d.cabins.AssertExpectations(t)
	d.notifier.AssertExpectations(t)
}

func TestCreateOrder_RejectsBeforeWriting(t *testing.T) {
	tests := []struct {
		name    string
		tickets []TicketRequest
		setup   func(d *serviceDeps)
		check   func(t *testing.T, err error)
	}{
		{
			name:    "seat out of range on second ticket",
			tickets: []TicketRequest{{Flight: 7, Cabin: 1, Seat: 30}, {Flight: 7, Cabin: 1, Seat: 31}},
			setup: func(d *serviceDeps) {
				d.flights.On("GetWithAirplane", mock.Anything, int64(7)).Return(flight7, nil)
				d.cabins.On("GetCabin", mock.Anything, int64(1)).Return(&economyA, nil)
			},
			check: func(t *testing.T, err error) {
				var te *TicketError
				require.ErrorAs(t, err, &te)
				assert.Equal(t, 1, te.Index)
				var outOfRange *domain.SeatOutOfRangeError
				require.ErrorAs(t, err, &outOfRange)
				assert.Equal(t, "Seat number must be in range (1, 30)", outOfRange.Error())
			},
		},
		{
			name:    "cabin not on airplane",
			tickets: []TicketRequest{{Flight: 7, Cabin: 2, Seat: 1}},
			setup: func(d *serviceDeps) {
				d.flights.On("GetWithAirplane", mock.Anything, int64(7)).Return(flight7, nil)
				d.cabins.On("GetCabin", mock.Anything, int64(2)).Return(&businessA, nil)
			},
			check: func(t *testing.T, err error) {
				var invalid *domain.InvalidCabinError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, "Business A", invalid.Cabin)
			},
		},
		{
			name:    "unknown flight",
			tickets: []TicketRequest{{Flight: 99, Cabin: 1, Seat: 1}},
			setup: func(d *serviceDeps) {
				d.flights.On("GetWithAirplane", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnknownFlight)
			},
		},
		{
			name:    "unknown cabin",
			tickets: []TicketRequest{{Flight: 7, Cabin: 42, Seat: 1}},
			setup: func(d *serviceDeps) {
				d.flights.On("GetWithAirplane", mock.Anything, int64(7)).Return(flight7, nil)
				d.cabins.On("GetCabin", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnknownCabin)
			},
		},
		{
			name:    "no tickets",
			tickets: nil,
			setup:   func(d *serviceDeps) {},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNoTickets)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newServiceDeps()
			tt.setup(d)

			_, err := d.svc.CreateOrder(context.Background(), 3, CreateOrderRequest{Tickets: tt.tickets})

			require.Error(t, err)
			tt.check(t, err)
			d.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			d.notifier.AssertNotCalled(t, "SeatsChanged", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateOrder_DuplicateSeatSkipsNotification(t *testing.T) {
	d := newServiceDeps()
	ctx := context.Background()

	d.flights.On("GetWithAirplane", ctx, int64(7)).Return(flight7, nil)
	d.cabins.On("GetCabin", ctx, int64(1)).Return(&economyA, nil)
	d.repo.On("Create", ctx, mock.Anything).Return(&domain.DuplicateSeatError{FlightID: 7, CabinID: 1, Seat: 4})

	_, err := d.svc.CreateOrder(ctx, 3, CreateOrderRequest{Tickets: []TicketRequest{{Flight: 7, Cabin: 1, Seat: 4}}})

	var dup *domain.DuplicateSeatError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 4, dup.Seat)
	d.notifier.AssertNotCalled(t, "SeatsChanged", mock.Anything, mock.Anything)
}

func TestCreateOrder_StorageErrorKeepsTicketIndex(t *testing.T) {
	d := newServiceDeps()
	ctx := context.Background()

	d.flights.On("GetWithAirplane", ctx, int64(7)).Return(flight7, nil)
	d.cabins.On("GetCabin", ctx, int64(1)).Return(&economyA, nil)
	d.repo.On("Create", ctx, mock.Anything).Return(&domain.TicketWriteError{
		Index: 1,
		Err:   &domain.DuplicateSeatError{FlightID: 7, CabinID: 1, Seat: 4},
	}).Once()

	_, err := d.svc.CreateOrder(ctx, 3, CreateOrderRequest{Tickets: []TicketRequest{
		{Flight: 7, Cabin: 1, Seat: 3},
		{Flight: 7, Cabin: 1, Seat: 4},
	}})

	var te *TicketError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 1, te.Index)
	var dup *domain.DuplicateSeatError
	assert.ErrorAs(t, err, &dup)

	d.repo.On("Create", ctx, mock.Anything).Return(&domain.TicketWriteError{Index: 0, Err: domain.ErrCabinNotFound}).Once()
	_, err = d.svc.CreateOrder(ctx, 3, CreateOrderRequest{Tickets: []TicketRequest{{Flight: 7, Cabin: 1, Seat: 3}}})
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 0, te.Index)
	assert.ErrorIs(t, err, ErrUnknownCabin)
}

func TestCreateOrder_HookErrorsMapToModuleErrors(t *testing.T) {
	d := newServiceDeps()
	ctx := context.Background()

	d.flights.On("GetWithAirplane", ctx, int64(7)).Return(flight7, nil)
	d.cabins.On("GetCabin", ctx, int64(1)).Return(&economyA, nil)
	d.repo.On("Create", ctx, mock.Anything).Return(domain.ErrFlightNotFound)

	_, err := d.svc.CreateOrder(ctx, 3, CreateOrderRequest{Tickets: []TicketRequest{{Flight: 7, Cabin: 1, Seat: 4}}})
	assert.ErrorIs(t, err, ErrUnknownFlight)
}

func TestCreateOrder_WithoutNotifier(t *testing.T) {
	repo, flights, cabins := new(mockRepo), new(mockFlights), new(mockCabins)
	svc := NewService(repo, flights, cabins, nil)
	ctx := context.Background()

	flights.On("GetWithAirplane", ctx, int64(7)).Return(flight7, nil)
	cabins.On("GetCabin", ctx, int64(1)).Return(&economyA, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	_, err := svc.CreateOrder(ctx, 3, CreateOrderRequest{Tickets: []TicketRequest{{Flight: 7, Cabin: 1, Seat: 4}}})
	assert.NoError(t, err)
}

func TestListOrders_ComputesAvailability(t *testing.T) {
	d := newServiceDeps()
	ctx := context.Background()

	route := &domain.Route{
		Departure:   &domain.Airport{Name: "Boryspil"},
		Destination: &domain.Airport{Name: "Balice"},
	}
	f := domain.Flight{ID: 7, Route: route, Airplane: &plane}
	orders := []domain.Order{{
		ID:     11,
		UserID: 3,
		Tickets: []domain.Ticket{
			{ID: 100, FlightID: 7, Flight: &f, CabinID: 1, Cabin: &domain.Cabin{ID: 1, SeatClass: &domain.SeatClass{Name: "Economy"}}, Seat: 1},
			{ID: 101, FlightID: 7, Flight: &f, CabinID: 1, Seat: 2},
		},
	}}
	p := pagination.Pagination{Page: 2, Limit: 5, Skip: 5}

	d.repo.On("GetByUser", ctx, int64(3), 5, 5).Return(orders, int64(6), nil)
	d.flights.On("CountTickets", ctx, []int64{7}).Return(map[int64]int64{7: 2}, nil)

	items, total, err := d.svc.ListOrders(ctx, 3, p)

	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	require.Len(t, items, 1)
	require.Len(t, items[0].Tickets, 2)
	assert.Equal(t, "Economy", items[0].Tickets[0].Cabin)
	assert.Equal(t, "", items[0].Tickets[1].Cabin)
	assert.Equal(t, "Boryspil-Balice", items[0].Tickets[0].Flight.Route)
	assert.Equal(t, 28, items[0].Tickets[0].Flight.TicketsAvailable)
}

func TestGetOrder_NotFound(t *testing.T) {
	d := newServiceDeps()
	d.repo.On("GetByID", mock.Anything, int64(3), int64(50)).Return(nil, gorm.ErrRecordNotFound)

	_, err := d.svc.GetOrder(context.Background(), 3, 50)
	assert.True(t, errors.Is(err, ErrNotFound))
}
