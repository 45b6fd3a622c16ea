package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"airport/internal/domain"
	"airport/internal/testutil"
)

func TestOrderRepository_Create_StoresTickets(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := testutil.SeedFleet(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := &domain.Order{
		UserID: f.User.ID,
		Tickets: []domain.Ticket{
			{FlightID: f.Flight.ID, CabinID: f.EconomyA.ID, Seat: 1},
			{FlightID: f.Flight.ID, CabinID: f.EconomyA.ID, Seat: 30},
		},
	}
	require.NoError(t, repo.Create(ctx, order))
	require.NotZero(t, order.ID)
	require.Len(t, order.Tickets, 2)
	for _, tk := range order.Tickets {
		assert.NotZero(t, tk.ID)
		assert.Equal(t, order.ID, tk.OrderID)
	}

	got, err := repo.GetByID(ctx, f.User.ID, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Tickets, 2)
	require.NotNil(t, got.Tickets[0].Cabin)
	require.NotNil(t, got.Tickets[0].Cabin.SeatClass)
	assert.Equal(t, "Economy", got.Tickets[0].Cabin.SeatClass.Name)
	require.NotNil(t, got.Tickets[0].Flight)
	require.NotNil(t, got.Tickets[0].Flight.Route)
	assert.Equal(t, "Boryspil-Balice", got.Tickets[0].Flight.Route.String())
}

func TestOrderRepository_Create_DuplicateSeatRollsBack(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := testutil.SeedFleet(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	first := &domain.Order{
		UserID:  f.User.ID,
		Tickets: []domain.Ticket{{FlightID: f.Flight.ID, CabinID: f.EconomyA.ID, Seat: 12}},
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &domain.Order{
		UserID: f.User.ID,
		Tickets: []domain.Ticket{
			{FlightID: f.Flight.ID, CabinID: f.EconomyA.ID, Seat: 13},
			{FlightID: f.Flight.ID, CabinID: f.EconomyA.ID, Seat: 12},
		},
	}
	err := repo.Create(ctx, second)

	var dup *domain.DuplicateSeatError
	require.True(t, errors.As(err, &dup), "expected DuplicateSeatError, got %v", err)
	assert.Equal(t, 12, dup.Seat)
	assert.Zero(t, second.ID)

	var failed *domain.TicketWriteError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 1, failed.Index)

	var orders, tickets int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&domain.Ticket{}).Count(&tickets).Error)
	assert.Equal(t, int64(1), orders)
	assert.Equal(t, int64(1), tickets)
}

func TestOrderRepository_Create_DuplicateWithinOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := testutil.SeedFleet(t, db)
	repo := NewOrderRepository(db)

	order := &domain.Order{
		UserID: f.User.ID,
		Tickets: []domain.Ticket{
			{FlightID: f.Flight.ID, CabinID: f.EconomyA.ID, Seat: 5},
			{FlightID: f.Flight.ID, CabinID: f.EconomyA.ID, Seat: 5},
		},
	}
	err := repo.Create(context.Background(), order)

	var dup *domain.DuplicateSeatError
	require.ErrorAs(t, err, &dup)
	var failed *domain.TicketWriteError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 1, failed.Index)

	var tickets int64
	require.NoError(t, db.Model(&domain.Ticket{}).Count(&tickets).Error)
	assert.Zero(t, tickets)
}

func TestOrderRepository_Create_HookRejectsInvalidSeat(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := testutil.SeedFleet(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &domain.Order{
		UserID:  f.User.ID,
		Tickets: []domain.Ticket{{FlightID: f.Flight.ID, CabinID: f.BusinessA.ID, Seat: 1}},
	})
	var invalidCabin *domain.InvalidCabinError
	require.ErrorAs(t, err, &invalidCabin)
	assert.Equal(t, "Business A", invalidCabin.Cabin)

	err = repo.Create(ctx, &domain.Order{
		UserID:  f.User.ID,
		Tickets: []domain.Ticket{{FlightID: f.Flight.ID, CabinID: f.EconomyA.ID, Seat: 31}},
	})
	var outOfRange *domain.SeatOutOfRangeError
	require.ErrorAs(t, err, &outOfRange)
	assert.Equal(t, 30, outOfRange.Max)

	var orders int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestTicketHook_DirectWrite(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := testutil.SeedFleet(t, db)

	order := domain.Order{UserID: f.User.ID}
	require.NoError(t, db.Create(&order).Error)

	err := db.Create(&domain.Ticket{FlightID: f.Flight.ID, CabinID: f.EconomyA.ID, Seat: 0, OrderID: order.ID}).Error
	var outOfRange *domain.SeatOutOfRangeError
	require.ErrorAs(t, err, &outOfRange)

	err = db.Create(&domain.Ticket{FlightID: f.Flight.ID + 100, CabinID: f.EconomyA.ID, Seat: 1, OrderID: order.ID}).Error
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)

	require.NoError(t, db.Create(&domain.Ticket{FlightID: f.Flight.ID, CabinID: f.EconomyA.ID, Seat: 1, OrderID: order.ID}).Error)
}

func TestOrderRepository_GetByUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := testutil.SeedFleet(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	for seat := 1; seat <= 3; seat++ {
		require.NoError(t, repo.Create(ctx, &domain.Order{
			UserID:  f.User.ID,
			Tickets: []domain.Ticket{{FlightID: f.Flight.ID, CabinID: f.EconomyA.ID, Seat: seat}},
		}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Order{
		UserID:  f.Admin.ID,
		Tickets: []domain.Ticket{{FlightID: f.Flight.ID, CabinID: f.EconomyA.ID, Seat: 20}},
	}))

	orders, total, err := repo.GetByUser(ctx, f.User.ID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, f.User.ID, o.UserID)
		assert.Len(t, o.Tickets, 1)
	}
	assert.Greater(t, orders[0].ID, orders[1].ID)

	_, err = repo.GetByID(ctx, f.User.ID, orders[0].ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
