package repository

import (
	"context"

	"gorm.io/gorm"

	"airport/internal/database"
	"airport/internal/domain"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order and all of its tickets in one transaction.
// Either every ticket is stored or nothing is. A failed ticket is reported as
// *domain.TicketWriteError; a sold seat wraps *domain.DuplicateSeatError.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tickets := order.Tickets
	order.Tickets = nil

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User").Create(order).Error; err != nil {
			return err
		}

		for i := range tickets {
			tickets[i].ID = 0
			tickets[i].OrderID = order.ID
			if err := tx.Omit("Flight", "Cabin").Create(&tickets[i]).Error; err != nil {
				switch {
				case database.IsUniqueViolation(err):
					err = &domain.DuplicateSeatError{
						FlightID: tickets[i].FlightID,
						CabinID:  tickets[i].CabinID,
						Seat:     tickets[i].Seat,
					}
				case database.IsForeignKeyViolation(err):
					// the flight was deleted after the hook read it
					err = domain.ErrFlightNotFound
				}
				return &domain.TicketWriteError{Index: i, Err: err}
			}
		}
		return nil
	})

	if err != nil {
		order.ID = 0
		for i := range tickets {
			tickets[i].ID = 0
			tickets[i].OrderID = 0
		}
	}
	order.Tickets = tickets
	return err
}

func preloadOrderDetail(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Tickets", func(db *gorm.DB) *gorm.DB { return db.Order("tickets.id") }).
		Preload("Tickets.Cabin.SeatClass").
		Preload("Tickets.Flight.Route.Departure").
		Preload("Tickets.Flight.Route.Destination").
		Preload("Tickets.Flight.Airplane.Cabins")
}

// GetByUser returns the user's orders, newest first, with the total count.
func (r *OrderRepository) GetByUser(
	ctx context.Context,
	userID int64,
	limit, offset int,
) ([]domain.Order, int64, error) {
	var orders []domain.Order
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("user_id = ?", userID).
		Session(&gorm.Session{})

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	list := preloadOrderDetail(q).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		list = list.Limit(limit).Offset(offset)
	}
	err := list.Find(&orders).Error

	return orders, total, err
}

// GetByID returns the order only if it belongs to userID.
func (r *OrderRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Order, error) {
	var order domain.Order
	err := preloadOrderDetail(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
