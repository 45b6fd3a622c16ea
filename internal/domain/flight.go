package domain

import (
	"errors"
	"time"
)

// ErrFlightHasTickets is returned when a change would orphan or invalidate sold tickets.
var ErrFlightHasTickets = errors.New("flight has sold tickets")

type Crew struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"first_name" gorm:"size:63;not null"`
	LastName  string    `json:"last_name" gorm:"size:63;not null"`
	CreatedAt time.Time `json:"-"`
}

func (Crew) TableName() string { return "crew" }

func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Flight is a route flown by an airplane with a crew roster.
type Flight struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	RouteID       int64     `json:"route" gorm:"not null;index"`
	Route         *Route    `json:"-" gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
	AirplaneID    int64     `json:"airplane" gorm:"not null;index"`
	Airplane      *Airplane `json:"-" gorm:"foreignKey:AirplaneID;constraint:OnDelete:CASCADE"`
	Crew          []Crew    `json:"-" gorm:"many2many:flight_crew;constraint:OnDelete:CASCADE"`
	DepartureTime time.Time `json:"departure_time" gorm:"not null;index"`
	ArrivalTime   time.Time `json:"arrival_time" gorm:"not null"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}
