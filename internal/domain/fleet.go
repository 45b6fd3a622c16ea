package domain

import "time"

type AirplaneType struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:63;not null" validate:"required,max=63"`
	CreatedAt time.Time `json:"-"`
}

type SeatClass struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:63;not null" validate:"required,max=63"`
	CreatedAt time.Time `json:"-"`
}

// Cabin is a named section of an airplane model with a fixed seat count.
// Cabins are templates shared between airplanes.
type Cabin struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"size:63;not null"`
	SeatClassID int64      `json:"seat_class" gorm:"not null;index"`
	SeatClass   *SeatClass `json:"-" gorm:"foreignKey:SeatClassID;constraint:OnDelete:CASCADE"`
	Seats       int        `json:"seats" gorm:"not null;check:seats >= 0"`
	CreatedAt   time.Time  `json:"-"`
}

type Airplane struct {
	ID             int64         `json:"id" gorm:"primaryKey"`
	Name           string        `json:"name" gorm:"size:63;not null"`
	AirplaneTypeID int64         `json:"airplane_type" gorm:"not null;index"`
	AirplaneType   *AirplaneType `json:"-" gorm:"foreignKey:AirplaneTypeID;constraint:OnDelete:CASCADE"`
	Cabins         []Cabin       `json:"-" gorm:"many2many:airplane_cabins;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time     `json:"-"`
}

// Capacity is the total seat count over the airplane's cabins.
// Cabins must be loaded; an airplane without cabins has capacity 0.
func (a Airplane) Capacity() int {
	total := 0
	for _, c := range a.Cabins {
		if c.Seats > 0 {
			total += c.Seats
		}
	}
	return total
}

// HasCabin reports whether the cabin with the given id is assigned to the airplane.
func (a Airplane) HasCabin(cabinID int64) (Cabin, bool) {
	for _, c := range a.Cabins {
		if c.ID == cabinID {
			return c, true
		}
	}
	return Cabin{}, false
}
