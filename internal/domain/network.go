package domain

import (
	"fmt"
	"time"
)

type Country struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:63;not null"`
	Image     string    `json:"image,omitempty" gorm:"size:255"`
	CreatedAt time.Time `json:"-"`
}

type Airport struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:63;not null"`
	NearCity  string    `json:"near_city" gorm:"size:63;not null"`
	CountryID int64     `json:"country" gorm:"not null;index"`
	Country   *Country  `json:"-" gorm:"foreignKey:CountryID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"-"`
}

type Route struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	DepartureID   int64     `json:"departure" gorm:"not null;index"`
	Departure     *Airport  `json:"-" gorm:"foreignKey:DepartureID;constraint:OnDelete:CASCADE"`
	DestinationID int64     `json:"destination" gorm:"not null;index"`
	Destination   *Airport  `json:"-" gorm:"foreignKey:DestinationID;constraint:OnDelete:CASCADE"`
	Distance      int       `json:"distance" gorm:"not null"`
	CreatedAt     time.Time `json:"-"`
}

// String renders the route as "<departure>-<destination>" when both airports are loaded.
func (r Route) String() string {
	if r.Departure == nil || r.Destination == nil {
		return fmt.Sprintf("route #%d", r.ID)
	}
	return r.Departure.Name + "-" + r.Destination.Name
}

func (r Route) DistanceKm() string {
	return fmt.Sprintf("%d km", r.Distance)
}
