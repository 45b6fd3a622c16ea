package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"airport/internal/database"
	"airport/internal/domain"
)

// NewTestDB opens a migrated SQLite database in a per-test temp dir.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "airport_test.db")
	db, err := database.Connect(dsn, database.Options{LogLevel: logger.Silent})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Fleet is a minimal, consistent set of reference data for booking tests.
type Fleet struct {
	User      domain.User
	Admin     domain.User
	Economy   domain.SeatClass
	Business  domain.SeatClass
	EconomyA  domain.Cabin
	BusinessA domain.Cabin
	Airplane  domain.Airplane
	Kyiv      domain.Airport
	Krakow    domain.Airport
	Route     domain.Route
	Crew      domain.Crew
	Flight    domain.Flight
}

// SeedFleet creates an airplane with one 30-seat cabin "Economy A" and an
// unassigned cabin "Business A", plus one flight Kyiv -> Krakow on 2026-04-19.
func SeedFleet(t *testing.T, db *gorm.DB) *Fleet {
	t.Helper()

	f := &Fleet{
		User:  domain.User{Email: "customer@example.com", PasswordHash: "x", Name: "Customer", Role: domain.RoleCustomer},
		Admin: domain.User{Email: "admin@example.com", PasswordHash: "x", Name: "Admin", Role: domain.RoleAdmin},
	}
	mustCreate(t, db, &f.User)
	mustCreate(t, db, &f.Admin)

	f.Economy = domain.SeatClass{Name: "Economy"}
	f.Business = domain.SeatClass{Name: "Business"}
	mustCreate(t, db, &f.Economy)
	mustCreate(t, db, &f.Business)

	f.EconomyA = domain.Cabin{Name: "Economy A", SeatClassID: f.Economy.ID, Seats: 30}
	f.BusinessA = domain.Cabin{Name: "Business A", SeatClassID: f.Business.ID, Seats: 8}
	mustCreate(t, db, &f.EconomyA)
	mustCreate(t, db, &f.BusinessA)

	airplaneType := domain.AirplaneType{Name: "Airbus A320"}
	mustCreate(t, db, &airplaneType)

	f.Airplane = domain.Airplane{
		Name:           "UR-PSA",
		AirplaneTypeID: airplaneType.ID,
		Cabins:         []domain.Cabin{f.EconomyA},
	}
	if err := db.Omit("Cabins.*").Create(&f.Airplane).Error; err != nil {
		t.Fatalf("create airplane: %v", err)
	}

	ukraine := domain.Country{Name: "Ukraine"}
	poland := domain.Country{Name: "Poland"}
	mustCreate(t, db, &ukraine)
	mustCreate(t, db, &poland)

	f.Kyiv = domain.Airport{Name: "Boryspil", NearCity: "Kyiv", CountryID: ukraine.ID}
	f.Krakow = domain.Airport{Name: "Balice", NearCity: "Krakow", CountryID: poland.ID}
	mustCreate(t, db, &f.Kyiv)
	mustCreate(t, db, &f.Krakow)

	f.Route = domain.Route{DepartureID: f.Kyiv.ID, DestinationID: f.Krakow.ID, Distance: 620}
	mustCreate(t, db, &f.Route)

	f.Crew = domain.Crew{FirstName: "Olena", LastName: "Shevchenko"}
	mustCreate(t, db, &f.Crew)

	departure := time.Date(2026, 4, 19, 8, 30, 0, 0, time.UTC)
	f.Flight = domain.Flight{
		RouteID:       f.Route.ID,
		AirplaneID:    f.Airplane.ID,
		Crew:          []domain.Crew{f.Crew},
		DepartureTime: departure,
		ArrivalTime:   departure.Add(90 * time.Minute),
	}
	if err := db.Omit("Crew.*").Create(&f.Flight).Error; err != nil {
		t.Fatalf("create flight: %v", err)
	}

	return f
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}
