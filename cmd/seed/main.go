package main

import (
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"airport/internal/config"
	"airport/internal/database"
	"airport/internal/domain"
	"airport/internal/modules/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	db, err := database.Connect(cfg.DatabaseURL, database.Options{})
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	if err := seedAdmin(db, cfg); err != nil {
		log.Fatal("seed admin:", err)
	}

	var airplanes int64
	if err := db.Model(&domain.Airplane{}).Count(&airplanes).Error; err != nil {
		log.Fatal(err)
	}
	if airplanes > 0 {
		log.Println("Reference data already present, skipping")
		return
	}

	if err := db.Transaction(seedReferenceData); err != nil {
		log.Fatal("seed reference data:", err)
	}
	log.Println("Seed completed")
}

// seedAdmin is a no-op when the admin email is already registered.
func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.SeedAdminPassword == "" {
		log.Println("SEED_ADMIN_PASSWORD is empty, admin user not created")
		return nil
	}
	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	admin := domain.User{
		Email:        cfg.SeedAdminEmail,
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         domain.RoleAdmin,
	}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&admin)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Println("Created admin:", admin.Email)
	}
	return nil
}

func seedReferenceData(tx *gorm.DB) error {
	// ================== FLEET ==================
	log.Println("Creating fleet...")

	economy := domain.SeatClass{Name: "Economy"}
	business := domain.SeatClass{Name: "Business"}
	if err := tx.Create(&[]*domain.SeatClass{&economy, &business}).Error; err != nil {
		return err
	}

	economyA := domain.Cabin{Name: "Economy A", SeatClassID: economy.ID, Seats: 30}
	economyB := domain.Cabin{Name: "Economy B", SeatClassID: economy.ID, Seats: 120}
	businessA := domain.Cabin{Name: "Business A", SeatClassID: business.ID, Seats: 8}
	if err := tx.Create(&[]*domain.Cabin{&economyA, &economyB, &businessA}).Error; err != nil {
		return err
	}

	narrow := domain.AirplaneType{Name: "Airbus A320"}
	regional := domain.AirplaneType{Name: "Embraer E195"}
	if err := tx.Create(&[]*domain.AirplaneType{&narrow, &regional}).Error; err != nil {
		return err
	}

	airplanes := []*domain.Airplane{
		{Name: "UR-PSA", AirplaneTypeID: narrow.ID, Cabins: []domain.Cabin{businessA, economyB}},
		{Name: "UR-EMB", AirplaneTypeID: regional.ID, Cabins: []domain.Cabin{economyA}},
	}
	if err := tx.Omit("Cabins.*").Create(&airplanes).Error; err != nil {
		return err
	}

	crew := []*domain.Crew{
		{FirstName: "Olena", LastName: "Shevchenko"},
		{FirstName: "Taras", LastName: "Bondarenko"},
		{FirstName: "Anna", LastName: "Kowalska"},
	}
	if err := tx.Create(&crew).Error; err != nil {
		return err
	}

	// ================== NETWORK ==================
	log.Println("Creating airports and routes...")

	ukraine := domain.Country{Name: "Ukraine"}
	poland := domain.Country{Name: "Poland"}
	germany := domain.Country{Name: "Germany"}
	if err := tx.Create(&[]*domain.Country{&ukraine, &poland, &germany}).Error; err != nil {
		return err
	}

	kbp := domain.Airport{Name: "Boryspil", NearCity: "Kyiv", CountryID: ukraine.ID}
	krk := domain.Airport{Name: "Balice", NearCity: "Krakow", CountryID: poland.ID}
	waw := domain.Airport{Name: "Chopin", NearCity: "Warsaw", CountryID: poland.ID}
	ber := domain.Airport{Name: "Brandenburg", NearCity: "Berlin", CountryID: germany.ID}
	if err := tx.Create(&[]*domain.Airport{&kbp, &krk, &waw, &ber}).Error; err != nil {
		return err
	}

	routes := []*domain.Route{
		{DepartureID: kbp.ID, DestinationID: krk.ID, Distance: 620},
		{DepartureID: krk.ID, DestinationID: kbp.ID, Distance: 620},
		{DepartureID: kbp.ID, DestinationID: waw.ID, Distance: 690},
		{DepartureID: waw.ID, DestinationID: ber.ID, Distance: 520},
	}
	if err := tx.Create(&routes).Error; err != nil {
		return err
	}

	// ================== FLIGHTS ==================
	log.Println("Creating flights...")

	start := time.Now().UTC().Truncate(24 * time.Hour).Add(24*time.Hour + 6*time.Hour)
	var flights []*domain.Flight
	for day := 0; day < 7; day++ {
		for i, route := range routes {
			dep := start.Add(time.Duration(day)*24*time.Hour + time.Duration(i)*3*time.Hour)
			flights = append(flights, &domain.Flight{
				RouteID:       route.ID,
				AirplaneID:    airplanes[i%len(airplanes)].ID,
				Crew:          []domain.Crew{*crew[i%len(crew)], *crew[(i+1)%len(crew)]},
				DepartureTime: dep,
				ArrivalTime:   dep.Add(time.Duration(route.Distance/8) * time.Minute),
			})
		}
	}
	if err := tx.Omit("Crew.*").Create(&flights).Error; err != nil {
		return err
	}

	log.Printf("Created %d flights", len(flights))
	return nil
}
