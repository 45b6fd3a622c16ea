package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"airport/internal/config"
	"airport/internal/database"
	"airport/internal/middleware"
	"airport/internal/modules/auth"
	"airport/internal/modules/fleet"
	"airport/internal/modules/flight"
	"airport/internal/modules/network"
	"airport/internal/modules/order"
	"airport/internal/modules/seatfeed"
	"airport/internal/pkg/jwt"
	"airport/internal/pkg/response"
	"airport/internal/repository"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.DatabaseURL, database.Options{})
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	// repositories
	userRepo := repository.NewUserRepository(db)
	fleetRepo := repository.NewFleetRepository(db)
	networkRepo := repository.NewNetworkRepository(db)
	flightRepo := repository.NewFlightRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	tokens := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	// services
	authService := auth.NewService(userRepo, tokens)
	fleetService := fleet.NewService(fleetRepo)
	networkService := network.NewService(networkRepo, network.NewImageStore(cfg.UploadDir))
	flightService := flight.NewService(flightRepo, fleetRepo)

	hub := seatfeed.NewHub()
	defer hub.Close()
	notifier := seatfeed.NewNotifier(hub, flightService)

	orderService := order.NewService(orderRepo, flightRepo, fleetRepo, notifier)

	// handlers
	authHandler := auth.NewHandler(authService)
	fleetHandler := fleet.NewHandler(fleetService)
	networkHandler := network.NewHandler(networkService)
	flightHandler := flight.NewHandler(flightService)
	orderHandler := order.NewHandler(orderService)
	seatHandler := seatfeed.NewHandler(hub, tokens, flightService, middleware.OriginAllowed(cfg.CORSAllowedOrigins))

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log.Default()),
		middleware.ErrorLogger(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)
	r.Static("/static", cfg.UploadDir)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			response.Success(c, http.StatusOK, gin.H{"status": "ok"})
		})

		// public
		authHandler.RegisterPublicRoutes(v1)
		seatHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(tokens))
		{
			authHandler.RegisterProtectedRoutes(protected)
			orderHandler.RegisterRoutes(protected)
		}

		// reference data and flights: any user reads, admins write
		catalog := protected.Group("")
		catalog.Use(middleware.AdminForWrites())
		{
			fleetHandler.RegisterRoutes(catalog)
			networkHandler.RegisterRoutes(catalog)
			flightHandler.RegisterRoutes(catalog)
		}
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("api listening on %s (env=%s)", cfg.Addr(), cfg.AppEnv)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
