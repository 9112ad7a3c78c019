package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/nd199/movie-booking/internal/config"
	"github.com/nd199/movie-booking/internal/database"
	"github.com/nd199/movie-booking/internal/handler"
	"github.com/nd199/movie-booking/internal/queue"
	"github.com/nd199/movie-booking/internal/repository"
	"github.com/nd199/movie-booking/internal/router"
	"github.com/nd199/movie-booking/internal/service"
	"github.com/nd199/movie-booking/internal/utils"
)

const tokenIssuer = "movie-booking-api"

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("database: %v", err)
	}

	customerRepo := repository.NewCustomerRepo(db)
	movieRepo := repository.NewMovieRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	if err := roleRepo.EnsureSeed(ctx); err != nil {
		log.Fatalf("seed roles: %v", err)
	}

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, tokenIssuer, cfg.TokenTTLDays)
	customerSvc := service.NewCustomerService(customerRepo, roleRepo, tokens, cfg.BcryptCost)
	movieSvc := service.NewMovieService(movieRepo)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: cache and rate limiting disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())

	router.Register(e, router.Deps{
		Customers: handler.NewCustomerHandler(customerSvc, movieSvc),
		Movies:    handler.NewMovieHandler(movieSvc),
		Roles:     handler.NewRoleHandler(customerSvc),
		Auth:      handler.NewAuthHandler(customerSvc),
		Tokens:    tokens,
		Accounts:  customerRepo,
		Redis:     rdb,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
	})

	go queue.StartActivityConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
