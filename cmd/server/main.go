package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/driveloop/vehicle-rental/internal/config"
	"github.com/driveloop/vehicle-rental/internal/database"
	"github.com/driveloop/vehicle-rental/internal/handler"
	"github.com/driveloop/vehicle-rental/internal/queue"
	"github.com/driveloop/vehicle-rental/internal/repository"
	"github.com/driveloop/vehicle-rental/internal/router"
)

func main() {
	// .env is optional; in containers the variables come from the
	// environment directly.
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, relying on process env")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	// Redis is optional: a nil client turns the cache and rate-limit
	// middleware into pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logrus.Warn("redis unavailable, cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	vehicles := repository.NewVehicleRepo(db)
	bookings := repository.NewBookingRepo(db)
	reviews := repository.NewReviewRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := handler.NewPublicVehicleHandler(vehicles, reviews)
	ownerVehH := handler.NewOwnerVehicleHandler(vehicles)
	ownerBkH := handler.NewOwnerBookingHandler(db, bookings, vehicles)
	renterH := handler.NewRenterBookingHandler(db, bookings, reviews)
	adminH := handler.NewAdminBookingHandler(db, bookings)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, rdb)
	router.RegisterOwner(e, ownerVehH, ownerBkH, cfg.JWTSecret)
	router.RegisterRenter(e, renterH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// The consumer keeps its own reconnect loop; losing the broker
	// never takes the API down.
	go func() {
		if err := queue.StartStatusConsumer(); err != nil {
			logrus.WithError(err).Error("booking consumer stopped")
		}
	}()

	addr := ":" + cfg.Port
	logrus.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("server starting")
	if err := e.Start(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
