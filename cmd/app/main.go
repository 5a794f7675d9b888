package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkraev/aeroticket/api"
	"github.com/mkraev/aeroticket/config"
	"github.com/mkraev/aeroticket/internal/bootstrap"
	"github.com/mkraev/aeroticket/internal/cache"
	"github.com/mkraev/aeroticket/internal/kafka"
	"github.com/mkraev/aeroticket/internal/repository"
	"github.com/mkraev/aeroticket/internal/service/auth"
	"github.com/mkraev/aeroticket/internal/service/booking"
	"github.com/mkraev/aeroticket/internal/service/flights"
	"github.com/mkraev/aeroticket/internal/service/history"
	"github.com/mkraev/aeroticket/internal/service/users"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis,
		time.Duration(cfg.Auth.SessionTTLMinutes)*time.Minute,
		time.Duration(cfg.Cache.FlightsTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	historyRepo := repository.NewHistoryRepository(pool)

	services := api.Services{
		Auth:    auth.NewAuthService(userRepo, redisCache, cfg.Auth.BcryptCost),
		Flights: flights.NewFlightService(flightRepo, redisCache),
		Booking: booking.NewBookingService(
			ticketRepo,
			userRepo,
			producer,
			cfg.Kafka.TicketEventsTopic,
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		),
		History: history.NewHistoryService(historyRepo),
		Users:   users.NewUserService(userRepo),
	}

	if err := bootstrap.Run(ctx, cfg, services); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
