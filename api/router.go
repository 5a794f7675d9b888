package api

import (
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mkraev/aeroticket/internal/service/auth"
	"github.com/mkraev/aeroticket/internal/service/booking"
	"github.com/mkraev/aeroticket/internal/service/flights"
	"github.com/mkraev/aeroticket/internal/service/history"
	"github.com/mkraev/aeroticket/internal/service/users"
)

type Services struct {
	Auth    auth.AuthUseCase
	Flights flights.FlightUseCase
	Booking booking.BookingUseCase
	History history.HistoryUseCase
	Users   users.UserUseCase
}

// NewRouter mounts the REST API under /api and, when swaggerDir is set, the
// OpenAPI document with its UI under /swagger and /docs.
func NewRouter(s Services, sessionTTL time.Duration, swaggerDir string) *gin.Engine {
	router := gin.Default()

	mw := NewMiddleware(s.Auth)

	apiGroup := router.Group("/api")
	NewAuthHandler(s.Auth, sessionTTL).Register(apiGroup.Group("/auth"), mw)
	NewFlightHandler(s.Flights).Register(apiGroup.Group("/flight"), mw)
	NewTicketHandler(s.Booking, s.History).Register(apiGroup.Group("/ticket"), mw)
	NewHistoryHandler(s.History).Register(apiGroup.Group("/history"), mw)
	NewUserHandler(s.Users).Register(apiGroup.Group("/user"), mw)

	if swaggerDir != "" {
		router.Static("/swagger", swaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/openapi.json"),
		)))
	}

	return router
}
