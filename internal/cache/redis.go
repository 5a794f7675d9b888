package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mkraev/aeroticket/config"
	"github.com/mkraev/aeroticket/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache backs two concerns: the server-side session store (opaque
// session id -> user id, with a sliding TTL) and a short-lived cache of the
// unfiltered flight listing.
type RedisCache struct {
	client     *redis.Client
	sessionTTL time.Duration
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, sessionTTL, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		sessionTTL: sessionTTL,
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) CreateSession(ctx context.Context, sessionID string, userID int64) error {
	return c.client.Set(ctx, sessionKey(sessionID), userID, c.sessionTTL).Err()
}

func (c *RedisCache) GetSession(ctx context.Context, sessionID string) (int64, error) {
	userID, err := c.client.Get(ctx, sessionKey(sessionID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, domain.ErrNoSession
		}
		return 0, err
	}
	// Activity extends the session.
	_ = c.client.Expire(ctx, sessionKey(sessionID), c.sessionTTL).Err()
	return userID, nil
}

func (c *RedisCache) DeleteSession(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, sessionKey(sessionID)).Err()
}

type flightsPayload struct {
	Flights []domain.Flight `json:"flights"`
	Total   int             `json:"total"`
}

// GetFlights returns the cached first page of the unfiltered listing, or
// (nil, 0, nil) on a miss.
func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, int, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, 0, nil
		}
		return nil, 0, err
	}

	var payload flightsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, 0, err
	}
	return payload.Flights, payload.Total, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight, total int) error {
	payload, err := json.Marshal(flightsPayload{Flights: flights, Total: total})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey()).Err()
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func flightsKey() string {
	return "cache:flights"
}
