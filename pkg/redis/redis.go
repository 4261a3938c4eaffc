package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const revokedTokenPrefix = "revoked_token:"

// IRedis tracks revoked access tokens by their jti until the token would have expired anyway.
type IRedis interface {
	RevokeToken(ctx context.Context, tokenID string, expiration time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return NewFromClient(client)
}

func NewFromClient(client *redis.Client) IRedis {
	return &redisClient{client: client}
}

func (r *redisClient) RevokeToken(ctx context.Context, tokenID string, expiration time.Duration) error {
	if expiration <= 0 {
		return nil
	}

	if err := r.client.Set(ctx, revokedTokenPrefix+tokenID, "1", expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error revoking token %s: %v", tokenID, err))
		return err
	}
	logrus.Debug(fmt.Sprintf("Revoked token %s for %v", tokenID, expiration))
	return nil
}

func (r *redisClient) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.client.Get(ctx, revokedTokenPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error checking token %s: %v", tokenID, err))
		return false, err
	}
	return true, nil
}
