// Package bootstrap wires shared runtime pieces for the command binaries.
package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/redis/go-redis/v9"

	appconfig "github.com/chairtime/booking-flow/internal/config"
	"github.com/chairtime/booking-flow/internal/directory"
	"github.com/chairtime/booking-flow/internal/schedapi"
	"github.com/chairtime/booking-flow/internal/session"
	"github.com/chairtime/booking-flow/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		return nil
	}
	return client
}

// BuildSession turns the configured API token into a token source. A token
// shaped like a JWT gets local expiry checking; anything else is sent as an
// opaque bearer credential; empty means anonymous.
func BuildSession(cfg *appconfig.Config, logger *logging.Logger) session.TokenSource {
	token := strings.TrimSpace(cfg.APIToken)
	if token == "" {
		return session.Anonymous()
	}
	if strings.Count(token, ".") == 2 {
		if jwtSource, err := session.NewJWT(token); err == nil {
			return jwtSource
		}
		if logger != nil {
			logger.Warn("API token looks like a JWT but did not parse, sending as opaque token")
		}
	}
	return session.NewStatic(token)
}

// BuildAPIClient constructs the scheduling API client from configuration.
func BuildAPIClient(cfg *appconfig.Config, logger *logging.Logger) *schedapi.Client {
	return schedapi.NewClient(cfg.APIBaseURL, BuildSession(cfg, logger), logger,
		schedapi.WithTimeout(cfg.HTTPTimeout),
	)
}

// BuildDirectory constructs the provider directory, attaching the Redis
// snapshot cache when Redis is configured and reachable.
func BuildDirectory(ctx context.Context, cfg *appconfig.Config, api *schedapi.Client, logger *logging.Logger) *directory.Directory {
	var opts []directory.Option
	if redisClient := BuildRedisClient(ctx, cfg, logger, true); redisClient != nil {
		opts = append(opts, directory.WithCache(directory.NewSnapshotCache(redisClient, cfg.ProviderCacheTTL)))
	}
	return directory.New(api, logger, opts...)
}
