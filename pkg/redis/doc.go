// Package redis connects the gateway to the Redis server that holds shared
// throttle state when several instances run side by side.
//
// # Usage
//
//	if cfg.Redis.Enabled() {
//		client, err := redis.Connect(ctx, cfg.Redis)
//		if err != nil {
//			return err
//		}
//		defer client.Close()
//
//		store := throttle.NewRedisStore(client, cfg.Redis.KeyPrefix)
//		readiness = append(readiness, redis.Healthcheck(client))
//	}
//
// # Errors
//
// Connect and Healthcheck wrap go-redis errors with the package sentinels
// (ErrRedisNotReady, ErrHealthcheckFailed, ...) using errors.Join.
package redis
