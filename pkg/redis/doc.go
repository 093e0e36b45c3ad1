// Package redis connects to the redis server that backs remote form rules,
// such as the uniqueness checks in pkg/rules.
//
// Config is populated from the environment (REDIS_URL and friends) with
// pkg/config. Connect retries until the server answers a ping or the connect
// timeout elapses:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Healthcheck wraps a client into a probe suitable for a /healthz handler.
//
// Failures are reported with sentinel errors (ErrRedisNotReady and others)
// joined with the underlying go-redis error.
package redis
