package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const healthcheckTimeout = 2 * time.Second

// Healthcheck returns a /healthz check for the set that backs username
// uniqueness. It fails when redis does not answer or when key holds something
// other than a set, since SISMEMBER on such a key errors on every lookup.
// The check is bounded by a short timeout unless ctx already has a deadline.
func Healthcheck(client redis.Cmdable, key string) func(context.Context) error {
	return func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, healthcheckTimeout)
			defer cancel()
		}

		kind, err := client.Type(ctx, key).Result()
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if kind != "set" && kind != "none" {
			return errors.Join(ErrHealthcheckFailed, fmt.Errorf("%w: %s holds %s", ErrUnexpectedKeyType, key, kind))
		}
		return nil
	}
}
