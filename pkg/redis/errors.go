package redis

import "errors"

var (
	// ErrEmptyConnectionURL is returned by Connect when REDIS_URL is not set.
	ErrEmptyConnectionURL = errors.New("redis: empty connection URL")
	// ErrFailedToParseRedisConnString wraps a malformed REDIS_URL.
	ErrFailedToParseRedisConnString = errors.New("redis: failed to parse connection URL")
	// ErrRedisNotReady is returned when no ping succeeded within the retry budget.
	ErrRedisNotReady = errors.New("redis: server did not become ready")
	// ErrHealthcheckFailed wraps a failed health probe ping.
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
	// ErrUnexpectedKeyType is joined into a failed healthcheck when the checked
	// key is not a set.
	ErrUnexpectedKeyType = errors.New("redis: unexpected key type")
)
