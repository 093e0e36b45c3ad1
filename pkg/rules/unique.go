package rules

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// ErrLookupFailed is the cause attached to a Unique failure when redis could not be queried.
var ErrLookupFailed = errors.New("rules: uniqueness lookup failed")

// TakenSet is a redis set of values that are already in use, such as
// registered usernames. Values are trimmed and, unless CaseSensitive is set,
// lowercased before they are stored or looked up.
type TakenSet struct {
	client        redis.Cmdable
	key           string
	timeout       time.Duration
	caseSensitive bool
}

// TakenSetOption configures a TakenSet.
type TakenSetOption func(*TakenSet)

// CaseSensitive keeps the case of values.
func CaseSensitive() TakenSetOption {
	return func(s *TakenSet) {
		s.caseSensitive = true
	}
}

// LookupTimeout bounds a single membership lookup. Default is 2s.
func LookupTimeout(d time.Duration) TakenSetOption {
	return func(s *TakenSet) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewTakenSet returns a set stored under key.
func NewTakenSet(client redis.Cmdable, key string, opts ...TakenSetOption) *TakenSet {
	s := &TakenSet{client: client, key: key, timeout: 2 * time.Second}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add marks values as taken.
func (s *TakenSet) Add(ctx context.Context, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	members := make([]any, 0, len(values))
	for _, v := range values {
		members = append(members, s.normalize(v))
	}
	return s.client.SAdd(ctx, s.key, members...).Err()
}

// Remove releases values.
func (s *TakenSet) Remove(ctx context.Context, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	members := make([]any, 0, len(values))
	for _, v := range values {
		members = append(members, s.normalize(v))
	}
	return s.client.SRem(ctx, s.key, members...).Err()
}

// Contains reports whether value is taken.
func (s *TakenSet) Contains(ctx context.Context, value string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.SIsMember(ctx, s.key, s.normalize(value)).Result()
}

func (s *TakenSet) normalize(v string) string {
	v = strings.TrimSpace(v)
	if !s.caseSensitive {
		v = strings.ToLower(v)
	}
	return v
}

// Unique fails when the value is in set. A lookup error fails the rule too,
// with the error wrapped in ErrLookupFailed as the result cause.
func Unique(set *TakenSet, message string) form.Rule {
	return form.Rule{
		AsyncValidate: func(ctx context.Context, value any, _ form.Fields) (bool, error) {
			taken, err := set.Contains(ctx, text(value))
			if err != nil {
				return false, errors.Join(ErrLookupFailed, err)
			}
			return !taken, nil
		},
		Message: message,
	}
}
