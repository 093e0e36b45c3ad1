package form_test

import (
	"context"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// recorder is a widget that keeps every Props it was rendered with.
type recorder struct {
	mu    sync.Mutex
	props []form.Props
}

func (r *recorder) Render(p form.Props) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.props = append(r.props, p)
}

func (r *recorder) last() form.Props {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.props) == 0 {
		return form.Props{}
	}
	return r.props[len(r.props)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.props)
}

// gatedRule returns an async rule that blocks until release is closed and
// then reports valid.
func gatedRule(release <-chan struct{}, valid bool, message string) form.Rule {
	return form.Rule{
		AsyncValidate: func(ctx context.Context, _ any, _ form.Fields) (bool, error) {
			<-release
			return valid, nil
		},
		Message: message,
	}
}

// gatedTaken returns an async rule that blocks until release is closed and
// then rejects the value "taken".
func gatedTaken(release <-chan struct{}) form.Rule {
	return form.Rule{
		AsyncValidate: func(_ context.Context, v any, _ form.Fields) (bool, error) {
			<-release
			return v != "taken", nil
		},
		Message: "username is taken",
	}
}
