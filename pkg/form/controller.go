package form

import (
	"context"
	"log/slog"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// FieldController owns the runtime state of one bound field and drives its
// validation passes. State changes are committed locally first, then mirrored
// into the registry record, then rendered and published.
type FieldController struct {
	name     string
	label    string
	opts     FieldOptions
	registry *Registry
	widget   Widget
	log      *slog.Logger

	mu         sync.Mutex
	state      FieldState
	focusValue any
	// seq identifies the latest validation pass; results of older passes are stale.
	seq uint64
	// detached is set once the widget is unmounted or replaced. A detached
	// controller no longer writes to the record or publishes events.
	detached atomic.Bool
}

func newController(r *Registry, rec FieldRecord, w Widget) *FieldController {
	return &FieldController{
		name:     rec.Name,
		label:    rec.Label,
		opts:     rec.Options,
		registry: r,
		widget:   w,
		log:      r.log.With(logger.Field(rec.Name)),
		state: FieldState{
			Value:    rec.Value,
			Status:   rec.Status,
			Validate: rec.Validate,
		},
	}
}

// Name returns the field name.
func (c *FieldController) Name() string {
	return c.name
}

// State returns a copy of the current state.
func (c *FieldController) State() FieldState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyState(c.state)
}

// Props returns what the bound widget should render with.
func (c *FieldController) Props() Props {
	s := c.State()
	validating := c.opts.Validating
	if validating == "" {
		validating = c.registry.messages.validating()
	}
	return Props{
		Name:              c.name,
		Label:             c.label,
		Value:             s.Value,
		Status:            s.Status,
		Message:           s.Message,
		Focused:           s.Focused,
		Validating:        s.IsValidating,
		ValidatingMessage: validating,
		Required:          c.opts.Required,
		OnChange:          c.handleChange,
		OnFocus:           c.Focus,
		OnBlur:            c.handleBlur,
	}
}

// SetValue stores a new value and, under ValidateOnChange, runs a pass over the
// empty and rule scales. The field is left unvalidated once that pass settles,
// so the next blur or submit validates again. Under ValidateOnBlur the returned
// future is already complete and holds the zero result.
//
// A pass still pending for the previous value is outdated by the change.
func (c *FieldController) SetValue(ctx context.Context, value any) *Future {
	if !c.detached.Load() {
		c.registry.writeValue(c.name, value)
	}
	discard := c.registry.opts.discardStale
	c.commit(EventChanged, func(s *FieldState) bool {
		s.Value = value
		s.IsValidated = false
		c.seq++
		if discard {
			s.IsValidating = false
		}
		return true
	}, nil)

	scales := c.registry.opts.trigger.changeScales()
	if scales == nil {
		return Resolved(ValidationResult{})
	}
	return c.TriggerValidate(ctx, scales, func(ValidationResult) {
		c.commit(EventUpdated, func(s *FieldState) bool {
			s.IsValidated = false
			return true
		}, nil)
	})
}

// Focus marks the field focused and remembers the value it had.
func (c *FieldController) Focus() {
	c.commit(EventFocused, func(s *FieldState) bool {
		s.Focused = true
		c.focusValue = s.Value
		return true
	}, nil)
}

// Blur clears focus and validates with default scales unless the field is
// already validated and its value did not change since Focus.
func (c *FieldController) Blur(ctx context.Context) *Future {
	var (
		unchanged bool
		cached    ValidationResult
	)
	c.commit(EventBlurred, func(s *FieldState) bool {
		s.Focused = false
		unchanged = s.IsValidated && reflect.DeepEqual(s.Value, c.focusValue)
		cached = resultOf(*s)
		return true
	}, nil)
	if unchanged {
		return Resolved(cached)
	}
	return c.TriggerValidate(ctx, nil, nil)
}

// TriggerValidate runs one validation pass over scales (DefaultScales when
// empty) and calls callback, if any, once the outcome is committed. The
// returned future is complete when no async rule was involved; otherwise
// IsValidating stays true until it settles.
func (c *FieldController) TriggerValidate(ctx context.Context, scales []Scale, callback func(ValidationResult)) *Future {
	if len(scales) == 0 {
		scales = DefaultScales
	}

	c.mu.Lock()
	value := c.state.Value
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	if IsEmpty(value) {
		if c.opts.Required && slices.Contains(scales, ScaleEmpty) {
			res := ValidationResult{Error: true, Type: KindEmpty, Message: c.emptyMessage()}
			c.settle(seq, res, false, callback)
			return Resolved(res)
		}
	} else if len(c.opts.Rules) > 0 && slices.Contains(scales, ScaleRule) {
		ev := Evaluate(ctx, value, c.opts.Rules, c.registry.fields)
		if out, ok := ev.Result(); ok {
			res := c.ruleResult(out)
			c.settle(seq, res, false, callback)
			return Resolved(res)
		}

		c.commit(EventValidating, func(s *FieldState) bool {
			s.IsValidating = true
			return true
		}, nil)

		f := newFuture()
		go func() {
			<-ev.Done()
			out, _ := ev.Result()
			res := c.ruleResult(out)
			c.settle(seq, res, true, callback)
			f.resolve(res)
		}()
		return f
	}

	res := ValidationResult{Error: false}
	c.settle(seq, res, false, callback)
	return Resolved(res)
}

// UpdateStatus applies patch to the local state, then mirrors status,
// validate, isValidated and error into the registry record, then calls callback.
func (c *FieldController) UpdateStatus(patch func(*FieldState), callback func()) {
	c.commit(EventUpdated, func(s *FieldState) bool {
		if patch != nil {
			patch(s)
		}
		return true
	}, callback)
}

// settle commits the outcome of pass seq. When a newer pass has started and
// stale results are discarded, the outcome is dropped but callback still runs.
func (c *FieldController) settle(seq uint64, res ValidationResult, async bool, callback func(ValidationResult)) {
	discard := c.registry.opts.discardStale
	applied := c.commit(EventValidated, func(s *FieldState) bool {
		if discard && seq != c.seq {
			return false
		}
		next, err := fieldStatusTable.next(s.Status, eventFor(res))
		if err != nil {
			c.log.Warn("status transition failed, status kept", logger.Error(err))
		}
		s.Status = next
		s.IsValidated = true
		if res.Error {
			s.Validate = false
			s.Message = res.Message
			r := res
			s.Error = &r
		} else {
			s.Validate = true
			s.Message = ""
			s.Error = nil
		}
		if discard || async {
			s.IsValidating = false
		}
		return true
	}, nil)

	if !applied {
		c.log.Debug("stale validation result discarded", slog.Uint64("seq", seq), slog.Bool("error", res.Error))
	}
	if callback != nil {
		callback(res)
	}
}

// commit is the single write path: local state, then registry mirror, then
// render and publish. patch returns false to leave the state untouched.
// A detached controller only updates its local state.
func (c *FieldController) commit(kind EventKind, patch func(*FieldState) bool, callback func()) bool {
	c.mu.Lock()
	if !patch(&c.state) {
		c.mu.Unlock()
		return false
	}
	snapshot := copyState(c.state)
	c.mu.Unlock()

	if !c.detached.Load() {
		c.registry.mirror(c.name, snapshot)
		c.render()
		c.registry.publish(c.name, kind, snapshot)
	}
	if callback != nil {
		callback()
	}
	return true
}

func (c *FieldController) render() {
	if c.widget != nil {
		c.widget.Render(c.Props())
	}
}

func (c *FieldController) handleChange(value any) {
	c.SetValue(context.Background(), value)
}

func (c *FieldController) handleBlur() {
	c.Blur(context.Background())
}

func (c *FieldController) emptyMessage() string {
	if c.opts.Message != "" {
		return c.opts.Message
	}
	return c.registry.messages.required(c.label)
}

// ruleResult lifts an evaluator outcome to a controller result.
func (c *FieldController) ruleResult(out ValidationResult) ValidationResult {
	if !out.Error {
		return ValidationResult{Error: false}
	}
	res := ValidationResult{
		Error:   true,
		Message: out.Message,
		Type:    KindRule,
		Rule:    out.Type,
		Cause:   out.Cause,
	}
	if out.Type == KindAsyncValidate {
		res.Type = KindAsyncValidate
	}
	if res.Message == "" {
		res.Message = c.registry.messages.invalid(c.label)
	}
	if out.Cause != nil {
		c.log.Debug("rule predicate failed with error", logger.Error(out.Cause))
	}
	return res
}

// resultOf rebuilds the last committed result from a state.
func resultOf(s FieldState) ValidationResult {
	if s.Error != nil {
		return *s.Error
	}
	return ValidationResult{Error: !s.Validate && s.IsValidated}
}

func copyState(s FieldState) FieldState {
	if s.Error != nil {
		e := *s.Error
		s.Error = &e
	}
	return s
}
