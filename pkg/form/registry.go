package form

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Registry binds named fields to widgets and aggregates their values and
// validation results. One Registry serves one logical form instance.
type Registry struct {
	id       string
	opts     *options
	log      *slog.Logger
	messages *messages
	events   *eventHub
	fields   Fields

	mu          sync.RWMutex
	order       []string
	records     map[string]*FieldRecord
	controllers map[string]*FieldController
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}

	r := &Registry{
		id:          o.id,
		opts:        o,
		log:         o.logger.With(logger.Component("form"), logger.Form(o.id)),
		messages:    newMessages(o.translator, o.language),
		events:      newEventHub(o.eventBuffer),
		records:     make(map[string]*FieldRecord),
		controllers: make(map[string]*FieldController),
	}
	r.fields = recordView{r}
	return r
}

// ID returns the form instance id.
func (r *Registry) ID() string {
	return r.id
}

// Decorate declares a field and returns the binder that attaches a widget to
// it. Declaring a name again replaces its record but keeps its position in
// iteration order.
func (r *Registry) Decorate(name string, opts FieldOptions) Binder {
	label := opts.Label
	if label == "" {
		label = name
	}
	rec := &FieldRecord{
		Name:         name,
		Label:        label,
		InitialValue: opts.InitialValue,
		Value:        opts.InitialValue,
		Status:       StatusDefault,
		Required:     opts.Required,
		StopValidate: opts.StopValidate,
		Force:        opts.Force,
		Options:      opts,
	}

	r.mu.Lock()
	if _, exists := r.records[name]; exists {
		r.log.Debug("field declared again, record replaced", logger.Field(name))
	} else {
		r.order = append(r.order, name)
	}
	r.records[name] = rec
	r.mu.Unlock()

	return func(w Widget) *BoundWidget {
		return r.bind(name, w)
	}
}

func (r *Registry) bind(name string, w Widget) *BoundWidget {
	// records are never removed, Decorate created this one
	rec, _ := r.Record(name)
	c := newController(r, rec, w)

	r.mu.Lock()
	if prev, ok := r.controllers[name]; ok {
		prev.detached.Store(true)
	}
	r.controllers[name] = c
	r.mu.Unlock()

	r.publish(name, EventMounted, c.State())
	c.render()
	return &BoundWidget{ctrl: c}
}

func (r *Registry) unmount(c *FieldController) {
	c.detached.Store(true)
	r.mu.Lock()
	if r.controllers[c.name] == c {
		delete(r.controllers, c.name)
	}
	r.mu.Unlock()
	r.publish(c.name, EventUnmounted, c.State())
}

// Lookup returns the mounted controller of name.
func (r *Registry) Lookup(name string) (*FieldController, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.controllers[name]
	return c, ok
}

// Record returns a copy of the record of name.
func (r *Registry) Record(name string) (FieldRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[name]
	if !ok {
		return FieldRecord{}, false
	}
	return copyRecord(rec), true
}

// Names returns field names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Fields returns the live read view passed to rule predicates.
func (r *Registry) Fields() Fields {
	return r.fields
}

// StopOnFirstError reports the global early-exit policy.
func (r *Registry) StopOnFirstError() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.opts.stopOnFirstError
}

// SetStopOnFirstError changes the global early-exit policy.
func (r *Registry) SetStopOnFirstError(stop bool) {
	r.mu.Lock()
	r.opts.stopOnFirstError = stop
	r.mu.Unlock()
}

// Subscribe returns a subscription to field events. It closes when ctx ends.
func (r *Registry) Subscribe(ctx context.Context) *Subscription {
	return r.events.subscribe(ctx)
}

// GetFieldsValue validates every field in registration order, one at a time,
// and returns their values. When a field fails and either the global policy or
// the field's StopValidate asks to stop, fields after it are left out of the
// result. Validation outcomes never change the returned values.
func (r *Registry) GetFieldsValue(ctx context.Context) (map[string]any, error) {
	values := make(map[string]any)
	stopAll := r.StopOnFirstError()

	for _, name := range r.Names() {
		rec, ok := r.Record(name)
		if !ok {
			continue
		}
		values[name] = rec.Value

		res, err := r.controllerFor(rec).TriggerValidate(ctx, nil, nil).Await(ctx)
		if err != nil {
			return values, err
		}
		if res.Error && (stopAll || rec.StopValidate) {
			r.log.DebugContext(ctx, "stopped collecting values at failing field", logger.Field(name))
			break
		}
	}
	return values, nil
}

// ValidationReport is the aggregate outcome of ValidateFields.
// Errors is nil when every validated field passed.
type ValidationReport struct {
	Errors map[string]ValidationResult
	Values map[string]any
}

// ValidateFields validates fields in registration order, one at a time.
// A field is validated again when it has Force set or was never validated;
// otherwise a cached failure is reported as is. After a stopping failure no
// further field is validated, but every field's last known value is still
// collected. callback, if any, receives the same errors and values that are
// returned.
func (r *Registry) ValidateFields(ctx context.Context, callback func(errs map[string]ValidationResult, values map[string]any)) (ValidationReport, error) {
	values := make(map[string]any)
	errs := make(map[string]ValidationResult)
	stopAll := r.StopOnFirstError()
	stopped := false

	for _, name := range r.Names() {
		rec, ok := r.Record(name)
		if !ok {
			continue
		}
		values[name] = rec.Value
		if stopped {
			continue
		}

		failed := false
		switch {
		case rec.Force || !rec.IsValidated:
			res, err := r.controllerFor(rec).TriggerValidate(ctx, nil, nil).Await(ctx)
			if err != nil {
				return ValidationReport{Errors: nonEmpty(errs), Values: values}, err
			}
			if res.Error {
				errs[name] = res
				failed = true
			}
		case !rec.Validate:
			failed = true
			if rec.Error != nil {
				errs[name] = *rec.Error
			} else {
				errs[name] = ValidationResult{Error: true}
			}
		}

		if failed && (stopAll || rec.StopValidate) {
			r.log.DebugContext(ctx, "stopped validating at failing field", logger.Field(name))
			stopped = true
		}
	}

	report := ValidationReport{Errors: nonEmpty(errs), Values: values}
	if callback != nil {
		callback(report.Errors, report.Values)
	}
	return report, nil
}

// SetValue writes value into the record only. Use it to pre-populate a field
// before its widget is bound; a mounted controller is not touched.
func (r *Registry) SetValue(name string, value any) error {
	if !r.writeValue(name, value) {
		return ErrFieldNotFound
	}
	return nil
}

// SetFieldValue sends value through the mounted controller's change handler,
// exactly as a user edit would.
func (r *Registry) SetFieldValue(ctx context.Context, name string, value any) (*Future, error) {
	c, ok := r.Lookup(name)
	if !ok {
		if _, declared := r.Record(name); !declared {
			return nil, ErrFieldNotFound
		}
		return nil, ErrFieldNotMounted
	}
	return c.SetValue(ctx, value), nil
}

// controllerFor returns the mounted controller, or a headless one built from
// the record so unmounted fields still validate deterministically.
func (r *Registry) controllerFor(rec FieldRecord) *FieldController {
	if c, ok := r.Lookup(rec.Name); ok {
		return c
	}
	r.log.Debug("validating unmounted field headless", logger.Field(rec.Name))
	return newController(r, rec, nil)
}

func (r *Registry) writeValue(name string, value any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[name]
	if !ok {
		return false
	}
	rec.Value = value
	return true
}

// mirror copies a controller's validation state into its record.
func (r *Registry) mirror(name string, s FieldState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[name]
	if !ok {
		return
	}
	rec.Status = s.Status
	rec.Validate = s.Validate
	rec.IsValidated = s.IsValidated
	rec.Error = s.Error
}

func (r *Registry) publish(name string, kind EventKind, s FieldState) {
	ev := FieldEvent{FormID: r.id, Field: name, Kind: kind, State: s}
	if dropped := r.events.publish(ev); dropped > 0 {
		r.log.Debug("field event dropped for slow subscribers",
			logger.Field(name), logger.Event(string(kind)), slog.Int("dropped", dropped))
	}
}

// recordView is the Fields implementation handed to predicates.
type recordView struct {
	r *Registry
}

func (v recordView) Value(name string) (any, bool) {
	v.r.mu.RLock()
	defer v.r.mu.RUnlock()
	rec, ok := v.r.records[name]
	if !ok {
		return nil, false
	}
	return rec.Value, true
}

func (v recordView) Record(name string) (FieldRecord, bool) {
	return v.r.Record(name)
}

func (v recordView) Names() []string {
	return v.r.Names()
}

func copyRecord(rec *FieldRecord) FieldRecord {
	c := *rec
	if rec.Error != nil {
		e := *rec.Error
		c.Error = &e
	}
	return c
}

func nonEmpty(errs map[string]ValidationResult) map[string]ValidationResult {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
