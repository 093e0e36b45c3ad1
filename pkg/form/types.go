package form

import (
	"context"
	"regexp"
)

// Status is the rendered validation status of a field.
type Status string

const (
	StatusDefault Status = "default"
	StatusEmpty   Status = "empty"
	StatusError   Status = "error"
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusPrimary Status = "primary"
	StatusFocus   Status = "focus"
)

// Scale selects which checks a validation pass runs.
type Scale string

const (
	// ScaleEmpty runs the required-but-empty check.
	ScaleEmpty Scale = "empty"
	// ScaleRule runs the configured rules.
	ScaleRule Scale = "rule"
)

// DefaultScales is used when a validation pass is triggered without explicit scales.
var DefaultScales = []Scale{ScaleEmpty, ScaleRule}

// Kind classifies a validation failure.
type Kind string

const (
	KindPattern       Kind = "pattern"
	KindValidate      Kind = "validate"
	KindAsyncValidate Kind = "asyncValidate"
	KindEmpty         Kind = "empty"
	KindRule          Kind = "rule"
)

// ValidationResult is the outcome of a validation pass. Failures are values, not errors.
type ValidationResult struct {
	Error   bool   `json:"error"`
	Message string `json:"message,omitempty"`
	// Type is the top-level failure class: empty, rule or asyncValidate at the
	// controller level; pattern, validate or asyncValidate at the evaluator level.
	Type Kind `json:"type,omitempty"`
	// Rule is the failing rule subtype reported by a controller for rule failures.
	Rule Kind `json:"rule,omitempty"`
	// Cause holds the error returned or panic raised by a predicate, if any.
	Cause error `json:"-"`
}

// Predicate is a synchronous rule check. It returns true when value is valid.
type Predicate func(value any, fields Fields) bool

// AsyncPredicate is a rule check that may take time, e.g. a remote lookup.
// It returns true when value is valid. A non-nil error fails the rule.
type AsyncPredicate func(ctx context.Context, value any, fields Fields) (bool, error)

// Rule is a single validation check attached to a field.
// Exactly one mode applies: AsyncValidate, then Validate, then Pattern.
// A rule with none of them always passes.
type Rule struct {
	Pattern       *regexp.Regexp
	Validate      Predicate
	AsyncValidate AsyncPredicate
	Message       string
}

// Fields is a live read view over every field record of a registry.
// Reads observe the current record state, there is no snapshot isolation.
type Fields interface {
	Value(name string) (any, bool)
	Record(name string) (FieldRecord, bool)
	Names() []string
}

// FieldOptions configure a field at registration time.
type FieldOptions struct {
	Label        string
	Force        bool
	InitialValue any
	StopValidate bool
	Required     bool
	// Validating is shown while an async rule is pending.
	Validating string
	Rules      []Rule
	// Message replaces the default required-but-empty message.
	Message string
}

// FieldRecord is the registry metadata of one field. It outlives the field's controller.
type FieldRecord struct {
	Name         string
	Label        string
	InitialValue any
	Value        any
	Status       Status
	Required     bool
	StopValidate bool
	Force        bool
	IsValidated  bool
	Validate     bool
	Error        *ValidationResult
	Options      FieldOptions
}

// FieldState is the runtime state of a mounted field.
type FieldState struct {
	Value        any
	Status       Status
	Message      string
	IsValidating bool
	IsValidated  bool
	Validate     bool
	Focused      bool
	Error        *ValidationResult
}
