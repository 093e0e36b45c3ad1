package form

import (
	"fmt"
	"strings"
)

// Trigger selects when a field validates on its own, outside aggregate operations.
type Trigger string

const (
	// ValidateOnChange validates on every value change and again on blur.
	// A change-triggered pass always leaves the field marked unvalidated, so the
	// next blur or submit runs a fresh pass.
	ValidateOnChange Trigger = "change"
	// ValidateOnBlur only validates on blur.
	ValidateOnBlur Trigger = "blur"
)

// ParseTrigger converts a config value to a Trigger.
func ParseTrigger(s string) (Trigger, error) {
	switch t := Trigger(strings.ToLower(strings.TrimSpace(s))); t {
	case ValidateOnChange, ValidateOnBlur:
		return t, nil
	case "":
		return ValidateOnChange, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTrigger, s)
	}
}

// changeScales returns the scales a value change validates, or nil when a
// change does not validate under t.
func (t Trigger) changeScales() []Scale {
	if t == ValidateOnBlur {
		return nil
	}
	return []Scale{ScaleEmpty, ScaleRule}
}
