package form

import "fmt"

// statusEvent is an outcome that moves a field between statuses.
type statusEvent string

const (
	eventEmpty    statusEvent = "empty"
	eventMismatch statusEvent = "mismatch"
	eventPass     statusEvent = "pass"
)

// statusTable maps [from][event] to the next status.
type statusTable map[Status]map[statusEvent]Status

// resultRow is shared by every status a validation result may replace.
// "success" folds into "default": a field that passed validation renders the
// same as an untouched one.
var resultRow = map[statusEvent]Status{
	eventEmpty:    StatusEmpty,
	eventMismatch: StatusError,
	eventPass:     StatusDefault,
}

// fieldStatusTable lists the built-in statuses. A status set through
// UpdateStatus that is not listed here has no transition and is kept.
var fieldStatusTable = statusTable{
	StatusDefault: resultRow,
	StatusEmpty:   resultRow,
	StatusError:   resultRow,
	StatusSuccess: resultRow,
	StatusWarning: resultRow,
	StatusPrimary: resultRow,
	StatusFocus:   resultRow,
}

func (t statusTable) next(from Status, ev statusEvent) (Status, error) {
	if to, ok := t[from][ev]; ok {
		return to, nil
	}
	return from, fmt.Errorf("%w: from %q on %q", ErrNoStatusTransition, from, ev)
}

// eventFor classifies a controller-level result.
func eventFor(res ValidationResult) statusEvent {
	switch {
	case !res.Error:
		return eventPass
	case res.Type == KindEmpty:
		return eventEmpty
	default:
		return eventMismatch
	}
}
