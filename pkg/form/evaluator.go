package form

import (
	"context"
	"fmt"
)

// Evaluate checks value against rules in declaration order. The first failing
// rule decides the result. The returned future is already complete when every
// evaluated rule was synchronous. Once an async rule is reached, it and every
// rule after it run in order on a single goroutine, detached from ctx cancellation.
func Evaluate(ctx context.Context, value any, rules []Rule, fields Fields) *Future {
	for i, rule := range rules {
		if rule.AsyncValidate != nil {
			f := newFuture()
			rest := rules[i:]
			detached := context.WithoutCancel(ctx)
			go func() {
				f.resolve(evaluateBlocking(detached, value, rest, fields))
			}()
			return f
		}
		if res, failed := checkSync(rule, value, fields); failed {
			return Resolved(res)
		}
	}
	return Resolved(passed())
}

func evaluateBlocking(ctx context.Context, value any, rules []Rule, fields Fields) ValidationResult {
	for _, rule := range rules {
		if rule.AsyncValidate != nil {
			ok, err := callAsync(ctx, rule.AsyncValidate, value, fields)
			if err != nil || !ok {
				return ValidationResult{Error: true, Message: rule.Message, Type: KindAsyncValidate, Cause: err}
			}
			continue
		}
		if res, failed := checkSync(rule, value, fields); failed {
			return res
		}
	}
	return passed()
}

func checkSync(rule Rule, value any, fields Fields) (ValidationResult, bool) {
	switch {
	case rule.Validate != nil:
		ok, err := callSync(rule.Validate, value, fields)
		if err != nil || !ok {
			return ValidationResult{Error: true, Message: rule.Message, Type: KindValidate, Cause: err}, true
		}
	case rule.Pattern != nil:
		if !rule.Pattern.MatchString(stringify(value)) {
			return ValidationResult{Error: true, Message: rule.Message, Type: KindPattern}, true
		}
	}
	return ValidationResult{}, false
}

func callSync(p Predicate, value any, fields Fields) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("%w: %v", ErrPredicatePanic, r)
		}
	}()
	return p(value, fields), nil
}

func callAsync(ctx context.Context, p AsyncPredicate, value any, fields Fields) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("%w: %v", ErrPredicatePanic, r)
		}
	}()
	return p(ctx, value, fields)
}

func passed() ValidationResult {
	return ValidationResult{Error: false, Message: ""}
}

// stringify renders value the way a pattern rule sees it.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
