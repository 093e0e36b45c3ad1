package rules

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// Pattern fails when the value does not match expr. Panics on an invalid expression.
func Pattern(expr, message string) form.Rule {
	return form.Rule{
		Pattern: regexp.MustCompile(expr),
		Message: message,
	}
}

// Email accepts a bare address: a local part and a dotted domain, without a display name.
func Email(message string) form.Rule {
	return form.Rule{
		Validate: func(value any, _ form.Fields) bool {
			s := strings.TrimSpace(text(value))
			addr, err := mail.ParseAddress(s)
			if err != nil || addr.Address != s || addr.Name != "" {
				return false
			}
			local, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || local == "" || domain == "" {
				return false
			}
			return strings.Contains(domain, ".") &&
				!strings.HasPrefix(domain, ".") &&
				!strings.HasSuffix(domain, ".") &&
				!strings.Contains(domain, "..")
		},
		Message: message,
	}
}

// MinLength fails when the value has fewer than n characters.
func MinLength(n int, message string) form.Rule {
	return form.Rule{
		Validate: func(value any, _ form.Fields) bool {
			return utf8.RuneCountInString(text(value)) >= n
		},
		Message: message,
	}
}

// MaxLength fails when the value has more than n characters.
func MaxLength(n int, message string) form.Rule {
	return form.Rule{
		Validate: func(value any, _ form.Fields) bool {
			return utf8.RuneCountInString(text(value)) <= n
		},
		Message: message,
	}
}

// text renders a field value as the string the text rules measure.
func text(value any) string {
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
