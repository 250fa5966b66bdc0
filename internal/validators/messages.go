package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var plain = validator.New()

// IsEmail reports whether email is a syntactically valid address. Callers
// normalize first so surrounding whitespace is not held against the user.
func IsEmail(email string) bool {
	return plain.Var(email, "required,email") == nil
}

// Describe turns the first field error into a short sentence for API
// clients. ok is false when err carries no field errors.
func Describe(err error) (msg string, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", false
	}

	fe := verrs[0]
	field := snake(fe.Field())

	switch fe.Tag() {
	case "required":
		return field + " is required.", true
	case "email":
		return field + " must be a valid email address.", true
	case "uuid":
		return field + " must be a UUID.", true
	case "hhmm":
		return field + " must be HH:MM.", true
	case "yearmonth":
		return field + " must be YYYY-MM.", true
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", field, fe.Param()), true
	case "min", "max":
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be %s %s characters.", field, bound, fe.Param()), true
		}
		return fmt.Sprintf("%s must be %s %s.", field, bound, fe.Param()), true
	}
	return field + " is invalid.", true
}

// snake maps a Go field name to its wire name: GuardianEmail -> guardian_email.
func snake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
