package validation

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// PhonePattern is the accepted phone number shape for doctors and patients.
var PhonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

// PhoneMessage is reported when a phone number does not match PhonePattern.
const PhoneMessage = "Phone number must be entered in the format: '+999999999'. Up to 15 digits allowed."

// RequiredMessage is reported for missing values.
const RequiredMessage = "This field is required."

var emailValidator = validator.New()

func pure(ok func() bool) Check {
	return func(context.Context) (bool, error) { return ok(), nil }
}

// Custom wraps an arbitrary check.
func Custom(message string, check Check) Rule {
	return Rule{Message: message, Check: check}
}

// Predicate wraps a pure boolean function.
func Predicate(message string, ok func() bool) Rule {
	return Rule{Message: message, Check: pure(ok)}
}

// Required fails on empty or whitespace-only strings.
func Required(value string) Rule {
	return Predicate(RequiredMessage, func() bool { return strings.TrimSpace(value) != "" })
}

// Provided fails when a required key was absent from the request body.
func Provided(present bool) Rule {
	return Predicate(RequiredMessage, func() bool { return present })
}

// RequiredTime fails on the zero time.
func RequiredTime(t time.Time) Rule {
	return Predicate(RequiredMessage, func() bool { return !t.IsZero() })
}

// RequiredID fails on uuid.Nil.
func RequiredID(id uuid.UUID) Rule {
	return Predicate(RequiredMessage, func() bool { return id != uuid.Nil })
}

// MaxLength fails when value has more than n characters.
func MaxLength(value string, n int) Rule {
	return Predicate(
		fmt.Sprintf("Ensure this field has no more than %d characters.", n),
		func() bool { return utf8.RuneCountInString(value) <= n },
	)
}

// Matches fails when value does not match re.
func Matches(value string, re *regexp.Regexp, message string) Rule {
	return Predicate(message, func() bool { return re.MatchString(value) })
}

// Phone applies PhonePattern.
func Phone(value string) Rule {
	return Matches(value, PhonePattern, PhoneMessage)
}

// Email fails on syntactically invalid addresses.
func Email(value string) Rule {
	return Predicate("Enter a valid email address.", func() bool {
		return emailValidator.Var(value, "email") == nil
	})
}

// OneOf fails when value is not one of allowed.
func OneOf(value string, allowed ...string) Rule {
	return Predicate(fmt.Sprintf("%q is not a valid choice.", value), func() bool {
		for _, a := range allowed {
			if value == a {
				return true
			}
		}
		return false
	})
}

// NotFuture fails when the calendar date of t is after the UTC calendar
// date of now.
func NotFuture(t, now time.Time, message string) Rule {
	return Predicate(message, func() bool {
		return !civilDate(t).After(civilDate(now.UTC()))
	})
}

// NotPast fails when t is strictly before now.
func NotPast(t, now time.Time, message string) Rule {
	return Predicate(message, func() bool { return !t.Before(now) })
}

// MinValue fails when v < floor.
func MinValue(v, floor float64) Rule {
	return Predicate(
		fmt.Sprintf("Ensure this value is greater than or equal to %s.", formatNumber(floor)),
		func() bool { return v >= floor },
	)
}

// MaxDecimalPlaces fails when v carries more than places fractional digits.
func MaxDecimalPlaces(v float64, places int) Rule {
	return Predicate(
		fmt.Sprintf("Ensure that there are no more than %d decimal places.", places),
		func() bool {
			scaled := v * math.Pow10(places)
			return math.Abs(scaled-math.Round(scaled)) < 1e-4
		},
	)
}

// MaxWholeDigits fails when the integer part of v has more than n digits.
func MaxWholeDigits(v float64, n int) Rule {
	return Predicate(
		fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", n),
		func() bool { return math.Abs(v) < math.Pow10(n) },
	)
}

// Unique fails when taken reports the value is already in use.
func Unique(message string, taken func(ctx context.Context) (bool, error)) Rule {
	return Custom(message, func(ctx context.Context) (bool, error) {
		used, err := taken(ctx)
		if err != nil {
			return false, err
		}
		return !used, nil
	})
}

// Exists fails when id does not resolve through ex.
func Exists(id uuid.UUID, ex Exister) Rule {
	return Custom(fmt.Sprintf("Invalid pk %q - object does not exist.", id.String()), func(ctx context.Context) (bool, error) {
		return ex.Exists(ctx, id)
	})
}

// When applies r only if cond holds.
func When(cond bool, r Rule) Rule {
	if cond {
		return r
	}
	return Rule{Message: r.Message, Check: func(context.Context) (bool, error) { return true, nil }}
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}
