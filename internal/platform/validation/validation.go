// Package validation evaluates explicit, ordered predicate/message rules per
// field and folds every failure into a single apperr.ValidationError.
//
// Rules attached to one field run in declaration order and stop at the first
// failure, so a missing value reports "This field is required." rather than a
// cascade of format errors. Every field is evaluated.
package validation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/platform/apperr"
)

// Check reports whether a rule holds. A non-nil error aborts validation;
// it is reserved for lookup failures against the store.
type Check func(ctx context.Context) (bool, error)

// Rule pairs a predicate with the message reported when it does not hold.
type Rule struct {
	Message string
	Check   Check
}

// Exister is implemented by repositories that can answer whether a record
// with the given id exists. Foreign-key rules resolve through it.
type Exister interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type field struct {
	name  string
	rules []Rule
}

// Validator accumulates fields and their rules for one record.
type Validator struct {
	fields []field
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// Field appends rules for name. Calling Field twice with the same name adds
// a second, independently evaluated rule chain.
func (v *Validator) Field(name string, rules ...Rule) *Validator {
	v.fields = append(v.fields, field{name: name, rules: rules})
	return v
}

// Validate runs every rule chain and returns nil, a *apperr.ValidationError,
// or the first lookup error encountered.
func (v *Validator) Validate(ctx context.Context) error {
	result := &apperr.ValidationError{}
	for _, f := range v.fields {
		for _, r := range f.rules {
			ok, err := r.Check(ctx)
			if err != nil {
				return fmt.Errorf("validate %s: %w", f.name, err)
			}
			if !ok {
				result.Add(f.name, r.Message)
				break
			}
		}
	}
	if result.Empty() {
		return nil
	}
	return result
}
