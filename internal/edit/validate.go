package edit

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/nikmy/adminui/internal/members"
)

// Validator checks staged fields before commit. Implementations may block,
// Save awaits the result before deciding.
type Validator interface {
	Validate(ctx context.Context, fields members.Fields) error
}

// ValidationError carries one message per invalid field.
type ValidationError struct {
	Fields map[members.Field]string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validate failed:")
	for _, f := range members.EditableFields {
		msg, ok := e.Fields[f]
		if !ok {
			continue
		}
		sb.WriteString(" ")
		sb.WriteString(msg)
	}
	return sb.String()
}

func requiredMessage(f members.Field) string {
	return fmt.Sprintf("Please Input %s!", f.Title())
}

func numericMessage(f members.Field) string {
	return fmt.Sprintf("%s must be a number!", f.Title())
}

// NewRequiredValidator makes a validator requiring every editable field to
// be non-blank. Fields listed in numeric must also parse as a number.
func NewRequiredValidator(numeric ...members.Field) Validator {
	set := make(map[members.Field]struct{}, len(numeric))
	for _, f := range numeric {
		set[f] = struct{}{}
	}
	return requiredValidator{numeric: set}
}

type requiredValidator struct {
	numeric map[members.Field]struct{}
}

func (v requiredValidator) Validate(_ context.Context, fields members.Fields) error {
	invalid := make(map[members.Field]string)

	for _, f := range members.EditableFields {
		value := strings.TrimSpace(fields.Get(f))
		if value == "" {
			invalid[f] = requiredMessage(f)
			continue
		}

		if _, numeric := v.numeric[f]; numeric {
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				invalid[f] = numericMessage(f)
			}
		}
	}

	if len(invalid) == 0 {
		return nil
	}
	return &ValidationError{Fields: invalid}
}

// ValidatorFunc adapts a plain function, useful for asynchronous checks.
type ValidatorFunc func(ctx context.Context, fields members.Fields) error

func (f ValidatorFunc) Validate(ctx context.Context, fields members.Fields) error {
	return f(ctx, fields)
}
