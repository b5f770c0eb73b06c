package edit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nikmy/adminui/internal/members"
)

func TestRequiredValidator_numeric(t *testing.T) {
	v := NewRequiredValidator(members.FieldRole)

	err := v.Validate(context.Background(), members.Fields{Name: "a", Email: "b", Role: "admin"})
	require.Error(t, err)
	require.Equal(t, "Role must be a number!", err.(*ValidationError).Fields[members.FieldRole])

	err = v.Validate(context.Background(), members.Fields{Name: "a", Email: "b", Role: " 42 "})
	require.NoError(t, err)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: map[members.Field]string{
		members.FieldRole: "Please Input Role!",
		members.FieldName: "Please Input Name!",
	}}
	require.Equal(t, "validate failed: Please Input Name! Please Input Role!", err.Error())
}
