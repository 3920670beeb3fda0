package validators

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	t.Run("Empty is nil", func(t *testing.T) {
		verr := &ValidationError{}
		assert.NoError(t, verr.OrNil())
	})

	t.Run("Fields are sorted in the message", func(t *testing.T) {
		verr := &ValidationError{}
		verr.Add("iban", "invalid IBAN")
		verr.Add("agente_id", "required")

		err := verr.OrNil()
		assert.EqualError(t, err, "validation failed: agente_id: required, iban: invalid IBAN")
	})

	t.Run("Wraps sentinel through other wrappers", func(t *testing.T) {
		verr := &ValidationError{}
		verr.Add("tipo", "must be A1 or A2")
		err := fmt.Errorf("save: %w", verr.OrNil())

		assert.True(t, errors.Is(err, ErrValidation))
		var target *ValidationError
		assert.True(t, errors.As(err, &target))
		assert.Equal(t, "must be A1 or A2", target.Fields["tipo"])
	})
}
