package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := NewModelError("Person", "email", "invalid format", cause)

		assert.Contains(t, err.Error(), "karst: model error")
		assert.Contains(t, err.Error(), "type Person")
		assert.Contains(t, err.Error(), "property email")
		assert.Contains(t, err.Error(), "invalid format")
		assert.Contains(t, err.Error(), "underlying error")
	})

	t.Run("Error message with type only", func(t *testing.T) {
		err := &ModelError{Type: "Person"}
		assert.Contains(t, err.Error(), "type Person")
		assert.NotContains(t, err.Error(), "property")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewModelError("Person", "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrInvalidModel", func(t *testing.T) {
		err := NewModelError("Person", "", "", nil)
		assert.True(t, errors.Is(err, ErrInvalidModel))
	})

	t.Run("IsModelError helper", func(t *testing.T) {
		err := NewModelError("Person", "email", "test", nil)
		assert.True(t, IsModelError(err))
		assert.False(t, IsModelError(errors.New("other")))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("NameStyle", "invalid", "unsupported style")

		assert.Contains(t, err.Error(), "karst: config error")
		assert.Contains(t, err.Error(), "NameStyle")
		assert.Contains(t, err.Error(), "invalid")
		assert.Contains(t, err.Error(), "unsupported style")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Package", nil, "cannot be empty")

		assert.Contains(t, err.Error(), "Package")
		assert.Contains(t, err.Error(), "cannot be empty")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, errors.Is(err, ErrMissingConfig))
	})

	t.Run("IsConfigError helper", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestRelationshipError(t *testing.T) {
	t.Run("Error message with endpoints", func(t *testing.T) {
		err := NewRelationshipError("Person", "Address", "address", "target is not an entity", nil)

		assert.Contains(t, err.Error(), "karst: relationship error")
		assert.Contains(t, err.Error(), "property address")
		assert.Contains(t, err.Error(), "(Person -> Address)")
		assert.Contains(t, err.Error(), "target is not an entity")
	})

	t.Run("Error message with source only", func(t *testing.T) {
		err := &RelationshipError{Source: "Person", Message: "dangling"}
		assert.Contains(t, err.Error(), "from Person")
	})

	t.Run("Is matches ErrInvalidRelationship", func(t *testing.T) {
		err := NewRelationshipError("Person", "Address", "address", "bad", nil)
		assert.True(t, errors.Is(err, ErrInvalidRelationship))
	})

	t.Run("IsRelationshipError helper", func(t *testing.T) {
		err := NewRelationshipError("Person", "Address", "address", "bad", nil)
		assert.True(t, IsRelationshipError(err))
		assert.False(t, IsRelationshipError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewGenerationError("entity", "person_entity.go", "save failed", cause)

		assert.Contains(t, err.Error(), "karst: generation error")
		assert.Contains(t, err.Error(), "artifact entity")
		assert.Contains(t, err.Error(), "person_entity.go")
		assert.Contains(t, err.Error(), "save failed")
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewGenerationError("registry", "", "", cause)
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrGenerationFailed", func(t *testing.T) {
		err := NewGenerationError("metadata", "", "", nil)
		assert.True(t, errors.Is(err, ErrGenerationFailed))
	})

	t.Run("IsGenerationError helper", func(t *testing.T) {
		err := NewGenerationError("entity", "", "", nil)
		assert.True(t, IsGenerationError(err))
		assert.False(t, IsGenerationError(errors.New("other")))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := NewValidationError("Person", "version", "multiple version properties")

		assert.Contains(t, err.Error(), "karst: validation error")
		assert.Contains(t, err.Error(), "type Person")
		assert.Contains(t, err.Error(), "property version")
		assert.Contains(t, err.Error(), "multiple version properties")
	})

	t.Run("Is matches ErrValidationFailed", func(t *testing.T) {
		err := NewValidationError("Person", "", "broken")
		assert.True(t, errors.Is(err, ErrValidationFailed))
	})

	t.Run("IsValidationError helper", func(t *testing.T) {
		err := NewValidationError("Person", "", "broken")
		assert.True(t, IsValidationError(err))
		assert.False(t, IsValidationError(errors.New("other")))
	})
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Severity: SeverityError,
		Entity:   "Person",
		Property: "address",
		Message:  "relationship target is unknown",
	}
	s := d.String()
	assert.Contains(t, s, "error: ")
	assert.Contains(t, s, "Person.address")
	assert.Contains(t, s, "relationship target is unknown")

	w := Diagnostic{Severity: SeverityWarning, Message: "empty batch"}
	assert.Equal(t, "warning: empty batch", w.String())
}

func TestHasErrors(t *testing.T) {
	assert.False(t, HasErrors(nil))
	assert.False(t, HasErrors([]Diagnostic{{Severity: SeverityWarning}}))
	assert.True(t, HasErrors([]Diagnostic{
		{Severity: SeverityWarning},
		{Severity: SeverityError},
	}))
}
