package validate_test

import (
	"testing"

	"github.com/nikbrunner/folio/internal/validate"
	"gotest.tools/v3/assert"
)

func TestStruct(t *testing.T) {
	type sample struct {
		Email string `validate:"omitempty,email"`
		Name  string `validate:"required"`
	}

	assert.NilError(t, validate.Struct(sample{Name: "folio"}))
	assert.NilError(t, validate.Struct(sample{Name: "folio", Email: "me@example.com"}))
	assert.ErrorContains(t, validate.Struct(sample{}), "Name")
	assert.ErrorContains(t, validate.Struct(sample{Name: "x", Email: "nope"}), "Email")
}

func TestVar(t *testing.T) {
	assert.NilError(t, validate.Var("https://example.com", "url"))
	assert.Assert(t, validate.Var("not a url", "url") != nil)
}
