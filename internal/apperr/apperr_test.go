package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation().Status())
	assert.Equal(t, http.StatusBadRequest, BadRequest("bad").Status())
	assert.Equal(t, http.StatusNotFound, NotFound("recipe").Status())
	assert.Equal(t, http.StatusConflict, Conflict("taken").Status())
	assert.Equal(t, http.StatusInternalServerError, Internal(errors.New("boom")).Status())
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "recipe not found", NotFound("recipe").Message)
	assert.Equal(t, "ingredient not found", NotFound("ingredient").Message)
}

func TestValidationCarriesDetails(t *testing.T) {
	err := Validation(
		FieldError{Field: "name", Message: "name is required"},
		FieldError{Field: "instructions", Message: "instructions are required"},
	)
	assert.Equal(t, KindValidation, err.Kind)
	assert.Len(t, err.Details, 2)
	assert.Contains(t, err.Error(), "2 field errors")
}

func TestInternalHidesCause(t *testing.T) {
	err := Internal(errors.New("pq: connection refused"))
	assert.Equal(t, "internal server error", err.Message)
	assert.NotContains(t, err.Error(), "pq")
}

func TestFrom(t *testing.T) {
	orig := NotFound("recipe")
	assert.Same(t, orig, From(orig))
	assert.Same(t, orig, From(fmt.Errorf("lookup: %w", orig)))

	wrapped := From(errors.New("disk full"))
	assert.Equal(t, KindInternal, wrapped.Kind)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(Conflict("taken")))
	assert.Equal(t, KindInternal, KindOf(errors.New("nope")))
}
