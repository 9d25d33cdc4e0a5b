package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsMatchWithErrorsIs(t *testing.T) {
	err := fmt.Errorf("failed to update box: %w", NotFound("sensor s1"))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, "sensor s1", Subject(err))
}

func TestStore_KeepsCauseButHidesIt(t *testing.T) {
	cause := errors.New("pq: duplicate key value violates unique constraint \"sensors_pkey\"")
	err := Store("insert sensor", cause)

	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "sensors_pkey")
	assert.Equal(t, "internal server error", PublicMessage(err))
}

func TestStore_PassesThroughKindedErrors(t *testing.T) {
	nf := NotFound("box b1")

	assert.Same(t, nf, Store("update box", nf))
	assert.Nil(t, Store("update box", nil))
}

func TestPublicMessage_Validation(t *testing.T) {
	err := Validation("sensors[2]", "title is required for a new sensor")

	assert.Equal(t, "validation failed: sensors[2]: title is required for a new sensor", PublicMessage(err))
	assert.Equal(t, "internal server error", PublicMessage(errors.New("boom")))
}
