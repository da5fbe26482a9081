package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  *BusinessError
		kind ErrorKind
		code string
	}{
		{"not found", NewNotFound("Dish not found"), KindNotFound, "not_found"},
		{"bad request", NewBadRequest("The cost must be a positive number"), KindBadRequest, "bad_request"},
		{"precondition failed", NewPreconditionFailed("Dish not found in the restaurant"), KindPreconditionFailed, "precondition_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.code, tt.err.Kind.String())
			assert.Equal(t, tt.err.Message, tt.err.Error())

			wrapped := fmt.Errorf("handler: %w", tt.err)
			kind, ok := KindOf(wrapped)
			assert.True(t, ok)
			assert.Equal(t, tt.kind, kind)
			assert.True(t, IsKind(wrapped, tt.kind))
		})
	}
}

func TestKindOfPlainError(t *testing.T) {
	_, ok := KindOf(errors.New("disk full"))
	assert.False(t, ok)
	assert.False(t, IsKind(nil, KindNotFound))
	assert.Equal(t, "unknown", ErrorKind(0).String())
}
