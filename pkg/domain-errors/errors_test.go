package derrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeValidation, CodeOf(New(CodeValidation, "bad input")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")), "uncoded errors default to internal")
}

func TestCodeOf_WrappedChain(t *testing.T) {
	inner := New(CodeNotFound, "list not found")
	outer := fmt.Errorf("loading: %w", inner)

	assert.Equal(t, CodeNotFound, CodeOf(outer))
	assert.True(t, HasCode(outer, CodeNotFound))
	assert.False(t, HasCode(outer, CodeConflict))
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "store failure")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "store failure")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "item not found", MessageOf(New(CodeNotFound, "item not found")))
	assert.Empty(t, MessageOf(New(CodeInternal, "db exploded")), "internal messages never reach clients")
	assert.Empty(t, MessageOf(errors.New("plain")))
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeConflict, http.StatusBadRequest},
		{CodeInvalidOperation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeNotFound, http.StatusNotFound},
		{CodeInternal, http.StatusInternalServerError},
		{Code("unknown"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToHTTPStatus(tt.code), string(tt.code))
	}
}
