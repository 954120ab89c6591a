package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"validation", NewValidationError("amount must be positive"), KindValidation},
		{"forbidden", NewForbiddenError("only founders"), KindForbidden},
		{"generic not found", NewResourceNotFoundError("gone"), KindNotFound},
		{"round not found wrapped", fmt.Errorf("open: %w", ErrRoundNotFound), KindNotFound},
		{"startup not found", ErrStartupNotFound, KindNotFound},
		{"conflict", NewConflictError("dup"), KindConflict},
		{"email exists", ErrEmailAlreadyExists, KindConflict},
		{"credentials", ErrInvalidCredentials, KindUnauthorized},
		{"anything else", errors.New("connection reset"), KindUnexpected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestCustomError_MessageAndDetails(t *testing.T) {
	err := fmt.Errorf("service: %w", NewForbiddenError("only registered investors may invest").
		WithDetails(map[string]interface{}{"userId": int64(3)}))

	msg, ok := MessageOf(err)
	assert.True(t, ok)
	assert.Equal(t, "only registered investors may invest", msg)
	assert.Equal(t, int64(3), DetailsOf(err)["userId"])
	assert.True(t, errors.Is(err, ErrPermissionDenied))

	_, ok = MessageOf(errors.New("plain"))
	assert.False(t, ok)
	assert.Nil(t, DetailsOf(errors.New("plain")))
}

func TestCustomError_ErrorFallsBackToCause(t *testing.T) {
	assert.Equal(t, "conflict", (&CustomError{Err: ErrConflict}).Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
}
