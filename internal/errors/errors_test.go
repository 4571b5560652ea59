package errors_test

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/ergolog/internal/errors"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperrors.AppError
		code   string
		status int
		msg    string
	}{
		{"not found", apperrors.NewNotFoundError("workout", 7), apperrors.ErrCodeNotFound, http.StatusNotFound, "workout not found: 7"},
		{"validation", apperrors.NewValidationError("distance", "must be greater than 0"), apperrors.ErrCodeValidation, http.StatusBadRequest, "validation failed for distance: must be greater than 0"},
		{"bad request", apperrors.NewBadRequestError("no file"), apperrors.ErrCodeBadRequest, http.StatusBadRequest, "no file"},
		{"conflict", apperrors.NewConflictError("cardio log", "abc"), apperrors.ErrCodeConflict, http.StatusConflict, "cardio log already exists: abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.msg, tt.err.Message)
			assert.Equal(t, tt.code+": "+tt.msg, tt.err.Error())
		})
	}
}

func TestValidationErrorCarriesField(t *testing.T) {
	err := apperrors.NewValidationError("workout_date", "use YYYY-MM-DD")
	assert.Equal(t, "workout_date", err.Field)
}

func TestInternalErrorUnwraps(t *testing.T) {
	cause := stderrors.New("disk full")
	err := apperrors.NewInternalError(cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")

	var appErr *apperrors.AppError
	require.True(t, stderrors.As(error(err), &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
}
