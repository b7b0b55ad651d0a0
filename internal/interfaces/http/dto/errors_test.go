package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		code   string
		want   string
		status int
	}{
		{"NOT_FOUND", ErrCodeNotFound, http.StatusNotFound},
		{"ALREADY_EXISTS", ErrCodeAlreadyExists, http.StatusConflict},
		{"INVALID_STATE", ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{"NOT_ENOUGH_STOCK", ErrCodeNotEnoughStock, http.StatusUnprocessableEntity},
		{"INVALID_INPUT", ErrCodeInvalidInput, http.StatusBadRequest},
		{"OPTIMISTIC_LOCK_ERROR", ErrCodeConflict, http.StatusConflict},
		{ErrCodeValidation, ErrCodeValidation, http.StatusBadRequest},
		{"SOMETHING_ELSE", ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := NormalizeErrorCode(tt.code)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.status, GetHTTPStatus(got))
		})
	}
}

func TestErrorResponse_JSON(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{{Field: "name", Message: "This field is required"}})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "ERR_VALIDATION", body["error"]["code"])
	assert.Equal(t, "req-1", body["error"]["request_id"])
	assert.Len(t, body["error"]["details"], 1)
}

func TestResult_JSON(t *testing.T) {
	raw, err := json.Marshal(NewResult([]string{"a"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":["a"]}`, string(raw))

	raw, err = json.Marshal(NewCountedResult([]string{"a", "b"}, 2))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":["a","b"],"count":2}`, string(raw))
}
