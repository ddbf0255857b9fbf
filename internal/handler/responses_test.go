package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/TaskQuest_Go/internal/domain"
)

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"quest not found", domain.ErrQuestNotFound, http.StatusNotFound, ErrMsgQuestNotFoundError},
		{"wrapped task not found", fmt.Errorf("toggle: %w", domain.ErrTaskNotFound), http.StatusNotFound, ErrMsgTaskNotFoundError},
		{"character", domain.ErrCharacterNotFound, http.StatusNotFound, ErrMsgCharacterNotFoundError},
		{"attribute", domain.ErrAttributeNotFound, http.StatusNotFound, ErrMsgAttributeNotFoundError},
		{"boss exists", domain.ErrBossAlreadyExists, http.StatusConflict, ErrMsgBossExistsError},
		{"task completed", domain.ErrTaskCompleted, http.StatusConflict, ErrMsgTaskCompletedError},
		{"gold", domain.ErrInsufficientGold, http.StatusBadRequest, ErrMsgNotEnoughGoldError},
		{"invalid input echoes detail", fmt.Errorf("%w: name is required", domain.ErrInvalidInput), http.StatusBadRequest, "invalid input: name is required"},
		{"unknown hides detail", errors.New("pq: connection refused"), http.StatusInternalServerError, ErrMsgGenericServerError},
		{"nil", nil, http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := mapServiceError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, message)
		})
	}
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()

	respondJSON(w, http.StatusCreated, SuccessResponse{Message: "ok"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, `{"message":"ok"}`+"\n", w.Body.String())
}

func TestRespondJSON_EncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()

	respondJSON(w, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgGenericServerError)
}
