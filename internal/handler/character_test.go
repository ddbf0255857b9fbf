package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TaskQuest_Go/internal/domain"
)

func TestCharacterHandlers_Get(t *testing.T) {
	svc := &MockCharacterService{}
	snapshot := &domain.CharacterSnapshot{
		Character:      &domain.Character{ID: "char-1", Level: 3, Gold: 40},
		LevelProgress:  25,
		XPForNextLevel: 519,
	}
	svc.On("Snapshot", mock.Anything, testUserID).Return(snapshot, nil)

	w := serve(NewCharacterHandlers(svc, testUserID).HandleGet(), newRequest(t, "GET", "/api/v1/character", "", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var got domain.CharacterSnapshot
	decodeBody(t, w, &got)
	assert.Equal(t, 3, got.Character.Level)
	assert.Equal(t, 25, got.LevelProgress)
	svc.AssertExpectations(t)
}

func TestCharacterHandlers_Get_ServiceError(t *testing.T) {
	svc := &MockCharacterService{}
	svc.On("Snapshot", mock.Anything, testUserID).Return(nil, assert.AnError)

	w := serve(NewCharacterHandlers(svc, testUserID).HandleGet(), newRequest(t, "GET", "/api/v1/character", "", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgGenericServerError)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestCharacterHandlers_Update(t *testing.T) {
	InitValidator()

	t.Run("passes deltas and absolutes through", func(t *testing.T) {
		svc := &MockCharacterService{}
		xp := int64(150)
		gold := -20
		hp := 80
		svc.On("Update", mock.Anything, testUserID, domain.CharacterUpdate{XP: &xp, Gold: &gold, HP: &hp}).
			Return(&domain.CharacterUpdateResult{
				Character: &domain.Character{ID: "char-1", Level: 2, Gold: 30, HP: 80},
				LevelUp:   &domain.LevelUp{OldLevel: 1, NewLevel: 2, NewTitle: "Novato Digital"},
			}, nil)

		body := `{"xp":150,"gold":-20,"hp":80}`
		w := serve(NewCharacterHandlers(svc, testUserID).HandleUpdate(), newRequest(t, "PATCH", "/api/v1/character", "", body))

		assert.Equal(t, http.StatusOK, w.Code)
		var got domain.CharacterUpdateResult
		decodeBody(t, w, &got)
		require.NotNil(t, got.Character)
		assert.Equal(t, 2, got.Character.Level)
		require.NotNil(t, got.LevelUp)
		assert.Equal(t, domain.LevelUp{OldLevel: 1, NewLevel: 2, NewTitle: "Novato Digital"}, *got.LevelUp)
		svc.AssertExpectations(t)
	})

	t.Run("no level change omits levelUp", func(t *testing.T) {
		svc := &MockCharacterService{}
		gold := 5
		svc.On("Update", mock.Anything, testUserID, domain.CharacterUpdate{Gold: &gold}).
			Return(&domain.CharacterUpdateResult{Character: &domain.Character{ID: "char-1", Level: 1, Gold: 45}}, nil)

		w := serve(NewCharacterHandlers(svc, testUserID).HandleUpdate(), newRequest(t, "PATCH", "/api/v1/character", "", `{"gold":5}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "levelUp")
	})

	t.Run("negative hp rejected", func(t *testing.T) {
		svc := &MockCharacterService{}

		w := serve(NewCharacterHandlers(svc, testUserID).HandleUpdate(), newRequest(t, "PATCH", "/api/v1/character", "", `{"hp":-1}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"hp"`)
		svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := &MockCharacterService{}

		w := serve(NewCharacterHandlers(svc, testUserID).HandleUpdate(), newRequest(t, "PATCH", "/api/v1/character", "", `{"xp":`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidRequest)
	})
}
