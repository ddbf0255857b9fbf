package handler

import (
	"net/http"

	"github.com/osse101/TaskQuest_Go/internal/character"
	"github.com/osse101/TaskQuest_Go/internal/domain"
)

// UpdateCharacterRequest patches the character. xp, gold and gems are
// deltas; hp, mana and streak are absolute.
type UpdateCharacterRequest struct {
	XP     *int64 `json:"xp,omitempty"`
	Gold   *int   `json:"gold,omitempty"`
	Gems   *int   `json:"gems,omitempty"`
	HP     *int   `json:"hp,omitempty" validate:"omitempty,gte=0"`
	Mana   *int   `json:"mana,omitempty" validate:"omitempty,gte=0"`
	Streak *int   `json:"streak,omitempty" validate:"omitempty,gte=0"`
}

// CharacterHandlers contains HTTP handlers for the character
type CharacterHandlers struct {
	service character.Service
	userID  string
}

// NewCharacterHandlers creates character handlers acting for userID
func NewCharacterHandlers(service character.Service, userID string) *CharacterHandlers {
	return &CharacterHandlers{service: service, userID: userID}
}

// HandleGet returns the character with its derived progression values,
// creating it on first use
// @Summary Get character
// @Tags character
// @Produce json
// @Success 200 {object} domain.CharacterSnapshot
// @Failure 500 {object} ErrorResponse
// @Router /character [get]
func (h *CharacterHandlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := h.service.Snapshot(r.Context(), h.userID)
		if err != nil {
			respondServiceError(w, r, "Get character", err)
			return
		}
		respondJSON(w, http.StatusOK, snapshot)
	}
}

// HandleUpdate applies a partial update. The response carries levelUp when
// the XP change raised the level.
// @Summary Update character
// @Tags character
// @Accept json
// @Produce json
// @Param request body UpdateCharacterRequest true "Fields to change"
// @Success 200 {object} domain.CharacterUpdateResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /character [patch]
func (h *CharacterHandlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateCharacterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update character"); err != nil {
			return
		}

		result, err := h.service.Update(r.Context(), h.userID, domain.CharacterUpdate{
			XP:     req.XP,
			Gold:   req.Gold,
			Gems:   req.Gems,
			HP:     req.HP,
			Mana:   req.Mana,
			Streak: req.Streak,
		})
		if err != nil {
			respondServiceError(w, r, "Update character", err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}
