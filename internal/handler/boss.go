package handler

import (
	"net/http"

	"github.com/osse101/TaskQuest_Go/internal/boss"
	"github.com/osse101/TaskQuest_Go/internal/domain"
)

// CreateBossRequest represents the request body for registering a boss
type CreateBossRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Difficulty  string  `json:"difficulty,omitempty" validate:"difficulty"`
	MaxHP       int     `json:"maxHp,omitempty" validate:"gte=0"`
}

// BossAttemptRequest records the outcome of a fight
type BossAttemptRequest struct {
	Defeated    bool    `json:"defeated"`
	TimeSpent   *int    `json:"timeSpent,omitempty" validate:"omitempty,gte=0"`
	DamageDealt *int    `json:"damageDealt,omitempty" validate:"omitempty,gte=0"`
	QuestID     *string `json:"questId,omitempty" validate:"omitempty,max=64"`
}

// BossAttemptResponse is the boss after an attempt together with the attempt
type BossAttemptResponse struct {
	Boss    *domain.Boss        `json:"boss"`
	Attempt *domain.BossAttempt `json:"attempt"`
}

// BossHandlers contains HTTP handlers for the boss registry
type BossHandlers struct {
	service boss.Service
	userID  string
}

// NewBossHandlers creates boss handlers acting for userID
func NewBossHandlers(service boss.Service, userID string) *BossHandlers {
	return &BossHandlers{service: service, userID: userID}
}

// HandleList lists bosses with their most recent attempts
// @Summary List bosses
// @Tags bosses
// @Produce json
// @Success 200 {array} domain.Boss
// @Router /bosses [get]
func (h *BossHandlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bosses, err := h.service.ListBosses(r.Context(), h.userID)
		if err != nil {
			respondServiceError(w, r, "List bosses", err)
			return
		}
		respondJSON(w, http.StatusOK, bosses)
	}
}

// HandleCreate registers a boss
// @Summary Create boss
// @Tags bosses
// @Accept json
// @Produce json
// @Param request body CreateBossRequest true "Boss"
// @Success 201 {object} domain.Boss
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /bosses [post]
func (h *BossHandlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateBossRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create boss"); err != nil {
			return
		}

		b, err := h.service.CreateBoss(r.Context(), h.userID, domain.CreateBossInput{
			Name:        req.Name,
			Description: req.Description,
			Difficulty:  req.Difficulty,
			MaxHP:       req.MaxHP,
		})
		if err != nil {
			respondServiceError(w, r, "Create boss", err)
			return
		}
		respondJSON(w, http.StatusCreated, b)
	}
}

// HandleGet returns a boss with its full attempt log
// @Summary Get boss
// @Tags bosses
// @Produce json
// @Param id path string true "Boss ID"
// @Success 200 {object} domain.Boss
// @Failure 404 {object} ErrorResponse
// @Router /bosses/{id} [get]
func (h *BossHandlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathID(r, w)
		if !ok {
			return
		}

		b, err := h.service.GetBoss(r.Context(), h.userID, id)
		if err != nil {
			respondServiceError(w, r, "Get boss", err)
			return
		}
		respondJSON(w, http.StatusOK, b)
	}
}

// HandleRecordAttempt records a fight against the boss
// @Summary Record boss attempt
// @Tags bosses
// @Accept json
// @Produce json
// @Param id path string true "Boss ID"
// @Param request body BossAttemptRequest true "Attempt"
// @Success 200 {object} BossAttemptResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /bosses/{id} [patch]
func (h *BossHandlers) HandleRecordAttempt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathID(r, w)
		if !ok {
			return
		}

		var req BossAttemptRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Record boss attempt"); err != nil {
			return
		}

		b, attempt, err := h.service.RecordAttempt(r.Context(), h.userID, id, domain.BossAttemptInput{
			Defeated:    req.Defeated,
			TimeSpent:   req.TimeSpent,
			DamageDealt: req.DamageDealt,
			QuestID:     req.QuestID,
		})
		if err != nil {
			respondServiceError(w, r, "Record boss attempt", err)
			return
		}
		respondJSON(w, http.StatusOK, BossAttemptResponse{Boss: b, Attempt: attempt})
	}
}

// HandleDelete removes a boss and its attempts
// @Summary Delete boss
// @Tags bosses
// @Produce json
// @Param id path string true "Boss ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /bosses/{id} [delete]
func (h *BossHandlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathID(r, w)
		if !ok {
			return
		}

		if err := h.service.DeleteBoss(r.Context(), h.userID, id); err != nil {
			respondServiceError(w, r, "Delete boss", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgBossDeleted})
	}
}
