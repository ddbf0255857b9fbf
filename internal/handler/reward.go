package handler

import (
	"net/http"
	"strings"

	"github.com/osse101/TaskQuest_Go/internal/domain"
	"github.com/osse101/TaskQuest_Go/internal/logger"
	"github.com/osse101/TaskQuest_Go/internal/reward"
)

// CreateRewardRequest represents the request body for adding a reward to the shop
type CreateRewardRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Icon        string  `json:"icon,omitempty" validate:"max=50"`
	GoldCost    int     `json:"goldCost" validate:"required,gt=0"`
	Category    string  `json:"category,omitempty" validate:"category"`
	DailyLimit  *int    `json:"dailyLimit,omitempty" validate:"omitempty,gte=0"`
}

// UpdateRewardRequest is a partial reward update. A dailyLimit of 0 removes the limit.
type UpdateRewardRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Icon        *string `json:"icon,omitempty" validate:"omitempty,max=50"`
	GoldCost    *int    `json:"goldCost,omitempty" validate:"omitempty,gt=0"`
	Category    *string `json:"category,omitempty" validate:"omitempty,category"`
	DailyLimit  *int    `json:"dailyLimit,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// RewardHandlers contains HTTP handlers for the reward shop
type RewardHandlers struct {
	service reward.Service
	userID  string
}

// NewRewardHandlers creates reward handlers acting for userID
func NewRewardHandlers(service reward.Service, userID string) *RewardHandlers {
	return &RewardHandlers{service: service, userID: userID}
}

// HandleList lists rewards with today's usage
// @Summary List rewards
// @Tags rewards
// @Produce json
// @Success 200 {array} domain.Reward
// @Router /rewards [get]
func (h *RewardHandlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rewards, err := h.service.ListRewards(r.Context(), h.userID)
		if err != nil {
			respondServiceError(w, r, "List rewards", err)
			return
		}
		respondJSON(w, http.StatusOK, rewards)
	}
}

// HandleCreate adds a reward to the shop
// @Summary Create reward
// @Tags rewards
// @Accept json
// @Produce json
// @Param request body CreateRewardRequest true "Reward"
// @Success 201 {object} domain.Reward
// @Failure 400 {object} ValidationErrorResponse
// @Router /rewards [post]
func (h *RewardHandlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRewardRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create reward"); err != nil {
			return
		}

		created, err := h.service.CreateReward(r.Context(), domain.CreateRewardInput{
			Name:        req.Name,
			Description: req.Description,
			Icon:        req.Icon,
			GoldCost:    req.GoldCost,
			Category:    strings.ToUpper(req.Category),
			DailyLimit:  req.DailyLimit,
		})
		if err != nil {
			respondServiceError(w, r, "Create reward", err)
			return
		}
		respondJSON(w, http.StatusCreated, created)
	}
}

// HandleGet returns one reward
// @Summary Get reward
// @Tags rewards
// @Produce json
// @Param id path string true "Reward ID"
// @Success 200 {object} domain.Reward
// @Failure 404 {object} ErrorResponse
// @Router /rewards/{id} [get]
func (h *RewardHandlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathID(r, w)
		if !ok {
			return
		}

		rw, err := h.service.GetReward(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get reward", err)
			return
		}
		respondJSON(w, http.StatusOK, rw)
	}
}

// HandleUpdate applies a partial reward update
// @Summary Update reward
// @Tags rewards
// @Accept json
// @Produce json
// @Param id path string true "Reward ID"
// @Param request body UpdateRewardRequest true "Fields to change"
// @Success 200 {object} domain.Reward
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /rewards/{id} [patch]
func (h *RewardHandlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathID(r, w)
		if !ok {
			return
		}

		var req UpdateRewardRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update reward"); err != nil {
			return
		}

		update := domain.RewardUpdate{
			Name:        req.Name,
			Description: req.Description,
			Icon:        req.Icon,
			GoldCost:    req.GoldCost,
			DailyLimit:  req.DailyLimit,
			IsActive:    req.IsActive,
		}
		if req.Category != nil {
			category := strings.ToUpper(*req.Category)
			update.Category = &category
		}

		updated, err := h.service.UpdateReward(r.Context(), id, update)
		if err != nil {
			respondServiceError(w, r, "Update reward", err)
			return
		}
		respondJSON(w, http.StatusOK, updated)
	}
}

// HandleDelete removes a reward and its redemption history
// @Summary Delete reward
// @Tags rewards
// @Produce json
// @Param id path string true "Reward ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /rewards/{id} [delete]
func (h *RewardHandlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathID(r, w)
		if !ok {
			return
		}

		if err := h.service.DeleteReward(r.Context(), id); err != nil {
			respondServiceError(w, r, "Delete reward", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRewardDeleted})
	}
}

// HandleRedeem spends gold on a reward
// @Summary Redeem reward
// @Tags rewards
// @Produce json
// @Param id path string true "Reward ID"
// @Success 200 {object} domain.RedeemResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /rewards/{id}/redeem [post]
func (h *RewardHandlers) HandleRedeem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathID(r, w)
		if !ok {
			return
		}

		result, err := h.service.Redeem(r.Context(), h.userID, id)
		if err != nil {
			respondServiceError(w, r, "Redeem reward", err)
			return
		}

		logger.FromContext(r.Context()).Info("Reward redeemed",
			"reward_id", id,
			"gold_spent", result.Redemption.GoldSpent,
			"gold_left", result.Gold)
		respondJSON(w, http.StatusOK, result)
	}
}
