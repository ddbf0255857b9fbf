package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/osse101/TaskQuest_Go/internal/domain"
	"github.com/osse101/TaskQuest_Go/internal/logger"
	"github.com/osse101/TaskQuest_Go/internal/quest"
)

// QuestStatusAll disables the status filter of the quest list
const QuestStatusAll = "ALL"

// QuestTaskRequest is a task created with its quest
type QuestTaskRequest struct {
	Title          string  `json:"title" validate:"required,max=200"`
	Description    string  `json:"description,omitempty" validate:"max=2000"`
	AttributeBoost *string `json:"attributeBoost,omitempty" validate:"omitempty,attribute"`
}

// CreateQuestRequest represents the request body for creating a quest
type CreateQuestRequest struct {
	Title          string             `json:"title" validate:"required,max=200"`
	Description    string             `json:"description,omitempty" validate:"max=2000"`
	Type           string             `json:"type,omitempty" validate:"questtype"`
	Difficulty     string             `json:"difficulty,omitempty" validate:"difficulty"`
	Deadline       *time.Time         `json:"deadline,omitempty"`
	Tasks          []QuestTaskRequest `json:"tasks" validate:"max=100,dive"`
	IsBossBattle   bool               `json:"isBossBattle"`
	BossName       *string            `json:"bossName,omitempty" validate:"omitempty,max=100"`
	BossHP         *int               `json:"bossHp,omitempty" validate:"omitempty,gt=0"`
	BillingType    string             `json:"billingType,omitempty" validate:"billingtype"`
	BudgetAmount   *float64           `json:"budgetAmount,omitempty" validate:"omitempty,gte=0"`
	HourlyRate     *float64           `json:"hourlyRate,omitempty" validate:"omitempty,gte=0"`
	EstimatedHours *float64           `json:"estimatedHours,omitempty" validate:"omitempty,gte=0"`
	HoursWorked    *float64           `json:"hoursWorked,omitempty" validate:"omitempty,gte=0"`
}

// UpdateQuestRequest represents a partial quest update
type UpdateQuestRequest struct {
	Title          *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description    *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Status         *string    `json:"status,omitempty" validate:"omitempty,queststatus"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	BillingType    *string    `json:"billingType,omitempty" validate:"omitempty,billingtype"`
	BudgetAmount   *float64   `json:"budgetAmount,omitempty" validate:"omitempty,gte=0"`
	HourlyRate     *float64   `json:"hourlyRate,omitempty" validate:"omitempty,gte=0"`
	EstimatedHours *float64   `json:"estimatedHours,omitempty" validate:"omitempty,gte=0"`
	HoursWorked    *float64   `json:"hoursWorked,omitempty" validate:"omitempty,gte=0"`
	IsPaid         *bool      `json:"isPaid,omitempty"`
}

// AddTaskRequest appends a task to a quest
type AddTaskRequest struct {
	Title          string  `json:"title" validate:"required,max=200"`
	Description    string  `json:"description,omitempty" validate:"max=2000"`
	XPReward       *int    `json:"xpReward,omitempty" validate:"omitempty,gte=0"`
	GoldReward     *int    `json:"goldReward,omitempty" validate:"omitempty,gte=0"`
	AttributeBoost *string `json:"attributeBoost,omitempty" validate:"omitempty,attribute"`
	AttributeXP    *int    `json:"attributeXP,omitempty" validate:"omitempty,gte=0"`
}

// UpdateTaskRequest edits a task. An empty attributeBoost clears it.
type UpdateTaskRequest struct {
	Title          *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description    *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	XPReward       *int    `json:"xpReward,omitempty" validate:"omitempty,gte=0"`
	GoldReward     *int    `json:"goldReward,omitempty" validate:"omitempty,gte=0"`
	AttributeBoost *string `json:"attributeBoost,omitempty" validate:"omitempty,attribute"`
	AttributeXP    *int    `json:"attributeXP,omitempty" validate:"omitempty,gte=0"`
}

// QuestHandlers contains HTTP handlers for quests and their tasks
type QuestHandlers struct {
	service quest.Service
	userID  string
}

// NewQuestHandlers creates quest handlers acting for userID
func NewQuestHandlers(service quest.Service, userID string) *QuestHandlers {
	return &QuestHandlers{service: service, userID: userID}
}

// HandleList lists quests, ACTIVE ones unless ?status says otherwise
// @Summary List quests
// @Tags quests
// @Produce json
// @Param status query string false "ACTIVE (default), COMPLETED, FAILED, ABANDONED or ALL"
// @Param type query string false "Quest type"
// @Success 200 {array} domain.Quest
// @Failure 400 {object} ErrorResponse
// @Router /quests [get]
func (h *QuestHandlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := strings.ToUpper(GetOptionalQueryParam(r, "status", string(domain.QuestStatusActive)))
		questType := strings.ToUpper(r.URL.Query().Get("type"))

		filter := domain.QuestFilter{Type: domain.QuestType(questType)}
		if status != QuestStatusAll {
			filter.Status = domain.QuestStatus(status)
		}

		quests, err := h.service.ListQuests(r.Context(), h.userID, filter)
		if err != nil {
			respondServiceError(w, r, "List quests", err)
			return
		}
		respondJSON(w, http.StatusOK, quests)
	}
}

// HandleHistory pages through completed quests
// @Summary Quest history
// @Tags quests
// @Produce json
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Offset"
// @Success 200 {object} domain.QuestHistory
// @Router /quests/history [get]
func (h *QuestHandlers) HandleHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := GetIntQueryParam(r, w, "limit", domain.DefaultHistoryLimit)
		if !ok {
			return
		}
		offset, ok := GetIntQueryParam(r, w, "offset", 0)
		if !ok {
			return
		}

		history, err := h.service.History(r.Context(), h.userID, limit, offset)
		if err != nil {
			respondServiceError(w, r, "Quest history", err)
			return
		}
		respondJSON(w, http.StatusOK, history)
	}
}

// HandleCreate creates a quest with its tasks
// @Summary Create quest
// @Tags quests
// @Accept json
// @Produce json
// @Param request body CreateQuestRequest true "Quest"
// @Success 201 {object} domain.Quest
// @Failure 400 {object} ValidationErrorResponse
// @Router /quests [post]
func (h *QuestHandlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateQuestRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create quest"); err != nil {
			return
		}

		tasks := make([]domain.QuestTaskInput, 0, len(req.Tasks))
		for _, t := range req.Tasks {
			tasks = append(tasks, domain.QuestTaskInput{
				Title:          t.Title,
				Description:    t.Description,
				AttributeBoost: t.AttributeBoost,
			})
		}

		q, err := h.service.CreateQuest(r.Context(), h.userID, domain.CreateQuestInput{
			Title:          req.Title,
			Description:    req.Description,
			Type:           domain.QuestType(strings.ToUpper(req.Type)),
			Difficulty:     req.Difficulty,
			Deadline:       req.Deadline,
			Tasks:          tasks,
			IsBossBattle:   req.IsBossBattle,
			BossName:       req.BossName,
			BossHP:         req.BossHP,
			BillingType:    domain.BillingType(strings.ToUpper(req.BillingType)),
			BudgetAmount:   req.BudgetAmount,
			HourlyRate:     req.HourlyRate,
			EstimatedHours: req.EstimatedHours,
			HoursWorked:    req.HoursWorked,
		})
		if err != nil {
			respondServiceError(w, r, "Create quest", err)
			return
		}

		logger.FromContext(r.Context()).Info("Quest created", "quest_id", q.ID, "tasks", len(q.Tasks))
		respondJSON(w, http.StatusCreated, q)
	}
}

// HandleGet returns one quest with its tasks
// @Summary Get quest
// @Tags quests
// @Produce json
// @Param id path string true "Quest ID"
// @Success 200 {object} domain.Quest
// @Failure 404 {object} ErrorResponse
// @Router /quests/{id} [get]
func (h *QuestHandlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathID(r, w)
		if !ok {
			return
		}

		q, err := h.service.GetQuest(r.Context(), h.userID, id)
		if err != nil {
			respondServiceError(w, r, "Get quest", err)
			return
		}
		respondJSON(w, http.StatusOK, q)
	}
}

// HandleUpdate applies a partial quest update
// @Summary Update quest
// @Tags quests
// @Accept json
// @Produce json
// @Param id path string true "Quest ID"
// @Param request body UpdateQuestRequest true "Fields to change"
// @Success 200 {object} domain.Quest
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /quests/{id} [patch]
func (h *QuestHandlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathID(r, w)
		if !ok {
			return
		}

		var req UpdateQuestRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update quest"); err != nil {
			return
		}

		update := domain.QuestUpdate{
			Title:          req.Title,
			Description:    req.Description,
			Deadline:       req.Deadline,
			BudgetAmount:   req.BudgetAmount,
			HourlyRate:     req.HourlyRate,
			EstimatedHours: req.EstimatedHours,
			HoursWorked:    req.HoursWorked,
			IsPaid:         req.IsPaid,
		}
		if req.Status != nil {
			status := domain.QuestStatus(strings.ToUpper(*req.Status))
			update.Status = &status
		}
		if req.BillingType != nil {
			billing := domain.BillingType(strings.ToUpper(*req.BillingType))
			update.BillingType = &billing
		}

		q, err := h.service.UpdateQuest(r.Context(), h.userID, id, update)
		if err != nil {
			respondServiceError(w, r, "Update quest", err)
			return
		}
		respondJSON(w, http.StatusOK, q)
	}
}

// HandleDelete removes a quest and its tasks
// @Summary Delete quest
// @Tags quests
// @Produce json
// @Param id path string true "Quest ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /quests/{id} [delete]
func (h *QuestHandlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathID(r, w)
		if !ok {
			return
		}

		if err := h.service.DeleteQuest(r.Context(), h.userID, id); err != nil {
			respondServiceError(w, r, "Delete quest", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgQuestDeleted})
	}
}

// HandleAddTask appends a task to a quest
// @Summary Add task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Quest ID"
// @Param request body AddTaskRequest true "Task"
// @Success 201 {object} domain.Task
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /quests/{id}/tasks [post]
func (h *QuestHandlers) HandleAddTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathID(r, w)
		if !ok {
			return
		}

		var req AddTaskRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add task"); err != nil {
			return
		}

		task, err := h.service.AddTask(r.Context(), h.userID, id, domain.NewTaskInput{
			Title:          req.Title,
			Description:    req.Description,
			XPReward:       req.XPReward,
			GoldReward:     req.GoldReward,
			AttributeBoost: req.AttributeBoost,
			AttributeXP:    req.AttributeXP,
		})
		if err != nil {
			respondServiceError(w, r, "Add task", err)
			return
		}
		respondJSON(w, http.StatusCreated, task)
	}
}

// HandleUpdateTask edits a task
// @Summary Edit task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to change"
// @Success 200 {object} domain.Task
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [put]
func (h *QuestHandlers) HandleUpdateTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathID(r, w)
		if !ok {
			return
		}

		var req UpdateTaskRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update task"); err != nil {
			return
		}

		task, err := h.service.UpdateTask(r.Context(), h.userID, id, domain.TaskUpdate{
			Title:          req.Title,
			Description:    req.Description,
			XPReward:       req.XPReward,
			GoldReward:     req.GoldReward,
			AttributeBoost: req.AttributeBoost,
			AttributeXP:    req.AttributeXP,
		})
		if err != nil {
			respondServiceError(w, r, "Update task", err)
			return
		}
		respondJSON(w, http.StatusOK, task)
	}
}

// HandleToggleTask completes or uncompletes a task and reports every
// progression change it caused
// @Summary Toggle task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} domain.ToggleResult
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [patch]
func (h *QuestHandlers) HandleToggleTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathID(r, w)
		if !ok {
			return
		}

		result, err := h.service.ToggleTask(r.Context(), h.userID, id)
		if err != nil {
			respondServiceError(w, r, "Toggle task", err)
			return
		}

		logger.FromContext(r.Context()).Info("Task toggled",
			"task_id", id,
			"completed", result.Task.Completed,
			"xp", result.Rewards.XP)
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleDeleteTask removes an incomplete task
// @Summary Delete task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /tasks/{id} [delete]
func (h *QuestHandlers) HandleDeleteTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathID(r, w)
		if !ok {
			return
		}

		if err := h.service.DeleteTask(r.Context(), h.userID, id); err != nil {
			respondServiceError(w, r, "Delete task", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTaskDeleted})
	}
}
