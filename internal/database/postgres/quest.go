package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/TaskQuest_Go/internal/domain"
	"github.com/osse101/TaskQuest_Go/internal/repository"
)

// QuestRepository implements repository.Quest
type QuestRepository struct {
	db *pgxpool.Pool
}

// NewQuestRepository creates a new QuestRepository
func NewQuestRepository(db *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{db: db}
}

// ListQuests returns a character's quests, newest first, with their tasks
func (r *QuestRepository) ListQuests(ctx context.Context, characterID string, filter domain.QuestFilter) ([]domain.Quest, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + questColumns + ` FROM quests WHERE character_id = $1`)

	args := []interface{}{characterID}
	argNum := 2

	if filter.Status != "" {
		fmt.Fprintf(&queryBuilder, " AND status = $%d", argNum)
		args = append(args, string(filter.Status))
		argNum++
	}

	if filter.Type != "" {
		fmt.Fprintf(&queryBuilder, " AND type = $%d", argNum)
		args = append(args, string(filter.Type))
	}

	queryBuilder.WriteString(" ORDER BY type ASC, created_at DESC")

	return r.queryQuests(ctx, queryBuilder.String(), args...)
}

// GetQuest returns a quest with its tasks, or nil if it does not exist
func (r *QuestRepository) GetQuest(ctx context.Context, questID string) (*domain.Quest, error) {
	return getQuest(ctx, r.db, questID, false)
}

// CreateQuest inserts a quest and its tasks. IDs are assigned when empty.
func (r *QuestRepository) CreateQuest(ctx context.Context, q *domain.Quest) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	q.ID = newID(q.ID)
	query := `
		INSERT INTO quests (id, character_id, title, description, type, difficulty, status, deadline,
			xp_reward, gold_reward, is_daily, is_boss_battle, boss_name, boss_hp, boss_max_hp,
			billing_type, budget_amount, hourly_rate, estimated_hours, hours_worked, is_paid, paid_at,
			completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19,
			$20, $21, $22, $23)
		RETURNING created_at, updated_at
	`
	err = tx.QueryRow(ctx, query,
		q.ID, q.CharacterID, q.Title, q.Description, string(q.Type), q.Difficulty, string(q.Status), q.Deadline,
		q.XPReward, q.GoldReward, q.IsDaily, q.IsBossBattle, q.BossName, q.BossHP, q.BossMaxHP,
		string(q.BillingType), q.BudgetAmount, q.HourlyRate, q.EstimatedHours, q.HoursWorked, q.IsPaid, q.PaidAt,
		q.CompletedAt,
	).Scan(&q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertQuest, err)
	}

	for i := range q.Tasks {
		q.Tasks[i].QuestID = q.ID
		if err := insertTask(ctx, tx, &q.Tasks[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// UpdateQuest writes the editable quest fields
func (r *QuestRepository) UpdateQuest(ctx context.Context, q *domain.Quest) error {
	query := `
		UPDATE quests
		SET title = $2, description = $3, status = $4, deadline = $5, billing_type = $6,
			budget_amount = $7, hourly_rate = $8, estimated_hours = $9, hours_worked = $10,
			is_paid = $11, paid_at = $12, completed_at = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		q.ID, q.Title, q.Description, string(q.Status), q.Deadline, string(q.BillingType),
		q.BudgetAmount, q.HourlyRate, q.EstimatedHours, q.HoursWorked,
		q.IsPaid, q.PaidAt, q.CompletedAt,
	).Scan(&q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateQuest, err)
	}
	return nil
}

// DeleteQuest removes a quest; its tasks cascade
func (r *QuestRepository) DeleteQuest(ctx context.Context, questID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM quests WHERE id = $1`, questID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteQuest, err)
	}
	return nil
}

// GetCompletedQuests returns one page of completed quests, most recent first,
// and the total number of completed quests.
func (r *QuestRepository) GetCompletedQuests(ctx context.Context, characterID string, limit, offset int) ([]domain.Quest, int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM quests WHERE character_id = $1 AND status = $2`,
		characterID, string(domain.QuestStatusCompleted),
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountQuests, err)
	}

	query := `
		SELECT ` + questColumns + `
		FROM quests
		WHERE character_id = $1 AND status = $2
		ORDER BY completed_at DESC NULLS LAST, created_at DESC
		LIMIT $3 OFFSET $4
	`
	quests, err := r.queryQuests(ctx, query, characterID, string(domain.QuestStatusCompleted), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return quests, total, nil
}

// GetTask returns a task, or nil if it does not exist
func (r *QuestRepository) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	return getTask(ctx, r.db, taskID, false)
}

// AddTask appends a task after the quest's current last task and refreshes
// the quest's reward totals.
func (r *QuestRepository) AddTask(ctx context.Context, task *domain.Task) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT COALESCE(MAX(sort_order), 0) + 1 FROM tasks WHERE quest_id = $1`,
			task.QuestID,
		).Scan(&task.Order)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToGetNextTaskOrder, err)
		}

		if err := insertTask(ctx, tx, task); err != nil {
			return err
		}
		return recomputeQuestRewards(ctx, tx, task.QuestID)
	})
}

// UpdateTask writes the editable task fields and refreshes the quest's reward totals
func (r *QuestRepository) UpdateTask(ctx context.Context, task *domain.Task) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE tasks
			SET title = $2, description = $3, xp_reward = $4, gold_reward = $5,
				attribute_boost = $6, attribute_xp = $7
			WHERE id = $1
		`
		_, err := tx.Exec(ctx, query,
			task.ID, task.Title, task.Description, task.XPReward, task.GoldReward,
			task.AttributeBoost, task.AttributeXP,
		)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateTask, err)
		}
		return recomputeQuestRewards(ctx, tx, task.QuestID)
	})
}

// DeleteTask removes a task and refreshes the quest's reward totals
func (r *QuestRepository) DeleteTask(ctx context.Context, task *domain.Task) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, task.ID); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteTask, err)
		}
		return recomputeQuestRewards(ctx, tx, task.QuestID)
	})
}

// BeginTx starts a transaction and returns a QuestTx
func (r *QuestRepository) BeginTx(ctx context.Context) (repository.QuestTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &questTx{characterTx: characterTx{pgTx: pgTx{tx: tx}}}, nil
}

func (r *QuestRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (r *QuestRepository) queryQuests(ctx context.Context, query string, args ...interface{}) ([]domain.Quest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryQuests, err)
	}
	defer rows.Close()

	quests := []domain.Quest{}
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryQuests, err)
		}
		quests = append(quests, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryQuests, err)
	}
	rows.Close()

	if err := attachTasks(ctx, r.db, quests); err != nil {
		return nil, err
	}
	return quests, nil
}

// questTx implements repository.QuestTx
type questTx struct {
	characterTx
}

func (t *questTx) GetTaskForUpdate(ctx context.Context, taskID string) (*domain.Task, error) {
	return getTask(ctx, t.tx, taskID, true)
}

func (t *questTx) GetQuestForUpdate(ctx context.Context, questID string) (*domain.Quest, error) {
	return getQuest(ctx, t.tx, questID, true)
}

func (t *questTx) UpdateTaskCompletion(ctx context.Context, task *domain.Task) error {
	_, err := t.tx.Exec(ctx, `UPDATE tasks SET completed = $2, completed_at = $3 WHERE id = $1`,
		task.ID, task.Completed, task.CompletedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateTaskCompletion, err)
	}
	return nil
}

func (t *questTx) UpdateQuestProgress(ctx context.Context, q *domain.Quest) error {
	query := `
		UPDATE quests
		SET status = $2, completed_at = $3, boss_hp = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := t.tx.QueryRow(ctx, query, q.ID, string(q.Status), q.CompletedAt, q.BossHP).Scan(&q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateQuestProgress, err)
	}
	return nil
}

func getQuest(ctx context.Context, db querier, questID string, forUpdate bool) (*domain.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	q, err := scanQuest(db.QueryRow(ctx, query, questID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetQuest, err)
	}

	quests := []domain.Quest{*q}
	if err := attachTasks(ctx, db, quests); err != nil {
		return nil, err
	}
	return &quests[0], nil
}

func getTask(ctx context.Context, db querier, taskID string, forUpdate bool) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	task, err := scanTask(db.QueryRow(ctx, query, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetTask, err)
	}
	return task, nil
}

func insertTask(ctx context.Context, db querier, task *domain.Task) error {
	task.ID = newID(task.ID)
	query := `
		INSERT INTO tasks (id, quest_id, title, description, xp_reward, gold_reward, attribute_boost,
			attribute_xp, sort_order, completed, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`
	err := db.QueryRow(ctx, query,
		task.ID, task.QuestID, task.Title, task.Description, task.XPReward, task.GoldReward,
		task.AttributeBoost, task.AttributeXP, task.Order, task.Completed, task.CompletedAt,
	).Scan(&task.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertTask, err)
	}
	return nil
}

// recomputeQuestRewards sets a quest's reward totals to the sum of its tasks
func recomputeQuestRewards(ctx context.Context, db querier, questID string) error {
	query := `
		UPDATE quests
		SET xp_reward = COALESCE((SELECT SUM(xp_reward) FROM tasks WHERE quest_id = $1), 0),
			gold_reward = COALESCE((SELECT SUM(gold_reward) FROM tasks WHERE quest_id = $1), 0),
			updated_at = NOW()
		WHERE id = $1
	`
	if _, err := db.Exec(ctx, query, questID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRecomputeRewards, err)
	}
	return nil
}

// attachTasks loads the tasks of every quest in one query, ordered by position
func attachTasks(ctx context.Context, db querier, quests []domain.Quest) error {
	if len(quests) == 0 {
		return nil
	}

	ids := make([]string, len(quests))
	index := make(map[string]int, len(quests))
	for i := range quests {
		ids[i] = quests[i].ID
		index[quests[i].ID] = i
		quests[i].Tasks = []domain.Task{}
	}

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE quest_id = ANY($1)
		ORDER BY sort_order ASC, created_at ASC
	`
	rows, err := db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToQueryTasks, err)
	}
	defer rows.Close()

	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToQueryTasks, err)
		}
		if i, ok := index[task.QuestID]; ok {
			quests[i].Tasks = append(quests[i].Tasks, *task)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToQueryTasks, err)
	}
	return nil
}

func scanQuest(row pgx.Row) (*domain.Quest, error) {
	var (
		q                          domain.Quest
		questType, status, billing string
	)
	err := row.Scan(
		&q.ID, &q.CharacterID, &q.Title, &q.Description, &questType, &q.Difficulty, &status, &q.Deadline,
		&q.XPReward, &q.GoldReward, &q.IsDaily, &q.IsBossBattle, &q.BossName, &q.BossHP, &q.BossMaxHP,
		&billing, &q.BudgetAmount, &q.HourlyRate, &q.EstimatedHours, &q.HoursWorked, &q.IsPaid, &q.PaidAt,
		&q.CompletedAt, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	q.Type = domain.QuestType(questType)
	q.Status = domain.QuestStatus(status)
	q.BillingType = domain.BillingType(billing)
	return &q, nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.QuestID, &t.Title, &t.Description, &t.XPReward, &t.GoldReward, &t.AttributeBoost,
		&t.AttributeXP, &t.Order, &t.Completed, &t.CompletedAt, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
