package quest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TaskQuest_Go/internal/concurrency"
	"github.com/osse101/TaskQuest_Go/internal/domain"
	"github.com/osse101/TaskQuest_Go/internal/progression"
)

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

const (
	testUserID      = "user-1"
	testCharacterID = "char-1"
)

type fixture struct {
	repo  *fakeRepository
	chars *stubCharacters
	pub   *recordingPublisher
	svc   *service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := newFakeRepository()
	attrs := make([]domain.Attribute, 0, len(domain.DefaultAttributes))
	for _, def := range domain.DefaultAttributes {
		attrs = append(attrs, domain.Attribute{
			ID:          "attr-" + def.Name,
			CharacterID: testCharacterID,
			Name:        def.Name,
			DisplayName: def.DisplayName,
			Level:       1,
		})
	}
	repo.addCharacter(&domain.Character{
		ID:         testCharacterID,
		UserID:     testUserID,
		Name:       domain.DefaultCharacterName,
		Title:      progression.TitleNovice,
		Level:      1,
		Gold:       100,
		HP:         50,
		MaxHP:      100,
		Mana:       20,
		MaxMana:    50,
		Attributes: attrs,
	})

	chars := &stubCharacters{repo: repo, characterID: testCharacterID}
	pub := &recordingPublisher{}
	svc := NewService(repo, chars, nil, concurrency.NewLockManager(), pub).(*service)
	svc.now = func() time.Time { return fixedNow }

	return &fixture{repo: repo, chars: chars, pub: pub, svc: svc}
}

func (f *fixture) createQuest(t *testing.T, input domain.CreateQuestInput) *domain.Quest {
	t.Helper()
	q, err := f.svc.CreateQuest(context.Background(), testUserID, input)
	require.NoError(t, err)
	return q
}

func taskInputs(titles ...string) []domain.QuestTaskInput {
	out := make([]domain.QuestTaskInput, 0, len(titles))
	for _, title := range titles {
		out = append(out, domain.QuestTaskInput{Title: title})
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func TestCreateQuest_ScalesRewardsByDifficulty(t *testing.T) {
	f := newFixture(t)

	q := f.createQuest(t, domain.CreateQuestInput{
		Title:      "  Launch portfolio  ",
		Difficulty: "hard",
		Tasks:      taskInputs("Design", "Build", "Deploy"),
	})

	assert.Equal(t, "Launch portfolio", q.Title)
	assert.Equal(t, "HARD", q.Difficulty)
	assert.Equal(t, domain.QuestTypeSide, q.Type)
	assert.Equal(t, domain.QuestStatusActive, q.Status)
	assert.Equal(t, domain.BillingFixed, q.BillingType)
	assert.Equal(t, 225, q.XPReward, "floor(50 * 3 * 1.5)")
	assert.Equal(t, 90, q.GoldReward, "floor(20 * 3 * 1.5)")

	require.Len(t, q.Tasks, 3)
	for i, task := range q.Tasks {
		assert.Equal(t, 30, task.XPReward)
		assert.Equal(t, 15, task.GoldReward)
		assert.Equal(t, i, task.Order)
		assert.Equal(t, q.ID, task.QuestID)
	}
}

func TestCreateQuest_Defaults(t *testing.T) {
	f := newFixture(t)

	q := f.createQuest(t, domain.CreateQuestInput{Title: "Inbox zero", Tasks: taskInputs("Triage")})
	assert.Equal(t, "NORMAL", q.Difficulty)
	assert.Equal(t, 20, q.Tasks[0].XPReward)
	assert.Equal(t, 10, q.Tasks[0].GoldReward)
	assert.Equal(t, 50, q.XPReward)
	assert.Equal(t, 20, q.GoldReward)
	assert.False(t, q.IsDaily)

	trivial := f.createQuest(t, domain.CreateQuestInput{
		Title:      "Water plants",
		Type:       domain.QuestTypeDaily,
		Difficulty: "TRIVIAL",
		Tasks:      taskInputs("Water"),
	})
	assert.True(t, trivial.IsDaily)
	assert.Equal(t, 10, trivial.Tasks[0].XPReward)
	assert.Equal(t, 5, trivial.Tasks[0].GoldReward)
}

func TestCreateQuest_BossOnlyForMainQuests(t *testing.T) {
	f := newFixture(t)

	side := f.createQuest(t, domain.CreateQuestInput{
		Title:        "Side boss",
		Type:         domain.QuestTypeSide,
		IsBossBattle: true,
		BossName:     ptr("Dragon"),
		Tasks:        taskInputs("a"),
	})
	assert.False(t, side.IsBossBattle)
	assert.Nil(t, side.BossHP)
	assert.Nil(t, side.BossName)

	main := f.createQuest(t, domain.CreateQuestInput{
		Title:        "Main boss",
		Type:         domain.QuestTypeMain,
		IsBossBattle: true,
		BossName:     ptr("Dragon"),
		Tasks:        taskInputs("a"),
	})
	assert.True(t, main.IsBossBattle)
	require.NotNil(t, main.BossHP)
	assert.Equal(t, domain.DefaultBossHP, *main.BossHP)
	assert.Equal(t, domain.DefaultBossHP, *main.BossMaxHP)

	custom := f.createQuest(t, domain.CreateQuestInput{
		Title:        "Big boss",
		Type:         domain.QuestTypeMain,
		IsBossBattle: true,
		BossHP:       ptr(250),
		Tasks:        taskInputs("a"),
	})
	assert.Equal(t, 250, *custom.BossHP)
	assert.Equal(t, 250, *custom.BossMaxHP)
}

func TestCreateQuest_BillingFieldsFollowBillingType(t *testing.T) {
	f := newFixture(t)

	hourly := f.createQuest(t, domain.CreateQuestInput{
		Title:          "Client site",
		BillingType:    domain.BillingHourly,
		BudgetAmount:   ptr(1000.0),
		HourlyRate:     ptr(40.0),
		EstimatedHours: ptr(10.0),
		HoursWorked:    ptr(2.5),
	})
	assert.Nil(t, hourly.BudgetAmount)
	assert.Equal(t, 40.0, *hourly.HourlyRate)
	assert.Equal(t, 10.0, *hourly.EstimatedHours)
	assert.Equal(t, 2.5, hourly.HoursWorked)

	fixed := f.createQuest(t, domain.CreateQuestInput{
		Title:        "Logo",
		BudgetAmount: ptr(300.0),
		HourlyRate:   ptr(40.0),
	})
	assert.Equal(t, 300.0, *fixed.BudgetAmount)
	assert.Nil(t, fixed.HourlyRate)
}

func TestCreateQuest_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateQuest(ctx, testUserID, domain.CreateQuestInput{Title: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.CreateQuest(ctx, testUserID, domain.CreateQuestInput{
		Title: "Quest",
		Tasks: []domain.QuestTaskInput{{Title: "t", AttributeBoost: ptr("charisma")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f.chars.err = errors.New("db down")
	_, err = f.svc.CreateQuest(ctx, testUserID, domain.CreateQuestInput{Title: "Quest"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgGetCharacterFailed)
}

func TestAddTask_DefaultsOrderAndTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.createQuest(t, domain.CreateQuestInput{Title: "Quest", Tasks: taskInputs("a", "b")})

	task, err := f.svc.AddTask(ctx, testUserID, q.ID, domain.NewTaskInput{Title: "c"})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAddedTaskXP, task.XPReward)
	assert.Equal(t, domain.DefaultAddedTaskGold, task.GoldReward)
	assert.Equal(t, 2, task.Order, "max existing order (1) + 1")

	clamped, err := f.svc.AddTask(ctx, testUserID, q.ID, domain.NewTaskInput{
		Title:      "d",
		XPReward:   ptr(-10),
		GoldReward: ptr(7),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, clamped.XPReward)
	assert.Equal(t, 7, clamped.GoldReward)

	got, err := f.svc.GetQuest(ctx, testUserID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, 20+20+10+0, got.XPReward)
	assert.Equal(t, 10+10+5+7, got.GoldReward)
	assert.Len(t, got.Tasks, 4)
}

func TestAddTask_RejectsCompletedQuest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.createQuest(t, domain.CreateQuestInput{Title: "Quest", Tasks: taskInputs("a")})

	_, err := f.svc.ToggleTask(ctx, testUserID, q.Tasks[0].ID)
	require.NoError(t, err)

	_, err = f.svc.AddTask(ctx, testUserID, q.ID, domain.NewTaskInput{Title: "late"})
	assert.ErrorIs(t, err, domain.ErrQuestCompleted)

	_, err = f.svc.AddTask(ctx, testUserID, q.ID, domain.NewTaskInput{Title: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.AddTask(ctx, testUserID, "missing", domain.NewTaskInput{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrQuestNotFound)
}

func TestUpdateTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.createQuest(t, domain.CreateQuestInput{Title: "Quest", Tasks: taskInputs("a", "b")})

	task, err := f.svc.UpdateTask(ctx, testUserID, q.Tasks[0].ID, domain.TaskUpdate{
		Title:          ptr("renamed"),
		XPReward:       ptr(50),
		GoldReward:     ptr(-1),
		AttributeBoost: ptr("Logic"),
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", task.Title)
	assert.Equal(t, 50, task.XPReward)
	assert.Equal(t, 0, task.GoldReward)
	require.NotNil(t, task.AttributeBoost)
	assert.Equal(t, domain.AttributeLogic, *task.AttributeBoost)

	got, err := f.svc.GetQuest(ctx, testUserID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, got.XPReward)
	assert.Equal(t, 10, got.GoldReward)

	_, err = f.svc.UpdateTask(ctx, testUserID, q.Tasks[0].ID, domain.TaskUpdate{Title: ptr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cleared, err := f.svc.UpdateTask(ctx, testUserID, q.Tasks[0].ID, domain.TaskUpdate{AttributeBoost: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.AttributeBoost)

	_, err = f.svc.UpdateTask(ctx, testUserID, "missing", domain.TaskUpdate{})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestUpdateTask_CompletedTaskKeepsRewards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.createQuest(t, domain.CreateQuestInput{Title: "Quest", Tasks: taskInputs("a", "b")})

	_, err := f.svc.ToggleTask(ctx, testUserID, q.Tasks[0].ID)
	require.NoError(t, err)

	for name, update := range map[string]domain.TaskUpdate{
		"xp":           {XPReward: ptr(99)},
		"gold":         {GoldReward: ptr(99)},
		"attribute":    {AttributeBoost: ptr(domain.AttributeFocus)},
		"attribute xp": {AttributeXP: ptr(99)},
	} {
		_, err = f.svc.UpdateTask(ctx, testUserID, q.Tasks[0].ID, update)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}

	// Restating the current values is not a change
	same := q.Tasks[0]
	_, err = f.svc.UpdateTask(ctx, testUserID, same.ID, domain.TaskUpdate{XPReward: ptr(same.XPReward), GoldReward: ptr(same.GoldReward)})
	require.NoError(t, err)

	renamed, err := f.svc.UpdateTask(ctx, testUserID, q.Tasks[0].ID, domain.TaskUpdate{Title: ptr("done")})
	require.NoError(t, err)
	assert.Equal(t, "done", renamed.Title)
}

func TestDeleteTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.createQuest(t, domain.CreateQuestInput{Title: "Quest", Tasks: taskInputs("a", "b")})

	_, err := f.svc.ToggleTask(ctx, testUserID, q.Tasks[0].ID)
	require.NoError(t, err)
	assert.ErrorIs(t, f.svc.DeleteTask(ctx, testUserID, q.Tasks[0].ID), domain.ErrTaskCompleted)

	require.NoError(t, f.svc.DeleteTask(ctx, testUserID, q.Tasks[1].ID))

	got, err := f.svc.GetQuest(ctx, testUserID, q.ID)
	require.NoError(t, err)
	assert.Len(t, got.Tasks, 1)
	assert.Equal(t, 20, got.XPReward)
	assert.Equal(t, 10, got.GoldReward)
}

func TestUpdateQuest_PaidStampsPaidAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.createQuest(t, domain.CreateQuestInput{Title: "Invoice me"})

	paid, err := f.svc.UpdateQuest(ctx, testUserID, q.ID, domain.QuestUpdate{
		IsPaid:      ptr(true),
		HoursWorked: ptr(3.5),
		Description: ptr("  final  "),
	})
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, fixedNow, *paid.PaidAt)
	assert.Equal(t, 3.5, paid.HoursWorked)
	assert.Equal(t, "final", paid.Description)

	unpaid, err := f.svc.UpdateQuest(ctx, testUserID, q.ID, domain.QuestUpdate{IsPaid: ptr(false)})
	require.NoError(t, err)
	assert.False(t, unpaid.IsPaid)
	assert.Nil(t, unpaid.PaidAt)

	abandoned, err := f.svc.UpdateQuest(ctx, testUserID, q.ID, domain.QuestUpdate{Status: ptr(domain.QuestStatusAbandoned)})
	require.NoError(t, err)
	assert.Equal(t, domain.QuestStatusAbandoned, abandoned.Status)

	_, err = f.svc.UpdateQuest(ctx, testUserID, q.ID, domain.QuestUpdate{Title: ptr(" ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuestsOfOtherCharactersAreHidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	foreign := &domain.Quest{ID: "foreign", CharacterID: "someone-else", Title: "Not yours", Status: domain.QuestStatusActive}
	require.NoError(t, f.repo.CreateQuest(ctx, foreign))

	_, err := f.svc.GetQuest(ctx, testUserID, "foreign")
	assert.ErrorIs(t, err, domain.ErrQuestNotFound)
	assert.ErrorIs(t, f.svc.DeleteQuest(ctx, testUserID, "foreign"), domain.ErrQuestNotFound)
}

func TestDeleteQuest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.createQuest(t, domain.CreateQuestInput{Title: "Quest", Tasks: taskInputs("a")})

	require.NoError(t, f.svc.DeleteQuest(ctx, testUserID, q.ID))

	_, err := f.svc.GetQuest(ctx, testUserID, q.ID)
	assert.ErrorIs(t, err, domain.ErrQuestNotFound)
	_, err = f.svc.ToggleTask(ctx, testUserID, q.Tasks[0].ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestListQuests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	quests, err := f.svc.ListQuests(ctx, testUserID, domain.QuestFilter{})
	require.NoError(t, err)
	assert.NotNil(t, quests)
	assert.Empty(t, quests)

	f.createQuest(t, domain.CreateQuestInput{Title: "Main", Type: domain.QuestTypeMain})
	f.createQuest(t, domain.CreateQuestInput{Title: "Side"})

	mains, err := f.svc.ListQuests(ctx, testUserID, domain.QuestFilter{Type: domain.QuestTypeMain})
	require.NoError(t, err)
	require.Len(t, mains, 1)
	assert.Equal(t, "Main", mains[0].Title)

	completed, err := f.svc.ListQuests(ctx, testUserID, domain.QuestFilter{Status: domain.QuestStatusCompleted})
	require.NoError(t, err)
	assert.Empty(t, completed)
}

func TestHistory_Pagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		q := f.createQuest(t, domain.CreateQuestInput{Title: "Quest", Tasks: taskInputs("only")})
		f.svc.now = func() time.Time { return fixedNow.Add(time.Duration(i) * time.Hour) }
		_, err := f.svc.ToggleTask(ctx, testUserID, q.Tasks[0].ID)
		require.NoError(t, err)
	}

	page, err := f.svc.History(ctx, testUserID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Quests, 2)
	assert.True(t, page.HasMore)

	last, err := f.svc.History(ctx, testUserID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, last.Quests, 1)
	assert.False(t, last.HasMore)

	defaults, err := f.svc.History(ctx, testUserID, 0, -5)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultHistoryLimit, defaults.Limit)
	assert.Equal(t, 0, defaults.Offset)

	capped, err := f.svc.History(ctx, testUserID, 10_000, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxHistoryLimit, capped.Limit)
}
