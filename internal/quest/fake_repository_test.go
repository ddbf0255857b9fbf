package quest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/TaskQuest_Go/internal/domain"
	"github.com/osse101/TaskQuest_Go/internal/event"
	"github.com/osse101/TaskQuest_Go/internal/repository"
)

// fakeRepository is an in-memory repository.Quest. Transaction writes are
// buffered and only land on Commit.
type fakeRepository struct {
	mu         sync.Mutex
	quests     map[string]*domain.Quest
	tasks      map[string]*domain.Task
	characters map[string]*domain.Character
	attributes map[string]*domain.Attribute
	nextID     int

	commits    int
	rollbacks  int
	failCommit error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		quests:     make(map[string]*domain.Quest),
		tasks:      make(map[string]*domain.Task),
		characters: make(map[string]*domain.Character),
		attributes: make(map[string]*domain.Attribute),
	}
}

func (f *fakeRepository) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeRepository) addCharacter(c *domain.Character) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.characters[c.ID] = &cp
	for _, a := range c.Attributes {
		attr := a
		f.attributes[c.ID+":"+a.Name] = &attr
	}
}

func (f *fakeRepository) character(id string) *domain.Character {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *f.characters[id]
	return &cp
}

func (f *fakeRepository) attribute(characterID, name string) *domain.Attribute {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *f.attributes[characterID+":"+name]
	return &cp
}

// assemble returns a copy of the quest with its tasks in order. Caller holds mu.
func (f *fakeRepository) assemble(id string) *domain.Quest {
	stored, ok := f.quests[id]
	if !ok {
		return nil
	}
	q := *stored
	q.Tasks = []domain.Task{}
	for _, t := range f.tasks {
		if t.QuestID == id {
			q.Tasks = append(q.Tasks, *t)
		}
	}
	sort.Slice(q.Tasks, func(i, j int) bool { return q.Tasks[i].Order < q.Tasks[j].Order })
	return &q
}

func (f *fakeRepository) recompute(questID string) {
	xp, gold := 0, 0
	for _, t := range f.tasks {
		if t.QuestID == questID {
			xp += t.XPReward
			gold += t.GoldReward
		}
	}
	f.quests[questID].XPReward = xp
	f.quests[questID].GoldReward = gold
}

func (f *fakeRepository) ListQuests(_ context.Context, characterID string, filter domain.QuestFilter) ([]domain.Quest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Quest
	for id, q := range f.quests {
		if q.CharacterID != characterID {
			continue
		}
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		if filter.Type != "" && q.Type != filter.Type {
			continue
		}
		out = append(out, *f.assemble(id))
	}
	return out, nil
}

func (f *fakeRepository) GetQuest(_ context.Context, questID string) (*domain.Quest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.assemble(questID), nil
}

func (f *fakeRepository) CreateQuest(_ context.Context, q *domain.Quest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if q.ID == "" {
		q.ID = f.id("quest")
	}
	stored := *q
	stored.Tasks = nil
	f.quests[q.ID] = &stored
	for i := range q.Tasks {
		q.Tasks[i].QuestID = q.ID
		if q.Tasks[i].ID == "" {
			q.Tasks[i].ID = f.id("task")
		}
		t := q.Tasks[i]
		f.tasks[t.ID] = &t
	}
	return nil
}

func (f *fakeRepository) UpdateQuest(_ context.Context, q *domain.Quest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *q
	stored.Tasks = nil
	f.quests[q.ID] = &stored
	return nil
}

func (f *fakeRepository) DeleteQuest(_ context.Context, questID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.quests, questID)
	for id, t := range f.tasks {
		if t.QuestID == questID {
			delete(f.tasks, id)
		}
	}
	return nil
}

func (f *fakeRepository) GetCompletedQuests(_ context.Context, characterID string, limit, offset int) ([]domain.Quest, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var done []domain.Quest
	for id, q := range f.quests {
		if q.CharacterID == characterID && q.Status == domain.QuestStatusCompleted {
			done = append(done, *f.assemble(id))
		}
	}
	sort.Slice(done, func(i, j int) bool { return done[i].CompletedAt.After(*done[j].CompletedAt) })
	total := len(done)
	if offset >= total {
		return []domain.Quest{}, total, nil
	}
	end := min(offset+limit, total)
	return done[offset:end], total, nil
}

func (f *fakeRepository) GetTask(_ context.Context, taskID string) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskID]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRepository) AddTask(_ context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	maxOrder := 0
	for _, t := range f.tasks {
		if t.QuestID == task.QuestID && t.Order > maxOrder {
			maxOrder = t.Order
		}
	}
	task.Order = maxOrder + 1
	task.ID = f.id("task")
	cp := *task
	f.tasks[task.ID] = &cp
	f.recompute(task.QuestID)
	return nil
}

func (f *fakeRepository) UpdateTask(_ context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *task
	f.tasks[task.ID] = &cp
	f.recompute(task.QuestID)
	return nil
}

func (f *fakeRepository) DeleteTask(_ context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tasks, task.ID)
	f.recompute(task.QuestID)
	return nil
}

func (f *fakeRepository) BeginTx(_ context.Context) (repository.QuestTx, error) {
	return &fakeTx{repo: f}, nil
}

type fakeTx struct {
	repo    *fakeRepository
	pending []func()
	done    bool
}

func (t *fakeTx) Commit(_ context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	if t.repo.failCommit != nil {
		return t.repo.failCommit
	}
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	for _, apply := range t.pending {
		apply()
	}
	t.repo.commits++
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.repo.rollbacks++
	return nil
}

func (t *fakeTx) GetCharacterForUpdate(_ context.Context, characterID string) (*domain.Character, error) {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	c, ok := t.repo.characters[characterID]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Attributes = append([]domain.Attribute(nil), c.Attributes...)
	return &cp, nil
}

func (t *fakeTx) UpdateCharacter(_ context.Context, c *domain.Character) error {
	cp := *c
	t.pending = append(t.pending, func() { t.repo.characters[cp.ID] = &cp })
	return nil
}

func (t *fakeTx) GetTaskForUpdate(ctx context.Context, taskID string) (*domain.Task, error) {
	return t.repo.GetTask(ctx, taskID)
}

func (t *fakeTx) GetQuestForUpdate(ctx context.Context, questID string) (*domain.Quest, error) {
	return t.repo.GetQuest(ctx, questID)
}

func (t *fakeTx) GetAttributeForUpdate(_ context.Context, characterID, name string) (*domain.Attribute, error) {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	a, ok := t.repo.attributes[characterID+":"+name]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (t *fakeTx) UpdateTaskCompletion(_ context.Context, task *domain.Task) error {
	id, completed, at := task.ID, task.Completed, task.CompletedAt
	t.pending = append(t.pending, func() {
		t.repo.tasks[id].Completed = completed
		t.repo.tasks[id].CompletedAt = at
	})
	return nil
}

func (t *fakeTx) UpdateQuestProgress(_ context.Context, q *domain.Quest) error {
	id, status, at, hp := q.ID, q.Status, q.CompletedAt, q.BossHP
	t.pending = append(t.pending, func() {
		t.repo.quests[id].Status = status
		t.repo.quests[id].CompletedAt = at
		t.repo.quests[id].BossHP = hp
	})
	return nil
}

func (t *fakeTx) UpdateAttribute(_ context.Context, a *domain.Attribute) error {
	cp := *a
	t.pending = append(t.pending, func() { t.repo.attributes[cp.CharacterID+":"+cp.Name] = &cp })
	return nil
}

// stubCharacters resolves every user to one character held by the fake repository
type stubCharacters struct {
	repo        *fakeRepository
	characterID string
	err         error
	invalidated []string
}

func (s *stubCharacters) GetOrCreate(_ context.Context, _ string) (*domain.Character, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.repo.character(s.characterID), nil
}

func (s *stubCharacters) Invalidate(userID string) {
	s.invalidated = append(s.invalidated, userID)
}

// recordingPublisher captures events synchronously
type recordingPublisher struct {
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(_ context.Context, evt event.Event) {
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) types() []event.Type {
	out := make([]event.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
