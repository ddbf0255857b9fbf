package stats

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/osse101/TaskQuest_Go/internal/domain"
	"github.com/osse101/TaskQuest_Go/internal/logger"
)

// QuestLister is the slice of the quest repository stats reads from
type QuestLister interface {
	ListQuests(ctx context.Context, characterID string, filter domain.QuestFilter) ([]domain.Quest, error)
}

// CharacterProvider resolves the acting character
type CharacterProvider interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Character, error)
}

// Service defines the interface for stats operations
type Service interface {
	GetStats(ctx context.Context, userID string) (*domain.Stats, error)
}

type service struct {
	quests     QuestLister
	characters CharacterProvider
	now        func() time.Time
}

// NewService creates a new stats service
func NewService(quests QuestLister, characters CharacterProvider) Service {
	return &service{
		quests:     quests,
		characters: characters,
		now:        time.Now,
	}
}

// GetStats summarizes every quest of the character
func (s *service) GetStats(ctx context.Context, userID string) (*domain.Stats, error) {
	c, err := s.characters.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetCharacterFailed, err)
	}

	quests, err := s.quests.ListQuests(ctx, c.ID, domain.QuestFilter{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListQuestsFailed, err)
	}

	stats := Compute(quests, s.now())
	logger.FromContext(ctx).Debug(LogMsgStatsComputed, "character_id", c.ID, "quests", len(quests))
	return stats, nil
}

// Compute derives the statistics from a quest list. The monthly breakdown
// covers the StatsMonths calendar months ending with the month of now.
func Compute(quests []domain.Quest, now time.Time) *domain.Stats {
	stats := &domain.Stats{}

	months := make([]domain.MonthlyStats, domain.StatsMonths)
	index := make(map[string]int, domain.StatsMonths)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 0; i < domain.StatsMonths; i++ {
		key := first.AddDate(0, i-(domain.StatsMonths-1), 0).Format(monthKeyLayout)
		months[i].Month = key
		index[key] = i
	}
	addTo := func(t time.Time, fn func(m *domain.MonthlyStats)) {
		if i, ok := index[t.In(now.Location()).Format(monthKeyLayout)]; ok {
			fn(&months[i])
		}
	}

	for _, q := range quests {
		stats.Quests.Total++
		switch q.Status {
		case domain.QuestStatusCompleted:
			stats.Quests.Completed++
		case domain.QuestStatusActive:
			stats.Quests.Active++
		}

		for _, t := range q.Tasks {
			stats.Tasks.Total++
			if t.Completed {
				stats.Tasks.Completed++
			}
		}

		amount := billedAmount(q, &stats.Financial, &stats.Time)
		if amount <= 0 {
			continue
		}

		stats.Financial.TotalBilled += amount
		if q.IsPaid {
			stats.Financial.TotalPaid += amount
			addTo(paidDate(q), func(m *domain.MonthlyStats) { m.Paid += amount })
		} else {
			stats.Financial.TotalPending += amount
		}

		billed := q.CreatedAt
		if q.CompletedAt != nil {
			billed = *q.CompletedAt
		}
		addTo(billed, func(m *domain.MonthlyStats) {
			m.Billed += amount
			if q.BillingType == domain.BillingHourly {
				m.Hours += q.HoursWorked
			}
		})
	}

	if stats.Time.TotalHoursWorked > 0 {
		stats.Financial.AvgHourlyRate = stats.Financial.TotalPaid / stats.Time.TotalHoursWorked
	}
	stats.Time.Efficiency = percent(stats.Time.TotalHoursWorked, stats.Time.TotalHoursEstimated)
	stats.Quests.CompletionRate = percent(float64(stats.Quests.Completed), float64(stats.Quests.Total))
	stats.Tasks.CompletionRate = percent(float64(stats.Tasks.Completed), float64(stats.Tasks.Total))
	stats.Monthly = months

	return stats
}

// billedAmount is rate times hours for hourly work, falling back to the
// estimate while nothing is logged, and the budget for fixed work. It also
// counts the project and its hours.
func billedAmount(q domain.Quest, fin *domain.FinancialStats, tm *domain.TimeStats) float64 {
	if q.BillingType == domain.BillingHourly {
		rate := deref(q.HourlyRate)
		hours := q.HoursWorked
		if hours == 0 {
			hours = deref(q.EstimatedHours)
		}
		tm.TotalHoursEstimated += deref(q.EstimatedHours)
		tm.TotalHoursWorked += q.HoursWorked
		if rate > 0 {
			fin.HourlyProjects++
		}
		return rate * hours
	}

	amount := deref(q.BudgetAmount)
	if amount > 0 {
		fin.FixedProjects++
	}
	return amount
}

func paidDate(q domain.Quest) time.Time {
	switch {
	case q.PaidAt != nil:
		return *q.PaidAt
	case q.CompletedAt != nil:
		return *q.CompletedAt
	default:
		return q.UpdatedAt
	}
}

// percent rounds part/whole to one decimal, 0 when whole is 0
func percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(part/whole*1000) / 10
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
