package domain

// Stats summarizes billing, time and completion figures for a character.
type Stats struct {
	Financial FinancialStats `json:"financial"`
	Time      TimeStats      `json:"time"`
	Quests    QuestStats     `json:"quests"`
	Tasks     TaskStats      `json:"tasks"`
	Monthly   []MonthlyStats `json:"monthly"`
}

type FinancialStats struct {
	TotalBilled    float64 `json:"totalBilled"`
	TotalPaid      float64 `json:"totalPaid"`
	TotalPending   float64 `json:"totalPending"`
	AvgHourlyRate  float64 `json:"avgHourlyRate"`
	FixedProjects  int     `json:"fixedProjects"`
	HourlyProjects int     `json:"hourlyProjects"`
}

type TimeStats struct {
	TotalHoursEstimated float64 `json:"totalHoursEstimated"`
	TotalHoursWorked    float64 `json:"totalHoursWorked"`
	Efficiency          float64 `json:"efficiency"`
}

type QuestStats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Active         int     `json:"active"`
	CompletionRate float64 `json:"completionRate"`
}

type TaskStats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completionRate"`
}

// MonthlyStats is one calendar month, keyed YYYY-MM.
type MonthlyStats struct {
	Month  string  `json:"month"`
	Billed float64 `json:"billed"`
	Paid   float64 `json:"paid"`
	Hours  float64 `json:"hours"`
}

// StatsMonths is the length of the monthly breakdown.
const StatsMonths = 12
