package planner

import (
	"time"

	"github.com/username/vacation-planner/internal/holidays"
	"github.com/username/vacation-planner/internal/optimizer"
	"github.com/username/vacation-planner/pkg/dateutil"
)

// MandatoryDay is a company- or user-declared day off with its budget
// cost (half or full day)
type MandatoryDay struct {
	Date     dateutil.Date
	Duration float64 // 0.5 or 1.0
}

// Request carries the inputs of one planning run. All fields are plain
// data; the caller is responsible for pre-validating them.
type Request struct {
	Budget        float64
	Year          int
	StartDate     dateutil.Date // optional; zero means January 1 of Year
	Workdays      map[time.Weekday]bool
	Remote        map[time.Weekday]bool
	CompanyDays   []MandatoryDay
	MandatoryDays []MandatoryDay
}

// PlanPeriod is one selected time-off period in the final plan.
// Field names are stable; downstream consumers index them directly.
type PlanPeriod struct {
	StartDate    dateutil.Date           `json:"start_date"`
	EndDate      dateutil.Date           `json:"end_date"`
	VacationDays []dateutil.Date         `json:"vacation_days"`
	TotalDaysOff int                     `json:"total_days_off"`
	Cost         float64                 `json:"cost"`
	Strategy     string                  `json:"strategy,omitempty"`
	Includes     []optimizer.IncludedDay `json:"includes,omitempty"`
	Mandatory    bool                    `json:"mandatory"`
}

// VacationPlan is the final output of a planning run
type VacationPlan struct {
	Year            int                `json:"year"`
	Budget          float64            `json:"budget"`
	Periods         []PlanPeriod       `json:"periods"`
	RecommendedDays []dateutil.Date    `json:"recommended_days"`
	TotalDaysOff    int                `json:"total_days_off"`
	BudgetSpent     float64            `json:"budget_spent"`
	BudgetRemaining float64            `json:"budget_remaining"`
	Holidays        []holidays.Holiday `json:"holidays"`
	RemoteDays      []dateutil.Date    `json:"remote_days"`
	CompanyDays     []dateutil.Date    `json:"company_days"`
	MandatoryDays   []dateutil.Date    `json:"mandatory_days"`
}
