package planner

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/username/vacation-planner/internal/holidays"
	"github.com/username/vacation-planner/internal/optimizer"
	"github.com/username/vacation-planner/pkg/dateutil"
)

// Planner assembles vacation plans: it resolves holiday data, accounts
// for mandatory days, runs the optimizer over what remains of the
// budget, and merges everything into one VacationPlan.
type Planner struct {
	provider holidays.Provider
	weights  optimizer.Weights
	logger   *zap.Logger
}

// New creates a new Planner
func New(provider holidays.Provider, weights optimizer.Weights, logger *zap.Logger) *Planner {
	return &Planner{
		provider: provider,
		weights:  weights,
		logger:   logger,
	}
}

// BuildPlan computes the vacation plan for the request. The result is
// deterministic: identical requests produce identical plans.
func (p *Planner) BuildPlan(req Request) (*VacationPlan, error) {
	p.logger.Info("Building vacation plan",
		zap.Int("year", req.Year),
		zap.Float64("budget", req.Budget))

	// 1. Resolve holidays for the target year plus a January lookahead
	// into the next year, so late-December bridges see them.
	yearHolidays, err := p.provider.HolidaysForYear(req.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve holidays for %d: %w", req.Year, err)
	}

	holidayMap := make(map[dateutil.Date]string)
	for _, h := range yearHolidays {
		holidayMap[h.Date] = h.Name
	}

	nextYearHolidays, err := p.provider.HolidaysForYear(req.Year + 1)
	if err != nil {
		p.logger.Warn("Holiday lookahead into next year failed, continuing without it",
			zap.Int("year", req.Year+1),
			zap.Error(err))
	} else {
		for _, h := range nextYearHolidays {
			if h.Date.Month == time.January {
				holidayMap[h.Date] = h.Name
			}
		}
	}

	// 2. Resolve mandatory day sets and their budget costs
	companySet := make(map[dateutil.Date]bool)
	for _, d := range req.CompanyDays {
		companySet[d.Date] = true
	}

	cal := &optimizer.Calendar{
		Workdays:    req.Workdays,
		Remote:      req.Remote,
		Holidays:    holidayMap,
		CompanyDays: companySet,
	}

	companyPeriods, companyCost := p.resolveMandatory(req.CompanyDays, req.Year, cal)
	userPeriods, userCost := p.resolveMandatory(req.MandatoryDays, req.Year, cal)

	// 3. Budget left for the optimizer after mandatory deductions
	effectiveBudget := req.Budget - companyCost - userCost
	if effectiveBudget < 0 {
		effectiveBudget = 0
	}

	p.logger.Info("Mandatory days resolved",
		zap.Float64("company_cost", companyCost),
		zap.Float64("user_cost", userCost),
		zap.Float64("effective_budget", effectiveBudget))

	// 4. Workdays still available for planning: not holiday, company,
	// user-mandated, or remote
	available := p.availableWorkdays(req, cal)

	// 5. Optimize
	selected := optimizer.Optimize(available, cal, p.weights, effectiveBudget, p.logger)

	// 6. Merge optimizer periods with mandatory single-day periods
	periods := make([]PlanPeriod, 0, len(selected)+len(companyPeriods)+len(userPeriods))
	for _, op := range selected {
		periods = append(periods, PlanPeriod{
			StartDate:    op.StartDate,
			EndDate:      op.EndDate,
			VacationDays: op.VacationDays,
			TotalDaysOff: op.TotalDaysOff,
			Cost:         op.Cost,
			Strategy:     op.Strategy.String(),
			Includes:     op.Includes,
		})
	}
	periods = append(periods, companyPeriods...)
	periods = append(periods, userPeriods...)

	sort.Slice(periods, func(i, j int) bool {
		return periods[i].StartDate.Before(periods[j].StartDate)
	})

	// 7. Keep only periods that start in the display year
	displayed := periods[:0]
	for _, period := range periods {
		if period.StartDate.Year == req.Year {
			displayed = append(displayed, period)
		}
	}
	periods = displayed

	// 8. Aggregates
	totalDaysOff := 0
	budgetSpent := 0.0
	recommended := []dateutil.Date{}
	for _, period := range periods {
		totalDaysOff += period.TotalDaysOff
		budgetSpent += period.Cost
		recommended = append(recommended, period.VacationDays...)
	}
	sort.Slice(recommended, func(i, j int) bool {
		return recommended[i].Before(recommended[j])
	})

	remaining := req.Budget - budgetSpent
	if remaining < 0 {
		remaining = 0
	}

	plan := &VacationPlan{
		Year:            req.Year,
		Budget:          req.Budget,
		Periods:         periods,
		RecommendedDays: recommended,
		TotalDaysOff:    totalDaysOff,
		BudgetSpent:     budgetSpent,
		BudgetRemaining: remaining,
		Holidays:        yearHolidays,
		RemoteDays:      p.remoteDates(req),
		CompanyDays:     mandatoryDates(req.CompanyDays, req.Year),
		MandatoryDays:   mandatoryDates(req.MandatoryDays, req.Year),
	}

	p.logger.Info("Vacation plan built",
		zap.Int("periods", len(plan.Periods)),
		zap.Int("total_days_off", plan.TotalDaysOff),
		zap.Float64("budget_spent", plan.BudgetSpent),
		zap.Float64("budget_remaining", plan.BudgetRemaining))

	return plan, nil
}

// resolveMandatory turns declared mandatory days into single-day plan
// periods and sums their budget cost. A day that is already non-working
// (holiday, remote, or not a designated workday) costs nothing but is
// still recorded. Days outside the target year are skipped.
func (p *Planner) resolveMandatory(days []MandatoryDay, year int, cal *optimizer.Calendar) ([]PlanPeriod, float64) {
	periods := []PlanPeriod{}
	totalCost := 0.0

	for _, day := range days {
		if day.Date.Year != year {
			p.logger.Warn("Mandatory day outside target year, skipping",
				zap.String("date", day.Date.String()),
				zap.Int("year", year))
			continue
		}

		cost := day.Duration
		_, isHoliday := cal.HolidayName(day.Date)
		if isHoliday || dateutil.IsRemoteDay(day.Date, cal.Remote) || !dateutil.IsWorkday(day.Date, cal.Workdays) {
			cost = 0
		}

		periods = append(periods, PlanPeriod{
			StartDate:    day.Date,
			EndDate:      day.Date,
			VacationDays: []dateutil.Date{day.Date},
			TotalDaysOff: 1,
			Cost:         cost,
			Mandatory:    true,
		})
		totalCost += cost
	}

	return periods, totalCost
}

// availableWorkdays enumerates the workdays the optimizer may spend:
// designated workdays of the planning range that are not holidays,
// company days, user-mandated days, or remote days.
func (p *Planner) availableWorkdays(req Request, cal *optimizer.Calendar) []dateutil.Date {
	rangeStart := dateutil.NewDate(req.Year, time.January, 1)
	if !req.StartDate.IsZero() && req.StartDate.After(rangeStart) {
		rangeStart = req.StartDate
	}
	rangeEnd := dateutil.NewDate(req.Year, time.December, 31)

	userSet := make(map[dateutil.Date]bool)
	for _, d := range req.MandatoryDays {
		userSet[d.Date] = true
	}

	available := []dateutil.Date{}
	for _, d := range dateutil.EnumerateWorkdays(rangeStart, rangeEnd, req.Workdays) {
		if !cal.IsOfficeDay(d) {
			continue
		}
		if userSet[d] {
			continue
		}
		available = append(available, d)
	}

	p.logger.Debug("Available workdays resolved",
		zap.String("from", rangeStart.String()),
		zap.String("to", rangeEnd.String()),
		zap.Int("count", len(available)))

	return available
}

// remoteDates lists every remote-weekday date of the target year
func (p *Planner) remoteDates(req Request) []dateutil.Date {
	if len(req.Remote) == 0 {
		return []dateutil.Date{}
	}

	dates := []dateutil.Date{}
	start := dateutil.NewDate(req.Year, time.January, 1)
	end := dateutil.NewDate(req.Year, time.December, 31)
	for d := start; !d.After(end); d = d.AddDays(1) {
		if dateutil.IsRemoteDay(d, req.Remote) {
			dates = append(dates, d)
		}
	}
	return dates
}

// mandatoryDates lists the declared dates that fall in the target year
func mandatoryDates(days []MandatoryDay, year int) []dateutil.Date {
	dates := []dateutil.Date{}
	for _, d := range days {
		if d.Date.Year == year {
			dates = append(dates, d.Date)
		}
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}
