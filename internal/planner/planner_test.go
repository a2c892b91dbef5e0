package planner

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/username/vacation-planner/internal/holidays"
	"github.com/username/vacation-planner/internal/optimizer"
	"github.com/username/vacation-planner/pkg/dateutil"
)

// fakeProvider serves a fixed holiday table keyed by year
type fakeProvider struct {
	years map[int][]holidays.Holiday
}

func (f *fakeProvider) HolidaysForYear(year int) ([]holidays.Holiday, error) {
	list, ok := f.years[year]
	if !ok {
		return nil, errors.New("no data for year")
	}
	return list, nil
}

func testProvider() *fakeProvider {
	return &fakeProvider{
		years: map[int][]holidays.Holiday{
			2024: {
				{Date: dateutil.Date{Year: 2024, Month: time.May, Day: 1}, Name: "Labour Day"},
				{Date: dateutil.Date{Year: 2024, Month: time.December, Day: 25}, Name: "Christmas Day"},
				{Date: dateutil.Date{Year: 2024, Month: time.December, Day: 26}, Name: "Boxing Day"},
			},
			2025: {
				{Date: dateutil.Date{Year: 2025, Month: time.January, Day: 1}, Name: "New Year's Day"},
			},
		},
	}
}

func baseRequest() Request {
	return Request{
		Budget:   5,
		Year:     2024,
		Workdays: dateutil.WeekdaySet([]int{1, 2, 3, 4, 5}),
		Remote:   map[time.Weekday]bool{},
	}
}

func TestBuildPlanBasics(t *testing.T) {
	p := New(testProvider(), optimizer.DefaultWeights(), zap.NewNop())

	plan, err := p.BuildPlan(baseRequest())
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	if plan.Year != 2024 {
		t.Errorf("plan year = %d, want 2024", plan.Year)
	}
	if len(plan.Periods) == 0 {
		t.Fatalf("plan has no periods")
	}
	if len(plan.Holidays) != 3 {
		t.Errorf("plan lists %d holidays, want 3", len(plan.Holidays))
	}

	spent := 0.0
	daysOff := 0
	for _, period := range plan.Periods {
		spent += period.Cost
		daysOff += period.TotalDaysOff

		if period.StartDate.Year != 2024 {
			t.Errorf("period starting %v leaked into display year 2024", period.StartDate)
		}
		for _, d := range period.VacationDays {
			if d.Before(period.StartDate) || d.After(period.EndDate) {
				t.Errorf("vacation day %v outside span [%v, %v]", d, period.StartDate, period.EndDate)
			}
		}
	}

	if spent != plan.BudgetSpent {
		t.Errorf("sum of period costs %v != BudgetSpent %v", spent, plan.BudgetSpent)
	}
	if daysOff != plan.TotalDaysOff {
		t.Errorf("sum of period days off %d != TotalDaysOff %d", daysOff, plan.TotalDaysOff)
	}
	if plan.BudgetSpent > plan.Budget {
		t.Errorf("BudgetSpent %v exceeds budget %v", plan.BudgetSpent, plan.Budget)
	}
	if plan.BudgetRemaining != plan.Budget-plan.BudgetSpent {
		t.Errorf("BudgetRemaining = %v, want %v", plan.BudgetRemaining, plan.Budget-plan.BudgetSpent)
	}
}

func TestBuildPlanIdempotent(t *testing.T) {
	p := New(testProvider(), optimizer.DefaultWeights(), zap.NewNop())

	req := baseRequest()
	req.Remote = map[time.Weekday]bool{time.Friday: true}
	req.CompanyDays = []MandatoryDay{
		{Date: dateutil.Date{Year: 2024, Month: time.December, Day: 24}, Duration: 1.0},
	}

	first, err := p.BuildPlan(req)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	second, err := p.BuildPlan(req)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two planning runs with identical inputs differ")
	}
}

func TestBuildPlanMandatoryCosts(t *testing.T) {
	p := New(testProvider(), optimizer.DefaultWeights(), zap.NewNop())

	req := baseRequest()
	req.Budget = 2
	req.MandatoryDays = []MandatoryDay{
		// Plain workday: full cost
		{Date: dateutil.Date{Year: 2024, Month: time.June, Day: 3}, Duration: 1.0},
		// Falls on a holiday: free but still recorded
		{Date: dateutil.Date{Year: 2024, Month: time.May, Day: 1}, Duration: 1.0},
		// Saturday: free but still recorded
		{Date: dateutil.Date{Year: 2024, Month: time.June, Day: 8}, Duration: 0.5},
	}

	plan, err := p.BuildPlan(req)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	costs := map[string]float64{}
	for _, period := range plan.Periods {
		if period.Mandatory {
			costs[period.StartDate.String()] = period.Cost
		}
	}

	if len(costs) != 3 {
		t.Fatalf("plan records %d mandatory periods, want 3", len(costs))
	}
	if costs["2024-06-03"] != 1.0 {
		t.Errorf("workday mandatory cost = %v, want 1.0", costs["2024-06-03"])
	}
	if costs["2024-05-01"] != 0 {
		t.Errorf("holiday mandatory cost = %v, want 0", costs["2024-05-01"])
	}
	if costs["2024-06-08"] != 0 {
		t.Errorf("weekend mandatory cost = %v, want 0", costs["2024-06-08"])
	}

	if len(plan.MandatoryDays) != 3 {
		t.Errorf("plan lists %d mandatory dates, want 3", len(plan.MandatoryDays))
	}

	// Budget 2 minus 1.0 mandatory leaves 1.0 for the optimizer
	optimizerCost := 0.0
	for _, period := range plan.Periods {
		if !period.Mandatory {
			optimizerCost += period.Cost
		}
	}
	if optimizerCost > 1.0 {
		t.Errorf("optimizer spent %v, effective budget was 1.0", optimizerCost)
	}
}

func TestBuildPlanZeroBudget(t *testing.T) {
	p := New(testProvider(), optimizer.DefaultWeights(), zap.NewNop())

	req := baseRequest()
	req.Budget = 0

	plan, err := p.BuildPlan(req)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	for _, period := range plan.Periods {
		if !period.Mandatory {
			t.Errorf("zero budget selected optimizer period starting %v", period.StartDate)
		}
	}
	if plan.BudgetRemaining != 0 {
		t.Errorf("BudgetRemaining = %v, want 0", plan.BudgetRemaining)
	}
}

func TestBuildPlanMandatoryExceedsBudget(t *testing.T) {
	p := New(testProvider(), optimizer.DefaultWeights(), zap.NewNop())

	req := baseRequest()
	req.Budget = 1
	req.MandatoryDays = []MandatoryDay{
		{Date: dateutil.Date{Year: 2024, Month: time.June, Day: 3}, Duration: 1.0},
		{Date: dateutil.Date{Year: 2024, Month: time.June, Day: 4}, Duration: 1.0},
	}

	plan, err := p.BuildPlan(req)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	// Effective optimizer budget floors at zero
	for _, period := range plan.Periods {
		if !period.Mandatory {
			t.Errorf("optimizer selected a period despite exhausted budget")
		}
	}
	if plan.BudgetRemaining != 0 {
		t.Errorf("BudgetRemaining = %v, want floor at 0", plan.BudgetRemaining)
	}
}

func TestBuildPlanNoWorkdays(t *testing.T) {
	p := New(testProvider(), optimizer.DefaultWeights(), zap.NewNop())

	req := baseRequest()
	req.Workdays = map[time.Weekday]bool{}

	plan, err := p.BuildPlan(req)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	if len(plan.Periods) != 0 {
		t.Errorf("plan with no workdays has %d periods, want 0", len(plan.Periods))
	}
	if plan.BudgetRemaining != plan.Budget {
		t.Errorf("BudgetRemaining = %v, want full budget %v", plan.BudgetRemaining, plan.Budget)
	}
}

func TestBuildPlanLookaheadFailureTolerated(t *testing.T) {
	provider := testProvider()
	delete(provider.years, 2025)

	p := New(provider, optimizer.DefaultWeights(), zap.NewNop())

	if _, err := p.BuildPlan(baseRequest()); err != nil {
		t.Errorf("BuildPlan() failed on missing lookahead year: %v", err)
	}
}

func TestBuildPlanMissingTargetYearFails(t *testing.T) {
	p := New(&fakeProvider{years: map[int][]holidays.Holiday{}}, optimizer.DefaultWeights(), zap.NewNop())

	if _, err := p.BuildPlan(baseRequest()); err == nil {
		t.Errorf("BuildPlan() expected error when target year holidays are unavailable")
	}
}

func TestBuildPlanRemoteDaysExcluded(t *testing.T) {
	p := New(testProvider(), optimizer.DefaultWeights(), zap.NewNop())

	req := baseRequest()
	req.Remote = map[time.Weekday]bool{time.Friday: true}

	plan, err := p.BuildPlan(req)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	for _, period := range plan.Periods {
		for _, d := range period.VacationDays {
			if d.Weekday() == time.Friday {
				t.Errorf("remote Friday %v spent as vacation day", d)
			}
		}
	}

	if len(plan.RemoteDays) == 0 {
		t.Errorf("plan lists no remote days, want all Fridays of 2024")
	}
	for _, d := range plan.RemoteDays {
		if d.Weekday() != time.Friday {
			t.Errorf("remote day %v is not a Friday", d)
		}
	}
}
