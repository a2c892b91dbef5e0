package planner

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/username/vacation-planner/pkg/dateutil"
)

func TestStateManagerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan-state.json")
	logger := zap.NewNop()

	sm := NewStateManager(path, logger)
	if err := sm.Load(); err != nil {
		t.Fatalf("Load() on missing file error = %v", err)
	}
	if sm.Current() != nil {
		t.Errorf("Current() before any save = %+v, want nil", sm.Current())
	}

	plan := &VacationPlan{
		Year:            2024,
		Budget:          5,
		BudgetSpent:     3,
		BudgetRemaining: 2,
		TotalDaysOff:    9,
		Periods: []PlanPeriod{
			{
				StartDate:    dateutil.Date{Year: 2024, Month: time.May, Day: 1},
				EndDate:      dateutil.Date{Year: 2024, Month: time.May, Day: 5},
				VacationDays: []dateutil.Date{{Year: 2024, Month: time.May, Day: 2}, {Year: 2024, Month: time.May, Day: 3}},
				TotalDaysOff: 5,
				Cost:         2,
				Strategy:     "holiday-link",
			},
		},
	}

	if err := sm.Save(plan); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded := NewStateManager(path, logger)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() after save error = %v", err)
	}

	got := reloaded.Current()
	if got == nil {
		t.Fatalf("Current() after reload = nil")
	}
	if got.Year != plan.Year || got.BudgetSpent != plan.BudgetSpent {
		t.Errorf("reloaded plan = %+v, want %+v", got, plan)
	}
	if len(got.Periods) != 1 {
		t.Fatalf("reloaded plan has %d periods, want 1", len(got.Periods))
	}
	if got.Periods[0].VacationDays[0] != (dateutil.Date{Year: 2024, Month: time.May, Day: 2}) {
		t.Errorf("reloaded vacation day = %v, want 2024-05-02", got.Periods[0].VacationDays[0])
	}
}
