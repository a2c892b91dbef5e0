package optimizer

import (
	"time"

	"github.com/username/vacation-planner/pkg/dateutil"
)

// Strategy identifies which generator produced a candidate period
type Strategy int

const (
	StrategyBridge Strategy = iota + 1
	StrategyHolidayLink
	StrategyLongWeekend
)

// String returns a stable machine-readable name for the strategy
func (s Strategy) String() string {
	switch s {
	case StrategyBridge:
		return "bridge"
	case StrategyHolidayLink:
		return "holiday-link"
	case StrategyLongWeekend:
		return "long-weekend"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the strategy as its string name
func (s Strategy) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// IncludedDayKind classifies a non-budget day folded into a period's span
type IncludedDayKind int

const (
	IncludedWeekend IncludedDayKind = iota + 1
	IncludedHoliday
	IncludedCompany
)

// String returns a stable machine-readable name for the kind
func (k IncludedDayKind) String() string {
	switch k {
	case IncludedWeekend:
		return "weekend"
	case IncludedHoliday:
		return "holiday"
	case IncludedCompany:
		return "company"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the kind as its string name
func (k IncludedDayKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// IncludedDay describes a non-budget day inside a period's span.
// Name is set only for holidays. Weekends are collapsed to a single
// marker per period, as is the company marker.
type IncludedDay struct {
	Kind IncludedDayKind `json:"kind"`
	Name string          `json:"name,omitempty"`
}

// Calendar bundles the resolved day sets for one planning run. It is
// read-only during optimization; all predicates are pure.
type Calendar struct {
	Workdays    map[time.Weekday]bool   // designated workday weekdays
	Remote      map[time.Weekday]bool   // weekdays worked remotely
	Holidays    map[dateutil.Date]string // date -> holiday name
	CompanyDays map[dateutil.Date]bool
}

// IsOfficeDay returns true if the date is a plain office day: a
// designated workday that is not a holiday, company day, or remote day.
func (c *Calendar) IsOfficeDay(date dateutil.Date) bool {
	if !dateutil.IsWorkday(date, c.Workdays) {
		return false
	}
	if _, ok := c.Holidays[date]; ok {
		return false
	}
	if c.CompanyDays[date] {
		return false
	}
	if dateutil.IsRemoteDay(date, c.Remote) {
		return false
	}
	return true
}

// HolidayName returns the holiday name for the date, if any
func (c *Calendar) HolidayName(date dateutil.Date) (string, bool) {
	name, ok := c.Holidays[date]
	return name, ok
}

// Period is a candidate (or selected) time-off period. StartDate and
// EndDate bound the full contiguous off-span including surrounding
// weekends and holidays; VacationDays are the workdays actually drawn
// from the budget. Invariant: every vacation day lies within
// [StartDate, EndDate] and Cost equals the number of vacation days.
type Period struct {
	StartDate    dateutil.Date   `json:"start_date"`
	EndDate      dateutil.Date   `json:"end_date"`
	VacationDays []dateutil.Date `json:"vacation_days"`
	TotalDaysOff int             `json:"total_days_off"`
	Cost         float64         `json:"cost"`
	Score        float64         `json:"-"`
	Strategy     Strategy        `json:"strategy"`
	Includes     []IncludedDay   `json:"includes"`
}
