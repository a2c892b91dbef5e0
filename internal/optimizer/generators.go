package optimizer

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/username/vacation-planner/pkg/dateutil"
)

// maxBridgeLength is the longest run of vacation days a bridge may spend
const maxBridgeLength = 4

// dateSet builds a membership set from a date slice
func dateSet(dates []dateutil.Date) map[dateutil.Date]bool {
	set := make(map[dateutil.Date]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set
}

// buildPeriod assembles a scored candidate from its vacation days:
// expands the boundaries to the full non-working span, counts days off,
// and collects the non-budget days inside the span.
func buildPeriod(vacationDays []dateutil.Date, strategy Strategy, cal *Calendar, weights Weights, logger *zap.Logger) Period {
	days := make([]dateutil.Date, len(vacationDays))
	copy(days, vacationDays)
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	start := ExpandStart(days[0], cal, logger)
	end := ExpandEnd(days[len(days)-1], cal, logger)

	period := Period{
		StartDate:    start,
		EndDate:      end,
		VacationDays: days,
		TotalDaysOff: dateutil.InclusiveDaySpan(start, end),
		Cost:         float64(len(days)),
		Strategy:     strategy,
		Includes:     collectIncludes(start, end, cal),
	}
	period.Score = weights.Score(&period)

	return period
}

// collectIncludes lists the non-budget days inside [start, end]:
// each distinct holiday by name, at most one weekend marker, and at
// most one company marker.
func collectIncludes(start, end dateutil.Date, cal *Calendar) []IncludedDay {
	includes := []IncludedDay{}
	seenHolidays := make(map[string]bool)
	weekendAdded := false
	companyAdded := false

	for d := start; !d.After(end); d = d.AddDays(1) {
		if name, ok := cal.HolidayName(d); ok {
			if !seenHolidays[name] {
				seenHolidays[name] = true
				includes = append(includes, IncludedDay{Kind: IncludedHoliday, Name: name})
			}
			continue
		}
		if cal.CompanyDays[d] {
			if !companyAdded {
				companyAdded = true
				includes = append(includes, IncludedDay{Kind: IncludedCompany})
			}
			continue
		}
		if !dateutil.IsWorkday(d, cal.Workdays) && !weekendAdded {
			weekendAdded = true
			includes = append(includes, IncludedDay{Kind: IncludedWeekend})
		}
	}

	return includes
}

// GenerateBridges finds short runs of available workdays whose flanking
// days are both already non-working, so spending the run joins two
// off-spans into one.
func GenerateBridges(available []dateutil.Date, cal *Calendar, weights Weights, logger *zap.Logger) []Period {
	avail := dateSet(available)
	periods := []Period{}

	for _, start := range available {
		run := []dateutil.Date{}

		for length := 1; length <= maxBridgeLength; length++ {
			day := start.AddDays(length - 1)
			if !avail[day] {
				// Longer runs through the same start are broken too
				break
			}
			run = append(run, day)

			before := start.AddDays(-1)
			after := start.AddDays(length)
			if cal.IsOfficeDay(before) || cal.IsOfficeDay(after) {
				continue
			}

			periods = append(periods, buildPeriod(run, StrategyBridge, cal, weights, logger))
		}
	}

	logger.Debug("Bridge candidates generated", zap.Int("count", len(periods)))

	return periods
}

// GenerateHolidayLinks extends each holiday by one or two adjacent
// available workdays in either direction. Duplicates by vacation-day
// set keep the highest-scoring candidate.
func GenerateHolidayLinks(available []dateutil.Date, cal *Calendar, weights Weights, logger *zap.Logger) []Period {
	avail := dateSet(available)
	periods := []Period{}

	// Map iteration order is not stable; sort the holidays so repeated
	// runs generate candidates in the same order.
	holidayDates := make([]dateutil.Date, 0, len(cal.Holidays))
	for d := range cal.Holidays {
		holidayDates = append(holidayDates, d)
	}
	sort.Slice(holidayDates, func(i, j int) bool {
		return holidayDates[i].Before(holidayDates[j])
	})

	for _, holiday := range holidayDates {
		for _, dir := range []int{-1, 1} {
			adjacent := holiday.AddDays(dir)
			if !avail[adjacent] {
				continue
			}

			periods = append(periods, buildPeriod([]dateutil.Date{adjacent}, StrategyHolidayLink, cal, weights, logger))

			beyond := adjacent.AddDays(dir)
			if avail[beyond] {
				periods = append(periods, buildPeriod([]dateutil.Date{adjacent, beyond}, StrategyHolidayLink, cal, weights, logger))
			}
		}
	}

	periods = dedupeBest(periods)
	logger.Debug("Holiday-link candidates generated", zap.Int("count", len(periods)))

	return periods
}

// GenerateLongWeekends attaches one or two vacation days to a regular
// weekend: single Fridays and Mondays, Thursday+Friday pairs, and
// Monday+Tuesday pairs.
func GenerateLongWeekends(available []dateutil.Date, cal *Calendar, weights Weights, logger *zap.Logger) []Period {
	avail := dateSet(available)
	periods := []Period{}

	for _, day := range available {
		switch day.Weekday() {
		case time.Friday, time.Monday:
			periods = append(periods, buildPeriod([]dateutil.Date{day}, StrategyLongWeekend, cal, weights, logger))
		case time.Thursday:
			friday := day.AddDays(1)
			if avail[friday] {
				periods = append(periods, buildPeriod([]dateutil.Date{day, friday}, StrategyLongWeekend, cal, weights, logger))
			}
		case time.Tuesday:
			monday := day.AddDays(-1)
			if avail[monday] {
				periods = append(periods, buildPeriod([]dateutil.Date{monday, day}, StrategyLongWeekend, cal, weights, logger))
			}
		}
	}

	periods = dedupeBest(periods)
	logger.Debug("Long-weekend candidates generated", zap.Int("count", len(periods)))

	return periods
}
