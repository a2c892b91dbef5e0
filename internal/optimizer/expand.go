package optimizer

import (
	"go.uber.org/zap"

	"github.com/username/vacation-planner/pkg/dateutil"
)

// maxExpansionSteps caps how far boundary expansion may walk from its
// seed day. Guards against pathological inputs such as a multi-month
// holiday run.
const maxExpansionSteps = 30

// ExpandStart walks backward from day while the preceding day is not a
// plain office day, returning the first day of the contiguous
// non-working span. A malformed (zero) seed is returned unchanged.
func ExpandStart(day dateutil.Date, cal *Calendar, logger *zap.Logger) dateutil.Date {
	if day.IsZero() {
		logger.Warn("Invalid date passed to expansion, returning as-is")
		return day
	}

	start := day
	for step := 0; step < maxExpansionSteps; step++ {
		prev := start.AddDays(-1)
		if cal.IsOfficeDay(prev) {
			return start
		}
		start = prev
	}

	logger.Warn("Boundary expansion hit step cap",
		zap.String("seed", day.String()),
		zap.String("reached", start.String()),
		zap.Int("max_steps", maxExpansionSteps))

	return start
}

// ExpandEnd is the mirror of ExpandStart, walking forward to the last
// day of the contiguous non-working span.
func ExpandEnd(day dateutil.Date, cal *Calendar, logger *zap.Logger) dateutil.Date {
	if day.IsZero() {
		logger.Warn("Invalid date passed to expansion, returning as-is")
		return day
	}

	end := day
	for step := 0; step < maxExpansionSteps; step++ {
		next := end.AddDays(1)
		if cal.IsOfficeDay(next) {
			return end
		}
		end = next
	}

	logger.Warn("Boundary expansion hit step cap",
		zap.String("seed", day.String()),
		zap.String("reached", end.String()),
		zap.Int("max_steps", maxExpansionSteps))

	return end
}
