package optimizer

import (
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/username/vacation-planner/pkg/dateutil"
)

// vacationKey builds the deduplication key for a candidate: its sorted
// vacation-day dates joined into one string.
func vacationKey(days []dateutil.Date) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = d.String()
	}
	return strings.Join(parts, ",")
}

// dedupeBest collapses candidates that spend the exact same vacation
// days, keeping the highest-scoring one. First-seen order is preserved
// so the result is deterministic.
func dedupeBest(periods []Period) []Period {
	index := make(map[string]int)
	result := []Period{}

	for _, p := range periods {
		key := vacationKey(p.VacationDays)
		if i, ok := index[key]; ok {
			if p.Score > result[i].Score {
				result[i] = p
			}
			continue
		}
		index[key] = len(result)
		result = append(result, p)
	}

	return result
}

// Select deduplicates and ranks the candidate pool, then greedily
// assembles a non-overlapping set within the given budget. Accepted
// periods cover their full span, so later candidates may not reuse any
// calendar day of an accepted one. The result is sorted by start date.
func Select(candidates []Period, budget float64, logger *zap.Logger) []Period {
	pool := []Period{}
	for _, p := range dedupeBest(candidates) {
		if len(p.VacationDays) == 0 || math.IsInf(p.Score, -1) {
			continue
		}
		pool = append(pool, p)
	}

	// Rank by score; equal scores break by earlier start date so runs
	// with identical inputs always pick the same periods.
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Score != pool[j].Score {
			return pool[i].Score > pool[j].Score
		}
		return pool[i].StartDate.Before(pool[j].StartDate)
	})

	logger.Debug("Candidate pool ranked",
		zap.Int("candidates", len(pool)),
		zap.Float64("budget", budget))

	covered := make(map[dateutil.Date]bool)
	remaining := budget
	selected := []Period{}

	for _, p := range pool {
		if remaining <= 0 {
			break
		}
		if p.Cost > remaining {
			continue
		}

		overlaps := false
		for _, d := range p.VacationDays {
			if covered[d] {
				overlaps = true
				break
			}
		}
		if overlaps {
			logger.Debug("Candidate overlaps accepted period, skipping",
				zap.String("start", p.StartDate.String()),
				zap.String("strategy", p.Strategy.String()))
			continue
		}

		remaining -= p.Cost
		for d := p.StartDate; !d.After(p.EndDate); d = d.AddDays(1) {
			covered[d] = true
		}
		selected = append(selected, p)

		logger.Debug("Candidate accepted",
			zap.String("start", p.StartDate.String()),
			zap.String("end", p.EndDate.String()),
			zap.String("strategy", p.Strategy.String()),
			zap.Float64("cost", p.Cost),
			zap.Float64("score", p.Score),
			zap.Float64("remaining_budget", remaining))
	}

	sort.Slice(selected, func(i, j int) bool {
		return selected[i].StartDate.Before(selected[j].StartDate)
	})

	return selected
}

// Optimize runs all three candidate generators over the available
// workdays and selects the best budget-respecting combination.
func Optimize(available []dateutil.Date, cal *Calendar, weights Weights, budget float64, logger *zap.Logger) []Period {
	if budget <= 0 || len(available) == 0 {
		logger.Info("Nothing to optimize",
			zap.Float64("budget", budget),
			zap.Int("available_workdays", len(available)))
		return []Period{}
	}

	candidates := []Period{}
	candidates = append(candidates, GenerateBridges(available, cal, weights, logger)...)
	candidates = append(candidates, GenerateHolidayLinks(available, cal, weights, logger)...)
	candidates = append(candidates, GenerateLongWeekends(available, cal, weights, logger)...)

	logger.Info("Candidate generation completed",
		zap.Int("candidates", len(candidates)),
		zap.Int("available_workdays", len(available)))

	return Select(candidates, budget, logger)
}
