package holidays

import (
	"sort"

	"github.com/username/vacation-planner/pkg/dateutil"
)

// Holiday represents a single public holiday
type Holiday struct {
	Date dateutil.Date `json:"date"`
	Name string        `json:"name"`
}

// Provider supplies public holidays for a country and year
type Provider interface {
	// HolidaysForYear returns all public holidays of the year,
	// sorted ascending by date
	HolidaysForYear(year int) ([]Holiday, error)
}

// sortHolidays orders holidays ascending by date
func sortHolidays(list []Holiday) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].Date.Before(list[j].Date)
	})
}
