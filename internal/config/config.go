package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/username/vacation-planner/pkg/dateutil"
)

// Config represents application configuration
type Config struct {
	Planner  PlannerConfig  `mapstructure:"planner"`
	Weights  WeightsConfig  `mapstructure:"weights"`
	Holidays HolidaysConfig `mapstructure:"holidays"`
	Daemon   DaemonConfig   `mapstructure:"daemon"`
	State    StateConfig    `mapstructure:"state"`
}

// PlannerConfig represents the planning inputs
type PlannerConfig struct {
	Budget          float64              `mapstructure:"budget"`
	Year            int                  `mapstructure:"year"`
	StartDate       string               `mapstructure:"start_date"`       // optional YYYY-MM-DD
	WorkdayWeekdays []int                `mapstructure:"workday_weekdays"` // 0=Sunday .. 6=Saturday
	RemoteWeekdays  []int                `mapstructure:"remote_weekdays"`  // subset of workday weekdays
	CompanyDays     []MandatoryDayConfig `mapstructure:"company_days"`
	MandatoryDays   []MandatoryDayConfig `mapstructure:"mandatory_days"`
}

// MandatoryDayConfig represents one pre-declared day off
type MandatoryDayConfig struct {
	Date     string  `mapstructure:"date"`
	Duration float64 `mapstructure:"duration"` // 0.5 or 1.0, default 1.0
}

// WeightsConfig represents scoring weight overrides
type WeightsConfig struct {
	Efficiency   float64 `mapstructure:"efficiency"`
	Gap          float64 `mapstructure:"gap"`
	Length       float64 `mapstructure:"length"`
	EarlyPenalty float64 `mapstructure:"early_penalty"`
}

// HolidaysConfig represents holiday data source configuration
type HolidaysConfig struct {
	Type         string `mapstructure:"type"` // "nager" or "file"
	Country      string `mapstructure:"country"`
	CacheTTL     string `mapstructure:"cache_ttl"`
	File         string `mapstructure:"file"`          // for "file" type
	FallbackFile string `mapstructure:"fallback_file"` // optional fallback for "nager" type
}

// DaemonConfig represents daemon mode configuration
type DaemonConfig struct {
	DailyTime  string `mapstructure:"daily_time"` // Time to refresh the plan (HH:MM format)
	LogFile    string `mapstructure:"log_file"`
	LogLevel   string `mapstructure:"log_level"`
	SystemTray bool   `mapstructure:"system_tray"` // Show system tray icon (Windows only)
}

// StateConfig represents plan state storage configuration
type StateConfig struct {
	PlanFile string `mapstructure:"plan_file"`
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.vacation-planner")
		v.AddConfigPath("/etc/vacation-planner")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Planner.Budget < 0 {
		return fmt.Errorf("planner.budget must not be negative")
	}

	if c.Planner.StartDate != "" {
		if _, err := dateutil.ParseDate(c.Planner.StartDate); err != nil {
			return fmt.Errorf("planner.start_date is invalid: %w", err)
		}
	}

	for _, i := range c.Planner.WorkdayWeekdays {
		if i < 0 || i > 6 {
			return fmt.Errorf("planner.workday_weekdays entries must be 0..6, got %d", i)
		}
	}
	for _, i := range c.Planner.RemoteWeekdays {
		if i < 0 || i > 6 {
			return fmt.Errorf("planner.remote_weekdays entries must be 0..6, got %d", i)
		}
	}

	mandatory := append([]MandatoryDayConfig{}, c.Planner.CompanyDays...)
	mandatory = append(mandatory, c.Planner.MandatoryDays...)
	for _, d := range mandatory {
		if _, err := dateutil.ParseDate(d.Date); err != nil {
			return fmt.Errorf("mandatory day date %q is invalid: %w", d.Date, err)
		}
		if d.Duration != 0 && d.Duration != 0.5 && d.Duration != 1.0 {
			return fmt.Errorf("mandatory day duration must be 0.5 or 1.0, got %v", d.Duration)
		}
	}

	switch c.Holidays.GetType() {
	case "nager":
		if c.Holidays.Country == "" {
			return fmt.Errorf("holidays.country is required for nager type")
		}
	case "file":
		if c.Holidays.File == "" {
			return fmt.Errorf("holidays.file is required for file type")
		}
	default:
		return fmt.Errorf("holidays.type must be 'nager' or 'file', got '%s'", c.Holidays.Type)
	}

	return nil
}

// GetYear returns the planning year, defaulting to the current year
func (p *PlannerConfig) GetYear() int {
	if p.Year == 0 {
		return time.Now().Year()
	}
	return p.Year
}

// GetStartDate returns the optional optimization start date, or the
// zero date when unset
func (p *PlannerConfig) GetStartDate() dateutil.Date {
	if p.StartDate == "" {
		return dateutil.Date{}
	}
	date, err := dateutil.ParseDate(p.StartDate)
	if err != nil {
		return dateutil.Date{}
	}
	return date
}

// GetWorkdaySet returns the workday weekday set, defaulting to Mon-Fri
func (p *PlannerConfig) GetWorkdaySet() map[time.Weekday]bool {
	if len(p.WorkdayWeekdays) == 0 {
		return dateutil.WeekdaySet([]int{1, 2, 3, 4, 5})
	}
	return dateutil.WeekdaySet(p.WorkdayWeekdays)
}

// GetRemoteSet returns the remote weekday set
func (p *PlannerConfig) GetRemoteSet() map[time.Weekday]bool {
	return dateutil.WeekdaySet(p.RemoteWeekdays)
}

// GetDuration returns the mandatory day's budget cost, defaulting to a
// full day
func (m *MandatoryDayConfig) GetDuration() float64 {
	if m.Duration == 0 {
		return 1.0
	}
	return m.Duration
}

// GetType returns the holiday source type, defaulting to nager
func (h *HolidaysConfig) GetType() string {
	if h.Type == "" {
		return "nager"
	}
	return h.Type
}

// GetCacheTTL returns holiday cache TTL duration
func (h *HolidaysConfig) GetCacheTTL() time.Duration {
	if h.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(h.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}

// GetDailyTime returns the configured daily plan refresh time.
// Returns hour and minute (0-23, 0-59). Default: 08:00
func (d *DaemonConfig) GetDailyTime() (hour, minute int) {
	if d.DailyTime == "" {
		return 8, 0
	}

	var h, m int
	_, err := fmt.Sscanf(d.DailyTime, "%d:%d", &h, &m)
	if err != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 8, 0
	}
	return h, m
}

// GetPlanFile returns the plan state file path with a default
func (s *StateConfig) GetPlanFile() string {
	if s.PlanFile == "" {
		return "plan-state.json"
	}
	return s.PlanFile
}
