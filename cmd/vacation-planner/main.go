package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/username/vacation-planner/internal/config"
	"github.com/username/vacation-planner/internal/daemon"
	"github.com/username/vacation-planner/internal/holidays"
	"github.com/username/vacation-planner/internal/optimizer"
	"github.com/username/vacation-planner/internal/planner"
	"github.com/username/vacation-planner/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     *zap.Logger
	planWriter io.Writer = os.Stdout
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vacation-planner",
		Short: "Vacation day optimizer",
		Long:  "Find the most efficient days to take off work using public holiday data and budget-aware optimization",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Daemon.LogFile != "" {
				logger, err = initFileLogger(cfg.Daemon.LogFile, cfg.Daemon.LogLevel)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path")

	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(holidaysCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(daemonCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func planCmd() *cobra.Command {
	var year int
	var budget float64
	var jsonOutput bool
	var noSave bool
	var teeOutput string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the optimal vacation plan for the year",
		RunE: func(cmd *cobra.Command, args []string) error {
			planWriter = os.Stdout
			if teeOutput != "" {
				if err := os.MkdirAll(filepath.Dir(teeOutput), 0o755); err != nil {
					return fmt.Errorf("failed to create tee path: %w", err)
				}
				f, err := os.OpenFile(teeOutput, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open tee-output file: %w", err)
				}
				defer f.Close()
				planWriter = io.MultiWriter(os.Stdout, f)
				planPrintf("📝 Output is mirrored to %s\n", teeOutput)
			}
			defer func() {
				planWriter = os.Stdout
			}()

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			provider, err := initializeProvider(cfg)
			if err != nil {
				return err
			}

			req := buildRequest(cfg)
			if year != 0 {
				req.Year = year
			}
			if cmd.Flags().Changed("budget") {
				req.Budget = budget
			}

			logger.Info("Starting plan computation",
				zap.Int("year", req.Year),
				zap.Float64("budget", req.Budget))

			p := planner.New(provider, buildWeights(cfg), logger)
			plan, err := p.BuildPlan(req)
			if err != nil {
				return fmt.Errorf("planning failed: %w", err)
			}

			if jsonOutput {
				data, err := json.MarshalIndent(plan, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode plan: %w", err)
				}
				planPrintln(string(data))
			} else {
				printPlan(plan)
			}

			if !noSave {
				state := planner.NewStateManager(cfg.State.GetPlanFile(), logger)
				if err := state.Save(plan); err != nil {
					return fmt.Errorf("failed to save plan: %w", err)
				}
				if !jsonOutput {
					planPrintf("\n💾 Plan saved to %s\n", cfg.State.GetPlanFile())
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Planning year (default from config, else current year)")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Vacation day budget (overrides config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the plan as JSON")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not persist the plan to the state file")
	cmd.Flags().StringVar(&teeOutput, "tee-output", "", "Mirror plan output to file (empty to disable)")

	return cmd
}

func holidaysCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List public holidays for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			provider, err := initializeProvider(cfg)
			if err != nil {
				return err
			}

			if year == 0 {
				year = cfg.Planner.GetYear()
			}

			list, err := provider.HolidaysForYear(year)
			if err != nil {
				return fmt.Errorf("failed to fetch holidays: %w", err)
			}

			planPrintf("📅 Public holidays in %d\n", year)
			planPrintln("═══════════════════════════════════════════════════════")
			for _, h := range list {
				planPrintf("  %s  %s  %s\n", h.Date, h.Date.Weekday().String()[:3], h.Name)
			}
			planPrintf("\nTotal: %d holiday(s)\n", len(list))

			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year to list (default from config, else current year)")

	return cmd
}

func showCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display the saved vacation plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			state := planner.NewStateManager(cfg.State.GetPlanFile(), logger)
			if err := state.Load(); err != nil {
				return fmt.Errorf("failed to load plan state: %w", err)
			}

			plan := state.Current()
			if plan == nil {
				planPrintln("No saved plan. Run 'vacation-planner plan' first.")
				return nil
			}

			if jsonOutput {
				data, err := json.MarshalIndent(plan, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode plan: %w", err)
				}
				planPrintln(string(data))
				return nil
			}

			printPlan(plan)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the plan as JSON")

	return cmd
}

func daemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run in background and refresh the plan daily",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			provider, err := initializeProvider(cfg)
			if err != nil {
				return err
			}

			refresher := &planRefresher{
				planner: planner.New(provider, buildWeights(cfg), logger),
				request: buildRequest(cfg),
				state:   planner.NewStateManager(cfg.State.GetPlanFile(), logger),
			}

			hour, minute := cfg.Daemon.GetDailyTime()
			d := daemon.NewDaemon(refresher, hour, minute, cfg.Daemon.SystemTray, logger)

			logger.Info("Starting daemon",
				zap.String("daily_time", fmt.Sprintf("%02d:%02d", hour, minute)),
				zap.Bool("system_tray", cfg.Daemon.SystemTray))

			return d.Start()
		},
	}
}

// planRefresher recomputes the plan against fresh holiday data and
// persists the result
type planRefresher struct {
	planner *planner.Planner
	request planner.Request
	state   *planner.StateManager
}

func (r *planRefresher) Refresh() (*planner.VacationPlan, error) {
	plan, err := r.planner.BuildPlan(r.request)
	if err != nil {
		return nil, err
	}
	if err := r.state.Save(plan); err != nil {
		return nil, fmt.Errorf("failed to save refreshed plan: %w", err)
	}
	return plan, nil
}

func planPrintf(format string, a ...interface{}) {
	if planWriter == nil {
		planWriter = os.Stdout
	}
	fmt.Fprintf(planWriter, format, a...)
}

func planPrintln(a ...interface{}) {
	if planWriter == nil {
		planWriter = os.Stdout
	}
	fmt.Fprintln(planWriter, a...)
}

func initializeProvider(cfg *config.Config) (holidays.Provider, error) {
	switch cfg.Holidays.GetType() {
	case "nager":
		logger.Info("Using date.nager.at holiday API",
			zap.String("country", cfg.Holidays.Country))
		nager := holidays.NewNagerProvider(
			cfg.Holidays.Country,
			cfg.Holidays.GetCacheTTL(),
			logger,
		)

		if cfg.Holidays.FallbackFile == "" {
			return nager, nil
		}

		fallback := holidays.NewFileProvider(cfg.Holidays.FallbackFile, logger)
		if err := fallback.Load(); err != nil {
			logger.Warn("Failed to load fallback holiday file, continuing with API only",
				zap.Error(err))
			return nager, nil
		}
		return holidays.NewCompositeProvider(nager, fallback, logger), nil

	case "file":
		logger.Info("Using holiday file", zap.String("file", cfg.Holidays.File))
		fp := holidays.NewFileProvider(cfg.Holidays.File, logger)
		if err := fp.Load(); err != nil {
			return nil, fmt.Errorf("failed to load holiday file: %w", err)
		}
		return fp, nil

	default:
		return nil, fmt.Errorf("unknown holiday source type: %s", cfg.Holidays.Type)
	}
}

func buildWeights(cfg *config.Config) optimizer.Weights {
	if (cfg.Weights == config.WeightsConfig{}) {
		return optimizer.DefaultWeights()
	}
	return optimizer.Weights{
		Efficiency:   cfg.Weights.Efficiency,
		Gap:          cfg.Weights.Gap,
		Length:       cfg.Weights.Length,
		EarlyPenalty: cfg.Weights.EarlyPenalty,
	}
}

func buildRequest(cfg *config.Config) planner.Request {
	return planner.Request{
		Budget:        cfg.Planner.Budget,
		Year:          cfg.Planner.GetYear(),
		StartDate:     cfg.Planner.GetStartDate(),
		Workdays:      cfg.Planner.GetWorkdaySet(),
		Remote:        cfg.Planner.GetRemoteSet(),
		CompanyDays:   mandatoryDays(cfg.Planner.CompanyDays),
		MandatoryDays: mandatoryDays(cfg.Planner.MandatoryDays),
	}
}

func mandatoryDays(entries []config.MandatoryDayConfig) []planner.MandatoryDay {
	days := make([]planner.MandatoryDay, 0, len(entries))
	for _, e := range entries {
		date, err := dateutil.ParseDate(e.Date)
		if err != nil {
			// Validated at config load; skip defensively
			continue
		}
		days = append(days, planner.MandatoryDay{Date: date, Duration: e.GetDuration()})
	}
	return days
}

func printPlan(plan *planner.VacationPlan) {
	planPrintf("🏖️  Vacation plan for %d\n", plan.Year)
	planPrintln("═══════════════════════════════════════════════════════")
	planPrintf("  Budget:         %.1f day(s)\n", plan.Budget)
	planPrintf("  Spent:          %.1f day(s)\n", plan.BudgetSpent)
	planPrintf("  Remaining:      %.1f day(s)\n", plan.BudgetRemaining)
	planPrintf("  Total days off: %d\n", plan.TotalDaysOff)

	if len(plan.Periods) == 0 {
		planPrintln("\nNo periods selected.")
		return
	}

	planPrintln("\n📆 Periods:")
	planPrintln("═══════════════════════════════════════════════════════")
	for _, p := range plan.Periods {
		icon := "✅"
		if p.Mandatory {
			icon = "📌"
		}
		planPrintf("%s %s .. %s  (%d day(s) off, cost %.1f",
			icon, p.StartDate, p.EndDate, p.TotalDaysOff, p.Cost)
		if p.Strategy != "" {
			planPrintf(", %s", p.Strategy)
		}
		planPrintln(")")
		if len(p.VacationDays) > 0 {
			planPrintf("   Take off: %s\n", joinDates(p.VacationDays))
		}
		for _, inc := range p.Includes {
			if inc.Name != "" {
				planPrintf("   Includes: %s (%s)\n", inc.Name, inc.Kind)
			} else {
				planPrintf("   Includes: %s\n", inc.Kind)
			}
		}
	}

	if len(plan.RecommendedDays) > 0 {
		planPrintf("\n🗓️  Recommended vacation days: %s\n", joinDates(plan.RecommendedDays))
	}
}

func joinDates(dates []dateutil.Date) string {
	parts := make([]string, len(dates))
	for i, d := range dates {
		parts[i] = d.String()
	}
	return strings.Join(parts, ", ")
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
