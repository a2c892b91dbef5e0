package daemon

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/username/vacation-planner/internal/planner"
	"github.com/username/vacation-planner/pkg/dateutil"
)

// Refresher recomputes the vacation plan from fresh holiday data and
// persists it
type Refresher interface {
	Refresh() (*planner.VacationPlan, error)
}

// Daemon keeps the saved vacation plan current by refreshing it once a
// day at a configured time. Published holiday calendars change during
// the year, so a stale plan can recommend days that are no longer
// optimal.
type Daemon struct {
	refresher   Refresher
	dailyHour   int // Hour to run the daily refresh (0-23)
	dailyMinute int // Minute to run the daily refresh (0-59)
	systemTray  bool
	logger      *zap.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	trayApp     *TrayApp
	lastRunDate string // Last successful run date, to avoid duplicates
	mu          sync.Mutex
	lastPlan    *planner.VacationPlan
}

// NewDaemon creates a new daemon instance with a daily schedule
func NewDaemon(refresher Refresher, dailyHour, dailyMinute int, systemTray bool, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	return &Daemon{
		refresher:   refresher,
		dailyHour:   dailyHour,
		dailyMinute: dailyMinute,
		systemTray:  systemTray,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start starts the daemon
func (d *Daemon) Start() error {
	// Initialize system tray if enabled (Windows only)
	if d.systemTray {
		d.logger.Info("Initializing system tray")
		trayApp, err := NewTrayApp(d, d.logger)
		if err != nil {
			d.logger.Warn("Failed to initialize system tray", zap.Error(err))
			// Fall back to console mode
			d.runScheduledLogic()
			return nil
		}
		d.trayApp = trayApp
		// Run tray (blocks until Quit)
		d.trayApp.Run()
		return nil
	}

	d.logger.Info("Running without system tray")
	d.runScheduledLogic()
	return nil
}

// runScheduledLogic runs the refresh loop (called from tray or standalone)
func (d *Daemon) runScheduledLogic() {
	d.logger.Info("Daemon scheduled logic started",
		zap.Int("daily_hour", d.dailyHour),
		zap.Int("daily_minute", d.dailyMinute))

	// Refresh immediately if the scheduled time already passed today
	now := time.Now()
	today := now.Format("2006-01-02")

	scheduledToday := time.Date(now.Year(), now.Month(), now.Day(),
		d.dailyHour, d.dailyMinute, 0, 0, time.Local)

	if now.After(scheduledToday) && d.lastRunDate != today {
		d.logger.Info("Scheduled time already passed today, refreshing now",
			zap.Time("scheduled_time", scheduledToday))
		d.runRefresh(today)
	}

	nextRun := d.calculateNextRun()
	d.logger.Info("Next refresh scheduled",
		zap.Time("next_run", nextRun),
		zap.Duration("wait_duration", time.Until(nextRun)))

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Check every minute if it's time to run
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			d.logger.Info("Daemon stopped")
			if d.trayApp != nil {
				d.trayApp.Stop()
			}
			return

		case sig := <-sigChan:
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			if d.trayApp != nil {
				d.trayApp.Stop()
			}
			d.Stop()
			return

		case now := <-ticker.C:
			if !d.shouldRunAt(now) {
				continue
			}

			today := now.Format("2006-01-02")
			if d.lastRunDate == today {
				d.logger.Debug("Already refreshed today, skipping")
				continue
			}

			d.logger.Info("Starting scheduled refresh", zap.Time("time", now))
			d.runRefresh(today)

			nextRun = d.calculateNextRun()
			d.logger.Info("Next refresh scheduled",
				zap.Time("next_run", nextRun),
				zap.Duration("wait_duration", time.Until(nextRun)))
		}
	}
}

// runRefresh performs one plan refresh and records the outcome
func (d *Daemon) runRefresh(today string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	plan, err := d.refresher.Refresh()
	if err != nil {
		d.logger.Error("Plan refresh failed", zap.Error(err))
		if d.trayApp != nil {
			d.trayApp.ShowNotification("Refresh Failed", err.Error())
		}
		return
	}

	d.lastRunDate = today
	d.lastPlan = plan
	d.logger.Info("Plan refreshed",
		zap.Int("periods", len(plan.Periods)),
		zap.Int("total_days_off", plan.TotalDaysOff))

	if d.trayApp != nil {
		d.trayApp.ShowNotification("Plan Refreshed", d.nextDayOffLocked())
	}
}

// RefreshNow triggers an immediate refresh (from the tray menu)
func (d *Daemon) RefreshNow() {
	d.runRefresh(time.Now().Format("2006-01-02"))
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}

// NextDayOffLabel describes the next recommended vacation day from the
// last refreshed plan
func (d *Daemon) NextDayOffLabel() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nextDayOffLocked()
}

// nextDayOffLocked requires d.mu to be held
func (d *Daemon) nextDayOffLocked() string {
	if d.lastPlan == nil {
		return "No plan computed yet"
	}

	today := dateutil.Today()
	for _, day := range d.lastPlan.RecommendedDays {
		if !day.Before(today) {
			return "Next day off: " + day.String()
		}
	}

	return "No upcoming days off planned"
}

// calculateNextRun calculates the next scheduled refresh time
func (d *Daemon) calculateNextRun() time.Time {
	now := time.Now()

	today := time.Date(now.Year(), now.Month(), now.Day(),
		d.dailyHour, d.dailyMinute, 0, 0, time.Local)

	// If target time already passed today, schedule for tomorrow
	if now.After(today) || now.Equal(today) {
		return today.AddDate(0, 0, 1)
	}

	return today
}

// shouldRunAt checks if the refresh should run at the given time
// (within a 1 minute window)
func (d *Daemon) shouldRunAt(now time.Time) bool {
	return now.Hour() == d.dailyHour && now.Minute() == d.dailyMinute
}
