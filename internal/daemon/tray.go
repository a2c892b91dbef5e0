//go:build windows
// +build windows

package daemon

import (
	"syscall"
	"unsafe"

	"fyne.io/systray"
	"go.uber.org/zap"
)

var (
	user32      = syscall.NewLazyDLL("user32.dll")
	messageBoxW = user32.NewProc("MessageBoxW")
)

const (
	MB_OK              = 0x00000000
	MB_ICONINFORMATION = 0x00000040
)

// TrayApp represents the system tray application
type TrayApp struct {
	daemon *Daemon
	logger *zap.Logger
	quit   chan struct{}
}

// NewTrayApp creates a new system tray application
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return &TrayApp{
		daemon: daemon,
		logger: logger,
		quit:   make(chan struct{}),
	}, nil
}

// Run starts the system tray application (blocks until Quit)
func (t *TrayApp) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *TrayApp) onReady() {
	systray.SetIcon(getCalendarIcon())
	systray.SetTitle("VP")
	systray.SetTooltip("Vacation Planner")

	// Add menu items
	mRefreshNow := systray.AddMenuItem("Refresh Now", "Recompute the vacation plan immediately")
	systray.AddSeparator()
	mNextDayOff := systray.AddMenuItem("Next Day Off", "Show the next recommended vacation day")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit the application")

	// Start daemon logic in background
	go t.daemon.runScheduledLogic()

	// Handle menu item clicks
	go func() {
		for {
			select {
			case <-mRefreshNow.ClickedCh:
				t.logger.Info("Refresh Now clicked from tray")
				go t.daemon.RefreshNow()
			case <-mNextDayOff.ClickedCh:
				t.logger.Info("Next Day Off clicked from tray")
				t.showNextDayOff()
			case <-mQuit.ClickedCh:
				t.logger.Info("Quit clicked from tray")
				t.daemon.Stop()
				systray.Quit()
				return
			case <-t.quit:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *TrayApp) onExit() {
	t.logger.Info("System tray exited")
}

// Stop stops the system tray application
func (t *TrayApp) Stop() {
	close(t.quit)
}

// ShowNotification shows a notification (Windows only)
func (t *TrayApp) ShowNotification(title, message string) {
	// fyne.io/systray doesn't have built-in notification support
	// Just log for now
	t.logger.Info("Notification", zap.String("title", title), zap.String("message", message))
}

// showNextDayOff shows the next recommended vacation day
func (t *TrayApp) showNextDayOff() {
	label := t.daemon.NextDayOffLabel()
	systray.SetTooltip(label)
	showMessageBox("Vacation Planner", label)
}

func showMessageBox(title, message string) {
	titlePtr, _ := syscall.UTF16PtrFromString(title)
	messagePtr, _ := syscall.UTF16PtrFromString(message)
	messageBoxW.Call(
		0,
		uintptr(unsafe.Pointer(messagePtr)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(MB_OK|MB_ICONINFORMATION),
	)
}

// getCalendarIcon returns a minimal embedded 1x1 32-bit ICO so the
// tray has something to render without shipping an asset file
func getCalendarIcon() []byte {
	return []byte{
		// ICONDIR
		0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
		// ICONDIRENTRY: 1x1, 32bpp, 48 bytes at offset 22
		0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x20, 0x00,
		0x30, 0x00, 0x00, 0x00, 0x16, 0x00, 0x00, 0x00,
		// BITMAPINFOHEADER: 1x2 (XOR+AND), 32bpp
		0x28, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00, 0x01, 0x00, 0x20, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		// XOR: one opaque pixel (BGRA)
		0xD4, 0x7B, 0x2E, 0xFF,
		// AND mask
		0x00, 0x00, 0x00, 0x00,
	}
}
