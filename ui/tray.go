// Package ui provides the GTK4 user interface for Ember Wallet.
// This file contains the system tray indicator.
package ui

import (
	"sync"

	"fyne.io/systray"

	"github.com/emberwallet/ember/common"
	"github.com/emberwallet/ember/shell"
)

// Pre-generated icons for performance.
var (
	iconLight = GenerateLightIcon()
	iconDark  = GenerateDarkIcon()
)

// Tray manages the system tray icon and its menu. The menu is derived
// state: it is torn down and rebuilt from the shell's window list every
// time registry membership changes.
type Tray struct {
	app    *App
	invoke func(func())

	mu      sync.Mutex
	ready   bool
	stopGen chan struct{}
}

// NewTray creates the tray indicator.
func NewTray(app *App) *Tray {
	return &Tray{app: app, invoke: app.Invoke}
}

// Run starts the tray indicator. Call from a goroutine; it blocks until
// Stop.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the systray is ready.
func (t *Tray) onReady() {
	t.applyIcon(t.app.cfg.DarkTrayIcon)
	systray.SetTitle(common.AppName)
	systray.SetTooltip(common.AppName)

	t.mu.Lock()
	t.ready = true
	t.mu.Unlock()

	// onReady runs on the systray goroutine; the menu is built from the
	// shell's window list, which only the UI thread may read.
	t.requestRebuild()
}

// requestRebuild marshals a menu rebuild onto the UI thread.
func (t *Tray) requestRebuild() {
	t.invoke(t.Rebuild)
}

// onExit is called when the systray is about to exit.
func (t *Tray) onExit() {
	common.LogInfo("Tray indicator cleanup completed")
}

// Rebuild tears the menu down completely and reconstructs it from the
// current window list. Submenus are dropped with the reset rather than
// cleared in place, so stale nested items cannot leak across rebuilds.
func (t *Tray) Rebuild() {
	t.mu.Lock()
	if !t.ready {
		t.mu.Unlock()
		return
	}
	// Retire the click listeners of the previous menu generation
	if t.stopGen != nil {
		close(t.stopGen)
	}
	t.stopGen = make(chan struct{})
	stop := t.stopGen
	t.mu.Unlock()

	systray.ResetMenu()
	t.buildMenu(stop)
}

func (t *Tray) buildMenu(stop chan struct{}) {
	windows := t.app.sh.Windows()

	// One submenu per open wallet window
	for _, win := range windows {
		win := win
		sub := systray.AddMenuItem(win.Wallet().Basename(), "Open wallet")

		showHide := sub.AddSubMenuItem("Show/Hide", "Toggle window visibility")
		t.onClick(showHide, stop, func() {
			if win.IsHidden() {
				win.Show()
				win.BringToFront()
			} else {
				win.Hide()
			}
		})

		closeItem := sub.AddSubMenuItem("Close", "Close this wallet")
		t.onClick(closeItem, stop, func() {
			t.app.sh.CloseWindow(win)
		})
	}

	if len(windows) > 0 {
		systray.AddSeparator()
	}

	toggleAll := systray.AddMenuItem("Show/Hide All Windows", "Toggle all wallet windows")
	t.onClick(toggleAll, stop, func() {
		t.app.sh.ToggleAllWindows()
	})

	toggleIcon := systray.AddMenuItemCheckbox("Dark Tray Icon", "Switch the tray icon variant",
		t.app.cfg.DarkTrayIcon)
	t.onClick(toggleIcon, stop, func() {
		t.app.sh.ToggleTrayIcon()
		if t.app.cfg.DarkTrayIcon {
			toggleIcon.Check()
		} else {
			toggleIcon.Uncheck()
		}
	})

	updateItem := systray.AddMenuItem("Check for Updates...", "Check for a newer release")
	t.onClick(updateItem, stop, func() {
		t.app.sh.CheckUpdatesNow()
	})

	systray.AddSeparator()

	exitItem := systray.AddMenuItem("Exit "+common.AppName, "Close all wallets and quit")
	t.onClick(exitItem, stop, func() {
		t.app.sh.RequestQuit()
	})
}

// onClick runs fn on the UI thread for every click, until this menu
// generation is retired.
func (t *Tray) onClick(item *systray.MenuItem, stop chan struct{}, fn func()) {
	go func() {
		for {
			select {
			case _, ok := <-item.ClickedCh:
				if !ok {
					return
				}
				t.invoke(fn)
			case <-stop:
				return
			}
		}
	}()
}

// SetIconDark switches between the light and dark icon variants.
func (t *Tray) SetIconDark(dark bool) {
	t.applyIcon(dark)
}

func (t *Tray) applyIcon(dark bool) {
	if dark {
		systray.SetIcon(iconDark)
	} else {
		systray.SetIcon(iconLight)
	}
}

// Stop removes the tray icon. Called during teardown.
func (t *Tray) Stop() {
	t.mu.Lock()
	ready := t.ready
	t.ready = false
	if t.stopGen != nil {
		close(t.stopGen)
		t.stopGen = nil
	}
	t.mu.Unlock()

	if ready {
		systray.Quit()
	}
}
