package ui

import (
	"context"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/emberwallet/ember/common"
	"github.com/emberwallet/ember/config"
	"github.com/emberwallet/ember/shell"
	"github.com/emberwallet/ember/storage"
	"github.com/emberwallet/ember/wallet"
)

// App is the GTK frontend of the shell. It creates windows and dialogs,
// owns the tray indicator and the main loop, and implements
// shell.Frontend. All methods run on the GTK main thread; the shell
// marshals cross-thread work in through glib.IdleAdd.
type App struct {
	cfg      *config.Config
	recent   *storage.RecentStore
	sh       *shell.Shell
	tray     *Tray
	notifier common.Notifier
	palette  SemanticPalette

	offline bool
	version string

	mainLoop *glib.MainLoop
}

// NewApp initializes GTK and prepares the frontend. The shell is attached
// afterwards with SetShell, since shell and frontend reference each other.
func NewApp(cfg *config.Config, recent *storage.RecentStore, offline bool, version string) *App {
	gtk.Init()

	a := &App{
		cfg:      cfg,
		recent:   recent,
		notifier: DesktopNotifier{},
		offline:  offline,
		version:  version,
	}

	ApplyTheme(cfg.Theme)
	a.palette = ComputePalette()
	LoadStyles()
	a.setupAppIcon()

	a.tray = NewTray(a)

	return a
}

// SetShell attaches the application controller. Must be called before any
// window opens.
func (a *App) SetShell(sh *shell.Shell) {
	a.sh = sh
}

// Invoke marshals a function onto the GTK main thread. Wire this into the
// shell's Options.
func (a *App) Invoke(fn func()) {
	glib.IdleAdd(fn)
}

// Palette returns the semantic colors for the effective style.
func (a *App) Palette() SemanticPalette {
	return a.palette
}

// Version returns the application version.
func (a *App) Version() string {
	return a.version
}

// setupAppIcon registers the default window icon.
func (a *App) setupAppIcon() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}
	gtk.WindowSetDefaultIconName("ember-wallet")
}

// NewWindow creates a window for a loaded wallet.
func (a *App) NewWindow(w wallet.Wallet) shell.Window {
	return NewWalletWindow(a, w)
}

// RunWizard runs the create/restore wizard for the given target path.
func (a *App) RunWizard(path string) (wallet.Wallet, error) {
	return RunSetupWizard(path)
}

// ResolveAutoConnect asks the user how to pick a server.
func (a *App) ResolveAutoConnect() (bool, error) {
	return runAutoConnectDialog()
}

// ShowError presents a blocking error dialog.
func (a *App) ShowError(message string) {
	ShowErrorDialog(message)
}

// ShowWarning presents a blocking warning dialog.
func (a *App) ShowWarning(message string) {
	ShowWarningDialog(message)
}

// Notify sends a desktop notification, respecting the user preference.
func (a *App) Notify(title, message string) {
	if !a.cfg.ShowNotifications {
		return
	}
	if err := a.notifier.Notify(title, message); err != nil {
		common.LogWarn("Notification failed: %v", err)
	}
}

// RebuildTray reconstructs the tray menu from the shell's window list.
func (a *App) RebuildTray() {
	a.tray.Rebuild()
}

// UpdateTrayIcon switches between the light and dark icon variants.
func (a *App) UpdateTrayIcon(dark bool) {
	a.tray.SetIconDark(dark)
}

// HideTray removes the tray icon during teardown.
func (a *App) HideTray() {
	a.tray.Stop()
}

// PersistClipboard re-owns the current clipboard text so the session
// clipboard manager keeps it after the process exits. Best effort.
func (a *App) PersistClipboard() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}
	clipboard := display.Clipboard()
	clipboard.ReadTextAsync(context.Background(), func(res gio.AsyncResulter) {
		text, err := clipboard.ReadTextFinish(res)
		if err == nil && text != "" {
			clipboard.SetText(text)
		}
	})
}

// RunLoop starts the tray indicator and blocks in the GTK main loop until
// Quit is called.
func (a *App) RunLoop() error {
	go a.tray.Run()

	a.mainLoop = glib.NewMainLoop(nil, false)
	a.mainLoop.Run()
	return nil
}

// Quit requests that RunLoop return. Safe to call before the loop runs;
// startup paths that abort simply never enter it.
func (a *App) Quit() {
	if a.mainLoop != nil {
		a.mainLoop.Quit()
	}
	common.LogDebug("Main loop quit requested")
}
