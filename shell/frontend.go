package shell

import (
	"github.com/emberwallet/ember/wallet"
)

// Window is one open wallet window as the shell sees it. Implementations
// wrap a toolkit window; fakes stand in for tests.
type Window interface {
	// Wallet returns the wallet this window displays.
	Wallet() wallet.Wallet
	// BringToFront raises the window and gives it input focus.
	BringToFront()
	// Show makes a hidden window visible again.
	Show()
	// Hide hides the window without closing it.
	Hide()
	// IsHidden reports whether the window is currently hidden.
	IsHidden() bool
	// Destroy tears the toolkit window down. It must not re-enter the
	// shell's close flow.
	Destroy()
	// OpenPaymentURI routes a payment URI into the window.
	OpenPaymentURI(uri string)
}

// Frontend is the toolkit-facing side of the shell: it creates windows,
// runs dialogs and the wizard, and owns the tray icon and event loop. All
// methods are called on the UI thread.
type Frontend interface {
	// NewWindow creates a window for a loaded wallet.
	NewWindow(w wallet.Wallet) Window

	// RunWizard runs the create/restore wizard for the given target path.
	// It returns common.ErrUserCancelled or common.ErrWizardGoBack when
	// the user backs out, and must tear its own widgets down on every
	// outcome.
	RunWizard(path string) (wallet.Wallet, error)

	// ResolveAutoConnect asks the user how to pick a server. It returns
	// common.ErrUserCancelled when the dialog is dismissed.
	ResolveAutoConnect() (bool, error)

	// ShowError and ShowWarning present modal dialogs.
	ShowError(message string)
	ShowWarning(message string)

	// Notify sends a desktop notification.
	Notify(title, message string)

	// RebuildTray tears down and reconstructs the tray menu from the
	// shell's current window list.
	RebuildTray()
	// UpdateTrayIcon switches between the light and dark icon variants.
	UpdateTrayIcon(dark bool)
	// HideTray removes the tray icon during teardown.
	HideTray()

	// PersistClipboard hands clipboard contents to the session clipboard
	// manager so they survive process exit.
	PersistClipboard()

	// RunLoop blocks in the toolkit event loop until Quit is called.
	RunLoop() error
	// Quit requests that RunLoop return.
	Quit()
}
