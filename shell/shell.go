// Package shell implements the application controller for Ember Wallet:
// the window registry, tray state, update-check wiring, and the startup
// and teardown sequence. It holds no toolkit code of its own; everything
// toolkit-specific arrives through the Frontend interface, and calls from
// background goroutines are marshalled onto the UI thread through an
// injected invoke function.
package shell

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/emberwallet/ember/common"
	"github.com/emberwallet/ember/config"
	"github.com/emberwallet/ember/plugins"
	"github.com/emberwallet/ember/storage"
	"github.com/emberwallet/ember/updater"
	"github.com/emberwallet/ember/wallet"
)

// instanceLive guards the one-instance-per-process invariant.
var instanceLive atomic.Bool

// Options collects the collaborators a Shell needs.
type Options struct {
	Config      *config.Config
	Daemon      wallet.Daemon
	Frontend    Frontend
	Hooks       *plugins.Registry
	Checker     *updater.Checker
	Recent      *storage.RecentStore
	Credentials common.CredentialStore
	Logger      common.Logger

	// Invoke marshals a function onto the UI thread. Defaults to direct
	// invocation, which is only correct in tests.
	Invoke func(func())
	// Housekeep runs once per housekeeping tick (log rotation checks).
	Housekeep func()
}

// Shell is the application controller. Construct exactly one per process
// with New; a second construction panics.
type Shell struct {
	cfg       *config.Config
	daemon    wallet.Daemon
	frontend  Frontend
	hooks     *plugins.Registry
	checker   *updater.Checker
	scheduler *updater.Scheduler
	recent    *storage.RecentStore
	creds     common.CredentialStore
	logger    common.Logger
	invoke    func(func())
	housekeep func()

	registry registry

	quitOnce    sync.Once
	cleanupOnce sync.Once

	gcMu      sync.Mutex
	gcPending bool

	housekeepStop chan struct{}
	signalStop    chan struct{}
}

// New constructs the shell. Only one Shell may exist per process;
// constructing a second is a programming error and panics.
func New(opts Options) *Shell {
	if !instanceLive.CompareAndSwap(false, true) {
		panic("shell: application controller constructed twice")
	}
	if opts.Invoke == nil {
		opts.Invoke = func(f func()) { f() }
	}
	s := &Shell{
		cfg:       opts.Config,
		daemon:    opts.Daemon,
		frontend:  opts.Frontend,
		hooks:     opts.Hooks,
		checker:   opts.Checker,
		recent:    opts.Recent,
		creds:     opts.Credentials,
		logger:    opts.Logger,
		invoke:    opts.Invoke,
		housekeep: opts.Housekeep,
	}
	s.scheduler = updater.NewScheduler(s.autoCheck, s.offline, opts.Logger)
	return s
}

// Run resolves network bootstrap configuration, opens the initial window,
// starts timers and the signal handler, and blocks in the event loop.
// Teardown is guaranteed to run when Run returns, however the loop exits.
func (s *Shell) Run(walletPath, uri string) error {
	defer s.cleanUp()

	// Resolve the server-selection decision before any window opens. A
	// cancelled dialog aborts startup entirely, with no window and no
	// event loop.
	if s.daemon.Network() != nil && s.cfg.AutoConnect == nil {
		auto, err := s.frontend.ResolveAutoConnect()
		if errors.Is(err, common.ErrUserCancelled) {
			s.logger.Info("Network bootstrap cancelled, exiting")
			return nil
		}
		if err != nil {
			return common.WrapError(err, "network bootstrap failed")
		}
		if err := s.cfg.SetAutoConnect(auto); err != nil {
			s.logger.Warn("Failed to persist auto_connect: %v", err)
		}
	}

	common.InstallCrashHook(func(title, detail string) {
		s.invoke(func() { s.frontend.ShowError(title + "\n\n" + detail) })
	})

	s.hooks.Run(plugins.HookInitUI, s)

	win, err := s.OpenOrFocus(walletPath, uri)
	if err != nil {
		s.logger.Error("Failed to open initial wallet: %v", err)
		return err
	}
	if win == nil {
		// Wizard cancelled or wallet rejected; nothing to show.
		return nil
	}

	s.startHousekeeping()
	s.installSignalHandler()

	s.scheduler.SetEnabled(s.cfg.AutoUpdateCheck)
	s.scheduler.Start()

	return s.frontend.RunLoop()
}

// OpenOrFocus opens a window for the wallet at path, or raises the
// existing one. An empty path falls back to the configured wallet,
// substituting the last-used wallet when no windows are open yet. It
// returns nil with no error when the flow ended without a window for a
// non-error reason (wizard cancelled, hardware wallet rejected).
func (s *Shell) OpenOrFocus(path, uri string) (win Window, err error) {
	defer func() {
		if r := recover(); r != nil {
			common.ReportPanic("opening wallet window", r)
			s.frontend.ShowError(fmt.Sprintf("Cannot open wallet:\n%v", r))
			win, err = nil, nil
		}
	}()

	if path == "" {
		if s.registry.size() == 0 {
			s.cfg.OpenLast()
		}
		path, err = s.cfg.GetWalletPath()
		if err != nil {
			return nil, err
		}
	}
	path = wallet.StandardizePath(path)

	// At most one window per wallet path: an already-open path is raised,
	// never duplicated.
	if existing := s.registry.find(path); existing != nil {
		if uri != "" {
			existing.OpenPaymentURI(uri)
		}
		existing.BringToFront()
		return existing, nil
	}

	wlt, err := s.loadWallet(path)
	if err != nil {
		if s.registry.size() > 0 {
			// Other windows exist: a broken wallet is a real error.
			s.logger.Error("Failed to load wallet %s: %v", path, err)
			s.frontend.ShowError(fmt.Sprintf("Cannot load wallet:\n%v", err))
			return nil, err
		}
		// First run: swallow the failure and fall through to creation.
		s.logger.Warn("Failed to load wallet %s, starting wizard: %v", path, err)
		wlt = nil
	}

	if wlt != nil && wlt.HasHardware() {
		s.frontend.ShowWarning(common.ErrHardwareUnsupported.Error())
		s.daemon.StopWallet(path)
		return nil, nil
	}

	if wlt == nil {
		wizPath := path
		if common.FileExists(path) {
			// The file exists but would not load; create alongside it.
			wizPath = wallet.NewWalletPath(filepath.Dir(path))
		}
		wlt, err = s.runWizard(wizPath)
		if err != nil {
			if errors.Is(err, common.ErrUserCancelled) || errors.Is(err, common.ErrWizardGoBack) {
				return nil, nil
			}
			return nil, err
		}
		if wlt == nil {
			return nil, nil
		}
	}

	if err := s.daemon.AddWallet(wlt); err != nil && !errors.Is(err, common.ErrWalletAlreadyLoaded) {
		return nil, common.WrapError(err, "failed to register wallet")
	}

	win = s.frontend.NewWindow(wlt)
	s.registry.add(win)
	s.frontend.RebuildTray()
	s.hooks.Run(plugins.HookNewWindow, win)
	s.rememberWallet(wlt.StoragePath())

	if uri != "" {
		win.OpenPaymentURI(uri)
	}
	win.BringToFront()
	return win, nil
}

// OpenFromBackground routes a window-open request from a non-UI goroutine
// (daemon thread, URI handler) onto the UI thread.
func (s *Shell) OpenFromBackground(path, uri string) {
	s.invoke(func() {
		s.OpenOrFocus(path, uri)
	})
}

// CloseWindow removes a window from the registry and destroys it. Closing
// the last window persists the last-wallet preference and requests quit,
// regardless of any auxiliary dialogs still open.
func (s *Shell) CloseWindow(win Window) {
	if !s.registry.remove(win) {
		return
	}
	s.frontend.RebuildTray()
	s.hooks.Run(plugins.HookCloseWindow, win)
	s.daemon.StopWallet(win.Wallet().StoragePath())
	win.Destroy()
	s.scheduleGC()

	if s.registry.size() == 0 {
		if err := s.cfg.SaveLastWallet(win.Wallet().StoragePath()); err != nil {
			s.logger.Warn("Failed to save last wallet: %v", err)
		}
		s.RequestQuit()
	}
}

// Windows returns the open windows in open order, for tray menu building.
func (s *Shell) Windows() []Window {
	return s.registry.list()
}

// WindowCount returns the number of open windows.
func (s *Shell) WindowCount() int {
	return s.registry.size()
}

// ToggleAllWindows implements the tray activation toggle: if every window
// is hidden, show and raise them all; otherwise hide them all.
func (s *Shell) ToggleAllWindows() {
	windows := s.registry.list()
	allHidden := true
	for _, w := range windows {
		if !w.IsHidden() {
			allHidden = false
			break
		}
	}
	for _, w := range windows {
		if allHidden {
			w.Show()
			w.BringToFront()
		} else {
			w.Hide()
		}
	}
}

// ToggleTrayIcon flips between the light and dark tray icon variants and
// persists the choice.
func (s *Shell) ToggleTrayIcon() {
	s.cfg.DarkTrayIcon = !s.cfg.DarkTrayIcon
	if err := s.cfg.Save(); err != nil {
		s.logger.Warn("Failed to persist tray icon preference: %v", err)
	}
	s.frontend.UpdateTrayIcon(s.cfg.DarkTrayIcon)
}

// SetAutoUpdateCheck persists the automatic-check preference and applies
// it to the scheduler without resetting its cadence.
func (s *Shell) SetAutoUpdateCheck(enabled bool) {
	s.cfg.AutoUpdateCheck = enabled
	if err := s.cfg.Save(); err != nil {
		s.logger.Warn("Failed to persist update-check preference: %v", err)
	}
	s.scheduler.SetEnabled(enabled)
}

// CheckUpdatesNow runs a manual update check off the UI thread and
// surfaces the result.
func (s *Shell) CheckUpdatesNow() {
	if s.offline() {
		s.frontend.ShowWarning(common.ErrOffline.Error())
		return
	}
	go func() {
		rel, err := s.checker.Check()
		s.invoke(func() {
			switch {
			case err != nil:
				s.logger.Warn("Update check failed: %v", err)
				s.frontend.ShowWarning(fmt.Sprintf("Update check failed: %v", err))
			case rel != nil:
				s.frontend.Notify("Update Available",
					fmt.Sprintf("%s %s is available.", common.AppName, rel.TagName))
			default:
				s.frontend.Notify(common.AppName, "You are up to date.")
			}
		})
	}()
}

// RequestQuit asks the event loop to exit. Only the first request has any
// effect.
func (s *Shell) RequestQuit() {
	s.quitOnce.Do(func() {
		s.logger.Info("Quit requested")
		s.frontend.Quit()
	})
}

// Shutdown runs teardown. It is idempotent and safe to wire to a
// toolkit "about to quit" signal in addition to Run's own deferred call,
// so teardown happens even if the loop never returns control.
func (s *Shell) Shutdown() {
	s.cleanUp()
}

// autoCheck is the scheduler's slot body. It skips when a manual check
// just ran, and only notifies; failures of an automatic check are logged,
// never shown.
func (s *Shell) autoCheck() {
	if s.checker.DidCheckRecently(common.UpdateCheckRecentWindow) {
		s.logger.Debug("Skipping automatic update check, one ran recently")
		return
	}
	rel, err := s.checker.Check()
	if err != nil {
		s.logger.Warn("Automatic update check failed: %v", err)
		return
	}
	if rel != nil {
		s.invoke(func() {
			s.frontend.Notify("Update Available",
				fmt.Sprintf("%s %s is available.", common.AppName, rel.TagName))
		})
	}
}

func (s *Shell) offline() bool {
	return s.daemon.Network() == nil
}

// loadWallet loads via the daemon, consulting the credential store for
// encrypted wallets before giving up.
func (s *Shell) loadWallet(path string) (wallet.Wallet, error) {
	wlt, err := s.daemon.LoadWallet(path, "")
	if err == nil {
		return wlt, nil
	}
	if errors.Is(err, common.ErrWalletEncrypted) && s.creds != nil {
		if password, credErr := s.creds.Get(path); credErr == nil {
			return s.daemon.LoadWallet(path, password)
		}
	}
	return nil, err
}

// runWizard runs the setup wizard and forces a synchronous reclamation
// pass afterwards, since dismissed wizards pin widget memory until
// finalizers run.
func (s *Shell) runWizard(path string) (wallet.Wallet, error) {
	defer runtime.GC()
	return s.frontend.RunWizard(path)
}

// scheduleGC arms a deferred collection nudge after a window closes.
// Requests arriving while one is pending coalesce into the armed timer
// instead of stacking.
func (s *Shell) scheduleGC() {
	s.gcMu.Lock()
	defer s.gcMu.Unlock()
	if s.gcPending {
		return
	}
	s.gcPending = true
	time.AfterFunc(common.GCNudgeDelay, func() {
		s.gcMu.Lock()
		s.gcPending = false
		s.gcMu.Unlock()
		runtime.GC()
	})
}

// rememberWallet records a successful open in the recent list.
func (s *Shell) rememberWallet(path string) {
	if s.recent == nil {
		return
	}
	if err := s.recent.Touch(path); err != nil {
		s.logger.Warn("Failed to record recent wallet: %v", err)
	}
}

func (s *Shell) startHousekeeping() {
	if s.housekeep == nil {
		return
	}
	s.housekeepStop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(common.HousekeepingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.housekeep()
			case <-s.housekeepStop:
				return
			}
		}
	}()
}

func (s *Shell) installSignalHandler() {
	s.signalStop = make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			s.logger.Info("Received signal %v, shutting down", sig)
			s.invoke(s.RequestQuit)
		case <-s.signalStop:
		}
		signal.Stop(sigCh)
	}()
}

// cleanUp is the guaranteed teardown path. Every step runs even if an
// earlier one fails; it is safe to call more than once.
func (s *Shell) cleanUp() {
	s.cleanupOnce.Do(func() {
		s.logger.Info("Shutting down")

		s.scheduler.Stop()
		if s.housekeepStop != nil {
			close(s.housekeepStop)
		}
		if s.signalStop != nil {
			close(s.signalStop)
		}

		// The hook must go before UI teardown so late panics don't
		// re-enter half-destroyed widgets.
		common.UninstallCrashHook()

		s.frontend.PersistClipboard()
		s.frontend.HideTray()

		if err := s.cfg.Save(); err != nil {
			s.logger.Warn("Failed to save configuration on exit: %v", err)
		}
		if s.recent != nil {
			if err := s.recent.Close(); err != nil {
				s.logger.Warn("Failed to close recent-wallet store: %v", err)
			}
		}
		s.daemon.Stop()
	})
}
