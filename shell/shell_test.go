package shell

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/emberwallet/ember/common"
	"github.com/emberwallet/ember/config"
	"github.com/emberwallet/ember/plugins"
	"github.com/emberwallet/ember/updater"
	"github.com/emberwallet/ember/wallet"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeWindow struct {
	wlt       wallet.Wallet
	hidden    bool
	raised    int
	destroyed bool
	uris      []string
}

func (w *fakeWindow) Wallet() wallet.Wallet     { return w.wlt }
func (w *fakeWindow) BringToFront()             { w.raised++; w.hidden = false }
func (w *fakeWindow) Show()                     { w.hidden = false }
func (w *fakeWindow) Hide()                     { w.hidden = true }
func (w *fakeWindow) IsHidden() bool            { return w.hidden }
func (w *fakeWindow) Destroy()                  { w.destroyed = true }
func (w *fakeWindow) OpenPaymentURI(uri string) { w.uris = append(w.uris, uri) }

type fakeFrontend struct {
	windows []*fakeWindow

	wizardCalls  int
	wizardPaths  []string
	wizardErr    error
	wizardCreate bool // create a real wallet file at the wizard path

	autoConnect    bool
	autoConnectErr error

	errorsShown   []string
	warningsShown []string
	notifications []string

	trayRebuilds int
	trayIcons    []bool
	trayHidden   bool

	clipboardPersisted bool
	quitCount          int
}

func (f *fakeFrontend) NewWindow(w wallet.Wallet) Window {
	win := &fakeWindow{wlt: w}
	f.windows = append(f.windows, win)
	return win
}

func (f *fakeFrontend) RunWizard(path string) (wallet.Wallet, error) {
	f.wizardCalls++
	f.wizardPaths = append(f.wizardPaths, path)
	if f.wizardErr != nil {
		return nil, f.wizardErr
	}
	if f.wizardCreate {
		return wallet.Create(path, "")
	}
	return nil, common.ErrUserCancelled
}

func (f *fakeFrontend) ResolveAutoConnect() (bool, error) {
	return f.autoConnect, f.autoConnectErr
}

func (f *fakeFrontend) ShowError(msg string)          { f.errorsShown = append(f.errorsShown, msg) }
func (f *fakeFrontend) ShowWarning(msg string)        { f.warningsShown = append(f.warningsShown, msg) }
func (f *fakeFrontend) Notify(title, message string)  { f.notifications = append(f.notifications, title) }
func (f *fakeFrontend) RebuildTray()                  { f.trayRebuilds++ }
func (f *fakeFrontend) UpdateTrayIcon(dark bool)      { f.trayIcons = append(f.trayIcons, dark) }
func (f *fakeFrontend) HideTray()                     { f.trayHidden = true }
func (f *fakeFrontend) PersistClipboard()             { f.clipboardPersisted = true }
func (f *fakeFrontend) RunLoop() error                { return nil }
func (f *fakeFrontend) Quit()                         { f.quitCount++ }

type testEnv struct {
	shell    *Shell
	frontend *fakeFrontend
	daemon   *wallet.LocalDaemon
	cfg      *config.Config
	dir      string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	instanceLive.Store(false)
	t.Cleanup(func() { instanceLive.Store(false) })

	dir := t.TempDir()
	cfg, err := config.LoadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	frontend := &fakeFrontend{wizardCreate: true}
	daemon := wallet.NewLocalDaemon(nil, nopLogger{})

	s := New(Options{
		Config:   cfg,
		Daemon:   daemon,
		Frontend: frontend,
		Hooks:    plugins.NewRegistry(nopLogger{}),
		Checker:  updater.NewChecker("1.0.0"),
		Logger:   nopLogger{},
	})

	return &testEnv{shell: s, frontend: frontend, daemon: daemon, cfg: cfg, dir: dir}
}

func (e *testEnv) createWallet(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	if _, err := wallet.Create(path, ""); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew_SecondInstancePanics(t *testing.T) {
	newTestEnv(t)

	defer func() {
		if recover() == nil {
			t.Error("constructing a second shell should panic")
		}
	}()
	New(Options{Logger: nopLogger{}})
}

func TestOpenOrFocus_IdempotentOpen(t *testing.T) {
	e := newTestEnv(t)
	path := e.createWallet(t, "w1")

	w1, err := e.shell.OpenOrFocus(path, "")
	if err != nil {
		t.Fatalf("OpenOrFocus() error = %v", err)
	}
	if e.shell.WindowCount() != 1 {
		t.Fatalf("WindowCount() = %d, want 1", e.shell.WindowCount())
	}

	// Same path again: raised, not duplicated
	w2, err := e.shell.OpenOrFocus(path, "")
	if err != nil {
		t.Fatalf("OpenOrFocus() error = %v", err)
	}
	if w1 != w2 {
		t.Error("reopening the same path should return the existing window")
	}
	if e.shell.WindowCount() != 1 {
		t.Errorf("WindowCount() = %d, want 1", e.shell.WindowCount())
	}
	if fw := w2.(*fakeWindow); fw.raised < 2 {
		t.Error("reopening should bring the existing window to the front")
	}
}

func TestOpenOrFocus_NormalizesPaths(t *testing.T) {
	e := newTestEnv(t)
	path := e.createWallet(t, "w1")

	if _, err := e.shell.OpenOrFocus(path, ""); err != nil {
		t.Fatal(err)
	}

	// A relative spelling of the same file must hit the same registry slot
	wd, _ := os.Getwd()
	rel, err := filepath.Rel(wd, path)
	if err != nil {
		t.Skipf("cannot build relative path: %v", err)
	}
	if _, err := e.shell.OpenOrFocus(rel, ""); err != nil {
		t.Fatal(err)
	}
	if e.shell.WindowCount() != 1 {
		t.Errorf("WindowCount() = %d, want 1 after opening equivalent paths", e.shell.WindowCount())
	}
}

func TestOpenOrFocus_TwoWallets(t *testing.T) {
	e := newTestEnv(t)
	p1 := e.createWallet(t, "w1")
	p2 := e.createWallet(t, "w2")

	if _, err := e.shell.OpenOrFocus(p1, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := e.shell.OpenOrFocus(p2, ""); err != nil {
		t.Fatal(err)
	}
	if e.shell.WindowCount() != 2 {
		t.Errorf("WindowCount() = %d, want 2", e.shell.WindowCount())
	}
}

func TestCloseWindow_LastCloseSavesAndQuits(t *testing.T) {
	e := newTestEnv(t)
	p1 := e.createWallet(t, "w1")
	p2 := e.createWallet(t, "w2")

	w1, _ := e.shell.OpenOrFocus(p1, "")
	w2, _ := e.shell.OpenOrFocus(p2, "")

	e.shell.CloseWindow(w1)
	if e.shell.WindowCount() != 1 {
		t.Fatalf("WindowCount() = %d, want 1", e.shell.WindowCount())
	}
	if e.frontend.quitCount != 0 {
		t.Fatal("quit should not be requested while windows remain")
	}

	e.shell.CloseWindow(w2)
	if e.shell.WindowCount() != 0 {
		t.Fatalf("WindowCount() = %d, want 0", e.shell.WindowCount())
	}
	if e.frontend.quitCount != 1 {
		t.Errorf("quitCount = %d, want exactly 1", e.frontend.quitCount)
	}
	if e.cfg.LastWallet != wallet.StandardizePath(p2) {
		t.Errorf("LastWallet = %q, want %q", e.cfg.LastWallet, p2)
	}
	if !w2.(*fakeWindow).destroyed {
		t.Error("closed window should be destroyed")
	}
}

func TestCloseWindow_UnknownWindowIgnored(t *testing.T) {
	e := newTestEnv(t)
	stray := &fakeWindow{}

	e.shell.CloseWindow(stray)

	if e.frontend.quitCount != 0 {
		t.Error("closing an unregistered window should not request quit")
	}
	if stray.destroyed {
		t.Error("closing an unregistered window should not destroy it")
	}
}

func TestOpenOrFocus_LoadFailureFirstRunStartsWizard(t *testing.T) {
	e := newTestEnv(t)
	missing := filepath.Join(e.dir, "nonexistent")

	win, err := e.shell.OpenOrFocus(missing, "")
	if err != nil {
		t.Fatalf("OpenOrFocus() error = %v", err)
	}
	if e.frontend.wizardCalls != 1 {
		t.Errorf("wizardCalls = %d, want 1", e.frontend.wizardCalls)
	}
	if len(e.frontend.errorsShown) != 0 {
		t.Errorf("no error dialog expected on first run, got %v", e.frontend.errorsShown)
	}
	if win == nil {
		t.Fatal("wizard-created wallet should produce a window")
	}
	if e.shell.WindowCount() != 1 {
		t.Errorf("WindowCount() = %d, want 1", e.shell.WindowCount())
	}
}

func TestOpenOrFocus_LoadFailureWithWindowsShowsError(t *testing.T) {
	e := newTestEnv(t)
	good := e.createWallet(t, "good")
	if _, err := e.shell.OpenOrFocus(good, ""); err != nil {
		t.Fatal(err)
	}

	bad := filepath.Join(e.dir, "bad")
	if err := os.WriteFile(bad, []byte("garbage"), 0600); err != nil {
		t.Fatal(err)
	}

	win, err := e.shell.OpenOrFocus(bad, "")
	if err == nil {
		t.Error("OpenOrFocus() should propagate the load failure")
	}
	if win != nil {
		t.Error("no window should be created for a failed load")
	}
	if e.frontend.wizardCalls != 0 {
		t.Errorf("wizardCalls = %d, want 0 when other windows are open", e.frontend.wizardCalls)
	}
	if len(e.frontend.errorsShown) != 1 {
		t.Errorf("errorsShown = %v, want one error dialog", e.frontend.errorsShown)
	}
	if e.shell.WindowCount() != 1 {
		t.Errorf("WindowCount() = %d, want 1", e.shell.WindowCount())
	}
}

func TestOpenOrFocus_CorruptFirstRunUsesFreshPath(t *testing.T) {
	e := newTestEnv(t)

	bad := filepath.Join(e.dir, "bad")
	if err := os.WriteFile(bad, []byte("garbage"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := e.shell.OpenOrFocus(bad, ""); err != nil {
		t.Fatal(err)
	}
	if e.frontend.wizardCalls != 1 {
		t.Fatalf("wizardCalls = %d, want 1", e.frontend.wizardCalls)
	}
	// The corrupt file must not be the wizard target
	if e.frontend.wizardPaths[0] == bad {
		t.Error("wizard should target a fresh non-colliding path, not the corrupt file")
	}
}

func TestOpenOrFocus_WizardCancelled(t *testing.T) {
	e := newTestEnv(t)
	e.frontend.wizardCreate = false
	e.frontend.wizardErr = common.ErrUserCancelled

	win, err := e.shell.OpenOrFocus(filepath.Join(e.dir, "nonexistent"), "")
	if err != nil {
		t.Errorf("user cancellation should be silent, got error %v", err)
	}
	if win != nil {
		t.Error("no window should exist after a cancelled wizard")
	}
	if len(e.frontend.errorsShown) != 0 {
		t.Errorf("no dialog expected on cancel, got %v", e.frontend.errorsShown)
	}
}

func TestOpenOrFocus_WizardGoBack(t *testing.T) {
	e := newTestEnv(t)
	e.frontend.wizardCreate = false
	e.frontend.wizardErr = common.ErrWizardGoBack

	win, err := e.shell.OpenOrFocus(filepath.Join(e.dir, "nonexistent"), "")
	if err != nil || win != nil {
		t.Errorf("go-back should be a silent no-window return, got win=%v err=%v", win, err)
	}
}

func TestOpenOrFocus_HardwareWalletRejected(t *testing.T) {
	e := newTestEnv(t)

	hw := filepath.Join(e.dir, "hw")
	content := `{"version": 1, "keystores": [{"type": "hardware"}]}`
	if err := os.WriteFile(hw, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	win, err := e.shell.OpenOrFocus(hw, "")
	if err != nil {
		t.Fatalf("OpenOrFocus() error = %v", err)
	}
	if win != nil {
		t.Error("hardware wallets must not get a window")
	}
	if len(e.frontend.warningsShown) != 1 {
		t.Errorf("warningsShown = %v, want one warning", e.frontend.warningsShown)
	}
	if e.daemon.GetWallet(hw) != nil {
		t.Error("partially loaded hardware wallet should be stopped in the daemon")
	}
	if e.shell.WindowCount() != 0 {
		t.Errorf("WindowCount() = %d, want 0", e.shell.WindowCount())
	}
}

func TestOpenOrFocus_EmptyPathUsesLastWallet(t *testing.T) {
	e := newTestEnv(t)
	path := e.createWallet(t, "w1")

	e.cfg.OpenLastWallet = true
	e.cfg.LastWallet = path

	win, err := e.shell.OpenOrFocus("", "")
	if err != nil {
		t.Fatalf("OpenOrFocus() error = %v", err)
	}
	if win == nil {
		t.Fatal("expected a window for the last-used wallet")
	}
	if win.Wallet().StoragePath() != wallet.StandardizePath(path) {
		t.Errorf("opened %q, want last wallet %q", win.Wallet().StoragePath(), path)
	}
}

func TestOpenOrFocus_URIRoutedToWindow(t *testing.T) {
	e := newTestEnv(t)
	path := e.createWallet(t, "w1")

	win, err := e.shell.OpenOrFocus(path, "embercash:qq1234?amount=1")
	if err != nil {
		t.Fatal(err)
	}
	fw := win.(*fakeWindow)
	if len(fw.uris) != 1 {
		t.Fatalf("uris = %v, want the payment URI routed in", fw.uris)
	}

	// Refocusing with a new URI routes it to the existing window
	if _, err := e.shell.OpenOrFocus(path, "embercash:qq5678"); err != nil {
		t.Fatal(err)
	}
	if len(fw.uris) != 2 {
		t.Errorf("uris = %v, want second URI routed to existing window", fw.uris)
	}
}

func TestOpenOrFocus_FiresHooksAndRebuildsTray(t *testing.T) {
	e := newTestEnv(t)
	path := e.createWallet(t, "w1")

	var opened, closed int
	e.shell.hooks.Register(plugins.HookNewWindow, func(args ...interface{}) { opened++ })
	e.shell.hooks.Register(plugins.HookCloseWindow, func(args ...interface{}) { closed++ })

	win, err := e.shell.OpenOrFocus(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if opened != 1 {
		t.Errorf("new-window hook fired %d times, want 1", opened)
	}
	rebuildsAfterOpen := e.frontend.trayRebuilds
	if rebuildsAfterOpen == 0 {
		t.Error("opening a window should rebuild the tray menu")
	}

	e.shell.CloseWindow(win)
	if closed != 1 {
		t.Errorf("close-window hook fired %d times, want 1", closed)
	}
	if e.frontend.trayRebuilds <= rebuildsAfterOpen {
		t.Error("closing a window should rebuild the tray menu")
	}
}

func TestToggleTrayIcon_RoundTrip(t *testing.T) {
	e := newTestEnv(t)
	original := e.cfg.DarkTrayIcon

	e.shell.ToggleTrayIcon()
	if e.cfg.DarkTrayIcon == original {
		t.Error("first toggle should flip the preference")
	}
	e.shell.ToggleTrayIcon()
	if e.cfg.DarkTrayIcon != original {
		t.Error("second toggle should restore the preference")
	}
	if len(e.frontend.trayIcons) != 2 {
		t.Errorf("UpdateTrayIcon called %d times, want 2", len(e.frontend.trayIcons))
	}
}

func TestToggleAllWindows(t *testing.T) {
	e := newTestEnv(t)
	p1 := e.createWallet(t, "w1")
	p2 := e.createWallet(t, "w2")

	w1, _ := e.shell.OpenOrFocus(p1, "")
	w2, _ := e.shell.OpenOrFocus(p2, "")

	// Mixed visibility counts as "not all hidden": everything hides
	w1.Hide()
	e.shell.ToggleAllWindows()
	if !w1.IsHidden() || !w2.IsHidden() {
		t.Error("toggle with any visible window should hide all")
	}

	// All hidden: everything shows and raises
	e.shell.ToggleAllWindows()
	if w1.IsHidden() || w2.IsHidden() {
		t.Error("toggle with all hidden should show all")
	}
}

func TestRequestQuit_OnlyOnce(t *testing.T) {
	e := newTestEnv(t)
	e.shell.RequestQuit()
	e.shell.RequestQuit()
	if e.frontend.quitCount != 1 {
		t.Errorf("quitCount = %d, want 1", e.frontend.quitCount)
	}
}

func TestRun_BootstrapCancelledOpensNothing(t *testing.T) {
	instanceLive.Store(false)
	t.Cleanup(func() { instanceLive.Store(false) })

	dir := t.TempDir()
	cfg, err := config.LoadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	frontend := &fakeFrontend{autoConnectErr: common.ErrUserCancelled}
	daemon := wallet.NewLocalDaemon(&wallet.Network{}, nopLogger{})

	s := New(Options{
		Config:   cfg,
		Daemon:   daemon,
		Frontend: frontend,
		Hooks:    plugins.NewRegistry(nopLogger{}),
		Checker:  updater.NewChecker("1.0.0"),
		Logger:   nopLogger{},
	})

	if err := s.Run("", ""); err != nil {
		t.Errorf("cancelled bootstrap should return nil, got %v", err)
	}
	if len(frontend.windows) != 0 {
		t.Error("no window should open after a cancelled bootstrap")
	}
	// Teardown still ran
	if !frontend.trayHidden || !frontend.clipboardPersisted {
		t.Error("teardown should run even when startup aborts")
	}
}

func TestRun_WizardCancelledSkipsEventLoop(t *testing.T) {
	e := newTestEnv(t)
	e.frontend.wizardCreate = false
	e.frontend.wizardErr = common.ErrUserCancelled
	e.cfg.WalletPath = filepath.Join(e.dir, "nonexistent")

	if err := e.shell.Run("", ""); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(e.frontend.windows) != 0 {
		t.Error("no window should exist after a cancelled wizard")
	}
	if !e.frontend.trayHidden {
		t.Error("teardown should hide the tray")
	}
}

func TestShutdown_Idempotent(t *testing.T) {
	e := newTestEnv(t)
	e.shell.Shutdown()
	e.shell.Shutdown()
	if !e.frontend.clipboardPersisted || !e.frontend.trayHidden {
		t.Error("teardown should persist the clipboard and hide the tray")
	}
}

func TestLoadWallet_CredentialStoreFallback(t *testing.T) {
	e := newTestEnv(t)

	path := filepath.Join(e.dir, "enc")
	if _, err := wallet.Create(path, "hunter2"); err != nil {
		t.Fatal(err)
	}

	e.shell.creds = staticCreds{path: wallet.StandardizePath(path), password: "hunter2"}

	win, err := e.shell.OpenOrFocus(path, "")
	if err != nil {
		t.Fatalf("OpenOrFocus() error = %v", err)
	}
	if win == nil {
		t.Fatal("stored credentials should unlock the wallet without a wizard")
	}
	if e.frontend.wizardCalls != 0 {
		t.Errorf("wizardCalls = %d, want 0", e.frontend.wizardCalls)
	}
}

type staticCreds struct {
	path     string
	password string
}

func (c staticCreds) Store(string, string) error { return nil }
func (c staticCreds) Delete(string) error        { return nil }
func (c staticCreds) Get(walletPath string) (string, error) {
	if walletPath == c.path {
		return c.password, nil
	}
	return "", errors.New("not found")
}
