package ui

import "testing"

func TestTray_RebuildRequestMarshalsToUIThread(t *testing.T) {
	var queued []func()
	tray := &Tray{invoke: func(fn func()) { queued = append(queued, fn) }}

	tray.requestRebuild()

	if len(queued) != 1 {
		t.Fatalf("queued %d callbacks, want 1 marshalled rebuild", len(queued))
	}
	// The deferred rebuild may run before the indicator is ready; it must
	// be a no-op rather than touch the menu or the window list.
	queued[0]()
}

func TestTray_RebuildBeforeReadyIsNoop(t *testing.T) {
	tray := &Tray{invoke: func(fn func()) { fn() }}

	// Must not reach the systray or the shell; both are nil here.
	tray.Rebuild()

	if tray.stopGen != nil {
		t.Error("Rebuild before onReady should not start a menu generation")
	}
}
