// Package common provides shared constants, types, and utilities
// used across the Ember Wallet desktop shell.
package common

import (
	"runtime/debug"
	"sync"
)

// CrashHook captures panics from UI callbacks and reports them through the
// logger plus an optional presenter. It is installed once the GUI session
// starts and must be uninstalled first during teardown so that late panics
// during shutdown don't re-enter half-torn-down UI code.
type CrashHook struct {
	mu        sync.Mutex
	installed bool
	present   func(title, detail string)
}

var crashHook CrashHook

// InstallCrashHook activates panic reporting. The presenter may be nil, in
// which case reports only go to the log.
func InstallCrashHook(present func(title, detail string)) {
	crashHook.mu.Lock()
	defer crashHook.mu.Unlock()
	crashHook.installed = true
	crashHook.present = present
}

// UninstallCrashHook deactivates panic reporting.
func UninstallCrashHook() {
	crashHook.mu.Lock()
	defer crashHook.mu.Unlock()
	crashHook.installed = false
	crashHook.present = nil
}

// CrashHookInstalled reports whether the hook is currently active.
func CrashHookInstalled() bool {
	crashHook.mu.Lock()
	defer crashHook.mu.Unlock()
	return crashHook.installed
}

// ReportPanic logs a recovered panic and, if the hook is installed, forwards
// it to the presenter. Call from a deferred recover():
//
//	defer func() {
//		if r := recover(); r != nil {
//			common.ReportPanic("opening wallet", r)
//		}
//	}()
func ReportPanic(context string, recovered interface{}) {
	stack := string(debug.Stack())
	LogError("panic while %s: %v\n%s", context, recovered, stack)

	crashHook.mu.Lock()
	present := crashHook.present
	installed := crashHook.installed
	crashHook.mu.Unlock()

	if installed && present != nil {
		present("Unexpected Error", stack)
	}
}
