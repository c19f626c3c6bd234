// Package common provides shared constants, types, and utilities
// used across the Ember Wallet desktop shell.
package common

import "sync"

// warnedKeys tracks degradation notices already issued this run.
var warnedKeys sync.Map

// WarnOnce logs a warning for key only the first time that key is seen
// during this run. Optional integrations (keyring, D-Bus, dark theme)
// degrade rather than fail, and the notice for a degradation must not
// repeat on every retry. It reports whether the warning fired, so callers
// can attach a one-time user-facing notice to the same event.
func WarnOnce(key, msg string, args ...interface{}) bool {
	if _, seen := warnedKeys.LoadOrStore(key, struct{}{}); seen {
		return false
	}
	LogWarn(msg, args...)
	return true
}
