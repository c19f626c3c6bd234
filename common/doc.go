// Package common provides shared constants, types, utilities, and interfaces
// used throughout the Ember Wallet desktop shell.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: Application-wide constants like timer intervals, file names, and UI dimensions
//   - Errors: Sentinel errors for consistent error handling across packages
//   - Interfaces: Abstractions for logging and desktop notifications
//   - Logger: Structured logging with file rotation
//   - Crash hook: Installable panic reporter used during the GUI session
//
// # Usage
//
// Import the package to access shared functionality:
//
//	import "github.com/emberwallet/ember/common"
//
//	// Use constants
//	delay := common.UpdateCheckFirstDelay
//
//	// Use logger
//	common.LogInfo("Opening wallet %s", path)
//
//	// Check errors
//	if errors.Is(err, common.ErrUserCancelled) {
//	    // Silent early return, no dialog
//	}
package common
