// Package common provides shared constants, types, and utilities
// used across the Ember Wallet desktop shell.
package common

import "errors"

// Sentinel errors for shell operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// Wizard flow control.
	ErrUserCancelled = errors.New("cancelled by user")
	ErrWizardGoBack  = errors.New("wizard navigated back")

	// Wallet errors.
	ErrWalletNotFound      = errors.New("wallet file not found")
	ErrWalletCorrupt       = errors.New("wallet file is corrupt")
	ErrWalletEncrypted     = errors.New("wallet requires a password")
	ErrWrongPassword       = errors.New("incorrect wallet password")
	ErrHardwareUnsupported = errors.New("hardware wallets are not supported")
	ErrWalletAlreadyLoaded = errors.New("wallet is already loaded")
	ErrWalletNotLoaded     = errors.New("wallet is not loaded")

	// Credential errors.
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrCredentialStorage   = errors.New("failed to store credentials")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")

	// Network state.
	ErrOffline = errors.New("running in offline mode")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
