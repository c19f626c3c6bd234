// Package plugins implements the hook registry that lets optional
// components observe shell lifecycle events. Hooks run synchronously on
// the caller's goroutine; a panicking hook is isolated and logged so one
// misbehaving plugin cannot take down the shell.
package plugins

import (
	"sync"

	"github.com/emberwallet/ember/common"
)

// Hook names fired by the shell.
const (
	// HookInitUI fires once when the GUI session starts.
	HookInitUI = "init_ui"
	// HookNewWindow fires after a wallet window is created.
	HookNewWindow = "on_new_window"
	// HookCloseWindow fires before a wallet window is destroyed.
	HookCloseWindow = "on_close_window"
)

// HookFunc is a hook callback. Args are hook-specific.
type HookFunc func(args ...interface{})

// Registry holds named hooks.
type Registry struct {
	mu     sync.RWMutex
	hooks  map[string][]HookFunc
	logger common.Logger
}

// NewRegistry creates an empty hook registry.
func NewRegistry(logger common.Logger) *Registry {
	return &Registry{
		hooks:  make(map[string][]HookFunc),
		logger: logger,
	}
}

// Register adds a callback for the named hook.
func (r *Registry) Register(name string, fn HookFunc) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[name] = append(r.hooks[name], fn)
}

// Run fires every callback registered for name. Panics in individual
// callbacks are recovered and logged; remaining callbacks still run.
func (r *Registry) Run(name string, args ...interface{}) {
	r.mu.RLock()
	callbacks := make([]HookFunc, len(r.hooks[name]))
	copy(callbacks, r.hooks[name])
	r.mu.RUnlock()

	for _, fn := range callbacks {
		r.runOne(name, fn, args)
	}
}

func (r *Registry) runOne(name string, fn HookFunc, args []interface{}) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("plugin hook %q panicked: %v", name, rec)
		}
	}()
	fn(args...)
}

// Count returns the number of callbacks registered for name.
func (r *Registry) Count(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks[name])
}
