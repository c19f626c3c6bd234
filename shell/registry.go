package shell

import (
	"github.com/emberwallet/ember/wallet"
)

// registry is the ordered list of open wallet windows, keyed by normalized
// wallet storage path. It is only ever touched from the UI thread, so the
// find-then-add sequence inside OpenOrFocus is atomic by construction.
type registry struct {
	windows []Window
}

// find returns the window whose wallet lives at the normalized path, or
// nil.
func (r *registry) find(normalizedPath string) Window {
	for _, w := range r.windows {
		if wallet.StandardizePath(w.Wallet().StoragePath()) == normalizedPath {
			return w
		}
	}
	return nil
}

// add appends a window to the registry.
func (r *registry) add(w Window) {
	r.windows = append(r.windows, w)
}

// remove drops a window from the registry, reporting whether it was
// present.
func (r *registry) remove(w Window) bool {
	for i, existing := range r.windows {
		if existing == w {
			r.windows = append(r.windows[:i], r.windows[i+1:]...)
			return true
		}
	}
	return false
}

// list returns a copy of the window list in open order.
func (r *registry) list() []Window {
	out := make([]Window, len(r.windows))
	copy(out, r.windows)
	return out
}

// size returns the number of open windows.
func (r *registry) size() int {
	return len(r.windows)
}
