package shell

import (
	"path/filepath"
	"testing"

	"github.com/emberwallet/ember/wallet"
)

func registryWindow(t *testing.T, dir, name string) *fakeWindow {
	t.Helper()
	path := filepath.Join(dir, name)
	w, err := wallet.Create(path, "")
	if err != nil {
		t.Fatal(err)
	}
	return &fakeWindow{wlt: w}
}

func TestRegistry_FindByNormalizedPath(t *testing.T) {
	dir := t.TempDir()
	r := &registry{}

	w := registryWindow(t, dir, "w1")
	r.add(w)

	path := wallet.StandardizePath(filepath.Join(dir, "w1"))
	if got := r.find(path); got != w {
		t.Error("find() should locate the window by normalized path")
	}
	if got := r.find(wallet.StandardizePath(filepath.Join(dir, "other"))); got != nil {
		t.Error("find() should return nil for an unknown path")
	}
}

func TestRegistry_RemovePreservesOrder(t *testing.T) {
	dir := t.TempDir()
	r := &registry{}

	a := registryWindow(t, dir, "a")
	b := registryWindow(t, dir, "b")
	c := registryWindow(t, dir, "c")
	r.add(a)
	r.add(b)
	r.add(c)

	if !r.remove(b) {
		t.Fatal("remove() should report true for a present window")
	}
	if r.remove(b) {
		t.Error("remove() should report false for an absent window")
	}

	got := r.list()
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("list() after remove = %v, want [a c] in open order", got)
	}
}

func TestRegistry_ListIsACopy(t *testing.T) {
	dir := t.TempDir()
	r := &registry{}
	r.add(registryWindow(t, dir, "w1"))

	list := r.list()
	list[0] = nil

	if r.size() != 1 || r.windows[0] == nil {
		t.Error("mutating the returned list should not affect the registry")
	}
}
