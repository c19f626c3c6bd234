package wallet

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/emberwallet/ember/common"
)

// StandardizePath normalizes a wallet path so that two spellings of the
// same file map to the same registry key. Symlinks are resolved when the
// target exists; otherwise the absolute path is returned as-is, since a
// wallet about to be created has nothing to resolve yet.
func StandardizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs
	}
	return resolved
}

// NewWalletPath returns a path inside dir that no existing file occupies.
// It tries the default wallet name, then numbered variants, and falls back
// to a random name if the directory is somehow saturated.
func NewWalletPath(dir string) string {
	candidate := filepath.Join(dir, common.DefaultWalletName)
	if !common.FileExists(candidate) {
		return candidate
	}
	for i := 1; i <= 100; i++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d", common.DefaultWalletName, i))
		if !common.FileExists(candidate) {
			return candidate
		}
	}
	return filepath.Join(dir, "wallet_"+uuid.NewString())
}
