package wallet

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"

	"github.com/emberwallet/ember/common"
)

// KeystoreKind classifies the signing backends inside a wallet file.
type KeystoreKind string

const (
	KeystoreSoftware  KeystoreKind = "software"
	KeystoreHardware  KeystoreKind = "hardware"
	KeystoreWatchOnly KeystoreKind = "watch_only"
)

// Wallet is a loaded wallet as seen by the shell. It exposes only what the
// window registry and tray need; signing and history live behind the
// daemon's network session.
type Wallet interface {
	// StoragePath returns the normalized path of the backing file.
	StoragePath() string
	// Basename returns the file name, used for window titles and tray rows.
	Basename() string
	// KeystoreKinds lists the keystore types present in the file.
	KeystoreKinds() []KeystoreKind
	// HasHardware reports whether any keystore requires a hardware device.
	HasHardware() bool
}

// fileEnvelope is the on-disk JSON structure of a wallet file.
type fileEnvelope struct {
	Version   int             `json:"version"`
	Keystores []keystoreEntry `json:"keystores"`
	Encrypted bool            `json:"encrypted"`
	// KDFSalt and Check verify the password of an encrypted wallet:
	// Check == hex(pbkdf2(password, KDFSalt)).
	KDFSalt string `json:"kdf_salt,omitempty"`
	Check   string `json:"check,omitempty"`
}

type keystoreEntry struct {
	Type KeystoreKind `json:"type"`
}

const (
	envelopeVersion = 1
	kdfIterations   = 4096
	kdfKeyLen       = 32
)

// FileWallet is a wallet backed by a JSON file on disk.
type FileWallet struct {
	path      string
	keystores []KeystoreKind
	encrypted bool
}

// Open reads the wallet file at path. For encrypted wallets the password is
// verified against the stored check value; an empty password on an
// encrypted wallet returns ErrWalletEncrypted so callers can prompt.
func Open(path, password string) (*FileWallet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrWalletNotFound
		}
		return nil, common.WrapError(err, "error reading wallet file")
	}

	var env fileEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, common.WrapError(err, common.ErrWalletCorrupt.Error())
	}
	if env.Version != envelopeVersion || len(env.Keystores) == 0 {
		return nil, common.ErrWalletCorrupt
	}

	if env.Encrypted {
		if password == "" {
			return nil, common.ErrWalletEncrypted
		}
		if !env.checkPassword(password) {
			return nil, common.ErrWrongPassword
		}
	}

	kinds := make([]KeystoreKind, 0, len(env.Keystores))
	for _, ks := range env.Keystores {
		switch ks.Type {
		case KeystoreSoftware, KeystoreHardware, KeystoreWatchOnly:
			kinds = append(kinds, ks.Type)
		default:
			return nil, fmt.Errorf("%w: unknown keystore type %q", common.ErrWalletCorrupt, ks.Type)
		}
	}

	return &FileWallet{
		path:      path,
		keystores: kinds,
		encrypted: env.Encrypted,
	}, nil
}

// Create writes a new software wallet file at path. A non-empty password
// marks the wallet encrypted and stores the derived check value.
func Create(path, password string) (*FileWallet, error) {
	if common.FileExists(path) {
		return nil, fmt.Errorf("wallet file already exists: %s", path)
	}

	env := fileEnvelope{
		Version:   envelopeVersion,
		Keystores: []keystoreEntry{{Type: KeystoreSoftware}},
	}
	if password != "" {
		salt := []byte(common.GenerateID())
		env.Encrypted = true
		env.KDFSalt = hex.EncodeToString(salt)
		env.Check = hex.EncodeToString(deriveCheck(password, salt))
	}

	data, err := json.MarshalIndent(&env, "", "  ")
	if err != nil {
		return nil, common.WrapError(err, "error serializing wallet")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, common.WrapError(err, "error creating wallet directory")
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, common.WrapError(err, "error writing wallet file")
	}

	return &FileWallet{
		path:      path,
		keystores: []KeystoreKind{KeystoreSoftware},
		encrypted: env.Encrypted,
	}, nil
}

func (e *fileEnvelope) checkPassword(password string) bool {
	salt, err := hex.DecodeString(e.KDFSalt)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(e.Check)
	if err != nil {
		return false
	}
	return hmac.Equal(deriveCheck(password, salt), want)
}

func deriveCheck(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, kdfIterations, kdfKeyLen, sha256.New)
}

// StoragePath returns the path of the backing file.
func (w *FileWallet) StoragePath() string {
	return w.path
}

// Basename returns the file name of the wallet.
func (w *FileWallet) Basename() string {
	return filepath.Base(w.path)
}

// KeystoreKinds lists the keystore types present in the file.
func (w *FileWallet) KeystoreKinds() []KeystoreKind {
	kinds := make([]KeystoreKind, len(w.keystores))
	copy(kinds, w.keystores)
	return kinds
}

// HasHardware reports whether any keystore requires a hardware device.
func (w *FileWallet) HasHardware() bool {
	for _, k := range w.keystores {
		if k == KeystoreHardware {
			return true
		}
	}
	return false
}

// IsEncrypted reports whether the wallet file is password protected.
func (w *FileWallet) IsEncrypted() bool {
	return w.encrypted
}
