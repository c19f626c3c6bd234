// Package keyring provides secure storage for wallet passwords.
// It uses the system keyring when available, falling back to
// encrypted local file storage when not.
package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/pbkdf2"

	"github.com/emberwallet/ember/common"
)

const (
	// serviceName is the identifier used in the system keyring.
	serviceName = "ember-wallet"

	keyIterations = 4096
	keyLen        = 32
)

// Common errors returned by keyring operations.
var (
	ErrNotFound    = errors.New("credential not found")
	ErrAccess      = errors.New("keyring access denied")
	ErrUnavailable = errors.New("keyring service unavailable")
)

// Storage backend state
var (
	useLocalStorage bool
	localStoreMu    sync.RWMutex
	localStore      map[string]string
	localStoreFile  string
	encryptionKey   []byte
	initialized     bool
)

// init initializes the storage backend
func init() {
	initStorage()
}

func initStorage() {
	if initialized {
		return
	}

	// Try system keyring first
	testKey := "ember-wallet-test-init"
	err := keyring.Set(serviceName, testKey, "test")
	if err == nil {
		keyring.Delete(serviceName, testKey)
		useLocalStorage = false
	} else {
		common.WarnOnce("keyring",
			"System keyring unavailable, storing wallet passwords in an encrypted local file: %v", err)
		useLocalStorage = true
		initLocalStorage()
	}
	initialized = true
}

func initLocalStorage() {
	configDir, err := common.GetConfigDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config", common.ConfigDirName)
		os.MkdirAll(configDir, 0700)
	}
	localStoreFile = filepath.Join(configDir, common.CredentialsFileName)

	// Derive the encryption key from machine-specific data so the file is
	// only readable on the machine that wrote it.
	hostname, _ := os.Hostname()
	machineID := getMachineID()
	keyData := fmt.Sprintf("ember-wallet-%s-%s-%d", hostname, machineID, os.Getuid())
	encryptionKey = pbkdf2.Key([]byte(keyData), []byte(serviceName), keyIterations, keyLen, sha256.New)

	// Load existing credentials
	localStore = make(map[string]string)
	loadLocalStore()
}

func getMachineID() string {
	// Try to read machine-id
	data, err := os.ReadFile("/etc/machine-id")
	if err == nil {
		return strings.TrimSpace(string(data))
	}
	// Fallback
	return "default-machine-id"
}

func loadLocalStore() {
	data, err := os.ReadFile(localStoreFile)
	if err != nil {
		return
	}

	decrypted, err := decrypt(data)
	if err != nil {
		return
	}

	json.Unmarshal(decrypted, &localStore)
}

func saveLocalStore() error {
	localStoreMu.RLock()
	data, err := json.Marshal(localStore)
	localStoreMu.RUnlock()
	if err != nil {
		return err
	}

	encrypted, err := encrypt(data)
	if err != nil {
		return err
	}

	return os.WriteFile(localStoreFile, encrypted, 0600)
}

func encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return []byte(base64.StdEncoding.EncodeToString(ciphertext)), nil
}

func decrypt(data []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// Store saves the password for a wallet path.
func Store(walletPath string, password string) error {
	if walletPath == "" {
		return errors.New("wallet path cannot be empty")
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}

	if useLocalStorage {
		localStoreMu.Lock()
		localStore[walletPath] = password
		localStoreMu.Unlock()
		return saveLocalStore()
	}

	if err := keyring.Set(serviceName, walletPath, password); err != nil {
		// Fallback to local storage
		useLocalStorage = true
		initLocalStorage()
		localStoreMu.Lock()
		localStore[walletPath] = password
		localStoreMu.Unlock()
		return saveLocalStore()
	}
	return nil
}

// Get retrieves the password for a wallet path.
func Get(walletPath string) (string, error) {
	if walletPath == "" {
		return "", errors.New("wallet path cannot be empty")
	}

	if useLocalStorage {
		localStoreMu.RLock()
		password, exists := localStore[walletPath]
		localStoreMu.RUnlock()
		if !exists {
			return "", ErrNotFound
		}
		return password, nil
	}

	password, err := keyring.Get(serviceName, walletPath)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		// Try local storage as fallback
		localStoreMu.RLock()
		password, exists := localStore[walletPath]
		localStoreMu.RUnlock()
		if exists {
			return password, nil
		}
		return "", ErrNotFound
	}
	return password, nil
}

// Delete removes the password for a wallet path.
func Delete(walletPath string) error {
	if walletPath == "" {
		return errors.New("wallet path cannot be empty")
	}

	if useLocalStorage {
		localStoreMu.Lock()
		delete(localStore, walletPath)
		localStoreMu.Unlock()
		return saveLocalStore()
	}

	keyring.Delete(serviceName, walletPath)

	// Also remove from local storage if present
	localStoreMu.Lock()
	delete(localStore, walletPath)
	localStoreMu.Unlock()
	saveLocalStore()

	return nil
}

// Exists checks if a password is stored for a wallet path.
func Exists(walletPath string) bool {
	_, err := Get(walletPath)
	return err == nil
}

// Credentials adapts this package to the common.CredentialStore interface,
// keyed by normalized wallet path.
type Credentials struct{}

func (Credentials) Store(walletPath, password string) error {
	return Store(walletPath, password)
}

func (Credentials) Get(walletPath string) (string, error) {
	return Get(walletPath)
}

func (Credentials) Delete(walletPath string) error {
	return Delete(walletPath)
}
