package keyring

import (
	"errors"
	"path/filepath"
	"testing"
)

// useTempLocalStore forces the encrypted file backend into a temp dir so
// tests never touch the real system keyring.
func useTempLocalStore(t *testing.T) {
	t.Helper()

	prevUseLocal := useLocalStorage
	prevFile := localStoreFile
	prevKey := encryptionKey
	prevStore := localStore

	useLocalStorage = true
	localStoreFile = filepath.Join(t.TempDir(), ".credentials")
	encryptionKey = make([]byte, 32)
	copy(encryptionKey, "0123456789abcdef0123456789abcdef")
	localStore = make(map[string]string)

	t.Cleanup(func() {
		useLocalStorage = prevUseLocal
		localStoreFile = prevFile
		encryptionKey = prevKey
		localStore = prevStore
	})
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	useTempLocalStore(t)

	plaintext := []byte(`{"wallet": "secret"}`)
	encrypted, err := encrypt(plaintext)
	if err != nil {
		t.Fatalf("encrypt() error = %v", err)
	}
	if string(encrypted) == string(plaintext) {
		t.Error("encrypt() should not return plaintext")
	}

	decrypted, err := decrypt(encrypted)
	if err != nil {
		t.Fatalf("decrypt() error = %v", err)
	}
	if string(decrypted) != string(plaintext) {
		t.Errorf("decrypt() = %q, want %q", decrypted, plaintext)
	}
}

func TestDecrypt_Garbage(t *testing.T) {
	useTempLocalStore(t)

	if _, err := decrypt([]byte("not base64!!")); err == nil {
		t.Error("decrypt() should fail on invalid input")
	}
}

func TestStoreGetDelete_LocalBackend(t *testing.T) {
	useTempLocalStore(t)

	walletPath := "/home/user/wallets/main"

	if err := Store(walletPath, "hunter2"); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	got, err := Get(walletPath)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "hunter2" {
		t.Errorf("Get() = %q, want hunter2", got)
	}

	if !Exists(walletPath) {
		t.Error("Exists() should be true after Store()")
	}

	// Persisted store survives a reload
	localStore = make(map[string]string)
	loadLocalStore()
	if got, _ := Get(walletPath); got != "hunter2" {
		t.Errorf("Get() after reload = %q, want hunter2", got)
	}

	if err := Delete(walletPath); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := Get(walletPath); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete() error = %v, want ErrNotFound", err)
	}
}

func TestStore_Validation(t *testing.T) {
	useTempLocalStore(t)

	if err := Store("", "pw"); err == nil {
		t.Error("Store() should reject empty wallet path")
	}
	if err := Store("/w", ""); err == nil {
		t.Error("Store() should reject empty password")
	}
	if _, err := Get(""); err == nil {
		t.Error("Get() should reject empty wallet path")
	}
}
