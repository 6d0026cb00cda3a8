package store

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/and161185/budget-keeper/internal/crypto/clientcrypto"
	"github.com/and161185/budget-keeper/internal/errs"
)

// ErrSealed is returned when a sealed state file is opened without a passphrase.
var ErrSealed = errors.New("state file is sealed; passphrase required")

const stateFileName = "state.json"

// DefaultDir returns $XDG_CONFIG_HOME/budget-keeper or ~/.config/budget-keeper.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "budget-keeper")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "budget-keeper")
}

type stateFile struct {
	Sealed bool              `json:"sealed,omitempty"`
	Salt   []byte            `json:"salt,omitempty"`
	Values map[string]string `json:"values"`
}

// File stores state as JSON in a single file. The file is re-read on every
// call so that concurrent CLI invocations observe each other's writes.
type File struct {
	mu         sync.Mutex
	path       string
	passphrase []byte

	// derived key cache, valid for keySalt
	key     []byte
	keySalt []byte
}

// FileOption configures a File store.
type FileOption func(*File)

// WithPassphrase seals every value at rest with a key derived from passphrase.
func WithPassphrase(passphrase string) FileOption {
	return func(f *File) {
		if passphrase != "" {
			f.passphrase = []byte(passphrase)
		}
	}
}

// NewFile returns a store backed by dir/state.json. The directory is created on first write.
func NewFile(dir string, opts ...FileOption) *File {
	f := &File{path: filepath.Join(dir, stateFileName)}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Path returns the state file location.
func (f *File) Path() string { return f.path }

// Get implements Store.
func (f *File) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sf, err := f.load()
	if err != nil {
		return "", err
	}
	v, ok := sf.Values[key]
	if !ok {
		return "", errs.ErrNotFound
	}
	if !sf.Sealed {
		return v, nil
	}
	return f.open(sf.Salt, key, v)
}

// Set implements Store.
func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	sf, err := f.load()
	if err != nil {
		return err
	}
	if err := f.prepare(sf); err != nil {
		return err
	}
	if f.passphrase != nil {
		sealed, err := f.seal(sf.Salt, key, value)
		if err != nil {
			return err
		}
		value = sealed
	}
	sf.Values[key] = value
	return f.write(sf)
}

// Delete implements Store. Deleting an absent key is not an error.
func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	sf, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := sf.Values[key]; !ok {
		return nil
	}
	delete(sf.Values, key)
	return f.write(sf)
}

func (f *File) load() (*stateFile, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &stateFile{Values: map[string]string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	var sf stateFile
	if err := json.Unmarshal(b, &sf); err != nil {
		return nil, fmt.Errorf("decode state %s: %w", f.path, err)
	}
	if sf.Values == nil {
		sf.Values = map[string]string{}
	}
	if sf.Sealed && f.passphrase == nil {
		return nil, ErrSealed
	}
	return &sf, nil
}

// prepare converts sf between sealed and plain layouts to match the store's mode.
func (f *File) prepare(sf *stateFile) error {
	switch {
	case f.passphrase != nil && !sf.Sealed:
		salt, err := clientcrypto.Rand(clientcrypto.SaltLen)
		if err != nil {
			return err
		}
		sf.Salt, sf.Sealed = salt, true
		for k, v := range sf.Values {
			sealed, err := f.seal(salt, k, v)
			if err != nil {
				return err
			}
			sf.Values[k] = sealed
		}
	case f.passphrase == nil && sf.Sealed:
		return ErrSealed
	}
	return nil
}

func (f *File) derive(salt []byte) []byte {
	if f.key == nil || !bytes.Equal(f.keySalt, salt) {
		f.key = clientcrypto.DeriveKey(f.passphrase, salt)
		f.keySalt = append([]byte(nil), salt...)
	}
	return f.key
}

func (f *File) seal(salt []byte, name, value string) (string, error) {
	ct, err := clientcrypto.Seal(f.derive(salt), []byte(name), []byte(value))
	if err != nil {
		return "", fmt.Errorf("seal %s: %w", name, err)
	}
	return base64.StdEncoding.EncodeToString(ct), nil
}

func (f *File) open(salt []byte, name, value string) (string, error) {
	ct, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	pt, err := clientcrypto.Open(f.derive(salt), []byte(name), ct)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", name, err)
	}
	return string(pt), nil
}

func (f *File) write(sf *stateFile) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	b, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
