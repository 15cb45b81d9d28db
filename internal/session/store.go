package session

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/99designs/keyring"
	"github.com/PolarWolf314/tether/internal/configs"
	terrors "github.com/PolarWolf314/tether/internal/errors"
)

// ErrNotFound is returned by a Store when a key holds no value.
var ErrNotFound = errors.New("session key not found")

// Store is the storage boundary for session values.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Clear(key string) error
}

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Clear(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// FileStore keeps values in a 0600 TOML file.
type FileStore struct {
	Path string
}

type fileContents struct {
	Values map[string]string `toml:"values"`
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (f *FileStore) load() (*fileContents, error) {
	contents := &fileContents{Values: make(map[string]string)}
	if _, err := os.Stat(f.Path); os.IsNotExist(err) {
		return contents, nil
	}
	if err := configs.LoadTOML(f.Path, contents); err != nil {
		return nil, fmt.Errorf("failed to read session file %s: %w", f.Path, err)
	}
	if contents.Values == nil {
		contents.Values = make(map[string]string)
	}
	return contents, nil
}

func (f *FileStore) Get(key string) (string, error) {
	contents, err := f.load()
	if err != nil {
		return "", err
	}
	v, ok := contents.Values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (f *FileStore) Set(key, value string) error {
	contents, err := f.load()
	if err != nil {
		return err
	}
	contents.Values[key] = value
	if err := configs.SaveTOML(f.Path, contents); err != nil {
		return fmt.Errorf("failed to write session file %s: %w", f.Path, err)
	}
	return nil
}

func (f *FileStore) Clear(key string) error {
	contents, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := contents.Values[key]; !ok {
		return nil
	}
	delete(contents.Values, key)
	if err := configs.SaveTOML(f.Path, contents); err != nil {
		return fmt.Errorf("failed to write session file %s: %w", f.Path, err)
	}
	return nil
}

// KeyringStore keeps values in the operating system keychain.
type KeyringStore struct {
	ring keyring.Keyring
}

const keyringService = "tether"

// OpenKeyringStore opens the system keychain for the tether service.
func OpenKeyringStore() (*KeyringStore, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName:              keyringService,
		KeychainTrustApplication: true,
		FileDir:                  configs.UserTetherSettings.UserDataPath,
		FilePasswordFunc:         keyring.TerminalPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return NewKeyringStore(ring), nil
}

func NewKeyringStore(ring keyring.Keyring) *KeyringStore {
	return &KeyringStore{ring: ring}
}

func (k *KeyringStore) Get(key string) (string, error) {
	item, err := k.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s from keyring: %w", key, err)
	}
	return string(item.Data), nil
}

func (k *KeyringStore) Set(key, value string) error {
	err := k.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: "tether " + key,
	})
	if err != nil {
		return fmt.Errorf("failed to write %s to keyring: %w", key, err)
	}
	return nil
}

func (k *KeyringStore) Clear(key string) error {
	err := k.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("failed to remove %s from keyring: %w", key, err)
	}
	return nil
}

// OpenStore opens the store named by a configured session backend.
func OpenStore(backend string) (Store, error) {
	switch backend {
	case configs.BackendFile, "":
		return NewFileStore(configs.SessionFilePath()), nil
	case configs.BackendKeyring:
		return OpenKeyringStore()
	default:
		return nil, fmt.Errorf("%w: %q", terrors.ErrUnknownSessionBackend, backend)
	}
}
