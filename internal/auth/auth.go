package auth

import (
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/stefankummer/promptpocket/internal/errors"
	"github.com/stefankummer/promptpocket/internal/store"
)

const (
	keyringService = "promptpocket"
	keyringAccount = "api-key"

	// keyringMarker is stored under the apiKey key when the token itself
	// lives in the OS keyring. It keeps the store's change events and
	// presence checks working without putting the secret in the database.
	keyringMarker = "__keyring__"
)

// Manager owns the auth token. The token is device-local: it lives in
// the OS keyring when one is available, otherwise in the local store
// partition, and is never written to the synced partition.
type Manager struct {
	store      *store.Store
	useKeyring bool
}

// NewManager creates a token manager, probing once for a usable keyring
// backend.
func NewManager(s *store.Store) *Manager {
	return &Manager{store: s, useKeyring: keyringAvailable()}
}

// keyringAvailable probes the OS keyring. A not-found answer still
// means the backend works.
func keyringAvailable() bool {
	_, err := keyring.Get(keyringService, keyringAccount)
	return err == nil || err == keyring.ErrNotFound
}

// Token returns the stored API key, if any.
func (m *Manager) Token() (string, bool, error) {
	value, ok, err := m.store.Get(store.PartitionLocal, store.KeyAPIKey)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}

	if m.useKeyring && value == keyringMarker {
		secret, err := keyring.Get(keyringService, keyringAccount)
		if err == keyring.ErrNotFound {
			return "", false, nil
		}
		if err != nil {
			return "", false, errors.NewInternal(err)
		}
		return secret, true, nil
	}
	return value, true, nil
}

// SetToken stores the API key, replacing any previous one, and fires an
// apiKey change event through the store.
func (m *Manager) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.NewInvalidRequest("API key must not be empty")
	}

	if m.useKeyring {
		if err := keyring.Set(keyringService, keyringAccount, token); err != nil {
			return errors.NewInternal(err)
		}
		return m.store.Put(store.PartitionLocal, store.KeyAPIKey, keyringMarker)
	}
	return m.store.Put(store.PartitionLocal, store.KeyAPIKey, token)
}

// ClearToken removes the API key from both the keyring and the store.
func (m *Manager) ClearToken() error {
	if m.useKeyring {
		if err := keyring.Delete(keyringService, keyringAccount); err != nil && err != keyring.ErrNotFound {
			return errors.NewInternal(err)
		}
	}
	return m.store.Delete(store.PartitionLocal, store.KeyAPIKey)
}

// HasToken reports whether a token is present, without reading the
// secret itself.
func (m *Manager) HasToken() bool {
	_, ok, err := m.store.Get(store.PartitionLocal, store.KeyAPIKey)
	return err == nil && ok
}
