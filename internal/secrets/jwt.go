package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the app’s secrets in the OS keychain.
	KeyringService = "jobboard"
)

var ErrNoSecret = errors.New("jwt secret not found (set it in config, env or keychain)")

// GetJWTSecret prefers an explicit value and falls back to the keychain.
func GetJWTSecret(explicit, keyringAccount string) (string, error) {
	if s := strings.TrimSpace(explicit); s != "" {
		return s, nil
	}
	if strings.TrimSpace(keyringAccount) != "" {
		s, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(s) != "" {
			return s, nil
		}
	}
	return "", ErrNoSecret
}

func SetJWTSecret(keyringAccount, secret string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(secret) == "" {
		return errors.New("secret is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, secret)
}

func DeleteJWTSecret(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}

// EnsureJWTSecret returns the configured secret, or generates one and stores
// it in the keychain on first run.
func EnsureJWTSecret(explicit, keyringAccount string) (secret string, generated bool, err error) {
	s, err := GetJWTSecret(explicit, keyringAccount)
	if err == nil {
		return s, false, nil
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", false, err
	}
	s = hex.EncodeToString(b)
	if err := SetJWTSecret(keyringAccount, s); err != nil {
		return "", false, err
	}
	return s, true, nil
}
