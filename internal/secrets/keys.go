package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	terrors "github.com/PolarWolf314/tether/internal/errors"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"
)

const keySize = 32

// GenerateKeyPair creates a new Curve25519 key pair encoded as base64 strings.
func GenerateKeyPair() (publicKey string, privateKey string, err error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate key pair: %w", err)
	}
	return base64.StdEncoding.EncodeToString(pub[:]), base64.StdEncoding.EncodeToString(priv[:]), nil
}

// PublicKeyFor derives the base64 public key belonging to a base64 private key.
func PublicKeyFor(privateKey string) (string, error) {
	priv, err := decodeKey(privateKey)
	if err != nil {
		return "", err
	}
	pub, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return "", fmt.Errorf("%w: %v", terrors.ErrInvalidKey, err)
	}
	return base64.StdEncoding.EncodeToString(pub), nil
}

// ValidateKey reports whether s decodes to a 32-byte key.
func ValidateKey(s string) error {
	_, err := decodeKey(s)
	return err
}

func decodeKey(s string) (*[keySize]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", terrors.ErrInvalidKey, err)
	}
	if len(raw) != keySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", terrors.ErrInvalidKey, keySize, len(raw))
	}
	var key [keySize]byte
	copy(key[:], raw)
	return &key, nil
}
