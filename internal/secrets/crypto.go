package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	terrors "github.com/PolarWolf314/tether/internal/errors"
	"golang.org/x/crypto/nacl/box"
)

const nonceSize = 24

// EncryptAsymmetric seals plaintext from privateKey to publicKey.
// It returns the base64 ciphertext and the base64 nonce drawn for this seal.
func EncryptAsymmetric(plaintext string, publicKey string, privateKey string) (ciphertext string, nonce string, err error) {
	pub, err := decodeKey(publicKey)
	if err != nil {
		return "", "", fmt.Errorf("%w: public key: %v", terrors.ErrKeyEncryptFailed, err)
	}
	priv, err := decodeKey(privateKey)
	if err != nil {
		return "", "", fmt.Errorf("%w: private key: %v", terrors.ErrKeyEncryptFailed, err)
	}

	var n [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, n[:]); err != nil {
		return "", "", fmt.Errorf("%w: reading nonce: %v", terrors.ErrKeyEncryptFailed, err)
	}

	sealed := box.Seal(nil, []byte(plaintext), &n, pub, priv)

	return base64.StdEncoding.EncodeToString(sealed), base64.StdEncoding.EncodeToString(n[:]), nil
}

// DecryptAsymmetric opens a base64 ciphertext sealed by publicKey's owner for privateKey.
// Every failure, including malformed input, is reported as ErrKeyDecryptFailed.
func DecryptAsymmetric(ciphertext string, nonce string, publicKey string, privateKey string) (string, error) {
	pub, err := decodeKey(publicKey)
	if err != nil {
		return "", fmt.Errorf("%w: sender public key: %v", terrors.ErrKeyDecryptFailed, err)
	}
	priv, err := decodeKey(privateKey)
	if err != nil {
		return "", fmt.Errorf("%w: private key: %v", terrors.ErrKeyDecryptFailed, err)
	}

	rawNonce, err := base64.StdEncoding.DecodeString(nonce)
	if err != nil {
		return "", fmt.Errorf("%w: nonce: %v", terrors.ErrKeyDecryptFailed, err)
	}
	if len(rawNonce) != nonceSize {
		return "", fmt.Errorf("%w: nonce must be %d bytes, got %d", terrors.ErrKeyDecryptFailed, nonceSize, len(rawNonce))
	}
	var n [nonceSize]byte
	copy(n[:], rawNonce)

	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext: %v", terrors.ErrKeyDecryptFailed, err)
	}

	plaintext, ok := box.Open(nil, sealed, &n, pub, priv)
	if !ok {
		return "", fmt.Errorf("%w: authentication failed", terrors.ErrKeyDecryptFailed)
	}

	return string(plaintext), nil
}
