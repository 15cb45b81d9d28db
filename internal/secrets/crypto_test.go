package secrets

import (
	"encoding/base64"
	"errors"
	"testing"

	terrors "github.com/PolarWolf314/tether/internal/errors"
)

func mustKeyPair(t *testing.T) (string, string) {
	t.Helper()
	pub, priv, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() failed: %v", err)
	}
	return pub, priv
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	userPub, userPriv := mustKeyPair(t)
	botPub, botPriv := mustKeyPair(t)

	workspaceKey := "7f1c2a9e4b5d6c3f8a0e1d2c3b4a5968"

	ciphertext, nonce, err := EncryptAsymmetric(workspaceKey, botPub, userPriv)
	if err != nil {
		t.Fatalf("EncryptAsymmetric() failed: %v", err)
	}

	got, err := DecryptAsymmetric(ciphertext, nonce, userPub, botPriv)
	if err != nil {
		t.Fatalf("DecryptAsymmetric() failed: %v", err)
	}
	if got != workspaceKey {
		t.Errorf("DecryptAsymmetric() = %q, want %q", got, workspaceKey)
	}
}

func TestEncryptUsesFreshNonce(t *testing.T) {
	_, userPriv := mustKeyPair(t)
	botPub, _ := mustKeyPair(t)

	c1, n1, err := EncryptAsymmetric("key", botPub, userPriv)
	if err != nil {
		t.Fatalf("EncryptAsymmetric() failed: %v", err)
	}
	c2, n2, err := EncryptAsymmetric("key", botPub, userPriv)
	if err != nil {
		t.Fatalf("EncryptAsymmetric() failed: %v", err)
	}

	if n1 == n2 {
		t.Error("two seals reused the same nonce")
	}
	if c1 == c2 {
		t.Error("two seals produced identical ciphertext")
	}
}

func TestDecryptFailures(t *testing.T) {
	userPub, userPriv := mustKeyPair(t)
	botPub, botPriv := mustKeyPair(t)
	_, strangerPriv := mustKeyPair(t)

	ciphertext, nonce, err := EncryptAsymmetric("workspace-key", botPub, userPriv)
	if err != nil {
		t.Fatalf("EncryptAsymmetric() failed: %v", err)
	}

	tampered, _ := base64.StdEncoding.DecodeString(ciphertext)
	tampered[len(tampered)-1] ^= 0xff

	tests := []struct {
		name       string
		ciphertext string
		nonce      string
		publicKey  string
		privateKey string
	}{
		{"wrong private key", ciphertext, nonce, userPub, strangerPriv},
		{"tampered ciphertext", base64.StdEncoding.EncodeToString(tampered), nonce, userPub, botPriv},
		{"ciphertext not base64", "%%%", nonce, userPub, botPriv},
		{"nonce not base64", ciphertext, "%%%", userPub, botPriv},
		{"short nonce", ciphertext, base64.StdEncoding.EncodeToString([]byte("short")), userPub, botPriv},
		{"short public key", ciphertext, nonce, base64.StdEncoding.EncodeToString([]byte("short")), botPriv},
		{"empty private key", ciphertext, nonce, userPub, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecryptAsymmetric(tt.ciphertext, tt.nonce, tt.publicKey, tt.privateKey)
			if !errors.Is(err, terrors.ErrKeyDecryptFailed) {
				t.Errorf("DecryptAsymmetric() error = %v, want ErrKeyDecryptFailed", err)
			}
		})
	}
}

func TestEncryptRejectsBadKeys(t *testing.T) {
	pub, priv := mustKeyPair(t)

	if _, _, err := EncryptAsymmetric("key", "not-a-key", priv); !errors.Is(err, terrors.ErrKeyEncryptFailed) {
		t.Errorf("bad public key: error = %v, want ErrKeyEncryptFailed", err)
	}
	if _, _, err := EncryptAsymmetric("key", pub, "not-a-key"); !errors.Is(err, terrors.ErrKeyEncryptFailed) {
		t.Errorf("bad private key: error = %v, want ErrKeyEncryptFailed", err)
	}
}

func TestPublicKeyFor(t *testing.T) {
	pub, priv := mustKeyPair(t)

	got, err := PublicKeyFor(priv)
	if err != nil {
		t.Fatalf("PublicKeyFor() failed: %v", err)
	}
	if got != pub {
		t.Errorf("PublicKeyFor() = %q, want %q", got, pub)
	}

	if _, err := PublicKeyFor("AAAA"); !errors.Is(err, terrors.ErrInvalidKey) {
		t.Errorf("PublicKeyFor(short) error = %v, want ErrInvalidKey", err)
	}
}
