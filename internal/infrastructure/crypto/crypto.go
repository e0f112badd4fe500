package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// AEAD seals account passwords at rest. Each ciphertext carries its own
// random 24-byte nonce.
type AEAD struct{ aead cipher.AEAD }

func New(key []byte) (*AEAD, error) {
	a, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("credential key: %w", err)
	}
	return &AEAD{aead: a}, nil
}

// EncryptToString seals plaintext, binding it to ad (typically the username).
func (a *AEAD) EncryptToString(plaintext, ad string) (string, error) {
	nonce := make([]byte, a.aead.NonceSize(), a.aead.NonceSize()+len(plaintext)+a.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	buf := a.aead.Seal(nonce, nonce, []byte(plaintext), []byte(ad))
	return base64.RawStdEncoding.EncodeToString(buf), nil
}

func (a *AEAD) DecryptString(ciphertextB64, ad string) (string, error) {
	buf, err := base64.RawStdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return "", err
	}
	ns := a.aead.NonceSize()
	if len(buf) < ns+a.aead.Overhead() {
		return "", fmt.Errorf("ciphertext too short")
	}
	pt, err := a.aead.Open(nil, buf[:ns], buf[ns:], []byte(ad))
	if err != nil {
		return "", err
	}
	return string(pt), nil
}
