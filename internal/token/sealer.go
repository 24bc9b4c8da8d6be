package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/pbkdf2"
)

// ErrDecryption covers every way a token can fail to open: malformed
// base64, truncated input, wrong secret, flipped ciphertext bytes. Callers
// must not be able to tell which one happened.
var ErrDecryption = errors.New("token decryption failed")

const (
	nonceSize     = 12
	kdfIterations = 100_000
	kdfKeyLength  = 32
)

// kdfSalt is fixed on purpose. Changing it invalidates every token minted
// under all three secrets, so it stays until the secrets are rotated with it.
var kdfSalt = []byte("salt")

// Sealer wraps payload bytes into an opaque URL-safe token string using
// AES-256-GCM under a key derived from the configured secret.
type Sealer struct {
	aead cipher.AEAD
}

func NewSealer(secret string) (*Sealer, error) {
	key := pbkdf2.Key([]byte(secret), kdfSalt, kdfIterations, kdfKeyLength, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext and returns base64url(nonce || ciphertext || tag).
func (s *Sealer) Seal(plaintext []byte) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := s.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Unseal reverses Seal. Any failure surfaces as ErrDecryption.
func (s *Sealer) Unseal(token string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrDecryption
	}
	if len(raw) < nonceSize {
		return nil, ErrDecryption
	}
	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryption
	}
	return plaintext, nil
}
