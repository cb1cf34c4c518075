package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/friendgraph/internal/common"
)

// ErrDecryption is returned for any token that cannot be opened: wrong key,
// tampered ciphertext, bad encoding or non-JSON plaintext.
var ErrDecryption = errors.New("decryption failed")

// Sealer encrypts JSON documents into opaque text tokens and back.
//
// A token is base64url(nonce || ciphertext) where the ciphertext is the
// AES-256-GCM seal of the JSON encoding.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer builds a Sealer from a 32-byte key.
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("sealer key must be %d bytes, got %d", KeySize, len(key))
	}
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

// NewSealerFromSecret derives the key from secret and builds a Sealer.
func NewSealerFromSecret(secret string) (*Sealer, error) {
	key := DeriveKey(secret)
	defer common.WipeByteArray(key)
	return NewSealer(key)
}

// EncryptJSON marshals v and seals it with a fresh random nonce.
func (s *Sealer) EncryptJSON(v any) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(plaintext)

	nonce := common.GenerateRandByteArray(s.aead.NonceSize())
	sealed := s.aead.Seal(nonce, nonce, plaintext, nil)

	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// DecryptJSON opens token and unmarshals the plaintext into v.
func (s *Sealer) DecryptJSON(token string, v any) error {
	sealed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return fmt.Errorf("%w: bad encoding", ErrDecryption)
	}

	ns := s.aead.NonceSize()
	if len(sealed) < ns+s.aead.Overhead() {
		return fmt.Errorf("%w: token too short", ErrDecryption)
	}

	plaintext, err := s.aead.Open(nil, sealed[:ns], sealed[ns:], nil)
	if err != nil {
		return ErrDecryption
	}
	defer common.WipeByteArray(plaintext)

	if err := json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecryption, err)
	}
	return nil
}
