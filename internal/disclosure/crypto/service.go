// Package crypto derives per-organization symmetric keys from a single
// server-held secret and performs authenticated encryption of report and
// message payloads.
//
// Key management is deliberately stateless: key = SHA-256(orgID || secret),
// recomputed on every call, never stored. Any instance holding the secret can
// serve any tenant, at the cost of the one secret being the single point of
// rotation risk. Changing this scheme means re-encrypting every stored
// envelope; do not alter it silently.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"github.com/pkg/errors"
)

var (
	// ErrConfiguration is returned when the server secret is unavailable.
	// Callers must fail the operation, never proceed with a default key.
	ErrConfiguration = errors.New("encryption secret is not configured")

	// ErrDecryption is returned on authentication-tag mismatch or a
	// malformed envelope. It is the tenant-isolation enforcement signal and
	// must never be swallowed into an empty result.
	ErrDecryption = errors.New("failed to decrypt envelope")
)

const nonceSize = 12 // 96-bit GCM nonce

// Service performs tenant-keyed AEAD operations. The secret is injected at
// construction; there is no ambient or global secret access.
type Service struct {
	secret []byte
}

// NewService creates the crypto service. An empty secret is tolerated at
// construction (the process must boot to serve non-crypto routes) but every
// Encrypt/Decrypt call will fail with ErrConfiguration until one is set.
func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Ready reports whether the server secret is present. Surfaced by the
// readiness endpoint so operators notice a missing secret immediately.
func (s *Service) Ready() bool {
	return len(s.secret) > 0
}

// deriveKey computes SHA-256(organizationID || secret). Pure and total for a
// fixed input pair, which is what makes stateless multi-instance operation
// work without a key-management service.
func (s *Service) deriveKey(organizationID string) [sha256.Size]byte {
	return sha256.Sum256(append([]byte(organizationID), s.secret...))
}

// Encrypt seals plaintext under the organization's derived key with
// AES-256-GCM and a fresh random 96-bit nonce. The envelope is
// base64(nonce || ciphertext-with-tag), suitable for a text column.
func (s *Service) Encrypt(organizationID string, plaintext []byte) (string, error) {
	if !s.Ready() {
		return "", ErrConfiguration
	}

	key := s.deriveKey(organizationID)

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return "", errors.Wrap(err, "failed to create cipher")
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return "", errors.Wrap(err, "failed to create GCM")
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(err, "failed to generate nonce")
	}

	sealed := aead.Seal(nonce, nonce, plaintext, nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens an envelope under the organization's derived key. A key
// derived from any other organization fails the authentication tag check
// deterministically; that failure surfaces as ErrDecryption.
func (s *Service) Decrypt(organizationID string, envelope string) ([]byte, error) {
	if !s.Ready() {
		return nil, ErrConfiguration
	}

	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return nil, errors.Wrap(ErrDecryption, "envelope is not valid base64")
	}

	if len(raw) < nonceSize {
		return nil, errors.Wrap(ErrDecryption, "envelope is too short")
	}

	key := s.deriveKey(organizationID)

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create GCM")
	}

	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.Wrap(ErrDecryption, "authentication failed")
	}

	return plaintext, nil
}

// KeyFingerprint returns a short informational fingerprint of the derived
// key (hex of the first 8 bytes of its SHA-256). Stored alongside records so
// operators can tell which key material an envelope belongs to; never the
// key itself.
func (s *Service) KeyFingerprint(organizationID string) (string, error) {
	if !s.Ready() {
		return "", ErrConfiguration
	}

	key := s.deriveKey(organizationID)
	sum := sha256.Sum256(key[:])

	return hex.EncodeToString(sum[:8]), nil
}
