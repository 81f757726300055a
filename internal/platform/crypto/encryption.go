package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// PurposePayrollSnapshot scopes the subkey used for stored payroll snapshots.
const PurposePayrollSnapshot = "hrpay/payroll-snapshot/v1"

const keySize = 32

// Service seals data with AES-256-GCM. The cipher key is derived from the
// configured master key with HKDF-SHA256 so each purpose gets its own key.
type Service struct {
	key []byte
}

// New returns an unconfigured service when key is empty; Encrypt and
// Decrypt then pass data through unchanged.
func New(key, purpose string) (*Service, error) {
	if key == "" {
		return &Service{key: nil}, nil
	}
	master, err := decodeKey(key)
	if err != nil {
		return nil, err
	}
	if len(master) < 16 {
		return nil, fmt.Errorf("DATA_ENCRYPTION_KEY must be at least 16 bytes after decoding")
	}
	derived := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte(purpose)), derived); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", purpose, err)
	}
	return &Service{key: derived}, nil
}

func (s *Service) Configured() bool {
	return s != nil && len(s.key) == keySize
}

func (s *Service) Encrypt(plain []byte) ([]byte, error) {
	if len(plain) == 0 {
		return nil, nil
	}
	if !s.Configured() {
		return plain, nil
	}
	gcm, err := s.aead()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	ciphertext := gcm.Seal(nil, nonce, plain, nil)
	return append(nonce, ciphertext...), nil
}

func (s *Service) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, nil
	}
	if !s.Configured() {
		return ciphertext, nil
	}
	gcm, err := s.aead()
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	data := ciphertext[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, data, nil)
	if err != nil {
		return nil, err
	}
	return plain, nil
}

func (s *Service) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func decodeKey(raw string) ([]byte, error) {
	if len(raw) == 64 {
		decoded, err := hex.DecodeString(raw)
		if err == nil {
			return decoded, nil
		}
	}
	if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil {
		return decoded, nil
	}
	if decoded, err := base64.RawStdEncoding.DecodeString(raw); err == nil {
		return decoded, nil
	}
	return []byte(raw), nil
}
