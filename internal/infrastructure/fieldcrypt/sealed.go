package fieldcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/hkdf"

	"github.com/panaderia/backend/internal/core/domain"
	"github.com/panaderia/backend/internal/pkg/config"
)

const sealedPrefix = "v1:"

// HKDF info labels. Changing one orphans every value protected with it.
const (
	infoSeal  = "panaderia/fieldcrypt/seal"
	infoIndex = "panaderia/fieldcrypt/index"
)

var ErrMalformed = errors.New("fieldcrypt: malformed sealed value")

// Sealed protects fields with per-record randomness.
type Sealed struct {
	aead     cipher.AEAD
	indexKey []byte
	cost     int
	rand     io.Reader
}

// NewSealed derives independent encryption and index keys from master.
func NewSealed(master []byte) (*Sealed, error) {
	if len(master) != KeySize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKey, len(master))
	}
	sealKey, err := derive(master, infoSeal)
	if err != nil {
		return nil, err
	}
	indexKey, err := derive(master, infoIndex)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(sealKey)
	if err != nil {
		return nil, fmt.Errorf("fieldcrypt: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("fieldcrypt: %w", err)
	}
	return &Sealed{aead: aead, indexKey: indexKey, cost: bcrypt.DefaultCost, rand: rand.Reader}, nil
}

func derive(master []byte, info string) ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("fieldcrypt: derive %s: %w", info, err)
	}
	return key, nil
}

func (s *Sealed) Scheme() string { return config.SchemeSealed }

// Seal encrypts plaintext under a fresh nonce: "v1:" + base64(nonce||ciphertext).
func (s *Sealed) Seal(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(s.rand, nonce); err != nil {
		return "", fmt.Errorf("fieldcrypt: nonce: %w", err)
	}
	out := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.RawStdEncoding.EncodeToString(out), nil
}

// Reveal authenticates and decrypts a value produced by Seal.
func (s *Sealed) Reveal(stored string) (string, error) {
	enc, ok := strings.CutPrefix(stored, sealedPrefix)
	if !ok {
		return "", ErrMalformed
	}
	raw, err := base64.RawStdEncoding.DecodeString(enc)
	if err != nil || len(raw) < s.aead.NonceSize() {
		return "", ErrMalformed
	}
	nonce, ct := raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():]
	pt, err := s.aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return string(pt), nil
}

// Index is the keyed blind index used for equality lookups.
func (s *Sealed) Index(plaintext string) string {
	mac := hmac.New(sha256.New, s.indexKey)
	mac.Write([]byte(plaintext))
	return hex.EncodeToString(mac.Sum(nil))
}

// HashCredential bcrypt-hashes plaintext. bcrypt reads at most 72 bytes,
// so longer credentials are refused as invalid input.
func (s *Sealed) HashCredential(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.Invalid("contrasena debe tener como máximo 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("fieldcrypt: hash credential: %w", err)
	}
	return string(h), nil
}

func (s *Sealed) VerifyCredential(stored, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}
