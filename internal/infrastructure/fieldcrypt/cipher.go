// Package fieldcrypt protects sensitive document fields (phones, emails,
// usernames, passwords) before they reach the store.
//
// Two schemes exist. Deterministic reproduces the historical storage format:
// AES-256-CBC under a fixed key and a fixed IV, so equal plaintexts always
// produce equal ciphertexts and credentials are checked by re-encrypting and
// comparing. That makes the ciphertext an equality-leaking, key-invertible
// "hash". Sealed replaces it: bcrypt for credentials, AES-256-GCM with a
// random nonce for recoverable fields, and an HMAC blind index for lookups.
package fieldcrypt

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	KeySize = 32
	IVSize  = aes.BlockSize
)

var (
	ErrInvalidKey = errors.New("fieldcrypt: key must be 32 bytes")
	ErrInvalidIV  = errors.New("fieldcrypt: iv must be 16 bytes")
)

// Cipher is the fixed-key, fixed-IV AES-256-CBC encrypter. Its output format
// is "ivHex:cipherHex"; the IV is embedded even though it never varies.
type Cipher struct {
	block  cipher.Block
	iv     []byte
	prefix string
}

// NewCipher validates key and iv sizes; nothing is truncated or padded.
func NewCipher(key, iv []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKey, len(key))
	}
	if len(iv) != IVSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIV, len(iv))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("fieldcrypt: %w", err)
	}
	return &Cipher{
		block:  block,
		iv:     bytes.Clone(iv),
		prefix: hex.EncodeToString(iv) + ":",
	}, nil
}

// Encrypt is a pure function of plaintext and the static key/IV.
func (c *Cipher) Encrypt(plaintext string) string {
	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, c.iv).CryptBlocks(out, padded)
	return c.prefix + hex.EncodeToString(out)
}

// Matches re-encrypts candidate and compares it with stored in constant time.
func (c *Cipher) Matches(candidate, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(c.Encrypt(candidate)), []byte(stored)) == 1
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}
