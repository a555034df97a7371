package fieldcrypt

import (
	"fmt"

	"github.com/panaderia/backend/internal/core/ports"
	"github.com/panaderia/backend/internal/pkg/config"
)

// Deterministic adapts Cipher to ports.FieldProtector. Every operation is the
// same encryption, so Index(p) == Seal(p) == HashCredential(p).
type Deterministic struct {
	c *Cipher
}

func NewDeterministic(c *Cipher) *Deterministic {
	return &Deterministic{c: c}
}

func (d *Deterministic) Scheme() string { return config.SchemeLegacy }

func (d *Deterministic) Seal(plaintext string) (string, error) {
	return d.c.Encrypt(plaintext), nil
}

// Reveal returns the stored form unchanged: this scheme exposes no decrypt.
func (d *Deterministic) Reveal(stored string) (string, error) {
	return stored, nil
}

func (d *Deterministic) Index(plaintext string) string {
	return d.c.Encrypt(plaintext)
}

func (d *Deterministic) HashCredential(plaintext string) (string, error) {
	return d.c.Encrypt(plaintext), nil
}

func (d *Deterministic) VerifyCredential(stored, candidate string) bool {
	return d.c.Matches(candidate, stored)
}

// New builds the protector selected by cfg.Scheme.
func New(cfg config.CryptoConfig) (ports.FieldProtector, error) {
	key, err := cfg.Key()
	if err != nil {
		return nil, err
	}
	switch cfg.Scheme {
	case config.SchemeSealed:
		return NewSealed(key)
	case config.SchemeLegacy:
		iv, err := cfg.IV()
		if err != nil {
			return nil, err
		}
		c, err := NewCipher(key, iv)
		if err != nil {
			return nil, err
		}
		return NewDeterministic(c), nil
	default:
		return nil, fmt.Errorf("fieldcrypt: unknown scheme %q", cfg.Scheme)
	}
}

var (
	_ ports.FieldProtector = (*Deterministic)(nil)
	_ ports.FieldProtector = (*Sealed)(nil)
)
