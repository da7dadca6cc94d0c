package secretcodec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	KeySize        = 32   // AES-256
	NonceSize      = 16   // IV length used as the GCM nonce
	SaltSize       = 32   // random salt drawn at provisioning
	TagSize        = 16   // GCM authentication tag
	KDFIterations  = 5000 // PBKDF2 rounds
	maxMaterialTry = 64
)

// Config holds the two deployment secrets wrapped around the identity to form
// the key derivation passphrase.
type Config struct {
	KeyPartA string
	KeyPartB string
}

// Codec derives per-identity keys and seals secrets with AES-256-GCM.
type Codec struct {
	partA  string
	partB  string
	random io.Reader
}

// Option configures a Codec.
type Option func(*Codec)

// WithRandom replaces the randomness source used by GenerateMaterial.
// Nil readers are ignored.
func WithRandom(r io.Reader) Option {
	return func(c *Codec) {
		if r != nil {
			c.random = r
		}
	}
}

// New returns a Codec. Both key parts must be non-empty.
func New(cfg Config, opts ...Option) (*Codec, error) {
	if cfg.KeyPartA == "" || cfg.KeyPartB == "" {
		return nil, ErrMissingKeyPart
	}

	c := &Codec{
		partA:  cfg.KeyPartA,
		partB:  cfg.KeyPartB,
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// DeriveKey returns the 256-bit key for identity and salt. The salt is used
// as text, byte for byte as it is stored.
func (c *Codec) DeriveKey(identity, salt string) []byte {
	passphrase := c.partA + identity + c.partB
	return pbkdf2.Key([]byte(passphrase), []byte(salt), KDFIterations, KeySize, sha256.New)
}

// Encrypt seals plaintext for identity and returns base64(ciphertext || tag).
func (c *Codec) Encrypt(identity, plaintext, salt, iv string) (string, error) {
	if plaintext == "" || salt == "" || iv == "" {
		return "", errors.Join(ErrEncryptionFailed, ErrMissingInput)
	}

	nonce, err := decodeIV(iv)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	aead, err := c.aead(identity, salt)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	sealed := aead.Seal(nil, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a ciphertext produced by Encrypt. Any failure yields
// ErrDecryptionFailed.
func (c *Codec) Decrypt(identity, ciphertext, salt, iv string) (string, error) {
	if ciphertext == "" || salt == "" || iv == "" {
		return "", ErrDecryptionFailed
	}

	nonce, err := decodeIV(iv)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil || len(sealed) < TagSize {
		return "", ErrDecryptionFailed
	}

	aead, err := c.aead(identity, salt)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plain), nil
}

func (c *Codec) aead(identity, salt string) (cipher.AEAD, error) {
	key := c.DeriveKey(identity, salt)
	defer clearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCMWithNonceSize(block, NonceSize)
}

func decodeIV(iv string) ([]byte, error) {
	nonce, err := base64.StdEncoding.DecodeString(iv)
	if err != nil {
		return nil, errors.Join(ErrInvalidIV, err)
	}
	if len(nonce) != NonceSize {
		return nil, ErrInvalidIV
	}
	return nonce, nil
}

// clearBytes zeroes key material once the cipher has been keyed.
func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
