package totp

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// SecretSize is the length in bytes of generated secrets (160 bits).
const SecretSize = 20

// Params describes an enrollment key URI.
type Params struct {
	Secret      string // base32 shared secret (required)
	AccountName string // usually the directory identity (required)
	Issuer      string // shown by authenticator apps (required)
}

// Validate ensures all required parameters are present and the secret decodes.
func (p Params) Validate() error {
	if p.Secret == "" {
		return ErrMissingSecret
	}
	if _, err := DecodeSecret(p.Secret); err != nil {
		return err
	}
	if p.AccountName == "" {
		return ErrMissingAccountName
	}
	if p.Issuer == "" {
		return ErrMissingIssuer
	}
	return nil
}

// GenerateSecret returns a new unpadded base32 secret.
func GenerateSecret() (string, error) {
	secret := make([]byte, SecretSize)
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecretKey, err)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret), nil
}

// URI builds the otpauth key URI understood by authenticator apps:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
func URI(p Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	label := fmt.Sprintf("%s:%s",
		url.PathEscape(p.Issuer),
		url.PathEscape(p.AccountName),
	)

	query := url.Values{}
	query.Set("secret", p.Secret)
	query.Set("issuer", p.Issuer)
	query.Set("algorithm", "SHA1")
	query.Set("digits", strconv.Itoa(Digits))
	query.Set("period", strconv.Itoa(Period))

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode()), nil
}
