package secretcodec

import (
	"encoding/base64"
	"errors"
	"io"
	"slices"
)

// GenerateMaterial draws a fresh base64 salt (SaltSize bytes) and IV
// (NonceSize bytes) for a new record. Both are redrawn while either one is
// already present in knownSalts or knownIVs. Only provisioning calls this.
func (c *Codec) GenerateMaterial(knownSalts, knownIVs []string) (salt, iv string, err error) {
	saltBytes := make([]byte, SaltSize)
	ivBytes := make([]byte, NonceSize)

	for range maxMaterialTry {
		if _, err := io.ReadFull(c.random, saltBytes); err != nil {
			return "", "", errors.Join(ErrRandomSource, err)
		}
		if _, err := io.ReadFull(c.random, ivBytes); err != nil {
			return "", "", errors.Join(ErrRandomSource, err)
		}

		salt = base64.StdEncoding.EncodeToString(saltBytes)
		iv = base64.StdEncoding.EncodeToString(ivBytes)

		if !slices.Contains(knownSalts, salt) && !slices.Contains(knownIVs, iv) {
			return salt, iv, nil
		}
	}

	// Only a broken random source repeats itself this often.
	return "", "", ErrRandomSource
}
