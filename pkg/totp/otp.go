package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	Digits = 6  // length of every code
	Period = 30 // seconds per time step
	Skew   = 1  // steps accepted on either side of the current one
)

const modulo = 1_000_000

// secretAlphabet matches unpadded RFC 4648 base32 text.
var secretAlphabet = regexp.MustCompile("^[A-Z2-7]+$")

// DecodeSecret decodes a base32 shared secret. Surrounding whitespace is
// trimmed, letters are upper-cased and trailing '=' padding is optional.
func DecodeSecret(secret string) ([]byte, error) {
	secret = strings.ToUpper(strings.TrimSpace(secret))
	secret = strings.TrimRight(secret, "=")
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if !secretAlphabet.MatchString(secret) {
		return nil, ErrInvalidSecret
	}
	// 1, 3 or 6 trailing characters cannot end a base32 group.
	switch len(secret) % 8 {
	case 1, 3, 6:
		return nil, ErrInvalidSecret
	}

	key, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	return key, nil
}

// CurrentStep returns the time step containing now.
func CurrentStep(now time.Time) int64 {
	return now.Unix() / Period
}

// CodeForStep computes the RFC 4226 code for key at the given step,
// zero-padded to Digits.
func CodeForStep(key []byte, step int64) string {
	var counter [8]byte
	binary.BigEndian.PutUint64(counter[:], uint64(step))

	mac := hmac.New(sha1.New, key)
	mac.Write(counter[:])
	sum := mac.Sum(nil)

	// Dynamic truncation: low nibble of the last byte selects a 31-bit window.
	offset := sum[len(sum)-1] & 0x0f
	value := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	return fmt.Sprintf("%0*d", Digits, value%modulo)
}

// Verify reports whether code is valid for the base32 secret at now,
// allowing Skew steps of clock drift. Malformed input is rejected.
func Verify(secret, code string, now time.Time) bool {
	if !wellFormed(code) {
		return false
	}
	key, err := DecodeSecret(secret)
	if err != nil {
		return false
	}

	step := CurrentStep(now)
	match := 0
	for i := -Skew; i <= Skew; i++ {
		// Every candidate is compared so timing does not reveal which step matched.
		match |= subtle.ConstantTimeCompare([]byte(CodeForStep(key, step+int64(i))), []byte(code))
	}
	return match == 1
}

// GenerateCode returns the code for secret at t.
func GenerateCode(secret string, t time.Time) (string, error) {
	key, err := DecodeSecret(secret)
	if err != nil {
		return "", err
	}
	return CodeForStep(key, CurrentStep(t)), nil
}

func wellFormed(code string) bool {
	if len(code) != Digits {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
