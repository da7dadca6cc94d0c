package provision

import (
	"errors"
	"io"
	"strings"

	"github.com/pquerna/otp"
	pqtotp "github.com/pquerna/otp/totp"

	"github.com/dmitrymomot/totpgate/pkg/qrcode"
	"github.com/dmitrymomot/totpgate/pkg/totp"
)

// Enrollment is what a user needs to add the account to an authenticator app.
type Enrollment struct {
	Secret string // base32, no padding
	URI    string // otpauth key URI
	QRCode []byte // PNG of URI
}

type enrollOptions struct {
	rand   io.Reader
	qrSize int
}

// EnrollOption customises Enroll.
type EnrollOption func(*enrollOptions)

// WithRandom sets the randomness source for the secret.
func WithRandom(r io.Reader) EnrollOption {
	return func(o *enrollOptions) { o.rand = r }
}

// WithQRSize sets the QR image edge in pixels.
func WithQRSize(px int) EnrollOption {
	return func(o *enrollOptions) { o.qrSize = px }
}

// Enroll generates a new shared secret for identity together with its key
// URI and QR code.
func Enroll(identity, issuer string, opts ...EnrollOption) (Enrollment, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return Enrollment{}, ErrMissingIdentity
	}
	if strings.TrimSpace(issuer) == "" {
		return Enrollment{}, ErrMissingIssuer
	}

	var o enrollOptions
	for _, opt := range opts {
		opt(&o)
	}

	key, err := pqtotp.Generate(pqtotp.GenerateOpts{
		Issuer:      issuer,
		AccountName: identity,
		Period:      totp.Period,
		SecretSize:  totp.SecretSize,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
		Rand:        o.rand,
	})
	if err != nil {
		return Enrollment{}, errors.Join(ErrEnrollFailed, err)
	}

	png, err := qrcode.PNG(key.URL(), qrcode.WithSize(o.qrSize))
	if err != nil {
		return Enrollment{}, errors.Join(ErrEnrollFailed, err)
	}

	return Enrollment{
		Secret: key.Secret(),
		URI:    key.URL(),
		QRCode: png,
	}, nil
}
