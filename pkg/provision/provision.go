package provision

import (
	"errors"
	"strings"

	"github.com/dmitrymomot/totpgate/pkg/attribute"
	"github.com/dmitrymomot/totpgate/pkg/secretcodec"
	"github.com/dmitrymomot/totpgate/pkg/totp"
)

// Sealer encrypts secrets and draws fresh salt/IV pairs.
// *secretcodec.Codec satisfies it.
type Sealer interface {
	Encrypt(identity, plaintext, salt, iv string) (string, error)
	GenerateMaterial(knownSalts, knownIVs []string) (salt, iv string, err error)
}

// Provisioner produces new secret records for the directory.
type Provisioner struct {
	codec Sealer
}

// New returns a Provisioner sealing records with codec.
func New(codec Sealer) (*Provisioner, error) {
	if codec == nil {
		return nil, ErrMissingCodec
	}
	return &Provisioner{codec: codec}, nil
}

// Provision seals the base32 secret for identity as the next record after
// those already in existing. The salt and IV never repeat a value present in
// existing. The caller writes Record.Lines back to the directory.
func (p *Provisioner) Provision(identity, secret, existing string) (attribute.Record, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return attribute.Record{}, ErrMissingIdentity
	}
	if _, err := totp.DecodeSecret(secret); err != nil {
		return attribute.Record{}, errors.Join(ErrInvalidSecret, err)
	}

	snap := attribute.Parse(existing)
	salt, iv, err := p.codec.GenerateMaterial(snap.Values(attribute.PrefixSalt), snap.Values(attribute.PrefixIV))
	if err != nil {
		return attribute.Record{}, errors.Join(ErrProvisionFailed, err)
	}

	sealed, err := p.codec.Encrypt(identity, secret, salt, iv)
	if err != nil {
		return attribute.Record{}, errors.Join(ErrProvisionFailed, err)
	}

	return attribute.Record{
		Serial: snap.NextSerial(),
		Secret: sealed,
		Salt:   salt,
		IV:     iv,
	}, nil
}

var _ Sealer = (*secretcodec.Codec)(nil)
