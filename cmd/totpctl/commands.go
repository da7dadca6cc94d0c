package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dmitrymomot/totpgate/pkg/attribute"
	"github.com/dmitrymomot/totpgate/pkg/config"
	"github.com/dmitrymomot/totpgate/pkg/logger"
	"github.com/dmitrymomot/totpgate/pkg/provision"
	"github.com/dmitrymomot/totpgate/pkg/qrcode"
	"github.com/dmitrymomot/totpgate/pkg/secretcodec"
	"github.com/dmitrymomot/totpgate/pkg/totp"
)

var (
	errUsage        = errors.New("invalid usage")
	errNoRecord     = errors.New("attribute holds no complete secret record")
	errCodeRejected = errors.New("code rejected")
)

// now is replaced in tests.
var now = time.Now

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parse(fs *flag.FlagSet, args []string, required map[string]*string) error {
	if err := fs.Parse(args); err != nil {
		return errors.Join(errUsage, err)
	}
	var missing []string
	fs.VisitAll(func(f *flag.Flag) {
		if v, ok := required[f.Name]; ok && strings.TrimSpace(*v) == "" {
			missing = append(missing, "-"+f.Name)
		}
	})
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s requires %s", errUsage, fs.Name(), strings.Join(missing, ", "))
	}
	return nil
}

func enrollCmd(_ context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("enroll", stderr)
	identity := fs.String("identity", "", "directory user name")
	issuer := fs.String("issuer", "", "issuer shown by authenticator apps")
	qrPath := fs.String("qr", "", "write the QR code PNG to this path")
	qrSize := fs.Int("qr-size", qrcode.DefaultSize, "QR code edge in pixels")
	terminal := fs.Bool("terminal", false, "print the QR code to the terminal")
	if err := parse(fs, args, map[string]*string{"identity": identity, "issuer": issuer}); err != nil {
		return err
	}

	e, err := provision.Enroll(*identity, *issuer, provision.WithQRSize(*qrSize))
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "secret: %s\nuri:    %s\n", e.Secret, e.URI)
	if *qrPath != "" {
		if err := os.WriteFile(*qrPath, e.QRCode, 0o600); err != nil {
			return errors.Join(qrcode.ErrWriteFailed, err)
		}
		fmt.Fprintf(stdout, "qr:     %s\n", *qrPath)
	}
	if *terminal {
		text, err := qrcode.Terminal(e.URI, qrcode.WithLevel(qrcode.LevelLow))
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, text)
	}
	return nil
}

func provisionCmd(_ context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("provision", stderr)
	identity := fs.String("identity", "", "directory user name")
	secret := fs.String("secret", "", "base32 shared secret, as printed by enroll")
	attr := fs.String("attribute", "", "current directory attribute text")
	attrFile := fs.String("attribute-file", "", "read the current attribute from this file")
	settingsPath := fs.String("settings", os.Getenv("TOTPGATE_SETTINGS_FILE"), "settings file")
	if err := parse(fs, args, map[string]*string{"identity": identity, "secret": secret}); err != nil {
		return err
	}

	existing, err := attributeText(*attr, *attrFile, false)
	if err != nil {
		return err
	}
	codec, err := loadCodec(*settingsPath)
	if err != nil {
		return err
	}
	p, err := provision.New(codec)
	if err != nil {
		return err
	}

	rec, err := p.Provision(*identity, *secret, existing)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, attribute.Render(rec))
	return nil
}

func verifyCmd(_ context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("verify", stderr)
	identity := fs.String("identity", "", "directory user name")
	code := fs.String("code", "", "one-time code to check")
	attr := fs.String("attribute", "", "directory attribute text")
	attrFile := fs.String("attribute-file", "", "read the attribute from this file")
	settingsPath := fs.String("settings", os.Getenv("TOTPGATE_SETTINGS_FILE"), "settings file")
	verbose := fs.Bool("v", false, "log the outcome to stderr")
	if err := parse(fs, args, map[string]*string{"identity": identity, "code": code}); err != nil {
		return err
	}

	log := logger.Discard()
	if *verbose {
		log = logger.New(logger.WithOutput(stderr), logger.WithFormat(logger.FormatText))
	}

	text, err := attributeText(*attr, *attrFile, true)
	if err != nil {
		return err
	}
	codec, err := loadCodec(*settingsPath)
	if err != nil {
		return err
	}

	rec, ok := attribute.Parse(text).Current()
	if !ok {
		return errNoRecord
	}
	secret, err := codec.Decrypt(*identity, rec.Secret, rec.Salt, rec.IV)
	if err != nil {
		log.Warn("decryption failed", logger.Identity(*identity), logger.Serial(rec.Serial))
		return errCodeRejected
	}
	if !totp.Verify(secret, *code, now()) {
		log.Warn("code mismatch", logger.Identity(*identity), logger.Serial(rec.Serial))
		return errCodeRejected
	}

	log.Info("code accepted", logger.Identity(*identity), logger.Serial(rec.Serial))
	fmt.Fprintf(stdout, "ok: record %d\n", rec.Serial)
	return nil
}

func codeCmd(_ context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("code", stderr)
	secret := fs.String("secret", "", "base32 shared secret")
	if err := parse(fs, args, map[string]*string{"secret": secret}); err != nil {
		return err
	}

	c, err := totp.GenerateCode(*secret, now())
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, c)
	return nil
}

func attributeText(inline, path string, required bool) (string, error) {
	switch {
	case inline != "" && path != "":
		return "", fmt.Errorf("%w: use either -attribute or -attribute-file", errUsage)
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case inline == "" && required:
		return "", fmt.Errorf("%w: -attribute or -attribute-file is required", errUsage)
	}
	return inline, nil
}

func loadCodec(settingsPath string) (*secretcodec.Codec, error) {
	src := config.Chain{config.EnvSource{Prefix: "TOTPGATE_"}}
	if settingsPath != "" {
		file, err := config.OpenSource(settingsPath)
		if err != nil {
			return nil, err
		}
		src = append(src, file)
	}

	partA, partB, err := config.ResolveKeyParts(src)
	if err != nil {
		return nil, err
	}
	return secretcodec.New(secretcodec.Config{KeyPartA: partA, KeyPartB: partB})
}
