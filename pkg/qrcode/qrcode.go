package qrcode

import (
	"encoding/base64"
	"errors"
	"os"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the image edge in pixels used when no size is given.
const DefaultSize = 256

// Level is the error-correction level of the symbol.
type Level = skipqrcode.RecoveryLevel

const (
	LevelLow     = skipqrcode.Low
	LevelMedium  = skipqrcode.Medium
	LevelHigh    = skipqrcode.High
	LevelHighest = skipqrcode.Highest
)

type options struct {
	size  int
	level Level
}

// Option customises the generated image.
type Option func(*options)

// WithSize sets the image edge in pixels. Non-positive values keep DefaultSize.
func WithSize(px int) Option {
	return func(o *options) {
		if px > 0 {
			o.size = px
		}
	}
}

// WithLevel sets the error-correction level.
func WithLevel(l Level) Option {
	return func(o *options) { o.level = l }
}

func build(opts []Option) options {
	o := options{size: DefaultSize, level: LevelMedium}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// PNG encodes content, typically an otpauth key URI, as a PNG image.
func PNG(content string, opts ...Option) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	o := build(opts)
	img, err := skipqrcode.Encode(content, o.level, o.size)
	if err != nil {
		return nil, errors.Join(ErrEncodeFailed, err)
	}
	return img, nil
}

// DataURI returns the PNG as a data URI suitable for an <img src>.
func DataURI(content string, opts ...Option) (string, error) {
	img, err := PNG(content, opts...)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(img), nil
}

// WriteFile writes the PNG to path with 0600 permissions; the image carries
// a shared secret.
func WriteFile(path, content string, opts ...Option) error {
	img, err := PNG(content, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, img, 0o600); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// Terminal renders the symbol as text blocks for printing to a terminal.
func Terminal(content string, opts ...Option) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}
	o := build(opts)
	q, err := skipqrcode.New(content, o.level)
	if err != nil {
		return "", errors.Join(ErrEncodeFailed, err)
	}
	return q.ToSmallString(false), nil
}
