package verifyapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// MaxBodySize bounds a verification request. Directory attributes with many
// rotated records stay far below it.
const MaxBodySize = 64 << 10

type verifyRequest struct {
	Identity  string `json:"identity"`
	Code      string `json:"code"`
	Attribute string `json:"attribute"`
}

func (v verifyRequest) validate() error {
	if strings.TrimSpace(v.Identity) == "" || v.Code == "" || v.Attribute == "" {
		return ErrMissingField
	}
	return nil
}

func decodeJSON(r *http.Request, v any) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return ErrMissingContentType
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("%w: got %q", ErrUnsupportedMediaType, contentType)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize+1))
	if err != nil {
		return errors.Join(ErrInvalidBody, err)
	}
	if len(body) > MaxBodySize {
		return ErrBodyTooLarge
	}

	dec := json.NewDecoder(strings.NewReader(string(body)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrInvalidBody)
		}
		return errors.Join(ErrInvalidBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON object", ErrInvalidBody)
	}
	return nil
}
