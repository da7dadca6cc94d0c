package qrcode

import "errors"

var (
	ErrEmptyContent = errors.New("qrcode: content cannot be empty")
	ErrEncodeFailed = errors.New("qrcode: failed to encode")
	ErrWriteFailed  = errors.New("qrcode: failed to write image")
)
