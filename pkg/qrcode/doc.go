// Package qrcode renders enrollment key URIs as QR codes so users can scan
// them into an authenticator app.
//
// It wraps github.com/skip2/go-qrcode with defaults (256 px, medium error
// correction) and input validation:
//
//	png, err := qrcode.PNG(uri)
//	src, err := qrcode.DataURI(uri, qrcode.WithSize(320))
//	err = qrcode.WriteFile("enroll.png", uri)
//	text, err := qrcode.Terminal(uri, qrcode.WithLevel(qrcode.LevelLow))
//
// Empty or whitespace-only content fails with ErrEmptyContent. Encoder
// failures are joined with ErrEncodeFailed, file errors with ErrWriteFailed.
package qrcode
