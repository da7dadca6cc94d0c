// Package secretcodec encrypts and decrypts one-time-code secrets with a key
// derived per identity.
//
// Every identity gets its own AES-256 key. The key is never stored: it is
// derived on demand with PBKDF2-HMAC-SHA256 from a passphrase built as
//
//	keyPartA + identity + keyPartB
//
// and the record's salt (5000 iterations, 32-byte output). The two key parts
// are deployment secrets resolved once at construction.
//
// # Storage compatibility
//
// Records in the directory were produced by an earlier implementation and the
// codec must keep reading them, so two parameters are fixed:
//
//   - The PBKDF2 salt is the UTF-8 text of the base64 salt exactly as stored,
//     not its decoded bytes.
//   - The GCM nonce is the full 16-byte IV (NonceSize), not the conventional
//     12 bytes. A new deployment could prefer 12 bytes, but changing it makes
//     every existing record undecryptable, so it is a named constant rather
//     than a silent default.
//
// Ciphertexts are base64(ciphertext || 16-byte tag).
//
// # Usage
//
//	codec, err := secretcodec.New(secretcodec.Config{KeyPartA: a, KeyPartB: b})
//	if err != nil {
//		// missing key material is fatal
//	}
//
//	salt, iv, err := codec.GenerateMaterial(knownSalts, knownIVs)
//	ct, err := codec.Encrypt("alice", "JBSWY3DPEHPK3PXP", salt, iv)
//
//	secret, err := codec.Decrypt("alice", ct, salt, iv)
//
// # Error Handling
//
// Decrypt reports every failure (absent input, malformed base64, wrong key,
// tampered data) as ErrDecryptionFailed and nothing else, so callers cannot
// build an oracle that separates a corrupted record from a wrong guess.
// Encrypt and GenerateMaterial wrap their sentinels with errors.Join.
//
// A Codec holds no mutable state and is safe for concurrent use.
package secretcodec
