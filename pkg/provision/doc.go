// Package provision creates the material an administrator writes to the
// directory when a user enrolls or rotates a one-time code secret.
//
// Enroll draws a new secret and returns its otpauth URI and QR code:
//
//	e, err := provision.Enroll("testuser", "Acme")
//
// Provision seals a secret for an identity as the record following the
// ones already stored, with a salt and IV that are new to that attribute:
//
//	p, _ := provision.New(codec)
//	rec, err := p.Provision("testuser", e.Secret, currentAttribute)
//	fmt.Println(attribute.Render(rec))
//
// Older records are left in place; the highest serial wins at login.
package provision
