package totp

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

// SecretSize is the number of random bytes in a generated secret (160 bits,
// as recommended by RFC 4226).
const SecretSize = 20

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// DecodeSecret decodes an unpadded RFC 4648 Base32 secret. Whitespace is
// ignored and lower case letters are accepted, since authenticator apps
// commonly display secrets in spaced lower case groups. Padding characters
// and lengths that leave a partial byte are rejected.
func DecodeSecret(secret string) ([]byte, error) {
	clean := strings.ToUpper(strings.Join(strings.Fields(secret), ""))

	// A trailing group of 1, 3 or 6 characters cannot carry a whole byte;
	// the decoder would drop it without complaint.
	switch len(clean) % 8 {
	case 1, 3, 6:
		return nil, fmt.Errorf("%w: illegal length %d", ErrInvalidBase32, len(clean))
	}

	key, err := b32.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase32, err)
	}
	return key, nil
}

// EncodeSecret encodes key as unpadded Base32.
func EncodeSecret(key []byte) string {
	return b32.EncodeToString(key)
}

// GenerateSecret returns a cryptographically random secret encoded as
// unpadded Base32, suitable for Config.Secret.
func GenerateSecret() (string, error) {
	secret := make([]byte, SecretSize)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("totp: failed to generate random secret: %w", err)
	}
	return EncodeSecret(secret), nil
}
