package otpauth

import (
	"fmt"
	"image"
	"strings"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// GenerateOpts provides options for Generate.
type GenerateOpts struct {
	// Issuer names the organisation the key belongs to (required).
	Issuer string `name:"issuer" validate:"required"`
	// AccountName identifies the user, e.g. "alice@example.com" (required).
	AccountName string `name:"account" validate:"required"`
	// Algorithm is SHA1, SHA256 or SHA512, in any case. Default: SHA1
	Algorithm string `name:"algorithm" validate:"omitempty,oneof=SHA1 SHA256 SHA512"`
	// Digits is 6 or 8. Default: 6
	Digits int `name:"digits" validate:"omitempty,oneof=6 8"`
	// Period is the time step in seconds. Default: 30
	Period uint `name:"period"`
}

// Generate provisions a new key with a random 160 bit secret.
func Generate(opts GenerateOpts) (*URI, error) {
	opts.Algorithm = strings.ToUpper(strings.TrimSpace(opts.Algorithm))
	if err := validateOpts(opts); err != nil {
		return nil, err
	}

	alg := otp.AlgorithmSHA1
	switch opts.Algorithm {
	case "SHA256":
		alg = otp.AlgorithmSHA256
	case "SHA512":
		alg = otp.AlgorithmSHA512
	}

	digits := otp.DigitsSix
	if opts.Digits == 8 {
		digits = otp.DigitsEight
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      opts.Issuer,
		AccountName: opts.AccountName,
		Period:      opts.Period,
		SecretSize:  20,
		Digits:      digits,
		Algorithm:   alg,
	})
	if err != nil {
		return nil, fmt.Errorf("otpauth: failed to generate key: %w", err)
	}

	return Decode(key.URL())
}

// Image renders u as a QR code of the given size, ready to be scanned by an
// authenticator app.
func (u *URI) Image(width, height int) (image.Image, error) {
	key, err := otp.NewKeyFromURL(u.String())
	if err != nil {
		return nil, ErrMalformedURI
	}

	img, err := key.Image(width, height)
	if err != nil {
		return nil, fmt.Errorf("otpauth: failed to render qr code: %w", err)
	}
	return img, nil
}
