package totp

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"strings"
	"time"

	"github.com/jeremyhahn/go-totp/pkg/clock"
)

// Algorithm represents the hash algorithm used for HMAC computation.
type Algorithm string

const (
	// AlgorithmSHA1 uses HMAC-SHA1, the RFC 6238 default.
	AlgorithmSHA1 Algorithm = "SHA1"
	// AlgorithmSHA256 uses HMAC-SHA256.
	AlgorithmSHA256 Algorithm = "SHA256"
	// AlgorithmSHA512 uses HMAC-SHA512.
	AlgorithmSHA512 Algorithm = "SHA512"
)

const (
	// DefaultPeriod is the time step in seconds.
	DefaultPeriod uint64 = 30
	// DefaultDigits is the length of a generated code.
	DefaultDigits = 6
	// MinDigits and MaxDigits bound the code length. Nine digits is the
	// largest length whose modulus fits in 32 bits.
	MinDigits = 1
	MaxDigits = 9
	// MaxSkew bounds how many periods either side of now Verify checks.
	MaxSkew = 10
)

// Common errors returned by the totp package.
var (
	// ErrInvalidBase32 indicates the secret is not valid unpadded RFC 4648 Base32.
	ErrInvalidBase32 = errors.New("totp: invalid base32 secret")
	// ErrInvalidKey indicates the HMAC could not be constructed for the
	// requested algorithm.
	ErrInvalidKey = errors.New("totp: invalid hmac key")
	// ErrInvalidConfig indicates digits, period, skew or algorithm are out of range.
	ErrInvalidConfig = errors.New("totp: invalid configuration")
	// ErrInvalidCode indicates the provided code does not match.
	ErrInvalidCode = errors.New("totp: invalid code")
	// ErrNilGenerator indicates a nil generator was used.
	ErrNilGenerator = errors.New("totp: generator is nil")
)

// ParseAlgorithm converts a case-insensitive algorithm name. An empty name
// selects SHA1.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch alg := Algorithm(strings.ToUpper(strings.TrimSpace(name))); alg {
	case "", AlgorithmSHA1:
		return AlgorithmSHA1, nil
	case AlgorithmSHA256, AlgorithmSHA512:
		return alg, nil
	default:
		return "", fmt.Errorf("%w: algorithm must be SHA1, SHA256, or SHA512, got %q", ErrInvalidConfig, name)
	}
}

func (a Algorithm) hasher() (func() hash.Hash, bool) {
	switch a {
	case AlgorithmSHA1:
		return sha1.New, true
	case AlgorithmSHA256:
		return sha256.New, true
	case AlgorithmSHA512:
		return sha512.New, true
	default:
		return nil, false
	}
}

func validateDigits(digits int) error {
	if digits < MinDigits || digits > MaxDigits {
		return fmt.Errorf("%w: digits must be between %d and %d, got %d", ErrInvalidConfig, MinDigits, MaxDigits, digits)
	}
	return nil
}

func validatePeriod(period uint64) error {
	if period == 0 {
		return fmt.Errorf("%w: period must be greater than zero", ErrInvalidConfig)
	}
	return nil
}

// Generate returns the HMAC-SHA1 code of the given length for secret at the
// current system time.
func Generate(secret string, period uint64, digits int) (string, error) {
	return GenerateAt(secret, time.Now(), period, digits)
}

// GenerateAt is like Generate but derives the counter from t.
func GenerateAt(secret string, t time.Time, period uint64, digits int) (string, error) {
	if err := validatePeriod(period); err != nil {
		return "", err
	}
	if err := validateDigits(digits); err != nil {
		return "", err
	}

	key, err := DecodeSecret(secret)
	if err != nil {
		return "", err
	}

	digest, err := Digest(key, Counter(t, period), AlgorithmSHA1)
	if err != nil {
		return "", err
	}
	return Truncate(digest, digits), nil
}

// ComputeDigest decodes secret and returns the HMAC-SHA1 digest of the
// counter for the time reported by clk. A nil clk reads the system clock.
func ComputeDigest(secret string, period uint64, clk clock.Clocker) ([]byte, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.New()
	}

	key, err := DecodeSecret(secret)
	if err != nil {
		return nil, err
	}
	return Digest(key, Counter(clk.Now(), period), AlgorithmSHA1)
}
