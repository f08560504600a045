package totp

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/jeremyhahn/go-totp/pkg/clock"
)

// Config holds TOTP generator configuration.
type Config struct {
	// Secret is the Base32-encoded shared secret key. An empty secret
	// decodes to an empty HMAC key.
	Secret string
	// Algorithm specifies the HMAC hash algorithm.
	// Default: SHA1
	Algorithm Algorithm
	// Digits specifies the code length, between 1 and 9.
	// Default: 6
	Digits int
	// Period specifies the time step in seconds.
	// Default: 30
	Period uint64
	// Skew specifies how many periods before and after the current one
	// Verify accepts, at most MaxSkew. Zero accepts only the current period.
	Skew uint
	// Clock supplies the current time.
	// Default: system clock
	Clock clock.Clocker
}

// validate checks that the configuration is valid. Zero values are
// treated as "use the default" and are accepted.
func (c Config) validate() error {
	if c.Digits != 0 {
		if err := validateDigits(c.Digits); err != nil {
			return err
		}
	}

	if c.Algorithm != "" {
		if _, ok := c.Algorithm.hasher(); !ok {
			return fmt.Errorf("%w: algorithm must be SHA1, SHA256, or SHA512", ErrInvalidConfig)
		}
	}

	if c.Skew > MaxSkew {
		return fmt.Errorf("%w: skew must be at most %d, got %d", ErrInvalidConfig, MaxSkew, c.Skew)
	}

	return nil
}

// Generator produces and verifies TOTP codes for a single secret.
// It is immutable after construction and safe for concurrent use.
// The accessors report zero values on a nil Generator; the code producing
// methods return ErrNilGenerator.
type Generator struct {
	key    []byte
	alg    Algorithm
	digits int
	period uint64
	skew   uint
	clock  clock.Clocker
}

// NewGenerator creates a new TOTP generator.
// The configuration is validated and the secret decoded up front, so an
// invalid secret is reported here rather than on every call.
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Apply defaults
	if cfg.Digits == 0 {
		cfg.Digits = DefaultDigits
	}
	if cfg.Period == 0 {
		cfg.Period = DefaultPeriod
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = AlgorithmSHA1
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	key, err := DecodeSecret(cfg.Secret)
	if err != nil {
		return nil, err
	}

	return &Generator{
		key:    key,
		alg:    cfg.Algorithm,
		digits: cfg.Digits,
		period: cfg.Period,
		skew:   cfg.Skew,
		clock:  cfg.Clock,
	}, nil
}

// Digits returns the configured code length.
func (g *Generator) Digits() int {
	if g == nil {
		return 0
	}
	return g.digits
}

// Period returns the configured time step.
func (g *Generator) Period() time.Duration {
	if g == nil {
		return 0
	}
	return time.Duration(g.period) * time.Second
}

// Counter returns the counter for the current time.
func (g *Generator) Counter() uint64 {
	if g == nil {
		return 0
	}
	return Counter(g.clock.Now(), g.period)
}

// Remaining returns how long the current code stays valid.
func (g *Generator) Remaining() time.Duration {
	if g == nil {
		return 0
	}
	now := g.clock.Now().Unix()
	if now < 0 {
		now = 0
	}
	left := g.period - uint64(now)%g.period
	return time.Duration(left) * time.Second
}

// Generate returns the code for the current time.
func (g *Generator) Generate() (string, error) {
	if g == nil {
		return "", ErrNilGenerator
	}
	return g.codeAt(Counter(g.clock.Now(), g.period))
}

// GenerateAt returns the code for time t.
func (g *Generator) GenerateAt(t time.Time) (string, error) {
	if g == nil {
		return "", ErrNilGenerator
	}
	return g.codeAt(Counter(t, g.period))
}

func (g *Generator) codeAt(counter uint64) (string, error) {
	digest, err := Digest(g.key, counter, g.alg)
	if err != nil {
		return "", fmt.Errorf("totp: failed to compute digest: %w", err)
	}
	return Truncate(digest, g.digits), nil
}

// Verify checks code against the current period and up to Skew periods on
// either side. Codes are compared in constant time. Cancellation of ctx is
// observed between periods.
func (g *Generator) Verify(ctx context.Context, code string) error {
	if g == nil {
		return ErrNilGenerator
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("%w: code must not be empty", ErrInvalidCode)
	}
	if len(code) != g.digits {
		return fmt.Errorf("%w: code must be %d digits", ErrInvalidCode, g.digits)
	}

	counter := Counter(g.clock.Now(), g.period)
	skew := uint64(g.skew)
	first := counter - min(counter, skew)
	last := counter + skew

	for c := first; c <= last; c++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		want, err := g.codeAt(c)
		if err != nil {
			return err
		}
		if subtle.ConstantTimeCompare([]byte(want), []byte(code)) == 1 {
			return nil
		}
	}

	return ErrInvalidCode
}
