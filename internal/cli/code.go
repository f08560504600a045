package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-totp/pkg/otpauth"
	"github.com/jeremyhahn/go-totp/pkg/totp"
)

func (a *App) runCode(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return usage("totp <otpauth-uri>")
	}

	uri, err := a.decode(args[0])
	if err != nil {
		return err
	}

	gen, err := a.generator(uri, 0)
	if err != nil {
		return err
	}

	code, err := gen.Generate()
	if err != nil {
		return failure("failed to generate code: %v", err)
	}

	a.log.DebugContext(cmd.Context(), "generated code",
		"label", uri.Label,
		"secret", uri.Secret,
		"counter", gen.Counter(),
		"remaining", gen.Remaining(),
	)

	a.stdout.field("Account name", uri.Label)
	a.stdout.field("Secret key", a.secretView(uri.Secret))
	a.stdout.code("OTP code", code)
	return nil
}

// decode collapses every rejection cause into one message; the cause is
// only logged.
func (a *App) decode(raw string) (*otpauth.URI, error) {
	uri, err := otpauth.Decode(raw)
	if err != nil {
		a.log.Debug("rejected otpauth uri", "err", err)
		return nil, failure("invalid otpauth uri")
	}
	return uri, nil
}

func (a *App) generator(uri *otpauth.URI, skew uint) (*totp.Generator, error) {
	cfg := totp.Config{
		Secret: uri.Secret,
		Skew:   skew,
		Clock:  a.Clock,
	}

	if a.cfg.URIParams {
		name, err := uri.Algorithm()
		if err != nil {
			return nil, failure("invalid otpauth parameters: %v", err)
		}
		if cfg.Algorithm, err = totp.ParseAlgorithm(name); err != nil {
			return nil, failure("invalid otpauth parameters: %v", err)
		}
		if cfg.Digits, err = uri.Digits(); err != nil {
			return nil, failure("invalid otpauth parameters: %v", err)
		}
		if cfg.Period, err = uri.Period(); err != nil {
			return nil, failure("invalid otpauth parameters: %v", err)
		}
	}

	gen, err := totp.NewGenerator(cfg)
	switch {
	case err == nil:
		return gen, nil
	case errors.Is(err, totp.ErrInvalidBase32), errors.Is(err, totp.ErrInvalidKey):
		return nil, failure("invalid secret: %v", err)
	default:
		return nil, failure("invalid otpauth parameters: %v", err)
	}
}

func (a *App) secretView(secret string) string {
	if a.cfg.ShowSecret {
		return secret
	}
	return maskSecret(secret)
}

// maskSecret keeps the first four characters so a key can still be told
// apart from others.
func maskSecret(secret string) string {
	const visible = 4
	if len(secret) <= visible {
		return strings.Repeat("*", len(secret))
	}
	return secret[:visible] + strings.Repeat("*", len(secret)-visible)
}
