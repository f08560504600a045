package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-totp/internal/config"
	"github.com/jeremyhahn/go-totp/pkg/totp"
)

func (a *App) newVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <otpauth-uri> <code>",
		Short: "Check a one-time password against the key in an otpauth:// URI",
		Args:  cobra.ArbitraryArgs,
		RunE:  a.runVerify,
	}

	cmd.Flags().Uint(config.FlagName(config.KeySkew), 1, "periods either side of now to accept")
	cmd.Flags().Bool(config.FlagName(config.KeyURIParams), false, "honour algorithm, digits and period from the uri")
	return cmd
}

func (a *App) runVerify(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return usage("totp verify <otpauth-uri> <code>")
	}

	uri, err := a.decode(args[0])
	if err != nil {
		return err
	}

	gen, err := a.generator(uri, a.cfg.Skew)
	if err != nil {
		return err
	}

	err = gen.Verify(cmd.Context(), args[1])
	switch {
	case err == nil:
		a.stdout.ok("code accepted")
		return nil
	case errors.Is(err, totp.ErrInvalidCode):
		a.log.DebugContext(cmd.Context(), "verification failed", "label", uri.Label, "err", err)
		return failure("code rejected")
	default:
		return failure("verification failed: %v", err)
	}
}
