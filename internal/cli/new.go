package cli

import (
	"bytes"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-totp/pkg/otpauth"
)

func (a *App) newNewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Provision a new key and print its otpauth:// URI",
		Args:  cobra.NoArgs,
		RunE:  a.runNew,
	}

	cmd.Flags().String("issuer", "", "issuer shown by authenticator apps (required)")
	cmd.Flags().String("account", "", "account name, e.g. alice@example.com (required)")
	cmd.Flags().String("qr", "", "write a PNG QR code of the uri to this file")
	cmd.Flags().Int("qr-size", 256, "QR code width and height in pixels")
	_ = cmd.MarkFlagRequired("issuer")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func (a *App) runNew(cmd *cobra.Command, _ []string) error {
	issuer, _ := cmd.Flags().GetString("issuer")
	account, _ := cmd.Flags().GetString("account")
	qrPath, _ := cmd.Flags().GetString("qr")
	qrSize, _ := cmd.Flags().GetInt("qr-size")

	uri, err := otpauth.Generate(otpauth.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
	})
	if err != nil {
		return failure("%v", err)
	}

	if qrPath != "" {
		if err := writeQR(uri, qrPath, qrSize); err != nil {
			return err
		}
		a.log.InfoContext(cmd.Context(), "wrote qr code", "path", qrPath, "size", qrSize)
	}

	a.stdout.field("URI", uri.String())
	if qrPath != "" {
		a.stdout.field("QR code", qrPath)
	}
	return nil
}

func writeQR(uri *otpauth.URI, path string, size int) error {
	img, err := uri.Image(size, size)
	if err != nil {
		return failure("%v", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return failure("failed to encode qr code: %v", err)
	}

	// the image embeds the secret
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return failure("failed to write qr code: %v", err)
	}
	return nil
}
