// Command totp prints the current one-time password for an otpauth:// URI.
//
//	totp 'otpauth://totp/Example:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Example'
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/jeremyhahn/go-totp/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
