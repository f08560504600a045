// Package totp generates and verifies Time-based One-Time Passwords
// (RFC 6238) built on the HOTP construction (RFC 4226).
//
// A code is derived in three steps: the current time is divided into
// fixed periods to form a counter, the counter is signed with HMAC keyed by
// the shared secret, and the digest is reduced to a short decimal string by
// dynamic truncation. Each step is exposed on its own so callers can test
// against the published RFC vectors.
//
// # Quick Generation
//
// Generate the current 6 digit code for a Base32 secret:
//
//	code, err := totp.Generate("JBSWY3DPEHPK3PXP", totp.DefaultPeriod, totp.DefaultDigits)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Generator
//
// A Generator decodes the secret once and can be shared between goroutines:
//
//	gen, err := totp.NewGenerator(totp.Config{
//	    Secret:    "JBSWY3DPEHPK3PXP",
//	    Algorithm: totp.AlgorithmSHA1,
//	    Digits:    6,
//	    Period:    30,
//	    Skew:      1, // accept one period either side when verifying
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	code, err := gen.Generate()
//	...
//	err = gen.Verify(ctx, userSupplied)
//
// # Deterministic Clocks
//
// Config.Clock accepts any clock.Clocker. Tests pin it with clock.Fixed to
// reproduce codes for a known instant.
//
// # Errors
//
// Failures are reported with sentinel errors that can be matched with
// errors.Is. ErrInvalidBase32 reports a malformed secret. ErrInvalidKey reports
// an HMAC algorithm that Digest does not support. ErrInvalidConfig covers
// digits, periods, skews and algorithms out of range. ErrInvalidCode reports a
// failed verification. An empty secret is valid and keys the HMAC with zero
// bytes.
package totp
