package totp

import (
	"testing"
	"time"

	"github.com/pquerna/otp"
	pqtotp "github.com/pquerna/otp/totp"
)

// TestMatchesPquernaOTP cross-checks generated codes against github.com/pquerna/otp
func TestMatchesPquernaOTP(t *testing.T) {
	algorithms := map[Algorithm]otp.Algorithm{
		AlgorithmSHA1:   otp.AlgorithmSHA1,
		AlgorithmSHA256: otp.AlgorithmSHA256,
		AlgorithmSHA512: otp.AlgorithmSHA512,
	}
	digits := map[int]otp.Digits{6: otp.DigitsSix, 8: otp.DigitsEight}
	times := []int64{0, 59, 1111111109, 1234567890, 1700000000, 2000000000}
	secrets := []string{"JBSWY3DPEHPK3PXP", rfcSecretBase32, "2OEEPPJZZOIRKQVXPJ4QHNK4KWZ6JISS"}

	for _, secret := range secrets {
		for alg, pqAlg := range algorithms {
			for n, pqDigits := range digits {
				gen, err := NewGenerator(Config{Secret: secret, Algorithm: alg, Digits: n})
				if err != nil {
					t.Fatalf("failed to create generator: %v", err)
				}
				for _, unix := range times {
					at := time.Unix(unix, 0).UTC()
					want, err := pqtotp.GenerateCodeCustom(secret, at, pqtotp.ValidateOpts{
						Period:    30,
						Digits:    pqDigits,
						Algorithm: pqAlg,
					})
					if err != nil {
						t.Fatalf("pquerna/otp failed: %v", err)
					}
					got, err := gen.GenerateAt(at)
					if err != nil {
						t.Fatalf("GenerateAt failed: %v", err)
					}
					if got != want {
						t.Errorf("%s/%s/%d digits at %d: got %q, want %q", secret, alg, n, unix, got, want)
					}
				}
			}
		}
	}
}
