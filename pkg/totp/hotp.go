package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"time"
)

var powersOfTen = [...]uint32{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000,
}

// Counter returns the number of whole periods between the Unix epoch and t.
// Instants before the epoch map to zero. It panics if period is zero.
func Counter(t time.Time, period uint64) uint64 {
	if period == 0 {
		panic("totp: period must be greater than zero")
	}
	sec := t.Unix()
	if sec < 0 {
		return 0
	}
	return uint64(sec) / period
}

// Digest returns the HMAC of the 8 byte big-endian counter keyed by key.
// HMAC accepts keys of any length, the empty key included.
func Digest(key []byte, counter uint64, alg Algorithm) ([]byte, error) {
	h, ok := alg.hasher()
	if !ok {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidKey, alg)
	}

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(h, key)
	mac.Write(msg[:])
	return mac.Sum(nil), nil
}

// Truncate applies RFC 4226 dynamic truncation to digest and renders the
// result as a zero-padded decimal string of exactly digits characters.
//
// The low nibble of the last digest byte selects a four byte window whose
// top bit is cleared before reduction modulo 10^digits. Truncate panics if
// digits is outside [MinDigits, MaxDigits] or the digest is shorter than a
// SHA1 digest; callers validate both at their boundary.
func Truncate(digest []byte, digits int) string {
	if digits < MinDigits || digits > MaxDigits {
		panic(fmt.Sprintf("totp: digits %d out of range [%d, %d]", digits, MinDigits, MaxDigits))
	}
	if len(digest) < sha1.Size {
		panic(fmt.Sprintf("totp: digest length %d shorter than %d", len(digest), sha1.Size))
	}

	offset := int(digest[len(digest)-1] & 0x0f)
	code := binary.BigEndian.Uint32(digest[offset:offset+4]) & 0x7fffffff
	code %= powersOfTen[digits]

	return fmt.Sprintf("%0*d", digits, code)
}
