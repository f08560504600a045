package otpauth

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// Scheme is the URI scheme of a key URI.
	Scheme = "otpauth"
	// TypeTOTP is the authority naming the time-based OTP type.
	TypeTOTP = "totp"

	defaultAlgorithm = "SHA1"
	defaultDigits    = 6
	defaultPeriod    = 30
)

// Common errors returned by Decode and the URI accessors.
var (
	// ErrMalformedURI indicates the input is not a URI or its scheme is not otpauth.
	ErrMalformedURI = errors.New("otpauth: malformed uri")
	// ErrWrongType indicates the URI authority is not totp.
	ErrWrongType = errors.New("otpauth: unsupported otp type")
	// ErrMissingSecret indicates the URI has no query or no secret parameter.
	ErrMissingSecret = errors.New("otpauth: missing secret")
	// ErrInvalidParameter indicates an optional parameter has an unusable value.
	ErrInvalidParameter = errors.New("otpauth: invalid parameter")
)

// URI is a decoded otpauth://totp key URI.
type URI struct {
	// Label is the escaped URI path without its leading separator, for
	// example "Example:alice@example.com". Percent escapes are kept as
	// written and the label is never split further.
	Label string
	// Secret is the percent-decoded secret parameter. It may be empty.
	Secret string
	// Issuer is the issuer query parameter, empty when absent.
	Issuer string
	// Query holds every query parameter, including secret and issuer.
	Query url.Values
}

// Decode parses raw as an otpauth://totp URI.
func Decode(raw string) (*URI, error) {
	u, err := url.Parse(raw)
	if err != nil {
		// url.Error repeats the whole input, secret included.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedURI, err)
	}

	if u.Scheme != Scheme {
		return nil, fmt.Errorf("%w: scheme must be %q, got %q", ErrMalformedURI, Scheme, u.Scheme)
	}

	if u.Hostname() != TypeTOTP {
		return nil, fmt.Errorf("%w: type must be %q, got %q", ErrWrongType, TypeTOTP, u.Hostname())
	}

	if u.RawQuery == "" {
		return nil, fmt.Errorf("%w: uri has no query", ErrMissingSecret)
	}

	query := u.Query()
	secret, ok := query["secret"]
	if !ok {
		return nil, ErrMissingSecret
	}

	return &URI{
		Label:  strings.TrimPrefix(u.EscapedPath(), "/"),
		Secret: secret[0],
		Issuer: query.Get("issuer"),
		Query:  query,
	}, nil
}

// Parse decodes raw and returns its label and secret. ok is false when raw
// is rejected for any reason.
func Parse(raw string) (label, secret string, ok bool) {
	uri, err := Decode(raw)
	if err != nil {
		return "", "", false
	}
	return uri.Label, uri.Secret, true
}

// Account returns the account part of the unescaped label: the text after
// the first colon when the label carries an issuer prefix, otherwise the
// whole label.
func (u *URI) Account() string {
	label := u.unescapedLabel()
	if _, account, found := strings.Cut(label, ":"); found {
		return strings.TrimLeft(account, " ")
	}
	return label
}

// IssuerName returns the issuer parameter, falling back to the label prefix.
func (u *URI) IssuerName() string {
	if u.Issuer != "" {
		return u.Issuer
	}
	if issuer, _, found := strings.Cut(u.unescapedLabel(), ":"); found {
		return issuer
	}
	return ""
}

func (u *URI) unescapedLabel() string {
	label, err := url.PathUnescape(u.Label)
	if err != nil {
		return u.Label
	}
	return label
}

// Algorithm returns the upper-cased algorithm parameter, or SHA1 when absent.
func (u *URI) Algorithm() (string, error) {
	v := strings.ToUpper(strings.TrimSpace(u.Query.Get("algorithm")))
	switch v {
	case "":
		return defaultAlgorithm, nil
	case "SHA1", "SHA256", "SHA512":
		return v, nil
	default:
		return "", fmt.Errorf("%w: algorithm %q", ErrInvalidParameter, v)
	}
}

// Digits returns the digits parameter, or 6 when absent.
func (u *URI) Digits() (int, error) {
	v := strings.TrimSpace(u.Query.Get("digits"))
	if v == "" {
		return defaultDigits, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: digits %q", ErrInvalidParameter, v)
	}
	return n, nil
}

// Period returns the period parameter in seconds, or 30 when absent.
func (u *URI) Period() (uint64, error) {
	v := strings.TrimSpace(u.Query.Get("period"))
	if v == "" {
		return defaultPeriod, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: period %q", ErrInvalidParameter, v)
	}
	return n, nil
}

// String encodes u back into an otpauth://totp URI.
func (u *URI) String() string {
	v := url.Values{}
	for key, values := range u.Query {
		v[key] = append([]string(nil), values...)
	}
	v.Set("secret", u.Secret)
	if u.Issuer != "" {
		v.Set("issuer", u.Issuer)
	}

	out := url.URL{
		Scheme:   Scheme,
		Host:     TypeTOTP,
		Path:     "/" + u.unescapedLabel(),
		RawPath:  "/" + u.Label,
		RawQuery: v.Encode(),
	}
	return out.String()
}
