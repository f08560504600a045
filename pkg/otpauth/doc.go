// Package otpauth decodes and encodes otpauth:// key URIs, the provisioning
// format popularised by Google Authenticator:
//
//	otpauth://totp/<label>?secret=<base32>[&issuer=<name>][&algorithm=..][&digits=..][&period=..]
//
// Decode reports why a URI was rejected with ErrMalformedURI, ErrWrongType
// or ErrMissingSecret. Parse wraps it for callers that only need the label,
// the secret, and whether decoding succeeded.
//
// Only the totp type is accepted. The optional algorithm, digits and period
// parameters are exposed through accessor methods but are never applied
// implicitly; callers decide whether to honour them.
package otpauth
