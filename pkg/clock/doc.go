// Package clock provides a tiny time abstraction.
//
// Code that derives values from the current time, such as TOTP counters,
// depends on the Clocker interface instead of calling time.Now directly so
// tests can pin the clock to a known instant.
package clock
