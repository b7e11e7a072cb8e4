// Package normalize provides normalization for user-supplied identity and catalog text.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Email normalizes an email address for storage: surrounding whitespace is
// trimmed and the domain portion is lowercased. The local part is preserved
// as given, since it is case-sensitive per RFC 5321 even though almost no
// provider treats it that way.
//
// "Chris@GMAIL.CoM" -> "Chris@gmail.com".
func Email(email string) string {
	email = strings.TrimSpace(email)

	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return email
	}

	return email[:at+1] + strings.ToLower(email[at+1:])
}

// EmailKey returns the canonical lookup key for an email address.
// The whole address is lowercased so that uniqueness checks are
// case-insensitive.
func EmailKey(email string) string {
	return strings.ToLower(Email(email))
}

// Name normalizes a user-supplied catalog name (tag, ingredient, recipe title).
// It trims whitespace, collapses internal runs of whitespace to single spaces,
// and applies Unicode NFC so that visually identical names compare equal.
func Name(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	return norm.NFC.String(name)
}
