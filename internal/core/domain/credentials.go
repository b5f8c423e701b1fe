package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind discriminates the persisted shape of a credential document.
type Kind string

// Credential kinds.
const (
	// KindCredential is a plain login.
	KindCredential Kind = "credential"

	// KindTwoFactor is a login that also carries two-factor metadata.
	KindTwoFactor Kind = "tfa"
)

// IsValid returns true if the kind is recognised.
func (k Kind) IsValid() bool {
	return k == KindCredential || k == KindTwoFactor
}

// String returns the string representation.
func (k Kind) String() string {
	return string(k)
}

// TwoFactor holds the second-factor details of a credential.
type TwoFactor struct {
	// Method is how the second factor is delivered (e.g. "phone app").
	Method string

	// AuthInfo is what the method needs (e.g. "biometric", a PIN hint).
	AuthInfo string
}

// Credential is one stored login.
// Site and username are fixed at construction so the key never changes.
type Credential struct {
	site        string
	url         string
	username    string
	password    string
	lastChanged string
	twoFactor   *TwoFactor
}

// NewCredential creates a plain credential. The site name is normalised.
func NewCredential(site, url, username, password, lastChanged string) *Credential {
	return &Credential{
		site:        NormalizeSite(site),
		url:         url,
		username:    username,
		password:    password,
		lastChanged: lastChanged,
	}
}

// NewTwoFactorCredential creates a credential carrying two-factor metadata.
func NewTwoFactorCredential(site, url, username, password, lastChanged, method, authInfo string) *Credential {
	c := NewCredential(site, url, username, password, lastChanged)
	c.twoFactor = &TwoFactor{Method: method, AuthInfo: authInfo}
	return c
}

// NormalizeSite lower-cases s and title-cases its first letter.
// NormalizeSite(NormalizeSite(s)) == NormalizeSite(s).
func NormalizeSite(s string) string {
	lower := strings.ToLower(s)
	r, size := utf8.DecodeRuneInString(lower)
	if r == utf8.RuneError {
		return lower
	}
	return string(unicode.ToTitle(r)) + lower[size:]
}

// CredentialKey derives the identity key for a site and username.
func CredentialKey(site, username string) string {
	return NormalizeSite(site) + ": " + username
}

// Key returns the identity key "Site: username".
func (c *Credential) Key() string {
	return c.site + ": " + c.username
}

// String implements fmt.Stringer.
func (c *Credential) String() string {
	return c.Key()
}

// Site returns the normalised site name.
func (c *Credential) Site() string { return c.site }

// URL returns the site URL.
func (c *Credential) URL() string { return c.url }

// Username returns the login name.
func (c *Credential) Username() string { return c.username }

// Password returns the plaintext password.
func (c *Credential) Password() string { return c.password }

// LastChanged returns the ISO date the password was last set.
func (c *Credential) LastChanged() string { return c.lastChanged }

// SetPassword replaces the password in place.
func (c *Credential) SetPassword(password string) {
	c.password = password
}

// SetLastChanged replaces the last-changed date.
func (c *Credential) SetLastChanged(date string) {
	c.lastChanged = date
}

// Kind returns the persisted discriminator for this credential.
func (c *Credential) Kind() Kind {
	if c.twoFactor != nil {
		return KindTwoFactor
	}
	return KindCredential
}

// IsTwoFactor reports whether the credential carries two-factor metadata.
func (c *Credential) IsTwoFactor() bool {
	return c.twoFactor != nil
}

// Method returns the two-factor method, or "" for a plain credential.
func (c *Credential) Method() string {
	if c.twoFactor == nil {
		return ""
	}
	return c.twoFactor.Method
}

// AuthInfo returns the two-factor info, or "" for a plain credential.
func (c *Credential) AuthInfo() string {
	if c.twoFactor == nil {
		return ""
	}
	return c.twoFactor.AuthInfo
}

// Clone returns an independent copy.
func (c *Credential) Clone() *Credential {
	cp := *c
	if c.twoFactor != nil {
		tf := *c.twoFactor
		cp.twoFactor = &tf
	}
	return &cp
}

// ToDocument converts the credential to its persisted shape.
func (c *Credential) ToDocument() CredentialDocument {
	doc := CredentialDocument{
		ID:          c.Key(),
		Kind:        c.Kind().String(),
		Site:        c.site,
		URL:         c.url,
		Username:    c.username,
		Password:    c.password,
		LastChanged: c.lastChanged,
	}
	if c.twoFactor != nil {
		doc.Method = c.twoFactor.Method
		doc.AuthInfo = c.twoFactor.AuthInfo
	}
	return doc
}

// CredentialFromDocument rebuilds a credential, dispatching on doc.Kind.
func CredentialFromDocument(doc CredentialDocument) (*Credential, error) {
	switch Kind(doc.Kind) {
	case KindCredential:
		return NewCredential(doc.Site, doc.URL, doc.Username, doc.Password, doc.LastChanged), nil
	case KindTwoFactor:
		return NewTwoFactorCredential(doc.Site, doc.URL, doc.Username, doc.Password,
			doc.LastChanged, doc.Method, doc.AuthInfo), nil
	default:
		return nil, fmt.Errorf("%w: credential %q has unknown kind %q", ErrInvalidInput, doc.ID, doc.Kind)
	}
}
