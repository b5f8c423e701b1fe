package domain

import (
	"fmt"
	"strings"
)

// Security factor bounds.
const (
	MinSecurityFactor = 1
	MaxSecurityFactor = 10
)

// AllGroupName is the conventional name of the group holding every credential.
const AllGroupName = "All"

// BackGroupName is reserved. Menus offer it to leave a selection.
const BackGroupName = "Back"

// Group is a named, security-levelled, ordered collection of credentials.
// Membership is decided by credential key, never by pointer identity.
type Group struct {
	// Name is the display name and the document id. Its lower-cased form is
	// the in-memory lookup key.
	Name string

	// SecurityFactor ranks sensitivity from 1 to 10.
	SecurityFactor int

	members []*Credential
}

// NewGroup creates a group with optional initial members.
func NewGroup(name string, securityFactor int, members ...*Credential) *Group {
	g := &Group{Name: name, SecurityFactor: securityFactor}
	g.Add(members...)
	return g
}

// GroupKey derives the lookup key for a group name.
func GroupKey(name string) string {
	return strings.ToLower(name)
}

// ValidateSecurityFactor checks n lies within [1,10].
func ValidateSecurityFactor(n int) error {
	if n < MinSecurityFactor || n > MaxSecurityFactor {
		return fmt.Errorf("%w: security factor must be between %d and %d, got %d",
			ErrInvalidInput, MinSecurityFactor, MaxSecurityFactor, n)
	}
	return nil
}

// Key returns the lower-cased name.
func (g *Group) Key() string {
	return GroupKey(g.Name)
}

// String implements fmt.Stringer.
func (g *Group) String() string {
	return g.Name
}

// Add appends credentials. No duplicate check is made.
func (g *Group) Add(creds ...*Credential) {
	g.members = append(g.members, creds...)
}

// Remove drops the first member sharing c's key.
func (g *Group) Remove(c *Credential) error {
	for i, m := range g.members {
		if m.Key() == c.Key() {
			g.members = append(g.members[:i:i], g.members[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not a member of group %q", ErrNotFound, c.Key(), g.Name)
}

// Contains reports whether a member shares c's key.
func (g *Group) Contains(c *Credential) bool {
	return g.indexOf(c.Key()) >= 0
}

// Member returns the member with the given key.
func (g *Group) Member(key string) (*Credential, bool) {
	if i := g.indexOf(key); i >= 0 {
		return g.members[i], true
	}
	return nil, false
}

func (g *Group) indexOf(key string) int {
	for i, m := range g.members {
		if m.Key() == key {
			return i
		}
	}
	return -1
}

// Members returns the members in order. The slice is a copy.
func (g *Group) Members() []*Credential {
	out := make([]*Credential, len(g.members))
	copy(out, g.members)
	return out
}

// Len returns the number of members.
func (g *Group) Len() int {
	return len(g.members)
}

// Union returns a new group holding g's members followed by the members of
// other not already present. Neither input is modified.
func (g *Group) Union(other *Group) *Group {
	out := &Group{
		Name:           g.Name + "/" + other.Name,
		SecurityFactor: max(g.SecurityFactor, other.SecurityFactor),
	}
	seen := make(map[string]struct{}, len(g.members)+len(other.members))
	for _, src := range [][]*Credential{g.members, other.members} {
		for _, c := range src {
			if _, ok := seen[c.Key()]; ok {
				continue
			}
			seen[c.Key()] = struct{}{}
			out.members = append(out.members, c)
		}
	}
	return out
}

// Clone returns a deep copy; members are cloned too.
func (g *Group) Clone() *Group {
	out := &Group{Name: g.Name, SecurityFactor: g.SecurityFactor}
	if g.members != nil {
		out.members = make([]*Credential, len(g.members))
		for i, m := range g.members {
			out.members[i] = m.Clone()
		}
	}
	return out
}

// ToDocument converts the group to its persisted shape.
func (g *Group) ToDocument() GroupDocument {
	keys := make([]string, len(g.members))
	for i, m := range g.members {
		keys[i] = m.Key()
	}
	return GroupDocument{
		ID:             g.Name,
		Name:           g.Name,
		SecurityFactor: g.SecurityFactor,
		MemberKeys:     keys,
	}
}

// GroupFromDocument rebuilds a group, resolving member keys against byKey.
// An unknown key is reported rather than skipped.
func GroupFromDocument(doc GroupDocument, byKey map[string]*Credential) (*Group, error) {
	g := &Group{Name: doc.Name, SecurityFactor: doc.SecurityFactor}
	for _, key := range doc.MemberKeys {
		c, ok := byKey[key]
		if !ok {
			return nil, fmt.Errorf("%w: group %q references %q", ErrDanglingReference, doc.Name, key)
		}
		g.members = append(g.members, c)
	}
	return g, nil
}
