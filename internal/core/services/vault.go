package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driving"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/logger"
)

// Ensure Vault implements the interface.
var _ driving.VaultService = (*Vault)(nil)

// dateLayout is the ISO date format used for last-changed dates.
const dateLayout = "2006-01-02"

// Vault holds the credentials and groups of one running front end.
// All access goes through mu, so a single Vault may serve concurrent
// requests. Every mutation is persisted through the gateway while the lock
// is held and is applied in memory only after the write succeeds.
type Vault struct {
	mu          sync.RWMutex
	gateway     *Gateway
	now         func() time.Time
	loaded      bool
	credentials map[string]*domain.Credential
	groups      map[string]*domain.Group
}

// NewVault creates a vault over the gateway. Nothing is read until the
// first call.
func NewVault(gateway *Gateway) *Vault {
	return &Vault{
		gateway:     gateway,
		now:         time.Now,
		credentials: make(map[string]*domain.Credential),
		groups:      make(map[string]*domain.Group),
	}
}

// WithClock overrides the clock used for last-changed dates.
func (v *Vault) WithClock(now func() time.Time) *Vault {
	v.now = now
	return v
}

func (v *Vault) today() string {
	return v.now().Format(dateLayout)
}

// Load replaces the working set with a fresh read of the store.
func (v *Vault) Load(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.load(ctx)
}

// load reads the store (caller must hold the write lock).
func (v *Vault) load(ctx context.Context) error {
	if v.gateway == nil {
		return domain.ErrNotImplemented
	}

	logger.Section("Load")
	snap, err := v.gateway.FetchAll(ctx)
	if err != nil {
		return err
	}

	v.credentials = snap.CredentialsByKey()
	v.groups = make(map[string]*domain.Group, len(snap.Groups))
	for _, g := range snap.Groups {
		v.groups[g.Key()] = g
	}
	v.loaded = true

	logger.Debug("Loaded %d credentials and %d groups", len(v.credentials), len(v.groups))
	return nil
}

// read runs fn under the read lock, loading the store first if needed.
func (v *Vault) read(ctx context.Context, fn func() error) error {
	v.mu.RLock()
	if v.loaded {
		defer v.mu.RUnlock()
		return fn()
	}
	v.mu.RUnlock()

	return v.write(ctx, fn)
}

// write runs fn under the write lock, loading the store first if needed.
func (v *Vault) write(ctx context.Context, fn func() error) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.loaded {
		if err := v.load(ctx); err != nil {
			return err
		}
	}
	return fn()
}

// ListGroups returns every group, sorted by key.
func (v *Vault) ListGroups(ctx context.Context) ([]*domain.Group, error) {
	var out []*domain.Group
	err := v.read(ctx, func() error {
		out = make([]*domain.Group, 0, len(v.groups))
		for _, g := range v.groups {
			out = append(out, g.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out, nil
}

// GetGroup looks a group up by name, case-insensitively.
func (v *Vault) GetGroup(ctx context.Context, name string) (*domain.Group, error) {
	var out *domain.Group
	err := v.read(ctx, func() error {
		g, err := v.group(name)
		if err != nil {
			return err
		}
		out = g.Clone()
		return nil
	})
	return out, err
}

// group finds a group by name (caller must hold the lock).
func (v *Vault) group(name string) (*domain.Group, error) {
	g, ok := v.groups[domain.GroupKey(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: group %q", domain.ErrNotFound, name)
	}
	return g, nil
}

// credential finds a credential by key, falling back to a
// case-insensitive match (caller must hold the lock).
func (v *Vault) credential(key string) (*domain.Credential, error) {
	key = strings.TrimSpace(key)
	if c, ok := v.credentials[key]; ok {
		return c, nil
	}
	all := make([]*domain.Credential, 0, len(v.credentials))
	for _, c := range v.credentials {
		all = append(all, c)
	}
	return matchKey(all, key)
}

// matchKey finds key among creds. An exact match wins; otherwise a
// case-insensitive match is used only if exactly one credential has it.
func matchKey(creds []*domain.Credential, key string) (*domain.Credential, error) {
	var folded []*domain.Credential
	for _, c := range creds {
		if c.Key() == key {
			return c, nil
		}
		if strings.EqualFold(c.Key(), key) {
			folded = append(folded, c)
		}
	}
	switch len(folded) {
	case 0:
		return nil, fmt.Errorf("%w: credential %q", domain.ErrNotFound, key)
	case 1:
		return folded[0], nil
	}
	return nil, fmt.Errorf("%w: %q matches %d credentials, enter the key exactly",
		domain.ErrInvalidInput, key, len(folded))
}

// CreateGroup creates an empty group. The name is normalised and must
// not collide with an existing group or the reserved "Back".
func (v *Vault) CreateGroup(ctx context.Context, name string, securityFactor int) (*domain.Group, error) {
	name = domain.NormalizeSite(strings.TrimSpace(name))
	if name == "" {
		return nil, fmt.Errorf("%w: group name must not be empty", domain.ErrInvalidInput)
	}
	if domain.GroupKey(name) == domain.GroupKey(domain.BackGroupName) {
		return nil, fmt.Errorf("%w: %q is a reserved name", domain.ErrInvalidInput, name)
	}
	if err := domain.ValidateSecurityFactor(securityFactor); err != nil {
		return nil, err
	}

	var out *domain.Group
	err := v.write(ctx, func() error {
		g := domain.NewGroup(name, securityFactor)
		if _, exists := v.groups[g.Key()]; exists {
			return fmt.Errorf("%w: group %q", domain.ErrAlreadyExists, name)
		}
		if err := v.gateway.UpsertGroup(ctx, g); err != nil {
			return err
		}
		v.groups[g.Key()] = g
		out = g.Clone()
		logger.Debug("Created group %q with security level %d", name, securityFactor)
		return nil
	})
	return out, err
}

// DeleteGroup removes a group. Its credentials are kept.
func (v *Vault) DeleteGroup(ctx context.Context, name string) error {
	return v.write(ctx, func() error {
		g, err := v.group(name)
		if err != nil {
			return err
		}
		if err := v.gateway.DeleteGroup(ctx, g); err != nil {
			return err
		}
		delete(v.groups, g.Key())
		logger.Debug("Deleted group %q", g.Name)
		return nil
	})
}

// ListCredentials returns every credential, sorted by key.
func (v *Vault) ListCredentials(ctx context.Context) ([]*domain.Credential, error) {
	var out []*domain.Credential
	err := v.read(ctx, func() error {
		out = make([]*domain.Credential, 0, len(v.credentials))
		for _, c := range v.credentials {
			out = append(out, c.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out, nil
}

// GetCredential looks a credential up by key, case-insensitively.
func (v *Vault) GetCredential(ctx context.Context, key string) (*domain.Credential, error) {
	var out *domain.Credential
	err := v.read(ctx, func() error {
		c, err := v.credential(key)
		if err != nil {
			return err
		}
		out = c.Clone()
		return nil
	})
	return out, err
}

// AddCredential stores a new credential and adds it to the named group.
// When an "All" group exists the credential joins it as well.
func (v *Vault) AddCredential(
	ctx context.Context,
	groupName string,
	cred *domain.Credential,
) (*domain.Credential, error) {
	if err := validateNew(cred); err != nil {
		return nil, err
	}

	var out *domain.Credential
	err := v.write(ctx, func() error {
		target, err := v.group(groupName)
		if err != nil {
			return err
		}
		if _, exists := v.credentials[cred.Key()]; exists {
			return fmt.Errorf("%w: %q combination", domain.ErrAlreadyExists, cred.Key())
		}

		c := cred.Clone()
		if c.LastChanged() == "" {
			c.SetLastChanged(v.today())
		}

		next := []*domain.Group{withMember(target, c)}
		if all, ok := v.groups[domain.GroupKey(domain.AllGroupName)]; ok && all != target {
			next = append(next, withMember(all, c))
		}

		// Memory changes only after every write has succeeded.
		if err := v.gateway.UpsertCredential(ctx, c); err != nil {
			return err
		}
		for _, g := range next {
			if err := v.gateway.UpsertGroup(ctx, g); err != nil {
				return err
			}
		}
		v.credentials[c.Key()] = c
		for _, g := range next {
			v.groups[g.Key()] = g
		}

		out = c.Clone()
		logger.Debug("Added %q to %q", c.Key(), target.Name)
		return nil
	})
	return out, err
}

// validateNew requires every field of a new credential. Two-factor details
// are optional but must be given as a pair.
func validateNew(c *domain.Credential) error {
	if c == nil || c.Site() == "" || c.URL() == "" || c.Username() == "" || c.Password() == "" {
		return fmt.Errorf("%w: site, url, username and password are required", domain.ErrInvalidInput)
	}
	if c.IsTwoFactor() && (c.Method() == "" || c.AuthInfo() == "") {
		return fmt.Errorf("%w: two-factor method and information go together", domain.ErrInvalidInput)
	}
	return nil
}

// AddToGroup adds an existing credential to a group.
func (v *Vault) AddToGroup(ctx context.Context, groupName, key string) error {
	return v.write(ctx, func() error {
		g, err := v.group(groupName)
		if err != nil {
			return err
		}
		c, err := v.credential(key)
		if err != nil {
			return err
		}
		if g.Contains(c) {
			return fmt.Errorf("%w: %q is already in group %q", domain.ErrAlreadyExists, c.Key(), g.Name)
		}
		return v.addMember(ctx, g, c)
	})
}

// withMember returns a copy of g with c appended. g itself is untouched.
func withMember(g *domain.Group, c *domain.Credential) *domain.Group {
	next := domain.NewGroup(g.Name, g.SecurityFactor, g.Members()...)
	next.Add(c)
	return next
}

// addMember persists g with c appended and swaps it in (caller must hold
// the write lock).
func (v *Vault) addMember(ctx context.Context, g *domain.Group, c *domain.Credential) error {
	next := withMember(g, c)
	if err := v.gateway.UpsertGroup(ctx, next); err != nil {
		return err
	}
	v.groups[next.Key()] = next
	return nil
}

// RemoveFromGroup removes a credential from a group.
func (v *Vault) RemoveFromGroup(ctx context.Context, groupName, key string) error {
	return v.write(ctx, func() error {
		g, err := v.group(groupName)
		if err != nil {
			return err
		}

		next := domain.NewGroup(g.Name, g.SecurityFactor, g.Members()...)
		member, err := matchKey(next.Members(), strings.TrimSpace(key))
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: %q is not a member of group %q", domain.ErrNotFound, key, g.Name)
		}
		if err != nil {
			return err
		}
		if err := next.Remove(member); err != nil {
			return err
		}
		if err := v.gateway.UpsertGroup(ctx, next); err != nil {
			return err
		}
		v.groups[next.Key()] = next
		logger.Debug("Removed %q from %q", member.Key(), g.Name)
		return nil
	})
}

// ChangePassword replaces a credential's password and stamps today's date.
func (v *Vault) ChangePassword(ctx context.Context, key, password string) (*domain.Credential, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: password must not be empty", domain.ErrInvalidInput)
	}

	var out *domain.Credential
	err := v.write(ctx, func() error {
		c, err := v.credential(key)
		if err != nil {
			return err
		}

		next := c.Clone()
		next.SetPassword(password)
		next.SetLastChanged(v.today())
		if err := v.gateway.UpsertCredential(ctx, next); err != nil {
			return err
		}

		// Groups share the pointer, so update in place.
		c.SetPassword(next.Password())
		c.SetLastChanged(next.LastChanged())
		out = c.Clone()
		logger.Debug("Changed password for %q", c.Key())
		return nil
	})
	return out, err
}

// UnionGroups stores and returns the union of two groups.
func (v *Vault) UnionGroups(ctx context.Context, first, second string) (*domain.Group, error) {
	var out *domain.Group
	err := v.write(ctx, func() error {
		a, err := v.group(first)
		if err != nil {
			return err
		}
		b, err := v.group(second)
		if err != nil {
			return err
		}

		joined := a.Union(b)
		if _, exists := v.groups[joined.Key()]; exists {
			return fmt.Errorf("%w: group %q", domain.ErrAlreadyExists, joined.Name)
		}
		if err := v.gateway.UpsertGroup(ctx, joined); err != nil {
			return err
		}
		v.groups[joined.Key()] = joined
		out = joined.Clone()
		logger.Debug("Joined %q with %q into %q", a.Name, b.Name, joined.Name)
		return nil
	})
	return out, err
}

// Reset drops both collections, writes the demonstration data and reloads.
func (v *Vault) Reset(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.gateway == nil {
		return domain.ErrNotImplemented
	}
	if err := v.gateway.ResetSeedData(ctx); err != nil {
		return err
	}
	return v.load(ctx)
}
