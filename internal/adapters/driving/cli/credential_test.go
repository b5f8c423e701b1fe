package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
)

func TestCredentialList(t *testing.T) {
	env := setupTestServices(t)

	out, err := env.run("", "credential", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Bank 1: dudeguy")
	assert.Contains(t, out, "www.reddit.com")
	assert.Contains(t, out, "[2FA]")
	assert.NotContains(t, out, domain.SeedPassword)
}

func TestCredentialAdd_WithFlags(t *testing.T) {
	env := setupTestServices(t)

	out, err := env.run("", "cred", "add", "Financial",
		"--site", "bank 3", "--url", "www.bank3.com", "-u", "dudeguy",
		"--password", "hunter2", "--method", "pin", "--auth-info", "4 digits")

	require.NoError(t, err)
	assert.Contains(t, out, "New credential Bank 3: dudeguy was added to group 'Financial'")

	c, err := env.vault.GetCredential(context.Background(), "Bank 3: dudeguy")
	require.NoError(t, err)
	assert.True(t, c.IsTwoFactor())
	assert.Equal(t, "pin", c.Method())
	assert.Equal(t, "hunter2", c.Password())

	all, err := env.vault.GetGroup(context.Background(), "All")
	require.NoError(t, err)
	assert.Equal(t, 6, all.Len())
}

func TestCredentialAdd_PromptsForPassword(t *testing.T) {
	env := setupTestServices(t)

	out, err := env.run("first\nsecond\nsecret\nsecret\n", "credential", "add", "Social",
		"--site", "Mastodon", "--url", "mastodon.social", "-u", "budpal")

	require.NoError(t, err)
	assert.Contains(t, out, "Passwords must match")
	c, err := env.vault.GetCredential(context.Background(), "Mastodon: budpal")
	require.NoError(t, err)
	assert.Equal(t, "secret", c.Password())
	assert.False(t, c.IsTwoFactor())
}

func TestCredentialAdd_Duplicate(t *testing.T) {
	env := setupTestServices(t)

	_, err := env.run("", "credential", "add", "Social",
		"--site", "reddit", "--url", "www.reddit.com", "-u", "dudeguy", "--password", "x")

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestCredentialAdd_MissingFlags(t *testing.T) {
	env := setupTestServices(t)

	_, err := env.run("", "credential", "add", "Social", "--password", "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestCredentialAdd_HalfTwoFactor(t *testing.T) {
	env := setupTestServices(t)

	_, err := env.run("", "credential", "add", "Financial",
		"--site", "bank 3", "--url", "www.bank3.com", "-u", "dudeguy", "--password", "x", "--method", "pin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.run("", "credential", "add", "Financial",
		"--site", "bank 3", "--url", "www.bank3.com", "-u", "dudeguy", "--password", "x", "--auth-info", "4 digits")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.vault.GetCredential(context.Background(), "Bank 3: dudeguy")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCredentialRemove(t *testing.T) {
	env := setupTestServices(t)

	out, err := env.run("", "credential", "remove", "Social", "reddit: budpal")

	require.NoError(t, err)
	assert.Contains(t, out, "reddit: budpal removed from Social")

	g, err := env.vault.GetGroup(context.Background(), "Social")
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())
}

func TestCredentialRemove_NotMember(t *testing.T) {
	env := setupTestServices(t)

	_, err := env.run("", "credential", "remove", "Financial", "Reddit: budpal")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCredentialPasswd(t *testing.T) {
	env := setupTestServices(t)

	out, err := env.run("", "credential", "passwd", "Facebook: budpal", "--password", "n3w")

	require.NoError(t, err)
	assert.Contains(t, out, "Password for 'Facebook: budpal' has been changed")

	c, err := env.vault.GetCredential(context.Background(), "Facebook: budpal")
	require.NoError(t, err)
	assert.Equal(t, "n3w", c.Password())
}

func TestCredentialPasswd_Unknown(t *testing.T) {
	env := setupTestServices(t)

	_, err := env.run("", "credential", "passwd", "Nope: nobody", "--password", "x")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
