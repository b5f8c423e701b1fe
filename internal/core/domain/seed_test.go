package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedData(t *testing.T) {
	snap := SeedData()

	require.Len(t, snap.Credentials, 5)
	require.Len(t, snap.Groups, 3)

	byKey := snap.CredentialsByKey()
	for _, key := range []string{
		"Reddit: dudeguy", "Reddit: budpal", "Facebook: budpal", "Bank 1: dudeguy", "Bank 2: dudeguy",
	} {
		c, ok := byKey[key]
		require.True(t, ok, key)
		assert.Equal(t, SeedPassword, c.Password())
	}

	assert.Equal(t, "2022-10-17", byKey["Reddit: budpal"].LastChanged())
	assert.True(t, byKey["Facebook: budpal"].IsTwoFactor())
	assert.Equal(t, "phone alert", byKey["Facebook: budpal"].Method())
	assert.Equal(t, "biometric", byKey["Bank 2: dudeguy"].AuthInfo())
	assert.False(t, byKey["Reddit: dudeguy"].IsTwoFactor())

	groups := map[string]*Group{}
	for _, g := range snap.Groups {
		groups[g.Name] = g
	}
	assert.Equal(t, 5, groups["All"].Len())
	assert.Equal(t, 10, groups["All"].SecurityFactor)
	assert.Equal(t, 3, groups["Social"].Len())
	assert.Equal(t, 6, groups["Social"].SecurityFactor)
	assert.Equal(t, 2, groups["Financial"].Len())
}

func TestSeedData_FreshEntities(t *testing.T) {
	a := SeedData()
	b := SeedData()

	a.Credentials[0].SetPassword("changed")

	assert.Equal(t, SeedPassword, b.Credentials[0].Password())
}
