package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
)

func TestGroupCmd_Registered(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "group" {
			found = true
			break
		}
	}
	assert.True(t, found, "group command should be registered")
	assert.Len(t, groupCmd.Commands(), 5)
}

func TestGroupList(t *testing.T) {
	env := setupTestServices(t)

	out, err := env.run("", "group", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "All")
	assert.Contains(t, out, "5 credentials")
	assert.Contains(t, out, "Financial")
	assert.Contains(t, out, "Social")
}

func TestGroupList_Empty(t *testing.T) {
	env := setupTestServices(t)
	for _, name := range []string{"All", "Social", "Financial"} {
		require.NoError(t, env.vault.DeleteGroup(context.Background(), name))
	}

	out, err := env.run("", "groups", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No groups.")
}

func TestGroupShow(t *testing.T) {
	env := setupTestServices(t)

	out, err := env.run("", "group", "show", "social")

	require.NoError(t, err)
	assert.Contains(t, out, "Social (security level 6):")
	assert.Contains(t, out, ">>  Reddit: dudeguy")
	assert.Contains(t, out, ">>  Facebook: budpal")
}

func TestGroupShow_NotFound(t *testing.T) {
	env := setupTestServices(t)

	_, err := env.run("", "group", "show", "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGroupCreate(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantOut string
	}{
		{name: "valid", args: []string{"work", "4"}, wantOut: "Created new group 'Work' with security level 4"},
		{name: "duplicate", args: []string{"social", "4"}, wantErr: domain.ErrAlreadyExists},
		{name: "out of range", args: []string{"Work", "11"}, wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestServices(t)

			out, err := env.run("", append([]string{"group", "create"}, tt.args...)...)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.wantOut)
		})
	}
}

func TestGroupCreate_NotANumber(t *testing.T) {
	env := setupTestServices(t)

	_, err := env.run("", "group", "create", "Work", "high")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "whole number")
}

func TestGroupDelete(t *testing.T) {
	env := setupTestServices(t)

	out, err := env.run("", "group", "delete", "Social")

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 'Social' group")
	_, err = env.vault.GetGroup(context.Background(), "Social")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	creds, err := env.vault.ListCredentials(context.Background())
	require.NoError(t, err)
	assert.Len(t, creds, 5, "credentials survive their group")
}

func TestGroupUnion(t *testing.T) {
	env := setupTestServices(t)

	out, err := env.run("", "group", "union", "Social", "Financial")

	require.NoError(t, err)
	assert.Contains(t, out, "Created Social/Financial with security level 10 and 5 credentials")
}

func TestGroupCommands_RequireVault(t *testing.T) {
	setupTestServices(t)
	vaultService = nil

	err := runGroupList(groupListCmd, nil)
	assert.EqualError(t, err, "vault service not configured")
}
