package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
	}{
		{ViewMenu, "menu"},
		{ViewGroups, "groups"},
		{ViewMembers, "members"},
		{ViewCredentials, "credentials"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestViewType_Distinct(t *testing.T) {
	seen := make(map[ViewType]bool)
	for _, v := range []ViewType{ViewMenu, ViewGroups, ViewMembers, ViewCredentials, ViewHelp} {
		assert.False(t, seen[v], "duplicate view type %d", v)
		seen[v] = true
	}
}

func TestLoadedMessages(t *testing.T) {
	g := domain.NewGroup("Social", 6)
	msg := MembersLoaded{Group: g}
	assert.Same(t, g, msg.Group)
	assert.NoError(t, msg.Err)

	err := errors.New("boom")
	assert.Equal(t, err, GroupsLoaded{Err: err}.Err)
	assert.Equal(t, err, CredentialsLoaded{Err: err}.Err)
}
