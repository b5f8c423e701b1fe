// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewGroups lists every group.
	ViewGroups
	// ViewMembers shows the credentials of one group.
	ViewMembers
	// ViewCredentials lists every credential.
	ViewCredentials
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewGroups:
		return "groups"
	case ViewMembers:
		return "members"
	case ViewCredentials:
		return "credentials"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// GroupsLoaded carries every group from the vault.
type GroupsLoaded struct {
	Groups []*domain.Group
	Err    error
}

// GroupSelected asks for one group's members to be shown.
type GroupSelected struct {
	Name string
}

// MembersLoaded carries the selected group with its members.
type MembersLoaded struct {
	Group *domain.Group
	Err   error
}

// CredentialsLoaded carries every credential from the vault.
type CredentialsLoaded struct {
	Credentials []*domain.Credential
	Err         error
}
