// Package groups provides the group list view for the TUI.
package groups

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driving/tui/keymap"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driving/tui/messages"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driving/tui/styles"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driving"
)

// View lists every group with its security level and size.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	vault  driving.VaultService

	groups   []*domain.Group
	selected int
	width    int
	height   int
	ready    bool
	err      error
	loading  bool
}

// NewView creates a new groups view.
func NewView(s *styles.Styles, vault driving.VaultService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		vault:  vault,
	}
}

// Init loads the groups.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadGroups()
}

func (v *View) loadGroups() tea.Cmd {
	return func() tea.Msg {
		if v.vault == nil {
			return messages.GroupsLoaded{Err: errors.New("vault service not available")}
		}
		groups, err := v.vault.ListGroups(context.Background())
		return messages.GroupsLoaded{Groups: groups, Err: err}
	}
}

// Update handles messages for the groups view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.GroupsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.groups = msg.Groups
		v.err = nil
		if v.selected >= len(v.groups) {
			v.selected = max(len(v.groups)-1, 0)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.groups)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Select):
		if v.selected < len(v.groups) {
			name := v.groups[v.selected].Name
			return v, func() tea.Msg {
				return messages.GroupSelected{Name: name}
			}
		}
	case keymap.Matches(k, v.keymap.Reload):
		return v, v.Init()
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

// View renders the group list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Groups"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading groups..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.groups) == 0:
		b.WriteString(v.styles.Muted.Render("There are no groups."))
	default:
		b.WriteString(v.styles.Header.Render(fmt.Sprintf("  %-30s %8s %8s", "Group", "Security", "Members")))
		b.WriteString("\n")
		for i, g := range v.groups {
			line := fmt.Sprintf("%-30s %8d %8d", g.Name, g.SecurityFactor, g.Len())
			if i == v.selected {
				b.WriteString("> " + v.styles.Selected.Render(line))
			} else {
				b.WriteString("  " + v.styles.Normal.Render(line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] members  [r] reload  [esc] back  [q] quit"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Groups returns the loaded groups.
func (v *View) Groups() []*domain.Group {
	return v.groups
}

// SelectedIndex returns the highlighted row.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
