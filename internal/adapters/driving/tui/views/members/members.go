// Package members shows the credentials of one group.
package members

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

// View lists a group's members in group order.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	vault  driving.VaultService

	name     string
	group    *domain.Group
	selected int
	width    int
	height   int
	err      error
	loading  bool
}

// NewView creates a new members view.
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

// SetGroup switches to the named group and loads it.
func (v *View) SetGroup(name string) tea.Cmd {
	v.name = name
	v.group = nil
	v.selected = 0
	v.err = nil
	v.loading = true
	return v.loadGroup()
}

func (v *View) loadGroup() tea.Cmd {
	name := v.name
	return func() tea.Msg {
		if v.vault == nil {
			return messages.MembersLoaded{Err: errors.New("vault service not available")}
		}
		g, err := v.vault.GetGroup(context.Background(), name)
		return messages.MembersLoaded{Group: g, Err: err}
	}
}

// Update handles messages for the members view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.MembersLoaded:
		v.loading = false
		v.group, v.err = msg.Group, msg.Err

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Up):
			if v.selected > 0 {
				v.selected--
			}
		case keymap.Matches(k, v.keymap.Down):
			if v.group != nil && v.selected < v.group.Len()-1 {
				v.selected++
			}
		case keymap.Matches(k, v.keymap.Reload):
			return v, v.SetGroup(v.name)
		case keymap.Matches(k, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewGroups}
			}
		}
	}
	return v, nil
}

// View renders the group header and its members.
func (v *View) View() string {
	var b strings.Builder

	switch {
	case v.loading:
		b.WriteString(v.styles.Title.Render(v.name))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Title.Render(v.name))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.group != nil:
		b.WriteString(v.styles.Title.Render(v.group.Name))
		b.WriteString("  ")
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("security level %d", v.group.SecurityFactor)))
		b.WriteString("\n\n")
		members := v.group.Members()
		if len(members) == 0 {
			b.WriteString(v.styles.Muted.Render("This group is empty."))
			break
		}
		for i, c := range members {
			line := fmt.Sprintf("%-32s %-20s %s", c.Key(), c.URL(), c.LastChanged())
			if i == v.selected {
				b.WriteString(">> " + v.styles.Selected.Render(line))
			} else {
				b.WriteString(">> " + v.styles.Normal.Render(line))
			}
			if c.IsTwoFactor() {
				b.WriteString("  " + v.styles.Secret.Render(fmt.Sprintf("[%s: %s]", c.Method(), c.AuthInfo())))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[r] reload  [esc] groups  [q] quit"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Group returns the loaded group.
func (v *View) Group() *domain.Group {
	return v.group
}

// Name returns the requested group name.
func (v *View) Name() string {
	return v.name
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
