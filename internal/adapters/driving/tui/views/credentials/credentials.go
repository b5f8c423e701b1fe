// Package credentials provides the credential list view for the TUI.
package credentials

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

const mask = "********"

// View lists every credential and details the highlighted one.
// The password stays masked until the reveal key is pressed.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	vault  driving.VaultService

	credentials []*domain.Credential
	selected    int
	revealed    bool
	width       int
	height      int
	err         error
	loading     bool
}

// NewView creates a new credentials view.
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

// Init loads the credentials and hides any revealed password.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.revealed = false
	return func() tea.Msg {
		if v.vault == nil {
			return messages.CredentialsLoaded{Err: errors.New("vault service not available")}
		}
		creds, err := v.vault.ListCredentials(context.Background())
		return messages.CredentialsLoaded{Credentials: creds, Err: err}
	}
}

// Update handles messages for the credentials view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.CredentialsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			break
		}
		v.credentials, v.err = msg.Credentials, nil
		if v.selected >= len(v.credentials) {
			v.selected = max(len(v.credentials)-1, 0)
		}

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Up):
			if v.selected > 0 {
				v.selected--
				v.revealed = false
			}
		case keymap.Matches(k, v.keymap.Down):
			if v.selected < len(v.credentials)-1 {
				v.selected++
				v.revealed = false
			}
		case keymap.Matches(k, v.keymap.Reveal):
			v.revealed = !v.revealed
		case keymap.Matches(k, v.keymap.Reload):
			return v, v.Init()
		case keymap.Matches(k, v.keymap.Back):
			v.revealed = false
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}
	return v, nil
}

// View renders the list and the detail panel.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Credentials"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading credentials..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.credentials) == 0:
		b.WriteString(v.styles.Muted.Render("There are no credentials."))
	default:
		for i, c := range v.credentials {
			if i == v.selected {
				b.WriteString("> " + v.styles.Selected.Render(c.Key()))
			} else {
				b.WriteString("  " + v.styles.Normal.Render(c.Key()))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(v.renderDetail(v.credentials[v.selected]))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[space] show password  [r] reload  [esc] back  [q] quit"))
	return b.String()
}

func (v *View) renderDetail(c *domain.Credential) string {
	password := v.styles.Muted.Render(mask)
	if v.revealed {
		password = v.styles.Secret.Render(c.Password())
	}

	lines := []string{
		v.styles.Subtitle.Render(c.Site()),
		"URL:          " + c.URL(),
		"Username:     " + c.Username(),
		"Password:     " + password,
		"Last changed: " + c.LastChanged(),
	}
	if c.IsTwoFactor() {
		lines = append(lines,
			"2FA method:   "+c.Method(),
			"2FA info:     "+c.AuthInfo(),
		)
	}
	return v.styles.Border.Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Credentials returns the loaded credentials.
func (v *View) Credentials() []*domain.Credential {
	return v.credentials
}

// SelectedIndex returns the highlighted row.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Revealed reports whether the highlighted password is shown.
func (v *View) Revealed() bool {
	return v.revealed
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
