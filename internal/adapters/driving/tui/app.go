package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driving/tui/components/status"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driving/tui/keymap"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driving/tui/messages"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driving/tui/styles"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driving/tui/views/credentials"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driving/tui/views/groups"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driving/tui/views/members"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driving/tui/views/menu"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView        *menu.View
	groupsView      *groups.View
	membersView     *members.View
	credentialsView *credentials.View
	statusBar       *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		keymap:          km,
		menuView:        menu.NewView(s),
		groupsView:      groups.NewView(s, ports.Vault),
		membersView:     members.NewView(s, ports.Vault),
		credentialsView: credentials.NewView(s, ports.Vault),
		statusBar:       status.NewBar(s, km),
		currentView:     messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.loadVault(),
		tea.SetWindowTitle("passman"),
	)
}

// loadVault refreshes the vault from the store before the first view loads.
func (a *App) loadVault() tea.Cmd {
	return func() tea.Msg {
		if err := a.ports.Vault.Load(a.ctx); err != nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("loading vault: %w", err)}
		}
		return nil
	}
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		k := msg.String()
		if k == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView != messages.ViewMenu && keymap.Matches(k, a.keymap.Quit) {
			return a, tea.Quit
		}
		return a, a.routeKey(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		a.statusBar.Clear()
		switch msg.View {
		case messages.ViewGroups:
			a.statusBar.SetState(status.StateLoading)
			return a, a.groupsView.Init()
		case messages.ViewCredentials:
			a.statusBar.SetState(status.StateLoading)
			return a, a.credentialsView.Init()
		case messages.ViewHelp:
			a.statusBar.SetState(status.StateHelp)
		case messages.ViewMenu, messages.ViewMembers:
		}
		return a, nil

	case messages.GroupsLoaded:
		a.groupsView, cmd = a.groupsView.Update(msg)
		a.track(msg.Err, len(msg.Groups), "groups")
		return a, cmd

	case messages.GroupSelected:
		a.currentView = messages.ViewMembers
		a.statusBar.SetState(status.StateLoading)
		return a, a.membersView.SetGroup(msg.Name)

	case messages.MembersLoaded:
		a.membersView, cmd = a.membersView.Update(msg)
		n := 0
		if msg.Group != nil {
			n = msg.Group.Len()
		}
		a.track(msg.Err, n, "members")
		return a, cmd

	case messages.CredentialsLoaded:
		a.credentialsView, cmd = a.credentialsView.Update(msg)
		a.track(msg.Err, len(msg.Credentials), "credentials")
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

// routeKey forwards a key press to the active view.
func (a *App) routeKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewGroups:
		a.groupsView, cmd = a.groupsView.Update(msg)
	case messages.ViewMembers:
		a.membersView, cmd = a.membersView.Update(msg)
	case messages.ViewCredentials:
		a.credentialsView, cmd = a.credentialsView.Update(msg)
	case messages.ViewHelp:
		if keymap.Matches(msg.String(), a.keymap.Back) {
			a.currentView = messages.ViewMenu
			a.statusBar.Clear()
		}
	}
	return cmd
}

func (a *App) track(err error, n int, noun string) {
	if err != nil {
		a.err = err
		a.statusBar.SetError(err)
		return
	}
	a.err = nil
	a.statusBar.SetState(status.StateReady)
	a.statusBar.SetCount(n, noun)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewGroups:
		body = a.groupsView.View()
	case messages.ViewMembers:
		body = a.membersView.View()
	case messages.ViewCredentials:
		body = a.credentialsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}
	return body + "\n\n" + a.statusBar.View()
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back
  q, ctrl+c   Quit

Lists:
  j/k, ↑/↓    Move
  enter       Open group
  r           Reload

Credentials:
  space, p    Show or hide the password

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// Status returns the status bar.
func (a *App) Status() *status.Bar {
	return a.statusBar
}

// SetDimensions sizes the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.groupsView.SetDimensions(width, height)
	a.membersView.SetDimensions(width, height)
	a.credentialsView.SetDimensions(width, height)
	a.statusBar.SetWidth(width)
}
