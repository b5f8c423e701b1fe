package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driving/prompt"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driving"
)

const (
	backChoice = domain.BackGroupName
	goodbye    = "Thank you for using Password Manager!"
)

var menuChoices = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the numbered text menu",
	Long: `Run the interactive numbered menu.

Every list accepts "Back" to return to the menu. Choices are matched
case-insensitively.`,
	Annotations: needsVault(),
	RunE:        runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, _ []string) error {
	vault, err := requireVault()
	if err != nil {
		return err
	}
	return NewMenu(vault, newPrompter(cmd)).Run(cmd.Context())
}

// newPrompter hides password input when stdin is a terminal.
func newPrompter(cmd *cobra.Command) *prompt.Prompter {
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		return prompt.NewTerminal(f, cmd.OutOrStdout())
	}
	return prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
}

// Menu is the numbered text front end.
type Menu struct {
	vault driving.VaultService
	p     *prompt.Prompter
}

// NewMenu creates a menu over vault reading answers through p.
func NewMenu(vault driving.VaultService, p *prompt.Prompter) *Menu {
	return &Menu{vault: vault, p: p}
}

// Run loads the store and loops until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	if err := m.vault.Load(ctx); err != nil {
		return fmt.Errorf("loading store: %w", err)
	}

	actions := map[string]func(context.Context) error{
		"1": m.listGroups,
		"2": m.createGroup,
		"3": m.deleteGroup,
		"4": m.printGroup,
		"5": m.listCredentials,
		"6": m.addCredential,
		"7": m.removeCredential,
		"8": m.changePassword,
		"9": m.joinGroups,
	}

	for {
		m.printMenu()
		choice, err := m.p.Select(">> ", menuChoices)
		if err != nil {
			return err
		}
		if choice == "0" {
			m.p.Println(goodbye)
			return nil
		}

		if err := actions[choice](ctx); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return err
			}
			m.p.Println(errorLine(err))
			if err := m.p.Pause(); err != nil {
				return err
			}
		}
	}
}

func (m *Menu) printMenu() {
	m.p.Println("\nSelect from the following choices:")
	m.p.Println()
	m.p.Println("1) Display All Groups")
	m.p.Println("2) Create New Group")
	m.p.Println("3) Delete Group")
	m.p.Println("4) Print a Group")
	m.p.Println("5) Display All Credentials")
	m.p.Println("6) Create New Credential & Add to Group")
	m.p.Println("7) Remove Credential From a Group")
	m.p.Println("8) Change Password for a Credential")
	m.p.Println("9) Join Two Groups")
	m.p.Println("0) Exit")
}

// errorLine formats err for the menu.
func errorLine(err error) string {
	return color.RedString("ERROR:") + " " + err.Error()
}

// chooseGroup lists the groups plus Back and returns the chosen group name,
// or "" for Back.
func (m *Menu) chooseGroup(ctx context.Context, label string) (string, error) {
	groups, err := m.vault.ListGroups(ctx)
	if err != nil {
		return "", err
	}
	choices := make([]string, 0, len(groups)+1)
	for _, g := range groups {
		choices = append(choices, g.Name)
	}
	choices = append(choices, backChoice)

	m.p.Println(prompt.FormatChoices(choices))
	name, err := m.p.Select(label, choices)
	if err != nil || name == backChoice {
		return "", err
	}
	return name, nil
}

// chooseCredential lists creds plus Back and returns the chosen key, or ""
// for Back.
func (m *Menu) chooseCredential(creds []*domain.Credential) (string, error) {
	choices := make([]string, 0, len(creds)+1)
	for _, c := range creds {
		choices = append(choices, c.Key())
	}
	choices = append(choices, backChoice)

	m.p.Println(prompt.FormatChoices(choices))
	key, err := m.p.Select("Which credential (Site: Username): ", choices)
	if err != nil || key == backChoice {
		return "", err
	}
	return key, nil
}

func (m *Menu) listGroups(ctx context.Context) error {
	groups, err := m.vault.ListGroups(ctx)
	if err != nil {
		return err
	}

	m.p.Println("These are the current groups:")
	for _, g := range groups {
		m.p.Printf("%s (security level %d, %d credentials)\n", g.Name, g.SecurityFactor, g.Len())
	}
	return m.p.Pause()
}

func (m *Menu) createGroup(ctx context.Context) error {
	name, err := m.p.String("Name of new group: ", "")
	if err != nil {
		return err
	}
	sec, err := m.p.Int("Set security level (1-10): ",
		prompt.Range(domain.MinSecurityFactor, domain.MaxSecurityFactor)...)
	if err != nil {
		return err
	}

	g, err := m.vault.CreateGroup(ctx, name, sec)
	if err != nil {
		return err
	}

	m.p.Printf("\nCreated new group '%s' with security level %d\n", g.Name, g.SecurityFactor)
	return m.p.Pause()
}

func (m *Menu) deleteGroup(ctx context.Context) error {
	name, err := m.chooseGroup(ctx, "Choose a group to delete: ")
	if err != nil || name == "" {
		return err
	}

	if err := m.vault.DeleteGroup(ctx, name); err != nil {
		return err
	}

	m.p.Printf("\nDeleted '%s' group\n", name)
	return m.p.Pause()
}

func (m *Menu) printGroup(ctx context.Context) error {
	name, err := m.chooseGroup(ctx, "Choose a group to display: ")
	if err != nil || name == "" {
		return err
	}

	g, err := m.vault.GetGroup(ctx, name)
	if err != nil {
		return err
	}

	m.p.Printf("%s:\n", g.Name)
	for _, c := range g.Members() {
		m.p.Printf(">>  %s\n", c.Key())
	}
	return m.p.Pause()
}

func (m *Menu) listCredentials(ctx context.Context) error {
	creds, err := m.vault.ListCredentials(ctx)
	if err != nil {
		return err
	}

	for _, c := range creds {
		line := fmt.Sprintf("%s  (%s, last changed %s)", c.Key(), c.URL(), c.LastChanged())
		if c.IsTwoFactor() {
			line += fmt.Sprintf(" [2FA: %s, %s]", c.Method(), c.AuthInfo())
		}
		m.p.Println(line)
	}
	return m.p.Pause()
}

func (m *Menu) addCredential(ctx context.Context) error {
	groupName, err := m.chooseGroup(ctx, "Choose a group to add the new credential to: ")
	if err != nil || groupName == "" {
		return err
	}

	const empty = "can not be empty"
	site, err := m.p.String("\nEnter a site name for the new credential: ", "Name "+empty)
	if err != nil {
		return err
	}
	url, err := m.p.String("Enter the URL of the site: ", "URL "+empty)
	if err != nil {
		return err
	}
	username, err := m.p.String("Enter the username: ", "Username "+empty)
	if err != nil {
		return err
	}

	key := domain.CredentialKey(site, username)
	if _, err := m.vault.GetCredential(ctx, key); err == nil {
		return fmt.Errorf("'%s' combination %w", key, domain.ErrAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	password, err := m.p.Password()
	if err != nil {
		return err
	}

	tfa, err := m.p.YesNo("\nDoes this credential require two-factor authentication (Yes/No): ")
	if err != nil {
		return err
	}

	var cred *domain.Credential
	if tfa {
		method, err := m.p.String("\nEnter the method of authentication (phone app, pin): ", "")
		if err != nil {
			return err
		}
		info, err := m.p.String("Enter the information needed to authenticate (pin #, biometric, etc.): ", "")
		if err != nil {
			return err
		}
		cred = domain.NewTwoFactorCredential(site, strings.ToLower(url), username, password, "", method, info)
	} else {
		cred = domain.NewCredential(site, strings.ToLower(url), username, password, "")
	}

	added, err := m.vault.AddCredential(ctx, groupName, cred)
	if err != nil {
		return err
	}

	m.p.Printf("\nNew credential for %s was added to group '%s'\n", added.Site(), groupName)
	return m.p.Pause()
}

func (m *Menu) removeCredential(ctx context.Context) error {
	groupName, err := m.chooseGroup(ctx, "Choose a group to remove a credential from: ")
	if err != nil || groupName == "" {
		return err
	}

	g, err := m.vault.GetGroup(ctx, groupName)
	if err != nil {
		return err
	}
	key, err := m.chooseCredential(g.Members())
	if err != nil || key == "" {
		return err
	}

	if err := m.vault.RemoveFromGroup(ctx, g.Name, key); err != nil {
		return err
	}

	m.p.Printf("\n%s removed from %s\n", key, g.Name)
	return m.p.Pause()
}

func (m *Menu) changePassword(ctx context.Context) error {
	creds, err := m.vault.ListCredentials(ctx)
	if err != nil {
		return err
	}
	key, err := m.chooseCredential(creds)
	if err != nil || key == "" {
		return err
	}

	password, err := m.p.Password()
	if err != nil {
		return err
	}
	c, err := m.vault.ChangePassword(ctx, key, password)
	if err != nil {
		return err
	}

	m.p.Printf("\nPassword for '%s' has been changed\n", c.Key())
	return m.p.Pause()
}

func (m *Menu) joinGroups(ctx context.Context) error {
	m.p.Println("Groups available for joining:")
	first, err := m.chooseGroup(ctx, "\nChoose first group: ")
	if err != nil || first == "" {
		return err
	}
	second, err := m.chooseGroup(ctx, "Choose second group: ")
	if err != nil || second == "" {
		return err
	}

	joined, err := m.vault.UnionGroups(ctx, first, second)
	if err != nil {
		return err
	}

	m.p.Printf("\nJoined %s with %s, creating %s with security level %d\n",
		first, second, joined.Name, joined.SecurityFactor)
	return m.p.Pause()
}
