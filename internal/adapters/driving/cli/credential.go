package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
)

var credentialCmd = &cobra.Command{
	Use:     "credential",
	Aliases: []string{"cred", "credentials"},
	Short:   "Manage stored credentials",
	Long: `List, add, remove and update stored credentials.

A credential is addressed by its key, "Site: username".`,
}

var credentialListCmd = &cobra.Command{
	Use:         "list",
	Short:       "List all credentials",
	Annotations: needsVault(),
	RunE:        runCredentialList,
}

var credentialAddCmd = &cobra.Command{
	Use:   "add [group]",
	Short: "Create a credential and add it to a group",
	Long: `Create a credential and add it to a group.

The password is prompted for (twice) unless --password is given. Passing
--method makes it a two-factor credential.`,
	Args:        cobra.ExactArgs(1),
	Annotations: needsVault(),
	RunE:        runCredentialAdd,
}

var credentialRemoveCmd = &cobra.Command{
	Use:         "remove [group] [key]",
	Short:       "Remove a credential from a group",
	Args:        cobra.ExactArgs(2),
	Annotations: needsVault(),
	RunE:        runCredentialRemove,
}

var credentialPasswdCmd = &cobra.Command{
	Use:         "passwd [key]",
	Short:       "Change a credential's password",
	Args:        cobra.ExactArgs(1),
	Annotations: needsVault(),
	RunE:        runCredentialPasswd,
}

// Flags for credential add and passwd.
var (
	credSite     string
	credURL      string
	credUsername string
	credPassword string
	credMethod   string
	credAuthInfo string
)

func init() {
	credentialAddCmd.Flags().StringVar(&credSite, "site", "", "Site name (required)")
	credentialAddCmd.Flags().StringVar(&credURL, "url", "", "Site URL (required)")
	credentialAddCmd.Flags().StringVarP(&credUsername, "username", "u", "", "Login name (required)")
	credentialAddCmd.Flags().StringVar(&credPassword, "password", "", "Password (prompted if empty)")
	credentialAddCmd.Flags().StringVar(&credMethod, "method", "", "Two-factor method, e.g. \"phone app\"")
	credentialAddCmd.Flags().StringVar(&credAuthInfo, "auth-info", "", "Two-factor info, e.g. \"biometric\"")
	_ = credentialAddCmd.MarkFlagRequired("site")
	_ = credentialAddCmd.MarkFlagRequired("url")
	_ = credentialAddCmd.MarkFlagRequired("username")

	credentialPasswdCmd.Flags().StringVar(&credPassword, "password", "", "New password (prompted if empty)")

	credentialCmd.AddCommand(credentialListCmd)
	credentialCmd.AddCommand(credentialAddCmd)
	credentialCmd.AddCommand(credentialRemoveCmd)
	credentialCmd.AddCommand(credentialPasswdCmd)
	rootCmd.AddCommand(credentialCmd)
}

func runCredentialList(cmd *cobra.Command, _ []string) error {
	vault, err := requireVault()
	if err != nil {
		return err
	}

	creds, err := vault.ListCredentials(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list credentials: %w", err)
	}

	if len(creds) == 0 {
		cmd.Println("No credentials.")
		return nil
	}
	for _, c := range creds {
		kind := ""
		if c.IsTwoFactor() {
			kind = " [2FA]"
		}
		cmd.Printf("%-28s %-20s %s%s\n", c.Key(), c.URL(), c.LastChanged(), kind)
	}
	return nil
}

func runCredentialAdd(cmd *cobra.Command, args []string) error {
	vault, err := requireVault()
	if err != nil {
		return err
	}

	password := credPassword
	if password == "" {
		password, err = newPrompter(cmd).Password()
		if err != nil {
			return err
		}
	}

	var cred *domain.Credential
	if credMethod != "" || credAuthInfo != "" {
		cred = domain.NewTwoFactorCredential(credSite, credURL, credUsername, password, "", credMethod, credAuthInfo)
	} else {
		cred = domain.NewCredential(credSite, credURL, credUsername, password, "")
	}

	added, err := vault.AddCredential(cmd.Context(), args[0], cred)
	if err != nil {
		return err
	}

	cmd.Printf("New credential %s was added to group '%s'\n", added.Key(), args[0])
	return nil
}

func runCredentialRemove(cmd *cobra.Command, args []string) error {
	vault, err := requireVault()
	if err != nil {
		return err
	}

	if err := vault.RemoveFromGroup(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}

	cmd.Printf("%s removed from %s\n", args[1], args[0])
	return nil
}

func runCredentialPasswd(cmd *cobra.Command, args []string) error {
	vault, err := requireVault()
	if err != nil {
		return err
	}

	password := credPassword
	if password == "" {
		password, err = newPrompter(cmd).Password()
		if err != nil {
			return err
		}
	}

	c, err := vault.ChangePassword(cmd.Context(), args[0], password)
	if err != nil {
		return err
	}

	cmd.Printf("Password for '%s' has been changed\n", c.Key())
	return nil
}
