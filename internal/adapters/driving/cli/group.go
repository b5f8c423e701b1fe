package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var groupCmd = &cobra.Command{
	Use:     "group",
	Aliases: []string{"groups"},
	Short:   "Manage credential groups",
	Long:    `List, show, create, delete and join credential groups.`,
}

var groupListCmd = &cobra.Command{
	Use:         "list",
	Short:       "List all groups",
	Annotations: needsVault(),
	RunE:        runGroupList,
}

var groupShowCmd = &cobra.Command{
	Use:         "show [name]",
	Short:       "Print the credentials in a group",
	Args:        cobra.ExactArgs(1),
	Annotations: needsVault(),
	RunE:        runGroupShow,
}

var groupCreateCmd = &cobra.Command{
	Use:         "create [name] [security-level]",
	Short:       "Create an empty group",
	Long:        `Create an empty group. The security level must be between 1 and 10.`,
	Args:        cobra.ExactArgs(2),
	Annotations: needsVault(),
	RunE:        runGroupCreate,
}

var groupDeleteCmd = &cobra.Command{
	Use:         "delete [name]",
	Short:       "Delete a group (its credentials are kept)",
	Args:        cobra.ExactArgs(1),
	Annotations: needsVault(),
	RunE:        runGroupDelete,
}

var groupUnionCmd = &cobra.Command{
	Use:         "union [first] [second]",
	Short:       "Join two groups into a new one",
	Args:        cobra.ExactArgs(2),
	Annotations: needsVault(),
	RunE:        runGroupUnion,
}

func init() {
	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupShowCmd)
	groupCmd.AddCommand(groupCreateCmd)
	groupCmd.AddCommand(groupDeleteCmd)
	groupCmd.AddCommand(groupUnionCmd)
	rootCmd.AddCommand(groupCmd)
}

func runGroupList(cmd *cobra.Command, _ []string) error {
	vault, err := requireVault()
	if err != nil {
		return err
	}

	groups, err := vault.ListGroups(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}

	if len(groups) == 0 {
		cmd.Println("No groups.")
		return nil
	}
	for _, g := range groups {
		cmd.Printf("%-24s security %-2d  %d credentials\n", g.Name, g.SecurityFactor, g.Len())
	}
	return nil
}

func runGroupShow(cmd *cobra.Command, args []string) error {
	vault, err := requireVault()
	if err != nil {
		return err
	}

	g, err := vault.GetGroup(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Printf("%s (security level %d):\n", g.Name, g.SecurityFactor)
	for _, c := range g.Members() {
		cmd.Printf(">>  %s\n", c.Key())
	}
	return nil
}

func runGroupCreate(cmd *cobra.Command, args []string) error {
	vault, err := requireVault()
	if err != nil {
		return err
	}

	sec, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("security level must be a whole number: %q", args[1])
	}

	g, err := vault.CreateGroup(cmd.Context(), args[0], sec)
	if err != nil {
		return err
	}

	cmd.Printf("Created new group '%s' with security level %d\n", g.Name, g.SecurityFactor)
	return nil
}

func runGroupDelete(cmd *cobra.Command, args []string) error {
	vault, err := requireVault()
	if err != nil {
		return err
	}

	if err := vault.DeleteGroup(cmd.Context(), args[0]); err != nil {
		return err
	}

	cmd.Printf("Deleted '%s' group\n", args[0])
	return nil
}

func runGroupUnion(cmd *cobra.Command, args []string) error {
	vault, err := requireVault()
	if err != nil {
		return err
	}

	joined, err := vault.UnionGroups(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}

	cmd.Printf("Created %s with security level %d and %d credentials\n",
		joined.Name, joined.SecurityFactor, joined.Len())
	return nil
}
