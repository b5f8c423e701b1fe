package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the store contents with demonstration data",
	Long: `Drop both collections and write the demonstration data set:
five credentials and the groups All, Social and Financial.

Every existing credential and group is deleted.`,
	Annotations: needsVault(),
	RunE:        runSeed,
}

var seedYes bool

func init() {
	seedCmd.Flags().BoolVarP(&seedYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	vault, err := requireVault()
	if err != nil {
		return err
	}

	if !seedYes {
		ok, err := newPrompter(cmd).YesNo("This deletes every stored credential and group. Continue (Yes/No): ")
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := vault.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}

	seed := domain.SeedData()
	cmd.Printf("Store reset: %d credentials, %d groups\n", len(seed.Credentials), len(seed.Groups))
	return nil
}
