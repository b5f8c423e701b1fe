package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driven/storage/memory"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/services"
)

// testEnv holds the services installed for one test.
type testEnv struct {
	vault    *services.Vault
	settings *services.SettingsService
	out      *bytes.Buffer
}

// setupTestServices installs a seeded in-memory vault and settings service
// and captures command output. Globals are restored on cleanup.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	noColor := color.NoColor
	color.NoColor = true

	vault := services.NewVault(services.NewGateway(memory.NewCredentialStore(), memory.NewGroupStore()))
	require.NoError(t, vault.Reset(context.Background()))
	settings := services.NewSettingsService(memory.NewConfigStore())

	prevVault, prevSettings, prevWiring := vaultService, settingsService, wiring
	vaultService, settingsService, wiring = vault, settings, nil

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	t.Cleanup(func() {
		color.NoColor = noColor
		vaultService, settingsService, wiring = prevVault, prevSettings, prevWiring
		closeVault = nil
		resetFlags(rootCmd)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	return &testEnv{vault: vault, settings: settings, out: out}
}

// run executes the root command with args, feeding input to stdin.
func (e *testEnv) run(input string, args ...string) (string, error) {
	e.out.Reset()
	resetFlags(rootCmd)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return e.out.String(), err
}

// resetFlags restores every flag in the tree to its default so required
// flag checks and bound variables start clean in the next test.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
