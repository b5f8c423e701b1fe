// Command passman is a personal password manager.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driven/config/file"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driven/storage"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driving/cli"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driving"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/services"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := file.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading .env: %v\n", err)
		os.Exit(1)
	}

	cli.SetVersion(version)
	cli.Configure(&cli.Wiring{
		Settings: newSettings,
		Vault:    newVault,
	})

	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newSettings(opts cli.GlobalOptions) (driving.SettingsService, error) {
	store, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, err
	}
	return services.NewSettingsService(file.NewEnvConfigStore(store)), nil
}

func newVault(ctx context.Context, settings *domain.AppSettings) (driving.VaultService, func() error, error) {
	stores, err := storage.Open(ctx, settings.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s store: %w", settings.Store.Backend, err)
	}
	logger.Debug("Opened %s store", stores.Backend)

	vault := services.NewVault(services.NewGateway(stores.Credentials, stores.Groups))
	return vault, stores.Close, nil
}
