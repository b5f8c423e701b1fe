package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driven/storage"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driving/web"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/logger"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the browser front end",
	Long: `Serve the password manager as HTML forms.

The root path and the usual home page aliases redirect to /menu.
With --watch the store is reloaded whenever another process changes
the local database file (sqlite and bolt backends only).`,
	Annotations: needsVault(),
	RunE:        runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from web.addr)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload when the local store file changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	vault, err := requireVault()
	if err != nil {
		return err
	}
	settings, err := currentSettings()
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = settings.Web.Addr
	}
	log := logger.NewSlog(cmd.ErrOrStderr(), settings.Log.Format, verbose || settings.Log.Verbose)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := vault.Load(ctx); err != nil {
		return fmt.Errorf("loading store: %w", err)
	}

	handler, err := web.NewHandler(vault, log)
	if err != nil {
		return err
	}
	limiter := web.NewRateLimiter(log, web.ClientIPKeyFunc, rate.Limit(settings.Web.RateLimit), settings.Web.Burst)
	go limiter.Cleanup(ctx, time.Minute)

	if serveWatch {
		if !settings.Store.Backend.IsLocal() {
			return fmt.Errorf("--watch needs a local backend, not %q", settings.Store.Backend)
		}
		dir, err := storage.DataDir(settings.Store)
		if err != nil {
			return err
		}
		watcher := web.NewWatcher(dir, vault.Load, log)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				log.Error("store watcher stopped", "error", err)
			}
		}()
	}

	cmd.Printf("Password Manager listening on http://%s\n", addr)
	return web.NewServer(addr, web.ApplyMiddleware(handler.Routes(), log, limiter), log).Run(ctx)
}
