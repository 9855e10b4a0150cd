package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vitaforge/vitae/internal/config"
	"github.com/vitaforge/vitae/internal/server"
	"github.com/vitaforge/vitae/internal/site"
	"github.com/vitaforge/vitae/internal/watcher"
)

var (
	devServe   bool
	devVerbose bool
)

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Watch for changes and rebuild automatically",
	Long: `Development mode: build once, then watch the config, template and asset
directories and rebuild on every change. Changes arriving during a build
are coalesced into one follow-up rebuild.

Examples:
  vitae dev                       # Watch and rebuild
  vitae dev --serve               # Also serve the site with live reload
  vitae dev --verbose             # Log each changed file`,
	RunE: runDev,
}

func init() {
	rootCmd.AddCommand(devCmd)

	devCmd.Flags().BoolVar(&devServe, "serve", false, "serve the output directory with live reload")
	devCmd.Flags().BoolVarP(&devVerbose, "verbose", "v", false, "log individual file changes")
	devCmd.Flags().IntP("port", "p", 0, "preview server port")
	_ = viper.BindPFlag("dev.port", devCmd.Flags().Lookup("port"))
}

func runDev(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading tool config: %w", err)
	}
	log := newLogger(cfg)

	builder := site.NewBuilder(cfg, log)

	var preview *server.PreviewServer
	if devServe {
		preview = server.New(cfg.Paths.Output, log)
	}

	buildOnce := func() error {
		summary, err := builder.Run(site.Options{})
		if err != nil {
			return err
		}
		fmt.Printf("🔄 Rebuilt: %d files, %s\n", summary.FileCount, humanBytes(summary.OutputBytes))
		if preview != nil {
			preview.NotifyReload()
		}
		return nil
	}

	loop := watcher.NewBuildLoop(buildOnce, log)

	// One unconditional build before watching; a failure is reported but
	// does not keep dev mode from starting.
	fmt.Println("🔨 Initial build...")
	if err := buildOnce(); err != nil {
		reportBuildError(err)
		fmt.Fprintf(os.Stderr, "Initial build failed: %v\n", err)
	}

	fw, err := watcher.New(cfg.Dev.Debounce(), log)
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fw.Stop()

	fw.AddFilter(watcher.NoiseFilter)
	fw.AddFilter(watcher.OutputFilter(cfg.Paths.Output))
	fw.OnRawEvent(loop.MarkDebouncing)
	fw.AddHandler(func(events []watcher.ChangeEvent) error {
		if devVerbose {
			for _, event := range events {
				fmt.Printf("📁 %s: %s\n", event.Type, event.Path)
			}
		} else {
			fmt.Printf("📁 %d file(s) changed\n", len(events))
		}
		// Trigger asynchronously so a long build never blocks event
		// dispatch; concurrent triggers coalesce in the pending slot.
		go loop.Trigger()
		return nil
	})

	for _, path := range watchRoots(cfg) {
		if err := fw.AddRecursive(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", path, err)
		} else {
			fmt.Printf("👀 Watching: %s\n", path)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)

	if preview != nil {
		addr := fmt.Sprintf("%s:%d", cfg.Dev.Host, cfg.Dev.Port)
		if err := preview.Start(addr); err != nil {
			return err
		}
		fmt.Printf("🌐 Preview at http://%s\n", addr)
	}

	fmt.Println("Watching for changes... (Press Ctrl+C to stop)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\n👋 Stopping — thanks for using vitae!")
	cancel()
	if preview != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer shutdownCancel()
		_ = preview.Shutdown(shutdownCtx)
	}
	return nil
}

// watchRoots returns the unique existing directories dev mode watches: the
// config and template parents plus every asset root.
func watchRoots(cfg *config.Config) []string {
	candidates := []string{
		filepath.Dir(cfg.Paths.Data),
		filepath.Dir(cfg.Paths.Template),
		cfg.Paths.Styles,
		cfg.Paths.Scripts,
		cfg.Paths.Images,
	}

	seen := make(map[string]bool)
	var roots []string
	for _, path := range candidates {
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			roots = append(roots, path)
		}
	}
	return roots
}
