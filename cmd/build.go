package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vitaforge/vitae/internal/config"
	"github.com/vitaforge/vitae/internal/resume"
	"github.com/vitaforge/vitae/internal/site"
)

var buildCheck bool

const summaryRounding = time.Millisecond

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the resume site once",
	Long: `Run the full build pipeline once: load the resume config, render the
template, copy assets and write the derived artifacts.

Examples:
  vitae build                     # Build with configured paths
  vitae build --output public     # Build into a specific directory
  vitae build --check             # Also sanity-check the rendered HTML`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP("output", "o", "", "output directory")
	buildCmd.Flags().String("data", "", "resume config JSON file")
	buildCmd.Flags().String("template", "", "HTML template file")
	buildCmd.Flags().BoolVar(&buildCheck, "check", false, "parse the rendered HTML and report structural problems")
	_ = viper.BindPFlag("paths.output", buildCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("paths.data", buildCmd.Flags().Lookup("data"))
	_ = viper.BindPFlag("paths.template", buildCmd.Flags().Lookup("template"))
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading tool config: %w", err)
	}

	fmt.Println("🔨 Building resume site...")

	builder := site.NewBuilder(cfg, newLogger(cfg))
	summary, err := builder.Run(site.Options{CheckHTML: buildCheck})
	if err != nil {
		reportBuildError(err)
		return err
	}

	printSummary(cfg, summary)
	return nil
}

// reportBuildError prints remediation hints for config load failures; the
// error itself propagates to cobra for the non-zero exit.
func reportBuildError(err error) {
	var loadErr *resume.LoadError
	if errors.As(err, &loadErr) && len(loadErr.Hints) > 0 {
		fmt.Fprintln(os.Stderr, "The resume config could not be parsed. Common causes:")
		for _, hint := range loadErr.Hints {
			fmt.Fprintf(os.Stderr, "  - %s\n", hint)
		}
	}
}

func printSummary(cfg *config.Config, summary *site.Summary) {
	fmt.Printf("✅ Build completed in %v\n", summary.Duration.Round(summaryRounding))
	fmt.Printf("   - %s — %s\n", summary.Name, summary.Title)
	fmt.Printf("   - %d sections enabled\n", summary.EnabledSections)
	fmt.Printf("   - %d jobs, %d projects, %d skill categories\n",
		summary.Experience, summary.Projects, summary.SkillCategories)
	fmt.Printf("   - %d files, %s written to %s\n",
		summary.FileCount, humanBytes(summary.OutputBytes), cfg.Paths.Output)

	for _, warn := range summary.Warnings {
		fmt.Printf("⚠️  %s\n", warn)
	}
}

func humanBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
