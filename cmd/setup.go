package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vitaforge/vitae/internal/config"
	"github.com/vitaforge/vitae/internal/scaffolding"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactively create a resume config and starter site",
	Long: `Walk through a short wizard that collects the minimal resume fields,
then write the resume config plus starter template, stylesheet and script.
An existing resume config is backed up before being overwritten.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading tool config: %w", err)
	}

	wizard := scaffolding.NewWizard(os.Stdin, os.Stdout)
	resumeCfg, err := wizard.Run()
	if err != nil {
		return err
	}

	generator := scaffolding.NewGenerator(cfg.Paths)

	backup, err := generator.WriteResumeConfig(resumeCfg)
	if err != nil {
		return err
	}
	if backup != "" {
		fmt.Printf("📦 Existing config backed up to %s\n", backup)
	}
	fmt.Printf("✅ Resume config written to %s\n", cfg.Paths.Data)

	created, err := generator.ScaffoldProject()
	if err != nil {
		return err
	}
	for _, path := range created {
		fmt.Printf("✅ Created %s\n", path)
	}

	if err := writeToolConfig(cfg); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("All set. Run `vitae build` to generate your site, or `vitae dev --serve` to preview it.")
	return nil
}

// writeToolConfig persists the resolved tool settings to .vitae.yml so the
// project is self-describing. An existing file is left untouched.
func writeToolConfig(cfg *config.Config) error {
	const path = ".vitae.yml"
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	header := []byte("# vitae tool configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("✅ Created %s\n", path)
	return nil
}
