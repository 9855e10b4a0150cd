package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vitaforge/vitae/internal/config"
	"github.com/vitaforge/vitae/internal/resume"
	"github.com/vitaforge/vitae/internal/validation"
)

var (
	validateFormat string
	validateSchema bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the resume config without building",
	Long: `Validate the resume configuration independently of any build: required
sections, field types, email/URL/color formats. Errors block a build;
warnings do not.

Examples:
  vitae validate                  # Validate the configured resume file
  vitae validate --format json    # Machine-readable report
  vitae validate --schema         # Additionally check against the JSON Schema`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "text", "output format (text, json)")
	validateCmd.Flags().BoolVar(&validateSchema, "schema", false, "also validate against the embedded JSON Schema")
	validateCmd.Flags().String("data", "", "resume config JSON file")
	_ = viper.BindPFlag("paths.data", validateCmd.Flags().Lookup("data"))
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading tool config: %w", err)
	}

	doc, err := resume.Load(cfg.Paths.Data)
	if err != nil {
		reportBuildError(err)
		return err
	}

	report := validation.Validate(doc)

	if validateSchema {
		raw, err := os.ReadFile(cfg.Paths.Data)
		if err != nil {
			return fmt.Errorf("re-reading config for schema check: %w", err)
		}
		schemaReport, err := validation.ValidateSchema(raw)
		if err != nil {
			return err
		}
		report.Errors = append(report.Errors, schemaReport.Errors...)
	}

	if validateFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(report)
	}

	if !report.OK() {
		return fmt.Errorf("validation failed with %d error(s)", len(report.Errors))
	}
	return nil
}

// printReport groups findings under title-cased top-level section headings.
func printReport(report *validation.Report) {
	if report.Clean() {
		fmt.Println("✅ Resume config is valid — no errors, no warnings")
		return
	}

	caser := cases.Title(language.English)
	printGroup := func(label, icon string, issues []validation.Issue) {
		if len(issues) == 0 {
			return
		}
		fmt.Printf("%s %d %s:\n", icon, len(issues), label)
		lastSection := ""
		for _, issue := range issues {
			section, _, _ := strings.Cut(issue.Field, ".")
			section, _, _ = strings.Cut(section, "[")
			if section != lastSection {
				fmt.Printf("  %s:\n", caser.String(section))
				lastSection = section
			}
			fmt.Printf("    - %s\n", issue)
		}
	}

	printGroup("error(s)", "❌", report.Errors)
	printGroup("warning(s)", "⚠️ ", report.Warnings)

	if report.OK() {
		fmt.Println("✅ Passed with warnings — the site will build, but review the items above")
	}
}
