// Package main provides the CLI entrypoint for versioned-gen.
//
// versioned-gen is a codegen tool that:
//   - Loads a YAML schema declaring versioned containers (structs / enums)
//   - Resolves each item's add/rename/deprecate lifecycle per version
//   - Generates one Go type per declared version
//   - Generates conversion functions between adjacent versions
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"versioned-generator/internal/attrs"
	"versioned-generator/internal/diagnostic"
	"versioned-generator/internal/gen"
	"versioned-generator/internal/plan"
)

var (
	schemaPath  string
	outputDir   string
	packageName string
	noComments  bool
	verbose     bool

	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "versioned-gen",
	Short: "Generate versioned Go types and conversions from a schema declaration",
	Long: `versioned-gen derives, from a single annotated schema declaration, one
concrete Go type per declared version plus conversion functions that
transform a value of one version into the next.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}

		log = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).Level(level).With().Timestamp().Logger()
	},
}

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate versioned definitions and conversions",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPlan()
		if err != nil {
			return err
		}

		generator := gen.NewGenerator(gen.GeneratorConfig{
			PackageName:      packageName,
			OutputDir:        outputDir,
			GenerateComments: !noComments,
		})

		files, err := generator.Generate(p)
		if err != nil {
			return err
		}

		if err := generator.Write(files); err != nil {
			return err
		}

		for _, f := range files {
			log.Info().Str("file", f.Filename).Int("bytes", len(f.Content)).Msg("generated")
		}

		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a schema declaration without generating code",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPlan()
		if err != nil {
			return err
		}

		reportDiagnostics(&p.Diagnostics)

		if p.Diagnostics.HasErrors() {
			return fmt.Errorf("%d error(s) found", len(p.Diagnostics.Errors))
		}

		log.Info().Int("containers", len(p.Containers)).Msg("schema is valid")

		return nil
	},
}

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Print the resolved item set for every version of every container",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPlan()
		if err != nil {
			return err
		}

		reportDiagnostics(&p.Diagnostics)

		for _, cp := range p.Containers {
			fmt.Printf("%s (%s)\n", cp.Container.Name, cp.Container.Kind)

			for _, view := range cp.Container.Views {
				marker := ""
				if view.Version.Deprecated {
					marker = " (deprecated)"
				}

				fmt.Printf("  %s%s\n", view.Version, marker)

				for _, item := range view.Items {
					if item.Name != item.Identity {
						fmt.Printf("    %s %s (was %s)\n", item.Kind, item.Name, item.Identity)
						continue
					}

					fmt.Printf("    %s %s\n", item.Kind, item.Name)
				}
			}
		}

		if p.Diagnostics.HasErrors() {
			return fmt.Errorf("%d error(s) found", len(p.Diagnostics.Errors))
		}

		return nil
	},
}

// buildPlan loads the schema file, runs syntactic validation, and builds
// the generation plan.
func buildPlan() (*plan.GenerationPlan, error) {
	log.Debug().Str("schema", schemaPath).Msg("loading schema")

	sf, err := attrs.LoadFile(schemaPath)
	if err != nil {
		return nil, err
	}

	if diags := attrs.Validate(sf); diags.HasErrors() {
		reportDiagnostics(diags)
		return nil, fmt.Errorf("schema file is malformed: %d error(s)", len(diags.Errors))
	}

	return plan.Build(sf.Containers)
}

func reportDiagnostics(diags *diagnostic.Diagnostics) {
	for _, d := range diags.Errors {
		log.Error().Msg(d.String())
	}

	for _, d := range diags.Warnings {
		log.Warn().Msg(d.String())
	}

	for _, d := range diags.Infos {
		log.Debug().Msg(d.String())
	}
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&schemaPath, "file", "f", "schema.yaml", "schema declaration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	genCmd.Flags().StringVarP(&outputDir, "output", "o", "./generated", "output directory")
	genCmd.Flags().StringVarP(&packageName, "package", "p", "schema", "package name for generated files")
	genCmd.Flags().BoolVar(&noComments, "no-comments", false, "omit explanatory comments in conversion bodies")

	rootCmd.AddCommand(genCmd, checkCmd, versionsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
