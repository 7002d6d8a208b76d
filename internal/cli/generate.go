package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexandergillon/metromap/pkg/config"
	"github.com/alexandergillon/metromap/pkg/errors"
	"github.com/alexandergillon/metromap/pkg/pipeline"
)

// newGenerateCmd creates the generate command, which parses the network DSL
// and compiles the AMPL constraint model and its data file.
func newGenerateCmd() *cobra.Command {
	var (
		inputPath    string
		naptanPath   string
		modelPath    string
		dataPath     string
		templatePath string
		configPath   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Parse the network description and compile the layout constraint model",
		Long: `Generate parses the metro network description, validates the network
model, and compiles the alignment declarations into an AMPL model and
data file for the external layout solver.

The station identifier mapping (naptan.json) must exist; run "metromap
fetch" first to produce it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					printError("Failed to load config: %s", errors.UserMessage(err))
					return err
				}
			}

			prog := newProgress(logger)
			result, err := pipeline.Run(ctx, pipeline.Options{
				InputPath:    inputPath,
				NaptanPath:   naptanPath,
				ModelPath:    modelPath,
				DataPath:     dataPath,
				TemplatePath: templatePath,
				Config:       cfg,
				Logger:       logger,
			})
			if err != nil {
				printError("Generation failed: %s", errors.UserMessage(err))
				return err
			}
			prog.done("model compiled")

			printSuccess("Wrote %s and %s", modelPath, dataPath)
			printDetail("lines: %d, stations: %d, constraints: %d",
				result.Stats.LineCount, result.Stats.StationCount, result.Stats.ConstraintCount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "network description file (required)")
	cmd.Flags().StringVarP(&naptanPath, "naptan", "n", "naptan.json", "station identifier mapping")
	cmd.Flags().StringVarP(&modelPath, "output", "o", "model.mod", "compiled AMPL model output")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "model.dat", "AMPL data file output")
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "base model template (default: embedded)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
