package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexandergillon/metromap/pkg/config"
	"github.com/alexandergillon/metromap/pkg/errors"
	"github.com/alexandergillon/metromap/pkg/naptan"
	"github.com/alexandergillon/metromap/pkg/parser"
	"github.com/alexandergillon/metromap/pkg/render/dot"
)

// newPreviewCmd creates the preview command, which renders the parsed
// network as a diagram for inspection before solving.
func newPreviewCmd() *cobra.Command {
	var (
		inputPath  string
		naptanPath string
		outputPath string
		configPath string
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the parsed network as a diagram",
		Long: `Preview parses and validates the network description and renders the
resulting model with Graphviz, so authoring mistakes show up before the
solver runs. The output format follows the file extension: .svg, .png,
or .dot for the raw graph source.`,
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

			provider, err := naptan.NewReader(naptanPath, naptan.LondonOverrides)
			if err != nil {
				printError("Failed to load %s: %s", naptanPath, errors.UserMessage(err))
				return err
			}

			input, err := os.Open(inputPath)
			if err != nil {
				printError("Failed to open %s: %s", inputPath, err)
				return err
			}
			defer input.Close()

			prog := newProgress(logger)
			net, _, err := parser.New(provider, cfg.LinePrefixLength).Parse(input)
			if err != nil {
				printError("Parse failed: %s", errors.UserMessage(err))
				return err
			}
			if err := net.Validate(); err != nil {
				printError("Validation failed: %s", errors.UserMessage(err))
				return err
			}
			prog.done("network parsed")

			graph := dot.ToDOT(net, dot.Options{Colors: cfg.Colors, Detailed: detailed})

			var data []byte
			switch ext := strings.ToLower(filepath.Ext(outputPath)); ext {
			case ".dot":
				data = []byte(graph)
			case ".svg":
				data, err = dot.RenderSVG(ctx, graph)
			case ".png":
				data, err = dot.RenderPNG(ctx, graph)
			default:
				err = errors.New(errors.ErrCodeConfig, "unsupported output format %q, want .svg, .png, or .dot", ext)
			}
			if err != nil {
				printError("Render failed: %s", errors.UserMessage(err))
				return err
			}

			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				printError("Failed to write %s: %s", outputPath, err)
				return err
			}

			printSuccess("Wrote %s", outputPath)
			printDetail("lines: %d", len(net.Lines()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "network description file (required)")
	cmd.Flags().StringVarP(&naptanPath, "naptan", "n", "naptan.json", "station identifier mapping")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "preview.svg", "diagram output (.svg, .png, or .dot)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include identifiers and coordinates in node labels")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
