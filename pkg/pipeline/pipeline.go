// Package pipeline wires the map-generation stages together:
// parse → validate → compile.
//
// The whole pipeline is strictly single-threaded and single-pass. The
// network model is exclusively owned and mutated by the parser during
// parsing and treated as read-only afterwards. There is no retry and no
// partial recovery: the run either completes or aborts at the first
// violated invariant. Output files are opened before compilation begins
// and released on every exit path.
package pipeline

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/alexandergillon/metromap/pkg/ampl"
	"github.com/alexandergillon/metromap/pkg/config"
	"github.com/alexandergillon/metromap/pkg/errors"
	"github.com/alexandergillon/metromap/pkg/naptan"
	"github.com/alexandergillon/metromap/pkg/network"
	"github.com/alexandergillon/metromap/pkg/parser"
)

// Options configures a map-generation run.
type Options struct {
	// InputPath is the network DSL input file.
	InputPath string

	// NaptanPath is the naptan.json identifier mapping.
	NaptanPath string

	// ModelPath is where the compiled AMPL model is written.
	ModelPath string

	// DataPath is where the AMPL data file is written.
	DataPath string

	// TemplatePath optionally overrides the embedded base model template.
	TemplatePath string

	// Config supplies the prefix length and the scale parameters written
	// to the data file.
	Config config.Config

	// Logger receives stage progress. Defaults to log.Default().
	Logger *log.Logger
}

// Stats contains timing and size information for a run.
type Stats struct {
	LineCount       int
	StationCount    int
	ConstraintCount int
	ParseTime       time.Duration
	CompileTime     time.Duration
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs.
	RunID string

	// Network is the parsed and validated network model.
	Network *network.Network

	// Stats contains timing and size information.
	Stats Stats
}

// Runner executes the map-generation pipeline with injected collaborators.
type Runner struct {
	provider parser.IdentifierProvider
	driver   *ampl.Driver
	cfg      config.Config
	logger   *log.Logger
}

// NewRunner creates a Runner. driver may be nil to use the embedded base
// model template; logger may be nil to use the default logger.
func NewRunner(provider parser.IdentifierProvider, driver *ampl.Driver, cfg config.Config, logger *log.Logger) *Runner {
	if driver == nil {
		driver = ampl.NewDriver()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{provider: provider, driver: driver, cfg: cfg, logger: logger}
}

// Execute parses the network DSL from input, validates the model, and
// compiles the constraint model to model and the accompanying data file
// to data.
func (r *Runner) Execute(ctx context.Context, input io.Reader, model, data io.Writer) (*Result, error) {
	runID := uuid.NewString()
	logger := r.logger.With("run_id", runID)

	start := time.Now()
	net, constraints, err := parser.New(r.provider, r.cfg.LinePrefixLength).Parse(input)
	if err != nil {
		return nil, err
	}
	parseTime := time.Since(start)

	stats := Stats{
		LineCount:       len(net.Lines()),
		ConstraintCount: len(constraints),
		ParseTime:       parseTime,
	}
	for _, l := range net.Lines() {
		stats.StationCount += len(l.Stations())
	}
	logger.Info("parsed network",
		"lines", stats.LineCount,
		"stations", stats.StationCount,
		"constraints", stats.ConstraintCount,
		"elapsed", parseTime.Round(time.Millisecond))

	if err := net.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("network validated")

	start = time.Now()
	if err := r.driver.WriteModel(model, net, constraints); err != nil {
		return nil, err
	}
	if err := r.driver.WriteData(data, net, r.cfg.ScaleFactor, r.cfg.LineWidth); err != nil {
		return nil, err
	}
	stats.CompileTime = time.Since(start)
	logger.Info("compiled constraints", "elapsed", stats.CompileTime.Round(time.Millisecond))

	return &Result{RunID: runID, Network: net, Stats: stats}, nil
}

// Run executes the pipeline against files: it builds the identifier
// provider from opts.NaptanPath, reads the DSL from opts.InputPath, and
// writes the model and data files to opts.ModelPath and opts.DataPath.
//
// Both output files are created before compilation begins and closed on
// every exit path. If compilation succeeds but a file cannot be closed,
// the close error is surfaced.
func Run(ctx context.Context, opts Options) (*Result, error) {
	provider, err := naptan.NewReader(opts.NaptanPath, naptan.LondonOverrides)
	if err != nil {
		return nil, err
	}

	driver := ampl.NewDriver()
	if opts.TemplatePath != "" {
		template, err := os.ReadFile(opts.TemplatePath)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "reading template %s", opts.TemplatePath)
		}
		driver = ampl.NewDriverWithTemplate(string(template))
	}

	input, err := os.Open(opts.InputPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "opening input %s", opts.InputPath)
	}
	defer input.Close()

	model, err := os.Create(opts.ModelPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "creating output %s", opts.ModelPath)
	}
	data, err := os.Create(opts.DataPath)
	if err != nil {
		_ = model.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "creating output %s", opts.DataPath)
	}

	runner := NewRunner(provider, driver, opts.Config, opts.Logger)
	result, execErr := runner.Execute(ctx, input, model, data)

	if closeErr := model.Close(); execErr == nil && closeErr != nil {
		execErr = errors.Wrap(errors.ErrCodeInternal, closeErr, "closing output %s", opts.ModelPath)
	}
	if closeErr := data.Close(); execErr == nil && closeErr != nil {
		execErr = errors.Wrap(errors.ErrCodeInternal, closeErr, "closing output %s", opts.DataPath)
	}
	if execErr != nil {
		return nil, execErr
	}
	return result, nil
}
