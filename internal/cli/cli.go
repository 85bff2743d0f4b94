package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/noisegridgo/internal/app"
	"github.com/vk/noisegridgo/internal/export"
	"github.com/vk/noisegridgo/internal/sampler"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("noisegridgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
NoiseGridGo - Terrain height and layer weight generation from noise graphs.

Usage:
  noisegridgo [options] [GRAPH_PATH...]

Arguments:
  GRAPH_PATH
    Path to a .hcl or .json graph file, or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	graphFlag := flagSet.String("graph", "", "Path to the graph file or directory.")
	gFlag := flagSet.String("g", "", "Path to the graph file or directory (shorthand).")
	outFlag := flagSet.String("out", app.DefaultOutDir, "Directory the images and manifest are written to.")
	worldFlag := flagSet.Float64("world-size", app.DefaultWorldSize, "Edge of the square world in world units.")
	tileFlag := flagSet.Float64("tile-size", 0, "Edge of one exported tile. 0 exports the world as one tile.")
	resFlag := flagSet.Int("resolution", app.DefaultResolution, "Samples along each tile edge.")
	cacheResFlag := flagSet.Int("cache-resolution", 0, "Grid size for every region cache. 0 keeps each cache node's own.")
	orderFlag := flagSet.String("blend-order", sampler.Descending.String(), "Layer compositing order. Options: 'descending' or 'ascending'.")
	formatFlag := flagSet.String("format", string(export.FormatPNG), "Height image format. Options: 'png' or 'tiff'.")
	seedFlag := flagSet.Int64("seed", 0, "Offset added to every generator seed.")
	workersFlag := flagSet.Int("workers", 0, "Number of concurrent sampling workers. 0 uses every CPU.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Arguments parsed successfully.")

	var paths []string
	switch {
	case *graphFlag != "":
		paths = append(paths, *graphFlag)
	case *gFlag != "":
		paths = append(paths, *gFlag)
	}
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Graph paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No graph path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	order, err := sampler.ParseOrder(*orderFlag)
	if err != nil {
		return nil, false, usageError("invalid blend-order: %v", err)
	}
	format, err := export.ParseFormat(*formatFlag)
	if err != nil {
		return nil, false, usageError("invalid format: %v", err)
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		GraphPaths:      paths,
		OutDir:          *outFlag,
		WorldSize:       *worldFlag,
		TileSize:        *tileFlag,
		Resolution:      *resFlag,
		CacheResolution: *cacheResFlag,
		BlendOrder:      order,
		Format:          format,
		Seed:            *seedFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		WorkerCount:     *workersFlag,
	})
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
