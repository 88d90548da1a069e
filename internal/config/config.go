// Package config parses the rowstream command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacoelho/rowstream/internal/exit"
)

// Input formats accepted by the tool.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

var (
	ErrNoMappingFile = errors.New("json input requires a -mapping file")
	ErrInvalidFormat = errors.New("format must be json or csv")
)

// Config represents the complete configuration for the rowstream tool.
type Config struct {
	MappingFile string
	Format      string
	InputFile   string  // empty means stdin
	OutputFile  string  // empty means stdout
	Rate        float64 // rows per second (0 = unlimited)
	StampRunID  bool
}

// Parse parses command-line arguments into a Config. A non-nil exit
// result means parsing failed and carries the message and exit code to
// terminate with.
func Parse(args []string) (*Config, *exit.Result) {
	cfg := &Config{}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.MappingFile, "mapping", "", "YAML extraction mapping file")
	fs.StringVar(&cfg.Format, "format", FormatJSON, "input format: json or csv")
	fs.StringVar(&cfg.InputFile, "input", "", "input document (default stdin)")
	fs.StringVar(&cfg.OutputFile, "output", "", "output file (default stdout)")
	fs.Float64Var(&cfg.Rate, "rate", 0, "maximum rows per second (0 = unlimited)")
	fs.BoolVar(&cfg.StampRunID, "stamp-run-id", false, "append a run_id column with one UUID per invocation")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, exit.Usagef("%s\n\n%s", err, usage(fs))
	}

	if err := cfg.Validate(); err != nil {
		return nil, exit.Usagef("%s\n\n%s", err, usage(fs))
	}

	return cfg, nil
}

// Validate checks the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatJSON:
		if c.MappingFile == "" {
			return ErrNoMappingFile
		}
	case FormatCSV:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}

	if c.MappingFile != "" {
		if _, err := os.Stat(c.MappingFile); err != nil {
			return fmt.Errorf("mapping file %s not found: %w", c.MappingFile, err)
		}
	}
	if c.InputFile != "" {
		if _, err := os.Stat(c.InputFile); err != nil {
			return fmt.Errorf("input file %s not found: %w", c.InputFile, err)
		}
	}
	if c.Rate < 0 {
		return errors.New("rate must be non-negative")
	}

	return nil
}

func usage(fs *flag.FlagSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "usage: %s [flags]\n", fs.Name())
	fs.SetOutput(&b)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
	return b.String()
}
