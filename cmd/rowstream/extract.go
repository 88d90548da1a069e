package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/jacoelho/rowstream/csvstream"
	"github.com/jacoelho/rowstream/internal/config"
	"github.com/jacoelho/rowstream/internal/exit"
	"github.com/jacoelho/rowstream/internal/mapping"
	"github.com/jacoelho/rowstream/internal/ratelimit"
	"github.com/jacoelho/rowstream/jsonstream"
)

// execute opens the configured input and output and streams the
// extraction, reporting a summary on success.
func execute(ctx context.Context, cfg *config.Config) *exit.Result {
	in := io.Reader(os.Stdin)
	if cfg.InputFile != "" {
		f, err := os.Open(cfg.InputFile)
		if err != nil {
			return exit.Failure(err)
		}
		defer f.Close()
		in = f
	}

	out := io.Writer(os.Stdout)
	if cfg.OutputFile != "" {
		f, err := os.Create(cfg.OutputFile)
		if err != nil {
			return exit.Failure(err)
		}
		defer f.Close()
		out = f
	}

	start := time.Now()
	rows, err := extract(ctx, cfg, in, out)
	if err != nil {
		return exit.Failure(err)
	}

	return exit.Success(fmt.Sprintf("%d rows emitted in %s", rows, time.Since(start).Round(time.Millisecond)))
}

// extracted carries one assembled line together with its headers from
// the converter to the sink, so the output writer can be created
// lazily once the header set is known.
type extracted struct {
	headers []string
	line    []string
}

// extract streams the document in `in` through the configured driver
// and writes CSV lines to out. It returns the number of emitted rows.
func extract(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (int, error) {
	var m *mapping.Mapping
	if cfg.MappingFile != "" {
		loaded, err := mapping.LoadFile(cfg.MappingFile)
		if err != nil {
			return 0, err
		}
		m = loaded
	}

	limiter := ratelimit.New(cfg.Rate)

	var runID string
	if cfg.StampRunID {
		runID = uuid.NewString()
	}

	var writer *csvstream.Writer
	rows := 0
	sink := func(e extracted) error {
		if writer == nil {
			headers := e.headers
			if runID != "" {
				headers = append(slices.Clone(headers), "run_id")
			}
			created, err := csvstream.NewWriter(out, headers)
			if err != nil {
				return err
			}
			writer = created
		}

		line := e.line
		if runID != "" {
			line = append(slices.Clone(line), runID)
		}

		if err := limiter.Wait(ctx); err != nil {
			return err
		}

		rows++
		return writer.Write(line)
	}

	var err error
	switch cfg.Format {
	case config.FormatJSON:
		convert := func(_ any, headers, line []string) (extracted, bool) {
			return extracted{headers: headers, line: line}, true
		}
		err = jsonstream.Parse(ctx, in, m.Base, m.Fields, convert, sink, m.JSONOptions()...)
	case config.FormatCSV:
		convert := func(headers, line []string) (extracted, bool) {
			return extracted{headers: headers, line: line}, true
		}
		var opts []csvstream.Option
		if m != nil {
			opts = m.CSVOptions()
		}
		err = csvstream.Parse(in, convert, sink, opts...)
	}
	if err != nil {
		return rows, err
	}

	if writer != nil {
		if err := writer.Flush(); err != nil {
			return rows, err
		}
	}
	return rows, nil
}
