// Package mapping loads the declarative YAML extraction mapping the
// rowstream tool is driven by: a base pointer, named field pointers
// with optional defaults, and the output header order.
package mapping

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/rowstream/csvstream"
	"github.com/jacoelho/rowstream/jsonstream"
	"github.com/jacoelho/rowstream/pointer"
)

// ErrMapping is the sentinel error for all mapping file failures.
var ErrMapping = errors.New("mapping: invalid mapping file")

// fileYAML mirrors the on-disk mapping document.
//
//	base: /base
//	fields:
//	  - name: homePhone
//	    path: /phone/0/home
//	    default: "5551234"
//	  - name: note            # declared but unmapped
//	headers: [name, homePhone]
//
// For CSV input the json-specific keys are ignored and
// substitute_headers, header_lines, and defaults apply instead.
type fileYAML struct {
	Base    string      `yaml:"base,omitempty"`
	Fields  []fieldYAML `yaml:"fields,omitempty"`
	Headers []string    `yaml:"headers,omitempty"`

	SubstituteHeaders []string `yaml:"substitute_headers,omitempty"`
	HeaderLines       *int     `yaml:"header_lines,omitempty"`
	Defaults          []string `yaml:"defaults,omitempty"`
}

type fieldYAML struct {
	Name    string `yaml:"name"`
	Path    string `yaml:"path,omitempty"`
	Default string `yaml:"default,omitempty"`
}

// Mapping is a compiled extraction mapping.
type Mapping struct {
	Base     *pointer.Pointer
	Fields   jsonstream.FieldMap
	Headers  []string
	Defaults map[string]string

	SubstituteHeaders  []string
	HeaderLines        int // csvstream.DefaultHeaderLines unless set
	PositionalDefaults []string
}

// Load decodes and compiles a mapping document.
func Load(r io.Reader) (*Mapping, error) {
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc fileYAML
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMapping, err)
	}

	return compile(&doc)
}

// LoadFile reads and compiles the mapping document at path.
func LoadFile(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

func compile(doc *fileYAML) (*Mapping, error) {
	m := &Mapping{
		Fields:             make(jsonstream.FieldMap, len(doc.Fields)),
		Headers:            doc.Headers,
		Defaults:           make(map[string]string),
		SubstituteHeaders:  doc.SubstituteHeaders,
		HeaderLines:        csvstream.DefaultHeaderLines,
		PositionalDefaults: doc.Defaults,
	}

	base, err := pointer.Compile(doc.Base)
	if err != nil {
		return nil, fmt.Errorf("%w: base: %v", ErrMapping, err)
	}
	m.Base = base

	if doc.HeaderLines != nil {
		if *doc.HeaderLines < 0 {
			return nil, fmt.Errorf("%w: header_lines must be non-negative", ErrMapping)
		}
		m.HeaderLines = *doc.HeaderLines
	}

	for _, field := range doc.Fields {
		if field.Name == "" {
			return nil, fmt.Errorf("%w: field without a name", ErrMapping)
		}
		if _, ok := m.Fields[field.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrMapping, field.Name)
		}

		var ptr *pointer.Pointer
		if field.Path != "" {
			ptr, err = pointer.Compile(field.Path)
			if err != nil {
				return nil, fmt.Errorf("%w: field %q: %v", ErrMapping, field.Name, err)
			}
		}
		m.Fields[field.Name] = ptr

		if field.Default != "" {
			m.Defaults[field.Name] = field.Default
		}
	}

	return m, nil
}

// JSONOptions translates the mapping into jsonstream options.
func (m *Mapping) JSONOptions() []jsonstream.Option {
	var opts []jsonstream.Option
	if m.Headers != nil {
		opts = append(opts, jsonstream.WithOutputHeaders(m.Headers))
	}
	if len(m.Defaults) > 0 {
		opts = append(opts, jsonstream.WithDefaultValues(m.Defaults))
	}
	return opts
}

// CSVOptions translates the mapping into csvstream options.
func (m *Mapping) CSVOptions() []csvstream.Option {
	var opts []csvstream.Option
	if m.SubstituteHeaders != nil {
		opts = append(opts, csvstream.WithSubstituteHeaders(m.SubstituteHeaders))
	}
	if m.HeaderLines != csvstream.DefaultHeaderLines {
		opts = append(opts, csvstream.WithHeaderLines(m.HeaderLines))
	}
	if len(m.PositionalDefaults) > 0 {
		opts = append(opts, csvstream.WithDefaultValues(m.PositionalDefaults))
	}
	return opts
}
