// Package problemfile reads transportation problems from YAML, TOML or JSON
// documents that share one schema:
//
//	name: example
//	facilities:
//	  - {name: F1, capacity: 20}
//	  - {name: F2, capacity: 30}
//	warehouses:
//	  - {name: W1, demand: 25}
//	  - {name: W2, demand: 25}
//	costs:
//	  - [4, 6]
//	  - [8, 2]
//	balance_tolerance: 1e-9   # optional
//
// Unknown keys are rejected. The decoded document is handed to problem.New,
// so every structural rule of a Spec applies; balance is not checked here.
package problemfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/transport/problem"
)

// Format is the document encoding.
type Format int

const (
	YAML Format = iota
	TOML
	JSON
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	case JSON:
		return "json"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	default:
		return 0, fmt.Errorf("%w: extension %q (expected .yaml, .yml, .toml or .json)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Problem is a decoded problem file.
type Problem struct {
	Name string
	Spec *problem.Spec
}

type document struct {
	Name             string      `yaml:"name" toml:"name" json:"name"`
	Facilities       []facility  `yaml:"facilities" toml:"facilities" json:"facilities"`
	Warehouses       []warehouse `yaml:"warehouses" toml:"warehouses" json:"warehouses"`
	Costs            [][]float64 `yaml:"costs" toml:"costs" json:"costs"`
	BalanceTolerance *float64    `yaml:"balance_tolerance" toml:"balance_tolerance" json:"balance_tolerance"`
}

type facility struct {
	Name     string   `yaml:"name" toml:"name" json:"name"`
	Capacity *float64 `yaml:"capacity" toml:"capacity" json:"capacity"`
}

type warehouse struct {
	Name   string   `yaml:"name" toml:"name" json:"name"`
	Demand *float64 `yaml:"demand" toml:"demand" json:"demand"`
}

// Load reads and decodes the file at path, choosing the format from its
// extension. A problem without a name takes the file's base name.
func Load(path string) (*Problem, error) {
	const op = "problemfile.load"

	f, err := FormatFromPath(path)
	if err != nil {
		return nil, &LoadError{Op: op, Kind: KindUnsupported, Path: path, Err: err}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Op: op, Kind: KindNotFound, Path: path, Err: err}
	}

	p, err := decode(op, path, bytes.NewReader(b), f)
	if err != nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return p, nil
}

// Decode reads one document in format f from r.
func Decode(r io.Reader, f Format) (*Problem, error) {
	return decode("problemfile.decode", "", r, f)
}

func decode(op, path string, r io.Reader, f Format) (*Problem, error) {
	var doc document
	var err error
	switch f {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	case TOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	default:
		return nil, &LoadError{Op: op, Kind: KindUnsupported, Path: path, Err: fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)}
	}
	if err == io.EOF {
		err = fmt.Errorf("empty %s document", f)
	}
	if err != nil {
		return nil, &LoadError{Op: op, Kind: KindDecode, Path: path, Err: err}
	}

	spec, err := doc.toSpec()
	if err != nil {
		return nil, &LoadError{Op: op, Kind: KindInvalid, Path: path, Err: err}
	}

	return &Problem{Name: doc.Name, Spec: spec}, nil
}

func (d document) toSpec() (*problem.Spec, error) {
	fs := make([]problem.Facility, len(d.Facilities))
	for i, f := range d.Facilities {
		if f.Capacity == nil {
			return nil, fmt.Errorf("facility %d (%q): capacity is required", i, f.Name)
		}
		fs[i] = problem.Facility{Name: f.Name, Capacity: *f.Capacity}
	}
	ws := make([]problem.Warehouse, len(d.Warehouses))
	for j, w := range d.Warehouses {
		if w.Demand == nil {
			return nil, fmt.Errorf("warehouse %d (%q): demand is required", j, w.Name)
		}
		ws[j] = problem.Warehouse{Name: w.Name, Demand: *w.Demand}
	}

	var opts []problem.Option
	if d.BalanceTolerance != nil {
		tol := *d.BalanceTolerance
		if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
			return nil, fmt.Errorf("balance_tolerance %g must be finite and non-negative", tol)
		}
		opts = append(opts, problem.WithBalanceTolerance(tol))
	}

	return problem.New(fs, ws, d.Costs, opts...)
}
