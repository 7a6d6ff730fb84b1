// Package report renders a transport.Outcome for people (text, table) and
// for programs (JSON, YAML). Numbers are printed exactly as the solver
// computed them; only their textual form is chosen here.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/transport/problem"
	"github.com/katalvlaran/transport/transport"
)

var (
	// ErrUnknownFormat is returned by ParseFormat and Write for an unsupported format.
	ErrUnknownFormat = errors.New("report: unknown format")

	// ErrNilSpec is returned when an Optimal outcome is rendered without its spec.
	ErrNilSpec = errors.New("report: nil problem spec")
)

// Format selects a rendering.
type Format int

const (
	// Text is a plain aligned listing (the default).
	Text Format = iota
	// Table draws the plan with borders.
	Table
	// JSON emits the Report document, indented.
	JSON
	// YAML emits the Report document as YAML.
	YAML
)

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case Table:
		return "table"
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat accepts text (or pretty, or empty), table, json and yaml (or yml).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "pretty":
		return Text, nil
	case "table":
		return Table, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return Text, fmt.Errorf("%w %q (expected text|table|json|yaml)", ErrUnknownFormat, s)
	}
}

// Shipment is one non-zero plan entry.
type Shipment struct {
	From     string  `json:"from" yaml:"from"`
	To       string  `json:"to" yaml:"to"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
	UnitCost float64 `json:"unit_cost" yaml:"unit_cost"`
	Cost     float64 `json:"cost" yaml:"cost"`
}

// Stats mirrors transport.Stats with stable field names.
type Stats struct {
	InitMethod       string  `json:"init_method" yaml:"init_method"`
	InitialCost      float64 `json:"initial_cost" yaml:"initial_cost"`
	Iterations       int     `json:"iterations" yaml:"iterations"`
	DegeneratePivots int     `json:"degenerate_pivots" yaml:"degenerate_pivots"`
	ZeroBasics       int     `json:"zero_basics" yaml:"zero_basics"`
}

// Report is the structured document shared by the JSON and YAML renderings.
// Plan, Shipments and TotalCost are present only for an optimal outcome;
// Reason only for the others.
type Report struct {
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	Status     string      `json:"status" yaml:"status"`
	Reason     string      `json:"reason,omitempty" yaml:"reason,omitempty"`
	Facilities []string    `json:"facilities,omitempty" yaml:"facilities,omitempty"`
	Warehouses []string    `json:"warehouses,omitempty" yaml:"warehouses,omitempty"`
	Plan       [][]float64 `json:"plan,omitempty" yaml:"plan,omitempty"`
	Shipments  []Shipment  `json:"shipments,omitempty" yaml:"shipments,omitempty"`
	TotalCost  *float64    `json:"total_cost,omitempty" yaml:"total_cost,omitempty"`
	Stats      *Stats      `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// Build assembles the Report for out. spec may be nil for a non-optimal
// outcome.
func Build(name string, spec *problem.Spec, out transport.Outcome) (Report, error) {
	r := Report{Name: name, Status: out.Status.String()}
	if spec != nil {
		r.Facilities = spec.FacilityNames()
		r.Warehouses = spec.WarehouseNames()
	}
	if out.Status != transport.Optimal || out.Plan == nil {
		r.Reason = out.Reason
		return r, nil
	}
	if spec == nil {
		return Report{}, ErrNilSpec
	}

	r.Plan = out.Plan.Rows()
	for i, row := range r.Plan {
		for j, q := range row {
			if q == 0 {
				continue
			}
			c, err := spec.Cost(i, j)
			if err != nil {
				return Report{}, fmt.Errorf("report: plan does not match spec: %w", err)
			}
			r.Shipments = append(r.Shipments, Shipment{
				From:     r.Facilities[i],
				To:       r.Warehouses[j],
				Quantity: q,
				UnitCost: c,
				Cost:     c * q,
			})
		}
	}
	total := out.TotalCost
	r.TotalCost = &total
	r.Stats = &Stats{
		InitMethod:       out.Stats.InitMethod.String(),
		InitialCost:      out.Stats.InitialCost,
		Iterations:       out.Stats.Iterations,
		DegeneratePivots: out.Stats.DegeneratePivots,
		ZeroBasics:       out.Stats.ZeroBasics,
	}

	return r, nil
}

// Write renders out in format f.
func Write(w io.Writer, spec *problem.Spec, out transport.Outcome, f Format) error {
	return WriteNamed(w, "", spec, out, f)
}

// WriteNamed is Write with a problem name shown in the header.
func WriteNamed(w io.Writer, name string, spec *problem.Spec, out transport.Outcome, f Format) error {
	r, err := Build(name, spec, out)
	if err != nil {
		return err
	}

	switch f {
	case Text:
		return writeText(w, r)
	case Table:
		return writeTable(w, r)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w %v", ErrUnknownFormat, f)
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeHeader(w io.Writer, r Report) error {
	if r.Name == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, "Problem: %s\n", r.Name)

	return err
}

func writeText(w io.Writer, r Report) error {
	if err := writeHeader(w, r); err != nil {
		return err
	}
	if r.TotalCost == nil {
		_, err := fmt.Fprintf(w, "Status: %s\nError: %s\n", r.Status, r.Reason)
		return err
	}

	if _, err := fmt.Fprintln(w, "Optimal solution found.\nOptimal transport plan:"); err != nil {
		return err
	}
	// tabwriter buffers until Flush, which reports the first write error
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for _, name := range r.Warehouses {
		fmt.Fprintf(tw, "%s\t", name)
	}
	fmt.Fprintln(tw)
	for i, row := range r.Plan {
		fmt.Fprintf(tw, "%s\t", r.Facilities[i])
		for _, q := range row {
			fmt.Fprintf(tw, "%s\t", num(q))
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total minimum cost: %s\n", num(*r.TotalCost))

	return err
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	nameStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func writeTable(w io.Writer, r Report) error {
	if err := writeHeader(w, r); err != nil {
		return err
	}
	if r.TotalCost == nil {
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers("status", "reason").
			Row(r.Status, r.Reason).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return nameStyle
			})
		_, err := fmt.Fprintln(w, t.String())
		return err
	}

	headers := append([]string{""}, r.Warehouses...)
	rows := make([][]string, len(r.Plan))
	for i, row := range r.Plan {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, r.Facilities[i])
		for _, q := range row {
			cells = append(cells, num(q))
		}
		rows[i] = cells
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return nameStyle
			default:
				return cellStyle
			}
		})
	if _, err := fmt.Fprintln(w, t.String()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total minimum cost: %s\n", num(*r.TotalCost))

	return err
}
