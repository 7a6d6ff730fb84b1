package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/transport/problem"
	"github.com/katalvlaran/transport/report"
	"github.com/katalvlaran/transport/transport"
)

func solved(t *testing.T, caps, dems []float64, costs [][]float64) (*problem.Spec, transport.Outcome) {
	t.Helper()
	fs := []problem.Facility{{Name: "Plant A", Capacity: caps[0]}, {Name: "Plant B", Capacity: caps[1]}}
	ws := []problem.Warehouse{{Name: "North", Demand: dems[0]}, {Name: "South", Demand: dems[1]}}
	spec, err := problem.New(fs, ws, costs)
	require.NoError(t, err)
	return spec, transport.Solve(context.Background(), spec, transport.DefaultOptions())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want report.Format
	}{
		{"", report.Text},
		{"pretty", report.Text},
		{"TEXT", report.Text},
		{"table", report.Table},
		{"json", report.JSON},
		{" yml ", report.YAML},
	}
	for _, tt := range tests {
		got, err := report.ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := report.ParseFormat("xml")
	assert.True(t, errors.Is(err, report.ErrUnknownFormat))
	assert.Contains(t, err.Error(), "text|table|json|yaml")
}

func TestBuild_Optimal(t *testing.T) {
	spec, out := solved(t, []float64{20, 30}, []float64{25, 25}, [][]float64{{4, 6}, {8, 2}})
	r, err := report.Build("demo", spec, out)
	require.NoError(t, err)

	assert.Equal(t, "optimal", r.Status)
	assert.Empty(t, r.Reason)
	require.NotNil(t, r.TotalCost)
	assert.Equal(t, 170.0, *r.TotalCost)
	assert.Equal(t, [][]float64{{20, 0}, {5, 25}}, r.Plan)
	assert.Equal(t, []report.Shipment{
		{From: "Plant A", To: "North", Quantity: 20, UnitCost: 4, Cost: 80},
		{From: "Plant B", To: "North", Quantity: 5, UnitCost: 8, Cost: 40},
		{From: "Plant B", To: "South", Quantity: 25, UnitCost: 2, Cost: 50},
	}, r.Shipments)
	require.NotNil(t, r.Stats)
	assert.Equal(t, "least-cost", r.Stats.InitMethod)
}

func TestBuild_OptimalNeedsSpec(t *testing.T) {
	_, out := solved(t, []float64{20, 30}, []float64{25, 25}, [][]float64{{4, 6}, {8, 2}})
	_, err := report.Build("", nil, out)
	assert.True(t, errors.Is(err, report.ErrNilSpec))
}

func TestWrite_Text(t *testing.T) {
	spec, out := solved(t, []float64{20, 30}, []float64{25, 25}, [][]float64{{4, 6}, {8, 2}})
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, spec, out, report.Text))

	s := buf.String()
	assert.Contains(t, s, "Optimal solution found.")
	assert.Contains(t, s, "North")
	assert.Contains(t, s, "Plant B")
	assert.Contains(t, s, "Total minimum cost: 170\n")
}

func TestWrite_TextUnbalanced(t *testing.T) {
	spec, out := solved(t, []float64{30, 20}, []float64{25, 20}, [][]float64{{1, 2}, {3, 4}})
	var buf bytes.Buffer
	require.NoError(t, report.WriteNamed(&buf, "skewed", spec, out, report.Text))

	assert.Equal(t,
		"Problem: skewed\n"+
			"Status: infeasible\n"+
			"Error: supply/demand mismatch: total supply 50 does not match total demand 45\n",
		buf.String())
}

func TestWrite_Table(t *testing.T) {
	spec, out := solved(t, []float64{20, 30}, []float64{25, 25}, [][]float64{{4, 6}, {8, 2}})
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, spec, out, report.Table))

	s := buf.String()
	assert.Contains(t, s, "South")
	assert.Contains(t, s, "Plant A")
	assert.Contains(t, s, "25")
	assert.Contains(t, s, "Total minimum cost: 170")
}

func TestWrite_TableFailure(t *testing.T) {
	out := transport.Solve(context.Background(), nil, transport.DefaultOptions())
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, nil, out, report.Table))
	assert.Contains(t, buf.String(), "failed")
	assert.Contains(t, buf.String(), "nil problem spec")
}

var errShortWrite = errors.New("short write")

// shortWriter accepts left bytes, then fails every write.
type shortWriter struct{ left int }

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.left {
		n := w.left
		w.left = 0
		return n, errShortWrite
	}
	w.left -= len(p)
	return len(p), nil
}

func TestWrite_PropagatesWriteErrors(t *testing.T) {
	okSpec, okOut := solved(t, []float64{20, 30}, []float64{25, 25}, [][]float64{{4, 6}, {8, 2}})
	badSpec, badOut := solved(t, []float64{30, 20}, []float64{25, 20}, [][]float64{{1, 2}, {3, 4}})
	cases := []struct {
		name string
		spec *problem.Spec
		out  transport.Outcome
	}{
		{"optimal", okSpec, okOut},
		{"infeasible", badSpec, badOut},
	}
	for _, tc := range cases {
		for _, f := range []report.Format{report.Text, report.Table} {
			var full bytes.Buffer
			require.NoError(t, report.WriteNamed(&full, tc.name, tc.spec, tc.out, f))
			for _, cut := range []int{0, full.Len() / 2, full.Len() - 1} {
				err := report.WriteNamed(&shortWriter{left: cut}, tc.name, tc.spec, tc.out, f)
				assert.ErrorIs(t, err, errShortWrite, "%s/%v cut at %d", tc.name, f, cut)
			}
		}
	}
}

func TestWrite_JSON(t *testing.T) {
	spec, out := solved(t, []float64{20, 30}, []float64{25, 25}, [][]float64{{4, 6}, {8, 2}})
	var buf bytes.Buffer
	require.NoError(t, report.WriteNamed(&buf, "demo", spec, out, report.JSON))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "demo", got["name"])
	assert.Equal(t, "optimal", got["status"])
	assert.Equal(t, 170.0, got["total_cost"])
	assert.NotContains(t, got, "reason")
	assert.Len(t, got["shipments"], 3)
}

func TestWrite_YAMLInfeasible(t *testing.T) {
	spec, out := solved(t, []float64{30, 20}, []float64{25, 20}, [][]float64{{1, 2}, {3, 4}})
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, spec, out, report.YAML))

	var got report.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "infeasible", got.Status)
	assert.Equal(t, out.Reason, got.Reason)
	assert.Nil(t, got.TotalCost)
	assert.Nil(t, got.Plan)
	assert.Equal(t, []string{"Plant A", "Plant B"}, got.Facilities)
}

func TestWrite_UnknownFormat(t *testing.T) {
	spec, out := solved(t, []float64{20, 30}, []float64{25, 25}, [][]float64{{4, 6}, {8, 2}})
	err := report.Write(&bytes.Buffer{}, spec, out, report.Format(99))
	assert.True(t, errors.Is(err, report.ErrUnknownFormat))
}
