package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/transport/problem"
)

const exampleYAML = `name: example
facilities: [{name: F1, capacity: 20}, {name: F2, capacity: 30}]
warehouses: [{name: W1, demand: 25}, {name: W2, demand: 25}]
costs: [[4, 6], [8, 2]]
`

const unbalancedYAML = `name: skewed
facilities: [{name: F1, capacity: 30}, {name: F2, capacity: 20}]
warehouses: [{name: W1, demand: 25}, {name: W2, demand: 20}]
costs: [[1, 2], [3, 4]]
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	names := make([]string, 0, 3)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"solve", "check", "batch"})
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
}

func TestSolve_Text(t *testing.T) {
	out, err := run(t, "solve", "-f", writeFile(t, "p.yaml", exampleYAML))
	require.NoError(t, err)
	assert.Contains(t, out, "Problem: example")
	assert.Contains(t, out, "Total minimum cost: 170")
}

func TestSolve_JSONWithFlags(t *testing.T) {
	out, err := run(t, "solve", "-f", writeFile(t, "p.yaml", exampleYAML),
		"--format", "json", "--init", "vogel", "--pricing", "first-negative")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "optimal", got["status"])
	assert.Equal(t, 170.0, got["total_cost"])
	stats := got["stats"].(map[string]any)
	assert.Equal(t, "vogel", stats["init_method"])
}

func TestSolve_FormatFromEnv(t *testing.T) {
	t.Setenv("TRANSPORT_FORMAT", "yaml")
	out, err := run(t, "solve", "-f", writeFile(t, "p.yaml", exampleYAML))
	require.NoError(t, err)
	assert.Contains(t, out, "status: optimal")
	assert.Contains(t, out, "total_cost: 170")
}

func TestSolve_ConfigFile(t *testing.T) {
	cfg := writeFile(t, "settings.toml", "format = \"json\"\ninit = \"northwest\"\n")
	out, err := run(t, "--config", cfg, "solve", "-f", writeFile(t, "p.yaml", exampleYAML))
	require.NoError(t, err)
	assert.Contains(t, out, `"init_method": "northwest-corner"`)
}

func TestSolve_Unbalanced(t *testing.T) {
	out, err := run(t, "solve", "-f", writeFile(t, "p.yaml", unbalancedYAML))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errNotOptimal))
	assert.Contains(t, out, "Error: supply/demand mismatch: total supply 50 does not match total demand 45")
}

func TestSolve_BadSettings(t *testing.T) {
	path := writeFile(t, "p.yaml", exampleYAML)

	_, err := run(t, "solve", "-f", path, "--init", "random")
	assert.ErrorContains(t, err, "unknown init method")

	_, err = run(t, "solve", "-f", path, "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, "solve")
	assert.ErrorContains(t, err, `required flag(s) "file" not set`)
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check", "-f", writeFile(t, "p.yaml", exampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "example: ok (2 facilities, 2 warehouses, 50 units)\n", out)

	_, err = run(t, "check", "-f", writeFile(t, "q.yaml", unbalancedYAML))
	assert.True(t, errors.Is(err, problem.ErrSupplyDemandMismatch))
}

func TestCheckAndSolve_AgreeOnBalanceTolerance(t *testing.T) {
	const body = `name: loose
facilities: [{name: F1, capacity: 10}]
warehouses: [{name: W1, demand: 10.001}]
costs: [[1]]
balance_tolerance: 0.001
`
	path := writeFile(t, "loose.yaml", body)

	out, err := run(t, "check", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "loose: ok")

	out, err = run(t, "solve", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Optimal solution found.")
	assert.NotContains(t, out, "mismatch")
}

func TestBatch_TextAndMetrics(t *testing.T) {
	good := writeFile(t, "good.yaml", exampleYAML)
	bad := writeFile(t, "bad.yaml", unbalancedYAML)

	out, err := run(t, "batch", good, bad, "--workers", "2", "--metrics")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errNotOptimal))
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "example")
	assert.Contains(t, out, "skewed")
	assert.Contains(t, out, "infeasible")
	assert.Contains(t, out, `transport_solves_total{init="least-cost",status="optimal"} 1`)
}

func TestBatch_JSON(t *testing.T) {
	good := writeFile(t, "good.yaml", exampleYAML)
	out, err := run(t, "batch", good, good, "--format", "json")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0]["id"], got[1]["id"])
	assert.Equal(t, 170.0, got[1]["total_cost"])
}

func TestBatch_RequiresFiles(t *testing.T) {
	_, err := run(t, "batch")
	assert.ErrorContains(t, err, "requires at least 1 arg")
}
