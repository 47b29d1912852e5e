package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpgo/networth-planner/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	for _, key := range []string{"PLANNER_LOG_LEVEL", "PLANNER_OUTPUT_DIR", "PLANNER_TRIALS", "PLANNER_SEED", "PLANNER_CONCURRENCY"} {
		t.Setenv(key, "")
	}
	cmd := cli.NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute(), stderr.String())
	return stdout.String()
}

func TestCLIScenarioConsole(t *testing.T) {
	out := runCLI(t, "scenario", "--config", exampleConfig, "--scale", "quarterly")
	assert.Contains(t, out, "2025-Q4")
	assert.Contains(t, out, "$15,700.00")
}

func TestCLIProjectionWorkbook(t *testing.T) {
	dir := t.TempDir()
	out := runCLI(t, "project", "--config", exampleConfig, "--mode", "sampled", "--seed", "8", "--scale", "yearly", "--format", "excel", "--out", dir)

	path := strings.TrimSpace(out)
	assert.Equal(t, ".xlsx", filepath.Ext(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Summary", "Projection"}, f.GetSheetList())

	header, err := f.GetCellValue("Projection", "G1")
	require.NoError(t, err)
	assert.Equal(t, "Index Funds", header)
	last, err := f.GetCellValue("Projection", "A12")
	require.NoError(t, err)
	assert.Equal(t, "2035", last)
}

func TestCLIExampleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated.yaml")
	runCLI(t, "example", path)
	_, err := os.Stat(path)
	require.NoError(t, err)

	out := runCLI(t, "scenario", "--config", path, "--format", "json", "--out", filepath.Dir(path))
	data, err := os.ReadFile(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Scenario: First Year Budget"`)
}
