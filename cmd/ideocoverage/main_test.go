package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/ideocoverage/internal/duckdb"
)

func testdata(name string) string {
	return filepath.Join("..", "..", "testdata", name)
}

// runCLI runs the command with an empty config file in a temp dir so the
// user's configuration is never read.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, nil, 0o644))
	args = append(args, "--config", cfg)
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func inputArgs(cytoband string) []string {
	return []string{
		"--fasta", testdata("genome.fa"),
		"--bed", testdata("targets.bed"),
		"--cytoband", testdata(cytoband),
	}
}

func TestRun_Render(t *testing.T) {
	out := filepath.Join(t.TempDir(), "coverage.svg")

	code, _, stderr := runCLI(t, append(inputArgs("cytoband_small.txt"), "--output", out)...)
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, stderr, "wrote ideogram")
	assert.Contains(t, stderr, out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "chr17")
}

func TestRun_MissingFlags(t *testing.T) {
	code, _, stderr := runCLI(t, "--fasta", testdata("genome.fa"))
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, "Error: required flag(s)")
	assert.Contains(t, stderr, "--output")
	assert.Contains(t, stderr, "Usage:")
}

func TestRun_UnknownFlag(t *testing.T) {
	code, _, _ := runCLI(t, "--colour", "red")
	assert.Equal(t, ExitUsage, code)
}

func TestRun_MalformedCytoband(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "coverage.svg")

	code, _, stderr := runCLI(t, append(inputArgs("malformed_cytoband.txt"), "--output", out)...)
	assert.Equal(t, ExitError, code)
	assert.True(t, strings.HasPrefix(stderr, "Error: "))
	assert.Contains(t, stderr, "malformed_cytoband.txt")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no output on failure")
}

func TestRun_UnknownExtension(t *testing.T) {
	out := filepath.Join(t.TempDir(), "coverage.gif")
	args := []string{
		"--fasta", filepath.Join(t.TempDir(), "missing.fa"),
		"--bed", testdata("targets.bed"),
		"--cytoband", testdata("cytoband_small.txt"),
		"--output", out,
	}

	code, _, stderr := runCLI(t, args...)
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "unsupported output format", "rejected before reading the missing FASTA")
}

func TestRun_MissingBED(t *testing.T) {
	out := filepath.Join(t.TempDir(), "coverage.svg")
	args := []string{
		"--fasta", testdata("genome.fa"),
		"--bed", filepath.Join(t.TempDir(), "missing.bed"),
		"--cytoband", testdata("cytoband_small.txt"),
		"--output", out,
	}

	code, _, stderr := runCLI(t, args...)
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "missing.bed")
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_Report(t *testing.T) {
	code, stdout, stderr := runCLI(t, append([]string{"report"}, inputArgs("cytoband_small.txt")...)...)
	require.Equal(t, ExitSuccess, code, stderr)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 1+4*3+2, "header, four chromosomes with centromeres, chrY without")
	assert.Equal(t, "Chromosome\tRegion\tStart\tEnd\tStatus\tOverlapping_intervals", lines[0])
	assert.Equal(t, "chr1\tcentromere\t250\t360\tcovered\t1", lines[1])
	assert.Equal(t, "chr1\tp_telomere\t0\t100\tcovered\t1", lines[2])
	assert.Equal(t, "chr1\tq_telomere\t700\t1000\tuncovered\t0", lines[3])
	assert.Contains(t, stdout, "chr17\tq_telomere\t260\t600\tcovered\t2")

	assert.Contains(t, stderr, "Summary: centromeres 1/4 covered, telomeres 3/10 covered")
}

func TestRun_ReportToFileAndDB(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "coverage.tsv")
	db := filepath.Join(dir, "coverage.duckdb")

	args := append([]string{"report", "-o", out, "--db", db}, inputArgs("cytoband_small.txt")...)
	code, stdout, stderr := runCLI(t, args...)
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Chromosome\t"))

	store, err := duckdb.Open(db)
	require.NoError(t, err)
	defer store.Close()

	regions, err := store.LookupRegions("chr17")
	require.NoError(t, err)
	require.Len(t, regions, 3)
	assert.Equal(t, "q_telomere", regions[2].Region)
	assert.Equal(t, "covered", regions[2].Status)

	files, err := store.InputFiles()
	require.NoError(t, err)
	assert.Len(t, files, 3)
	assert.Equal(t, testdata("targets.bed"), files["bed"].Path)
}

func TestRun_Config(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	var stdout, stderr bytes.Buffer

	code := run([]string{"config", "set", "render.width", "1200", "--config", cfg}, &stdout, &stderr)
	require.Equal(t, ExitSuccess, code, stderr.String())
	assert.Contains(t, stdout.String(), "Set render.width = 1200")

	stdout.Reset()
	code = run([]string{"config", "get", "render.width", "--config", cfg}, &stdout, &stderr)
	require.Equal(t, ExitSuccess, code, stderr.String())
	assert.Equal(t, "1200\n", stdout.String())

	assert.Equal(t, float64(1200), float64(styleFromConfig().Width))
}

func TestRun_ConfigRejectsBadValues(t *testing.T) {
	code, _, stderr := runCLI(t, "config", "set", "render.width", "wide")
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "invalid value")

	code, _, stderr = runCLI(t, "config", "set", "render.colour", "red")
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "unknown key")
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "--version")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, version)
}

func TestRun_MissingExplicitConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "missing.yaml")
	out := filepath.Join(t.TempDir(), "coverage.svg")
	var stdout, stderr bytes.Buffer

	args := append(inputArgs("cytoband_small.txt"), "--output", out, "--config", cfg)
	code := run(args, &stdout, &stderr)
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr.String(), "missing.yaml")
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))

	code = run([]string{"config", "get", "render.width", "--config", cfg}, &stdout, &stderr)
	assert.Equal(t, ExitError, code)
}

func TestRun_ReportWriteFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	code, _, stderr := runCLI(t, append([]string{"report", "-o", "/dev/full"}, inputArgs("cytoband_small.txt")...)...)
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "/dev/full")
	assert.NotContains(t, stderr, "Summary:")
}

func TestRun_ReportUncreatableOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "coverage.tsv")
	code, _, stderr := runCLI(t, append([]string{"report", "-o", out}, inputArgs("cytoband_small.txt")...)...)
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "create "+out)
}
