package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splotbio/splot/pkg/errors"
	"github.com/splotbio/splot/pkg/observability"
)

// execute runs the root command with args and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.Out = &out
	root := c.RootCommand()
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// chipInputs writes a 2x2 DPI150 chip: partitions A and B with one source
// each and two positions each.
func chipInputs(t *testing.T) (dir, seqs, mask string) {
	dir = t.TempDir()
	seqs = writeFile(t, dir, "flank.tsv", "Partition\tSeq\nA\tACGT\nB\tGGCC\n")
	mask = writeFile(t, dir, "partition.txt", "A\nA\nB\nB\n")
	return dir, seqs, mask
}

func TestRootCommandTree(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"run", "validate", "info", "serve", "completion"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestInfo(t *testing.T) {
	out, err := execute(t, "info", "--rows", "2", "--cols", "3")
	require.NoError(t, err)

	for _, want := range []string{"DPI150", "DPI150_PLUS", "DPI300", "150DPI_PLUS"} {
		assert.Contains(t, out, want)
	}
	// DPI150_PLUS: 2*3 + 1*2 positions on a 3x5 grid
	assert.Contains(t, out, "8")
	assert.Contains(t, out, "3 x 5")
}

func TestInfoUnknownDensity(t *testing.T) {
	_, err := execute(t, "info", "DPI600")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupportedDensity))
}

func TestRun(t *testing.T) {
	dir, seqs, mask := chipInputs(t)
	outDir := filepath.Join(dir, "results")

	out, err := execute(t, "run", "-i", seqs, "-p", mask, "-o", outDir,
		"--rows", "2", "--cols", "2", "--density", "DPI150", "--seed", "7", "--pattern-base", "1")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(outDir, "flank_150DPI_out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "ACGT\nACGT\nGGCC\nGGCC", string(got))

	pat, err := os.ReadFile(filepath.Join(outDir, "print_pattern.txt"))
	require.NoError(t, err)
	// Column j holds positions 2j+1 (top) and 2j (bottom).
	assert.Equal(t, " A G\n A G", string(pat))

	assert.Contains(t, out, "flank_150DPI_out.txt")
	assert.Contains(t, out, "print_pattern.txt")
}

func TestRunReportsValidationProblems(t *testing.T) {
	dir := t.TempDir()
	seqs := writeFile(t, dir, "flank.tsv", "Partition\tSeq\nA\tACGT\nA\tTTTT\nA\tCCCC\n")
	mask := writeFile(t, dir, "partition.txt", "A\nA\nC\nC\n")

	_, err := execute(t, "run", "-i", seqs, "-p", mask, "-o", dir,
		"--rows", "2", "--cols", "2", "--density", "DPI150")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))

	var notFound *errors.PartitionNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "C", notFound.Label)

	var exceeded *errors.PartitionCapacityExceededError
	require.True(t, errors.As(err, &exceeded))
	assert.Equal(t, "A", exceeded.Label)

	_, statErr := os.Stat(filepath.Join(dir, "flank_150DPI_out.txt"))
	assert.True(t, os.IsNotExist(statErr), "no output may be written on failure")
}

func TestRunFlagsOverrideConfig(t *testing.T) {
	dir, seqs, mask := chipInputs(t)
	cfg := writeFile(t, dir, "config.toml", "rows = 2\ncols = 2\ndensity = \"DPI300\"\n")

	// The config's DPI300 chip has 16 positions, so only the flag makes it fit.
	_, err := execute(t, "--config", cfg, "run", "-i", seqs, "-p", mask, "-o", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeCapacityMismatch))

	_, err = execute(t, "--config", cfg, "run", "-i", seqs, "-p", mask, "-o", dir, "--density", "DPI150")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "flank_150DPI_out.txt"))
}

func TestRunRequiresInputs(t *testing.T) {
	_, err := execute(t, "run", "-p", "partition.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input")
}

func TestRunRejectsPatternBase(t *testing.T) {
	_, seqs, mask := chipInputs(t)
	_, err := execute(t, "run", "-i", seqs, "-p", mask, "--pattern-base", "0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidRange))
}

func TestValidateSequencesOnly(t *testing.T) {
	_, seqs, _ := chipInputs(t)

	out, err := execute(t, "validate", "-i", seqs)
	require.NoError(t, err)
	assert.Contains(t, out, "2 sequences in 2 partitions")
}

func TestValidateIllegalSource(t *testing.T) {
	dir := t.TempDir()
	seqs := writeFile(t, dir, "flank.tsv", "Partition\tSeq\nA\tACGN\n")

	_, err := execute(t, "validate", "-i", seqs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSequence))

	_, err = execute(t, "validate", "-i", seqs, "--no-check-source")
	require.NoError(t, err)
}

func TestValidateWithMask(t *testing.T) {
	_, seqs, mask := chipInputs(t)

	out, err := execute(t, "validate", "-i", seqs, "-p", mask, "--rows", "2", "--cols", "2", "--density", "DPI150")
	require.NoError(t, err)
	assert.Contains(t, out, "fits 2x2 (DPI150)")
	assert.True(t, strings.Contains(out, "1 sources for 2 positions"), out)
}

func TestCompletion(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "splot")
}

func TestValidateDefectsNeedMask(t *testing.T) {
	dir, seqs, _ := chipInputs(t)
	defects := writeFile(t, dir, "defects.txt", "1,2")

	_, err := execute(t, "validate", "-i", seqs, "-d", defects)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}
