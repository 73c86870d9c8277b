package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchJSON = `[
	{"name": "Tolkien, J.R.R. (writer), 1892-1973", "type": "person"},
	{"name": "Doe, Jane", "type": "person", "dates": "1900-1950"},
	{"name": "Doe, Jane", "type": "person"},
	{"name": "Doe, Jane (poet", "type": "person"},
	{"name": "Inklings", "type": "group"},
	{"name": "Somebody"}
]`

// execute runs the CLI with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func setupWorkspace(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("NAMESIFT_LOG_LEVEL", "error")
	require.NoError(t, os.WriteFile("search.json", []byte(searchJSON), 0644))
}

func TestCommands_CatalogWorkflow(t *testing.T) {
	setupWorkspace(t)

	out, err := execute(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(".namesift", "config.yaml"))

	_, err = execute(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")

	out, err = execute(t, "catalogs", "create", "tolkien", "-d", "Tolkien search")
	require.NoError(t, err)
	assert.Contains(t, out, `Created catalog "tolkien"`)

	out, err = execute(t, "-c", "tolkien", "import", "search.json")
	require.NoError(t, err)
	assert.Contains(t, out, "6 records (4 persons, 1 flagged for review, 3 excluded from grouping)")
	assert.Contains(t, out, "Warnings (1)")

	out, err = execute(t, "-c", "tolkien", "tree")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Names\n"), out)
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "J. R. R. Tolkien (writer)")
	assert.NotContains(t, out, "Inklings")

	out, err = execute(t, "-c", "tolkien", "overlaps")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe\n    Doe, Jane\n    1900-1950")

	out, err = execute(t, "-c", "tolkien", "review")
	require.NoError(t, err)
	assert.Contains(t, out, "1 records need review")
	assert.Contains(t, out, "Doe, Jane (poet")

	out, err = execute(t, "-c", "tolkien", "runs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "search.json")

	_, err = execute(t, "catalogs", "delete", "tolkien")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contains 1 runs")

	out, err = execute(t, "catalogs", "delete", "tolkien", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted catalog "tolkien"`)

	out, err = execute(t, "catalogs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No catalogs configured.")
}

func TestCommands_DryRunStoresNothing(t *testing.T) {
	setupWorkspace(t)

	_, err := execute(t, "catalogs", "create", "tolkien")
	require.NoError(t, err)

	out, err := execute(t, "-c", "tolkien", "import", "search.json", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: 6 records would be imported")

	out, err = execute(t, "-c", "tolkien", "runs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs stored.")
}

func TestCommands_RunsDelete(t *testing.T) {
	setupWorkspace(t)

	_, err := execute(t, "catalogs", "create", "tolkien")
	require.NoError(t, err)
	_, err = execute(t, "-c", "tolkien", "import", "search.json")
	require.NoError(t, err)

	out, err := execute(t, "-c", "tolkien", "runs", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	runID := strings.Fields(lines[1])[0]

	out, err = executeWithInput(t, "n\n", "-c", "tolkien", "runs", "delete", runID)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")

	out, err = executeWithInput(t, "y\n", "-c", "tolkien", "runs", "delete", runID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1 runs")

	out, err = execute(t, "-c", "tolkien", "runs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs stored.")

	_, err = execute(t, "-c", "tolkien", "runs", "delete", "--force", runID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestConfirmAction(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, confirmAction(strings.NewReader("yes\n"), &out, "Delete?"))
	assert.True(t, confirmAction(strings.NewReader("Y"), &out, "Delete?"))
	assert.False(t, confirmAction(strings.NewReader("\n"), &out, "Delete?"))
	assert.False(t, confirmAction(strings.NewReader(""), &out, "Delete?"))
	assert.Contains(t, out.String(), "Delete? [y/N]: ")
}

func TestCommands_TreeFromFileWithoutCatalog(t *testing.T) {
	setupWorkspace(t)

	out, err := execute(t, "tree", "search.json", "--no-dates", "--format", "json", "--root", "Tolkien search")
	require.NoError(t, err)
	assert.Contains(t, out, `"label": "Tolkien search"`)
	assert.Contains(t, out, `"label": "Jane Doe"`)
	assert.NotContains(t, out, `"label": "1900-1950"`)
}

func TestCommands_TreeToOutputFile(t *testing.T) {
	setupWorkspace(t)

	out, err := execute(t, "tree", "search.json", "--format", "markdown", "-o", "tree.md")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote hierarchy of 3 records to tree.md")

	data, err := os.ReadFile("tree.md")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Names\n"))
	assert.Contains(t, string(data), "## Overlaps")
}

func TestCommands_Errors(t *testing.T) {
	setupWorkspace(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "store command without catalog", args: []string{"runs", "list"}, want: "catalog is required"},
		{name: "unknown catalog", args: []string{"-c", "nope", "review"}, want: "no catalogs configured"},
		{name: "unknown format", args: []string{"tree", "search.json", "--format", "xml"}, want: "unknown format"},
		{name: "unsupported file", args: []string{"tree", "names.txt"}, want: "unsupported format"},
		{name: "tree without file or catalog", args: []string{"tree"}, want: "catalog is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
