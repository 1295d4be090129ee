package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig returns a config file that keeps test runs from writing
// logs or traces into the working directory.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `auto_refresh: false
logging:
  level: info
  file: ""
  console: false
tracing:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// runCLI executes the root command against an isolated catalog file.
func runCLI(t *testing.T, library string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", writeTestConfig(t), "--library", library}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func testLibrary(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "books.json")
}

func TestList_EmptyCatalog(t *testing.T) {
	out, err := runCLI(t, testLibrary(t), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog is empty.")
}

func TestAddThenList(t *testing.T) {
	library := testLibrary(t)

	out, err := runCLI(t, library, "add", "Dune", "Herbert", "111")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Dune by Herbert (id 111) [available]")

	out, err = runCLI(t, library, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Dune by Herbert (id 111) [available]")
}

func TestAdd_DuplicateIdentifier(t *testing.T) {
	library := testLibrary(t)

	_, err := runCLI(t, library, "add", "Dune", "Herbert", "111")
	require.NoError(t, err)

	_, err = runCLI(t, library, "add", "Hyperion", "Simmons", "111")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "111")
}

func TestAdd_EmptyFieldRejected(t *testing.T) {
	_, err := runCLI(t, testLibrary(t), "add", "  ", "Herbert", "111")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
}

func TestIssueReturnFlow(t *testing.T) {
	library := testLibrary(t)

	_, err := runCLI(t, library, "add", "Dune", "Herbert", "111")
	require.NoError(t, err)

	out, err := runCLI(t, library, "issue", "111")
	require.NoError(t, err)
	assert.Contains(t, out, "Issued 111")

	_, err = runCLI(t, library, "issue", "111")
	require.Error(t, err, "second issue must fail")

	out, err = runCLI(t, library, "return", "111")
	require.NoError(t, err)
	assert.Contains(t, out, "Returned 111")

	_, err = runCLI(t, library, "return", "111")
	require.Error(t, err, "second return must fail")
}

func TestIssue_UnknownIdentifier(t *testing.T) {
	_, err := runCLI(t, testLibrary(t), "issue", "999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "999")
}

func TestFind_AbsenceIsNotAnError(t *testing.T) {
	out, err := runCLI(t, testLibrary(t), "find", "999")
	require.NoError(t, err)
	assert.Contains(t, out, "No record with identifier 999.")
}

func TestFind_PrintsRecord(t *testing.T) {
	library := testLibrary(t)

	_, err := runCLI(t, library, "add", "Dune", "Herbert", "111")
	require.NoError(t, err)

	out, err := runCLI(t, library, "find", "111")
	require.NoError(t, err)
	assert.Contains(t, out, "Dune by Herbert (id 111) [available]")
}

func TestSearch(t *testing.T) {
	library := testLibrary(t)

	_, err := runCLI(t, library, "add", "Dune", "Herbert", "111")
	require.NoError(t, err)
	_, err = runCLI(t, library, "add", "Hyperion", "Simmons", "222")
	require.NoError(t, err)

	out, err := runCLI(t, library, "search", "dun")
	require.NoError(t, err)
	assert.Contains(t, out, "Dune")
	assert.NotContains(t, out, "Hyperion")

	out, err = runCLI(t, library, "search", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, `No records match "zzz".`)
}

func TestReport_Plain(t *testing.T) {
	library := testLibrary(t)

	_, err := runCLI(t, library, "add", "Dune", "Herbert", "111")
	require.NoError(t, err)
	_, err = runCLI(t, library, "issue", "111")
	require.NoError(t, err)

	out, err := runCLI(t, library, "report", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "# Catalog summary")
	assert.Contains(t, out, "- Issued: 1")
	assert.Contains(t, out, "| 111 | Dune | Herbert | issued |")
}

func TestInit_WritesAndRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--config", path, "init"})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "library_path")

	rootCmd.SetArgs([]string{"--config", path, "init"})
	err = rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	rootCmd.SetArgs([]string{"--config", path, "init", "--force"})
	require.NoError(t, rootCmd.Execute())
}
