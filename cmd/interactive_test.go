package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Beastly713/sssolve/pkg/compression"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	require.True(t, ok)
	return nm, cmd
}

func setupCaseDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	doc, err := os.ReadFile("testdata/testcase1.json")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), doc, 0644))

	packed, err := compression.Compress([]byte(`{"keys": {"n": 2, "k": 2}, "1": {"base": "10", "value": "3"}, "2": {"base": "10", "value": "5"}}`))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json.gz"), packed, 0644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	return dir
}

func TestInteractiveListsCaseFiles(t *testing.T) {
	dir := setupCaseDir(t)
	m := initialModel(dir)

	var names []string
	for _, f := range m.files {
		names = append(names, f.name)
	}
	assert.Equal(t, []string{"..", "a.json", "b.json.gz", "sub"}, names)
}

func TestInteractiveSolveSelected(t *testing.T) {
	dir := setupCaseDir(t)
	m := initialModel(dir)

	// Nothing selected yet
	m, cmd := press(t, m, key("s"))
	require.NotNil(t, cmd)
	m, _ = press(t, m, cmd())
	assert.Equal(t, "No files selected!", m.status)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.files[1].selected)
	assert.True(t, m.files[2].selected)

	m, cmd = press(t, m, key("s"))
	require.NotNil(t, cmd)
	m, _ = press(t, m, cmd())

	require.Len(t, m.results, 2)
	assert.Equal(t, "a.json", m.results[0].Name)
	assert.Equal(t, "3", m.results[0].Secret)
	assert.Equal(t, "b.json.gz", m.results[1].Name)
	assert.Equal(t, "1", m.results[1].Secret)
	assert.Equal(t, "Solved 2, failed 0.", m.status)
	assert.Contains(t, m.View(), "a.json: 3")
}

func TestInteractiveEditPrime(t *testing.T) {
	m := initialModel(setupCaseDir(t))

	m, _ = press(t, m, key("p"))
	require.True(t, m.editingPrime)

	m.primeInput.SetValue("not a prime")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.editingPrime)
	assert.Contains(t, m.status, "Error")

	m.primeInput.SetValue("7919")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.editingPrime)
	assert.Equal(t, "7919", m.primeInput.Value())

	results, err := runInteractiveSolve([]string{filepath.Join("testdata", "testcase1.json")}, m.primeInput.Value())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "3", results[0].Secret)
}

func TestInteractiveNavigateAndQuit(t *testing.T) {
	dir := setupCaseDir(t)
	m := initialModel(dir)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, filepath.Join(dir, "sub"), m.path)
	require.Len(t, m.files, 1)

	m, cmd := press(t, m, key("q"))
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
	assert.Equal(t, "Bye!\n", m.View())
}
