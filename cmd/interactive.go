package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Beastly713/sssolve/pkg/field"
	"github.com/Beastly713/sssolve/pkg/pipeline"
	"github.com/Beastly713/sssolve/pkg/report"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Styles
var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	cursorStyle  = focusedStyle
	checkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
)

const helpLine = "Navigate: ↑/↓ | Enter: Open Dir | Space: Select | 's': Solve | 'p': Edit Prime | 'q': Quit"

type fileItem struct {
	path     string
	name     string
	isDir    bool
	selected bool
}

type model struct {
	path         string
	files        []fileItem
	cursor       int
	status       string
	primeInput   textinput.Model
	editingPrime bool
	results      []report.Result
	quitting     bool
}

// isCaseFile reports whether name looks like a test case document.
func isCaseFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".json") || strings.HasSuffix(lower, ".json.gz")
}

func initialModel(dir string) model {
	ti := textinput.New()
	ti.Placeholder = field.Mersenne127Decimal
	ti.SetValue(field.Mersenne127Decimal)
	ti.CharLimit = 4096
	ti.Width = 60

	m := model{
		path:       dir,
		status:     helpLine,
		primeInput: ti,
	}
	m.loadFiles()
	return m
}

func (m *model) loadFiles() {
	entries, err := os.ReadDir(m.path)
	if err != nil {
		m.status = "Error reading directory"
		return
	}

	m.files = []fileItem{}
	// Parent directory
	m.files = append(m.files, fileItem{name: "..", isDir: true, path: filepath.Dir(m.path)})

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || isCaseFile(name) {
			m.files = append(m.files, fileItem{
				name:  name,
				isDir: e.IsDir(),
				path:  filepath.Join(m.path, name),
			})
		}
	}
	m.cursor = 0
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.editingPrime {
		return m.updatePrime(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.files)-1 {
				m.cursor++
			}

		case "enter":
			if len(m.files) == 0 {
				break
			}
			selected := m.files[m.cursor]
			if selected.isDir {
				m.path = selected.path
				m.loadFiles()
			}

		case " ":
			if len(m.files) > 0 && !m.files[m.cursor].isDir {
				m.files[m.cursor].selected = !m.files[m.cursor].selected
			}

		case "p":
			m.editingPrime = true
			m.status = "Enter the field modulus in base 10, Enter to confirm, Esc to cancel"
			cmd := m.primeInput.Focus()
			return m, cmd

		case "s":
			m.status = "Solving..."
			return m, m.solveSelected()
		}

	case solvedMsg:
		m.results = msg.results
		m.status = msg.status
	}

	return m, nil
}

func (m model) updatePrime(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			if _, err := field.Parse(m.primeInput.Value()); err != nil {
				m.status = fmt.Sprintf("Error: %v", err)
				return m, nil
			}
			m.editingPrime = false
			m.primeInput.Blur()
			m.status = helpLine
			return m, nil

		case tea.KeyEsc:
			m.editingPrime = false
			m.primeInput.Blur()
			m.status = helpLine
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.primeInput, cmd = m.primeInput.Update(msg)
	return m, cmd
}

type solvedMsg struct {
	results []report.Result
	status  string
}

func (m model) solveSelected() tea.Cmd {
	var selectedPaths []string
	for _, f := range m.files {
		if f.selected {
			selectedPaths = append(selectedPaths, f.path)
		}
	}
	prime := m.primeInput.Value()

	return func() tea.Msg {
		if len(selectedPaths) == 0 {
			return solvedMsg{status: "No files selected!"}
		}

		results, err := runInteractiveSolve(selectedPaths, prime)
		if err != nil {
			return solvedMsg{status: fmt.Sprintf("Error: %v", err)}
		}

		solved, failed := report.Summary(results)
		return solvedMsg{
			results: results,
			status:  fmt.Sprintf("Solved %d, failed %d.", solved, failed),
		}
	}
}

// runInteractiveSolve is the solve command's flow for the files picked in the TUI.
func runInteractiveSolve(paths []string, prime string) ([]report.Result, error) {
	f, err := field.Parse(prime)
	if err != nil {
		return nil, err
	}

	var cases []pipeline.Case
	for _, path := range paths {
		loaded, err := pipeline.LoadFile(path)
		if err != nil {
			cases = append(cases, pipeline.Case{Name: filepath.Base(path), Err: err})
			continue
		}
		for _, c := range loaded {
			c.Name = filepath.Base(c.Name)
			cases = append(cases, c)
		}
	}

	// Failures are shown in the view; logging would draw over the UI.
	return pipeline.Batch(context.Background(), cases, pipeline.BatchConfig{
		Field:  f,
		Logger: zerolog.Nop(),
	}), nil
}

func (m model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	s := fmt.Sprintf("Directory: %s\n", m.path)
	s += fmt.Sprintf("Prime: %s\n\n", m.primeInput.View())

	for i, file := range m.files {
		cursor := " " // no cursor
		if m.cursor == i {
			cursor = ">"
			s += cursorStyle.Render(cursor)
		} else {
			s += cursor
		}

		checked := " "
		if file.selected {
			checked = "x"
		}

		line := ""
		if file.isDir {
			line = fmt.Sprintf("[DIR] %s", file.name)
		} else {
			line = fmt.Sprintf("[%s] %s", checked, file.name)
		}

		if file.selected {
			line = checkedStyle.Render(line)
		}

		s += " " + line + "\n"
	}

	if len(m.results) > 0 {
		s += "\n"
		for _, r := range m.results {
			if r.Failed() {
				s += errorStyle.Render(fmt.Sprintf("%s [%s]: %s", r.Name, r.Kind, r.Error)) + "\n"
			} else {
				s += fmt.Sprintf("%s: %s\n", r.Name, r.Secret)
			}
		}
	}

	s += fmt.Sprintf("\n%s\n", m.status)
	return docStyle.Render(s)
}

// Cobra command setup
var interactiveCmd = &cobra.Command{
	Use:   "interactive [directory]",
	Short: "Interactive terminal UI for picking and solving test cases",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return err
		}
		if len(args) > 0 {
			dir, err = filepath.Abs(args[0])
			if err != nil {
				return err
			}
		}

		p := tea.NewProgram(initialModel(dir))
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
