// Package setup provides the interactive setup wizard for ansible-log.
package setup

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/patrickjeremic/ansible-log/internal/config"
)

// Files the wizard writes into the working directory.
const (
	ConfigFile = "ansible-log.toml"
	AnsibleCfg = "ansible.cfg"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// Step is one wizard step.
type Step int

const (
	StepLogDir Step = iota
	StepKeep
	StepWriteFiles
	StepComplete
)

// Options controls non-interactive behavior.
type Options struct {
	Force       bool // overwrite existing files
	Interactive bool // prompt for values; otherwise use defaults
}

// Run executes the setup flow and writes the starter files.
func Run(opts Options) error {
	cfg := config.New()

	if opts.Interactive {
		m := newModel(cfg)
		prog := tea.NewProgram(&m)
		final, err := prog.Run()
		if err != nil {
			return err
		}
		fm := final.(*model)
		if fm.aborted {
			return fmt.Errorf("setup aborted")
		}
		cfg = fm.cfg
	}

	written, err := WriteFiles(cfg, opts.Force)
	if err != nil {
		return err
	}
	for _, f := range written {
		fmt.Println(successStyle.Render("✓ wrote " + f))
	}
	return nil
}

// model is the bubbletea model for the wizard.
type model struct {
	step    Step
	cfg     *config.Config
	input   textinput.Model
	err     error
	aborted bool
}

func newModel(cfg *config.Config) model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50
	ti.Placeholder = cfg.Storage.Path
	return model{step: StepLogDir, cfg: cfg, input: ti}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			return m.advance()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// advance applies the current input and moves to the next step.
func (m *model) advance() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	m.err = nil

	switch m.step {
	case StepLogDir:
		if value != "" {
			m.cfg.Storage.Path = value
		}
		m.step = StepKeep
		m.input.SetValue("")
		m.input.Placeholder = strconv.Itoa(m.cfg.Storage.Keep)

	case StepKeep:
		if value != "" {
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				m.err = fmt.Errorf("retention must be a positive number")
				return m, nil
			}
			m.cfg.Storage.Keep = n
		}
		m.step = StepComplete
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ansible-log setup"))
	b.WriteString("\n")

	switch m.step {
	case StepLogDir:
		b.WriteString("Where should run logs be stored?\n\n")
	case StepKeep:
		b.WriteString("How many runs should be kept?\n\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString(dimStyle.Render("enter: accept (blank keeps default) · esc: abort"))
	b.WriteString("\n")
	return b.String()
}

// WriteFiles writes the starter config and the ansible.cfg template.
// Existing files are left alone unless force is set.
func WriteFiles(cfg *config.Config, force bool) ([]string, error) {
	var written []string

	files := []struct {
		name    string
		content string
	}{
		{ConfigFile, configTemplate(cfg)},
		{AnsibleCfg, ansibleCfgTemplate},
	}
	for _, f := range files {
		if !force {
			if _, err := os.Stat(f.name); err == nil {
				return written, fmt.Errorf("%s already exists (use --force to overwrite)", f.name)
			}
		}
		if err := os.WriteFile(f.name, []byte(f.content), 0644); err != nil {
			return written, fmt.Errorf("writing %s: %w", f.name, err)
		}
		written = append(written, f.name)
	}
	return written, nil
}

// configTemplate renders the starter ansible-log.toml.
func configTemplate(cfg *config.Config) string {
	var b strings.Builder
	b.WriteString("# ansible-log configuration\n\n")
	b.WriteString("[storage]\n")
	fmt.Fprintf(&b, "path = %q\n", cfg.Storage.Path)
	fmt.Fprintf(&b, "keep = %d\n\n", cfg.Storage.Keep)
	b.WriteString("[output]\n")
	b.WriteString("color = \"auto\"\n\n")
	b.WriteString("[filter]\n")
	b.WriteString("# Keywords controlling which pre-play warnings survive diff mode.\n")
	b.WriteString("# allow = [\"error\", \"fatal\", \"failed\", \"unreachable\", \"deprecat\", \"critical\"]\n")
	b.WriteString("# deny = [\"host pattern\"]\n")
	b.WriteString("# rules_file = \"ansible-log-rules.yaml\"\n")
	return b.String()
}

// ansibleCfgTemplate enables the Ansible output options the renderer makes
// the most of: diff mode so changed tasks show their hunks, and forced
// color so the classifier's palette survives the capture pipe.
const ansibleCfgTemplate = `# Generated by ansible-log setup
[defaults]
force_color = True
display_skipped_hosts = False
stdout_callback = default

[diff]
always = True
context = 3
`
