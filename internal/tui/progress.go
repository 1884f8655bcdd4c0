package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dorkyrobot/yuri/internal/output"
)

type progressMsg struct {
	n, total int64
}

type doneMsg struct{}

// model renders a single transfer.
type model struct {
	label    string
	n, total int64
	bar      progress.Model
}

func newModel(label string) model {
	return model{
		label: label,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.n, m.total = msg.n, msg.total
		return m, nil
	case doneMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.label)
	b.WriteString(": ")
	if m.total <= 0 {
		b.WriteString(output.FormatSize(m.n))
		return b.String() + "\n"
	}
	pct := min(float64(m.n)/float64(m.total), 1)
	fmt.Fprintf(&b, "%s %s/%s", m.bar.ViewAs(pct), output.FormatSize(m.n), output.FormatSize(m.total))
	return b.String() + "\n"
}

// Progress draws a transfer progress bar on a terminal. A nil *Progress
// draws nothing, so callers need not check.
type Progress struct {
	p    *tea.Program
	done chan struct{}
}

// Start begins drawing to out, or returns nil if out is not a terminal.
func Start(label string, out io.Writer) *Progress {
	f, ok := out.(*os.File)
	if !ok || !output.IsTTY(f) {
		return nil
	}

	pr := &Progress{
		p:    tea.NewProgram(newModel(label), tea.WithOutput(out), tea.WithInput(nil)),
		done: make(chan struct{}),
	}
	go func() {
		defer close(pr.done)
		_, _ = pr.p.Run()
	}()
	return pr
}

// Update has the signature of aws.ProgressFunc.
func (pr *Progress) Update(n, total int64) {
	if pr == nil {
		return
	}
	pr.p.Send(progressMsg{n: n, total: total})
}

// Finish stops drawing and waits for the last frame.
func (pr *Progress) Finish() {
	if pr == nil {
		return
	}
	pr.p.Send(doneMsg{})
	<-pr.done
}
