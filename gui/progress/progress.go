package progress

// Renders a progress bar for multi-pass face restoration. The bar state lives
// on the top level model and the progress bubble's ViewAs method is only used
// for rendering, so there is no need to forward frame messages to it.

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	padding  = 2
	maxWidth = 80
)

// Passes reports that Done of Total restoration passes have completed.
type Passes struct {
	Done  int
	Total int
}

type model struct {
	done     int
	total    int
	progress progress.Model
}

func newModel() *model {
	return &model{progress: progress.New(
		progress.WithScaledGradient("#FF7CCB", "#FDFF8C"),
		progress.WithoutPercentage(),
	)}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - padding*2 - 4
		if m.progress.Width > maxWidth {
			m.progress.Width = maxWidth
		}

	case Passes:
		m.done = msg.Done
		m.total = msg.Total
		if m.total > 0 && m.done >= m.total {
			return m, tea.Quit
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return min(max(0.0, float64(m.done)/float64(m.total)), 1.0)
}

func (m model) View() string {
	pad := strings.Repeat(" ", padding)
	return "\n" +
		pad + fmt.Sprintf("Face %d/%d", m.done, m.total) + "\n" +
		pad + m.progress.ViewAs(m.percent()) + "\n\n"
}

// Program wraps a running bubbletea program so restoration progress can be
// fed in from another goroutine.
type Program struct {
	tea *tea.Program
}

// Start launches the progress UI. The returned Program is ready to receive
// updates immediately.
func Start() *Program {
	p := &Program{tea: tea.NewProgram(newModel())}
	go func() {
		if _, err := p.tea.Run(); err != nil {
			log.Printf("Error running progress UI: %v", err)
		}
	}()
	return p
}

// Update reports pass completion. Safe to call from any goroutine.
func (p *Program) Update(done, total int) {
	p.tea.Send(Passes{Done: done, Total: total})
}

// Quit tears the UI down and waits for it to finish rendering.
func (p *Program) Quit() {
	p.tea.Quit()
	p.tea.Wait()
}
