package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/golfsim/internal/projectile"
	"github.com/san-kum/golfsim/internal/storage"
)

const (
	viewList = iota
	viewDetail
)

// RunSource is the part of the run store the browser reads from.
type RunSource interface {
	List() ([]storage.RunMetadata, error)
	LoadTrajectory(runID string) ([]projectile.Point, error)
}

type runsLoadedMsg struct {
	runs []storage.RunMetadata
	err  error
}

type trajectoryLoadedMsg struct {
	runID  string
	points []projectile.Point
	err    error
}

// Browser is a bubbletea model listing saved runs with a detail view.
type Browser struct {
	src    RunSource
	view   int
	cursor int
	runs   []storage.RunMetadata
	points []projectile.Point
	err    error
	loaded bool
}

func NewBrowser(src RunSource) Browser {
	return Browser{src: src}
}

func (b Browser) Init() tea.Cmd {
	src := b.src
	return func() tea.Msg {
		runs, err := src.List()
		return runsLoadedMsg{runs: runs, err: err}
	}
}

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runsLoadedMsg:
		b.runs, b.err, b.loaded = msg.runs, msg.err, true
		return b, nil

	case trajectoryLoadedMsg:
		b.points, b.err = msg.points, msg.err
		b.view = viewDetail
		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return b, tea.Quit
		case "up", "k":
			if b.view == viewList && b.cursor > 0 {
				b.cursor--
			}
		case "down", "j":
			if b.view == viewList && b.cursor < len(b.runs)-1 {
				b.cursor++
			}
		case "enter":
			if b.view == viewList && len(b.runs) > 0 {
				return b, b.loadTrajectory(b.runs[b.cursor].ID)
			}
		case "esc":
			b.view = viewList
			b.points = nil
			b.err = nil
		}
	}
	return b, nil
}

func (b Browser) loadTrajectory(runID string) tea.Cmd {
	src := b.src
	return func() tea.Msg {
		points, err := src.LoadTrajectory(runID)
		return trajectoryLoadedMsg{runID: runID, points: points, err: err}
	}
}

func (b Browser) View() string {
	if !b.loaded {
		return Subtle.Render("loading runs...")
	}
	if b.view == viewDetail {
		return b.detailView()
	}
	return b.listView()
}

func (b Browser) listView() string {
	var s strings.Builder
	s.WriteString(TitleStyle.Render("saved swings") + "\n\n")

	if b.err != nil {
		s.WriteString(Warning.Render(b.err.Error()) + "\n")
	}
	if len(b.runs) == 0 {
		s.WriteString(Subtle.Render("no runs saved yet (use run --save)") + "\n")
	}

	for i, run := range b.runs {
		line := fmt.Sprintf("%s  %s  %-12s %d release(s)",
			run.ID, run.Timestamp.Format("2006-01-02 15:04:05"), presetLabel(run.Preset), len(run.Releases))
		if i == b.cursor {
			s.WriteString(Selected.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}

	s.WriteString("\n" + KeyHint.Render("↑/↓ select • enter open • q quit"))
	return s.String()
}

func (b Browser) detailView() string {
	run := b.runs[b.cursor]
	var s strings.Builder

	if b.err != nil {
		s.WriteString(Warning.Render(b.err.Error()) + "\n\n")
		s.WriteString(KeyHint.Render("esc back • q quit"))
		return s.String()
	}

	rel, _ := run.LastRelease()
	pt := projectile.Point{}
	if len(b.points) > 0 {
		pt = b.points[len(b.points)-1]
	}
	s.WriteString(Summary(run.ID, rel, pt, run.Metrics) + "\n\n")
	s.WriteString(FlightPreview(rel.Vx, rel.Vy, 60, 10) + "\n\n")
	s.WriteString(KeyHint.Render("esc back • q quit"))
	return s.String()
}

func presetLabel(name string) string {
	if name == "" {
		return "custom"
	}
	return name
}

// RunBrowser blocks until the user quits the browser.
func RunBrowser(src RunSource) error {
	_, err := tea.NewProgram(NewBrowser(src), tea.WithAltScreen()).Run()
	return err
}
