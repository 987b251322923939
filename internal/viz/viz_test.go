package viz

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/golfsim/internal/projectile"
	"github.com/san-kum/golfsim/internal/storage"
	"github.com/san-kum/golfsim/internal/swing"
)

type fakeSource struct {
	runs   []storage.RunMetadata
	points map[string][]projectile.Point
	err    error
}

func (f *fakeSource) List() ([]storage.RunMetadata, error) {
	return f.runs, f.err
}

func (f *fakeSource) LoadTrajectory(runID string) ([]projectile.Point, error) {
	pts, ok := f.points[runID]
	if !ok {
		return nil, storage.ErrRunNotFound
	}
	return pts, nil
}

func newFakeSource() *fakeSource {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &fakeSource{
		runs: []storage.RunMetadata{
			{ID: "swing_1", Preset: "reference", Timestamp: ts, Releases: []swing.Release{{Step: 200, Vx: 10, Vy: 5}}},
			{ID: "swing_2", Timestamp: ts.Add(time.Minute)},
		},
		points: map[string][]projectile.Point{
			"swing_1": {{Range: 10.19, MaxHeight: 1.27}},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// step feeds msg to the model and resolves one returned command.
func step(t *testing.T, m tea.Model, msg tea.Msg) (tea.Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	if cmd == nil {
		return next, nil
	}
	return next, cmd()
}

func loadedBrowser(t *testing.T, src RunSource) tea.Model {
	t.Helper()
	b := NewBrowser(src)
	m, _ := step(t, b, b.Init()())
	return m
}

func TestBrowserListsRuns(t *testing.T) {
	m := loadedBrowser(t, newFakeSource())

	view := m.View()
	assert.Contains(t, view, "swing_1")
	assert.Contains(t, view, "swing_2")
	assert.Contains(t, view, "reference")
	assert.Contains(t, view, "custom")
}

func TestBrowserLoadingView(t *testing.T) {
	assert.Contains(t, NewBrowser(newFakeSource()).View(), "loading")
}

func TestBrowserCursorBounds(t *testing.T) {
	m := loadedBrowser(t, newFakeSource())

	m, _ = step(t, m, key("up"))
	assert.Equal(t, 0, m.(Browser).cursor)

	m, _ = step(t, m, key("j"))
	m, _ = step(t, m, key("down"))
	assert.Equal(t, 1, m.(Browser).cursor)

	m, _ = step(t, m, key("k"))
	assert.Equal(t, 0, m.(Browser).cursor)
}

func TestBrowserDetailAndBack(t *testing.T) {
	m := loadedBrowser(t, newFakeSource())

	m, msg := step(t, m, key("enter"))
	require.NotNil(t, msg)
	m, _ = step(t, m, msg)

	b := m.(Browser)
	assert.Equal(t, viewDetail, b.view)
	assert.Len(t, b.points, 1)
	assert.Contains(t, m.View(), "10.190")

	m, _ = step(t, m, key("esc"))
	assert.Equal(t, viewList, m.(Browser).view)
	assert.Nil(t, m.(Browser).points)
}

func TestBrowserDetailMissingTrajectory(t *testing.T) {
	m := loadedBrowser(t, newFakeSource())

	m, _ = step(t, m, key("down"))
	m, msg := step(t, m, key("enter"))
	m, _ = step(t, m, msg)

	assert.Contains(t, m.View(), "run not found")
}

func TestBrowserListError(t *testing.T) {
	src := &fakeSource{err: errors.New("disk on fire")}
	m := loadedBrowser(t, src)
	assert.Contains(t, m.View(), "disk on fire")

	_, msg := step(t, m, key("enter"))
	assert.Nil(t, msg)
}

func TestBrowserQuit(t *testing.T) {
	m := loadedBrowser(t, newFakeSource())

	_, msg := step(t, m, key("q"))
	assert.IsType(t, tea.QuitMsg{}, msg)

	_, msg = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.IsType(t, tea.QuitMsg{}, msg)
}

func TestSummary(t *testing.T) {
	rel := swing.Release{Step: 200, Time: 2.0, Vx: 10, Vy: 5}
	out := Summary("reference", rel, projectile.Evaluate(10, 5), map[string]float64{"arm_share": 0.5})

	assert.Contains(t, out, "reference")
	assert.Contains(t, out, "arm_share")
	assert.NotContains(t, out, "launch:")
}

func TestSummaryLaunchWarnings(t *testing.T) {
	tests := []struct {
		name   string
		vx, vy float64
		want   string
	}{
		{"forward up", 10, 5, ""},
		{"backward down", -36.95, -47.65, "downward launch"},
		{"forward down", 10, -5, "downward launch"},
		{"backward up", -5.885, 8.085, "backward launch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel := swing.Release{Vx: tt.vx, Vy: tt.vy}
			out := Summary("run", rel, projectile.Evaluate(tt.vx, tt.vy), nil)
			if tt.want == "" {
				assert.NotContains(t, out, "launch:")
				return
			}
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestFlightPreview(t *testing.T) {
	assert.Contains(t, FlightPreview(10, -5, 40, 8), "no flight")

	out := FlightPreview(10, 5, 40, 8)
	assert.Contains(t, out, "height over 10.2 m")
}

func TestSeriesPlot(t *testing.T) {
	assert.Empty(t, SeriesPlot(nil, "x"))
	assert.Contains(t, SeriesPlot([]float64{1, 2, 3}, "range vs rc"), "range vs rc")
}

func TestSeparator(t *testing.T) {
	assert.Contains(t, Separator(20), "◆")
	assert.NotContains(t, Separator(4), "◆")
}
