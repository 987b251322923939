package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/golfsim/internal/metrics"
	"github.com/san-kum/golfsim/internal/projectile"
	"github.com/san-kum/golfsim/internal/swing"
)

// Summary renders the release snapshot, landing point and metrics of a run.
func Summary(title string, rel swing.Release, pt projectile.Point, m map[string]float64) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(title) + "\n\n")
	b.WriteString(Row("release step", fmt.Sprintf("%d (t=%.4fs)", rel.Step, rel.Time)) + "\n")
	b.WriteString(Row("launch angle", fmt.Sprintf("%.4f rad (%.1f°)", rel.LaunchAngle, metrics.WrapDegrees(rel.LaunchAngle*180/math.Pi))) + "\n")
	b.WriteString(Row("clubhead speed", fmt.Sprintf("%.3f m/s", rel.ClubheadSpeed)) + "\n")
	b.WriteString(Row("launch velocity", fmt.Sprintf("vx=%.3f vy=%.3f m/s", rel.Vx, rel.Vy)) + "\n")
	b.WriteString(Row("range", fmt.Sprintf("%.3f m", pt.Range)) + "\n")
	b.WriteString(Row("max height", fmt.Sprintf("%.3f m", pt.MaxHeight)))

	if w := launchWarning(rel, pt); w != "" {
		b.WriteString("\n" + Warning.Render(w))
	}

	if len(m) > 0 {
		b.WriteString("\n" + Separator(40) + "\n")
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		for i, name := range names {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(Row(name, fmt.Sprintf("%.6f", m[name])))
		}
	}

	return Panel.Render(b.String())
}

// launchWarning flags releases the flight formulas evaluate without clamping.
func launchWarning(rel swing.Release, pt projectile.Point) string {
	switch {
	case rel.Vy < 0:
		return "downward launch: the ball is driven into the ground"
	case pt.Range < 0:
		return "backward launch: the ball lands behind the tee"
	}
	return ""
}

// FlightPreview plots the sampled flight height as terminal art. It returns a
// note instead when the ball never leaves the ground.
func FlightPreview(vx, vy float64, width, height int) string {
	path := projectile.FlightPath(vx, vy, width)
	if path == nil {
		return Subtle.Render("no flight: the ball does not leave the ground")
	}

	heights := make([]float64, len(path))
	for i, p := range path {
		heights[i] = p.Y()
	}

	caption := fmt.Sprintf("height over %.1f m of flight", path[len(path)-1].X())
	return asciigraph.Plot(heights,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// SeriesPlot draws ys against their index with a caption, as used for sweeps.
func SeriesPlot(ys []float64, caption string) string {
	if len(ys) == 0 {
		return ""
	}
	return asciigraph.Plot(ys,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(caption),
	)
}
