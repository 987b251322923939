package metrics

import (
	"math"

	"github.com/san-kum/golfsim/internal/swing"
)

// PeakClubheadSpeed tracks the largest clubhead speed magnitude seen, m/s.
type PeakClubheadSpeed struct {
	name string
	rc   float64
	peak float64
}

func NewPeakClubheadSpeed(rc float64) *PeakClubheadSpeed {
	return &PeakClubheadSpeed{name: "peak_clubhead_speed", rc: rc}
}

func (p *PeakClubheadSpeed) Name() string { return p.name }

func (p *PeakClubheadSpeed) Observe(x swing.State, t float64) {
	p.peak = math.Max(p.peak, math.Abs(x.ClubheadSpeed(p.rc)))
}

func (p *PeakClubheadSpeed) Value() float64 { return p.peak }

func (p *PeakClubheadSpeed) Reset() { p.peak = 0 }

// LaunchAngle reports the most recent summed segment angle in degrees,
// wrapped to [0, 360).
type LaunchAngle struct {
	name    string
	radians float64
}

func NewLaunchAngle() *LaunchAngle {
	return &LaunchAngle{name: "launch_angle_deg"}
}

func (l *LaunchAngle) Name() string { return l.name }

func (l *LaunchAngle) Observe(x swing.State, t float64) {
	l.radians = x.LaunchAngle()
}

func (l *LaunchAngle) Value() float64 {
	return WrapDegrees(l.radians * 180 / math.Pi)
}

func (l *LaunchAngle) Reset() { l.radians = 0 }

// WrapDegrees maps any angle onto [0, 360).
func WrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// ArmShare is the fraction of the summed angular velocity contributed by the
// arm at the latest step. Zero while the swing is at rest.
type ArmShare struct {
	name  string
	share float64
}

func NewArmShare() *ArmShare {
	return &ArmShare{name: "arm_share"}
}

func (a *ArmShare) Name() string { return a.name }

func (a *ArmShare) Observe(x swing.State, t float64) {
	total := x.AngularSpeed()
	if total == 0 {
		a.share = 0
		return
	}
	a.share = x.Omega[swing.Arm] / total
}

func (a *ArmShare) Value() float64 { return a.share }

func (a *ArmShare) Reset() { a.share = 0 }

// Default returns the metrics every swing run records.
func Default(rc float64) []swing.Metric {
	return []swing.Metric{
		NewPeakClubheadSpeed(rc),
		NewLaunchAngle(),
		NewArmShare(),
	}
}
