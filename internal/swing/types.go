package swing

import (
	"math"

	"github.com/san-kum/golfsim/internal/projectile"
)

// State is the angle and angular velocity of every segment, indexed by Segment.
type State struct {
	Theta [numSegments]float64 `json:"theta"`
	Omega [numSegments]float64 `json:"omega"`
}

// NewState returns the initial state described by p.
func NewState(p Parameters) State {
	var s State
	for _, seg := range Segments {
		sp := p.Segment(seg)
		s.Theta[seg] = sp.Theta0
		s.Omega[seg] = sp.Omega0
	}
	return s
}

// LaunchAngle is the summed segment angle, rad.
func (s State) LaunchAngle() float64 {
	return s.Theta[Hip] + s.Theta[Shoulder] + s.Theta[Arm]
}

// AngularSpeed is the summed segment angular velocity, rad/s.
func (s State) AngularSpeed() float64 {
	return s.Omega[Hip] + s.Omega[Shoulder] + s.Omega[Arm]
}

// ClubheadSpeed converts the summed angular velocity to linear speed at radius rc.
func (s State) ClubheadSpeed(rc float64) float64 {
	return s.AngularSpeed() * rc
}

// advance moves every segment forward by dt: position first using the
// current velocity, then velocity.
func (s *State) advance(alpha [numSegments]float64, dt float64) {
	dt2 := dt * dt
	for i := range s.Theta {
		s.Theta[i] += s.Omega[i]*dt + 0.5*alpha[i]*dt2
		s.Omega[i] += alpha[i] * dt
	}
}

// Release captures the swing at a release instant.
type Release struct {
	// Step is the loop iteration that released.
	Step int `json:"step"`
	// Time is the loop time i*dt of that iteration.
	Time float64 `json:"time"`
	// Elapsed is the swing time the captured state corresponds to, (Step+1)*dt.
	Elapsed       float64 `json:"elapsed"`
	State         State   `json:"state"`
	LaunchAngle   float64 `json:"launch_angle"`
	ClubheadSpeed float64 `json:"clubhead_speed"`
	Vx            float64 `json:"vx"`
	Vy            float64 `json:"vy"`
}

func newRelease(step int, t, dt float64, x State, rc float64) Release {
	angle := x.LaunchAngle()
	speed := x.ClubheadSpeed(rc)
	return Release{
		Step:          step,
		Time:          t,
		Elapsed:       float64(step+1) * dt,
		State:         x,
		LaunchAngle:   angle,
		ClubheadSpeed: speed,
		Vx:            speed * math.Cos(angle),
		Vy:            speed * math.Sin(angle),
	}
}

// Metric accumulates a scalar over the steps of a run.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every integration step.
type Observer interface {
	OnStep(step int, t float64, x State)
}

// Result is the outcome of one swing.
type Result struct {
	Trajectory []projectile.Point `json:"trajectory"`
	Releases   []Release          `json:"releases"`
	Steps      int                `json:"steps"`
	Metrics    map[string]float64 `json:"metrics"`
}

// LastRelease returns the final release snapshot, if any.
func (r *Result) LastRelease() (Release, bool) {
	if len(r.Releases) == 0 {
		return Release{}, false
	}
	return r.Releases[len(r.Releases)-1], true
}
