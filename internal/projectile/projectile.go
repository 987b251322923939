// Package projectile evaluates drag-free ballistic flight under constant gravity.
//
// All distances are in metres, velocities in m/s and time in seconds.
package projectile

import "github.com/go-gl/mathgl/mgl64"

// Gravity is the downward acceleration applied to the ball, m/s².
const Gravity = 9.81

// Point is one trajectory sample: landing range and apex height.
type Point struct {
	Range     float64 `json:"range"`
	MaxHeight float64 `json:"max_height"`
}

// Evaluate returns the landing range and peak height of a ball launched with
// velocity (vx, vy) from ground level.
//
// A downward launch (vy < 0) is evaluated with the same formulas and yields a
// negative flight time and range; MaxHeight stays non-negative.
func Evaluate(vx, vy float64) Point {
	tFlight := FlightTime(vy)
	return Point{
		Range:     vx * tFlight,
		MaxHeight: vy * vy / (2 * Gravity),
	}
}

// FlightTime is the time until the ball returns to launch height.
func FlightTime(vy float64) float64 {
	return 2 * vy / Gravity
}

// FlightPath samples n positions along the parabola from launch to landing.
// It returns nil when n < 2 or the ball never leaves the ground (vy <= 0).
func FlightPath(vx, vy float64, n int) []mgl64.Vec2 {
	tFlight := FlightTime(vy)
	if n < 2 || tFlight <= 0 {
		return nil
	}

	v0 := mgl64.Vec2{vx, vy}
	g := mgl64.Vec2{0, -Gravity}
	step := tFlight / float64(n-1)

	path := make([]mgl64.Vec2, n)
	for i := range path {
		t := float64(i) * step
		path[i] = v0.Mul(t).Add(g.Mul(0.5 * t * t))
	}
	// pin the landing sample to the closed-form range
	path[n-1] = mgl64.Vec2{vx * tFlight, 0}
	return path
}
