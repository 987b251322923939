package swing

import (
	"context"

	"github.com/san-kum/golfsim/internal/projectile"
)

type Simulator struct {
	metrics   []Metric
	observers []Observer
}

func New() *Simulator {
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates the swing described by p and evaluates the ball flight at
// every release instant.
//
// Iteration i runs at t = i*dt while t <= SimulationTime. The state is
// advanced first; the iteration releases when t+dt > SimulationTime.
func (s *Simulator) Run(ctx context.Context, p Parameters) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	var alpha [numSegments]float64
	for _, seg := range Segments {
		alpha[seg] = p.Segment(seg).Alpha
	}

	result := &Result{
		Trajectory: make([]projectile.Point, 0, 1),
		Releases:   make([]Release, 0, 1),
		Metrics:    make(map[string]float64),
	}

	x := NewState(p)
	for i := 0; ; i++ {
		t := float64(i) * p.Dt
		if t > p.SimulationTime {
			break
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		x.advance(alpha, p.Dt)
		result.Steps++

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(i, t, x)
		}

		if t+p.Dt > p.SimulationTime {
			rel := newRelease(i, t, p.Dt, x, p.Rc)
			result.Releases = append(result.Releases, rel)
			result.Trajectory = append(result.Trajectory, projectile.Evaluate(rel.Vx, rel.Vy))
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// Trajectory runs p without metrics or observers and returns the emitted points.
func Trajectory(p Parameters) ([]projectile.Point, error) {
	result, err := New().Run(context.Background(), p)
	if err != nil {
		return nil, err
	}
	return result.Trajectory, nil
}
