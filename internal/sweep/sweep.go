// Package sweep runs one swing per value of a single parameter, concurrently.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/golfsim/internal/logging"
	"github.com/san-kum/golfsim/internal/projectile"
	"github.com/san-kum/golfsim/internal/swing"
)

type Param string

const (
	Rc            Param = "rc"
	Dt            Param = "dt"
	Time          Param = "time"
	AlphaHip      Param = "alpha_h"
	AlphaShoulder Param = "alpha_s"
	AlphaArm      Param = "alpha_a"
)

// Params lists the parameters a sweep can vary.
var Params = []Param{Rc, Dt, Time, AlphaHip, AlphaShoulder, AlphaArm}

var (
	ErrUnknownParam = errors.New("sweep: unknown parameter")
	ErrInvalidRange = errors.New("sweep: invalid range")
)

// Apply returns a copy of p with param set to v.
func Apply(p swing.Parameters, param Param, v float64) (swing.Parameters, error) {
	switch param {
	case Rc:
		p.Rc = v
	case Dt:
		p.Dt = v
	case Time:
		p.SimulationTime = v
	case AlphaHip:
		p.Hip.Alpha = v
	case AlphaShoulder:
		p.Shoulder.Alpha = v
	case AlphaArm:
		p.Arm.Alpha = v
	default:
		return p, fmt.Errorf("%w: %q", ErrUnknownParam, param)
	}
	return p, nil
}

// Values spaces n values evenly over [min, max], both ends included.
func Values(min, max float64, n int) ([]float64, error) {
	if n < 1 || max < min {
		return nil, fmt.Errorf("%w: [%g, %g] in %d steps", ErrInvalidRange, min, max, n)
	}
	if n == 1 {
		return []float64{min}, nil
	}
	vals := make([]float64, n)
	step := (max - min) / float64(n-1)
	for i := range vals {
		vals[i] = min + float64(i)*step
	}
	vals[n-1] = max
	return vals, nil
}

type Sweep struct {
	Base     swing.Parameters
	Param    Param
	Min, Max float64
	Steps    int
	// Workers bounds concurrent runs; 0 means GOMAXPROCS.
	Workers int
	Logger  *logging.Logger
}

// Sample is the outcome for one parameter value.
type Sample struct {
	Value      float64
	Release    swing.Release
	Trajectory []projectile.Point
}

// Run simulates every value and returns samples in ascending parameter order.
// The first failing run cancels the rest.
func (s Sweep) Run(ctx context.Context) ([]Sample, error) {
	values, err := Values(s.Min, s.Max, s.Steps)
	if err != nil {
		return nil, err
	}
	if _, err := Apply(s.Base, s.Param, 0); err != nil {
		return nil, err
	}

	logger := s.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	samples := make([]Sample, len(values))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			p, _ := Apply(s.Base, s.Param, v)
			result, err := swing.New().Run(gctx, p)
			if err != nil {
				return fmt.Errorf("%s=%g: %w", s.Param, v, err)
			}

			samples[i] = Sample{Value: v, Trajectory: result.Trajectory}
			if rel, ok := result.LastRelease(); ok {
				samples[i].Release = rel
			}
			logger.Debug(gctx, "sweep sample", "param", string(s.Param), "value", v, "points", len(result.Trajectory))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return samples, nil
}

// Last returns the final trajectory point of a sample, or the zero point.
func (s Sample) Last() projectile.Point {
	if len(s.Trajectory) == 0 {
		return projectile.Point{}
	}
	return s.Trajectory[len(s.Trajectory)-1]
}
