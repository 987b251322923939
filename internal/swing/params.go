package swing

import "math"

// Segment identifies one rotating body part.
type Segment int

const (
	Hip Segment = iota
	Shoulder
	Arm

	numSegments
)

// Segments lists every segment in state order.
var Segments = [numSegments]Segment{Hip, Shoulder, Arm}

func (s Segment) String() string {
	switch s {
	case Hip:
		return "hip"
	case Shoulder:
		return "shoulder"
	case Arm:
		return "arm"
	default:
		return "unknown"
	}
}

// SegmentParams is the initial condition and constant drive of one segment.
type SegmentParams struct {
	Theta0 float64 `yaml:"theta0" json:"theta0"` // rad
	Omega0 float64 `yaml:"omega0" json:"omega0"` // rad/s
	Alpha  float64 `yaml:"alpha" json:"alpha"`   // rad/s²
}

// Parameters configures one swing. It is treated as immutable once a run starts.
type Parameters struct {
	Hip      SegmentParams `yaml:"hip" json:"hip"`
	Shoulder SegmentParams `yaml:"shoulder" json:"shoulder"`
	Arm      SegmentParams `yaml:"arm" json:"arm"`

	// Rc converts the summed angular velocity into clubhead speed, m.
	Rc float64 `yaml:"rc" json:"rc"`
	// Dt is the integration timestep, s.
	Dt float64 `yaml:"dt" json:"dt"`
	// SimulationTime is the swing duration before release, s.
	SimulationTime float64 `yaml:"simulation_time" json:"simulation_time"`
}

// ReferenceParameters returns the fixed swing the tool runs by default.
func ReferenceParameters() Parameters {
	return Parameters{
		Hip:            SegmentParams{Alpha: 5.0},
		Shoulder:       SegmentParams{Alpha: 10.0},
		Arm:            SegmentParams{Alpha: 15.0},
		Rc:             1.0,
		Dt:             0.01,
		SimulationTime: 2.0,
	}
}

// Segment returns the parameters of segment s.
func (p Parameters) Segment(s Segment) SegmentParams {
	switch s {
	case Hip:
		return p.Hip
	case Shoulder:
		return p.Shoulder
	default:
		return p.Arm
	}
}

// Validate reports the first parameter a run cannot accept.
func (p Parameters) Validate() error {
	for _, s := range Segments {
		sp := p.Segment(s)
		for _, f := range []struct {
			name string
			v    float64
		}{
			{s.String() + ".theta0", sp.Theta0},
			{s.String() + ".omega0", sp.Omega0},
			{s.String() + ".alpha", sp.Alpha},
		} {
			if !isFinite(f.v) {
				return &ParameterError{Field: f.name, Value: f.v, Wrapped: ErrNonFinite}
			}
		}
	}
	if !isFinite(p.Rc) {
		return &ParameterError{Field: "rc", Value: p.Rc, Wrapped: ErrNonFinite}
	}
	if !isFinite(p.Dt) {
		return &ParameterError{Field: "dt", Value: p.Dt, Wrapped: ErrNonFinite}
	}
	if p.Dt <= 0 {
		return &ParameterError{Field: "dt", Value: p.Dt, Wrapped: ErrNonPositiveTimestep}
	}
	if !isFinite(p.SimulationTime) {
		return &ParameterError{Field: "simulation_time", Value: p.SimulationTime, Wrapped: ErrNonFinite}
	}
	if p.SimulationTime <= 0 {
		return &ParameterError{Field: "simulation_time", Value: p.SimulationTime, Wrapped: ErrNonPositiveDuration}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
