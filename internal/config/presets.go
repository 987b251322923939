package config

import (
	"sort"

	"github.com/san-kum/golfsim/internal/swing"
)

var Presets = map[string]swing.Parameters{
	"reference": swing.ReferenceParameters(),
	"still": {
		Rc:             1.0,
		Dt:             0.01,
		SimulationTime: 2.0,
	},
	"driver": {
		Hip:            swing.SegmentParams{Theta0: -0.6, Alpha: 6.0},
		Shoulder:       swing.SegmentParams{Theta0: -1.2, Alpha: 12.0},
		Arm:            swing.SegmentParams{Theta0: -1.6, Alpha: 20.0},
		Rc:             1.1,
		Dt:             0.005,
		SimulationTime: 0.6,
	},
	"wedge": {
		Hip:            swing.SegmentParams{Theta0: -0.3, Alpha: 3.0},
		Shoulder:       swing.SegmentParams{Theta0: -0.6, Alpha: 6.0},
		Arm:            swing.SegmentParams{Theta0: -0.4, Alpha: 10.0},
		Rc:             0.9,
		Dt:             0.005,
		SimulationTime: 0.5,
	},
	"long-window": {
		Hip:            swing.SegmentParams{Alpha: 5.0},
		Shoulder:       swing.SegmentParams{Alpha: 10.0},
		Arm:            swing.SegmentParams{Alpha: 15.0},
		Rc:             1.0,
		Dt:             0.001,
		SimulationTime: 4.0,
	},
}

func GetPreset(name string) (swing.Parameters, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
