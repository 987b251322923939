package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/golfsim/internal/projectile"
)

type ExportData struct {
	RunMetadata
	Trajectory []projectile.Point `json:"trajectory"`
}

// ExportJSON writes a run's metadata and trajectory as one indented document.
func ExportJSON(w io.Writer, meta *RunMetadata, points []projectile.Point) error {
	data := ExportData{
		RunMetadata: *meta,
		Trajectory:  points,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
