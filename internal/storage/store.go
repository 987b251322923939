package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/golfsim/internal/projectile"
	"github.com/san-kum/golfsim/internal/swing"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

// ErrRunNotFound is returned when no run with the requested id exists.
var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Preset     string             `json:"preset,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	Parameters swing.Parameters   `json:"parameters"`
	Steps      int                `json:"steps"`
	Releases   []swing.Release    `json:"releases"`
	Metrics    map[string]float64 `json:"metrics"`
	Output     string             `json:"output,omitempty"`
}

// LastRelease returns the final release of the run, if any.
func (m RunMetadata) LastRelease() (swing.Release, bool) {
	if len(m.Releases) == 0 {
		return swing.Release{}, false
	}
	return m.Releases[len(m.Releases)-1], true
}

// RunDir is the directory holding a run's files.
func (s *Store) RunDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

// Save writes the run into its own directory and returns the run id. A run
// that fails to write is removed.
func (s *Store) Save(preset string, params swing.Parameters, result *swing.Result, output string) (runID string, err error) {
	ts := s.now()
	runID = fmt.Sprintf("swing_%d", ts.UnixNano())
	runDir := s.RunDir(runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
			runID = ""
		}
	}()

	meta := RunMetadata{
		ID:         runID,
		Preset:     preset,
		Timestamp:  ts,
		Parameters: params,
		Steps:      result.Steps,
		Releases:   result.Releases,
		Metrics:    result.Metrics,
		Output:     output,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), result.Trajectory); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeFile(f, &err)

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrajectory(path string, points []projectile.Point) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeFile(f, &err)

	if err := WriteCSV(f, points); err != nil {
		return err
	}
	return f.Sync()
}

// closeFile closes f and reports the close error unless err is already set.
func closeFile(f *os.File, err *error) {
	if cerr := f.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("close %s: %w", f.Name(), cerr)
	}
}

// WriteCSV writes points as range,max_height rows under a header.
func WriteCSV(w io.Writer, points []projectile.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"range", "max_height"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.Range, 'g', -1, 64),
			strconv.FormatFloat(p.MaxHeight, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) ([]projectile.Point, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 2

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s trajectory: %w", runID, err)
	}

	if len(records) < 2 {
		return []projectile.Point{}, nil
	}

	points := make([]projectile.Point, 0, len(records)-1)
	for i, record := range records[1:] {
		rng, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d range: %w", i+1, err)
		}
		height, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d max_height: %w", i+1, err)
		}
		points = append(points, projectile.Point{Range: rng, MaxHeight: height})
	}

	return points, nil
}
