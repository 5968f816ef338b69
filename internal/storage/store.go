package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/stablefluid/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	seriesFile   = "series.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Preset     string             `json:"preset"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Diffusion  float64            `json:"diffusion"`
	Viscosity  float64            `json:"viscosity"`
	Project    bool               `json:"project"`
	Dt         float64            `json:"dt"`
	Ticks      int                `json:"ticks"`
	FrameEvery int                `json:"frame_every"`
	ElapsedMS  float64            `json:"elapsed_ms"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a run directory and returns its id. An empty meta.ID is
// generated from the preset name and the current time.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	if meta.ID == "" {
		name := meta.Preset
		if name == "" {
			name = "run"
		}
		meta.ID = fmt.Sprintf("%s_%d", name, now.UnixNano())
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = now
	}
	meta.Ticks = result.Ticks
	meta.Metrics = result.Metrics
	meta.ElapsedMS = float64(result.Elapsed.Microseconds()) / 1000

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("writing metadata: %w", err)
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), result.Frames); err != nil {
		return "", fmt.Errorf("writing frames: %w", err)
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), result.Series); err != nil {
		return "", fmt.Errorf("writing series: %w", err)
	}

	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeFrames stores one row per frame: tick, time, then every cell in
// row-major order.
func writeFrames(path string, frames []sim.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if len(frames) > 0 {
		header := []string{"tick", "time"}
		for i := range frames[0].Density {
			header = append(header, fmt.Sprintf("c%d", i))
		}
		if err := w.Write(header); err != nil {
			return err
		}
	}

	for _, fr := range frames {
		row := make([]string, 0, len(fr.Density)+2)
		row = append(row, strconv.Itoa(fr.Tick), strconv.FormatFloat(fr.Time, 'g', -1, 64))
		for _, v := range fr.Density {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func writeSeries(path string, series []sim.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteSeriesCSV(f, series)
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	cells := meta.Width * meta.Height
	frames := make([]sim.Frame, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != cells+2 {
			return nil, fmt.Errorf("frame %d: expected %d columns, got %d", i, cells+2, len(record))
		}
		tick, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		t, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}

		density := make([]float64, cells)
		for j := range density {
			density[j], err = strconv.ParseFloat(record[j+2], 64)
			if err != nil {
				return nil, fmt.Errorf("frame %d cell %d: %w", i, j, err)
			}
		}
		frames = append(frames, sim.Frame{Tick: tick, Time: t, W: meta.Width, H: meta.Height, Density: density})
	}

	return frames, nil
}

func (s *Store) LoadSeries(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	series := []sim.Sample{}
	if err := gocsv.Unmarshal(file, &series); err != nil {
		return nil, fmt.Errorf("reading series: %w", err)
	}
	return series, nil
}
