package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/stablefluid/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Frames: []sim.Frame{
			{Tick: 0, Time: 0, W: 3, H: 3, Density: make([]float64, 9)},
			{Tick: 2, Time: 0.2, W: 3, H: 3, Density: []float64{0, 0, 0, 0, 0.123456789012, 0, 0, 0, 1e-9}},
		},
		Series: []sim.Sample{
			{Tick: 1, Time: 0.1, Mass: 1, Peak: 0.5, Energy: 0.25, Divergence: 0.01},
			{Tick: 2, Time: 0.2, Mass: 0.9, Peak: 0.4, Energy: 0.2, Divergence: 0.02},
		},
		Metrics: map[string]float64{"mass": 0.9},
		Ticks:   2,
		Elapsed: 1500 * time.Microsecond,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Preset: "calm", Seed: 42, Width: 3, Height: 3, Dt: 0.1}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "calm_") {
		t.Errorf("expected id prefixed with preset, got %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Seed != 42 || meta.Ticks != 2 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Metrics["mass"] != 0.9 {
		t.Errorf("expected mass 0.9, got %f", meta.Metrics["mass"])
	}
	if meta.ElapsedMS != 1.5 {
		t.Errorf("expected 1.5ms, got %f", meta.ElapsedMS)
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[1].Tick != 2 || frames[1].W != 3 {
		t.Errorf("unexpected frame header %+v", frames[1])
	}
	if frames[1].Density[4] != 0.123456789012 || frames[1].Density[8] != 1e-9 {
		t.Errorf("density lost precision: %v", frames[1].Density)
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(series) != 2 || series[1] != testResult().Series[1] {
		t.Errorf("unexpected series %+v", series)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"b", "a", "c"} {
		meta := RunMetadata{ID: id, Width: 3, Height: 3, Timestamp: base.Add(time.Duration(i) * time.Minute)}
		if _, err := st.Save(meta, testResult()); err != nil {
			t.Fatalf("save %s failed: %v", id, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(st.baseDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[0].ID != "b" || runs[2].ID != "c" {
		t.Errorf("expected runs ordered by timestamp, got %s %s %s", runs[0].ID, runs[1].ID, runs[2].ID)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "nope")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreLoadNotFound(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nonexistent"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	r := testResult()
	if err := ExportJSON(&buf, RunMetadata{ID: "x"}, r.Series, r.Frames); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Run.ID != "x" || len(got.Series) != 2 || len(got.Frames) != 2 {
		t.Errorf("unexpected export %+v", got)
	}
}

func TestWriteSeriesCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSeriesCSV(&buf, testResult().Series); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "tick,time,mass,peak,energy,divergence" {
		t.Errorf("unexpected header %q", lines[0])
	}
}
