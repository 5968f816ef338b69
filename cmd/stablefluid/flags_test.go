package main

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/stablefluid/internal/config"
	"github.com/san-kum/stablefluid/internal/fluid"
)

func parse(t *testing.T, args ...string) (*cobra.Command, *simFlags) {
	t.Helper()
	var f simFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd.Flags())
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	return cmd, &f
}

func TestResolveDefaults(t *testing.T) {
	cmd, f := parse(t)
	cfg, err := f.resolve(cmd, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Grid.Width != config.DefaultWidth || cfg.Dt != config.DefaultDt {
		t.Errorf("expected defaults, got %dx%d dt=%g", cfg.Grid.Width, cfg.Grid.Height, cfg.Dt)
	}
}

func TestIterationsFlagDefault(t *testing.T) {
	cmd, f := parse(t)
	want := strconv.Itoa(fluid.DefaultIterations)
	if got := cmd.Flags().Lookup("iterations").DefValue; got != want || f.iterations != fluid.DefaultIterations {
		t.Errorf("expected iterations default %s, got %s (%d)", want, got, f.iterations)
	}
}

func TestResolvePreset(t *testing.T) {
	cmd, f := parse(t)
	cfg, err := f.resolve(cmd, "original")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Grid.Width != 16 || cfg.Diffusion != 0.1 {
		t.Errorf("preset not applied: %dx%d diffusion=%g", cfg.Grid.Width, cfg.Grid.Height, cfg.Diffusion)
	}
}

func TestResolveUnknownPreset(t *testing.T) {
	cmd, f := parse(t)
	if _, err := f.resolve(cmd, "nope"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestResolvePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("dt: 0.05\nticks: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd, f := parse(t, "--config", path, "--ticks", "3", "--project")
	cfg, err := f.resolve(cmd, "original")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Ticks != 3 {
		t.Errorf("flag should beat file: ticks=%d", cfg.Ticks)
	}
	if cfg.Dt != 0.05 {
		t.Errorf("file should beat preset: dt=%g", cfg.Dt)
	}
	if cfg.Grid.Width != 16 {
		t.Errorf("preset grid should survive: width=%d", cfg.Grid.Width)
	}
	if !cfg.Projection.Enabled {
		t.Error("--project should enable projection")
	}
}

func TestResolveRejectsInvalid(t *testing.T) {
	cmd, f := parse(t, "--width", "2")
	if _, err := f.resolve(cmd, ""); err == nil {
		t.Error("expected validation error for a 2-wide grid")
	}
}

func TestSetupLogging(t *testing.T) {
	if err := setupLogging("json", "debug"); err != nil {
		t.Errorf("json/debug: %v", err)
	}
	if err := setupLogging("text", "info"); err != nil {
		t.Errorf("text/info: %v", err)
	}
	if err := setupLogging("xml", "info"); err == nil {
		t.Error("expected error for unknown format")
	}
	if err := setupLogging("text", "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestParseGrid(t *testing.T) {
	names, ranges, err := parseGrid(map[string]string{"viscosity": "0:0.5", "diffusion": "1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "diffusion" || names[1] != "viscosity" {
		t.Fatalf("expected sorted names, got %v", names)
	}
	if len(ranges[1]) != 2 || ranges[1][1] != 0.5 || ranges[0][0] != 1 {
		t.Errorf("unexpected ranges %v", ranges)
	}
	if _, _, err := parseGrid(map[string]string{"dt": "x"}); err == nil {
		t.Error("expected parse error")
	}
	if _, _, err := parseGrid(nil); err == nil {
		t.Error("expected error for empty grid")
	}
}
