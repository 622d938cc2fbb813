package config

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/veilcraft/soundscape/constant"
	"github.com/veilcraft/soundscape/engine"
)

func newSilentEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(
		engine.WithSink(engine.NullSink{}),
		engine.WithLogger(log.New(io.Discard, "", 0)))
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	t.Cleanup(e.Dispose)
	return e
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.MasterVolume != 1.0 {
		t.Errorf("Expected default master volume 1.0, got %v", cfg.MasterVolume)
	}
	if cfg.SampleRate != constant.SampleRate {
		t.Errorf("Expected default sample rate %d, got %d", constant.SampleRate, cfg.SampleRate)
	}
	if !cfg.OcclusionEnabled {
		t.Error("Expected occlusion enabled by default")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soundscape.json")
	data := `{"master_volume": 0.6, "occluded_cutoff": 900}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MasterVolume != 0.6 {
		t.Errorf("Expected file master volume 0.6, got %v", cfg.MasterVolume)
	}
	if cfg.OccludedCutoff != 900 {
		t.Errorf("Expected file cutoff 900, got %v", cfg.OccludedCutoff)
	}
	// Fields absent from the file keep defaults
	if cfg.OccludedVolume != constant.OccludedVolume {
		t.Errorf("Expected default occluded volume, got %v", cfg.OccludedVolume)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soundscape.json")
	if err := os.WriteFile(path, []byte(`{"master_volume": 0.6}`), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("SOUNDSCAPE_MASTER_VOLUME", "0.25")
	t.Setenv("SOUNDSCAPE_OCCLUSION", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MasterVolume != 0.25 {
		t.Errorf("Expected env to override file, got %v", cfg.MasterVolume)
	}
	if cfg.OcclusionEnabled {
		t.Error("Expected env to disable occlusion")
	}
}

func TestEnvIgnoresUnparseable(t *testing.T) {
	t.Setenv("SOUNDSCAPE_MASTER_VOLUME", "loud")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MasterVolume != 1.0 {
		t.Errorf("Expected unparseable env ignored, got %v", cfg.MasterVolume)
	}
}

func TestClamping(t *testing.T) {
	t.Setenv("SOUNDSCAPE_MASTER_VOLUME", "3.5")
	t.Setenv("SOUNDSCAPE_SAMPLE_RATE", "-1")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MasterVolume != 1.0 {
		t.Errorf("Expected master volume clamped to 1.0, got %v", cfg.MasterVolume)
	}
	if cfg.SampleRate != constant.SampleRate {
		t.Errorf("Expected invalid sample rate reset to default, got %d", cfg.SampleRate)
	}
}

func TestWatchReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "soundscape.json")
	if err := os.WriteFile(path, []byte(`{"master_volume": 0.8}`), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	e := newSilentEngine(t)
	stop, err := Watch(path, e, nil)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer stop()

	if err := os.WriteFile(path, []byte(`{"master_volume": 0.3}`), 0o644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if e.MasterVolume() == 0.3 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("Expected watcher to apply new volume 0.3, got %v", e.MasterVolume())
}
