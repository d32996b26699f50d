package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/neomatrix/internal/engine"
	"github.com/san-kum/neomatrix/internal/neopix"
	"github.com/san-kum/neomatrix/internal/scene"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scene.Name != "bounce" {
		t.Errorf("expected scene bounce, got %s", cfg.Scene.Name)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadSave(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "neomatrix.yaml")

	cfg := DefaultConfig()
	cfg.Matrix.Columns = 16
	cfg.Scene.Name = "orbit"
	cfg.Scene.Params = map[string]float64{"mass": 3}
	g.Expect(Save(path, cfg)).To(Succeed())

	loaded, err := Load(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(loaded).To(Equal(cfg))
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "partial.yaml")
	g.Expect(os.WriteFile(path, []byte("matrix:\n  rows: 16\ncolor:\n  format: gs8\n"), 0644)).To(Succeed())

	cfg, err := Load(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Matrix.Rows).To(Equal(16))
	g.Expect(cfg.Matrix.Columns).To(Equal(DefaultColumns))
	g.Expect(cfg.Color.Gamma).To(Equal(DefaultConfig().Color.Gamma))
	g.Expect(cfg.Validate()).To(Succeed())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("matrix: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero columns", func(c *Config) { c.Matrix.Columns = 0 }},
		{"wiring", func(c *Config) { c.Matrix.Wiring = "zigzag" }},
		{"format", func(c *Config) { c.Color.Format = "RGB888" }},
		{"gamma", func(c *Config) { c.Color.Gamma = 0 }},
		{"bit depth", func(c *Config) { c.Color.BitDepth = 17 }},
		{"brightness", func(c *Config) { c.Color.Brightness = 256 }},
		{"brightness between dim and full", func(c *Config) { c.Color.Brightness = 200 }},
		{"scene", func(c *Config) { c.Scene.Name = "plasma" }},
		{"frames", func(c *Config) { c.Scene.Frames = 0 }},
		{"fps", func(c *Config) { c.Scene.FPS = -1 }},
		{"bodies", func(c *Config) { c.Scene.Bodies = -2 }},
		{"mode", func(c *Config) { c.Display.Mode = "strobe" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Scene.Name = "plasma"
	if err := cfg.Validate(); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("expected ErrUnknownScene in chain, got %v", err)
	}
}

func TestStripAndEngine(t *testing.T) {
	g := NewWithT(t)
	cfg := DefaultConfig()
	cfg.Matrix.Wiring = "row_major"
	cfg.Color.Brightness = 100
	cfg.Display.Mode = "direct"
	cfg.Display.Reflect = false

	sc, err := cfg.Strip()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(sc.Wiring).To(Equal(neopix.RowMajor))
	g.Expect(sc.Columns).To(Equal(32))
	g.Expect(sc.Brightness).To(Equal(100))
	g.Expect(sc.GammaCorrect).To(BeTrue())

	ec, err := cfg.Engine()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ec).To(Equal(engine.Config{Frames: DefaultFrames, Mode: engine.ModeDirect, Reflect: false}))

	ss := cfg.SceneSettings()
	g.Expect(ss.Columns).To(Equal(32))
	g.Expect(ss.Rows).To(Equal(8))
	g.Expect(ss.Seed).To(Equal(int64(1)))
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("bounce", "syrup")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Scene.Params["drag"] != 1.2 {
		t.Errorf("expected drag 1.2, got %f", cfg.Scene.Params["drag"])
	}

	cfg.Scene.Params["drag"] = 9
	if GetPreset("bounce", "syrup").Scene.Params["drag"] != 1.2 {
		t.Error("preset was modified through a returned copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("bounce", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "rain") != nil {
		t.Error("expected nil for nonexistent scene")
	}
}

func TestListPresets(t *testing.T) {
	g := NewWithT(t)
	g.Expect(ListPresets("spring")).To(Equal([]string{"heavy", "soft", "stiff"}))
	g.Expect(ListPresets("nonexistent")).To(BeNil())
}

func TestPresets_Apply(t *testing.T) {
	for sceneName, presets := range Presets {
		for name := range presets {
			t.Run(sceneName+"/"+name, func(t *testing.T) {
				g := NewWithT(t)
				cfg := GetPreset(sceneName, name)
				g.Expect(cfg.Validate()).To(Succeed())
				g.Expect(cfg.Scene.Name).To(Equal(sceneName))

				sc, err := scene.New(cfg.Scene.Name, cfg.SceneSettings())
				g.Expect(err).NotTo(HaveOccurred())
				g.Expect(cfg.ApplyParams(sc)).To(Succeed())
				for k, v := range cfg.Scene.Params {
					g.Expect(sc.GetParams()).To(HaveKeyWithValue(k, v))
				}
			})
		}
	}
}

func TestApplyParams_Unknown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene.Params = map[string]float64{"warp": 9}
	sc, err := scene.New(cfg.Scene.Name, cfg.SceneSettings())
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.ApplyParams(sc); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
