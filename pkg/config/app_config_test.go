package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/planetary/pkg/kinematics"
)

// TestLoadAppConfig 测试配置文件加载
func TestLoadAppConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		tempDir := t.TempDir()
		testFile := filepath.Join(tempDir, "stages.yaml")

		validYAML := `window:
  width: 1280
  title: "Gears"
stages:
  - name: classic
    teeth: {sun: 20, planet: 16, ring: 52}
  - name: derived
    derive: planet
    teeth: {sun: 24, ring: 60}
    speeds: {sun: 0, carrier: 1}
    planetCount: 3
    colors:
      sun: tomato
      planet: "#0f08"
`
		if err := os.WriteFile(testFile, []byte(validYAML), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		cfg, err := LoadAppConfig(testFile)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		if cfg.Window.Width != 1280 || cfg.Window.Height != DefaultWindowHeight || cfg.Window.Title != "Gears" {
			t.Errorf("Unexpected window config: %+v", cfg.Window)
		}
		if len(cfg.Stages) != 2 {
			t.Fatalf("Expected 2 stages, got %d", len(cfg.Stages))
		}

		classic := cfg.Stages[0]
		if classic.SpeedsValue() != (kinematics.Speeds{Sun: 8, Carrier: 4, Ring: 2}) {
			t.Errorf("Expected default speeds, got %+v", classic.SpeedsValue())
		}
		if classic.Planets() != kinematics.DefaultPlanetCount || classic.CanvasSize != DefaultCanvasSize {
			t.Errorf("Expected default planet count and canvas size, got %d / %f", classic.Planets(), classic.CanvasSize)
		}

		derived := cfg.Stages[1]
		if derived.Teeth.Planet != 18 {
			t.Errorf("Expected derived planet 18, got %d", derived.Teeth.Planet)
		}
		if derived.SpeedsValue() != (kinematics.Speeds{Sun: 0, Carrier: 1, Ring: DefaultRingSpeed}) {
			t.Errorf("Explicit zero speed should be kept, got %+v", derived.SpeedsValue())
		}
		if derived.Planets() != 3 {
			t.Errorf("Expected 3 planets, got %d", derived.Planets())
		}
		colors, err := derived.Colors.Resolve()
		if err != nil {
			t.Fatalf("Resolve colors failed: %v", err)
		}
		if r, _, _, _ := colors.Sun.RGBA(); r>>8 != 0xff {
			t.Errorf("Sun should be tomato, got %v", colors.Sun)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		if _, err := ParseAppConfig([]byte("stages: [")); err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})
}

func TestParseAppConfigEmptyUsesDefaultStage(t *testing.T) {
	cfg, err := ParseAppConfig([]byte(""))
	if err != nil {
		t.Fatalf("Empty config should be valid: %v", err)
	}
	if len(cfg.Stages) != 1 || cfg.Stages[0].TeethValue() != (kinematics.Teeth{Sun: 20, Planet: 16, Ring: 52}) {
		t.Errorf("Expected the default stage, got %+v", cfg.Stages)
	}
}

func TestStageValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{"ratio mismatch", "stages:\n  - teeth: {sun: 20, planet: 16, ring: 53}\n", kinematics.ErrRatioMismatch},
		{"too few teeth", "stages:\n  - teeth: {sun: 4, planet: 8, ring: 20}\n", kinematics.ErrTooFewTeeth},
		{"impossible derive", "stages:\n  - derive: planet\n    teeth: {sun: 20, ring: 51}\n", kinematics.ErrImpossibleToothCount},
		{"bad color", "stages:\n  - teeth: {sun: 20, planet: 16, ring: 52}\n    colors: {sun: notacolor}\n", ErrInvalidColor},
		{"bad derive member", "stages:\n  - derive: moon\n    teeth: {sun: 20, planet: 16, ring: 52}\n", nil},
		{"too many planets", "stages:\n  - teeth: {sun: 20, planet: 16, ring: 52}\n    planetCount: 1000\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAppConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMismatchAllowed(t *testing.T) {
	cfg, err := ParseAppConfig([]byte("stages:\n  - teeth: {sun: 20, planet: 16, ring: 53}\n    allowMismatch: true\n"))
	if err != nil {
		t.Fatalf("Mismatch should be allowed: %v", err)
	}
	if cfg.Stages[0].Teeth.Ring != 53 {
		t.Errorf("Ring teeth should be kept, got %d", cfg.Stages[0].Teeth.Ring)
	}
}

func TestAutoDeriveSingleMissingMember(t *testing.T) {
	sc := StageConfig{Teeth: TeethConfig{Sun: 20, Planet: 16}}
	if err := sc.Normalize(); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if sc.Teeth.Ring != 52 || sc.Derive != "ring" {
		t.Errorf("Expected ring derived as 52, got %+v (derive %q)", sc.Teeth, sc.Derive)
	}

	// 再次 Normalize 结果不变
	if err := sc.Normalize(); err != nil || sc.Teeth.Ring != 52 {
		t.Errorf("Normalize should be idempotent: %+v, %v", sc.Teeth, err)
	}
}

func TestSettersOverrideDefaults(t *testing.T) {
	sc := DefaultStageConfig()
	sc.SetPlanets(0)
	sc.SetSpeeds(kinematics.Speeds{})
	if err := sc.Normalize(); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if sc.Planets() != 0 || !sc.SpeedsValue().IsZero() {
		t.Errorf("Explicit zero values should survive defaults: %d, %+v", sc.Planets(), sc.SpeedsValue())
	}
}
