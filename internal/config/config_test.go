package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := decode(DefaultYAML())
	if err != nil {
		t.Fatalf("decode(embedded) failed: %v", err)
	}
	def := DefaultTetrisConfig()

	if cfg.Board != def.Board {
		t.Errorf("Board = %+v, expected %+v", cfg.Board, def.Board)
	}
	if cfg.Speed != def.Speed {
		t.Errorf("Speed = %+v, expected %+v", cfg.Speed, def.Speed)
	}
	if len(cfg.Rotation.Kicks) != len(def.Rotation.Kicks) {
		t.Fatalf("Kicks = %v, expected %v", cfg.Rotation.Kicks, def.Rotation.Kicks)
	}
	for i := range def.Rotation.Kicks {
		if cfg.Rotation.Kicks[i] != def.Rotation.Kicks[i] {
			t.Errorf("Kick[%d] = %+v, expected %+v", i, cfg.Rotation.Kicks[i], def.Rotation.Kicks[i])
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestLoadTetrisCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "board:\n  rows: 20\nspeed:\n  base_interval_ms: 700\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris() failed: %v", err)
	}
	if cfg.Board.Rows != 20 {
		t.Errorf("Board.Rows = %d, expected 20", cfg.Board.Rows)
	}
	if cfg.Board.Columns != 10 {
		t.Errorf("Board.Columns = %d, expected default 10", cfg.Board.Columns)
	}
	if cfg.Speed.BaseInterval() != 700*time.Millisecond {
		t.Errorf("BaseInterval() = %v, expected 700ms", cfg.Speed.BaseInterval())
	}
	if cfg.Scoring.PointsPerLine != 10 {
		t.Errorf("PointsPerLine = %d, expected default 10", cfg.Scoring.PointsPerLine)
	}
}

func TestLoadTetrisMissingCustomPath(t *testing.T) {
	_, err := LoadTetris(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("LoadTetris() with missing file should fail")
	}
}

func TestLoadTetrisInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := "pieces:\n  randomizer: shuffle\nrotation:\n  kicks: []\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadTetris(path)
	if err == nil {
		t.Fatal("LoadTetris() should reject invalid values")
	}
	if !strings.Contains(err.Error(), "randomizer") || !strings.Contains(err.Error(), "kicks") {
		t.Errorf("error should mention every invalid field, got %v", err)
	}
}

func TestApplyTetrisPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		baseMs      int
		speedScales bool
	}{
		{"", 1000, true},
		{DifficultyEasy, 1300, true},
		{DifficultyNormal, 1000, true},
		{DifficultyHard, 600, true},
		{DifficultyFixed, 1000, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			ApplyTetrisPreset(&cfg, tc.preset)
			if cfg.Speed.BaseIntervalMs != tc.baseMs {
				t.Errorf("BaseIntervalMs = %d, expected %d", cfg.Speed.BaseIntervalMs, tc.baseMs)
			}
			if cfg.Speed.Enabled != tc.speedScales {
				t.Errorf("Speed.Enabled = %v, expected %v", cfg.Speed.Enabled, tc.speedScales)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() after preset = %v", err)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	if _, err := ParseDifficulty("hard"); err != nil {
		t.Errorf("ParseDifficulty(hard) = %v", err)
	}
	if _, err := ParseDifficulty("insane"); err == nil {
		t.Error("ParseDifficulty(insane) should fail")
	}
}

func TestValidateReportsEverySetting(t *testing.T) {
	cfg := DefaultTetrisConfig()
	cfg.Board.Rows = 2
	cfg.Pieces.Randomizer = "dice"
	cfg.Player.MaxNameLength = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, expected errors")
	}
	for _, want := range []string{"board must be at least 4x4", `pieces.randomizer "dice"`, "player.max_name_length"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() = %q, missing %q", err, want)
		}
	}
}
