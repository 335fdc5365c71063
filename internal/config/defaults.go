package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the hardcoded default configuration.
// It matches defaults/tetris.yaml and is used when the embedded file cannot be parsed.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Rows:    18,
			Columns: 10,
		},
		Speed: SpeedConfig{
			Enabled:        true,
			BaseIntervalMs: 1000,
			DecrementMs:    100,
			MinIntervalMs:  100,
			Threshold:      200,
			ThresholdStep:  200,
		},
		Scoring: ScoringConfig{
			PointsPerLine: 10,
		},
		Input: InputConfig{
			SoftDropIntervalMs: 50,
		},
		Rotation: RotationConfig{
			Kicks: []KickConfig{
				{DX: 0, DY: 0},
				{DX: -1, DY: 0},
				{DX: 1, DY: 0},
				{DX: -2, DY: 0},
				{DX: 2, DY: 0},
			},
		},
		Pieces: PiecesConfig{
			Randomizer: RandomizerBag,
		},
		Player: PlayerConfig{
			MaxNameLength: 10,
		},
		Persistence: PersistenceConfig{
			FetchTimeoutMs:  3000,
			SubmitTimeoutMs: 5000,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
