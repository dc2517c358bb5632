package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning is the gameplay parameter set. Zero values are replaced by the
// defaults below so a partial file stays valid.
type Tuning struct {
	CellSizeDegrees    float64 `yaml:"cell_size_degrees"`
	SpawnChance        float64 `yaml:"spawn_chance"`
	InteractionRadius  int     `yaml:"interaction_radius"`
	ViewportMarginCell int     `yaml:"viewport_margin_cells"`
	WinTarget          int64   `yaml:"win_target"`

	// Generator selects the base-value oracle: "hash" for uniform
	// speckle, "noise" for clustered fields.
	Generator      string  `yaml:"generator"`
	GeneratorSalt  string  `yaml:"generator_salt"`
	NoiseSeed      int64   `yaml:"noise_seed"`
	NoiseFrequency float64 `yaml:"noise_frequency"`

	StartRow int `yaml:"start_row"`
	StartCol int `yaml:"start_col"`
}

func DefaultTuning() Tuning {
	return Tuning{
		CellSizeDegrees:    0.0005,
		SpawnChance:        0.2,
		InteractionRadius:  1,
		ViewportMarginCell: 1,
		WinTarget:          2048,
		Generator:          "hash",
		GeneratorSalt:      "v1",
		NoiseSeed:          1337,
		NoiseFrequency:     0.1,
	}
}

func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t.withDefaults(), nil
}

func (t Tuning) withDefaults() Tuning {
	def := DefaultTuning()
	if t.CellSizeDegrees <= 0 {
		t.CellSizeDegrees = def.CellSizeDegrees
	}
	if t.SpawnChance <= 0 || t.SpawnChance >= 1 {
		t.SpawnChance = def.SpawnChance
	}
	if t.InteractionRadius <= 0 {
		t.InteractionRadius = def.InteractionRadius
	}
	if t.ViewportMarginCell < 0 {
		t.ViewportMarginCell = def.ViewportMarginCell
	}
	if t.WinTarget <= 0 {
		t.WinTarget = def.WinTarget
	}
	if t.Generator == "" {
		t.Generator = def.Generator
	}
	if t.GeneratorSalt == "" {
		t.GeneratorSalt = def.GeneratorSalt
	}
	if t.NoiseFrequency <= 0 {
		t.NoiseFrequency = def.NoiseFrequency
	}
	return t
}
