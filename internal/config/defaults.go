package config

import (
	_ "embed"
)

//go:embed defaults/destroid.yaml
var defaultTuningYAML []byte

// Default returns the hardcoded tuning. It matches defaults/destroid.yaml.
func Default() Tuning {
	return Tuning{
		Arena: ArenaConfig{Size: 800},
		Loop: LoopConfig{
			TickRate:  60,
			FireQueue: 16,
		},
		Player: PlayerConfig{
			Speed: 10,
			Size:  48,
		},
		Projectile: ProjectileConfig{
			Speed:        0.1,
			MinComponent: 15,
			Size:         8,
			CullMargin:   10,
		},
		Asteroid: AsteroidConfig{
			MinSize:      16,
			MaxSize:      128,
			Speed:        0.007,
			MaxVariance:  300,
			CullDistance: 1600, // two arena widths from the spawn origin
		},
		Spawn: SpawnConfig{Interval: 120},
		Score: ScoreConfig{Multiplier: 3},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTuningYAML
}
