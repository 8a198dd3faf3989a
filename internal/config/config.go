// Package config provides the YAML tuning for the simulation and shared
// environment helpers for the binaries.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Tuning contains every tunable constant of a DESTROID round.
type Tuning struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Loop       LoopConfig       `yaml:"loop"`
	Player     PlayerConfig     `yaml:"player"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Asteroid   AsteroidConfig   `yaml:"asteroid"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Score      ScoreConfig      `yaml:"score"`
}

// ArenaConfig defines the square play field.
type ArenaConfig struct {
	Size float64 `yaml:"size"`
}

// LoopConfig defines tick scheduling.
type LoopConfig struct {
	TickRate  int `yaml:"tick_rate"`
	FireQueue int `yaml:"fire_queue"` // fire events buffered between ticks
}

// PlayerConfig defines the ship.
type PlayerConfig struct {
	Speed float64 `yaml:"speed"`
	Size  float64 `yaml:"size"`
}

// ProjectileConfig defines projectile motion and culling.
type ProjectileConfig struct {
	Speed        float64 `yaml:"speed"`
	MinComponent float64 `yaml:"min_component"`
	Size         float64 `yaml:"size"`
	CullMargin   float64 `yaml:"cull_margin"`
}

// AsteroidConfig defines asteroid generation and culling.
type AsteroidConfig struct {
	MinSize      float64 `yaml:"min_size"`
	MaxSize      float64 `yaml:"max_size"`
	Speed        float64 `yaml:"speed"`
	MaxVariance  float64 `yaml:"max_variance"`
	CullDistance float64 `yaml:"cull_distance"`
}

// SpawnConfig defines the asteroid spawn schedule.
type SpawnConfig struct {
	Interval int `yaml:"interval"` // ticks between spawn bursts
}

// ScoreConfig defines score accounting.
type ScoreConfig struct {
	Multiplier int `yaml:"multiplier"`
}

// TickInterval returns the wall-clock duration of one tick.
func (t Tuning) TickInterval() time.Duration {
	return time.Second / time.Duration(t.Loop.TickRate)
}

// Validate reports every invalid field.
func (t Tuning) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(t.Arena.Size > 0, "arena.size must be positive, got %v", t.Arena.Size)
	check(t.Loop.TickRate > 0, "loop.tick_rate must be positive, got %d", t.Loop.TickRate)
	check(t.Loop.FireQueue > 0, "loop.fire_queue must be positive, got %d", t.Loop.FireQueue)
	check(t.Player.Speed > 0, "player.speed must be positive, got %v", t.Player.Speed)
	check(t.Player.Size > 0, "player.size must be positive, got %v", t.Player.Size)
	check(t.Projectile.Speed > 0, "projectile.speed must be positive, got %v", t.Projectile.Speed)
	check(t.Projectile.MinComponent >= 0, "projectile.min_component must not be negative, got %v", t.Projectile.MinComponent)
	check(t.Projectile.Size > 0, "projectile.size must be positive, got %v", t.Projectile.Size)
	check(t.Projectile.CullMargin >= 0, "projectile.cull_margin must not be negative, got %v", t.Projectile.CullMargin)
	check(t.Asteroid.MinSize > 0, "asteroid.min_size must be positive, got %v", t.Asteroid.MinSize)
	check(t.Asteroid.MaxSize > t.Asteroid.MinSize, "asteroid.max_size (%v) must exceed asteroid.min_size (%v)", t.Asteroid.MaxSize, t.Asteroid.MinSize)
	check(t.Asteroid.Speed > 0, "asteroid.speed must be positive, got %v", t.Asteroid.Speed)
	check(t.Asteroid.MaxVariance > 1, "asteroid.max_variance must exceed 1, got %v", t.Asteroid.MaxVariance)
	check(t.Asteroid.CullDistance > 0, "asteroid.cull_distance must be positive, got %v", t.Asteroid.CullDistance)
	check(t.Spawn.Interval > 1, "spawn.interval must exceed 1, got %d", t.Spawn.Interval)
	check(t.Score.Multiplier > 0, "score.multiplier must be positive, got %d", t.Score.Multiplier)

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid tuning: %w", errors.Join(errs...))
	}
	return nil
}
