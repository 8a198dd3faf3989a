package main

import (
	"testing"

	"github.com/tomz197/destroid/internal/loop"
	"github.com/tomz197/destroid/internal/physics"
)

func TestNearestAsteroid(t *testing.T) {
	if _, ok := nearestAsteroid(loop.Snapshot{Player: physics.Vec{X: 400, Y: 400}}); ok {
		t.Fatal("expected no target without asteroids")
	}

	snap := loop.Snapshot{
		Player: physics.Vec{X: 400, Y: 400},
		Asteroids: []loop.AsteroidView{
			{ID: 1, Pos: physics.Vec{X: -300, Y: 400}},
			{ID: 2, Pos: physics.Vec{X: 450, Y: 380}},
			{ID: 3, Pos: physics.Vec{X: 900, Y: 900}},
		},
	}
	got, ok := nearestAsteroid(snap)
	if !ok || got != (physics.Vec{X: 450, Y: 380}) {
		t.Fatalf("got %v,%v want (450,380)", got, ok)
	}
}
