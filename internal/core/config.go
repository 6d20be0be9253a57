package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TicksFor converts a wall-clock period into a whole number of simulation ticks
// at the given tick rate. The result is never below 1.
func TicksFor(period time.Duration, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	tickLen := time.Second / time.Duration(tickRate)
	n := int((period + tickLen/2) / tickLen)
	if n < 1 {
		return 1
	}
	return n
}

// RNG is the random source games draw from. *math/rand.Rand satisfies it;
// tests inject scripted sequences.
type RNG interface {
	Intn(n int) int
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
