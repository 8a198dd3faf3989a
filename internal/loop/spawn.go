package loop

// SpawnController decides when asteroids appear and how many. The burst
// size grows with the score and never shrinks within a round.
type SpawnController struct {
	interval int
	timer    int
	count    int
}

// NewSpawnController returns a controller that fires every interval ticks.
func NewSpawnController(interval int) SpawnController {
	c := SpawnController{interval: interval}
	c.Reset()
	return c
}

// Reset restores the initial timer and a burst size of one.
func (c *SpawnController) Reset() {
	c.timer = c.interval
	c.count = 1
}

// Tick advances the timer by one tick and returns how many asteroids to
// spawn now (zero between bursts).
func (c *SpawnController) Tick(score int) int {
	c.timer--

	half := c.interval / 2
	if score > half {
		c.count = max(c.count, score/half)
	}

	if c.timer > 0 {
		return 0
	}
	c.timer = c.interval
	return c.count
}

// Timer returns the ticks remaining until the next burst.
func (c *SpawnController) Timer() int { return c.timer }

// Count returns the current burst size.
func (c *SpawnController) Count() int { return c.count }
