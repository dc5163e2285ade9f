package render

import "time"

// fpsWindow is the span frames are averaged over
const fpsWindow = time.Second

// FPSCounter measures frames per second over a rolling one-second window
type FPSCounter struct {
	windowStart time.Time
	frames      int
	fps         float64
}

// Tick records a frame at now and returns the latest measurement
// The value updates once per elapsed window; zero until the first window completes
func (c *FPSCounter) Tick(now time.Time) float64 {
	if c.windowStart.IsZero() {
		c.windowStart = now
	}
	c.frames++
	if elapsed := now.Sub(c.windowStart); elapsed >= fpsWindow {
		c.fps = float64(c.frames) / elapsed.Seconds()
		c.frames = 0
		c.windowStart = now
	}
	return c.fps
}

// FPS returns the last measurement
func (c *FPSCounter) FPS() float64 {
	return c.fps
}
