package ecs

// Time is the per-frame clock shared by systems.
type Time struct {
	delta   float64
	elapsed float64
	frames  uint64
}

// Delta is the seconds elapsed since the previous tick.
func (t *Time) Delta() float64 {
	if t == nil {
		return 0
	}
	return t.delta
}

// Elapsed is the total seconds since the first tick.
func (t *Time) Elapsed() float64 {
	if t == nil {
		return 0
	}
	return t.elapsed
}

// Frames counts ticks.
func (t *Time) Frames() uint64 {
	if t == nil {
		return 0
	}
	return t.frames
}

func (t *Time) advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	t.delta = dt
	t.elapsed += dt
	t.frames++
}
