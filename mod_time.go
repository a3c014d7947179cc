package trex

import (
	"time"
)

const (
	DefaultMaxFrameRate   = 120
	DefaultSpikeThreshold = 2.0
	DefaultSpikeDt        = 0.00001
)

// Time is the frame clock. Dt is in seconds and is what every system
// integrates with.
type Time struct {
	Time time.Time
	Dt   float32

	Frames  uint64
	Elapsed float64

	// MaxFrameRate caps how often a frame is committed.
	MaxFrameRate float32
	// A frame longer than SpikeThreshold seconds is replaced by SpikeDt so a
	// stall cannot produce one huge physics step.
	SpikeThreshold float32
	SpikeDt        float32
	// Spiked reports whether the last committed frame had its Dt replaced.
	Spiked bool
	Spikes uint64
}

func NewTime(now time.Time) *Time {
	return &Time{
		Time:           now,
		MaxFrameRate:   DefaultMaxFrameRate,
		SpikeThreshold: DefaultSpikeThreshold,
		SpikeDt:        DefaultSpikeDt,
	}
}

// Advance tries to commit a frame at now. It returns how long the caller must
// wait before the frame may run; zero means Dt has been updated.
func (t *Time) Advance(now time.Time) time.Duration {
	elapsed := now.Sub(t.Time)
	if t.MaxFrameRate > 0 {
		minFrame := time.Duration(float64(time.Second) / float64(t.MaxFrameRate))
		if elapsed < minFrame {
			return minFrame - elapsed
		}
	}

	dt := float32(elapsed.Seconds())
	t.Spiked = dt > t.SpikeThreshold
	if t.Spiked {
		dt = t.SpikeDt
		t.Spikes++
	}

	t.Dt = dt
	t.Time = now
	t.Frames++
	t.Elapsed += float64(dt)
	return 0
}

func (t *Time) AverageFPS() float64 {
	if t.Elapsed <= 0 {
		return 0
	}
	return float64(t.Frames) / t.Elapsed
}

type TimeModule struct {
	MaxFrameRate   float32
	SpikeThreshold float32
	SpikeDt        float32
	// Spiked reports whether the last committed frame had its Dt replaced.
	Spiked bool
	Spikes uint64
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	clock := NewTime(time.Now())
	if mod.MaxFrameRate > 0 {
		clock.MaxFrameRate = mod.MaxFrameRate
	}
	if mod.SpikeThreshold > 0 {
		clock.SpikeThreshold = mod.SpikeThreshold
	}
	if mod.SpikeDt > 0 {
		clock.SpikeDt = mod.SpikeDt
	}

	cmd.AddResources(clock)
	cmd.OnShutdown("time", func() {
		app.Logger().Infof("Average FPS: %.1f over %d frames (%d stalls)", clock.AverageFPS(), clock.Frames, clock.Spikes)
	})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude),
	)
}

func timeSystem(cmd *Commands, clock *Time) {
	for {
		wait := clock.Advance(time.Now())
		if wait <= 0 {
			break
		}
		time.Sleep(wait)
	}
	if clock.Spiked {
		cmd.Logger().Warnf("frame %d stalled past %.1fs, stepping %gs instead", clock.Frames, clock.SpikeThreshold, clock.SpikeDt)
	}
}
