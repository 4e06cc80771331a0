package assess

import (
	"context"
	"math/rand"
	"time"
)

// Stage is one step of the staged analysis shown to the user.
type Stage struct {
	Percent int
	Status  string
}

// Stages lists the analysis steps in order. The percentages drive the
// progress bar; the final stage always reaches 100.
var Stages = []Stage{
	{Percent: 10, Status: "Normalizing image..."},
	{Percent: 30, Status: "Detecting object (YOLOv8)..."},
	{Percent: 50, Status: "Analyzing damage (computer vision)..."},
	{Percent: 70, Status: "Fetching manufacturer data (DPP API)..."},
	{Percent: 85, Status: "Pricing the repair..."},
	{Percent: 100, Status: "Done"},
}

// Pacer introduces the per-stage delay. The delay is pure theater: it
// carries no work and must be cancellable through the context.
type Pacer interface {
	Pace(ctx context.Context, stage Stage) error
}

// SleepPacer blocks a uniform-random duration in [min, max] per stage.
type SleepPacer struct {
	rng *rand.Rand
	min time.Duration
	max time.Duration
}

// NewSleepPacer builds a pacer drawing delays from rng.
func NewSleepPacer(rng *rand.Rand, min, max time.Duration) *SleepPacer {
	if max < min {
		max = min
	}
	return &SleepPacer{rng: rng, min: min, max: max}
}

// Pace sleeps the stage delay or returns ctx.Err() on cancellation.
func (p *SleepPacer) Pace(ctx context.Context, _ Stage) error {
	d := p.min
	if span := int64(p.max - p.min); span > 0 {
		d += time.Duration(p.rng.Int63n(span + 1))
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NopPacer skips the delay entirely. Used in tests and when latency is
// disabled in config.
type NopPacer struct{}

// Pace returns immediately, still honoring cancellation.
func (NopPacer) Pace(ctx context.Context, _ Stage) error {
	return ctx.Err()
}
