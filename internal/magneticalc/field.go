package magneticalc

import (
	"context"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
)

// FieldRequest selects which fields to compute.
type FieldRequest struct {
	A bool // vector potential
	B bool // flux density
}

// Field holds the computed vector fields as parallel arrays co-indexed with
// the sampling volume's grid points. Excluded points carry zero vectors.
type Field struct {
	A, B []Vector3

	// Limited is the number of element contributions whose distance was
	// clamped to the engine's distance limit.
	Limited int

	// Strategy names the reduction strategy that produced the field;
	// Degraded reports a fail-over from the requested strategy.
	Strategy string
	Degraded bool
}

// EngineConfig carries the process-wide constants of a field engine.
// The zero value of any entry selects its default.
type EngineConfig struct {
	MuZero        Real
	DistanceLimit Real
	LengthScale   Real
	Workers       int
	Strategy      string
	Progress      func(percent float64)
}

// DefaultEngineConfig returns the configuration the GUI layer historically
// computed with: SI µ0, centimetre grid units, auto strategy.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MuZero:        MuZero,
		DistanceLimit: DistanceLimit,
		LengthScale:   LengthScale,
		Workers:       runtime.NumCPU(),
		Strategy:      StrategyAuto,
	}
}

// FieldEngine applies the Biot-Savart law over a sampling volume. It owns
// no state across calls: Compute is a pure function of (Wire, SamplingVolume).
type FieldEngine struct {
	cfg      EngineConfig
	strategy ReductionStrategy
	degraded bool
}

// NewFieldEngine resolves defaults and the reduction strategy. A requested
// but unavailable strategy falls back to the reference path; the engine is
// still returned and every Field it produces reports Degraded.
func NewFieldEngine(cfg EngineConfig) *FieldEngine {
	if cfg.MuZero == 0 {
		cfg.MuZero = MuZero
	}
	if cfg.DistanceLimit <= 0 {
		cfg.DistanceLimit = DistanceLimit
	}
	if cfg.LengthScale <= 0 {
		cfg.LengthScale = LengthScale
	}
	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}

	strategy, err := selectStrategy(cfg.Strategy)
	engine := &FieldEngine{cfg: cfg, strategy: strategy, degraded: err != nil}
	if err != nil {
		DebugLog("Strategy %q unavailable, falling back to %s", cfg.Strategy, strategy.Name())
	}
	return engine
}

// Strategy returns the resolved reduction strategy name.
func (e *FieldEngine) Strategy() string { return e.strategy.Name() }

// Degraded reports whether the engine fell back from the requested strategy.
func (e *FieldEngine) Degraded() bool { return e.degraded }

// Compute runs the Biot-Savart summation for every grid point of the
// sampling volume. The call blocks until the full field is assembled or the
// context is cancelled; cancellation is cooperative, checked between
// grid-point chunks.
func (e *FieldEngine) Compute(ctx context.Context, wire *Wire, volume *SamplingVolume, want FieldRequest) (*Field, error) {
	if wire == nil || len(wire.Points) < 2 {
		return nil, ErrInvalidGeometry
	}
	if !want.A && !want.B {
		want.B = true
	}

	elements := wire.Elements()
	n := volume.Count()

	field := &Field{Strategy: e.strategy.Name(), Degraded: e.degraded}
	if want.A {
		field.A = make([]Vector3, n)
	}
	if want.B {
		field.B = make([]Vector3, n)
	}

	// I * µ0 / 4π, combined with the local µ_r per point below.
	prefactor := wire.Current * e.cfg.MuZero / (4 * math.Pi)

	workers := e.cfg.Workers
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	var next, done, limited int64
	nextPrint := int64(n / 100)
	if nextPrint < 1 {
		nextPrint = 1
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			accumulate := e.strategy.Prepare(elements, e.cfg.LengthScale, e.cfg.DistanceLimit)
			localLimited := 0

			for {
				// Cancellation is checked here, before claiming a chunk.
				if ctx.Err() != nil {
					break
				}
				start := int(atomic.AddInt64(&next, workerChunk)) - workerChunk
				if start >= n {
					break
				}
				end := start + workerChunk
				if end > n {
					end = n
				}

				for i := start; i < end; i++ {
					if volume.Labels[i] == LabelExcluded {
						continue
					}
					a, b, lim := accumulate(volume.Points[i], want)
					localLimited += lim

					scale := prefactor * volume.Permeabilities[i]
					if want.A {
						field.A[i] = a.Mul(scale)
					}
					if want.B {
						field.B[i] = b.Mul(scale)
					}
				}

				processed := atomic.AddInt64(&done, int64(end-start))
				if e.cfg.Progress != nil && processed/nextPrint != (processed-int64(end-start))/nextPrint {
					e.cfg.Progress(100 * float64(processed) / float64(n))
				}
			}
			atomic.AddInt64(&limited, int64(localLimited))
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	field.Limited = int(limited)
	if e.cfg.Progress != nil {
		e.cfg.Progress(100)
	}
	DebugLog("Computed field: %d points x %d elements, %d limited, strategy=%s",
		n, len(elements), field.Limited, field.Strategy)
	return field, nil
}
