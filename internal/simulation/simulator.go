// internal/simulation/simulator.go
package simulation

import (
	"math/rand/v2"
	"sync"
	"time"
)

const (
	minAccuracy   = 80.0
	maxAccuracy   = 100.0
	minTokenUsage = 10
	maxTokenUsage = 50
	minLatency    = 0.5
	maxLatency    = 2.0
)

// Simulator turns a validated request into metrics. Implementations never
// fail and do not re-validate the request.
type Simulator interface {
	Simulate(req Request) Result
}

// RandomSimulator is the placeholder simulator. It ignores the request and
// draws every metric from a uniform distribution.
type RandomSimulator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSimulator returns a simulator seeded with seed, or with the
// current time when seed is zero.
func NewRandomSimulator(seed uint64) *RandomSimulator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return NewRandomSimulatorWithSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomSimulatorWithSource returns a simulator drawing from src.
func NewRandomSimulatorWithSource(src rand.Source) *RandomSimulator {
	return &RandomSimulator{rng: rand.New(src)}
}

// Simulate draws accuracy in [80,100], token usage in [10,50] and latency
// in [0.5,2.0] seconds.
func (s *RandomSimulator) Simulate(_ Request) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	accuracy := minAccuracy + (maxAccuracy-minAccuracy)*s.rng.Float64()
	tokens := minTokenUsage + s.rng.IntN(maxTokenUsage-minTokenUsage+1)
	latency := minLatency + (maxLatency-minLatency)*s.rng.Float64()
	return NewResult(accuracy, tokens, latency)
}

// SimulatorFunc adapts a plain function to the Simulator interface.
type SimulatorFunc func(Request) Result

// Simulate calls f(req).
func (f SimulatorFunc) Simulate(req Request) Result { return f(req) }

// Run validates req and hands it to sim.
func Run(sim Simulator, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	return sim.Simulate(req), nil
}
