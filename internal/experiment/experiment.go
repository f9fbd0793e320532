package experiment

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/san-kum/sortsim/internal/dataset"
	"github.com/san-kum/sortsim/internal/metrics"
	"github.com/san-kum/sortsim/internal/steps"
)

type Config struct {
	Algorithms []steps.Algorithm
	Sizes      []int
	Trials     int
	Seed       int64
	Pattern    dataset.Pattern
}

func DefaultConfig() Config {
	return Config{
		Algorithms: steps.Algorithms(),
		Sizes:      []int{10, 25, 50, 100, 150},
		Trials:     3,
		Seed:       1,
		Pattern:    dataset.Random,
	}
}

// Result holds metrics averaged over the trials of one algorithm and size.
type Result struct {
	Algorithm steps.Algorithm
	Size      int
	Trials    int
	Metrics   map[string]float64
}

// Run replays every algorithm over every size, checking that each run ends
// sorted. Algorithms run in parallel; each trial of a given size sees the
// same input for every algorithm.
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	inputs := make(map[int][][]int, len(cfg.Sizes))
	for _, size := range cfg.Sizes {
		gen := dataset.New(cfg.Seed + int64(size))
		for range cfg.Trials {
			inputs[size] = append(inputs[size], gen.Generate(size, cfg.Pattern))
		}
	}

	results := make([][]Result, len(cfg.Algorithms))
	errs := make([]error, len(cfg.Algorithms))

	var wg sync.WaitGroup
	for i, alg := range cfg.Algorithms {
		wg.Add(1)
		go func(idx int, alg steps.Algorithm) {
			defer wg.Done()
			results[idx], errs[idx] = runAlgorithm(ctx, alg, cfg.Sizes, inputs)
		}(i, alg)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var out []Result
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

func validate(cfg Config) error {
	if len(cfg.Algorithms) == 0 {
		return fmt.Errorf("no algorithms selected")
	}
	if len(cfg.Sizes) == 0 {
		return fmt.Errorf("no sizes selected")
	}
	if cfg.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", cfg.Trials)
	}
	for _, s := range cfg.Sizes {
		if s < 0 {
			return fmt.Errorf("size must not be negative, got %d", s)
		}
	}
	return nil
}

func runAlgorithm(ctx context.Context, alg steps.Algorithm, sizes []int, inputs map[int][][]int) ([]Result, error) {
	set := metrics.Default()
	pool := newBufferPool()
	out := make([]Result, 0, len(sizes))

	for _, size := range sizes {
		sums := make(map[string]float64)
		trials := inputs[size]
		for _, input := range trials {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			set.Reset()
			buf := pool.get(input)
			err := replayInto(alg, input, buf, set)
			pool.put(buf)
			if err != nil {
				return nil, err
			}
			for name, v := range set.Values() {
				sums[name] += v
			}
		}

		avg := make(map[string]float64, len(sums))
		for name, v := range sums {
			avg[name] = v / float64(len(trials))
		}
		out = append(out, Result{Algorithm: alg, Size: size, Trials: len(trials), Metrics: avg})
	}
	return out, nil
}

// Replay drains alg over input, applying each step to a copy and feeding
// set, and returns the final array. It fails with ErrNotSorted when the
// result is out of order.
func Replay(alg steps.Algorithm, input []int, set *metrics.Set) ([]int, error) {
	values := slices.Clone(input)
	err := replayInto(alg, input, values, set)
	return values, err
}

func replayInto(alg steps.Algorithm, input, values []int, set *metrics.Set) error {
	seq := steps.NewSequence(alg.Steps(input))
	defer seq.Stop()
	for {
		st, ok := seq.Next()
		if !ok {
			break
		}
		steps.Apply(values, st)
		if set != nil {
			set.Observe(st, values)
		}
	}
	if !slices.IsSorted(values) {
		return &SortError{Algorithm: alg, Input: input, Output: slices.Clone(values), Wrapped: ErrNotSorted}
	}
	return nil
}

// Series groups one metric by algorithm, ordered by size, for plotting.
func Series(results []Result, metric string) map[steps.Algorithm][]float64 {
	grouped := lo.GroupBy(results, func(r Result) steps.Algorithm { return r.Algorithm })
	return lo.MapValues(grouped, func(rs []Result, _ steps.Algorithm) []float64 {
		slices.SortStableFunc(rs, func(a, b Result) int { return a.Size - b.Size })
		return lo.Map(rs, func(r Result, _ int) float64 { return r.Metrics[metric] })
	})
}
