// Package runner drives MatrixGame solves to convergence: single runs
// with progress reporting, and batches of independent runs with aggregate
// iteration statistics.
package runner

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"

	cfrplusmatrix "github.com/Legend1991/CFRPlusMatrix"
)

// Run iterates game with alg until exploitability drops to epsilon or
// below, returning the number of iterations taken. At least one iteration
// is always performed. The loop is unbounded: choosing a reachable
// epsilon is the caller's responsibility.
func Run(game *cfrplusmatrix.MatrixGame, alg cfrplusmatrix.Algorithm, epsilon float64) int {
	for {
		game.Iterate(alg)
		if game.Exploitability() <= epsilon {
			return game.IterationCount()
		}
	}
}

// RunWithProgress is Run with an i/t/e progress line logged every
// reportEvery iterations. reportEvery <= 0 disables reporting.
func RunWithProgress(game *cfrplusmatrix.MatrixGame, alg cfrplusmatrix.Algorithm, epsilon float64, reportEvery int) int {
	start := time.Now()
	for {
		game.Iterate(alg)
		e := game.Exploitability()

		if reportEvery > 0 && game.IterationCount()%reportEvery == 0 {
			glog.Infof("i=%d t=%.2f e=%.6f", game.IterationCount(), time.Since(start).Seconds(), e)
		}

		if e <= epsilon {
			return game.IterationCount()
		}
	}
}

// BatchConfig describes a batch of independent convergence runs over
// freshly generated games.
type BatchConfig struct {
	Runs      int
	Algorithm cfrplusmatrix.Algorithm
	Size      int
	Epsilon   float64
	// BaseSeed seeds run i with BaseSeed + i, so a batch is reproducible
	// and every run draws an independent matrix.
	BaseSeed int64
	// Parallel is the number of worker goroutines. Values below 2 run the
	// batch sequentially. Per-run results do not depend on it.
	Parallel int
	// Progress, when non-nil, is advanced once per completed run.
	Progress *progressbar.ProgressBar
}

func (c BatchConfig) validate() error {
	if c.Runs < 1 {
		return errors.Errorf("number of runs must be >= 1, got %d", c.Runs)
	}
	if c.Size < 2 {
		return errors.Errorf("matrix size must be >= 2, got %d", c.Size)
	}
	if c.Epsilon <= 0 || c.Epsilon > 1 {
		return errors.Errorf("epsilon must be in (0, 1], got %v", c.Epsilon)
	}
	return nil
}

// BatchStats aggregates the iteration counts of a batch of runs.
type BatchStats struct {
	Runs int
	Min  int
	Max  int
	Mean float64
}

func (s BatchStats) String() string {
	return fmt.Sprintf("min %d | max %d | avg %.1f", s.Min, s.Max, s.Mean)
}

// Batch solves cfg.Runs independently generated games to convergence and
// aggregates their iteration counts.
func Batch(cfg BatchConfig) (BatchStats, error) {
	if err := cfg.validate(); err != nil {
		return BatchStats{}, errors.Wrap(err, "invalid batch config")
	}

	counts := make([]int, cfg.Runs)
	run := func(i int) error {
		runID := uuid.New()
		rng := rand.New(rand.NewSource(cfg.BaseSeed + int64(i)))
		game, err := cfrplusmatrix.NewMatrixGame(cfg.Size, rng)
		if err != nil {
			return errors.Wrapf(err, "run %v", runID)
		}

		start := time.Now()
		counts[i] = Run(game, cfg.Algorithm, cfg.Epsilon)
		glog.V(1).Infof("run %v (%d/%d): %d iterations in %v",
			runID, i+1, cfg.Runs, counts[i], time.Since(start).Round(time.Millisecond))

		if cfg.Progress != nil {
			cfg.Progress.Add(1)
		}
		return nil
	}

	if cfg.Parallel > 1 {
		if err := runParallel(cfg.Runs, cfg.Parallel, run); err != nil {
			return BatchStats{}, err
		}
	} else {
		for i := 0; i < cfg.Runs; i++ {
			if err := run(i); err != nil {
				return BatchStats{}, err
			}
		}
	}

	return aggregate(counts), nil
}

// runParallel fans run indices out over a fixed pool of workers and
// returns the first error any of them hit.
func runParallel(n, workers int, run func(int) error) error {
	indexes := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				if err := run(i); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}
		}()
	}

	for i := 0; i < n; i++ {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return firstErr
}

func aggregate(counts []int) BatchStats {
	stats := BatchStats{
		Runs: len(counts),
		Min:  counts[0],
		Max:  counts[0],
	}

	sum := 0
	for _, c := range counts {
		if c < stats.Min {
			stats.Min = c
		}
		if c > stats.Max {
			stats.Max = c
		}
		sum += c
	}
	stats.Mean = float64(sum) / float64(len(counts))

	return stats
}
