// Command cfrplusmatrix solves randomly generated two-player zero-sum
// matrix games to an exploitability threshold, using fictitious play, CFR
// or CFR+. With -n > 1 it repeats the solve over independent games and
// reports min/max/average iteration counts.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/golang/glog"
	"github.com/schollz/progressbar/v3"

	cfrplusmatrix "github.com/Legend1991/CFRPlusMatrix"
	"github.com/Legend1991/CFRPlusMatrix/runner"
)

func main() {
	algorithm := flag.Int("a", 2, "Algorithm (0 = Fictitious play, 1 = CFR, 2 = CFR+)")
	size := flag.Int("s", 1000, "Matrix size")
	epsilon := flag.Float64("e", 0.0001, "Epsilon")
	nRuns := flag.Int("n", 1, "Number of times to run")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	parallel := flag.Int("parallel", 1, "Number of concurrent runs in batch mode")
	flag.Parse()

	alg, err := cfrplusmatrix.ParseAlgorithm(*algorithm)
	if err != nil {
		glog.Exit(err)
	}
	if *size < 2 {
		glog.Exitf("matrix size must be >= 2, got %d", *size)
	}
	if *epsilon <= 0 || *epsilon > 1 {
		glog.Exitf("epsilon must be in (0, 1], got %v", *epsilon)
	}
	if *nRuns < 1 {
		glog.Exitf("number of runs must be >= 1, got %d", *nRuns)
	}

	cfg, err := runner.LoadConfig()
	if err != nil {
		glog.Exit(err)
	}

	fmt.Printf("Algorithm: %s\n", alg)
	fmt.Printf("Matrix size: %d\n", *size)
	fmt.Printf("Epsilon: %f\n", *epsilon)
	fmt.Printf("N: %d\n", *nRuns)

	if *nRuns > 1 {
		runBatch(cfg, alg, *size, *epsilon, *nRuns, *seed, *parallel)
		return
	}

	glog.Info("generating game")
	rng := rand.New(rand.NewSource(*seed))
	game, err := cfrplusmatrix.NewMatrixGame(*size, rng)
	if err != nil {
		glog.Exit(err)
	}

	glog.Info("starting iterations")
	n := runner.RunWithProgress(game, alg, *epsilon, cfg.ReportEvery)
	fmt.Printf("converged after %d iterations\n", n)
}

func runBatch(cfg *runner.Config, alg cfrplusmatrix.Algorithm, size int, epsilon float64, nRuns int, seed int64, parallel int) {
	var bar *progressbar.ProgressBar
	if cfg.ProgressBar {
		bar = progressbar.Default(int64(nRuns), "solving")
	}

	stats, err := runner.Batch(runner.BatchConfig{
		Runs:      nRuns,
		Algorithm: alg,
		Size:      size,
		Epsilon:   epsilon,
		BaseSeed:  seed,
		Parallel:  parallel,
		Progress:  bar,
	})
	if err != nil {
		glog.Exit(err)
	}

	fmt.Println(stats)
}
