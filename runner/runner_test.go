package runner

import (
	"testing"

	cfrplusmatrix "github.com/Legend1991/CFRPlusMatrix"
)

func TestRunSolvedGameTakesOneIteration(t *testing.T) {
	// The all-zero game is already at equilibrium; Run still performs its
	// one mandatory iteration before checking.
	game, err := cfrplusmatrix.NewMatrixGameFromPayoffs([][]float64{
		{0, 0},
		{0, 0},
	})
	if err != nil {
		t.Fatalf("failed to create game: %v", err)
	}

	n := Run(game, cfrplusmatrix.CFRPlus, 0.5)
	if n != 1 {
		t.Errorf("Run took %d iterations, expected 1", n)
	}
	if game.IterationCount() != 1 {
		t.Errorf("game iteration count is %d, expected 1", game.IterationCount())
	}
}

func TestRunConvergesOnRockPaperScissors(t *testing.T) {
	game, err := cfrplusmatrix.NewMatrixGameFromPayoffs([][]float64{
		{0, -1, 1},
		{1, 0, -1},
		{-1, 1, 0},
	})
	if err != nil {
		t.Fatalf("failed to create game: %v", err)
	}

	n := Run(game, cfrplusmatrix.CFR, 0.01)
	if game.Exploitability() > 0.01 {
		t.Errorf("exploitability %v > 0.01 after Run returned", game.Exploitability())
	}
	if n != game.IterationCount() {
		t.Errorf("Run returned %d but game reports %d iterations", n, game.IterationCount())
	}
}

func TestAggregate(t *testing.T) {
	stats := aggregate([]int{5, 3, 7})

	if stats.Runs != 3 {
		t.Errorf("Runs = %d, expected 3", stats.Runs)
	}
	if stats.Min != 3 {
		t.Errorf("Min = %d, expected 3", stats.Min)
	}
	if stats.Max != 7 {
		t.Errorf("Max = %d, expected 7", stats.Max)
	}
	if stats.Mean != 5 {
		t.Errorf("Mean = %v, expected 5", stats.Mean)
	}
}

func TestBatchStatsString(t *testing.T) {
	stats := BatchStats{Runs: 3, Min: 3, Max: 7, Mean: 5}
	if got, want := stats.String(), "min 3 | max 7 | avg 5.0"; got != want {
		t.Errorf("String() = %q, expected %q", got, want)
	}
}

func TestBatchValidation(t *testing.T) {
	valid := BatchConfig{
		Runs:      1,
		Algorithm: cfrplusmatrix.CFRPlus,
		Size:      2,
		Epsilon:   0.5,
	}

	cases := []struct {
		name   string
		mutate func(*BatchConfig)
	}{
		{"zero runs", func(c *BatchConfig) { c.Runs = 0 }},
		{"size too small", func(c *BatchConfig) { c.Size = 1 }},
		{"zero epsilon", func(c *BatchConfig) { c.Epsilon = 0 }},
		{"epsilon above one", func(c *BatchConfig) { c.Epsilon = 1.5 }},
	}

	for _, tc := range cases {
		cfg := valid
		tc.mutate(&cfg)
		if _, err := Batch(cfg); err == nil {
			t.Errorf("%s: expected error, got none", tc.name)
		}
	}

	if _, err := Batch(valid); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestBatchAggregatesAllRuns(t *testing.T) {
	// Payoffs are bounded by 1, so exploitability can never exceed an
	// epsilon of 1 and every run converges on its first iteration.
	stats, err := Batch(BatchConfig{
		Runs:      4,
		Algorithm: cfrplusmatrix.CFRPlus,
		Size:      2,
		Epsilon:   1,
		BaseSeed:  99,
	})
	if err != nil {
		t.Fatalf("Batch failed: %v", err)
	}

	if stats.Runs != 4 {
		t.Errorf("Runs = %d, expected 4", stats.Runs)
	}
	if stats.Min != 1 || stats.Max != 1 || stats.Mean != 1 {
		t.Errorf("stats = %+v, expected all runs to take one iteration", stats)
	}
}

func TestBatchParallelMatchesSequential(t *testing.T) {
	cfg := BatchConfig{
		Runs:      6,
		Algorithm: cfrplusmatrix.CFRPlus,
		Size:      4,
		Epsilon:   0.05,
		BaseSeed:  42,
	}

	sequential, err := Batch(cfg)
	if err != nil {
		t.Fatalf("sequential batch failed: %v", err)
	}

	cfg.Parallel = 3
	parallel, err := Batch(cfg)
	if err != nil {
		t.Fatalf("parallel batch failed: %v", err)
	}

	if sequential != parallel {
		t.Errorf("parallel stats %+v differ from sequential %+v", parallel, sequential)
	}
}
