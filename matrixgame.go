// Package cfrplusmatrix computes approximate Nash equilibria of randomly
// generated two-player zero-sum matrix games, using fictitious play,
// counterfactual regret minimization (CFR), or CFR+.
package cfrplusmatrix

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pkg/errors"
)

// MatrixGame is a two-player zero-sum game defined by a square payoff
// matrix for player 0. Player 1's payoff for the same pair of actions is
// the negated transpose entry. It carries the running state of one
// equilibrium computation: a strategy accumulator and a regret accumulator
// per player, advanced one iteration at a time by Iterate.
//
// A MatrixGame is single-use: there is no reset, and it must not be shared
// across goroutines.
type MatrixGame struct {
	size           int
	iterationCount int
	payoffs        []float64
	strategySum    [2][]float64
	regretSum      [2][]float64
}

// NewMatrixGame creates a game of the given size with payoffs drawn
// independently from the uniform distribution on [-1, 1]. The random
// source is injected so that independent runs can be seeded independently.
func NewMatrixGame(size int, rng *rand.Rand) (*MatrixGame, error) {
	m, err := newMatrixGame(size)
	if err != nil {
		return nil, err
	}

	for i := range m.payoffs {
		m.payoffs[i] = 2*rng.Float64() - 1
	}

	return m, nil
}

// NewMatrixGameFromPayoffs creates a game over a fixed payoff matrix for
// player 0. The matrix must be square with at least two actions.
func NewMatrixGameFromPayoffs(payoffs [][]float64) (*MatrixGame, error) {
	m, err := newMatrixGame(len(payoffs))
	if err != nil {
		return nil, err
	}

	for a, row := range payoffs {
		if len(row) != m.size {
			return nil, errors.Errorf("payoff row %d has %d entries, expected %d", a, len(row), m.size)
		}
		copy(m.payoffs[a*m.size:(a+1)*m.size], row)
	}

	return m, nil
}

func newMatrixGame(size int) (*MatrixGame, error) {
	if size < 2 {
		return nil, errors.Errorf("matrix size must be >= 2, got %d", size)
	}

	m := &MatrixGame{
		size:    size,
		payoffs: make([]float64, size*size),
	}
	for p := 0; p < 2; p++ {
		m.strategySum[p] = make([]float64, size)
		m.regretSum[p] = make([]float64, size)
	}

	return m, nil
}

// Size returns the number of actions available to each player.
func (m *MatrixGame) Size() int {
	return m.size
}

// IterationCount returns the number of completed Iterate calls.
func (m *MatrixGame) IterationCount() int {
	return m.iterationCount
}

// Payoff returns the payoff to player when it plays action a and the
// opponent plays action b. For player 1 this is the negated transpose
// entry, so Payoff(0, a, b) == -Payoff(1, b, a) for all pairs of actions.
func (m *MatrixGame) Payoff(player, a, b int) float64 {
	if player == 0 {
		return m.payoffs[a*m.size+b]
	}

	return -m.payoffs[b*m.size+a]
}

// Iterate advances the computation by one iteration of alg, updating
// player 0 and then player 1 in order. The second player's update reads
// whatever the first player has accumulated so far, including the
// increment from this same iteration.
func (m *MatrixGame) Iterate(alg Algorithm) {
	m.iterationCount++

	switch alg {
	case FictitiousPlay:
		m.fictitiousPlay(0)
		m.fictitiousPlay(1)
	case CFR:
		m.cfrUpdate(0)
		m.cfrUpdate(1)
	case CFRPlus:
		m.cfrPlusUpdate(0)
		m.cfrPlusUpdate(1)
	default:
		panic(fmt.Sprintf("unknown algorithm: %d", int(alg)))
	}
}

// bestResponse returns the first action maximizing player's expected
// payoff against the opponent distribution opp, together with that
// maximum. Ties go to the lowest action index.
func (m *MatrixGame) bestResponse(player int, opp []float64) (int, float64) {
	bestAction := -1
	maxSum := math.Inf(-1)

	for a := 0; a < m.size; a++ {
		sum := 0.0
		for b := 0; b < m.size; b++ {
			sum += opp[b] * m.Payoff(player, a, b)
		}

		if sum > maxSum {
			maxSum = sum
			bestAction = a
		}
	}

	return bestAction, maxSum
}

// BestResponseValue returns the expected payoff player would achieve by
// deviating to an optimal pure action against the opponent's average
// strategy.
func (m *MatrixGame) BestResponseValue(player int) float64 {
	_, v := m.bestResponse(player, m.AverageStrategy(player^1))
	return v
}

// Exploitability is the mean of both players' best-response values against
// each other's average strategy. It is zero exactly at a Nash equilibrium
// and is the convergence signal polled by the driver.
func (m *MatrixGame) Exploitability() float64 {
	return (m.BestResponseValue(0) + m.BestResponseValue(1)) / 2
}
