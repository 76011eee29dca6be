package cfrplusmatrix

import (
	"gonum.org/v1/gonum/floats"
)

// AverageStrategy returns player's time-averaged mixed strategy: the
// strategy accumulator normalized by its total. Before the first
// iteration the accumulator is all zero and the uniform distribution is
// returned. This is the quantity that converges to equilibrium, and the
// one exploitability is measured against.
func (m *MatrixGame) AverageStrategy(player int) []float64 {
	total := floats.Sum(m.strategySum[player])
	if total <= 0 {
		return uniformDist(m.size)
	}

	avg := make([]float64, m.size)
	copy(avg, m.strategySum[player])
	floats.Scale(1/total, avg)
	return avg
}

// CurrentStrategy derives player's instantaneous mixed strategy from the
// regret accumulator by regret matching: positive regrets are normalized
// to a distribution and actions with non-positive regret get probability
// zero. If no regret is positive it falls back to uniform. Only the CFR
// family uses this.
func (m *MatrixGame) CurrentStrategy(player int) []float64 {
	strat := make([]float64, m.size)
	copy(strat, m.regretSum[player])
	makePositive(strat)

	total := floats.Sum(strat)
	if total <= 0 {
		return uniformDist(m.size)
	}

	floats.Scale(1/total, strat)
	return strat
}

func uniformDist(n int) []float64 {
	result := make([]float64, n)
	floats.AddConst(1.0/float64(n), result)
	return result
}

func makePositive(v []float64) {
	for i := range v {
		if v[i] < 0 {
			v[i] = 0
		}
	}
}
