package cfrplusmatrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// counterfactualUtilities computes, for every action of player, the
// expected payoff of committing to that action against the opponent's
// current strategy, along with the expected value of player's own current
// strategy. Both players' strategies are read fresh from the regret
// accumulators, so the result depends only on state at the start of the
// call.
func (m *MatrixGame) counterfactualUtilities(player int) (cfu []float64, ev float64, sp []float64) {
	sp = m.CurrentStrategy(player)
	so := m.CurrentStrategy(player ^ 1)

	cfu = make([]float64, m.size)
	for a := 0; a < m.size; a++ {
		for b := 0; b < m.size; b++ {
			cfu[a] += so[b] * m.Payoff(player, a, b)
		}
	}

	ev = floats.Dot(sp, cfu)
	return cfu, ev, sp
}

// cfrUpdate runs one vanilla CFR round for player: accumulate the
// instantaneous counterfactual regret of every action (regrets may go
// negative) and add the current strategy to the running average with unit
// weight.
func (m *MatrixGame) cfrUpdate(player int) {
	cfu, ev, sp := m.counterfactualUtilities(player)

	regrets := m.regretSum[player]
	for a, u := range cfu {
		regrets[a] += u - ev
	}

	floats.Add(m.strategySum[player], sp)
}

// cfrPlusUpdate runs one CFR+ round for player. It differs from vanilla
// CFR in two ways: regrets are floored at zero after every update, and
// the strategy average weights iteration t by t^2, per the published
// CFR+ averaging scheme. The quadratic weight grows without bound over
// very long solves; nothing guards against that.
func (m *MatrixGame) cfrPlusUpdate(player int) {
	cfu, ev, sp := m.counterfactualUtilities(player)

	regrets := m.regretSum[player]
	for a, u := range cfu {
		regrets[a] = math.Max(0, regrets[a]+u-ev)
	}

	t := float64(m.iterationCount)
	floats.AddScaled(m.strategySum[player], t*t, sp)
}
