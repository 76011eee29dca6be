package cfrplusmatrix

// fictitiousPlay runs one fictitious play round for player: find the
// action with the highest expected payoff against the opponent's average
// strategy and credit it with one play. Exactly one accumulator entry is
// incremented, by exactly 1.
func (m *MatrixGame) fictitiousPlay(player int) {
	best, _ := m.bestResponse(player, m.AverageStrategy(player^1))
	m.strategySum[player][best]++
}
