package cfrplusmatrix

import (
	"github.com/pkg/errors"
)

// Algorithm selects the update rule applied by MatrixGame.Iterate.
// The set is closed: every consumer dispatches with an exhaustive switch.
type Algorithm int

const (
	// FictitiousPlay plays a pure best response to the opponent's average
	// strategy each iteration.
	FictitiousPlay Algorithm = iota
	// CFR is vanilla counterfactual regret minimization with unweighted
	// strategy averaging.
	CFR
	// CFRPlus floors regrets at zero and weights the strategy average
	// quadratically by iteration.
	CFRPlus
)

var algorithmStr = [...]string{
	"Fictitious play",
	"CFR",
	"CFR+",
}

func (a Algorithm) String() string {
	return algorithmStr[a]
}

// ParseAlgorithm maps the numeric selector used on the command line
// (0 = Fictitious play, 1 = CFR, 2 = CFR+) to an Algorithm.
func ParseAlgorithm(v int) (Algorithm, error) {
	if v < int(FictitiousPlay) || v > int(CFRPlus) {
		return 0, errors.Errorf("unknown algorithm selector %d", v)
	}

	return Algorithm(v), nil
}
