package contest

// Points applies the scoring table to one prediction against a final score.
// Exact winner (1 or 2) pays 3, exact draw pays 2, a double chance covering
// the outcome pays 1, everything else pays 0.
func Points(pick Symbol, res Result) int {
	out := res.Outcome()
	switch pick {
	case SymbolHome:
		if out == OutcomeHome {
			return 3
		}
	case SymbolAway:
		if out == OutcomeAway {
			return 3
		}
	case SymbolDraw:
		if out == OutcomeDraw {
			return 2
		}
	case SymbolHomeOrDraw:
		if out == OutcomeHome || out == OutcomeDraw {
			return 1
		}
	case SymbolDrawOrAway:
		if out == OutcomeDraw || out == OutcomeAway {
			return 1
		}
	}
	return 0
}

// PointsForMatch reports the points pick earns on m. ok is false while the
// match is still open; callers must not read a pending match as a lost one.
func PointsForMatch(pick Symbol, m Match) (points int, ok bool) {
	if m.Result == nil {
		return 0, false
	}
	return Points(pick, *m.Result), true
}
