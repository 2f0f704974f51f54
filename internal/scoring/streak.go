package scoring

// StreakState is the pure view of a streak record. Transitions return a new
// state; persistence happens elsewhere under an optimistic version check.
type StreakState struct {
	Current           int
	Longest           int
	ConsecutiveMisses int
	Penalty           float64
}

// Penalty schedule: the first miss in a row is forgiven, the second sets the
// penalty to 5, and every further miss sets it to 10*(misses-1). Each success
// decays the penalty by 2, floored at 0.
const (
	penaltySecondMiss     = 5.0
	penaltyPerMissBeyond  = 10.0
	penaltyDecayOnSuccess = 2.0
)

// OnSuccess extends the streak and decays any outstanding penalty.
func OnSuccess(s StreakState) StreakState {
	s.ConsecutiveMisses = 0
	s.Current++
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	s.Penalty -= penaltyDecayOnSuccess
	if s.Penalty < 0 {
		s.Penalty = 0
	}
	return s
}

// OnMiss resets the streak and sets (not adds) the penalty from the new miss
// count. An unresolved penalty survives a single forgiven miss.
func OnMiss(s StreakState) StreakState {
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	s.Current = 0
	s.ConsecutiveMisses++

	switch {
	case s.ConsecutiveMisses == 1:
		// forgiven: keep whatever penalty was already outstanding
	case s.ConsecutiveMisses == 2:
		s.Penalty = penaltySecondMiss
	default:
		s.Penalty = penaltyPerMissBeyond * float64(s.ConsecutiveMisses-1)
	}
	return s
}

// EvaluateStreakStatus dispatches one evaluated occurrence.
func EvaluateStreakStatus(s StreakState, success bool) StreakState {
	if success {
		return OnSuccess(s)
	}
	return OnMiss(s)
}
