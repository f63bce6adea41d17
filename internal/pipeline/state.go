package pipeline

// The escalation chain is a small state machine. Keeping the transition
// logic as a pure function over pool and verification statistics lets it
// be tested without any network wiring.

type runState int

const (
	statePrimary runState = iota
	stateVerified
)

type action int

const (
	actionAcceptPrimary action = iota
	actionEscalate
	actionHailMary
	actionFinish
	actionGenericFallback
)

// poolStats describes the primary candidate pool
type poolStats struct {
	size           int
	crossValidated bool
}

// verifyStats describes the outcome of a verification pass
type verifyStats struct {
	confirmed    int
	attempted    int
	emergency    bool // Red-flag detector demanded recovery
	hailMaryDone bool
}

// nextAction decides the next pipeline step from aggregate statistics.
func nextAction(state runState, pool poolStats, vs verifyStats, minVerified int) action {
	switch state {
	case statePrimary:
		if pool.size > 0 && pool.crossValidated {
			return actionAcceptPrimary
		}
		return actionEscalate

	case stateVerified:
		if vs.hailMaryDone {
			if vs.confirmed > 0 {
				return actionFinish
			}
			return actionGenericFallback
		}
		if vs.confirmed >= minVerified && !vs.emergency {
			return actionFinish
		}
		return actionHailMary
	}

	return actionGenericFallback
}
