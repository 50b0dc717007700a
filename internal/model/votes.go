package model

// VoteLedger tracks the three vote mechanisms independently. Kick votes are
// additionally keyed by target. The ledger stores raw toggles; thresholds
// are always evaluated against the currently connected population, so a
// stale vote from a disconnected player counts for nothing until they
// return.
type VoteLedger struct {
	Start    map[PlayerID]struct{}
	Dissolve map[PlayerID]struct{}
	Kick     map[PlayerID]map[PlayerID]struct{} // target -> voters
}

func NewVoteLedger() VoteLedger {
	return VoteLedger{
		Start:    make(map[PlayerID]struct{}),
		Dissolve: make(map[PlayerID]struct{}),
		Kick:     make(map[PlayerID]map[PlayerID]struct{}),
	}
}

// ToggleStart records or withdraws a start vote, reporting whether the vote
// is now present.
func (v *VoteLedger) ToggleStart(id PlayerID) bool {
	return toggle(v.Start, id)
}

// ToggleDissolve records or withdraws a dissolve vote, reporting whether
// the vote is now present.
func (v *VoteLedger) ToggleDissolve(id PlayerID) bool {
	return toggle(v.Dissolve, id)
}

// ToggleKick records or withdraws voter's kick vote against target,
// reporting whether the vote is now present.
func (v *VoteLedger) ToggleKick(target, voter PlayerID) bool {
	voters, ok := v.Kick[target]
	if !ok {
		voters = make(map[PlayerID]struct{})
		v.Kick[target] = voters
	}
	present := toggle(voters, voter)
	if len(voters) == 0 {
		delete(v.Kick, target)
	}
	return present
}

func (v *VoteLedger) ClearStart() {
	v.Start = make(map[PlayerID]struct{})
}

func (v *VoteLedger) ClearKick(target PlayerID) {
	delete(v.Kick, target)
}

func (v *VoteLedger) ClearAll() {
	v.Start = make(map[PlayerID]struct{})
	v.Dissolve = make(map[PlayerID]struct{})
	v.Kick = make(map[PlayerID]map[PlayerID]struct{})
}

// RemovePlayer drops the player everywhere: as a voter in all three
// mechanisms and as a kick target. Called whenever a player record leaves
// its seat or the room, so no ballot ever outlives its subject.
func (v *VoteLedger) RemovePlayer(id PlayerID) {
	delete(v.Start, id)
	delete(v.Dissolve, id)
	delete(v.Kick, id)
	for target, voters := range v.Kick {
		delete(voters, id)
		if len(voters) == 0 {
			delete(v.Kick, target)
		}
	}
}

func toggle(set map[PlayerID]struct{}, id PlayerID) bool {
	if _, ok := set[id]; ok {
		delete(set, id)
		return false
	}
	set[id] = struct{}{}
	return true
}
