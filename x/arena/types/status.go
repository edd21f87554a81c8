package types

import "fmt"

// MatchStatus is the lifecycle state of an arena match.
type MatchStatus uint8

const (
	MatchStatusWaitingForPlayer MatchStatus = iota
	MatchStatusCountdown
	MatchStatusActive
	MatchStatusRoundEnd
	MatchStatusComplete
)

var matchStatusNames = map[MatchStatus]string{
	MatchStatusWaitingForPlayer: "WAITING_FOR_PLAYER",
	MatchStatusCountdown:        "COUNTDOWN",
	MatchStatusActive:           "ACTIVE",
	MatchStatusRoundEnd:         "ROUND_END",
	MatchStatusComplete:         "COMPLETE",
}

// matchTransitions lists the forward edges of the match state machine.
// Cancellation and closure delete the record and are not edges.
var matchTransitions = map[MatchStatus][]MatchStatus{
	MatchStatusWaitingForPlayer: {MatchStatusCountdown},
	MatchStatusCountdown:        {MatchStatusActive},
	MatchStatusActive:           {MatchStatusRoundEnd, MatchStatusComplete},
	MatchStatusRoundEnd:         {MatchStatusActive},
	MatchStatusComplete:         nil,
}

func (s MatchStatus) String() string {
	if name, ok := matchStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("MatchStatus(%d)", uint8(s))
}

// IsValid reports whether s is a known status.
func (s MatchStatus) IsValid() bool {
	_, ok := matchStatusNames[s]
	return ok
}

// IsTerminal reports whether no transition leaves s.
func (s MatchStatus) IsTerminal() bool {
	return s == MatchStatusComplete
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s MatchStatus) CanTransitionTo(next MatchStatus) bool {
	for _, candidate := range matchTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// DerbyStatus is the lifecycle state of a derby race.
type DerbyStatus uint8

const (
	DerbyStatusCreated DerbyStatus = iota
	DerbyStatusRacing
	DerbyStatusFinished
)

var derbyStatusNames = map[DerbyStatus]string{
	DerbyStatusCreated:  "CREATED",
	DerbyStatusRacing:   "RACING",
	DerbyStatusFinished: "FINISHED",
}

var derbyTransitions = map[DerbyStatus][]DerbyStatus{
	DerbyStatusCreated:  {DerbyStatusRacing},
	DerbyStatusRacing:   {DerbyStatusFinished},
	DerbyStatusFinished: nil,
}

func (s DerbyStatus) String() string {
	if name, ok := derbyStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("DerbyStatus(%d)", uint8(s))
}

// IsValid reports whether s is a known status.
func (s DerbyStatus) IsValid() bool {
	_, ok := derbyStatusNames[s]
	return ok
}

// IsTerminal reports whether no transition leaves s.
func (s DerbyStatus) IsTerminal() bool {
	return s == DerbyStatusFinished
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s DerbyStatus) CanTransitionTo(next DerbyStatus) bool {
	for _, candidate := range derbyTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}
