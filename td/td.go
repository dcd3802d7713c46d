// Package td trains an n-tuple network from finished episodes with a backward TD(0) pass
// over afterstates.
package td

import (
	"github.com/sw965/crow2048/game/twenty48"
	"github.com/sw965/crow2048/ntuple"
)

// Step is one move of an episode: the reward earned by the move and the afterstate it produced.
type Step struct {
	Reward int
	After  twenty48.Board
}

// Trajectory lists the steps of one episode in move order.
type Trajectory []Step

// Target is the bootstrap target of the afterstate preceding next.
func Target(next Step, nextValue float32) float32 {
	return float32(next.Reward) + nextValue
}

type Learner struct {
	Network *ntuple.Network
	Alpha   float32
}

// Learn adjusts the network from the last afterstate back to the first. The last afterstate
// is moved towards 0 and every earlier one towards the reward of the following move plus
// the current estimate of the following afterstate.
//
// Learnは最後のafterstateから最初に向かってネットワークを更新します。
func (l *Learner) Learn(traj Trajectory) {
	if len(traj) == 0 || l.Alpha == 0 {
		return
	}

	n := l.Network
	n.Adjust(traj[len(traj)-1].After, 0, l.Alpha)
	for i := len(traj) - 2; i >= 0; i-- {
		next := traj[i+1]
		n.Adjust(traj[i].After, Target(next, n.Estimate(next.After)), l.Alpha)
	}
}
