package td

import (
	"github.com/chewxy/math32"
	"github.com/sw965/crow2048/game/twenty48"
	"github.com/sw965/crow2048/ntuple"
)

// Select searches one ply of afterstates from before. Every legal op is scored as its
// reward plus the network's estimate of the resulting afterstate; the strictly greatest
// score wins, so ties go to the op seen first in twenty48.Ops. ok is false when no op
// changes the board.
//
// Selectは1手先のafterstateを探索し、報酬+推定価値が最大の手を返します。同点の場合は先に見た手を選びます。
func Select(n *ntuple.Network, before twenty48.Board) (op twenty48.Op, step Step, ok bool) {
	best := math32.Inf(-1)
	for _, o := range twenty48.Ops {
		after := before
		reward := after.Slide(o)
		if reward == twenty48.IllegalReward {
			continue
		}
		score := float32(reward) + n.Estimate(after)
		if score > best {
			best = score
			op = o
			step = Step{Reward: reward, After: after}
			ok = true
		}
	}
	return op, step, ok
}
