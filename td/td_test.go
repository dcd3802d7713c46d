package td_test

import (
	"slices"
	"testing"

	"github.com/sw965/crow2048/game/twenty48"
	"github.com/sw965/crow2048/ntuple"
	"github.com/sw965/crow2048/td"
)

func equalNetworks(a, b *ntuple.Network) bool {
	for i := range a.Tables {
		if !slices.Equal(a.Tables[i], b.Tables[i]) {
			return false
		}
	}
	return true
}

var (
	boardA = twenty48.Board{1, 0, 0, 0, 0, 2}
	boardB = twenty48.Board{0, 0, 3, 0, 0, 0, 0, 0, 1}
	boardC = twenty48.Board{2, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 5}
)

func TestLearnNoop(t *testing.T) {
	tests := []struct {
		name  string
		traj  td.Trajectory
		alpha float32
	}{
		{
			name:  "正常_空の軌跡",
			traj:  td.Trajectory{},
			alpha: 0.1,
		},
		{
			name:  "正常_学習率ゼロ",
			traj:  td.Trajectory{{Reward: 4, After: boardA}, {Reward: 8, After: boardB}},
			alpha: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := ntuple.NewNetwork()
			n.Adjust(boardA, 7, 0.05)
			n.Adjust(boardB, -2, 0.05)
			snapshot := n.Clone()

			l := td.Learner{Network: n, Alpha: tc.alpha}
			l.Learn(tc.traj)
			if !equalNetworks(n, snapshot) {
				t.Errorf("network changed")
			}
		})
	}
}

func TestLearnSingleStep(t *testing.T) {
	n := ntuple.NewNetwork()
	n.Adjust(boardB, 10, 0.05)
	n.Adjust(boardA, 3, 0.05)

	want := n.Clone()
	want.Adjust(boardB, 0, 0.1)

	l := td.Learner{Network: n, Alpha: 0.1}
	l.Learn(td.Trajectory{{Reward: 5, After: boardB}})

	if !equalNetworks(n, want) {
		t.Errorf("single step must only move the afterstate towards 0")
	}
}

func TestLearnOrder(t *testing.T) {
	traj := td.Trajectory{
		{Reward: 0, After: boardA},
		{Reward: 4, After: boardB},
		{Reward: 8, After: boardC},
	}
	alpha := float32(0.1)

	n := ntuple.NewNetwork()
	n.Adjust(boardC, 20, 0.05)
	want := n.Clone()

	// 後ろから順に、更新済みの次の状態を使って更新する
	want.Adjust(boardC, 0, alpha)
	want.Adjust(boardB, 8+want.Estimate(boardC), alpha)
	want.Adjust(boardA, 4+want.Estimate(boardB), alpha)

	l := td.Learner{Network: n, Alpha: alpha}
	l.Learn(traj)

	if !equalNetworks(n, want) {
		t.Errorf("backward pass did not follow move order in reverse")
	}
}

func TestTarget(t *testing.T) {
	got := td.Target(td.Step{Reward: 16}, 2.5)
	if got != 18.5 {
		t.Errorf("want: 18.5, got: %f", got)
	}
}
