package td_test

import (
	"testing"

	"github.com/sw965/crow2048/game/twenty48"
	"github.com/sw965/crow2048/ntuple"
	"github.com/sw965/crow2048/td"
)

// 左にしか動かせない盤面。合成は起きないので報酬は0
var onlyLeft = twenty48.Board{
	0, 1, 2, 3,
	0, 2, 3, 1,
	0, 1, 2, 3,
	0, 2, 3, 1,
}

var noMove = twenty48.Board{
	1, 2, 1, 2,
	2, 1, 2, 1,
	1, 2, 1, 2,
	2, 1, 2, 1,
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name       string
		board      twenty48.Board
		setup      func(*ntuple.Network)
		wantOp     twenty48.Op
		wantReward int
		wantOk     bool
	}{
		{
			name:       "正常_合法手が1つ",
			board:      onlyLeft,
			wantOp:     twenty48.Left,
			wantReward: 0,
			wantOk:     true,
		},
		{
			name:  "正常_合法手が1つ_価値が大きく負",
			board: onlyLeft,
			setup: func(n *ntuple.Network) {
				after := onlyLeft
				after.Slide(twenty48.Left)
				n.Adjust(after, -1e6, 0.05)
			},
			wantOp:     twenty48.Left,
			wantReward: 0,
			wantOk:     true,
		},
		{
			name: "正常_同点なら列挙順",
			board: twenty48.Board{
				0, 0, 0, 0,
				0, 1, 0, 0,
				0, 0, 0, 0,
				0, 0, 0, 0,
			},
			wantOp:     twenty48.Up,
			wantReward: 0,
			wantOk:     true,
		},
		{
			name: "正常_報酬が大きい手_同点は列挙順",
			board: twenty48.Board{
				1, 0, 0, 0,
				1, 0, 0, 0,
				0, 0, 0, 0,
				2, 0, 0, 0,
			},
			wantOp:     twenty48.Up,
			wantReward: 4,
			wantOk:     true,
		},
		{
			name:   "準正常_合法手なし",
			board:  noMove,
			wantOk: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := ntuple.NewNetwork()
			if tc.setup != nil {
				tc.setup(n)
			}
			op, step, ok := td.Select(n, tc.board)
			if ok != tc.wantOk {
				t.Fatalf("want ok: %t, got: %t", tc.wantOk, ok)
			}
			if !ok {
				return
			}
			if op != tc.wantOp {
				t.Errorf("want op: %v, got: %v", tc.wantOp, op)
			}
			if step.Reward != tc.wantReward {
				t.Errorf("want reward: %d, got: %d", tc.wantReward, step.Reward)
			}
			after := tc.board
			after.Slide(op)
			if step.After != after {
				t.Errorf("afterstate mismatch:\n%v\n%v", after, step.After)
			}
		})
	}
}

func TestSelectPrefersValue(t *testing.T) {
	b := twenty48.Board{
		0, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	n := ntuple.NewNetwork()
	left := b
	left.Slide(twenty48.Left)
	n.Adjust(left, 100, 0.05)

	op, _, ok := td.Select(n, b)
	if !ok || op != twenty48.Left {
		t.Errorf("want: left, got: %v (ok=%t)", op, ok)
	}
}
