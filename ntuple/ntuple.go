// Package ntuple implements an n-tuple network: a value function built from small fixed
// patterns of board cells, each pattern owning an independent lookup table.
//
// Package ntuple はn-tupleネットワークを実装します。盤面の決まったセルの組(パターン)毎に
// 独立した重みテーブルを持つ価値関数です。
package ntuple

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/sw965/crow2048/game/twenty48"
)

const (
	// TupleSize is the number of cells in one pattern.
	TupleSize = 4
	// MaxDigit is the base of a feature code. Exponents at or above MaxDigit-1 share the top digit.
	MaxDigit = 25
	// TableSize is MaxDigit^TupleSize.
	TableSize = MaxDigit * MaxDigit * MaxDigit * MaxDigit
)

// Pattern names 4 board positions.
type Pattern [TupleSize]int

// Patterns are the 17 tuples shared by every network: 4 rows, 4 columns and 9 squares.
var Patterns = [...]Pattern{
	{0, 1, 2, 3}, {4, 5, 6, 7}, {8, 9, 10, 11}, {12, 13, 14, 15},
	{0, 4, 8, 12}, {1, 5, 9, 13}, {2, 6, 10, 14}, {3, 7, 11, 15},
	{0, 1, 4, 5}, {1, 2, 5, 6}, {2, 3, 6, 7},
	{4, 5, 8, 9}, {4, 5, 9, 10}, {4, 5, 10, 11},
	{8, 9, 12, 13}, {9, 10, 13, 14}, {10, 11, 14, 15},
}

// PatternCount is len(Patterns).
const PatternCount = len(Patterns)

// Extract returns the feature code of board b for pattern x: the pattern's exponents,
// each clamped to MaxDigit-1, read as a base-MaxDigit number with the first cell most significant.
//
// Extractはパターンxに対する盤面bの特徴量を返します。
func Extract(x int, b twenty48.Board) int {
	if x < 0 || x >= PatternCount {
		panic(fmt.Sprintf("BUG: pattern index %d out of range [0, %d)", x, PatternCount))
	}

	code := 0
	for _, pos := range Patterns[x] {
		d := int(b[pos])
		if d >= MaxDigit {
			d = MaxDigit - 1
		}
		code = code*MaxDigit + d
	}
	return code
}

// Table is the weight table of one pattern, addressed by feature code.
type Table []float32

func NewTable() Table {
	return make(Table, TableSize)
}

// Network holds one Table per pattern, in the order of Patterns.
// A Network is not safe for concurrent Adjust; concurrent Estimate calls are fine.
type Network struct {
	Tables []Table
}

// NewNetwork allocates zero-filled tables for every pattern.
//
// NewNetworkは全パターン分のゼロ初期化された重みテーブルを確保します。
func NewNetwork() *Network {
	tables := make([]Table, PatternCount)
	for i := range tables {
		tables[i] = NewTable()
	}
	return &Network{Tables: tables}
}

// Estimate sums the weights addressed by b over all patterns.
//
// Estimateは全パターンの重みの合計を盤面の価値として返します。
func (n *Network) Estimate(b twenty48.Board) float32 {
	var v float32
	for x, t := range n.Tables {
		v += t[Extract(x, b)]
	}
	return v
}

// Adjust moves Estimate(b) towards target by adding alpha*(target-Estimate(b)) to each
// addressed weight. It returns the error before the update.
//
// Adjustは各パターンの重みにalpha*(target-Estimate(b))を加算します。
func (n *Network) Adjust(b twenty48.Board, target, alpha float32) float32 {
	diff := target - n.Estimate(b)
	if alpha == 0 {
		return diff
	}
	delta := alpha * diff
	for x, t := range n.Tables {
		t[Extract(x, b)] += delta
	}
	return diff
}

// Clone returns a deep copy.
func (n *Network) Clone() *Network {
	tables := make([]Table, len(n.Tables))
	for i, t := range n.Tables {
		tables[i] = append(Table(nil), t...)
	}
	return &Network{Tables: tables}
}

// Stats summarises the weights.
type Stats struct {
	MaxAbs  float32
	NonZero int
}

func (n *Network) Stats() Stats {
	var s Stats
	for _, t := range n.Tables {
		for _, w := range t {
			if w == 0 {
				continue
			}
			s.NonZero++
			if a := math32.Abs(w); a > s.MaxAbs {
				s.MaxAbs = a
			}
		}
	}
	return s
}
