// Package twenty48 provides the board and move mechanics of the 2048 sliding-tile game.
//
// Package twenty48 は2048(スライドパズル)の盤面と移動処理を提供します。
package twenty48

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Rows = 4
	Cols = 4
	Size = Rows * Cols
)

// Op is a slide direction.
//
// Opはスライドの方向を表します。
type Op int

const (
	Up Op = iota
	Right
	Down
	Left
)

// Ops lists every slide direction in the fixed enumeration order used for tie-breaking.
//
// Opsは全てのスライド方向を、同点時の優先順で並べたものです。
var Ops = [4]Op{Up, Right, Down, Left}

func (op Op) String() string {
	switch op {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// IllegalReward is returned by Slide when the board does not change.
const IllegalReward = -1

// Cell holds a tile exponent. 0 is an empty cell and n is the tile 2^n.
type Cell = uint8

// Board represents the 4x4 grid in row-major order (position = row*4 + col).
//
// Boardは4x4の盤面を行優先で表します(位置 = 行*4 + 列)。
type Board [Size]Cell

// lines holds, for each Op, the four lines of positions ordered from the side tiles slide towards.
var lines = func() [4][Rows][Cols]int {
	var ls [4][Rows][Cols]int
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			ls[Left][i][j] = i*Cols + j
			ls[Right][i][j] = i*Cols + (Cols - 1 - j)
			ls[Up][i][j] = j*Cols + i
			ls[Down][i][j] = (Rows-1-j)*Cols + i
		}
	}
	return ls
}()

// At returns the exponent at pos.
func (b Board) At(pos int) Cell {
	return b[pos]
}

// Place puts the tile exponent at pos.
func (b *Board) Place(pos int, tile Cell) {
	b[pos] = tile
}

// EmptyCount returns the number of empty cells.
//
// EmptyCountは空きセルの数を返します。
func (b Board) EmptyCount() int {
	n := 0
	for _, c := range b {
		if c == 0 {
			n++
		}
	}
	return n
}

// MaxTile returns the largest exponent on the board.
func (b Board) MaxTile() Cell {
	var m Cell
	for _, c := range b {
		if c > m {
			m = c
		}
	}
	return m
}

// Slide moves every tile towards op and merges equal neighbours once per move.
// The reward is the sum of the merged tile values (2^exponent). If nothing moved the
// board is left untouched and IllegalReward is returned.
//
// Slideはopの方向に全てのタイルを動かし、同じタイルを1手につき1回だけ合成します。
// 報酬は合成されたタイルの値(2^指数)の合計です。盤面が変化しなかった場合はIllegalRewardを返します。
func (b *Board) Slide(op Op) int {
	if op < Up || op > Left {
		return IllegalReward
	}

	prev := *b
	reward := 0
	for _, line := range lines[op] {
		top, hold := 0, Cell(0)
		for _, pos := range line {
			tile := b[pos]
			if tile == 0 {
				continue
			}
			b[pos] = 0
			if hold == 0 {
				hold = tile
				continue
			}
			if tile == hold {
				tile++
				b[line[top]] = tile
				top++
				reward += 1 << tile
				hold = 0
			} else {
				b[line[top]] = hold
				top++
				hold = tile
			}
		}
		if hold != 0 {
			b[line[top]] = hold
		}
	}

	if *b == prev {
		return IllegalReward
	}
	return reward
}

func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("+------------------------+\n")
	for i := 0; i < Rows; i++ {
		sb.WriteString("|")
		for j := 0; j < Cols; j++ {
			c := b[i*Cols+j]
			if c == 0 {
				sb.WriteString(fmt.Sprintf("%6d", 0))
			} else {
				sb.WriteString(fmt.Sprintf("%6d", 1<<c))
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("+------------------------+")
	return sb.String()
}

var (
	ErrNoAction        = errors.New("Actionエラー: 行動がありません")
	ErrInvalidPosition = errors.New("Actionエラー: 位置が盤面外です")
	ErrOccupiedCell    = errors.New("Actionエラー: 既にタイルがあります")
	ErrIllegalSlide    = errors.New("Actionエラー: 盤面が変化しないスライドです")
)

type actionKind uint8

const (
	noAction actionKind = iota
	slideAction
	placeAction
)

// Action is either a slide (player) or a tile placement (environment).
// The zero value means that no action is available.
//
// Actionはスライド(プレイヤー)またはタイルの配置(環境)です。ゼロ値は行動が無い事を意味します。
type Action struct {
	kind actionKind
	op   Op
	pos  int
	tile Cell
}

func NewSlide(op Op) Action {
	return Action{kind: slideAction, op: op}
}

func NewPlace(pos int, tile Cell) Action {
	return Action{kind: placeAction, pos: pos, tile: tile}
}

func (a Action) IsNone() bool {
	return a.kind == noAction
}

func (a Action) IsSlide() bool {
	return a.kind == slideAction
}

func (a Action) IsPlace() bool {
	return a.kind == placeAction
}

// Op returns the direction of a slide action.
func (a Action) Op() Op {
	return a.op
}

// Position and Tile describe a placement action.
func (a Action) Position() int {
	return a.pos
}

func (a Action) Tile() Cell {
	return a.tile
}

// Apply performs the action on b and returns the reward. Placements earn 0.
//
// Applyは盤面に行動を適用し、報酬を返します。配置の報酬は0です。
func (a Action) Apply(b *Board) (int, error) {
	switch a.kind {
	case slideAction:
		r := b.Slide(a.op)
		if r == IllegalReward {
			return 0, fmt.Errorf("%w: %v", ErrIllegalSlide, a.op)
		}
		return r, nil
	case placeAction:
		if a.pos < 0 || a.pos >= Size {
			return 0, fmt.Errorf("%w: %d", ErrInvalidPosition, a.pos)
		}
		if b[a.pos] != 0 {
			return 0, fmt.Errorf("%w: %d", ErrOccupiedCell, a.pos)
		}
		b.Place(a.pos, a.tile)
		return 0, nil
	}
	return 0, ErrNoAction
}

func (a Action) String() string {
	switch a.kind {
	case slideAction:
		return "#" + a.op.String()
	case placeAction:
		return fmt.Sprintf("%d@%d", 1<<a.tile, a.pos)
	}
	return "none"
}
