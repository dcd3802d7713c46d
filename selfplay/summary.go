package selfplay

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/sw965/crow2048/game/twenty48"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a block of episode results.
type Summary struct {
	Episodes  int
	MeanScore float64
	StdScore  float64
	MaxScore  float64
	MeanMoves float64
	// ReachRate[t] is the share of episodes whose largest tile was at least 2^t.
	ReachRate map[twenty48.Cell]float64
}

func Summarize(results []Result) Summary {
	n := len(results)
	s := Summary{Episodes: n, ReachRate: map[twenty48.Cell]float64{}}
	if n == 0 {
		return s
	}

	scores := make([]float64, n)
	moves := make([]float64, n)
	counts := map[twenty48.Cell]int{}
	for i, r := range results {
		scores[i] = float64(r.Score)
		moves[i] = float64(r.Moves)
		counts[r.MaxTile]++
	}

	s.MeanScore, s.StdScore = stat.MeanStdDev(scores, nil)
	if n == 1 {
		s.StdScore = 0
	}
	s.MaxScore = floats.Max(scores)
	s.MeanMoves = stat.Mean(moves, nil)

	reached := 0
	for t := twenty48.Cell(31); t >= 1; t-- {
		reached += counts[t]
		if reached > 0 {
			s.ReachRate[t] = float64(reached) / float64(n)
		}
	}
	return s
}

// Fields renders the summary for logrus, with reach rates for 2048 and above.
func (s Summary) Fields() logrus.Fields {
	f := logrus.Fields{
		"episodes": s.Episodes,
		"mean":     s.MeanScore,
		"std":      s.StdScore,
		"max":      s.MaxScore,
		"moves":    s.MeanMoves,
	}
	for t, rate := range s.ReachRate {
		if t >= 11 {
			f[fmt.Sprintf("reach_%d", 1<<t)] = rate
		}
	}
	return f
}
