package agent

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"github.com/sw965/crow2048/game/twenty48"
)

// Environment adds a tile to a random empty cell: 2 with probability 0.9, otherwise 4.
//
// Environmentはランダムな空きセルにタイルを追加します(2が90%、4が10%)。
type Environment struct {
	cfg   Config
	space [twenty48.Size]int
	rng   *rand.Rand
}

func NewEnvironment(cfg Config, log logrus.FieldLogger) *Environment {
	e := &Environment{cfg: cfg, rng: newRand(cfg)}
	for i := range e.space {
		e.space[i] = i
	}
	logConfig(orStandard(log), cfg)
	return e
}

func (e *Environment) Name() string {
	return e.cfg.Name
}

func (e *Environment) Role() Role {
	return RoleEnvironment
}

func (e *Environment) OpenEpisode() {}

func (e *Environment) CloseEpisode() {}

func (e *Environment) Close() error {
	return nil
}

func (e *Environment) TakeAction(after twenty48.Board) twenty48.Action {
	e.rng.Shuffle(len(e.space), func(i, j int) {
		e.space[i], e.space[j] = e.space[j], e.space[i]
	})
	for _, pos := range e.space {
		if after.At(pos) != 0 {
			continue
		}
		var tile twenty48.Cell = 1
		if e.rng.IntN(10) == 0 {
			tile = 2
		}
		return twenty48.NewPlace(pos, tile)
	}
	return twenty48.Action{}
}
