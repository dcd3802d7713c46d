package agent

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"github.com/sw965/crow2048/game/twenty48"
	"github.com/sw965/crow2048/ntuple"
	"github.com/sw965/crow2048/td"
)

// Strategy picks the player's move for before.
type Strategy func(p *Player, before twenty48.Board) twenty48.Action

var strategies = map[string]Strategy{
	"TD":           tdStrategy,
	"dummy":        dummyStrategy,
	"greedy_score": greedyScoreStrategy,
	"greedy_pos":   greedyPosStrategy,
}

// StrategyNames returns the names accepted by the name= option of a player.
func StrategyNames() []string {
	return []string{"TD", "dummy", "greedy_score", "greedy_pos"}
}

// Player slides tiles. The TD strategy keeps the afterstates of the current episode and
// learns from them when the episode closes.
//
// Playerはタイルをスライドさせるエージェントです。
type Player struct {
	cfg      Config
	strategy Strategy
	network  *ntuple.Network
	learner  td.Learner
	history  td.Trajectory
	ops      [4]twenty48.Op
	rng      *rand.Rand
	log      logrus.FieldLogger
}

// NewPlayer allocates (init) and/or restores (load) the weight tables in that order.
// The TD strategy fails without one of them.
func NewPlayer(cfg Config, log logrus.FieldLogger) (*Player, error) {
	var network *ntuple.Network
	if cfg.Init {
		network = ntuple.NewNetwork()
	}
	if cfg.Load != "" {
		loaded, err := ntuple.Load(cfg.Load)
		if err != nil {
			return nil, fmt.Errorf("load=%s: %w", cfg.Load, err)
		}
		network = loaded
		orStandard(log).WithField("path", cfg.Load).Info("weights loaded")
	}
	return NewPlayerWithNetwork(cfg, network, log)
}

// NewPlayerWithNetwork builds a player on an existing network. Several players may share
// one network only if none of them learns (alpha=0).
func NewPlayerWithNetwork(cfg Config, network *ntuple.Network, log logrus.FieldLogger) (*Player, error) {
	if cfg.Role != RolePlayer {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, cfg.Role)
	}
	strategy, ok := strategies[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.Name)
	}
	if cfg.Name == "TD" && network == nil {
		return nil, ErrNoNetwork
	}

	return &Player{
		cfg:      cfg,
		strategy: strategy,
		network:  network,
		learner:  td.Learner{Network: network, Alpha: cfg.Alpha},
		ops:      twenty48.Ops,
		rng:      newRand(cfg),
		log:      logConfig(orStandard(log), cfg),
	}, nil
}

func (p *Player) Name() string {
	return p.cfg.Name
}

func (p *Player) Role() Role {
	return RolePlayer
}

func (p *Player) Network() *ntuple.Network {
	return p.network
}

// History returns the trajectory recorded so far in the current episode.
func (p *Player) History() td.Trajectory {
	return p.history
}

func (p *Player) OpenEpisode() {
	p.history = p.history[:0]
}

func (p *Player) CloseEpisode() {
	if p.network == nil {
		return
	}
	p.learner.Learn(p.history)
}

func (p *Player) TakeAction(before twenty48.Board) twenty48.Action {
	return p.strategy(p, before)
}

func (p *Player) Close() error {
	if p.cfg.Save == "" {
		return nil
	}
	if p.network == nil {
		return fmt.Errorf("save=%s: %w", p.cfg.Save, ErrNoNetwork)
	}
	if err := p.network.Save(p.cfg.Save); err != nil {
		return fmt.Errorf("save=%s: %w", p.cfg.Save, err)
	}
	p.log.WithField("path", p.cfg.Save).Info("weights saved")
	return nil
}

func tdStrategy(p *Player, before twenty48.Board) twenty48.Action {
	op, step, ok := td.Select(p.network, before)
	if !ok {
		return twenty48.Action{}
	}
	p.history = append(p.history, step)
	return twenty48.NewSlide(op)
}

func dummyStrategy(p *Player, before twenty48.Board) twenty48.Action {
	p.rng.Shuffle(len(p.ops), func(i, j int) {
		p.ops[i], p.ops[j] = p.ops[j], p.ops[i]
	})
	for _, op := range p.ops {
		after := before
		if after.Slide(op) != twenty48.IllegalReward {
			return twenty48.NewSlide(op)
		}
	}
	return twenty48.Action{}
}

func greedyScoreStrategy(p *Player, before twenty48.Board) twenty48.Action {
	bestReward := twenty48.IllegalReward
	var bestOp twenty48.Op
	for _, op := range twenty48.Ops {
		after := before
		reward := after.Slide(op)
		if reward > bestReward {
			bestOp = op
			bestReward = reward
		}
	}
	if bestReward == twenty48.IllegalReward {
		return twenty48.Action{}
	}
	return twenty48.NewSlide(bestOp)
}

// greedyPosStrategy breaks reward ties towards the afterstate with fewer empty cells.
func greedyPosStrategy(p *Player, before twenty48.Board) twenty48.Action {
	bestReward := twenty48.IllegalReward
	bestSpace := twenty48.Size + 1
	var bestOp twenty48.Op
	for _, op := range twenty48.Ops {
		after := before
		reward := after.Slide(op)
		if reward == twenty48.IllegalReward {
			continue
		}
		space := after.EmptyCount()
		if reward > bestReward || (reward == bestReward && space < bestSpace) {
			bestOp = op
			bestReward = reward
			bestSpace = space
		}
	}
	if bestReward == twenty48.IllegalReward {
		return twenty48.Action{}
	}
	return twenty48.NewSlide(bestOp)
}
