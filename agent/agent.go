// Package agent provides the players and the environment of a 2048 episode. Which variant
// is built is decided by configuration: a player runs one named strategy, an environment
// places random tiles.
//
// Package agent は2048のプレイヤーと環境を提供します。どの種類を生成するかは設定で決まります。
package agent

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"github.com/sw965/crow2048/game/twenty48"
	"github.com/sw965/omw/mathx/randx"
)

// Agent is one side of the turn cycle. TakeAction returns the zero Action when it has
// nothing to play, which ends the episode.
type Agent interface {
	Name() string
	Role() Role
	OpenEpisode()
	CloseEpisode()
	TakeAction(twenty48.Board) twenty48.Action
	// Close releases the agent. A player configured with save= writes its weights here.
	Close() error
}

// New builds the agent described by cfg. A nil logger uses the logrus standard logger.
//
// Newは設定に従ってエージェントを生成します。
func New(cfg Config, log logrus.FieldLogger) (Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Role {
	case RolePlayer:
		return NewPlayer(cfg, log)
	case RoleEnvironment:
		return NewEnvironment(cfg, log), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRole, cfg.Role)
}

// NewFromArgs parses args over the defaults of role and builds the agent.
func NewFromArgs(role Role, args string, log logrus.FieldLogger) (Agent, error) {
	cfg, err := ParseArgs(role, args)
	if err != nil {
		return nil, err
	}
	return New(cfg, log)
}

func newRand(cfg Config) *rand.Rand {
	if cfg.HasSeed {
		return rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}
	return randx.NewPCGFromGlobalSeed()
}

func orStandard(log logrus.FieldLogger) logrus.FieldLogger {
	if log == nil {
		return logrus.StandardLogger()
	}
	return log
}

func logConfig(log logrus.FieldLogger, cfg Config) logrus.FieldLogger {
	fields := logrus.Fields{}
	for k, v := range cfg.Meta {
		fields[k] = v
	}
	l := log.WithFields(fields)
	l.Debug("agent created")
	return l
}
