// Package selfplay runs 2048 episodes between a player and an environment: single
// episodes, a sequential training loop and parallel evaluation of a frozen network.
//
// Package selfplay はプレイヤーと環境による2048のエピソードを実行します。
package selfplay

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"github.com/sw965/crow2048/agent"
	"github.com/sw965/crow2048/game/twenty48"
	"github.com/sw965/crow2048/ntuple"
	"github.com/sw965/omw/parallel"
)

var (
	ErrNilAgent        = errors.New("selfplayエラー: エージェントがnilです")
	ErrInvalidEpisodes = errors.New("selfplayエラー: エピソード数は1以上である必要があります")
	ErrInvalidParallel = errors.New("selfplayエラー: 並列数は1以上である必要があります")
)

// Result describes one finished episode.
type Result struct {
	Score   int
	Moves   int
	MaxTile twenty48.Cell
	Final   twenty48.Board
}

// Play runs one episode. The environment places the first two tiles, then the player and
// the environment alternate until the agent to move has no action.
//
// Playは1エピソードを実行します。最初の2手は環境が打ち、その後はプレイヤーと環境が交互に打ちます。
func Play(player, env agent.Agent) (Result, error) {
	if player == nil || env == nil {
		return Result{}, ErrNilAgent
	}

	player.OpenEpisode()
	env.OpenEpisode()

	var board twenty48.Board
	var result Result
	for step := 0; ; step++ {
		who := env
		if step >= 2 && step%2 == 0 {
			who = player
		}

		action := who.TakeAction(board)
		if action.IsNone() {
			break
		}

		reward, err := action.Apply(&board)
		if err != nil {
			return Result{}, fmt.Errorf("%s step=%d action=%v: %w", who.Name(), step, action, err)
		}
		result.Score += reward
		if action.IsSlide() {
			result.Moves++
		}
	}

	player.CloseEpisode()
	env.CloseEpisode()

	result.Final = board
	result.MaxTile = board.MaxTile()
	return result, nil
}

// Train plays episodes sequentially with the same pair of agents, so a learning player
// updates its network after every episode. A summary is logged every block episodes
// (never if block <= 0).
//
// Trainは同じエージェントで逐次的にエピソードを実行します。
func Train(player, env agent.Agent, episodes, block int, log logrus.FieldLogger) ([]Result, error) {
	if episodes < 1 {
		return nil, ErrInvalidEpisodes
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	results := make([]Result, 0, episodes)
	for i := 0; i < episodes; i++ {
		r, err := Play(player, env)
		if err != nil {
			return results, err
		}
		results = append(results, r)

		if block > 0 && (i+1)%block == 0 {
			s := Summarize(results[len(results)-block:])
			log.WithFields(s.Fields()).WithField("episode", i+1).Info("training block")
		}
	}
	return results, nil
}

// Evaluate plays episodes in parallel with the TD strategy on a frozen network. Each of the
// p workers owns its own player and environment; the network is only read.
//
// Evaluateは学習を行わないTDプレイヤーでp並列にエピソードを実行します。ネットワークは読み取りのみです。
func Evaluate(network *ntuple.Network, episodes, p int, seed uint64, log logrus.FieldLogger) ([]Result, error) {
	if episodes < 1 {
		return nil, ErrInvalidEpisodes
	}
	if p < 1 {
		return nil, ErrInvalidParallel
	}

	seeder := rand.New(rand.NewPCG(seed, seed))
	players := make([]agent.Agent, p)
	envs := make([]agent.Agent, p)
	for w := 0; w < p; w++ {
		pcfg := agent.Config{Name: "TD", Role: agent.RolePlayer, Seed: seeder.Uint64(), HasSeed: true}
		player, err := agent.NewPlayerWithNetwork(pcfg, network, log)
		if err != nil {
			return nil, err
		}
		players[w] = player

		ecfg := agent.Config{Name: "random", Role: agent.RoleEnvironment, Seed: seeder.Uint64(), HasSeed: true}
		envs[w] = agent.NewEnvironment(ecfg, log)
	}

	results := make([]Result, episodes)
	err := parallel.For(episodes, p, func(workerId, idx int) error {
		r, err := Play(players[workerId], envs[workerId])
		if err != nil {
			return err
		}
		results[idx] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
