package selfplay_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/sw965/crow2048/agent"
	"github.com/sw965/crow2048/game/twenty48"
	"github.com/sw965/crow2048/selfplay"
)

func newAgents(t *testing.T, playerArgs string) (agent.Agent, agent.Agent) {
	t.Helper()
	player, err := agent.NewFromArgs(agent.RolePlayer, playerArgs, nil)
	require.NoError(t, err)
	env, err := agent.NewFromArgs(agent.RoleEnvironment, "seed=2", nil)
	require.NoError(t, err)
	return player, env
}

func TestPlay(t *testing.T) {
	for _, name := range agent.StrategyNames() {
		t.Run("正常_"+name, func(t *testing.T) {
			player, env := newAgents(t, "init seed=1 name="+name)
			r, err := selfplay.Play(player, env)
			require.NoError(t, err)

			require.Greater(t, r.Moves, 0)
			require.Equal(t, r.Final.MaxTile(), r.MaxTile)

			// 終局ではどの方向にも動かせない
			for _, op := range twenty48.Ops {
				b := r.Final
				require.Equal(t, twenty48.IllegalReward, b.Slide(op))
			}
		})
	}
}

func TestPlayRecordsEveryPlayerMove(t *testing.T) {
	player, env := newAgents(t, "init alpha=0 seed=1")
	r, err := selfplay.Play(player, env)
	require.NoError(t, err)
	require.Len(t, player.(*agent.Player).History(), r.Moves)
}

func TestPlayNilAgent(t *testing.T) {
	_, err := selfplay.Play(nil, nil)
	require.ErrorIs(t, err, selfplay.ErrNilAgent)
}

func TestTrain(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)

	player, env := newAgents(t, "init alpha=0.01 seed=1")
	results, err := selfplay.Train(player, env, 20, 5, logger)
	require.NoError(t, err)
	require.Len(t, results, 20)

	blocks := 0
	for _, e := range hook.AllEntries() {
		if e.Message == "training block" {
			blocks++
			require.Contains(t, e.Data, "mean")
		}
	}
	require.Equal(t, 4, blocks)
	require.NotZero(t, player.(*agent.Player).Network().Stats().NonZero)

	_, err = selfplay.Train(player, env, 0, 1, logger)
	require.ErrorIs(t, err, selfplay.ErrInvalidEpisodes)
}

func TestEvaluate(t *testing.T) {
	player, env := newAgents(t, "init alpha=0.01 seed=3")
	_, err := selfplay.Train(player, env, 5, 0, nil)
	require.NoError(t, err)
	network := player.(*agent.Player).Network()
	snapshot := network.Clone()

	results, err := selfplay.Evaluate(network, 16, 4, 9, nil)
	require.NoError(t, err)
	require.Len(t, results, 16)
	for _, r := range results {
		require.Greater(t, r.Moves, 0)
	}
	for i := range network.Tables {
		require.Equal(t, snapshot.Tables[i], network.Tables[i])
	}

	_, err = selfplay.Evaluate(network, 4, 0, 9, nil)
	require.ErrorIs(t, err, selfplay.ErrInvalidParallel)
}

func TestSummarize(t *testing.T) {
	s := selfplay.Summarize([]selfplay.Result{
		{Score: 100, Moves: 10, MaxTile: 7},
		{Score: 300, Moves: 30, MaxTile: 11},
		{Score: 200, Moves: 20, MaxTile: 8},
	})
	require.Equal(t, 3, s.Episodes)
	require.InDelta(t, 200, s.MeanScore, 1e-9)
	require.InDelta(t, 100, s.StdScore, 1e-9)
	require.InDelta(t, 300, s.MaxScore, 1e-9)
	require.InDelta(t, 20, s.MeanMoves, 1e-9)
	require.InDelta(t, 1.0, s.ReachRate[7], 1e-9)
	require.InDelta(t, 2.0/3, s.ReachRate[8], 1e-9)
	require.InDelta(t, 1.0/3, s.ReachRate[11], 1e-9)
	require.Contains(t, s.Fields(), "reach_2048")

	empty := selfplay.Summarize(nil)
	require.Zero(t, empty.Episodes)

	one := selfplay.Summarize([]selfplay.Result{{Score: 4}})
	require.Zero(t, one.StdScore)
}
