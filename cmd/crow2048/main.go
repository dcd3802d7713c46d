// Command crow2048 trains a 2048 player by self-play and optionally evaluates the result.
//
//	crow2048 -total 100000 -block 1000 -play "init alpha=0.1 save=weights.bin" -evil "seed=1"
//
// Flag defaults can be set in a .env file (CROW2048_PLAY, CROW2048_EVIL, CROW2048_TOTAL,
// CROW2048_BLOCK, CROW2048_EVAL, CROW2048_PARALLEL, CROW2048_LOG_LEVEL).
package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/sw965/crow2048/agent"
	"github.com/sw965/crow2048/selfplay"
)

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Fatal("invalid integer in environment")
	}
	return n
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.WithError(err).Fatal("failed to read .env")
	}

	total := flag.Int("total", envInt("CROW2048_TOTAL", 1000), "training episodes")
	block := flag.Int("block", envInt("CROW2048_BLOCK", 100), "episodes per summary")
	playArgs := flag.String("play", envString("CROW2048_PLAY", "init"), "player arguments (key=value ...)")
	evilArgs := flag.String("evil", envString("CROW2048_EVIL", ""), "environment arguments (key=value ...)")
	eval := flag.Int("eval", envInt("CROW2048_EVAL", 0), "evaluation episodes after training (0 to skip)")
	par := flag.Int("parallel", envInt("CROW2048_PARALLEL", runtime.NumCPU()), "evaluation workers")
	level := flag.String("log-level", envString("CROW2048_LOG_LEVEL", "info"), "logrus level")
	flag.Parse()

	lvl, err := logrus.ParseLevel(*level)
	if err != nil {
		logrus.WithError(err).Fatal("invalid log level")
	}
	logrus.SetLevel(lvl)
	log := logrus.StandardLogger()

	player, err := agent.NewFromArgs(agent.RolePlayer, *playArgs, log)
	if err != nil {
		log.WithError(err).Fatal("player configuration")
	}
	env, err := agent.NewFromArgs(agent.RoleEnvironment, *evilArgs, log)
	if err != nil {
		log.WithError(err).Fatal("environment configuration")
	}

	results, err := selfplay.Train(player, env, *total, *block, log)
	if err != nil {
		log.WithError(err).Fatal("training")
	}
	log.WithFields(selfplay.Summarize(results).Fields()).Info("training finished")

	if p, ok := player.(*agent.Player); ok && p.Network() != nil {
		stats := p.Network().Stats()
		log.WithFields(logrus.Fields{"max_abs": stats.MaxAbs, "non_zero": stats.NonZero}).Info("weights")

		if *eval > 0 {
			evalResults, err := selfplay.Evaluate(p.Network(), *eval, *par, 1, log)
			if err != nil {
				log.WithError(err).Fatal("evaluation")
			}
			log.WithFields(selfplay.Summarize(evalResults).Fields()).Info("evaluation finished")
		}
	}

	if err := player.Close(); err != nil {
		log.WithError(err).Fatal("player close")
	}
	if err := env.Close(); err != nil {
		log.WithError(err).Fatal("environment close")
	}
}
