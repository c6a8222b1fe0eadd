// Command tradeopt runs one single-period portfolio optimization from a
// YAML scenario and prints the resulting trade list. It is an ad-hoc
// runner, not a backtester: one period, one solve, no data ingestion.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/aristath/tradeopt/forecast"
	"github.com/aristath/tradeopt/pkg/logger"
	"github.com/aristath/tradeopt/portfolio"
	"github.com/aristath/tradeopt/solver"
	"github.com/aristath/tradeopt/strategy"
)

func main() {
	_ = godotenv.Load()

	var (
		scenarioPath = flag.String("scenario", "scenario.yaml", "path to the scenario file")
		pretty       = flag.Bool("pretty", true, "human-readable log output")
	)
	flag.Parse()

	log := logger.New(logger.Config{
		Level:  getEnv("LOG_LEVEL", "info"),
		Pretty: *pretty,
	})

	if err := run(*scenarioPath, log); err != nil {
		fail(log, err)
	}
}

func run(path string, log zerolog.Logger) error {
	sc, err := LoadScenario(path)
	if err != nil {
		return err
	}
	holdings, err := sc.HoldingsSeries()
	if err != nil {
		return err
	}

	sol, err := solver.ByName(sc.Solver, log)
	if err != nil {
		return err
	}
	cons, costs := sc.Models()

	spo := strategy.NewSPO(strategy.Config{
		Costs:         costs,
		Constraints:   cons,
		Solver:        sol,
		SolverOptions: solver.Options{Tol: sc.SolverTol},
	}, log)
	if err := spo.Configure(forecast.NewConstant(sc.ForecastReturns())); err != nil {
		return err
	}

	log.Info().
		Int("assets", holdings.Len()-1).
		Float64("value", holdings.Sum()).
		Str("solver", sol.Name()).
		Msg("running single-period optimization")

	trades, err := spo.GenerateTradeList(holdings, sc.Timestamp)
	if err != nil {
		return err
	}

	printTrades(holdings, trades)
	return nil
}

func printTrades(holdings, trades portfolio.Series) {
	fmt.Printf("%-12s %16s %16s\n", "ASSET", "HOLDING", "TRADE")
	for i := 0; i < trades.Len(); i++ {
		fmt.Printf("%-12s %16.2f %+16.2f\n", trades.Key(i), holdings.At(i), trades.At(i))
	}
	fmt.Printf("%-12s %16.2f %+16.2f\n", "TOTAL", holdings.Sum(), trades.Sum())
}

func fail(log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, strategy.ErrInfeasible):
		log.Error().Err(err).Msg("constraint set admits no portfolio; relax the bounds")
	case errors.Is(err, strategy.ErrNonConvex):
		log.Error().Err(err).Msg("a model produced a non-convex expression")
	case errors.Is(err, strategy.ErrDegeneratePortfolio):
		log.Error().Err(err).Msg("holdings cannot be normalized")
	case errors.Is(err, strategy.ErrBadForecast):
		log.Error().Err(err).Msg("forecast source returned unusable data")
	case errors.Is(err, strategy.ErrSolverFailed):
		log.Error().Err(err).Msg("solver fault")
	default:
		log.Error().Err(err).Msg("run failed")
	}
	os.Exit(1)
}
