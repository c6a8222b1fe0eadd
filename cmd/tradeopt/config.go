package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aristath/tradeopt/constraint"
	"github.com/aristath/tradeopt/cost"
	"github.com/aristath/tradeopt/portfolio"
)

// cashKey names the cash account appended to the configured positions.
const cashKey = "cash"

// Scenario describes one ad-hoc optimization run: the current book, the
// forecast returns for the period, and the active models.
type Scenario struct {
	// Timestamp of the period; zero means now.
	Timestamp time.Time `yaml:"timestamp"`

	Solver    string  `yaml:"solver"`
	SolverTol float64 `yaml:"solver_tol"`

	Holdings []Position `yaml:"holdings"`
	Cash     float64    `yaml:"cash"`

	// Forecast maps asset to expected single-period return. Cash
	// defaults to zero when absent.
	Forecast map[string]float64 `yaml:"forecast"`

	Constraints ConstraintConfig `yaml:"constraints"`
	Costs       CostConfig       `yaml:"costs"`
}

// Position is one non-cash holding in currency units.
type Position struct {
	Asset string  `yaml:"asset"`
	Value float64 `yaml:"value"`
}

// ConstraintConfig selects the stock constraint models. An entirely empty
// block selects the strategy defaults; None drops every constraint except
// self-financing.
type ConstraintConfig struct {
	None          bool     `yaml:"none"`
	MaxWeight     *float64 `yaml:"max_weight"`
	MinWeight     *float64 `yaml:"min_weight"`
	MaxLeverage   *float64 `yaml:"max_leverage"`
	MaxTurnover   *float64 `yaml:"max_turnover"`
	LongOnly      bool     `yaml:"long_only"`
	DollarNeutral bool     `yaml:"dollar_neutral"`
}

// CostConfig selects the stock cost models.
type CostConfig struct {
	HalfSpread *float64 `yaml:"half_spread"`
	BorrowRate *float64 `yaml:"borrow_rate"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the scenario for holes that would only surface
// mid-solve.
func (s *Scenario) Validate() error {
	if len(s.Holdings) == 0 {
		return errors.New("scenario: no holdings")
	}
	for _, p := range s.Holdings {
		if p.Asset == "" {
			return errors.New("scenario: holding with empty asset name")
		}
		if p.Asset == cashKey {
			return fmt.Errorf("scenario: %q is reserved for the cash account", cashKey)
		}
		if _, ok := s.Forecast[p.Asset]; !ok {
			return fmt.Errorf("scenario: no forecast return for %q", p.Asset)
		}
	}
	return nil
}

// HoldingsSeries builds the holdings with the cash account appended last.
func (s *Scenario) HoldingsSeries() (portfolio.Series, error) {
	keys := make([]string, 0, len(s.Holdings)+1)
	vals := make([]float64, 0, len(s.Holdings)+1)
	for _, p := range s.Holdings {
		keys = append(keys, p.Asset)
		vals = append(vals, p.Value)
	}
	keys = append(keys, cashKey)
	vals = append(vals, s.Cash)
	return portfolio.NewSeries(keys, vals)
}

// ForecastReturns returns the per-asset forecast map with the cash return
// filled in.
func (s *Scenario) ForecastReturns() map[string]float64 {
	out := make(map[string]float64, len(s.Forecast)+1)
	for k, v := range s.Forecast {
		out[k] = v
	}
	if _, ok := out[cashKey]; !ok {
		out[cashKey] = 0
	}
	return out
}

// Models maps the scenario blocks onto constraint and cost models.
func (s *Scenario) Models() ([]constraint.Model, []cost.Model) {
	var cons []constraint.Model
	c := s.Constraints
	switch {
	case c.None:
		cons = []constraint.Model{}
	default:
		if c.MaxWeight != nil {
			cons = append(cons, constraint.NewMaxWeight(*c.MaxWeight))
		}
		if c.MinWeight != nil {
			cons = append(cons, constraint.NewMinWeight(*c.MinWeight))
		}
		if c.MaxLeverage != nil {
			cons = append(cons, constraint.NewMaxLeverage(*c.MaxLeverage))
		}
		if c.MaxTurnover != nil {
			cons = append(cons, constraint.NewMaxTurnover(*c.MaxTurnover))
		}
		if c.LongOnly {
			cons = append(cons, constraint.NewLongOnly())
		}
		if c.DollarNeutral {
			cons = append(cons, constraint.NewDollarNeutral())
		}
		// Leave cons nil when the block is empty so the strategy
		// applies its defaults.
	}

	var costs []cost.Model
	if s.Costs.HalfSpread != nil {
		costs = append(costs, cost.NewTradingCost(*s.Costs.HalfSpread))
	}
	if s.Costs.BorrowRate != nil {
		costs = append(costs, cost.NewHoldingCost(*s.Costs.BorrowRate))
	}
	return cons, costs
}

// getEnv reads an environment variable with a fallback.
func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
