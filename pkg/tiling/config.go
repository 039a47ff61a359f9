package tiling

import (
	"github.com/matzehuels/blockfill/pkg/errors"
)

// Strategy selects the planner used by a session.
type Strategy string

const (
	// StrategyGrowth grows blocks around shuffled seed cells.
	StrategyGrowth Strategy = "grow"
	// StrategyTopLeft grows blocks from the left-most frontier corner.
	StrategyTopLeft Strategy = "topleft"
)

// Strategies lists the valid strategy names.
func Strategies() []string {
	return []string{string(StrategyGrowth), string(StrategyTopLeft)}
}

// ParseStrategy converts a name into a Strategy. The empty string selects
// StrategyGrowth.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case "", StrategyGrowth:
		return StrategyGrowth, nil
	case StrategyTopLeft:
		return StrategyTopLeft, nil
	}
	return "", errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %q (valid: %v)", name, Strategies())
}

// Config is the immutable input of a session.
type Config struct {
	Width    int      `json:"width" bson:"width"`
	Height   int      `json:"height" bson:"height"`
	MinBlock int      `json:"min_block" bson:"min_block"`
	MaxBlock int      `json:"max_block" bson:"max_block"`
	MaxSteps int      `json:"max_steps" bson:"max_steps"`
	Seed     int64    `json:"seed" bson:"seed"`
	Strategy Strategy `json:"strategy,omitempty" bson:"strategy,omitempty"`
}

// Validate reports the first invalid field as an INVALID_CONFIG error.
// MaxSteps of zero is valid and produces an empty tiling.
func (c Config) Validate() error {
	if err := errors.ValidateGridSize(c.Width, c.Height); err != nil {
		return err
	}
	if err := errors.ValidateBlockSizes(c.MinBlock, c.MaxBlock); err != nil {
		return err
	}
	if err := errors.ValidateMaxSteps(c.MaxSteps); err != nil {
		return err
	}
	if _, err := ParseStrategy(string(c.Strategy)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid strategy")
	}
	return nil
}

func (c Config) strategy() Strategy {
	if c.Strategy == "" {
		return StrategyGrowth
	}
	return c.Strategy
}
