// Package bootstrap brings a node up on one network: it loads the config,
// selects the network for the process, checks the genesis block against the
// local clock and only then hands over to the chain state initializer.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/bngproject/go-bng/network"
	"github.com/davecgh/go-spew/spew"
	"github.com/lightningnetwork/lnd/clock"
)

// ChainInitializer loads or creates the chain state of a network. It is the
// expensive step Run guards with the genesis checks.
type ChainInitializer interface {
	InitChainState(ctx context.Context, params *network.Params) error
}

// ChainInitializerFunc is an adapter to allow the use of ordinary functions
// as ChainInitializer.
type ChainInitializerFunc func(ctx context.Context,
	params *network.Params) error

// InitChainState calls f(ctx, params).
func (f ChainInitializerFunc) InitChainState(ctx context.Context,
	params *network.Params) error {

	return f(ctx, params)
}

// Stage names the step of Run that failed.
type Stage string

const (
	StageConfig     Stage = "config"
	StageSelect     Stage = "select network"
	StageGenesis    Stage = "genesis check"
	StageChainState Stage = "chain state init"
)

// InitError is returned by Run. Err is the underlying cause and can be
// matched with errors.Is.
type InitError struct {
	Stage Stage
	Net   string
	Err   error
}

func (e *InitError) Error() string {
	if e.Net == "" {
		return fmt.Sprintf("bootstrap %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("bootstrap %s (%s): %v", e.Stage, e.Net, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// Deps are the collaborators of Run.
type Deps struct {
	// Selector receives the network selection. The process-wide
	// selector is used when nil.
	Selector *network.Selector

	// Clock is the time source of the genesis time check. The system
	// clock is used when nil.
	Clock clock.Clock

	// Chain is called once all checks passed. It is required.
	Chain ChainInitializer
}

// Run selects the configured network and initializes its chain state. The
// genesis block is checked for consistency and for a timestamp within
// cfg.MaxFutureBlockTime of the local clock before the chain initializer is
// called, so a misconfigured network or a skewed clock fails fast.
//
// Selecting a network different from one already active on the selector
// panics, see network.Selector.
func Run(ctx context.Context, cfg *Config, deps Deps) (*network.Params,
	error) {

	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Stage: StageConfig, Err: err}
	}
	if deps.Chain == nil {
		return nil, &InitError{
			Stage: StageConfig,
			Err:   fmt.Errorf("%w: no chain initializer", ErrInvalidConfig),
		}
	}

	selector := deps.Selector
	if selector == nil {
		selector = network.DefaultSelector()
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewDefaultClock()
	}

	id, _ := cfg.NetworkID()
	params, err := selector.Select(id)
	if err != nil {
		return nil, &InitError{
			Stage: StageSelect, Net: id.String(), Err: err,
		}
	}

	log.Debugf("Genesis header of %s: %v", params.Name,
		newLogClosure(func() string {
			return spew.Sdump(params.GenesisBlock.Header)
		}))

	if err := CheckGenesisBlock(params); err != nil {
		return nil, &InitError{
			Stage: StageGenesis, Net: params.Name, Err: err,
		}
	}
	err = CheckGenesisTime(params, clk, cfg.MaxFutureBlockTime)
	if err != nil {
		log.Errorf("Refusing to initialize %s: %v", params.Name, err)
		return nil, &InitError{
			Stage: StageGenesis, Net: params.Name, Err: err,
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, &InitError{
			Stage: StageChainState, Net: params.Name, Err: err,
		}
	}

	log.Infof("Initializing chain state for %s (genesis %v)",
		params.Name, params.GenesisHash)

	if err := deps.Chain.InitChainState(ctx, params); err != nil {
		return nil, &InitError{
			Stage: StageChainState, Net: params.Name, Err: err,
		}
	}

	return params, nil
}
