package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/bngproject/go-bng/network"
	"github.com/btcsuite/btcd/blockchain"
	"github.com/lightningnetwork/lnd/clock"
)

// MaxFutureBlockTime is how far a block timestamp may run ahead of the
// local clock before the block is rejected.
const MaxFutureBlockTime = 2 * time.Hour

var (
	// ErrGenesisTimeInFuture is returned when the genesis block of the
	// selected network is timestamped beyond the allowed clock skew.
	ErrGenesisTimeInFuture = errors.New("genesis block time is too far " +
		"in the future")

	// ErrBadGenesis is returned when the genesis block of a network is
	// not internally consistent.
	ErrBadGenesis = errors.New("bad genesis block")
)

// CheckGenesisTime fails with ErrGenesisTimeInFuture when the genesis
// timestamp of params lies more than tolerance after the current time of
// clk. A timestamp exactly at the limit is accepted.
func CheckGenesisTime(params *network.Params, clk clock.Clock,
	tolerance time.Duration) error {

	genesis := params.GenesisBlock.Header.Timestamp
	now := clk.Now()
	limit := now.Add(tolerance)

	if genesis.After(limit) {
		return fmt.Errorf("%w: %s genesis at %v, now %v, limit %v",
			ErrGenesisTimeInFuture, params.Name, genesis.UTC(),
			now.UTC(), limit.UTC())
	}

	return nil
}

// CheckGenesisBlock verifies that the genesis block of params commits to its
// coinbase, hashes to the advertised genesis hash and satisfies the proof of
// work its own header claims.
func CheckGenesisBlock(params *network.Params) error {
	block := params.GenesisBlock
	if block == nil || params.GenesisHash == nil {
		return fmt.Errorf("%w: %s has no genesis block", ErrBadGenesis,
			params.Name)
	}

	if len(block.Transactions) != 1 {
		return fmt.Errorf("%w: %s genesis has %d transactions, want 1",
			ErrBadGenesis, params.Name, len(block.Transactions))
	}

	header := &block.Header
	if root := block.Transactions[0].TxHash(); root != header.MerkleRoot {
		return fmt.Errorf("%w: %s merkle root %v does not commit to "+
			"coinbase %v", ErrBadGenesis, params.Name,
			header.MerkleRoot, root)
	}

	hash := header.BlockHash()
	if hash != *params.GenesisHash {
		return fmt.Errorf("%w: %s genesis hashes to %v, want %v",
			ErrBadGenesis, params.Name, hash, params.GenesisHash)
	}

	target := blockchain.CompactToBig(header.Bits)
	powLimit := blockchain.CompactToBig(params.PowLimitBits)
	if target.Sign() <= 0 || target.Cmp(powLimit) > 0 {
		return fmt.Errorf("%w: %s genesis target %064x outside "+
			"(0, %064x]", ErrBadGenesis, params.Name, target,
			powLimit)
	}
	if blockchain.HashToBig(&hash).Cmp(target) > 0 {
		return fmt.Errorf("%w: %s genesis hash %v above target %064x",
			ErrBadGenesis, params.Name, hash, target)
	}

	return nil
}
