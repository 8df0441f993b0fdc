package network

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

const (
	// genesisReward is the 50 coin subsidy of the genesis coinbase, in
	// base units.
	genesisReward = 50 * 1e8

	mainNetGenesisText = "Bitcoin-NG 22/Jan/2026 Network Identity genesis"
	testNetGenesisText = "Bitcoin-NG testnet 22/Jan/2026 Network Identity genesis"
)

// genesisCoinbaseScript builds the coinbase signature script
// <0x1d00ffff> <4> <text>, pushed the same way the reference node does.
func genesisCoinbaseScript(text string) []byte {
	script := []byte{
		txscript.OP_DATA_4, 0xff, 0xff, 0x00, 0x1d,
		txscript.OP_DATA_1, 0x04,
		byte(len(text)),
	}
	return append(script, text...)
}

// newGenesisCoinbase returns the only transaction of a genesis block. Its
// single output is spendable by anyone.
func newGenesisCoinbase(text string) *wire.MsgTx {
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{
			Hash:  chainhash.Hash{},
			Index: wire.MaxPrevOutIndex,
		},
		SignatureScript: genesisCoinbaseScript(text),
		Sequence:        wire.MaxTxInSequenceNum,
	})
	tx.AddTxOut(&wire.TxOut{
		Value:    genesisReward,
		PkScript: []byte{txscript.OP_TRUE},
	})
	return tx
}

// newGenesisBlock assembles a genesis block. With a single transaction the
// merkle root is the coinbase hash.
func newGenesisBlock(text string, timestamp int64, bits,
	nonce uint32) wire.MsgBlock {

	coinbase := newGenesisCoinbase(text)
	return wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    1,
			PrevBlock:  chainhash.Hash{},
			MerkleRoot: coinbase.TxHash(),
			Timestamp:  time.Unix(timestamp, 0),
			Bits:       bits,
			Nonce:      nonce,
		},
		Transactions: []*wire.MsgTx{coinbase},
	}
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash. It only differs from the one available in chainhash in
// that it panics on an error since it will only be called with hard-coded,
// and therefore known good, hashes.
func newHashFromStr(hexStr string) chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}
	return *hash
}

var (
	// mainNetGenesisBlock defines the genesis block of the main network.
	mainNetGenesisBlock = newGenesisBlock(
		mainNetGenesisText, 1769040001, 0x1d00ffff, 2284535935,
	)

	// mainNetGenesisHash is the hash of the main network genesis block.
	mainNetGenesisHash = newHashFromStr(
		"000000006fb1f27580fce40505716c8d2f763dd4e925bbb4b3362b8fc26bb06a",
	)

	// testNetGenesisBlock defines the genesis block of the test network.
	testNetGenesisBlock = newGenesisBlock(
		testNetGenesisText, 1769083200, 0x1d00ffff, 410071845,
	)

	// testNetGenesisHash is the hash of the test network genesis block.
	testNetGenesisHash = newHashFromStr(
		"000000001b916f3e5b5389d4adbc37066178f56eacd6088d346da1bb6419a598",
	)

	// regTestGenesisBlock shares the main network coinbase but uses the
	// minimum difficulty.
	regTestGenesisBlock = newGenesisBlock(
		mainNetGenesisText, 1769169600, 0x207fffff, 0,
	)

	// regTestGenesisHash is the hash of the regression test genesis block.
	regTestGenesisHash = newHashFromStr(
		"3c72253b473b64ee161cb2d3e44ed722871d7e3ebd4c38cc71127b89ce86a842",
	)
)
