package network

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// ID identifies one of the known networks.
type ID uint8

const (
	// MainNet is the production network.
	MainNet ID = iota + 1

	// TestNet is the public test network.
	TestNet

	// RegressionNet is the local-only regression test network.
	RegressionNet
)

// String returns the canonical name of the network id.
func (id ID) String() string {
	switch id {
	case MainNet:
		return "mainnet"
	case TestNet:
		return "testnet"
	case RegressionNet:
		return "regtest"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(id))
	}
}

// ParseID maps a network name to its ID. Both the canonical names and the
// short forms main, test and regression are accepted, case-insensitively.
func ParseID(name string) (ID, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "main", "mainnet":
		return MainNet, nil
	case "test", "testnet":
		return TestNet, nil
	case "regtest", "regression":
		return RegressionNet, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownNet, name)
	}
}

var (
	// ErrUnknownNet is returned when a network id or name is not known.
	ErrUnknownNet = errors.New("unknown network")

	// ErrDuplicateNet is returned by Register when the parameters clash
	// with an already registered network.
	ErrDuplicateNet = errors.New("duplicate network")
)

// HDVersions holds the BIP32 version bytes prepended to serialized extended
// keys of a network.
type HDVersions struct {
	Public  [4]byte
	Private [4]byte
}

// Params defines the identity of a network: message magic, ports, address
// prefixes and the genesis block.
type Params struct {
	Name string
	ID   ID

	// Net is the message start magic sent in front of every p2p message.
	Net [4]byte

	// DefaultPort is the default p2p listen port.
	DefaultPort string

	// Human-readable part for Bech32 encoded segwit addresses, as defined
	// in BIP 173.
	Bech32HRPSegwit string

	// BIP32 hierarchical deterministic extended key magics
	HDPublicKeyID  [4]byte
	HDPrivateKeyID [4]byte

	// BIP44 coin type used in the hierarchical deterministic path for
	// address generation.
	HDCoinType uint32

	// GenesisBlock is the first block of the chain and GenesisHash its
	// expected hash.
	GenesisBlock *wire.MsgBlock
	GenesisHash  *chainhash.Hash

	// PowLimitBits is the easiest difficulty allowed, in compact form.
	PowLimitBits uint32
}

// HDVersions returns the extended key version pair of the network.
func (p *Params) HDVersions() HDVersions {
	return HDVersions{Public: p.HDPublicKeyID, Private: p.HDPrivateKeyID}
}

// MainNetParams defines the network parameters for the main network.
var MainNetParams = Params{
	Name:            "mainnet",
	ID:              MainNet,
	Net:             [4]byte{0x42, 0x4e, 0x47, 0x01},
	DefaultPort:     "9333",
	Bech32HRPSegwit: "bng",
	HDPublicKeyID:   [4]byte{0x04, 0x5f, 0x1c, 0xf6},
	HDPrivateKeyID:  [4]byte{0x04, 0x5f, 0x18, 0xbc},
	HDCoinType:      0,
	GenesisBlock:    &mainNetGenesisBlock,
	GenesisHash:     &mainNetGenesisHash,
	PowLimitBits:    0x1d00ffff,
}

// TestNetParams defines the network parameters for the public test network.
var TestNetParams = Params{
	Name:            "testnet",
	ID:              TestNet,
	Net:             [4]byte{0x42, 0x4e, 0x47, 0x02},
	DefaultPort:     "19333",
	Bech32HRPSegwit: "tbng",
	HDPublicKeyID:   [4]byte{0x04, 0x35, 0x12, 0x34},
	HDPrivateKeyID:  [4]byte{0x04, 0x35, 0x43, 0x21},
	HDCoinType:      1,
	GenesisBlock:    &testNetGenesisBlock,
	GenesisHash:     &testNetGenesisHash,
	PowLimitBits:    0x1d00ffff,
}

// RegressionNetParams defines the network parameters for the regression
// test network. It never leaves a local environment, so it keeps the widely
// known tpub/tprv extended key versions instead of claiming its own.
var RegressionNetParams = Params{
	Name:            "regtest",
	ID:              RegressionNet,
	Net:             [4]byte{0x42, 0x4e, 0x47, 0x03},
	DefaultPort:     "19444",
	Bech32HRPSegwit: "bngr",
	HDPublicKeyID:   [4]byte{0x04, 0x35, 0x87, 0xcf},
	HDPrivateKeyID:  [4]byte{0x04, 0x35, 0x83, 0x94},
	HDCoinType:      1,
	GenesisBlock:    &regTestGenesisBlock,
	GenesisHash:     &regTestGenesisHash,
	PowLimitBits:    0x207fffff,
}
