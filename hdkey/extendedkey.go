package hdkey

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/ripemd160"
)

const (
	// MinSeedBytes is the minimum number of bytes allowed for a seed to
	// a master node.
	MinSeedBytes = 16 // 128 bits

	// MaxSeedBytes is the maximum number of bytes allowed for a seed to
	// a master node.
	MaxSeedBytes = 64 // 512 bits

	// HardenedKeyStart is the index at which a hardened key starts. Each
	// extended key has 2^31 normal child keys and 2^31 hardened child keys.
	HardenedKeyStart = 0x80000000 // 2^31

	// ChainCodeLen is the size of a chain code.
	ChainCodeLen = 32

	// KeyDataLen is the size of the key material field: a 0x00 tag and a
	// 32 byte scalar, or a compressed public key.
	KeyDataLen = 33

	privateKeyTag = 0x00
	maxDepth      = 255
)

var (
	// ErrInvalidSeedLength describes an error in which the provided seed
	// is not within the allowed size range.
	ErrInvalidSeedLength = fmt.Errorf("seed length must be between %d "+
		"and %d bytes", MinSeedBytes, MaxSeedBytes)

	// ErrUnusableSeed describes an error in which the provided seed is not
	// usable due to the derived key falling outside of the valid range for
	// secp256k1 private keys. This error indicates the caller must choose
	// another seed.
	ErrUnusableSeed = errors.New("unusable seed")

	// ErrInvalidKeyMaterial describes an error in which the key field of a
	// serialized extended key is neither a valid private scalar nor a
	// valid compressed public key.
	ErrInvalidKeyMaterial = errors.New("invalid extended key material")

	// ErrNotPrivExtKey describes an error in which the caller attempted to
	// extract a private key from a public extended key.
	ErrNotPrivExtKey = errors.New("unable to create private keys from a " +
		"public extended key")

	// masterKey is the HMAC key used along with the seed to generate the
	// master node of the hierarchical tree.
	masterKey = []byte("Bitcoin seed")
)

// ExtendedKey is a node of a BIP32 key tree: the key itself plus the chain
// code, depth, parent fingerprint and child index needed to serialize it and
// derive its children. Private and public keys share this type and are told
// apart by the tag byte of their key material.
//
// An ExtendedKey holds no references, so copying the struct yields an
// independent key.
//
// The zero value is not a usable key: it reads as a private key with a zero
// scalar, which encodes but never decodes. Keys come from NewMaster, Derive or
// a decoder.
type ExtendedKey struct {
	// keyData is 0x00 followed by the scalar for private keys, or the
	// compressed point for public keys.
	keyData   [KeyDataLen]byte
	chainCode [ChainCodeLen]byte
	parentFP  [4]byte
	childNum  uint32
	depth     uint8
}

// NewMaster creates the master node of a hierarchical deterministic key
// chain from seed, which must be between MinSeedBytes and MaxSeedBytes long.
//
// NOTE: There is an extremely small chance (< 1 in 2^127) the provided seed
// will derive to an unusable secret key. ErrUnusableSeed is returned in that
// case and the caller should pick a new seed.
func NewMaster(seed []byte) (*ExtendedKey, error) {
	if len(seed) < MinSeedBytes || len(seed) > MaxSeedBytes {
		return nil, ErrInvalidSeedLength
	}

	// I = HMAC-SHA512(Key = "Bitcoin seed", Data = S)
	hmac512 := hmac.New(sha512.New, masterKey)
	hmac512.Write(seed)
	lr := hmac512.Sum(nil)

	// IL is the master secret key, IR the master chain code.
	secretKey := lr[:len(lr)/2]
	chainCode := lr[len(lr)/2:]

	if !isValidScalar(secretKey) {
		return nil, ErrUnusableSeed
	}

	k := &ExtendedKey{}
	k.keyData[0] = privateKeyTag
	copy(k.keyData[1:], secretKey)
	copy(k.chainCode[:], chainCode)
	return k, nil
}

// isValidScalar reports whether b is a usable secp256k1 private key, i.e.
// in the range [1, n-1].
func isValidScalar(b []byte) bool {
	var s secp256k1.ModNScalar
	overflow := s.SetByteSlice(b)
	return !overflow && !s.IsZero()
}

// IsPrivate returns whether or not the extended key is a private extended key.
func (k *ExtendedKey) IsPrivate() bool {
	return k.keyData[0] == privateKeyTag
}

// Depth returns the current derivation level with respect to the root.
func (k *ExtendedKey) Depth() uint8 {
	return k.depth
}

// ParentFingerprint returns the fingerprint of the parent key. It is all
// zero for a master key.
func (k *ExtendedKey) ParentFingerprint() [4]byte {
	return k.parentFP
}

// ChildIndex returns the index at which the child extended key was derived.
// Indexes at or above HardenedKeyStart are hardened.
func (k *ExtendedKey) ChildIndex() uint32 {
	return k.childNum
}

// ChainCode returns the chain code part of this extended key.
func (k *ExtendedKey) ChainCode() [ChainCodeLen]byte {
	return k.chainCode
}

// PubKeyBytes returns the compressed public key of the node, computing it
// from the scalar for private keys.
func (k *ExtendedKey) PubKeyBytes() []byte {
	if !k.IsPrivate() {
		return append([]byte(nil), k.keyData[:]...)
	}
	_, pubKey := btcec.PrivKeyFromBytes(k.keyData[1:])
	return pubKey.SerializeCompressed()
}

// ECPubKey converts the extended key to a btcec public key and returns it.
func (k *ExtendedKey) ECPubKey() (*btcec.PublicKey, error) {
	return btcec.ParsePubKey(k.PubKeyBytes())
}

// ECPrivKey converts the extended key to a btcec private key and returns it.
// ErrNotPrivExtKey is returned for public extended keys.
func (k *ExtendedKey) ECPrivKey() (*btcec.PrivateKey, error) {
	if !k.IsPrivate() {
		return nil, ErrNotPrivExtKey
	}
	privKey, _ := btcec.PrivKeyFromBytes(k.keyData[1:])
	return privKey, nil
}

// Neuter returns the public extended key of this node. The chain code, depth,
// parent fingerprint and child index are carried over unchanged. A public
// key is returned as is.
func (k *ExtendedKey) Neuter() *ExtendedKey {
	pub := *k
	if k.IsPrivate() {
		copy(pub.keyData[:], k.PubKeyBytes())
	}
	return &pub
}

// Fingerprint returns the first four bytes of RIPEMD160(SHA256(pubkey)),
// which children of this key store as their parent fingerprint.
func (k *ExtendedKey) Fingerprint() [4]byte {
	var fp [4]byte
	copy(fp[:], hash160(k.PubKeyBytes()))
	return fp
}

// Equal reports whether both keys serialize to the same payload.
func (k *ExtendedKey) Equal(other *ExtendedKey) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.Encode() == other.Encode()
}

// String describes the key without revealing private material.
func (k *ExtendedKey) String() string {
	return fmt.Sprintf("%s extended key (depth %d, parent %x, index %d)",
		keyKind(k), k.depth, k.parentFP[:], k.childNum)
}

// Zero manually clears all fields of the extended key. This can be used to
// explicitly clear key material from memory. The zeroed key reads as a
// private key with an invalid scalar and must not be used again.
func (k *ExtendedKey) Zero() {
	*k = ExtendedKey{}
}

func calcHash(buf []byte, hasher hash.Hash) []byte {
	hasher.Write(buf)
	return hasher.Sum(nil)
}

// hash160 calculates the hash ripemd160(sha256(b)).
func hash160(buf []byte) []byte {
	return calcHash(calcHash(buf, sha256.New()), ripemd160.New())
}
