package hdkey_test

import (
	"encoding/hex"
	"testing"

	"github.com/bngproject/go-bng/hdkey"
	"github.com/bngproject/go-bng/network"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewMaster(t *testing.T) {
	master := deterministicMaster(t)

	assert.True(t, master.IsPrivate())
	assert.Equal(t, uint8(0), master.Depth())
	assert.Equal(t, [4]byte{}, master.ParentFingerprint())
	assert.Equal(t, uint32(0), master.ChildIndex())
	fp := master.Fingerprint()
	assert.Equal(t, "3442193e", hex.EncodeToString(fp[:]))

	again := deterministicMaster(t)
	assert.True(t, master.Equal(again))
	assert.True(t, master.Neuter().Equal(again.Neuter()))

	_, err := hdkey.NewMaster(make([]byte, hdkey.MinSeedBytes-1))
	assert.ErrorIs(t, err, hdkey.ErrInvalidSeedLength)

	_, err = hdkey.NewMaster(make([]byte, hdkey.MaxSeedBytes+1))
	assert.ErrorIs(t, err, hdkey.ErrInvalidSeedLength)
}

func TestNeuter(t *testing.T) {
	master := deterministicMaster(t)
	pub := master.Neuter()

	assert.False(t, pub.IsPrivate())
	assert.Equal(t, master.ChainCode(), pub.ChainCode())
	assert.Equal(t, master.PubKeyBytes(), pub.PubKeyBytes())
	assert.Equal(t, master.Fingerprint(), pub.Fingerprint())

	// Neutering a public key changes nothing.
	assert.True(t, pub.Neuter().Equal(pub))

	// The source key is left untouched.
	assert.True(t, master.IsPrivate())

	_, err := pub.ECPrivKey()
	assert.ErrorIs(t, err, hdkey.ErrNotPrivExtKey)

	privKey, err := master.ECPrivKey()
	require.NoError(t, err)
	pubKey, err := pub.ECPubKey()
	require.NoError(t, err)
	assert.True(t, privKey.PubKey().IsEqual(pubKey))
}

func TestStringHidesSecret(t *testing.T) {
	master := deterministicMaster(t)
	privKey, err := master.ECPrivKey()
	require.NoError(t, err)

	s := master.String()
	assert.Contains(t, s, "private")
	assert.NotContains(t, s, hex.EncodeToString(privKey.Serialize()))
	assert.Contains(t, master.Neuter().String(), "public")
}

func TestZero(t *testing.T) {
	key := deterministicMaster(t)
	key.Zero()
	assert.Equal(t, [hdkey.ChainCodeLen]byte{}, key.ChainCode())

	_, err := hdkey.DecodePayload(key.Encode())
	assert.ErrorIs(t, err, hdkey.ErrInvalidKeyMaterial)
}

func TestZeroValueNotDecodable(t *testing.T) {
	codec := hdkey.NewCodecForNet(&network.RegressionNetParams)

	var key hdkey.ExtendedKey
	require.True(t, key.IsPrivate())

	_, err := codec.DecodeIdentity(codec.EncodeIdentity(&key))
	assert.ErrorIs(t, err, hdkey.ErrInvalidKeyMaterial)

	_, err = codec.DecodeIdentity(codec.EncodeIdentity(key.Neuter()))
	assert.ErrorIs(t, err, hdkey.ErrInvalidKeyMaterial)
}

// TestMatchesHDKeychain checks every registered network against the
// independent btcutil implementation of BIP32.
func TestMatchesHDKeychain(t *testing.T) {
	for _, params := range network.Registered() {
		params := params
		t.Run(params.Name, func(t *testing.T) {
			chainParams := chaincfg.Params{
				HDPrivateKeyID: params.HDPrivateKeyID,
				HDPublicKeyID:  params.HDPublicKeyID,
			}
			require.NoError(t, chaincfg.RegisterHDKeyID(
				params.HDPublicKeyID[:], params.HDPrivateKeyID[:],
			))
			codec := hdkey.NewCodecForNet(params)

			rapid.Check(t, func(t *rapid.T) {
				seed := rapid.SliceOfN(rapid.Byte(),
					hdkey.MinSeedBytes, hdkey.MaxSeedBytes).
					Draw(t, "seed")
				index := rapid.Uint32().Draw(t, "index")

				ours, err := hdkey.NewMaster(seed)
				if err != nil {
					t.Skip("unusable seed")
				}
				theirs, err := hdkeychain.NewMaster(seed, &chainParams)
				if err != nil {
					t.Fatalf("oracle rejected seed: %v", err)
				}

				if got, want := codec.EncodeIdentity(ours),
					theirs.String(); got != want {

					t.Fatalf("master: got %s, want %s", got, want)
				}

				ourChild, err := ours.Derive(index)
				if err != nil {
					t.Skip("invalid child")
				}
				theirChild, err := theirs.Derive(index)
				if err != nil {
					t.Fatalf("oracle derive: %v", err)
				}
				theirPub, err := theirChild.Neuter()
				if err != nil {
					t.Fatalf("oracle neuter: %v", err)
				}

				if got, want := codec.EncodeIdentity(ourChild),
					theirChild.String(); got != want {

					t.Fatalf("child: got %s, want %s", got, want)
				}
				if got, want := codec.EncodeIdentity(
					ourChild.Neuter()), theirPub.String(); got != want {

					t.Fatalf("neutered: got %s, want %s", got, want)
				}
			})
		})
	}
}
