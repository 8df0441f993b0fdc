package hdkey_test

import (
	"encoding/hex"
	"testing"

	"github.com/bngproject/go-bng/hdkey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// curveOrder is n of secp256k1, big-endian.
const curveOrder = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"

func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestPayloadLayout(t *testing.T) {
	master := deterministicMaster(t)
	child, err := master.Derive(hdkey.HardenedKeyStart + 3)
	require.NoError(t, err)

	p := child.Encode()
	fp := master.Fingerprint()
	chainCode := child.ChainCode()

	assert.Equal(t, byte(1), p[0])
	assert.Equal(t, fp[:], p[1:5])
	assert.Equal(t, []byte{0x80, 0x00, 0x00, 0x03}, p[5:9])
	assert.Equal(t, chainCode[:], p[9:41])
	assert.Equal(t, byte(0x00), p[41])

	pub := child.Neuter().Encode()
	assert.Equal(t, p[:41], pub[:41])
	assert.Equal(t, child.PubKeyBytes(), pub[41:])

	decoded, err := hdkey.DecodePayload(pub)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), decoded.Depth())
	assert.Equal(t, fp, decoded.ParentFingerprint())
	assert.Equal(t, uint32(hdkey.HardenedKeyStart+3), decoded.ChildIndex())
	assert.Equal(t, chainCode, decoded.ChainCode())
	assert.False(t, decoded.IsPrivate())
}

func TestDecodePayloadRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.SliceOfN(rapid.Byte(), hdkey.MinSeedBytes,
			hdkey.MaxSeedBytes).Draw(t, "seed")
		path := rapid.SliceOfN(rapid.Uint32(), 0, 4).Draw(t, "path")

		master, err := hdkey.NewMaster(seed)
		if err != nil {
			t.Skip("unusable seed")
		}
		key, err := master.DerivePath(path)
		if err != nil {
			t.Skip("invalid child")
		}

		for _, k := range []*hdkey.ExtendedKey{key, key.Neuter()} {
			decoded, err := hdkey.DecodePayload(k.Encode())
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !decoded.Equal(k) {
				t.Fatalf("round trip changed key %v", k)
			}
			if decoded.IsPrivate() != k.IsPrivate() ||
				decoded.Depth() != k.Depth() ||
				decoded.ChildIndex() != k.ChildIndex() ||
				decoded.ParentFingerprint() != k.ParentFingerprint() ||
				decoded.ChainCode() != k.ChainCode() {

				t.Fatalf("metadata lost for %v", k)
			}
		}
	})
}

func TestDecodePayloadInvalidMaterial(t *testing.T) {
	valid := deterministicMaster(t).Encode()
	keyOffset := hdkey.PayloadLen - hdkey.KeyDataLen

	// x = 5 has no matching y on secp256k1.
	offCurve := make([]byte, hdkey.KeyDataLen)
	offCurve[0] = 0x02
	offCurve[hdkey.KeyDataLen-1] = 0x05

	tests := []struct {
		name    string
		keyData []byte
	}{
		{
			name:    "uncompressed prefix",
			keyData: append([]byte{0x04}, valid[keyOffset+1:]...),
		},
		{
			name:    "unknown prefix",
			keyData: append([]byte{0x01}, valid[keyOffset+1:]...),
		},
		{
			name:    "zero scalar",
			keyData: make([]byte, hdkey.KeyDataLen),
		},
		{
			name: "scalar equal to curve order",
			keyData: append([]byte{0x00},
				mustDecodeHex(t, curveOrder)...),
		},
		{
			name:    "point not on curve",
			keyData: offCurve,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := valid
			copy(p[keyOffset:], test.keyData)

			_, err := hdkey.DecodePayload(p)
			assert.ErrorIs(t, err, hdkey.ErrInvalidKeyMaterial)
		})
	}
}
