package base58check_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/bngproject/go-bng/base58check"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncodeVector(t *testing.T) {
	payload, err := hex.DecodeString(
		"4b2b919bfc040faed8de5469dfa0241a3c1e5681be",
	)
	require.NoError(t, err)

	const want = "XFKcLWJmPuToz62uc2sgCBUddmH6yopoxE"
	assert.Equal(t, want, base58check.Encode(payload))

	decoded, err := base58check.Decode(want, len(payload))
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := rapid.SliceOfN(rapid.Byte(), 1, 128).Draw(t, "in")

		encoded := base58check.Encode(in)
		maxLen := base58check.MaxEncodedLen(len(in) + base58check.ChecksumLen)
		if len(encoded) > maxLen {
			t.Fatalf("%d characters exceed bound %d", len(encoded), maxLen)
		}

		for _, expectedLen := range []int{0, len(in)} {
			out, err := base58check.Decode(encoded, expectedLen)
			if err != nil {
				t.Fatalf("decode %q: %v", encoded, err)
			}
			if hex.EncodeToString(out) != hex.EncodeToString(in) {
				t.Fatalf("got %x, want %x", out, in)
			}
		}

		_, err := base58check.Decode(encoded, len(in)+1)
		if !errors.Is(err, base58check.ErrLengthMismatch) {
			t.Fatalf("want length mismatch, got %v", err)
		}
	})
}

// TestMatchesCheckEncode compares against the version-prefixed variant in
// btcutil, which hashes version || payload the same way.
func TestMatchesCheckEncode(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		version := rapid.Byte().Draw(t, "version")
		in := rapid.SliceOfN(rapid.Byte(), 0, 96).Draw(t, "in")

		got := base58check.Encode(append([]byte{version}, in...))
		if want := base58.CheckEncode(in, version); got != want {
			t.Fatalf("got %s, want %s", got, want)
		}
	})
}

func TestDecodeErrors(t *testing.T) {
	valid := base58check.Encode([]byte("extended key material"))

	flipped := []byte(valid)
	if flipped[5] == '2' {
		flipped[5] = '3'
	} else {
		flipped[5] = '2'
	}

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"character outside alphabet", valid[:4] + "0" + valid[5:], base58check.ErrInvalidCharacter},
		{"letter l", "l" + valid[1:], base58check.ErrInvalidCharacter},
		{"too short for checksum", "2", base58check.ErrChecksumMismatch},
		{"empty", "", base58check.ErrChecksumMismatch},
		{"single flip", string(flipped), base58check.ErrChecksumMismatch},
		{"truncated", valid[:len(valid)-1], base58check.ErrChecksumMismatch},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := base58check.Decode(test.in, 0)
			assert.ErrorIs(t, err, test.want)
		})
	}
}

func TestDecodeOversized(t *testing.T) {
	// All ones decode to zero bytes: valid text of any length.
	long := strings.Repeat("1", 200000)
	_, err := base58check.Decode(long, 78)
	assert.ErrorIs(t, err, base58check.ErrLengthMismatch)

	// The largest 82 byte value fits the bound, text past it is
	// rejected.
	largest := base58.Encode(bytes.Repeat([]byte{0xff}, 82))
	require.LessOrEqual(t, len(largest), base58check.MaxEncodedLen(82))
	over := strings.Repeat("z", base58check.MaxEncodedLen(82)+1)
	_, err = base58check.Decode(over, 78)
	assert.ErrorIs(t, err, base58check.ErrLengthMismatch)

	// Without an expected length there is no bound.
	_, err = base58check.Decode(strings.Repeat("1", 200), 0)
	assert.ErrorIs(t, err, base58check.ErrChecksumMismatch)
}

func TestChecksum(t *testing.T) {
	b := []byte{0x00, 0x01, 0x02}
	encoded := base58.Decode(base58check.Encode(b))
	cksum := base58check.Checksum(b)

	assert.Equal(t, cksum[:], encoded[len(b):])
}
