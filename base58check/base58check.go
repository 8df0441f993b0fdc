// Package base58check implements the checksummed base-58 text encoding used
// for extended keys: the payload is followed by the first four bytes of its
// double SHA-256 and the result is mapped through the Bitcoin base-58
// alphabet.
package base58check

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ChecksumLen is the number of checksum bytes appended before encoding.
const ChecksumLen = 4

var (
	// ErrChecksumMismatch is returned when the trailing checksum does not
	// match the decoded payload, or there are not enough bytes to hold one.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrInvalidCharacter is returned when the text contains a character
	// outside the base-58 alphabet.
	ErrInvalidCharacter = errors.New("invalid base58 character")

	// ErrLengthMismatch is returned when the checksum-stripped payload does
	// not have the length requested by the caller.
	ErrLengthMismatch = errors.New("decoded length mismatch")
)

// Checksum returns the first four bytes of the double SHA-256 of b.
func Checksum(b []byte) (cksum [ChecksumLen]byte) {
	copy(cksum[:], chainhash.DoubleHashB(b)[:ChecksumLen])
	return
}

// Encode appends a four byte checksum to b and returns the base-58 text.
func Encode(b []byte) string {
	cksum := Checksum(b)
	buf := make([]byte, 0, len(b)+ChecksumLen)
	buf = append(buf, b...)
	buf = append(buf, cksum[:]...)
	return base58.Encode(buf)
}

// MaxEncodedLen returns an upper bound on the base-58 length of n bytes.
// log(256) / log(58) is just under 1.37.
func MaxEncodedLen(n int) int {
	return n*138/100 + 1
}

// Decode reverses Encode. When expectedLen is positive the checksum-stripped
// payload must be exactly that long, and text too long to hold it is
// rejected with ErrLengthMismatch before any decoding work.
func Decode(s string, expectedLen int) ([]byte, error) {
	if expectedLen > 0 {
		maxLen := MaxEncodedLen(expectedLen + ChecksumLen)
		if len(s) > maxLen {
			return nil, fmt.Errorf("%w: %d characters, at most %d "+
				"expected", ErrLengthMismatch, len(s), maxLen)
		}
	}

	decoded := base58.Decode(s)

	// base58.Decode yields at least one byte for every well formed,
	// non-empty input, so an empty result means a bad character.
	if len(s) > 0 && len(decoded) == 0 {
		return nil, ErrInvalidCharacter
	}
	if len(decoded) < ChecksumLen {
		return nil, fmt.Errorf("%w: %d bytes cannot hold a checksum",
			ErrChecksumMismatch, len(decoded))
	}

	payload := decoded[:len(decoded)-ChecksumLen]
	cksum := Checksum(payload)
	if !bytes.Equal(cksum[:], decoded[len(decoded)-ChecksumLen:]) {
		return nil, ErrChecksumMismatch
	}

	if expectedLen > 0 && len(payload) != expectedLen {
		return nil, fmt.Errorf("%w: got %d bytes, want %d",
			ErrLengthMismatch, len(payload), expectedLen)
	}

	return payload, nil
}
