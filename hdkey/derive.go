package hdkey

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
)

var (
	// ErrDeriveHardFromPublic describes an error in which the caller
	// attempted to derive a hardened extended key from a public key.
	ErrDeriveHardFromPublic = errors.New("cannot derive a hardened key " +
		"from a public key")

	// ErrDeriveBeyondMaxDepth describes an error in which the caller
	// has attempted to derive more than 255 keys from a root key.
	ErrDeriveBeyondMaxDepth = errors.New("cannot derive a key with more " +
		"than 255 indices in its path")

	// ErrInvalidChild describes an error in which the child at a specific
	// index is invalid due to the derived key falling outside of the valid
	// range for secp256k1 private keys. This error indicates the caller
	// should simply ignore the invalid child extended key at this index and
	// increment to the next index.
	ErrInvalidChild = errors.New("the extended key at this index is invalid")

	// ErrInvalidPath describes a derivation path string that cannot be
	// parsed.
	ErrInvalidPath = errors.New("invalid derivation path")
)

// Derive returns the child extended key at index i. Private keys derive
// private children and public keys derive public children; indexes at or
// above HardenedKeyStart need a private parent.
//
// NOTE: There is an extremely small chance (< 1 in 2^127) the specific child
// index does not derive to a usable child. ErrInvalidChild is returned in
// that case and the caller is expected to move on to the next index.
func (k *ExtendedKey) Derive(i uint32) (*ExtendedKey, error) {
	if k.depth == maxDepth {
		return nil, ErrDeriveBeyondMaxDepth
	}

	isChildHardened := i >= HardenedKeyStart
	if !k.IsPrivate() && isChildHardened {
		return nil, ErrDeriveHardFromPublic
	}

	// Hardened children commit to 0x00 || ser256(k), which is exactly the
	// private key data field; normal children commit to serP(K).
	data := make([]byte, KeyDataLen+4)
	if isChildHardened {
		copy(data, k.keyData[:])
	} else {
		copy(data, k.PubKeyBytes())
	}
	binary.BigEndian.PutUint32(data[KeyDataLen:], i)

	// I = HMAC-SHA512(Key = chainCode, Data = data)
	hmac512 := hmac.New(sha512.New, k.chainCode[:])
	hmac512.Write(data)
	ilr := hmac512.Sum(nil)
	il := ilr[:len(ilr)/2]
	childChainCode := ilr[len(ilr)/2:]

	var ilNum btcec.ModNScalar
	if overflow := ilNum.SetByteSlice(il); overflow {
		return nil, ErrInvalidChild
	}

	child := &ExtendedKey{
		parentFP: k.Fingerprint(),
		childNum: i,
		depth:    k.depth + 1,
	}
	copy(child.chainCode[:], childChainCode)

	if k.IsPrivate() {
		// childKey = parse256(IL) + parentKey (mod n)
		var keyNum btcec.ModNScalar
		keyNum.SetByteSlice(k.keyData[1:])
		ilNum.Add(&keyNum)
		if ilNum.IsZero() {
			return nil, ErrInvalidChild
		}
		childKey := ilNum.Bytes()
		child.keyData[0] = privateKeyTag
		copy(child.keyData[1:], childKey[:])
		return child, nil
	}

	// childKey = serP(point(parse256(IL)) + parentKey)
	var ilJ btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&ilNum, &ilJ)
	if (ilJ.X.IsZero() && ilJ.Y.IsZero()) || ilJ.Z.IsZero() {
		return nil, ErrInvalidChild
	}

	pubKey, err := btcec.ParsePubKey(k.keyData[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyMaterial, err)
	}
	var pubKeyJ, childJ btcec.JacobianPoint
	pubKey.AsJacobian(&pubKeyJ)
	btcec.AddNonConst(&ilJ, &pubKeyJ, &childJ)
	if (childJ.X.IsZero() && childJ.Y.IsZero()) || childJ.Z.IsZero() {
		return nil, ErrInvalidChild
	}
	childJ.ToAffine()

	childPub := btcec.NewPublicKey(&childJ.X, &childJ.Y)
	copy(child.keyData[:], childPub.SerializeCompressed())
	return child, nil
}

// DerivePath derives the descendant reached by following path from k.
func (k *ExtendedKey) DerivePath(path []uint32) (*ExtendedKey, error) {
	key := k
	for _, i := range path {
		child, err := key.Derive(i)
		if err != nil {
			return nil, err
		}
		key = child
	}
	return key, nil
}

// ParsePath parses a derivation path of the form m/44'/0'/0'/0/1. Hardened
// steps are marked with a trailing ', h or H. The leading m is optional.
func ParsePath(path string) ([]uint32, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "m" {
		return []uint32{}, nil
	}

	parts := strings.Split(path, "/")
	if parts[0] == "m" {
		parts = parts[1:]
	}

	indexes := make([]uint32, 0, len(parts))
	for _, part := range parts {
		hardened := false
		if n := len(part); n > 0 &&
			(part[n-1] == '\'' || part[n-1] == 'h' || part[n-1] == 'H') {

			hardened = true
			part = part[:n-1]
		}

		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil || index >= HardenedKeyStart {
			return nil, fmt.Errorf("%w: bad step %q in %q",
				ErrInvalidPath, part, path)
		}
		if hardened {
			index += HardenedKeyStart
		}
		indexes = append(indexes, uint32(index))
	}

	return indexes, nil
}
