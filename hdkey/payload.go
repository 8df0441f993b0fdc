package hdkey

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/bngproject/go-bng/internal/bufferutil"
)

// PayloadLen is the size of a serialized extended key without version bytes
// and checksum:
//
//	depth (1) || parent fingerprint (4) || child index (4) ||
//	chain code (32) || key data (33)
const PayloadLen = 1 + 4 + 4 + ChainCodeLen + KeyDataLen

// Payload is the fixed binary layout of an extended key.
type Payload [PayloadLen]byte

// Encode serializes the key into its 74 byte payload. The child index is
// written big-endian.
func (k *ExtendedKey) Encode() Payload {
	w := bufferutil.NewBufferWriter(PayloadLen)
	w.WriteUint8(k.depth)
	w.WriteSlice(k.parentFP[:])
	w.WriteUint32(k.childNum)
	w.WriteSlice(k.chainCode[:])
	w.WriteSlice(k.keyData[:])

	var p Payload
	copy(p[:], w.Bytes())
	return p
}

// DecodePayload parses a payload produced by Encode. The key material must be
// either 0x00 followed by a scalar in [1, n-1], or a compressed point on the
// curve; anything else fails with ErrInvalidKeyMaterial.
func DecodePayload(p Payload) (*ExtendedKey, error) {
	keyData := p[PayloadLen-KeyDataLen:]
	if err := validateKeyData(keyData); err != nil {
		return nil, err
	}

	k := &ExtendedKey{
		childNum: binary.BigEndian.Uint32(p[5:9]),
		depth:    p[0],
	}
	copy(k.parentFP[:], p[1:5])
	copy(k.chainCode[:], p[9:9+ChainCodeLen])
	copy(k.keyData[:], keyData)
	return k, nil
}

func validateKeyData(keyData []byte) error {
	switch keyData[0] {
	case privateKeyTag:
		if !isValidScalar(keyData[1:]) {
			return fmt.Errorf("%w: private key out of range",
				ErrInvalidKeyMaterial)
		}

	case 0x02, 0x03:
		if _, err := btcec.ParsePubKey(keyData); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidKeyMaterial, err)
		}

	default:
		return fmt.Errorf("%w: unknown key prefix 0x%02x",
			ErrInvalidKeyMaterial, keyData[0])
	}

	return nil
}
