package hdkey

import (
	"errors"
	"fmt"

	"github.com/bngproject/go-bng/base58check"
	"github.com/bngproject/go-bng/network"
)

// SerializedLen is the size of a serialized extended key before the
// checksum is appended: 4 version bytes followed by the payload.
const SerializedLen = 4 + PayloadLen

// ErrWrongNetworkVersion describes an encoded key whose version bytes are
// not the ones of the network the codec is bound to, or do not match the
// kind of key they prefix.
var ErrWrongNetworkVersion = errors.New("extended key version does not " +
	"match network")

// Codec converts extended keys to and from their base58 text form using the
// version bytes of one network.
type Codec struct {
	versions network.HDVersions
}

// NewCodec returns a Codec that prefixes private keys with
// versions.Private and public keys with versions.Public.
func NewCodec(versions network.HDVersions) Codec {
	return Codec{versions: versions}
}

// NewCodecForNet returns a Codec bound to the version bytes of params.
func NewCodecForNet(params *network.Params) Codec {
	return NewCodec(params.HDVersions())
}

// ActiveCodec returns a Codec bound to the process-wide active network. Like
// network.ActiveParams it panics when no network has been selected.
func ActiveCodec() Codec {
	return NewCodecForNet(network.ActiveParams())
}

// Versions returns the version pair the codec is bound to.
func (c Codec) Versions() network.HDVersions {
	return c.versions
}

func (c Codec) version(k *ExtendedKey) [4]byte {
	if k.IsPrivate() {
		return c.versions.Private
	}
	return c.versions.Public
}

// Serialize returns version || payload, the bytes covered by the checksum.
func (c Codec) Serialize(k *ExtendedKey) [SerializedLen]byte {
	var out [SerializedLen]byte
	version := c.version(k)
	payload := k.Encode()
	copy(out[:4], version[:])
	copy(out[4:], payload[:])
	return out
}

// EncodeIdentity returns the base58 text form of k.
func (c Codec) EncodeIdentity(k *ExtendedKey) string {
	serialized := c.Serialize(k)
	return base58check.Encode(serialized[:])
}

// DecodeIdentity parses a key produced by EncodeIdentity. Text encoding
// failures are reported with the base58check errors; version bytes from
// another network, or a version that contradicts the key material, fail with
// ErrWrongNetworkVersion.
func (c Codec) DecodeIdentity(s string) (*ExtendedKey, error) {
	decoded, err := base58check.Decode(s, SerializedLen)
	if err != nil {
		return nil, fmt.Errorf("decode extended key: %w", err)
	}

	var version [4]byte
	copy(version[:], decoded[:4])
	if version != c.versions.Private && version != c.versions.Public {
		return nil, fmt.Errorf("%w: got %x, want %x or %x",
			ErrWrongNetworkVersion, version[:],
			c.versions.Private[:], c.versions.Public[:])
	}

	var payload Payload
	copy(payload[:], decoded[4:])
	k, err := DecodePayload(payload)
	if err != nil {
		return nil, err
	}

	if c.version(k) != version {
		return nil, fmt.Errorf("%w: version %x does not match a %s key",
			ErrWrongNetworkVersion, version[:], keyKind(k))
	}

	return k, nil
}

func keyKind(k *ExtendedKey) string {
	if k.IsPrivate() {
		return "private"
	}
	return "public"
}

// EncodeWithIdentity encodes k with the version bytes of the process-wide
// active network.
func EncodeWithIdentity(k *ExtendedKey) string {
	return ActiveCodec().EncodeIdentity(k)
}

// DecodeIdentity decodes s against the process-wide active network.
func DecodeIdentity(s string) (*ExtendedKey, error) {
	return ActiveCodec().DecodeIdentity(s)
}
