/*
Package hdkey implements BIP32 hierarchical deterministic extended keys and
their network-tagged text encoding.

An extended key serializes into a fixed 74 byte payload:

	depth (1) || parent fingerprint (4) || child index (4) ||
	chain code (32) || key data (33)

The key data is 0x00 followed by the private scalar, or a compressed public
key. A Codec prefixes the payload with the 4 version bytes of a network,
appends a checksum and encodes the result as base58:

	master, err := hdkey.NewMaster(seed)
	if err != nil {
		return err
	}
	codec := hdkey.NewCodecForNet(&network.MainNetParams)
	xprv := codec.EncodeIdentity(master)
	xpub := codec.EncodeIdentity(master.Neuter())

Decoding with a Codec bound to another network fails with
ErrWrongNetworkVersion. EncodeWithIdentity and DecodeIdentity use the network
selected process-wide through network.SelectNetwork.
*/
package hdkey
