// Package address converts between a chain-agnostic binary wallet identifier
// and the bech32 encodings used by cosmos-sdk-family chains. One decoded key
// re-encodes under every network prefix the wallet targets.
package address

import (
	"github.com/cosmos/btcutil/bech32"

	"portfolio_aggregator/internal/domain/entity"
)

// accountBytesLen is the byte length of a cosmos-sdk account address.
const accountBytesLen = 20

// Decoded is the chain-agnostic form of a cosmos-sdk account address.
type Decoded struct {
	bytes []byte
}

// Bytes returns a copy of the raw account bytes.
func (d Decoded) Bytes() []byte {
	out := make([]byte, len(d.bytes))
	copy(out, d.bytes)
	return out
}

// FromBech32 decodes a bech32 account address into its canonical byte form.
// It fails with a FormatError on a bad checksum, an alphabet violation, or a
// payload that is not 20 bytes.
func FromBech32(addr string) (Decoded, error) {
	_, data, err := bech32.DecodeNoLimit(addr)
	if err != nil {
		return Decoded{}, entity.NewFormatError(addr, err.Error())
	}
	converted, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Decoded{}, entity.NewFormatError(addr, err.Error())
	}
	if len(converted) != accountBytesLen {
		return Decoded{}, entity.NewFormatError(addr, "account address must decode to 20 bytes")
	}
	return Decoded{bytes: converted}, nil
}

// FromBytes wraps raw account bytes, validating the length.
func FromBytes(b []byte) (Decoded, error) {
	if len(b) != accountBytesLen {
		return Decoded{}, entity.NewFormatError("", "account address must be 20 bytes")
	}
	out := make([]byte, accountBytesLen)
	copy(out, b)
	return Decoded{bytes: out}, nil
}

// ToBech32 re-encodes the decoded address under the given network prefix.
// Pure and deterministic; the same input always yields the same string.
func (d Decoded) ToBech32(prefix string) (string, error) {
	converted, err := bech32.ConvertBits(d.bytes, 8, 5, true)
	if err != nil {
		return "", entity.NewFormatError(prefix, err.Error())
	}
	encoded, err := bech32.Encode(prefix, converted)
	if err != nil {
		return "", entity.NewFormatError(prefix, err.Error())
	}
	return encoded, nil
}
