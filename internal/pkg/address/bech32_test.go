package address

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cosmos/btcutil/bech32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_aggregator/internal/domain/entity"
)

// bech32EncodeBytes builds a well-formed bech32 string directly, bypassing
// the package's length validation, to exercise the decode-side checks.
func bech32EncodeBytes(prefix string, raw []byte) (string, error) {
	converted, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(prefix, converted)
}

func TestRoundTripAcrossPrefixes(t *testing.T) {
	raw := []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a,
		0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10, 0x11, 0x12, 0x13, 0x14,
	}
	decoded, err := FromBytes(raw)
	require.NoError(t, err)

	for _, prefix := range []string{"cosmos", "osmo"} {
		encoded, err := decoded.ToBech32(prefix)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(encoded, prefix+"1"))

		back, err := FromBech32(encoded)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(raw, back.Bytes()))
	}
}

func TestToBech32IsDeterministic(t *testing.T) {
	decoded, err := FromBytes(make([]byte, 20))
	require.NoError(t, err)

	first, err := decoded.ToBech32("cosmos")
	require.NoError(t, err)
	second, err := decoded.ToBech32("cosmos")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFromBech32RejectsCorruptedChecksum(t *testing.T) {
	decoded, err := FromBytes(make([]byte, 20))
	require.NoError(t, err)
	encoded, err := decoded.ToBech32("cosmos")
	require.NoError(t, err)

	// Flip the final checksum character to a different alphabet member.
	last := encoded[len(encoded)-1]
	replacement := byte('q')
	if last == replacement {
		replacement = 'p'
	}
	corrupted := encoded[:len(encoded)-1] + string(replacement)

	_, err = FromBech32(corrupted)
	require.Error(t, err)
	assert.True(t, entity.IsFormatError(err))
}

func TestFromBech32RejectsWrongPayloadLength(t *testing.T) {
	short, err := bech32EncodeBytes("cosmos", make([]byte, 19))
	require.NoError(t, err)

	_, err = FromBech32(short)
	require.Error(t, err)
	assert.True(t, entity.IsFormatError(err))
}

func TestFromBech32DecodesBeyondClassicLengthLimit(t *testing.T) {
	// Addresses longer than the classic 90-character bech32 cap must still
	// decode; only the payload length check rejects them afterwards.
	long, err := bech32EncodeBytes("cosmos", make([]byte, 64))
	require.NoError(t, err)
	require.Greater(t, len(long), 90)

	_, err = FromBech32(long)
	require.Error(t, err)
	assert.True(t, entity.IsFormatError(err))
	assert.Contains(t, err.Error(), "20 bytes")
}

func TestFromBech32RejectsGarbage(t *testing.T) {
	_, err := FromBech32("not-an-address")
	require.Error(t, err)
	assert.True(t, entity.IsFormatError(err))
}

func TestFromBytesRejectsWrongLength(t *testing.T) {
	_, err := FromBytes(make([]byte, 32))
	require.Error(t, err)
	assert.True(t, entity.IsFormatError(err))
}
