package wire

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderEncodeOffsets(t *testing.T) {
	h := NewHeader(MQuery, KState, AnnRO, PMemory, 0x00100007, 0x11223344)
	b := EncodeHeader(nil, h)
	require.Len(t, b, HeaderSize)

	require.Equal(t, byte(MQuery), b[0])
	require.Equal(t, byte(KState), b[1])
	require.Equal(t, byte(AnnRO), b[2])
	require.Equal(t, byte(Version), b[3])
	// 32-bit fields are little-endian at fixed offsets
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x04}, b[4:8])
	require.Equal(t, []byte{0x07, 0x00, 0x10, 0x00}, b[8:12])
	require.Equal(t, []byte{0x44, 0x33, 0x22, 0x11}, b[12:16])

	got, err := DecodeHeader(b)
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestDecodeHeaderShort(t *testing.T) {
	_, err := DecodeHeader(make([]byte, HeaderSize-1))
	require.ErrorIs(t, err, ErrShortHeader)
}

func TestFrameRoundTrip(t *testing.T) {
	kvs := []KV{{K: 1, V: 10}, {K: 2, V: 20}, {K: 3, V: 30}}
	payload := EncodeKVs(kvs)
	require.Len(t, payload, 24)

	h := NewHeader(MUpsert, KMCP, AnnMCP, CapStandard, RIDUserMin, 0)
	frame := EncodeFrame(h, payload)
	require.Len(t, frame, MessageSize(24))

	gh, gp, err := DecodeFrame(frame)
	require.NoError(t, err)
	require.EqualValues(t, 24, gh.N)
	require.EqualValues(t, MUpsert, gh.MT)

	got, err := DecodeKVs(gp)
	require.NoError(t, err)
	require.Equal(t, kvs, got)
}

func TestDecodeFrameTruncated(t *testing.T) {
	h := NewHeader(MUpsert, KMCP, AnnMCP, 0, RIDUserMin, 0)
	frame := EncodeFrame(h, make([]byte, 32))
	_, _, err := DecodeFrame(frame[:HeaderSize+10])
	require.ErrorIs(t, err, ErrTruncatedPayload)
}

func TestDecodeFrameHugeN(t *testing.T) {
	// a hostile header can claim up to 4GiB of payload; the length check
	// must not wrap on platforms where int is 32 bits
	b := EncodeHeader(nil, Header{MT: MUpsert, KC: KMCP, Ver: Version, N: 0xFFFFFFFF})
	_, _, err := DecodeFrame(b)
	require.ErrorIs(t, err, ErrTruncatedPayload)
}

func TestDecodeFrameIgnoresTrailing(t *testing.T) {
	h := NewHeader(MPing, KMCP, 0, 0, RIDSystemMin, 0)
	frame := append(EncodeFrame(h, []byte("abc")), 0xff, 0xff)
	gh, gp, err := DecodeFrame(frame)
	require.NoError(t, err)
	require.EqualValues(t, 3, gh.N)
	require.Equal(t, []byte("abc"), gp)
}

func TestDecodeKVsOddLength(t *testing.T) {
	_, err := DecodeKVs(make([]byte, 12))
	require.ErrorIs(t, err, ErrOddKVPayload)
}

func TestBudgetCodec(t *testing.T) {
	bud := Budget{Mode: 2, Cap: 1000, Used: 250}
	b := EncodeBudget(nil, bud)
	require.Len(t, b, BudgetSize)
	got, err := DecodeBudget(b)
	require.NoError(t, err)
	require.Equal(t, bud, got)

	_, err = DecodeBudget(b[:BudgetSize-1])
	require.ErrorIs(t, err, ErrTruncatedPayload)
}

func TestRecordCodec(t *testing.T) {
	rec := Record{KC: KState, Ann: AnnRW, Cap: CapExtended, Ver: 7, Data: []byte("hello")}
	b, err := rec.MarshalMsg(nil)
	require.NoError(t, err)
	var got Record
	left, err := got.UnmarshalMsg(b)
	require.NoError(t, err)
	require.Empty(t, left)
	require.Equal(t, rec, got)
}

func TestHexDump(t *testing.T) {
	h := NewHeader(MPing, KMCP, 0, 0, RIDSystemMin, 0)
	dump := HexDump(EncodeFrame(h, []byte("AB")))
	lines := strings.Split(strings.TrimRight(dump, "\n"), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "0000  00 10 00 01"))
	require.Contains(t, lines[1], "AB")
}
