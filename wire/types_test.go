package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTripIdentity(t *testing.T) {
	h := NewHeader(MUpsert, KMCP, AnnMCP, CapStandard, RIDUserMin, 24)
	require.EqualValues(t, MUpsert, h.MT)
	require.EqualValues(t, KMCP, h.KC)
	require.EqualValues(t, AnnMCP, h.Ann)
	require.EqualValues(t, Version, h.Ver)
	require.EqualValues(t, CapStandard, h.Cap)
	require.EqualValues(t, RIDUserMin, h.RID)
	require.EqualValues(t, 24, h.N)
}

func TestSizes(t *testing.T) {
	require.Equal(t, 16, HeaderSize)
	require.Equal(t, 8, KVSize)
	require.Equal(t, 12, BudgetSize)

	// encoded byte counts must match the declared packed sizes
	require.Len(t, EncodeHeader(nil, Header{}), HeaderSize)
	require.Len(t, EncodeKV(nil, KV{}), KVSize)
	require.Len(t, EncodeBudget(nil, Budget{}), BudgetSize)

	require.Equal(t, 24, BytesForKV(3))
	require.Equal(t, 40, MessageSize(24))
}

func TestConstantValues(t *testing.T) {
	require.EqualValues(t, 0x00, MPing)
	require.EqualValues(t, 0x01, MPong)
	require.EqualValues(t, 0x02, MUpsert)
	require.EqualValues(t, 0x03, MQuery)
	require.EqualValues(t, 0x04, MDelete)
	require.EqualValues(t, 0x05, MSnapshot)
	require.EqualValues(t, 0x06, MRestore)
	require.EqualValues(t, 0x07, MSync)

	require.EqualValues(t, 0x10, KMCP)
	require.EqualValues(t, 0x20, KAuth)
	require.EqualValues(t, 0x30, KConfig)
	require.EqualValues(t, 0x40, KState)
	require.EqualValues(t, 0x50, KSnapshot)
	require.EqualValues(t, 0x60, KMetadata)

	require.EqualValues(t, 0x01, TRead)
	require.EqualValues(t, 0x02, TWrite)
	require.EqualValues(t, 0x04, TDelete)
	require.EqualValues(t, 0x08, TExec)
	require.EqualValues(t, 0x10, TSync)
	require.EqualValues(t, 0x20, TCompress)
	require.EqualValues(t, 0x40, TEncrypt)
	require.EqualValues(t, 0x80, TArchive)

	require.EqualValues(t, 0x01000000, PDatabase)
	require.EqualValues(t, 0x02000000, PCompute)
	require.EqualValues(t, 0x04000000, PMemory)
	require.EqualValues(t, 0x08000000, PAdmin)
	require.EqualValues(t, 0x10000000, PTools)
	require.EqualValues(t, 0x20000000, PApps)
	require.EqualValues(t, 0x40000000, PFiles)
	require.EqualValues(t, 0x80000000, PNetwork)
	require.EqualValues(t, uint32(0xFFFFFFFF), CapFull)
}

func TestRIDRanges(t *testing.T) {
	cases := []struct {
		rid                 uint32
		valid, system, user bool
	}{
		{0x00000000, false, false, false},
		{RIDSystemMin, true, true, false},
		{RIDSystemMax, true, true, false},
		{RIDUserMin, true, false, true},
		{RIDUserMax, true, false, true},
		{RIDSnapshotMin, true, false, false},
		{RIDTempMax, true, false, false},
		{RIDTempMax + 1, false, false, false},
	}
	for _, c := range cases {
		require.Equal(t, c.valid, ValidRID(c.rid), "rid 0x%08x", c.rid)
		require.Equal(t, c.system, SystemRID(c.rid), "rid 0x%08x", c.rid)
		require.Equal(t, c.user, UserRID(c.rid), "rid 0x%08x", c.rid)
	}
	require.True(t, SnapshotRID(0x10000001))
	require.False(t, SnapshotRID(RIDTempMin))
	require.True(t, TempRID(RIDTempMin))
}

func TestAnnotationPredicates(t *testing.T) {
	require.True(t, HasRead(TRead))
	require.False(t, HasWrite(TRead))

	require.True(t, HasRead(AnnRW))
	require.True(t, HasWrite(AnnRW))
	require.False(t, HasDelete(AnnRW))

	require.True(t, HasRead(AnnFull))
	require.True(t, HasWrite(AnnFull))
	require.True(t, HasDelete(AnnFull))
	require.EqualValues(t, TExec, AnnFull&TExec)
}

func TestBudgetRemaining(t *testing.T) {
	require.EqualValues(t, 70, Budget{Mode: 1, Cap: 100, Used: 30}.Remaining())
	require.EqualValues(t, 0, Budget{Cap: 100, Used: 100}.Remaining())
	// used > cap is a caller bug; remaining saturates instead of wrapping
	require.EqualValues(t, 0, Budget{Cap: 100, Used: 200}.Remaining())
}
