package wire

import "errors"

// Message types. Three bits of meaning, eight values defined.
const (
	MPing     = 0x00 // heartbeat
	MPong     = 0x01 // acknowledgment
	MUpsert   = 0x02 // insert or update record
	MQuery    = 0x03 // read record
	MDelete   = 0x04 // delete record
	MSnapshot = 0x05 // create state snapshot
	MRestore  = 0x06 // restore from snapshot
	MSync     = 0x07 // synchronization request
)

// Key classes. Each one tags a distinct namespace for record interpretation.
const (
	KMCP      = 0x10 // memory control protocol keys
	KAuth     = 0x20 // authentication keys
	KConfig   = 0x30 // configuration keys
	KState    = 0x40 // state data keys
	KSnapshot = 0x50 // snapshot keys
	KMetadata = 0x60 // metadata keys
)

// Annotation bits. Independently combinable permission/feature flags.
const (
	TRead     = 0x01
	TWrite    = 0x02
	TDelete   = 0x04
	TExec     = 0x08
	TSync     = 0x10
	TCompress = 0x20
	TEncrypt  = 0x40
	TArchive  = 0x80
)

// Named annotation unions. Convenience only, no new bits.
const (
	AnnRO   = TRead
	AnnRW   = TRead | TWrite
	AnnMCP  = TRead | TWrite | TDelete
	AnnFull = TRead | TWrite | TDelete | TExec
)

// Capability flags. One distinct high bit each.
const (
	PDatabase = 0x01000000
	PCompute  = 0x02000000
	PMemory   = 0x04000000
	PAdmin    = 0x08000000
	PTools    = 0x10000000
	PApps     = 0x20000000
	PFiles    = 0x40000000
	PNetwork  = 0x80000000
)

// Named capability unions.
const (
	CapStandard = PTools | PApps
	CapExtended = PTools | PApps | PFiles
	CapFull     = 0xFFFFFFFF
)

// Record ID ranges. Four disjoint contiguous ranges in increasing order
// with no gaps between them, so overall validity collapses to
// RIDSystemMin <= rid <= RIDTempMax.
const (
	RIDSystemMin   = 0x00000001
	RIDSystemMax   = 0x000FFFFF
	RIDUserMin     = 0x00100000
	RIDUserMax     = 0x0FFFFFFF
	RIDSnapshotMin = 0x10000000
	RIDSnapshotMax = 0x1FFFFFFF
	RIDTempMin     = 0x20000000
	RIDTempMax     = 0x2FFFFFFF
)

// Version is the wire format version stamped into every header.
const Version = 1

// Packed byte sizes. The codec writes fields at explicit offsets, so
// these are exact on every platform regardless of struct alignment.
const (
	HeaderSize = 16
	KVSize     = 8
	BudgetSize = 12
)

// Store table prefixes. One byte in front of every composite key.
const (
	RecordPrefix   = 1
	BudgetPrefix   = 2
	SnapshotPrefix = 3
	SeqPrefix      = 4
)

var (
	ErrShortHeader      = errors.New("buffer shorter than wire header")
	ErrTruncatedPayload = errors.New("payload truncated")
	ErrOddKVPayload     = errors.New("kv payload not a multiple of 8 bytes")
)
