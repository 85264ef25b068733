package wire

// Header is the fixed 16-byte frame header.
//
// On the wire, little-endian, no padding:
//
//	------------------------------------------------------------
//	| mt(1) | kc(1) | ann(1) | ver(1) | cap(4) | rid(4) | n(4) |
//	------------------------------------------------------------
//
// n bytes of payload follow immediately. Payload interpretation is
// external, determined by (mt, kc).
type Header struct {
	MT  uint8  // message type
	KC  uint8  // key class
	Ann uint8  // annotation bits
	Ver uint8  // format version
	Cap uint32 // capability bitmap
	RID uint32 // record id
	N   uint32 // payload size in bytes
}

// NewHeader builds a header with Ver forced to the current format version.
// Construction never fails: values outside the defined enumerations are a
// caller contract violation, not a format-level fault.
func NewHeader(mt, kc, ann uint8, cap, rid, n uint32) Header {
	return Header{MT: mt, KC: kc, Ann: ann, Ver: Version, Cap: cap, RID: rid, N: n}
}

// KV is an 8-byte ordered pair. Upsert payloads in the KMCP class are a
// contiguous sequence of these.
type KV struct {
	K uint32
	V uint32
}

// Budget tracks a credit ceiling and consumption counter. The format does
// not enforce Used <= Cap; that is the caller's contract.
type Budget struct {
	Mode uint32
	Cap  uint32
	Used uint32
}

// Remaining returns Cap - Used, saturating at zero when the caller has
// violated the Used <= Cap contract.
func (b Budget) Remaining() uint32 {
	if b.Used > b.Cap {
		return 0
	}
	return b.Cap - b.Used
}

// BytesForKV returns the payload size of n key-value pairs.
func BytesForKV(n int) int { return n * KVSize }

// MessageSize returns the total on-wire size of a frame carrying
// payloadBytes of payload.
func MessageSize(payloadBytes int) int { return HeaderSize + payloadBytes }

// ValidRID reports whether rid falls inside the union of the four defined
// ranges. The ranges are contiguous and ordered, so one comparison pair
// covers all of them.
func ValidRID(rid uint32) bool { return rid >= RIDSystemMin && rid <= RIDTempMax }

func SystemRID(rid uint32) bool { return rid >= RIDSystemMin && rid <= RIDSystemMax }

func UserRID(rid uint32) bool { return rid >= RIDUserMin && rid <= RIDUserMax }

func SnapshotRID(rid uint32) bool { return rid >= RIDSnapshotMin && rid <= RIDSnapshotMax }

func TempRID(rid uint32) bool { return rid >= RIDTempMin && rid <= RIDTempMax }

func HasRead(ann uint8) bool { return ann&TRead != 0 }

func HasWrite(ann uint8) bool { return ann&TWrite != 0 }

func HasDelete(ann uint8) bool { return ann&TDelete != 0 }
