package wire

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Field writes/reads below use explicit byte offsets instead of native
// struct layout, so the packed sizes hold on every platform.

// EncodeHeader appends the 16-byte encoding of h to dst.
func EncodeHeader(dst []byte, h Header) []byte {
	var buf [HeaderSize]byte
	buf[0] = h.MT
	buf[1] = h.KC
	buf[2] = h.Ann
	buf[3] = h.Ver
	binary.LittleEndian.PutUint32(buf[4:8], h.Cap)
	binary.LittleEndian.PutUint32(buf[8:12], h.RID)
	binary.LittleEndian.PutUint32(buf[12:16], h.N)
	return append(dst, buf[:]...)
}

// DecodeHeader reads a header from the first 16 bytes of b.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, ErrShortHeader
	}
	return Header{
		MT:  b[0],
		KC:  b[1],
		Ann: b[2],
		Ver: b[3],
		Cap: binary.LittleEndian.Uint32(b[4:8]),
		RID: binary.LittleEndian.Uint32(b[8:12]),
		N:   binary.LittleEndian.Uint32(b[12:16]),
	}, nil
}

// EncodeFrame serializes header + payload into one buffer. The header's N
// is set to len(payload) so the two can never disagree.
func EncodeFrame(h Header, payload []byte) []byte {
	h.N = uint32(len(payload))
	out := make([]byte, 0, HeaderSize+len(payload))
	out = EncodeHeader(out, h)
	return append(out, payload...)
}

// DecodeFrame parses a full frame, returning the header and a subslice of
// b holding exactly N payload bytes. Trailing bytes past the payload are
// ignored, short buffers are an error.
func DecodeFrame(b []byte) (Header, []byte, error) {
	h, err := DecodeHeader(b)
	if err != nil {
		return Header{}, nil, err
	}
	// int64 math: int(h.N) can overflow on 32-bit platforms
	end := int64(HeaderSize) + int64(h.N)
	if int64(len(b)) < end {
		return Header{}, nil, fmt.Errorf("%w: want %d payload bytes, have %d",
			ErrTruncatedPayload, h.N, len(b)-HeaderSize)
	}
	return h, b[HeaderSize:int(end)], nil
}

// EncodeKV appends the 8-byte encoding of kv to dst.
func EncodeKV(dst []byte, kv KV) []byte {
	var buf [KVSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], kv.K)
	binary.LittleEndian.PutUint32(buf[4:8], kv.V)
	return append(dst, buf[:]...)
}

// EncodeKVs serializes an ordered pair sequence into a payload.
func EncodeKVs(kvs []KV) []byte {
	out := make([]byte, 0, BytesForKV(len(kvs)))
	for _, kv := range kvs {
		out = EncodeKV(out, kv)
	}
	return out
}

// DecodeKVs parses a KMCP upsert payload back into its pair sequence.
func DecodeKVs(b []byte) ([]KV, error) {
	if len(b)%KVSize != 0 {
		return nil, ErrOddKVPayload
	}
	kvs := make([]KV, 0, len(b)/KVSize)
	for off := 0; off < len(b); off += KVSize {
		kvs = append(kvs, KV{
			K: binary.LittleEndian.Uint32(b[off : off+4]),
			V: binary.LittleEndian.Uint32(b[off+4 : off+8]),
		})
	}
	return kvs, nil
}

// EncodeBudget appends the 12-byte encoding of bud to dst.
func EncodeBudget(dst []byte, bud Budget) []byte {
	var buf [BudgetSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], bud.Mode)
	binary.LittleEndian.PutUint32(buf[4:8], bud.Cap)
	binary.LittleEndian.PutUint32(buf[8:12], bud.Used)
	return append(dst, buf[:]...)
}

// DecodeBudget reads a budget from the first 12 bytes of b.
func DecodeBudget(b []byte) (Budget, error) {
	if len(b) < BudgetSize {
		return Budget{}, fmt.Errorf("%w: budget needs %d bytes, have %d",
			ErrTruncatedPayload, BudgetSize, len(b))
	}
	return Budget{
		Mode: binary.LittleEndian.Uint32(b[0:4]),
		Cap:  binary.LittleEndian.Uint32(b[4:8]),
		Used: binary.LittleEndian.Uint32(b[8:12]),
	}, nil
}

// HexDump renders a frame as a classic 16-bytes-per-line hex dump,
// for debugging and log output.
func HexDump(b []byte) string {
	var sb strings.Builder
	for i := 0; i < len(b); i += 16 {
		end := i + 16
		if end > len(b) {
			end = len(b)
		}
		chunk := b[i:end]
		fmt.Fprintf(&sb, "%04x  ", i)
		for j := 0; j < 16; j++ {
			if j < len(chunk) {
				fmt.Fprintf(&sb, "%02x ", chunk[j])
			} else {
				sb.WriteString("   ")
			}
		}
		sb.WriteByte(' ')
		for _, c := range chunk {
			if c >= 32 && c < 127 {
				sb.WriteByte(c)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
