package main

import (
	"errors"

	"github.com/cockroachdb/pebble"
	"github.com/klauspost/compress/s2"
	"github.com/valyala/fasthttp"

	"memctl/wire"
)

var ErrNotFound = errors.New("record not found")

// WireHandler accepts one binary MCP frame per request and dispatches on
// the message type. Responses are frames too; acknowledgments use MPong.
func WireHandler(ctx *fasthttp.RequestCtx) {
	h, payload, err := wire.DecodeFrame(ctx.PostBody())
	if err != nil {
		ctx.Error(err.Error(), 400)
		return
	}
	if h.Ver != wire.Version {
		ctx.Error("unsupported wire version", 400)
		return
	}
	switch h.MT {
	case wire.MPing:
		// echo everything back, no record access
		writeFrame(ctx, wire.NewHeader(wire.MPong, h.KC, h.Ann, h.Cap, h.RID, 0), nil)
	case wire.MUpsert:
		upsertRecord(ctx, h, payload)
	case wire.MQuery:
		queryRecord(ctx, h)
	case wire.MDelete:
		deleteRecord(ctx, h)
	case wire.MSnapshot:
		snapshotRecord(ctx, h)
	case wire.MRestore:
		restoreRecord(ctx, h)
	case wire.MSync:
		store.Flush()
		writeFrame(ctx, wire.NewHeader(wire.MSync, h.KC, h.Ann|wire.TSync, h.Cap, h.RID, 0), nil)
	default:
		ctx.Error("reserved message type", 400)
	}
}

func writeFrame(ctx *fasthttp.RequestCtx, h wire.Header, payload []byte) {
	_, _ = ctx.Write(wire.EncodeFrame(h, payload))
}

func upsertRecord(ctx *fasthttp.RequestCtx, h wire.Header, payload []byte) {
	if !wire.ValidRID(h.RID) {
		ctx.Error("record id out of range", 400)
		return
	}
	if !wire.HasWrite(h.Ann) {
		ctx.Error("write permission missing", 403)
		return
	}
	// KMCP payloads are ordered kv pairs, everything else is opaque
	if h.KC == wire.KMCP && len(payload)%wire.KVSize != 0 {
		ctx.Error(wire.ErrOddKVPayload.Error(), 400)
		return
	}
	data := payload
	if h.Ann&wire.TCompress != 0 {
		data = s2.Encode(nil, payload)
	}

	key := ridKey(wire.RecordPrefix, h.RID)
	err := store.Update(key, func() error {
		rec, err := getRecord(key, store.db)
		if err != nil {
			return err
		}
		if rec == nil {
			rec = &wire.Record{Ver: 0}
		}
		rec.KC = h.KC
		rec.Ann = h.Ann
		rec.Cap = h.Cap
		rec.Ver++
		rec.Data = data
		return setRecord(key, rec, store.db)
	})
	if err != nil {
		ctx.Error("err updating: "+err.Error(), 400)
		return
	}
	writeFrame(ctx, wire.NewHeader(wire.MPong, h.KC, h.Ann, h.Cap, h.RID, 0), nil)
}

func queryRecord(ctx *fasthttp.RequestCtx, h wire.Header) {
	if !wire.ValidRID(h.RID) {
		ctx.Error("record id out of range", 400)
		return
	}
	if !wire.HasRead(h.Ann) {
		ctx.Error("read permission missing", 403)
		return
	}
	rec, err := getRecord(ridKey(wire.RecordPrefix, h.RID), store.db)
	if err != nil {
		ctx.Error("db read err: "+err.Error(), 500)
		return
	}
	if rec == nil {
		ctx.Error(ErrNotFound.Error(), 404)
		return
	}
	// stored bytes go out as-is: if TCompress is set in the reply, the
	// payload really is s2-compressed and the peer decompresses
	writeFrame(ctx, wire.NewHeader(wire.MPong, rec.KC, rec.Ann, rec.Cap, h.RID, 0), rec.Data)
}

func deleteRecord(ctx *fasthttp.RequestCtx, h wire.Header) {
	if !wire.ValidRID(h.RID) {
		ctx.Error("record id out of range", 400)
		return
	}
	if !wire.HasDelete(h.Ann) {
		ctx.Error("delete permission missing", 403)
		return
	}
	key := ridKey(wire.RecordPrefix, h.RID)
	err := store.Update(key, func() error {
		return store.db.Delete(key, pebble.NoSync)
	})
	if err != nil {
		ctx.Error("err deleting: "+err.Error(), 400)
		return
	}
	writeFrame(ctx, wire.NewHeader(wire.MPong, h.KC, h.Ann, h.Cap, h.RID, 0), nil)
}
