package main

import (
	"errors"
	"time"

	"github.com/cockroachdb/pebble"
	json "github.com/goccy/go-json"
	"github.com/spaolacci/murmur3"
	"github.com/valyala/fasthttp"

	"memctl/wire"
)

var (
	snapSeqKey = []byte{wire.SeqPrefix, 's'}

	errSnapExhausted = errors.New("snapshot id range exhausted")
	errSnapCorrupt   = errors.New("snapshot checksum mismatch")
)

// snapshotRecord copies the record at h.RID into the snapshot id range and
// catalogs it. The snapshot id is allocated from a persisted sequence, so
// ids survive restarts and never repeat.
func snapshotRecord(ctx *fasthttp.RequestCtx, h wire.Header) {
	if !wire.ValidRID(h.RID) {
		ctx.Error("record id out of range", 400)
		return
	}
	if !wire.HasRead(h.Ann) {
		ctx.Error("read permission missing", 403)
		return
	}
	// reserve the id first, under the sequence key's own lock. Updating
	// the sequence inside the source record's critical section would let
	// snapshots of different records race the read-increment-write and
	// hand out the same id twice. A reserved id wasted on a missing
	// record leaves a gap in the range, never a repeat.
	var snapRID uint32
	err := store.Update(snapSeqKey, func() error {
		seq, err := GetInt64(snapSeqKey, store.db)
		if err != nil {
			return err
		}
		if seq == nil {
			v := int64(0)
			seq = &v
		}
		*seq++
		rid := uint32(wire.RIDSnapshotMin) + uint32(*seq) - 1
		if !wire.SnapshotRID(rid) {
			return errSnapExhausted
		}
		if err := SetInt64(snapSeqKey, *seq, store.db); err != nil {
			return err
		}
		snapRID = rid
		return nil
	})
	if err != nil {
		ctx.Error("err snapshotting: "+err.Error(), 400)
		return
	}

	srcKey := ridKey(wire.RecordPrefix, h.RID)
	err = store.Update(srcKey, func() error {
		rec, err := getRecord(srcKey, store.db)
		if err != nil {
			return err
		}
		if rec == nil {
			return ErrNotFound
		}
		snapKey := ridKey(wire.SnapshotPrefix, snapRID)
		if err := setRecord(snapKey, rec, store.db); err != nil {
			return err
		}
		err = catalog.Insert(SnapshotInfo{
			SnapRID:   snapRID,
			SourceRID: h.RID,
			KeyClass:  rec.KC,
			CreatedAt: time.Now().Unix(),
			Size:      len(rec.Data),
			Checksum:  murmur3.Sum32(rec.Data),
		})
		if err != nil {
			// don't leave an uncataloged copy behind
			_ = store.db.Delete(snapKey, pebble.NoSync)
			return err
		}
		return nil
	})
	if err == ErrNotFound {
		ctx.Error(err.Error(), 404)
		return
	} else if err != nil {
		ctx.Error("err snapshotting: "+err.Error(), 400)
		return
	}
	writeFrame(ctx, wire.NewHeader(wire.MPong, wire.KSnapshot, h.Ann, h.Cap, snapRID, 0), nil)
}

// restoreRecord copies a cataloged snapshot back over its source record.
func restoreRecord(ctx *fasthttp.RequestCtx, h wire.Header) {
	if !wire.SnapshotRID(h.RID) {
		ctx.Error("record id not in snapshot range", 400)
		return
	}
	if !wire.HasWrite(h.Ann) {
		ctx.Error("write permission missing", 403)
		return
	}
	info, err := catalog.Get(h.RID)
	if err != nil {
		ctx.Error("catalog err: "+err.Error(), 500)
		return
	}
	if info == nil {
		ctx.Error("snapshot not cataloged", 404)
		return
	}
	srcKey := ridKey(wire.RecordPrefix, info.SourceRID)
	err = store.Update(srcKey, func() error {
		rec, err := getRecord(ridKey(wire.SnapshotPrefix, h.RID), store.db)
		if err != nil {
			return err
		}
		if rec == nil {
			return ErrNotFound
		}
		if murmur3.Sum32(rec.Data) != info.Checksum {
			return errSnapCorrupt
		}
		return setRecord(srcKey, rec, store.db)
	})
	if err == ErrNotFound {
		ctx.Error("snapshot data missing", 404)
		return
	} else if err != nil {
		ctx.Error("err restoring: "+err.Error(), 400)
		return
	}
	writeFrame(ctx, wire.NewHeader(wire.MPong, h.KC, h.Ann, h.Cap, info.SourceRID, 0), nil)
}

func ListSnapshotsHandler(ctx *fasthttp.RequestCtx) {
	infos, err := catalog.List(100)
	if err != nil {
		ctx.Error("catalog err: "+err.Error(), 500)
		return
	}
	d, err := json.Marshal(infos)
	if err != nil {
		ctx.Error(err.Error(), 500)
		return
	}
	ctx.Response.Header.Set("Content-Type", "application/json")
	_, _ = ctx.Write(d)
}
