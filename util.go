package main

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cockroachdb/pebble"
	"github.com/valyala/fasthttp"

	"memctl/wire"
)

type Getter interface {
	Get(key []byte) ([]byte, io.Closer, error)
}
type Setter interface {
	Set(key, value []byte, _ *pebble.WriteOptions) error
}

// TableID|rid, rid big-endian so pebble iterates records in id order
func ridKey(prefix int, rid uint32) []byte {
	b := make([]byte, 5)
	b[0] = byte(prefix)
	binary.BigEndian.PutUint32(b[1:], rid)
	return b
}

// TableID|Account|0|ID
// 0 byte delimiter is used to construct composite key from Acc and ID
func compID(prefix int, acc, id string) []byte {
	b := make([]byte, 0, len(id)+len(acc)+2)
	b = append(b, byte(prefix))
	b = append(b, acc...)
	b = append(b, 0)
	b = append(b, id...)
	return b
}

func GetInt64(key []byte, b Getter) (*int64, error) {
	d, closer, err := b.Get(key)
	if err != nil && err != pebble.ErrNotFound {
		return nil, fmt.Errorf("DB ERR %v", err.Error())
	}
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	defer closer.Close()
	seq := int64(binary.LittleEndian.Uint64(d))
	return &seq, nil
}

func SetInt64(key []byte, val int64, b Setter) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(val))
	return b.Set(key, buf, pebble.NoSync)
}

func getRecord(key []byte, g Getter) (*wire.Record, error) {
	d, closer, err := g.Get(key)
	if err != nil && err != pebble.ErrNotFound {
		return nil, fmt.Errorf("DB ERR %v", err.Error())
	}
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	defer closer.Close()
	var rec wire.Record
	if _, err := rec.UnmarshalMsg(d); err != nil {
		return nil, err
	}
	return &rec, nil
}

func setRecord(key []byte, rec *wire.Record, s Setter) error {
	d, err := rec.MarshalMsg(nil)
	if err != nil {
		return err
	}
	return s.Set(key, d, pebble.NoSync)
}

func getBudget(key []byte, g Getter) (*wire.Budget, error) {
	d, closer, err := g.Get(key)
	if err != nil && err != pebble.ErrNotFound {
		return nil, fmt.Errorf("DB ERR %v", err.Error())
	}
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	defer closer.Close()
	bud, err := wire.DecodeBudget(d)
	if err != nil {
		return nil, err
	}
	return &bud, nil
}

func setBudget(key []byte, bud wire.Budget, s Setter) error {
	return s.Set(key, wire.EncodeBudget(nil, bud), pebble.NoSync)
}

func getAccID(ctx *fasthttp.RequestCtx) (string, string, error) {
	acc := ctx.UserValue("acc").(string)
	if len(acc) > 255 || len(acc) == 0 {
		return "", "", fmt.Errorf("len is not in range 0~255")
	}
	for _, v := range acc {
		if v == 0 {
			return "", "", fmt.Errorf("0 is not allowed as a character in acc name")
		}
	}
	id := ctx.UserValue("id").(string)
	if len(id) > 255 || len(id) == 0 {
		return "", "", fmt.Errorf("id is not in range 0~255")
	}
	for _, v := range id {
		if v == 0 {
			return "", "", fmt.Errorf("0 is not allowed as a character in id")
		}
	}
	return acc, id, nil
}
