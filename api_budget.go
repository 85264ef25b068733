package main

import (
	"errors"
	"strconv"

	"github.com/cockroachdb/pebble"
	"github.com/valyala/fasthttp"

	"memctl/wire"
)

var ErrInsufficient = errors.New("insufficient credits")

// Credit budget API. Budgets are stored as the raw 12-byte wire encoding,
// so any MCP peer can consume a GET body directly. The wire format itself
// never checks used <= cap; this layer is the caller that enforces it.

// SetBudgetHandler provisions a budget (?cap=N&mode=M, resets usage) or
// spends from one (?use=N). Spending past the ceiling is rejected.
func SetBudgetHandler(ctx *fasthttp.RequestCtx) {
	acc, id, err := getAccID(ctx)
	if err != nil {
		ctx.Error(err.Error(), 400)
		return
	}
	args := ctx.Request.URI().QueryArgs()
	cid := compID(wire.BudgetPrefix, acc, id)

	if args.Has("cap") {
		cap32, err := parseUint32(args.Peek("cap"))
		if err != nil {
			ctx.Error("failed to parse cap "+err.Error(), 400)
			return
		}
		mode := uint32(0)
		if args.Has("mode") {
			mode, err = parseUint32(args.Peek("mode"))
			if err != nil {
				ctx.Error("failed to parse mode "+err.Error(), 400)
				return
			}
		}
		err = store.Update(cid, func() error {
			return setBudget(cid, wire.Budget{Mode: mode, Cap: cap32}, store.db)
		})
		if err != nil {
			ctx.Error("err updating: "+err.Error(), 400)
			return
		}
		_, _ = ctx.Write([]byte(strconv.FormatUint(uint64(cap32), 10)))
		return
	}

	use, err := parseUint32(args.Peek("use"))
	if err != nil {
		ctx.Error("failed to parse use "+err.Error(), 400)
		return
	}
	remaining := uint32(0)
	err = store.Update(cid, func() error {
		bud, err := getBudget(cid, store.db)
		if err != nil {
			return err
		}
		if bud == nil {
			return ErrNotFound
		}
		if use > bud.Remaining() {
			return ErrInsufficient
		}
		bud.Used += use
		remaining = bud.Remaining()
		return setBudget(cid, *bud, store.db)
	})
	if err == ErrInsufficient {
		ctx.SetStatusCode(409)
		return
	} else if err == ErrNotFound {
		ctx.Error(err.Error(), 404)
		return
	} else if err != nil {
		ctx.Error("err updating: "+err.Error(), 400)
		return
	}
	_, _ = ctx.Write([]byte(strconv.FormatUint(uint64(remaining), 10)))
}

func GetBudgetHandler(ctx *fasthttp.RequestCtx) {
	acc, id, err := getAccID(ctx)
	if err != nil {
		ctx.Error(err.Error(), 400)
		return
	}
	cid := compID(wire.BudgetPrefix, acc, id)
	bud, err := getBudget(cid, store.db)
	if err != nil {
		ctx.Error("err getting: "+err.Error(), 400)
		return
	}
	if bud == nil {
		ctx.Error("not found", 404)
		return
	}
	ctx.Response.Header.Set("remaining", strconv.FormatUint(uint64(bud.Remaining()), 10))
	_, _ = ctx.Write(wire.EncodeBudget(nil, *bud))
}

func DeleteBudgetHandler(ctx *fasthttp.RequestCtx) {
	acc, id, err := getAccID(ctx)
	if err != nil {
		ctx.Error(err.Error(), 400)
		return
	}
	cid := compID(wire.BudgetPrefix, acc, id)
	err = store.Update(cid, func() error {
		return store.db.Delete(cid, pebble.NoSync)
	})
	if err != nil {
		ctx.Error("err updating: "+err.Error(), 400)
		return
	}
}

func parseUint32(d []byte) (uint32, error) {
	if len(d) == 0 || len(d) > 12 {
		return 0, errors.New("value is not in range 0~12 digits")
	}
	v, err := strconv.ParseUint(string(d), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
