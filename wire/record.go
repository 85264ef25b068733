package wire

// Record is the stored form of an upserted payload, keyed by rid.
// Ver counts successful upserts for optimistic concurrency.
//
//go:generate msgp
type Record struct {
	KC   uint8  `json:"k" msg:"k"`
	Ann  uint8  `json:"a" msg:"a"`
	Cap  uint32 `json:"c" msg:"c"`
	Ver  int64  `json:"v" msg:"v"`
	Data []byte `json:"d" msg:"d"`
}
