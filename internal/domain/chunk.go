package domain

// Chunk is a discrete, singly-owned unit of a tick's supply.
// Corresponds to the chunks table in PostgreSQL.
//
// A chunk's amount is immutable for its whole lifetime: value moves only by
// destroying chunks and creating new ones whose amounts sum identically.
type Chunk struct {
	ID        string // deterministic hash, see internal/idhash
	Tick      string
	Amount    uint64
	Owner     string // holder address
	CreatedAt int64  // unix seconds
}
