package idhash

import "testing"

func TestComputeChunkID(t *testing.T) {
	tests := []struct {
		name    string
		tick    string
		op      string
		seq     uint64
		index   int
		wantLen int // hash length should be 64
	}{
		{
			name:    "mint output",
			tick:    "abc1",
			op:      "mint",
			seq:     1,
			index:   0,
			wantLen: 64,
		},
		{
			name:    "transfer change output",
			tick:    "abc1",
			op:      "transfer",
			seq:     42,
			index:   1,
			wantLen: 64,
		},
		{
			name:    "merge output",
			tick:    "zzz9",
			op:      "merge",
			seq:     9999999,
			index:   0,
			wantLen: 64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeChunkID(tt.tick, tt.op, tt.seq, tt.index)
			if len(got) != tt.wantLen {
				t.Errorf("length mismatch: got %d, want %d", len(got), tt.wantLen)
			}

			// Deterministic: same inputs, same id
			again := ComputeChunkID(tt.tick, tt.op, tt.seq, tt.index)
			if got != again {
				t.Errorf("not deterministic: %s != %s", got, again)
			}
		})
	}
}

func TestComputeChunkID_Uniqueness(t *testing.T) {
	seen := make(map[string]string)

	add := func(desc, id string) {
		if prev, ok := seen[id]; ok {
			t.Fatalf("collision between %q and %q", prev, desc)
		}
		seen[id] = desc
	}

	add("seq 1 index 0", ComputeChunkID("abc1", "mint", 1, 0))
	add("seq 1 index 1", ComputeChunkID("abc1", "mint", 1, 1))
	add("seq 2 index 0", ComputeChunkID("abc1", "mint", 2, 0))
	add("other op", ComputeChunkID("abc1", "transfer", 1, 0))
	add("other tick", ComputeChunkID("abc2", "mint", 1, 0))
}
