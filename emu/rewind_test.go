package emu

import "testing"

func TestRingEvictsOldest(t *testing.T) {
	r := NewRing(2)
	r.Push([]byte{1})
	r.Push([]byte{2})
	r.Push([]byte{3}) // evicts {1}

	if got := r.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	if got := r.Pop(); got[0] != 3 {
		t.Errorf("Pop() = %v, want [3]", got)
	}
	if got := r.Pop(); got[0] != 2 {
		t.Errorf("Pop() = %v, want [2]", got)
	}
	if got := r.Pop(); got != nil {
		t.Errorf("Pop() on drained ring = %v, want nil", got)
	}
}

func TestRingClear(t *testing.T) {
	r := NewRing(4)
	r.Push([]byte{1})
	r.Push([]byte{2})
	r.Clear()
	if got := r.Len(); got != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", got)
	}
	if got := r.Pop(); got != nil {
		t.Errorf("Pop() after Clear() = %v, want nil", got)
	}
}

func TestRewindTickAndRestore(t *testing.T) {
	nes := newTestNES(t)
	rw := newRewind(RewindConfig{FrameInterval: 2, Capacity: 4})

	// First tick doesn't reach the interval yet.
	if err := rw.Tick(nes); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if rw.ring.Len() != 0 {
		t.Fatalf("ring should still be empty before the interval elapses, got len %d", rw.ring.Len())
	}

	if err := rw.Tick(nes); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if rw.ring.Len() != 1 {
		t.Fatalf("ring should hold one snapshot after the interval elapses, got len %d", rw.ring.Len())
	}

	nes.CPU.A ^= 0xFF
	rewound, err := rw.Rewind(nes)
	if err != nil {
		t.Fatalf("Rewind: %v", err)
	}
	if !rewound {
		t.Fatal("Rewind() reported nothing to restore")
	}
	if nes.CPU.A == 0xFF {
		t.Error("Rewind did not restore CPU state")
	}
}
